package errs

import "errors"

// Cross-layer sentinel errors; use cases mark unexpected faults with these
var (
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrTransactionFailed       = errors.New("transaction failed")
	ErrProviderUnavailable     = errors.New("external provider unavailable")
)
