package shared

import (
	"context"
	"errors"

	"salon-scheduler/internal/pkg/errs"
)

// ErrStoreFailure marks unexpected persistence faults returned as Go errors by use cases.
var ErrStoreFailure = errors.New("store failure")

func StoreFailure(err error, msg string) error {
	return errs.Mark(errs.Wrap(err, msg), ErrStoreFailure)
}

type UnitOfWork interface {
	// Within runs fn in a SERIALIZABLE transaction, retrying serialization failures and deadlocks.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes repositories bound to the running transaction.
type Tx interface {
	Appointments() AppointmentRepository
	Customers() CustomerRepository
}
