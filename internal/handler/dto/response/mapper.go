package response

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// From copies a usecase read model into its response DTO by field name.
func From[T any](src any) (T, error) {
	var dst T
	if err := copier.Copy(&dst, src); err != nil {
		return dst, fmt.Errorf("map %T to response: %w", src, err)
	}
	return dst, nil
}
