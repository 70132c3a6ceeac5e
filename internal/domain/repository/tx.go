package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transactor is the explicit transaction boundary for operations whose writes
// must commit or fail together, such as blocking a slot and invalidating its
// active booking. The boundary is acquired and released by WithinTransaction
// regardless of outcome.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
