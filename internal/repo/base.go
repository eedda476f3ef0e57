package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is the shared persistence foundation for domain repositories. It owns
// the GORM handle and knows how to rebind onto a transaction.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// WithConn returns a Base bound to a different handle, typically an open
// transaction. The receiver is left untouched.
func (b Base) WithConn(db *gorm.DB) Base {
	return Base{db: db}
}
