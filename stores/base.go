package stores

import (
	"context"

	"gorm.io/gorm"
)

type contextKey string

const TxKey contextKey = "tx"

// BaseStore carries the write connection and an optional read connection
// (a replica when one is configured, the primary otherwise).
type BaseStore struct {
	db     *gorm.DB
	readDB *gorm.DB
}

func (s *BaseStore) GetDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxKey).(*gorm.DB); ok {
		return tx
	}
	return s.db.WithContext(ctx)
}

// GetReadDB routes read-only queries to the replica. Inside a transaction the
// transaction connection wins so reads observe prior writes.
func (s *BaseStore) GetReadDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(TxKey).(*gorm.DB); ok {
		return tx
	}
	if s.readDB != nil {
		return s.readDB.WithContext(ctx)
	}
	return s.db.WithContext(ctx)
}

func (s *BaseStore) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := context.WithValue(ctx, TxKey, tx)
		return fn(txCtx)
	})
}
