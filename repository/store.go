// Package repository persists the footwear entities with gorm.
//
// A Store wraps one gorm handle, which is either the root connection or an
// open transaction. Repositories obtained from a Store run against that
// handle, so everything reached through the Store passed to a Transaction
// callback commits or rolls back together.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/stridefoot/footwear-erp-api/errs"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying gorm handle
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn inside a database transaction. fn receives a Store
// bound to the transaction and must not use the outer Store.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
	if err != nil && !errs.IsClassified(err) {
		return errs.NewStorageError("transaction", err)
	}
	return err
}

func (s *Store) Orders() *OrderRepository {
	return NewOrderRepository(s.db)
}

func (s *Store) Documents() *DocumentRepository {
	return NewDocumentRepository(s.db)
}

func (s *Store) QCReports() *QCReportRepository {
	return NewQCReportRepository(s.db)
}

func (s *Store) Users() *UserRepository {
	return NewUserRepository(s.db)
}

func (s *Store) Sequences() *SequenceRepository {
	return NewSequenceRepository(s.db)
}

// Ping verifies the database connection is usable
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return errs.NewStorageError("get database instance", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errs.NewStorageError("ping", err)
	}
	return nil
}

// Tables lists the tables present in the connected database
func (s *Store) Tables() ([]string, error) {
	tables, err := s.db.Migrator().GetTables()
	if err != nil {
		return nil, errs.NewStorageError("list tables", err)
	}
	return tables, nil
}

// countRow is the scan target for grouped COUNT queries
type countRow struct {
	GroupKey string
	Count    int64
}
