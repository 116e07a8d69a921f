package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/models"
)

type SequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Next increments the counter for scope and returns the new value, starting
// at 1. The increment holds a row lock until the surrounding transaction ends,
// so concurrent callers in separate transactions never see the same value.
func (r *SequenceRepository) Next(ctx context.Context, scope string) (int64, error) {
	db := r.db.WithContext(ctx)

	err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.OrderSequence{Scope: scope}).Error
	if err != nil {
		return 0, errs.FromDB(err, "init sequence", "order_sequence", "scope", scope)
	}

	err = db.Model(&models.OrderSequence{}).
		Where("scope = ?", scope).
		UpdateColumn("value", gorm.Expr("value + ?", 1)).Error
	if err != nil {
		return 0, errs.FromDB(err, "increment sequence", "order_sequence", "scope", scope)
	}

	var seq models.OrderSequence
	if err := db.First(&seq, "scope = ?", scope).Error; err != nil {
		return 0, errs.FromDB(err, "read sequence", "order_sequence", "scope", scope)
	}
	return seq.Value, nil
}
