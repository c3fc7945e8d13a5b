// Package adapters provides the repository implementation for the symbollist feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nautilus/internal/feature/symbollist/domain/entity"
	"nautilus/internal/feature/symbollist/usecase"
)

// symbolGorm is the GORM implementation of SymbolRepository.
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository creates a symbol repository on the given connection.
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// ListActive returns all active symbols ordered by sort_key.
func (r *symbolGorm) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// ListActiveCodes returns only the codes of active symbols ordered by sort_key.
func (r *symbolGorm) ListActiveCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Symbol{}).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// FindByCodeOrName matches query against the code first, then the name,
// both case-insensitively. Returns usecase.ErrSymbolNotFound when nothing matches.
func (r *symbolGorm) FindByCodeOrName(ctx context.Context, query string) (*entity.Symbol, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, usecase.ErrSymbolNotFound
	}

	var s entity.Symbol
	err := r.db.WithContext(ctx).Where("UPPER(code) = ?", strings.ToUpper(q)).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = r.db.WithContext(ctx).Where("LOWER(name) = ?", strings.ToLower(q)).First(&s).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSymbolNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Upsert creates the symbol or updates name, market and sort key of an existing code.
func (r *symbolGorm) Upsert(ctx context.Context, s *entity.Symbol) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "market", "sort_key", "updated_at"}),
	}).Create(s).Error
}
