// file: internals/features/donations/pledges/service/store_gorm.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	listModel "jamaahku_backend/internals/features/donations/lists/model"
	"jamaahku_backend/internals/features/donations/pledges/model"
)

// GormStore: implementasi Store di atas Postgres via GORM.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) WithinTx(ctx context.Context, fn func(tx Store) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{DB: tx})
	})
}

func (s *GormStore) ItemByID(ctx context.Context, itemID uuid.UUID, forUpdate bool) (*listModel.DonationItem, error) {
	q := s.DB.WithContext(ctx)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var item listModel.DonationItem
	if err := q.First(&item, "donation_item_id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Op: "item by id", Err: err}
	}
	return &item, nil
}

func (s *GormStore) ListByID(ctx context.Context, listID uuid.UUID) (*listModel.DonationList, error) {
	var list listModel.DonationList
	if err := s.DB.WithContext(ctx).First(&list, "donation_list_id = ?", listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Op: "list by id", Err: err}
	}
	return &list, nil
}

func (s *GormStore) ItemsByIDs(ctx context.Context, itemIDs []uuid.UUID) ([]listModel.DonationItem, error) {
	var items []listModel.DonationItem
	if err := s.DB.WithContext(ctx).
		Where("donation_item_id IN ?", itemIDs).
		Find(&items).Error; err != nil {
		return nil, &StoreError{Op: "items by ids", Err: err}
	}
	return items, nil
}

func (s *GormStore) SumPledges(ctx context.Context, itemID uuid.UUID) (float64, error) {
	var total float64
	if err := s.DB.WithContext(ctx).
		Model(&model.DonationPledge{}).
		Where("donation_pledge_item_id = ?", itemID).
		Select("COALESCE(SUM(donation_pledge_qty), 0)").
		Scan(&total).Error; err != nil {
		return 0, &StoreError{Op: "sum pledges", Err: err}
	}
	return total, nil
}

func (s *GormStore) InsertPledge(ctx context.Context, p *model.DonationPledge) error {
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return &StoreError{Op: "insert pledge", Err: err}
	}
	return nil
}

func (s *GormStore) InsertItem(ctx context.Context, it *listModel.DonationItem) error {
	if err := s.DB.WithContext(ctx).Create(it).Error; err != nil {
		return &StoreError{Op: "insert item", Err: err}
	}
	return nil
}
