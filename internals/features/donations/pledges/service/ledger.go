// file: internals/features/donations/pledges/service/ledger.go
package service

import (
	"context"
	"math"

	"github.com/google/uuid"

	listModel "jamaahku_backend/internals/features/donations/lists/model"
	"jamaahku_backend/internals/features/donations/pledges/model"
	"jamaahku_backend/internals/middlewares/auth"
)

// Store: kemampuan persistence yang dibutuhkan ledger. Implementasi
// produksi pakai GORM/Postgres; test pakai fake in-memory.
type Store interface {
	// WithinTx menjalankan fn dalam satu transaksi; Store yang diterima fn
	// sudah terikat ke transaksi itu.
	WithinTx(ctx context.Context, fn func(tx Store) error) error

	// forUpdate=true mengunci baris item (SELECT ... FOR UPDATE) supaya
	// cek kuota + insert atomik terhadap submit lain.
	ItemByID(ctx context.Context, itemID uuid.UUID, forUpdate bool) (*listModel.DonationItem, error)
	ListByID(ctx context.Context, listID uuid.UUID) (*listModel.DonationList, error)
	ItemsByIDs(ctx context.Context, itemIDs []uuid.UUID) ([]listModel.DonationItem, error)

	SumPledges(ctx context.Context, itemID uuid.UUID) (float64, error)
	InsertPledge(ctx context.Context, p *model.DonationPledge) error
	InsertItem(ctx context.Context, it *listModel.DonationItem) error
}

// Ledger menjaga aturan inti: total qty pledge sebuah item tidak pernah
// melewati kuotanya.
type Ledger struct {
	store Store
}

func NewLedger(store Store) *Ledger {
	return &Ledger{store: store}
}

/* ================================
   Aggregate (read view)
================================ */

type Aggregate struct {
	TotalPledged float64  `json:"total_pledged"`
	Remaining    *float64 `json:"remaining,omitempty"` // nil = tanpa kuota
	IsFull       bool     `json:"is_full"`
	IsOver       bool     `json:"is_over"` // overshoot historis (baris masuk di luar SubmitPledge)
}

// BuildAggregate menurunkan view pemenuhan dari total pledge saat ini.
func BuildAggregate(item *listModel.DonationItem, totalPledged float64) Aggregate {
	agg := Aggregate{TotalPledged: round2(totalPledged)}
	if item.HasQuota() {
		quota := *item.DonationItemRequestedQty
		rem := quota - totalPledged
		if rem < 0 {
			rem = 0
		}
		rem = round2(rem)
		agg.Remaining = &rem
		agg.IsFull = totalPledged >= quota
		agg.IsOver = totalPledged > quota
	}
	return agg
}

// AggregateFromPledges: fold komutatif — urutan baris tidak berpengaruh,
// total selalu dihitung ulang dari set lengkap (tidak ada cache inkremental).
func AggregateFromPledges(item *listModel.DonationItem, pledges []model.DonationPledge) Aggregate {
	var total float64
	for _, p := range pledges {
		total += p.DonationPledgeQty
	}
	return BuildAggregate(item, total)
}

// Aggregate membaca total terbaru dari store lalu membangun view.
func (l *Ledger) Aggregate(ctx context.Context, itemID uuid.UUID) (Aggregate, error) {
	var agg Aggregate
	item, err := l.store.ItemByID(ctx, itemID, false)
	if err != nil {
		return agg, err
	}
	total, err := l.store.SumPledges(ctx, itemID)
	if err != nil {
		return agg, err
	}
	return BuildAggregate(item, total), nil
}

/* ================================
   SubmitPledge
================================ */

// SubmitPledge memvalidasi lalu menambahkan baris pledge BARU (tidak pernah
// merge dengan pledge lama dari jamaah yang sama). Cek kuota membaca total
// TERBARU di dalam transaksi dengan baris item terkunci, jadi dua submit
// bersamaan tidak bisa sama-sama lolos lalu overshoot.
func (l *Ledger) SubmitPledge(ctx context.Context, sess auth.Session, itemID uuid.UUID, qty float64) (*model.DonationPledge, error) {
	if math.IsNaN(qty) || math.IsInf(qty, 0) || qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	if sess.MemberID == uuid.Nil {
		return nil, ErrNoMember
	}

	var out *model.DonationPledge
	err := l.store.WithinTx(ctx, func(tx Store) error {
		item, err := tx.ItemByID(ctx, itemID, true)
		if err != nil {
			return err
		}
		total, err := tx.SumPledges(ctx, itemID)
		if err != nil {
			return err
		}
		if item.HasQuota() {
			quota := *item.DonationItemRequestedQty
			if total+qty > quota {
				rem := quota - total
				if rem < 0 {
					rem = 0
				}
				return &QuotaExceededError{Remaining: round2(rem)}
			}
		}

		p := &model.DonationPledge{
			DonationPledgeItemID:   itemID,
			DonationPledgeMemberID: sess.MemberID,
			DonationPledgeQty:      qty,
		}
		if err := tx.InsertPledge(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

/* ================================
   ImportItems
================================ */

// ImportItems menyalin definisi item (nama, satuan, kuota) ke list lain.
// Pledge TIDAK ikut (kuota segar, nol pledge) dan tidak ada dedup —
// pemanggil memilih eksplisit item mana yang disalin.
func (l *Ledger) ImportItems(ctx context.Context, itemIDs []uuid.UUID, targetListID uuid.UUID) (int, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}

	count := 0
	err := l.store.WithinTx(ctx, func(tx Store) error {
		if _, err := tx.ListByID(ctx, targetListID); err != nil {
			return err
		}
		items, err := tx.ItemsByIDs(ctx, itemIDs)
		if err != nil {
			return err
		}
		for _, src := range items {
			copyItem := &listModel.DonationItem{
				DonationItemListID: targetListID,
				DonationItemName:   src.DonationItemName,
				DonationItemUnit:   src.DonationItemUnit,
			}
			if src.DonationItemRequestedQty != nil {
				q := *src.DonationItemRequestedQty
				copyItem.DonationItemRequestedQty = &q
			}
			if err := tx.InsertItem(ctx, copyItem); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
