package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	listModel "jamaahku_backend/internals/features/donations/lists/model"
	"jamaahku_backend/internals/features/donations/pledges/model"
	"jamaahku_backend/internals/middlewares/auth"
)

/* ================================
   Fake in-memory Store
================================ */

type fakeStore struct {
	lists   map[uuid.UUID]*listModel.DonationList
	items   map[uuid.UUID]*listModel.DonationItem
	pledges []model.DonationPledge

	sumErr    error // injeksi kegagalan baca
	insertErr error // injeksi kegagalan tulis
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		lists: map[uuid.UUID]*listModel.DonationList{},
		items: map[uuid.UUID]*listModel.DonationItem{},
	}
}

func (f *fakeStore) WithinTx(ctx context.Context, fn func(tx Store) error) error {
	return fn(f)
}

func (f *fakeStore) ItemByID(ctx context.Context, itemID uuid.UUID, forUpdate bool) (*listModel.DonationItem, error) {
	it, ok := f.items[itemID]
	if !ok {
		return nil, ErrNotFound
	}
	return it, nil
}

func (f *fakeStore) ListByID(ctx context.Context, listID uuid.UUID) (*listModel.DonationList, error) {
	l, ok := f.lists[listID]
	if !ok {
		return nil, ErrNotFound
	}
	return l, nil
}

func (f *fakeStore) ItemsByIDs(ctx context.Context, itemIDs []uuid.UUID) ([]listModel.DonationItem, error) {
	var out []listModel.DonationItem
	for _, id := range itemIDs {
		if it, ok := f.items[id]; ok {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (f *fakeStore) SumPledges(ctx context.Context, itemID uuid.UUID) (float64, error) {
	if f.sumErr != nil {
		return 0, &StoreError{Op: "sum pledges", Err: f.sumErr}
	}
	var total float64
	for _, p := range f.pledges {
		if p.DonationPledgeItemID == itemID {
			total += p.DonationPledgeQty
		}
	}
	return total, nil
}

func (f *fakeStore) InsertPledge(ctx context.Context, p *model.DonationPledge) error {
	if f.insertErr != nil {
		return &StoreError{Op: "insert pledge", Err: f.insertErr}
	}
	if p.DonationPledgeID == uuid.Nil {
		p.DonationPledgeID = uuid.New()
	}
	f.pledges = append(f.pledges, *p)
	return nil
}

func (f *fakeStore) InsertItem(ctx context.Context, it *listModel.DonationItem) error {
	if it.DonationItemID == uuid.Nil {
		it.DonationItemID = uuid.New()
	}
	f.items[it.DonationItemID] = it
	return nil
}

func (f *fakeStore) addList(name string) uuid.UUID {
	id := uuid.New()
	f.lists[id] = &listModel.DonationList{DonationListID: id, DonationListName: name}
	return id
}

func (f *fakeStore) addItem(listID uuid.UUID, name, unit string, quota *float64) uuid.UUID {
	id := uuid.New()
	f.items[id] = &listModel.DonationItem{
		DonationItemID:           id,
		DonationItemListID:       listID,
		DonationItemName:         name,
		DonationItemUnit:         unit,
		DonationItemRequestedQty: quota,
	}
	return id
}

func qty(v float64) *float64 { return &v }

func sessFor(memberID uuid.UUID) auth.Session {
	return auth.Session{UserID: uuid.New(), MemberID: memberID, Role: "jamaah"}
}

/* ================================
   Tests
================================ */

// Skenario spek: kuota 10 kg. A pledge 6 → diterima, sisa 4.
// B pledge 5 → ditolak, sisa dilaporkan 4. B pledge 4 → diterima, penuh.
func TestSubmitPledgeQuotaScenario(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	listID := store.addList("Buka Puasa")
	itemID := store.addItem(listID, "Beras", "kg", qty(10))
	ledger := NewLedger(store)

	memberA := uuid.New()
	memberB := uuid.New()

	if _, err := ledger.SubmitPledge(ctx, sessFor(memberA), itemID, 6); err != nil {
		t.Fatalf("pledge A 6: unexpected err %v", err)
	}
	agg, err := ledger.Aggregate(ctx, itemID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if agg.TotalPledged != 6 || agg.Remaining == nil || *agg.Remaining != 4 || agg.IsFull {
		t.Fatalf("after A: got %+v, want total=6 remaining=4 not full", agg)
	}

	_, err = ledger.SubmitPledge(ctx, sessFor(memberB), itemID, 5)
	var qe *QuotaExceededError
	if !errors.As(err, &qe) {
		t.Fatalf("pledge B 5: want QuotaExceededError, got %v", err)
	}
	if qe.Remaining != 4 {
		t.Fatalf("pledge B 5: reported remaining = %g, want 4", qe.Remaining)
	}

	if _, err := ledger.SubmitPledge(ctx, sessFor(memberB), itemID, 4); err != nil {
		t.Fatalf("pledge B 4: unexpected err %v", err)
	}
	agg, err = ledger.Aggregate(ctx, itemID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if !agg.IsFull || agg.Remaining == nil || *agg.Remaining != 0 {
		t.Fatalf("after B: got %+v, want full with remaining 0", agg)
	}
	if agg.IsOver {
		t.Fatalf("after B: is_over should be false at exact quota")
	}
}

func TestSubmitPledgeInvalidQuantity(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	listID := store.addList("Kajian")
	itemID := store.addItem(listID, "Snack", "dus", qty(3))
	ledger := NewLedger(store)

	tests := []struct {
		name string
		qty  float64
	}{
		{name: "zero", qty: 0},
		{name: "negative", qty: -2},
		{name: "nan", qty: math.NaN()},
		{name: "pos inf", qty: math.Inf(1)},
		{name: "neg inf", qty: math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.SubmitPledge(ctx, sessFor(uuid.New()), itemID, tt.qty)
			if !errors.Is(err, ErrInvalidQuantity) {
				t.Errorf("qty %v: got %v, want ErrInvalidQuantity", tt.qty, err)
			}
		})
	}

	if len(store.pledges) != 0 {
		t.Fatalf("invalid submissions must not write rows, got %d", len(store.pledges))
	}
}

func TestSubmitPledgeUnlimitedItem(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	listID := store.addList("Jumat Berkah")
	itemID := store.addItem(listID, "Air mineral", "dus", nil) // tanpa kuota
	ledger := NewLedger(store)

	if _, err := ledger.SubmitPledge(ctx, sessFor(uuid.New()), itemID, 5000); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	agg, err := ledger.Aggregate(ctx, itemID)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if agg.Remaining != nil {
		t.Errorf("remaining = %v, want nil for unlimited item", *agg.Remaining)
	}
	if agg.IsFull || agg.IsOver {
		t.Errorf("unlimited item can never be full/over, got %+v", agg)
	}
}

// Jamaah yang sama pledge dua kali ke item yang sama: dua baris, jumlah
// terakumulasi, tidak di-merge.
func TestSubmitPledgeDuplicatesAccumulate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	listID := store.addList("Qurban")
	itemID := store.addItem(listID, "Daging", "kg", qty(20))
	ledger := NewLedger(store)

	member := uuid.New()
	sess := sessFor(member)
	if _, err := ledger.SubmitPledge(ctx, sess, itemID, 3); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := ledger.SubmitPledge(ctx, sess, itemID, 2); err != nil {
		t.Fatalf("second: %v", err)
	}

	if len(store.pledges) != 2 {
		t.Fatalf("rows = %d, want 2 (no merging)", len(store.pledges))
	}
	agg, _ := ledger.Aggregate(ctx, itemID)
	if agg.TotalPledged != 5 {
		t.Errorf("total = %g, want 5", agg.TotalPledged)
	}
}

// Aggregate dua kali tanpa write baru harus identik (tidak ada state
// tersembunyi).
func TestAggregateIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	listID := store.addList("Santunan")
	itemID := store.addItem(listID, "Sembako", "paket", qty(7))
	ledger := NewLedger(store)

	if _, err := ledger.SubmitPledge(ctx, sessFor(uuid.New()), itemID, 4); err != nil {
		t.Fatalf("pledge: %v", err)
	}

	first, err := ledger.Aggregate(ctx, itemID)
	if err != nil {
		t.Fatalf("first aggregate: %v", err)
	}
	second, err := ledger.Aggregate(ctx, itemID)
	if err != nil {
		t.Fatalf("second aggregate: %v", err)
	}
	if first.TotalPledged != second.TotalPledged ||
		first.IsFull != second.IsFull ||
		first.IsOver != second.IsOver ||
		*first.Remaining != *second.Remaining {
		t.Errorf("aggregates differ: %+v vs %+v", first, second)
	}
}

func TestSubmitPledgeErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("item not found", func(t *testing.T) {
		ledger := NewLedger(newFakeStore())
		_, err := ledger.SubmitPledge(ctx, sessFor(uuid.New()), uuid.New(), 1)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("session without member", func(t *testing.T) {
		store := newFakeStore()
		listID := store.addList("X")
		itemID := store.addItem(listID, "Y", "un", nil)
		ledger := NewLedger(store)
		_, err := ledger.SubmitPledge(ctx, auth.Session{UserID: uuid.New(), Role: "admin"}, itemID, 1)
		if !errors.Is(err, ErrNoMember) {
			t.Errorf("got %v, want ErrNoMember", err)
		}
	})

	t.Run("store failure surfaces as StoreError", func(t *testing.T) {
		store := newFakeStore()
		listID := store.addList("X")
		itemID := store.addItem(listID, "Y", "un", qty(5))
		store.sumErr = errors.New("connection reset")
		ledger := NewLedger(store)

		_, err := ledger.SubmitPledge(ctx, sessFor(uuid.New()), itemID, 1)
		var se *StoreError
		if !errors.As(err, &se) {
			t.Errorf("got %v, want StoreError", err)
		}
	})
}

func TestImportItems(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	srcList := store.addList("Ramadhan 2025")
	dstList := store.addList("Ramadhan 2026")

	itemBeras := store.addItem(srcList, "Beras", "kg", qty(10))
	itemAir := store.addItem(srcList, "Air mineral", "dus", nil)
	ledger := NewLedger(store)

	// isi pledge di list sumber, untuk memastikan tidak ikut disalin
	if _, err := ledger.SubmitPledge(ctx, sessFor(uuid.New()), itemBeras, 6); err != nil {
		t.Fatalf("seed pledge: %v", err)
	}

	count, err := ledger.ImportItems(ctx, []uuid.UUID{itemBeras, itemAir}, dstList)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	var copies []listModel.DonationItem
	for _, it := range store.items {
		if it.DonationItemListID == dstList {
			copies = append(copies, *it)
		}
	}
	if len(copies) != 2 {
		t.Fatalf("copied items = %d, want 2", len(copies))
	}
	for _, cp := range copies {
		agg, err := ledger.Aggregate(ctx, cp.DonationItemID)
		if err != nil {
			t.Fatalf("aggregate copy: %v", err)
		}
		if agg.TotalPledged != 0 {
			t.Errorf("copy %q has pledges (%g), want fresh quota", cp.DonationItemName, agg.TotalPledged)
		}
		if cp.DonationItemName == "Beras" {
			if cp.DonationItemRequestedQty == nil || *cp.DonationItemRequestedQty != 10 {
				t.Errorf("copy Beras quota = %v, want 10", cp.DonationItemRequestedQty)
			}
		}
	}

	// import ulang tidak di-dedup: pemanggil yang memilih
	count, err = ledger.ImportItems(ctx, []uuid.UUID{itemBeras}, dstList)
	if err != nil || count != 1 {
		t.Fatalf("re-import: count=%d err=%v, want 1,nil", count, err)
	}

	t.Run("target list missing", func(t *testing.T) {
		_, err := ledger.ImportItems(ctx, []uuid.UUID{itemBeras}, uuid.New())
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})
}
