package service

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"jamaahku_backend/internals/features/finance/dues/model"
	memberModel "jamaahku_backend/internals/features/members/model"
	"jamaahku_backend/internals/middlewares/auth"
)

const houseFee = 50.00

func member(name string, active bool, feeStatus memberModel.FeeStatus, fee *float64) memberModel.Member {
	return memberModel.Member{
		MemberID:         uuid.New(),
		MemberFullName:   name,
		MemberIsActive:   active,
		MemberFeeStatus:  feeStatus,
		MemberMonthlyFee: fee,
	}
}

func paidRow(memberID uuid.UUID, month, year int, amount float64) model.DuesPayment {
	return model.DuesPayment{
		DuesPaymentID:       uuid.New(),
		DuesPaymentMemberID: memberID,
		DuesPaymentMonth:    int16(month),
		DuesPaymentYear:     int16(year),
		DuesPaymentAmount:   amount,
		DuesPaymentStatus:   model.DuesStatusPaid,
	}
}

func fee(v float64) *float64 { return &v }

func TestComputeMemberStatuses(t *testing.T) {
	march := Period{Month: 3, Year: 2025}

	ahmad := member("Ahmad", true, memberModel.FeeStatusNormal, nil)
	budi := member("Budi", true, memberModel.FeeStatusNormal, fee(75))
	citra := member("Citra", true, memberModel.FeeStatusExempt, nil)
	dedi := member("Dedi", false, memberModel.FeeStatusNormal, nil) // nonaktif

	payments := []model.DuesPayment{
		paidRow(ahmad.MemberID, 3, 2025, houseFee),
		// baris pending tidak dihitung lunas
		{
			DuesPaymentID:       uuid.New(),
			DuesPaymentMemberID: budi.MemberID,
			DuesPaymentMonth:    3,
			DuesPaymentYear:     2025,
			DuesPaymentAmount:   75,
			DuesPaymentStatus:   model.DuesStatusPendingApproval,
		},
	}

	members := []memberModel.Member{ahmad, budi, citra, dedi}
	rows, err := ComputeMemberStatuses(march, members, payments, houseFee)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3 (nonaktif tidak ikut)", len(rows))
	}

	byName := map[string]MemberPeriodStatus{}
	for _, r := range rows {
		byName[r.MemberName] = r
	}

	tests := []struct {
		name          string
		wantStatus    DuesStatus
		wantDue       float64
		wantPendingMo int
	}{
		{name: "Ahmad", wantStatus: DuesUpToDate, wantDue: 0, wantPendingMo: 0},
		{name: "Budi", wantStatus: DuesDefaulting, wantDue: 75, wantPendingMo: 1},
		{name: "Citra", wantStatus: DuesExempt, wantDue: 0, wantPendingMo: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := byName[tt.name]
			if !ok {
				t.Fatalf("member %s missing from board", tt.name)
			}
			if r.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", r.Status, tt.wantStatus)
			}
			if r.TotalDue != tt.wantDue {
				t.Errorf("total_due = %g, want %g", r.TotalDue, tt.wantDue)
			}
			if r.PendingMonths != tt.wantPendingMo {
				t.Errorf("pending_months = %d, want %d", r.PendingMonths, tt.wantPendingMo)
			}
		})
	}
}

// Member exempt tanpa pembayaran → exempt/0; member sama tanpa override dan
// tanpa pembayaran → defaulting dengan tarifnya.
func TestComputeMemberStatusesExemptVsNormal(t *testing.T) {
	march := Period{Month: 3, Year: 2025}

	m := member("Eko", true, memberModel.FeeStatusExempt, fee(60))
	rows, err := ComputeMemberStatuses(march, []memberModel.Member{m}, nil, houseFee)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rows[0].Status != DuesExempt || rows[0].TotalDue != 0 {
		t.Errorf("exempt: got %+v, want exempt with total_due 0", rows[0])
	}

	m.MemberFeeStatus = memberModel.FeeStatusNormal
	rows, err = ComputeMemberStatuses(march, []memberModel.Member{m}, nil, houseFee)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rows[0].Status != DuesDefaulting || rows[0].TotalDue != 60 {
		t.Errorf("normal: got %+v, want defaulting with total_due 60", rows[0])
	}
}

// Fungsi murni: input identik → output identik; ganti periode saja tanpa
// baris pembayaran baru tidak boleh membuat member jadi lunas.
func TestComputeMemberStatusesPure(t *testing.T) {
	m := member("Fajar", true, memberModel.FeeStatusNormal, nil)
	payments := []model.DuesPayment{paidRow(m.MemberID, 3, 2025, houseFee)}
	members := []memberModel.Member{m}

	march := Period{Month: 3, Year: 2025}
	first, err := ComputeMemberStatuses(march, members, payments, houseFee)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := ComputeMemberStatuses(march, members, payments, houseFee)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different outputs:\n%+v\n%+v", first, second)
	}

	// April: tidak ada baris paid untuk 4-2025 → defaulting
	april := Period{Month: 4, Year: 2025}
	rows, err := ComputeMemberStatuses(april, members, payments, houseFee)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rows[0].Status != DuesDefaulting {
		t.Errorf("april: status = %s, want defaulting (no carry-over)", rows[0].Status)
	}
	if rows[0].TotalDue != houseFee {
		t.Errorf("april: total_due = %g, want house default %g", rows[0].TotalDue, houseFee)
	}
}

// Baris paid ganda untuk satu periode ditoleransi: cukup "ada".
func TestComputeMemberStatusesDuplicatePaidRows(t *testing.T) {
	m := member("Gita", true, memberModel.FeeStatusNormal, nil)
	payments := []model.DuesPayment{
		paidRow(m.MemberID, 3, 2025, houseFee),
		paidRow(m.MemberID, 3, 2025, houseFee),
	}
	rows, err := ComputeMemberStatuses(Period{Month: 3, Year: 2025}, []memberModel.Member{m}, payments, houseFee)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rows[0].Status != DuesUpToDate {
		t.Errorf("status = %s, want up_to_date", rows[0].Status)
	}
}

func TestComputeMemberStatusesInvalidPeriod(t *testing.T) {
	tests := []struct {
		name   string
		period Period
	}{
		{name: "month zero", period: Period{Month: 0, Year: 2025}},
		{name: "month 13", period: Period{Month: 13, Year: 2025}},
		{name: "negative month", period: Period{Month: -1, Year: 2025}},
		{name: "year zero", period: Period{Month: 1, Year: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeMemberStatuses(tt.period, nil, nil, houseFee)
			if !errors.Is(err, ErrInvalidPeriod) {
				t.Errorf("got %v, want ErrInvalidPeriod", err)
			}
		})
	}
}

func expense(day time.Time, amount float64) model.Expense {
	return model.Expense{
		ExpenseID:     uuid.New(),
		ExpenseTitle:  "operasional",
		ExpenseAmount: amount,
		ExpenseDate:   day,
	}
}

func TestComputePeriodTotals(t *testing.T) {
	memberID := uuid.New()

	t.Run("februari tahun kabisat includes day 29", func(t *testing.T) {
		feb := Period{Month: 2, Year: 2024}
		expenses := []model.Expense{
			expense(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 10),
			expense(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), 20),
			expense(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 99), // di luar
		}
		payments := []model.DuesPayment{paidRow(memberID, 2, 2024, 50)}

		totals, err := ComputePeriodTotals(feb, payments, expenses)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if totals.Income != 50 {
			t.Errorf("income = %g, want 50", totals.Income)
		}
		if totals.Expenses != 30 {
			t.Errorf("expenses = %g, want 30 (day 29 ikut, 1 Maret tidak)", totals.Expenses)
		}
		if totals.Balance != 20 {
			t.Errorf("balance = %g, want 20", totals.Balance)
		}
	})

	t.Run("februari non-kabisat stops at day 28", func(t *testing.T) {
		feb := Period{Month: 2, Year: 2025}
		expenses := []model.Expense{
			expense(time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), 15),
			expense(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 99), // "hari ke-29" versi 2025
		}
		totals, err := ComputePeriodTotals(feb, nil, expenses)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if totals.Expenses != 15 {
			t.Errorf("expenses = %g, want 15", totals.Expenses)
		}
	})

	t.Run("adjacent rows excluded", func(t *testing.T) {
		jan := Period{Month: 1, Year: 2025}
		expenses := []model.Expense{
			expense(time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC), 7),
			expense(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 3),
			expense(time.Date(2025, 1, 31, 12, 0, 0, 0, time.UTC), 4),
			expense(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 9),
		}
		totals, err := ComputePeriodTotals(jan, nil, expenses)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if totals.Expenses != 7 { // 3 + 4
			t.Errorf("expenses = %g, want 7", totals.Expenses)
		}
	})

	t.Run("pending and rejected rows not income", func(t *testing.T) {
		jan := Period{Month: 1, Year: 2025}
		payments := []model.DuesPayment{
			paidRow(memberID, 1, 2025, 50),
			{DuesPaymentMemberID: memberID, DuesPaymentMonth: 1, DuesPaymentYear: 2025, DuesPaymentAmount: 50, DuesPaymentStatus: model.DuesStatusPendingApproval},
			{DuesPaymentMemberID: memberID, DuesPaymentMonth: 1, DuesPaymentYear: 2025, DuesPaymentAmount: 50, DuesPaymentStatus: model.DuesStatusRejected},
		}
		totals, err := ComputePeriodTotals(jan, payments, nil)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if totals.Income != 50 {
			t.Errorf("income = %g, want 50 (hanya baris paid)", totals.Income)
		}
	})

	t.Run("invalid period", func(t *testing.T) {
		_, err := ComputePeriodTotals(Period{Month: 13, Year: 2025}, nil, nil)
		if !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("got %v, want ErrInvalidPeriod", err)
		}
	})
}

func TestReviewPendingPayment(t *testing.T) {
	reviewer := auth.Session{UserID: uuid.New(), Role: "bendahara"}
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	newPending := func() *model.DuesPayment {
		return &model.DuesPayment{
			DuesPaymentID:       uuid.New(),
			DuesPaymentMemberID: uuid.New(),
			DuesPaymentMonth:    3,
			DuesPaymentYear:     2025,
			DuesPaymentAmount:   50,
			DuesPaymentStatus:   model.DuesStatusPendingApproval,
		}
	}

	t.Run("approve", func(t *testing.T) {
		p := newPending()
		if err := ReviewPendingPayment(p, DecisionApprove, reviewer, now); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if p.DuesPaymentStatus != model.DuesStatusPaid {
			t.Errorf("status = %s, want paid", p.DuesPaymentStatus)
		}
		if p.DuesPaymentReviewedBy == nil || *p.DuesPaymentReviewedBy != reviewer.UserID {
			t.Errorf("reviewed_by not set to reviewer")
		}
		if p.DuesPaymentReviewedAt == nil || !p.DuesPaymentReviewedAt.Equal(now) {
			t.Errorf("reviewed_at not set")
		}
	})

	t.Run("reject", func(t *testing.T) {
		p := newPending()
		if err := ReviewPendingPayment(p, DecisionReject, reviewer, now); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if p.DuesPaymentStatus != model.DuesStatusRejected {
			t.Errorf("status = %s, want rejected", p.DuesPaymentStatus)
		}
	})

	// Transisi satu arah: review kedua atas pembayaran terminal ditolak,
	// status tidak berubah.
	t.Run("second review is rejected", func(t *testing.T) {
		p := newPending()
		if err := ReviewPendingPayment(p, DecisionApprove, reviewer, now); err != nil {
			t.Fatalf("first review: %v", err)
		}
		err := ReviewPendingPayment(p, DecisionReject, reviewer, now.Add(time.Hour))
		if !errors.Is(err, ErrAlreadyReviewed) {
			t.Fatalf("got %v, want ErrAlreadyReviewed", err)
		}
		if p.DuesPaymentStatus != model.DuesStatusPaid {
			t.Errorf("status mutated by failed review: %s", p.DuesPaymentStatus)
		}
		if !p.DuesPaymentReviewedAt.Equal(now) {
			t.Errorf("reviewed_at mutated by failed review")
		}
	})

	t.Run("unknown decision", func(t *testing.T) {
		p := newPending()
		err := ReviewPendingPayment(p, ReviewDecision("maybe"), reviewer, now)
		if !errors.Is(err, ErrInvalidDecision) {
			t.Errorf("got %v, want ErrInvalidDecision", err)
		}
		if p.DuesPaymentStatus != model.DuesStatusPendingApproval {
			t.Errorf("status mutated by invalid decision: %s", p.DuesPaymentStatus)
		}
	})
}
