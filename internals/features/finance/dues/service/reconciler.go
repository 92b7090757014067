// file: internals/features/finance/dues/service/reconciler.go
package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"jamaahku_backend/internals/features/finance/dues/model"
	memberModel "jamaahku_backend/internals/features/members/model"
	"jamaahku_backend/internals/middlewares/auth"
)

var (
	// ErrInvalidPeriod: bulan di luar 1..12 (pelanggaran kontrak pemanggil)
	ErrInvalidPeriod = errors.New("periode tidak valid (bulan harus 1..12)")

	// ErrAlreadyReviewed: pembayaran sudah paid/rejected; transisi satu arah
	ErrAlreadyReviewed = errors.New("pembayaran sudah pernah direview")

	// ErrInvalidDecision: keputusan selain approve/reject
	ErrInvalidDecision = errors.New("keputusan review tidak dikenal")
)

/* ================================
   Period
================================ */

// Period: pasangan (bulan, tahun) sebagai satuan tagihan iuran.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidPeriod
	}
	if p.Year < 1 {
		return ErrInvalidPeriod
	}
	return nil
}

// Bounds: [hari pertama, hari pertama bulan berikutnya). time.Date
// menormalkan bulan, jadi panjang bulan (termasuk 29 Feb tahun kabisat)
// otomatis benar.
func (p Period) Bounds() (time.Time, time.Time) {
	start := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (p Period) String() string {
	return fmt.Sprintf("%02d-%04d", p.Month, p.Year)
}

func (p Period) matches(month, year int16) bool {
	return int(month) == p.Month && int(year) == p.Year
}

/* ================================
   Status iuran per jamaah
================================ */

type DuesStatus string

const (
	DuesUpToDate   DuesStatus = "up_to_date"
	DuesDefaulting DuesStatus = "defaulting"
	DuesExempt     DuesStatus = "exempt"
)

type MemberPeriodStatus struct {
	MemberID      uuid.UUID  `json:"member_id"`
	MemberName    string     `json:"member_name"`
	Status        DuesStatus `json:"status"`
	PendingMonths int        `json:"pending_months"`
	TotalDue      float64    `json:"total_due"`
}

// ComputeMemberStatuses mengklasifikasi status iuran semua jamaah AKTIF untuk
// satu periode. Fungsi murni atas inputnya: tidak ada state tersembunyi, dan
// status tidak dibawa antar periode (lunas Maret tidak memengaruhi April).
//
// Urutan keputusan per jamaah:
//  1. override exempt → exempt, tagihan 0
//  2. ada baris paid untuk (bulan, tahun) persis → up_to_date, tagihan 0
//     (baris paid ganda ditoleransi: "ada" sudah cukup)
//  3. selain itu → defaulting, tagihan = tarif jamaah atau tarif default
func ComputeMemberStatuses(period Period, members []memberModel.Member, payments []model.DuesPayment, defaultFee float64) ([]MemberPeriodStatus, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	// index: member yang punya baris paid di periode ini
	paidByMember := map[uuid.UUID]bool{}
	for _, pay := range payments {
		if pay.DuesPaymentStatus == model.DuesStatusPaid &&
			period.matches(pay.DuesPaymentMonth, pay.DuesPaymentYear) {
			paidByMember[pay.DuesPaymentMemberID] = true
		}
	}

	out := make([]MemberPeriodStatus, 0, len(members))
	for i := range members {
		m := &members[i]
		if !m.MemberIsActive {
			continue
		}

		row := MemberPeriodStatus{
			MemberID:   m.MemberID,
			MemberName: m.MemberFullName,
		}
		switch {
		case m.IsExempt():
			row.Status = DuesExempt
		case paidByMember[m.MemberID]:
			row.Status = DuesUpToDate
		default:
			row.Status = DuesDefaulting
			row.PendingMonths = 1
			row.TotalDue = m.MonthlyFeeOrDefault(defaultFee)
		}
		out = append(out, row)
	}

	// urutan stabil untuk board: nama, lalu id
	sort.Slice(out, func(i, j int) bool {
		if out[i].MemberName != out[j].MemberName {
			return out[i].MemberName < out[j].MemberName
		}
		return out[i].MemberID.String() < out[j].MemberID.String()
	})
	return out, nil
}

/* ================================
   Rekap kas per periode
================================ */

type PeriodTotals struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

// ComputePeriodTotals menjumlahkan pemasukan (baris paid yang periodenya
// persis cocok) dan pengeluaran (tanggal jatuh di hari pertama s.d. hari
// terakhir bulan; baris tepat di luar batas TIDAK ikut).
func ComputePeriodTotals(period Period, payments []model.DuesPayment, expenses []model.Expense) (PeriodTotals, error) {
	var totals PeriodTotals
	if err := period.Validate(); err != nil {
		return totals, err
	}

	for _, pay := range payments {
		if pay.DuesPaymentStatus == model.DuesStatusPaid &&
			period.matches(pay.DuesPaymentMonth, pay.DuesPaymentYear) {
			totals.Income += pay.DuesPaymentAmount
		}
	}

	start, end := period.Bounds()
	for _, ex := range expenses {
		d := ex.ExpenseDate
		if !d.Before(start) && d.Before(end) {
			totals.Expenses += ex.ExpenseAmount
		}
	}

	totals.Balance = totals.Income - totals.Expenses
	return totals, nil
}

/* ================================
   Review pembayaran
================================ */

type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "approve"
	DecisionReject  ReviewDecision = "reject"
)

// ReviewPendingPayment mentransisikan pembayaran pending_approval ke
// paid/rejected. Satu arah: review kedua atas pembayaran yang sudah terminal
// gagal dengan ErrAlreadyReviewed. Approve MEMERCAYAI nominal yang disubmit,
// tidak dicek terhadap tarif jamaah.
func ReviewPendingPayment(p *model.DuesPayment, decision ReviewDecision, reviewer auth.Session, now time.Time) error {
	if p.DuesPaymentStatus.IsTerminal() {
		return ErrAlreadyReviewed
	}
	if p.DuesPaymentStatus != model.DuesStatusPendingApproval {
		return fmt.Errorf("status %q tidak bisa direview", p.DuesPaymentStatus)
	}

	switch decision {
	case DecisionApprove:
		p.DuesPaymentStatus = model.DuesStatusPaid
	case DecisionReject:
		p.DuesPaymentStatus = model.DuesStatusRejected
	default:
		return ErrInvalidDecision
	}

	reviewerID := reviewer.UserID
	p.DuesPaymentReviewedBy = &reviewerID
	p.DuesPaymentReviewedAt = &now
	return nil
}
