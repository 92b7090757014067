package model

type DuesPaymentStatus string
type DuesPaymentChannel string

// State machine satu pembayaran iuran:
// pending_approval → paid (terminal) | rejected (terminal).
// Tidak ada jalan balik ke pending_approval; setelah ditolak jamaah
// submit pembayaran BARU untuk periode yang sama.
const (
	DuesStatusPendingApproval DuesPaymentStatus = "pending_approval"
	DuesStatusPaid            DuesPaymentStatus = "paid"
	DuesStatusRejected        DuesPaymentStatus = "rejected"
)

const (
	DuesChannelManual  DuesPaymentChannel = "manual"  // transfer + upload bukti
	DuesChannelGateway DuesPaymentChannel = "gateway" // midtrans
)

func (s DuesPaymentStatus) IsTerminal() bool {
	return s == DuesStatusPaid || s == DuesStatusRejected
}
