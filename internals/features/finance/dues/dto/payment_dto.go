package dto

import "github.com/google/uuid"

// SubmitDuesPaymentRequest dibaca dari form multipart (bukti transfer
// ikut di field file "proof")
type SubmitDuesPaymentRequest struct {
	Month  int     `json:"month" form:"month" validate:"required,min=1,max=12"`
	Year   int     `json:"year" form:"year" validate:"required,min=2000,max=2200"`
	Amount float64 `json:"amount" form:"amount" validate:"required,gt=0"`
	Note   string  `json:"note" form:"note" validate:"omitempty,max=500"`
}

type ReviewPaymentRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}

type CreateExpenseRequest struct {
	Title    string  `json:"title" validate:"required,max=100"`
	Category string  `json:"category" validate:"omitempty,max=50"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
	Note     string  `json:"note" validate:"omitempty,max=2000"`
}

type UpdateExpenseRequest struct {
	Title    *string  `json:"title" validate:"omitempty,max=100"`
	Category *string  `json:"category" validate:"omitempty,max=50"`
	Amount   *float64 `json:"amount" validate:"omitempty,gt=0"`
	Date     *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Note     *string  `json:"note" validate:"omitempty,max=2000"`
}

// PendingPaymentView: antrian review untuk bendahara, bukti berupa
// signed URL berumur pendek dari blob store
type PendingPaymentView struct {
	PaymentID  uuid.UUID `json:"payment_id"`
	MemberID   uuid.UUID `json:"member_id"`
	MemberName string    `json:"member_name"`
	Month      int16     `json:"month"`
	Year       int16     `json:"year"`
	Amount     float64   `json:"amount"`
	Note       string    `json:"note,omitempty"`
	ProofURL   string    `json:"proof_url,omitempty"`
	CreatedAt  string    `json:"created_at"`
}
