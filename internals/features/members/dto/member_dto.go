package dto

type CreateMemberRequest struct {
	FullName   string   `json:"full_name" validate:"required,max=100"`
	Phone      string   `json:"phone" validate:"omitempty,max=30"`
	FeeStatus  string   `json:"fee_status" validate:"omitempty,oneof=normal exempt"`
	MonthlyFee *float64 `json:"monthly_fee" validate:"omitempty,gt=0"`
}

type UpdateMemberRequest struct {
	FullName   *string  `json:"full_name" validate:"omitempty,max=100"`
	Phone      *string  `json:"phone" validate:"omitempty,max=30"`
	IsActive   *bool    `json:"is_active"`
	FeeStatus  *string  `json:"fee_status" validate:"omitempty,oneof=normal exempt"`
	MonthlyFee *float64 `json:"monthly_fee" validate:"omitempty,gt=0"`
}
