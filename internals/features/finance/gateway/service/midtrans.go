package service

import (
	"fmt"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"jamaahku_backend/internals/configs"
	duesModel "jamaahku_backend/internals/features/finance/dues/model"
)

var SnapClient snap.Client

// InitMidtrans harus dipanggil saat bootstrap app.
func InitMidtrans(serverKey string) {
	env := midtrans.Sandbox
	if configs.GetEnvOr("MIDTRANS_ENV", "sandbox") == "production" {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
}

// NewOrderID membuat order ID unik untuk satu tagihan iuran.
// Format ikut dibaca lagi saat webhook masuk, jangan diubah sembarangan.
func NewOrderID(p *duesModel.DuesPayment) string {
	return fmt.Sprintf("DUES-%d%02d-%s", p.DuesPaymentYear, p.DuesPaymentMonth, p.DuesPaymentID)
}

// GenerateSnapToken membuat token Snap Midtrans untuk pembayaran iuran.
func GenerateSnapToken(p *duesModel.DuesPayment, name string, email string) (string, error) {
	if p.DuesPaymentOrderID == nil {
		return "", fmt.Errorf("dues payment belum punya order id")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  *p.DuesPaymentOrderID,
			GrossAmt: int64(p.DuesPaymentAmount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
		},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}
