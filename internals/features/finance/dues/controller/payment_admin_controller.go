// 📁 controller/payment_admin_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jamaahku_backend/internals/configs"
	"jamaahku_backend/internals/features/finance/dues/dto"
	"jamaahku_backend/internals/features/finance/dues/model"
	"jamaahku_backend/internals/features/finance/dues/service"
	memberModel "jamaahku_backend/internals/features/members/model"
	helper "jamaahku_backend/internals/helpers"
	authMw "jamaahku_backend/internals/middlewares/auth"
)

// 🟢 GET PENDING PAYMENTS (bendahara): antrian review, bukti di-signed-URL
func (ctrl *DuesPaymentController) GetPending(c *fiber.Ctx) error {
	var payments []model.DuesPayment
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("dues_payment_status = ?", model.DuesStatusPendingApproval).
		Order("created_at asc").
		Find(&payments).Error; err != nil {
		log.Println("[ERROR] list pending payments:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	names, err := ctrl.memberNames(c, payments)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	views := make([]dto.PendingPaymentView, 0, len(payments))
	for _, p := range payments {
		view := dto.PendingPaymentView{
			PaymentID:  p.DuesPaymentID,
			MemberID:   p.DuesPaymentMemberID,
			MemberName: names[p.DuesPaymentMemberID],
			Month:      p.DuesPaymentMonth,
			Year:       p.DuesPaymentYear,
			Amount:     p.DuesPaymentAmount,
			Note:       p.DuesPaymentNote,
			CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		}
		if ctrl.OSS != nil && p.DuesPaymentProofURL != "" {
			if key, err := ctrl.OSS.ExtractKeyFromPublicURL(p.DuesPaymentProofURL); err == nil {
				if signed, err := ctrl.OSS.SignedURL(key, 15*time.Minute); err == nil {
					view.ProofURL = signed
				}
			}
		}
		views = append(views, view)
	}

	return helper.JsonOK(c, "Antrian review pembayaran", views)
}

// 🟢 REVIEW PAYMENT (bendahara): approve/reject, satu arah. Baris dikunci
// supaya dua bendahara tidak mereview pembayaran yang sama bersamaan.
func (ctrl *DuesPaymentController) Review(c *fiber.Ctx) error {
	sess, err := authMw.SessionFromCtx(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pembayaran tidak valid")
	}

	var body dto.ReviewPaymentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var payment model.DuesPayment
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&payment, "dues_payment_id = ?", paymentID).Error; err != nil {
			return err
		}
		if err := service.ReviewPendingPayment(&payment, service.ReviewDecision(body.Decision), sess, time.Now()); err != nil {
			return err
		}
		return tx.Save(&payment).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Pembayaran tidak ditemukan")
		case errors.Is(err, service.ErrAlreadyReviewed):
			return helper.JsonError(c, fiber.StatusConflict, "Pembayaran sudah pernah direview")
		case errors.Is(err, service.ErrInvalidDecision):
			return helper.JsonError(c, fiber.StatusBadRequest, "Keputusan review tidak dikenal")
		default:
			log.Println("[ERROR] review payment:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan review")
		}
	}

	return helper.JsonUpdated(c, "Review pembayaran tersimpan", payment)
}

// 🟢 GET DUES BOARD (bendahara): status iuran seluruh jamaah aktif untuk
// satu periode (?month=&year=)
func (ctrl *DuesPaymentController) GetBoard(c *fiber.Ctx) error {
	period, err := parsePeriod(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Periode tidak valid (month 1..12, year wajib)")
	}

	var members []memberModel.Member
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("member_is_active = ?", true).
		Find(&members).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var payments []model.DuesPayment
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("dues_payment_month = ? AND dues_payment_year = ?", int16(period.Month), int16(period.Year)).
		Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	statuses, err := service.ComputeMemberStatuses(period, members, payments, configs.IuranBulananDefault)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	return helper.JsonOK(c, "Papan iuran "+period.String(), statuses)
}

// 🟢 GET PERIOD TOTALS (bendahara): pemasukan iuran paid vs pengeluaran
func (ctrl *DuesPaymentController) GetTotals(c *fiber.Ctx) error {
	period, err := parsePeriod(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Periode tidak valid (month 1..12, year wajib)")
	}
	from, to := period.Bounds()

	var payments []model.DuesPayment
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("dues_payment_month = ? AND dues_payment_year = ?", int16(period.Month), int16(period.Year)).
		Find(&payments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var expenses []model.Expense
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("expense_date >= ? AND expense_date < ?", from, to).
		Find(&expenses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	totals, err := service.ComputePeriodTotals(period, payments, expenses)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	return helper.JsonOK(c, "Rekap kas "+period.String(), totals)
}

/* ================================
   internals
================================ */

func parsePeriod(c *fiber.Ctx) (service.Period, error) {
	period := service.Period{
		Month: c.QueryInt("month"),
		Year:  c.QueryInt("year"),
	}
	if err := period.Validate(); err != nil {
		return service.Period{}, err
	}
	return period, nil
}

func (ctrl *DuesPaymentController) memberNames(c *fiber.Ctx, payments []model.DuesPayment) (map[uuid.UUID]string, error) {
	names := map[uuid.UUID]string{}
	if len(payments) == 0 {
		return names, nil
	}

	seen := map[uuid.UUID]struct{}{}
	ids := make([]uuid.UUID, 0, len(payments))
	for _, p := range payments {
		if _, ok := seen[p.DuesPaymentMemberID]; !ok {
			seen[p.DuesPaymentMemberID] = struct{}{}
			ids = append(ids, p.DuesPaymentMemberID)
		}
	}

	var members []memberModel.Member
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("member_id IN ?", ids).
		Find(&members).Error; err != nil {
		return nil, err
	}
	for _, m := range members {
		names[m.MemberID] = m.MemberFullName
	}
	return names, nil
}
