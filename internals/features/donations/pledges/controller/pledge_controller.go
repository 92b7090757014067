// 📁 controller/pledge_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	listModel "jamaahku_backend/internals/features/donations/lists/model"
	"jamaahku_backend/internals/features/donations/pledges/dto"
	"jamaahku_backend/internals/features/donations/pledges/model"
	"jamaahku_backend/internals/features/donations/pledges/service"
	helper "jamaahku_backend/internals/helpers"
	authMw "jamaahku_backend/internals/middlewares/auth"
)

var validate = validator.New()

type PledgeController struct {
	DB     *gorm.DB
	Ledger *service.Ledger
}

func NewPledgeController(db *gorm.DB) *PledgeController {
	return &PledgeController{
		DB:     db,
		Ledger: service.NewLedger(service.NewGormStore(db)),
	}
}

// 🟢 SUBMIT PLEDGE (jamaah): kuota dicek ulang di dalam transaksi,
// submit bersamaan tidak bisa menembus kuota
func (ctrl *PledgeController) Create(c *fiber.Ctx) error {
	sess, err := authMw.SessionFromCtx(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var body dto.CreatePledgeRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	pledge, err := ctrl.Ledger.SubmitPledge(c.UserContext(), sess, body.ItemID, body.Qty)
	if err != nil {
		var quotaErr *service.QuotaExceededError
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			return helper.JsonError(c, fiber.StatusBadRequest, "Jumlah pledge harus lebih dari 0")
		case errors.Is(err, service.ErrNoMember):
			return helper.JsonError(c, fiber.StatusForbidden, "Akun belum terhubung ke data jamaah")
		case errors.Is(err, service.ErrNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Item donasi tidak ditemukan")
		case errors.As(err, &quotaErr):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error":     "Kuota item tidak cukup",
				"remaining": quotaErr.Remaining,
			})
		default:
			log.Println("[ERROR] submit pledge:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan pledge")
		}
	}

	return helper.JsonCreated(c, "Pledge berhasil dicatat", pledge)
}

// pledge + konteks item-nya, untuk riwayat milik jamaah
type myPledgeView struct {
	Pledge   model.DonationPledge `json:"pledge"`
	ItemName string               `json:"item_name"`
	ItemUnit string               `json:"item_unit"`
}

// 🟢 GET MY PLEDGES (jamaah)
func (ctrl *PledgeController) GetMine(c *fiber.Ctx) error {
	sess, err := authMw.SessionFromCtx(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if sess.MemberID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Akun belum terhubung ke data jamaah")
	}

	var pledges []model.DonationPledge
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("donation_pledge_member_id = ?", sess.MemberID).
		Order("created_at desc").
		Find(&pledges).Error; err != nil {
		log.Println("[ERROR] list my pledges:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	itemIDs := make([]uuid.UUID, 0, len(pledges))
	seen := map[uuid.UUID]struct{}{}
	for _, p := range pledges {
		if _, ok := seen[p.DonationPledgeItemID]; !ok {
			seen[p.DonationPledgeItemID] = struct{}{}
			itemIDs = append(itemIDs, p.DonationPledgeItemID)
		}
	}

	itemsByID := map[uuid.UUID]listModel.DonationItem{}
	if len(itemIDs) > 0 {
		var items []listModel.DonationItem
		if err := ctrl.DB.WithContext(c.UserContext()).
			Where("donation_item_id IN ?", itemIDs).
			Find(&items).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
		}
		for _, it := range items {
			itemsByID[it.DonationItemID] = it
		}
	}

	views := make([]myPledgeView, 0, len(pledges))
	for _, p := range pledges {
		it := itemsByID[p.DonationPledgeItemID]
		views = append(views, myPledgeView{
			Pledge:   p,
			ItemName: it.DonationItemName,
			ItemUnit: it.DonationItemUnit,
		})
	}

	return helper.JsonOK(c, "Riwayat pledge", views)
}

// 🟢 DELETE PLEDGE (admin): koreksi manual, total item turun mengikuti
func (ctrl *PledgeController) Delete(c *fiber.Ctx) error {
	pledgeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pledge tidak valid")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Delete(&model.DonationPledge{}, "donation_pledge_id = ?", pledgeID)
	if res.Error != nil {
		log.Println("[ERROR] delete pledge:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus pledge")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Pledge tidak ditemukan")
	}

	return helper.JsonDeleted(c, "Pledge berhasil dihapus", fiber.Map{"donation_pledge_id": pledgeID})
}
