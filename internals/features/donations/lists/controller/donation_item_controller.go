// 📁 controller/donation_item_controller.go
package controller

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"jamaahku_backend/internals/features/donations/lists/dto"
	"jamaahku_backend/internals/features/donations/lists/model"
	pledgeModel "jamaahku_backend/internals/features/donations/pledges/model"
	helper "jamaahku_backend/internals/helpers"
	ossHelper "jamaahku_backend/internals/helpers/oss"
)

// 🟢 CREATE ITEM (admin): multipart (dengan gambar) atau JSON biasa
func (ctrl *DonationListController) CreateItem(c *fiber.Ctx) error {
	listID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID list tidak valid")
	}

	var exists int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.DonationList{}).
		Where("donation_list_id = ?", listID).
		Count(&exists).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	if exists == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "List donasi tidak ditemukan")
	}

	var body dto.CreateDonationItemRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	// form multipart mengirim qty sebagai string
	if raw := c.FormValue("requested_qty"); raw != "" && body.RequestedQty == nil {
		q, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "requested_qty tidak valid")
		}
		body.RequestedQty = &q
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	item := model.DonationItem{
		DonationItemListID:       listID,
		DonationItemName:         body.Name,
		DonationItemUnit:         body.Unit,
		DonationItemRequestedQty: body.RequestedQty,
	}

	// 🖼️ gambar opsional
	if ctrl.OSS != nil {
		if file, err := ossHelper.GetImageFile(c); err == nil && file != nil {
			url, err := ctrl.OSS.UploadAsWebP(c.UserContext(), file, "donation-items")
			if err != nil {
				log.Println("[ERROR] upload item image:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengunggah gambar")
			}
			item.DonationItemImageURL = url
		}
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&item).Error; err != nil {
		log.Println("[ERROR] create donation item:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan item")
	}
	return helper.JsonCreated(c, "Item donasi berhasil ditambahkan", item)
}

// 🟢 UPDATE ITEM (admin)
func (ctrl *DonationListController) UpdateItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID item tidak valid")
	}

	var body dto.UpdateDonationItemRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var item model.DonationItem
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&item, "donation_item_id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Item tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	if body.Name != nil {
		item.DonationItemName = *body.Name
	}
	if body.Unit != nil {
		item.DonationItemUnit = *body.Unit
	}
	if body.RequestedQty != nil {
		if *body.RequestedQty <= 0 {
			// kirim 0/negatif = lepas kuota, item jadi tidak terbatas
			item.DonationItemRequestedQty = nil
		} else {
			item.DonationItemRequestedQty = body.RequestedQty
		}
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&item).Error; err != nil {
		log.Println("[ERROR] update donation item:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan perubahan")
	}
	return helper.JsonUpdated(c, "Item donasi berhasil diperbarui", item)
}

// 🟢 DELETE ITEM (admin): pledge yang menempel ikut terhapus
func (ctrl *DonationListController) DeleteItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID item tidak valid")
	}

	var imageURL string
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var item model.DonationItem
		if err := tx.First(&item, "donation_item_id = ?", itemID).Error; err != nil {
			return err
		}
		imageURL = item.DonationItemImageURL

		if err := tx.Where("donation_pledge_item_id = ?", itemID).
			Delete(&pledgeModel.DonationPledge{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.DonationItem{}, "donation_item_id = ?", itemID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Item tidak ditemukan")
		}
		log.Println("[ERROR] delete donation item:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus item")
	}

	// best-effort, row sudah hilang
	if ctrl.OSS != nil && imageURL != "" {
		if err := ctrl.OSS.DeleteByPublicURL(c.UserContext(), imageURL); err != nil {
			log.Println("[WARN] delete item image:", err)
		}
	}

	return helper.JsonDeleted(c, "Item donasi berhasil dihapus", fiber.Map{"donation_item_id": itemID})
}
