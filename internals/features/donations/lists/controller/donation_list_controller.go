// 📁 controller/donation_list_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"jamaahku_backend/internals/features/donations/lists/dto"
	"jamaahku_backend/internals/features/donations/lists/model"
	pledgeDto "jamaahku_backend/internals/features/donations/pledges/dto"
	pledgeModel "jamaahku_backend/internals/features/donations/pledges/model"
	pledgeService "jamaahku_backend/internals/features/donations/pledges/service"
	memberModel "jamaahku_backend/internals/features/members/model"
	helper "jamaahku_backend/internals/helpers"
	ossHelper "jamaahku_backend/internals/helpers/oss"
)

var validate = validator.New()

type DonationListController struct {
	DB     *gorm.DB
	Ledger *pledgeService.Ledger
	OSS    *ossHelper.OSSService // nil kalau blob store tidak dikonfigurasi
}

func NewDonationListController(db *gorm.DB, oss *ossHelper.OSSService) *DonationListController {
	return &DonationListController{
		DB:     db,
		Ledger: pledgeService.NewLedger(pledgeService.NewGormStore(db)),
		OSS:    oss,
	}
}

/* ================================
   List CRUD
================================ */

// 🟢 CREATE LIST (admin)
func (ctrl *DonationListController) Create(c *fiber.Ctx) error {
	var body dto.CreateDonationListRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	list := model.DonationList{
		DonationListName:        body.Name,
		DonationListDescription: body.Description,
	}
	if body.EventDate != nil {
		d, _ := time.Parse("2006-01-02", *body.EventDate)
		list.DonationListEventDate = &d
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&list).Error; err != nil {
		log.Println("[ERROR] create donation list:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan list donasi")
	}
	return helper.JsonCreated(c, "List donasi berhasil dibuat", list)
}

// 🟢 GET ALL LISTS
func (ctrl *DonationListController) GetAll(c *fiber.Ctx) error {
	paging := helper.ParsePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.DonationList{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var lists []model.DonationList
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("created_at desc").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&lists).Error; err != nil {
		log.Println("[ERROR] list donation lists:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar list donasi", lists, &pagination)
}

// itemView: item + view pemenuhan + roster pledger (yang dirender UI)
type itemView struct {
	Item      model.DonationItem      `json:"item"`
	Aggregate pledgeService.Aggregate `json:"aggregate"`
	Pledgers  []pledgeDto.PledgerView `json:"pledgers"`
}

// 🟢 GET LIST BY ID: detail + aggregate per item. Total SELALU dihitung
// ulang dari set pledge lengkap, bukan dari cache render sebelumnya.
func (ctrl *DonationListController) GetByID(c *fiber.Ctx) error {
	listID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID list tidak valid")
	}

	list, items, pledgesByItem, names, err := ctrl.fetchListDetail(c, listID)
	if err != nil {
		if errors.Is(err, pledgeService.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "List donasi tidak ditemukan")
		}
		log.Println("[ERROR] list detail:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	views := make([]itemView, 0, len(items))
	for i := range items {
		it := items[i]
		pledges := pledgesByItem[it.DonationItemID]

		pledgers := make([]pledgeDto.PledgerView, 0, len(pledges))
		for _, p := range pledges {
			pledgers = append(pledgers, pledgeDto.PledgerView{
				MemberID:   p.DonationPledgeMemberID,
				MemberName: names[p.DonationPledgeMemberID],
				Qty:        p.DonationPledgeQty,
			})
		}
		views = append(views, itemView{
			Item:      it,
			Aggregate: pledgeService.AggregateFromPledges(&it, pledges),
			Pledgers:  pledgers,
		})
	}

	return helper.JsonOK(c, "Detail list donasi", fiber.Map{
		"list":  list,
		"items": views,
	})
}

// 🟢 UPDATE LIST (admin, metadata saja)
func (ctrl *DonationListController) Update(c *fiber.Ctx) error {
	listID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID list tidak valid")
	}

	var body dto.UpdateDonationListRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var list model.DonationList
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&list, "donation_list_id = ?", listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "List donasi tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	if body.Name != nil {
		list.DonationListName = *body.Name
	}
	if body.Description != nil {
		list.DonationListDescription = *body.Description
	}
	if body.EventDate != nil {
		d, _ := time.Parse("2006-01-02", *body.EventDate)
		list.DonationListEventDate = &d
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&list).Error; err != nil {
		log.Println("[ERROR] update donation list:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan perubahan")
	}
	return helper.JsonUpdated(c, "List donasi berhasil diperbarui", list)
}

// 🟢 DELETE LIST (admin): hapus list sekaligus item-nya (cascade)
func (ctrl *DonationListController) Delete(c *fiber.Ctx) error {
	listID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID list tidak valid")
	}

	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("donation_item_list_id = ?", listID).
			Delete(&model.DonationItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.DonationList{}, "donation_list_id = ?", listID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "List donasi tidak ditemukan")
		}
		log.Println("[ERROR] delete donation list:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus list")
	}
	return helper.JsonDeleted(c, "List donasi berhasil dihapus", fiber.Map{"donation_list_id": listID})
}

/* ================================
   ImportItems & Share
================================ */

// 🟢 IMPORT ITEMS (admin): salin definisi item dari list lain, pledge tidak ikut
func (ctrl *DonationListController) ImportItems(c *fiber.Ctx) error {
	targetListID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID list tidak valid")
	}

	var body dto.ImportItemsRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	count, err := ctrl.Ledger.ImportItems(c.UserContext(), body.ItemIDs, targetListID)
	if err != nil {
		if errors.Is(err, pledgeService.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "List tujuan tidak ditemukan")
		}
		log.Println("[ERROR] import items:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengimpor item")
	}

	return helper.JsonOK(c, "Item berhasil diimpor", fiber.Map{"imported": count})
}

// 🟢 SHARE: teks rekap siap share. ?item_id= untuk satu item saja.
func (ctrl *DonationListController) Share(c *fiber.Ctx) error {
	listID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID list tidak valid")
	}

	var onlyItem *uuid.UUID
	if raw := c.Query("item_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "item_id tidak valid")
		}
		onlyItem = &id
	}

	list, items, pledgesByItem, names, err := ctrl.fetchListDetail(c, listID)
	if err != nil {
		if errors.Is(err, pledgeService.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "List donasi tidak ditemukan")
		}
		log.Println("[ERROR] share detail:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	text := pledgeService.ShareSummary(list, items, pledgesByItem, names, onlyItem)
	return helper.JsonOK(c, "Rekap siap share", fiber.Map{"text": text})
}

/* ================================
   internals
================================ */

func (ctrl *DonationListController) fetchListDetail(c *fiber.Ctx, listID uuid.UUID) (
	*model.DonationList,
	[]model.DonationItem,
	map[uuid.UUID][]pledgeModel.DonationPledge,
	map[uuid.UUID]string,
	error,
) {
	ctx := c.UserContext()

	var list model.DonationList
	if err := ctrl.DB.WithContext(ctx).
		First(&list, "donation_list_id = ?", listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, nil, pledgeService.ErrNotFound
		}
		return nil, nil, nil, nil, err
	}

	var items []model.DonationItem
	if err := ctrl.DB.WithContext(ctx).
		Where("donation_item_list_id = ?", listID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	itemIDs := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		itemIDs = append(itemIDs, it.DonationItemID)
	}

	pledgesByItem := map[uuid.UUID][]pledgeModel.DonationPledge{}
	memberIDs := map[uuid.UUID]struct{}{}
	if len(itemIDs) > 0 {
		var pledges []pledgeModel.DonationPledge
		if err := ctrl.DB.WithContext(ctx).
			Where("donation_pledge_item_id IN ?", itemIDs).
			Order("created_at asc").
			Find(&pledges).Error; err != nil {
			return nil, nil, nil, nil, err
		}
		for _, p := range pledges {
			pledgesByItem[p.DonationPledgeItemID] = append(pledgesByItem[p.DonationPledgeItemID], p)
			memberIDs[p.DonationPledgeMemberID] = struct{}{}
		}
	}

	names := map[uuid.UUID]string{}
	if len(memberIDs) > 0 {
		ids := make([]uuid.UUID, 0, len(memberIDs))
		for id := range memberIDs {
			ids = append(ids, id)
		}
		var members []memberModel.Member
		if err := ctrl.DB.WithContext(ctx).
			Where("member_id IN ?", ids).
			Find(&members).Error; err != nil {
			return nil, nil, nil, nil, err
		}
		for _, m := range members {
			names[m.MemberID] = m.MemberFullName
		}
	}

	return &list, items, pledgesByItem, names, nil
}
