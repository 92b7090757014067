// 📁 controller/member_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"jamaahku_backend/internals/features/members/dto"
	"jamaahku_backend/internals/features/members/model"
	helper "jamaahku_backend/internals/helpers"
	authMw "jamaahku_backend/internals/middlewares/auth"
)

var validate = validator.New()

type MemberController struct {
	DB *gorm.DB
}

func NewMemberController(db *gorm.DB) *MemberController {
	return &MemberController{DB: db}
}

// 🟢 LIST MEMBERS (admin): ?active=true untuk filter anggota aktif saja
func (ctrl *MemberController) GetAll(c *fiber.Ctx) error {
	paging := helper.ParsePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.Member{})
	if c.Query("active") == "true" {
		q = q.Where("member_is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Println("[ERROR] count members:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data anggota")
	}

	var members []model.Member
	if err := q.Order("member_full_name asc").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&members).Error; err != nil {
		log.Println("[ERROR] list members:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data anggota")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar anggota", members, &pagination)
}

// 🟢 GET MY MEMBER: profil keanggotaan milik session
func (ctrl *MemberController) GetMe(c *fiber.Ctx) error {
	sess, err := authMw.SessionFromCtx(c)
	if err != nil {
		return err
	}
	if sess.MemberID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Akun ini tidak terhubung ke data keanggotaan")
	}

	var member model.Member
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&member, "member_id = ?", sess.MemberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Data keanggotaan tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}
	return helper.JsonOK(c, "Profil keanggotaan", member)
}

// 🟢 CREATE MEMBER (admin)
func (ctrl *MemberController) Create(c *fiber.Ctx) error {
	var body dto.CreateMemberRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	feeStatus := model.FeeStatusNormal
	if body.FeeStatus == string(model.FeeStatusExempt) {
		feeStatus = model.FeeStatusExempt
	}

	member := model.Member{
		MemberFullName:   body.FullName,
		MemberPhone:      body.Phone,
		MemberIsActive:   true,
		MemberFeeStatus:  feeStatus,
		MemberMonthlyFee: body.MonthlyFee,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&member).Error; err != nil {
		log.Println("[ERROR] create member:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan anggota")
	}
	return helper.JsonCreated(c, "Anggota berhasil dibuat", member)
}

// 🟢 UPDATE MEMBER (admin): termasuk override exempt & tarif per-anggota
func (ctrl *MemberController) Update(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID anggota tidak valid")
	}

	var body dto.UpdateMemberRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var member model.Member
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&member, "member_id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Anggota tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	if body.FullName != nil {
		member.MemberFullName = *body.FullName
	}
	if body.Phone != nil {
		member.MemberPhone = *body.Phone
	}
	if body.IsActive != nil {
		member.MemberIsActive = *body.IsActive
	}
	if body.FeeStatus != nil {
		member.MemberFeeStatus = model.FeeStatus(*body.FeeStatus)
	}
	if body.MonthlyFee != nil {
		member.MemberMonthlyFee = body.MonthlyFee
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&member).Error; err != nil {
		log.Println("[ERROR] update member:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan perubahan")
	}
	return helper.JsonUpdated(c, "Anggota berhasil diperbarui", member)
}

// 🟢 DELETE MEMBER (admin, soft delete)
func (ctrl *MemberController) Delete(c *fiber.Ctx) error {
	memberID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID anggota tidak valid")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Delete(&model.Member{}, "member_id = ?", memberID)
	if res.Error != nil {
		log.Println("[ERROR] delete member:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus anggota")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Anggota tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Anggota berhasil dihapus", fiber.Map{"member_id": memberID})
}
