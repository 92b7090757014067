// 📁 controller/expense_controller.go
package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"jamaahku_backend/internals/features/finance/dues/dto"
	"jamaahku_backend/internals/features/finance/dues/model"
	helper "jamaahku_backend/internals/helpers"
	authMw "jamaahku_backend/internals/middlewares/auth"
)

type ExpenseController struct {
	DB *gorm.DB
}

func NewExpenseController(db *gorm.DB) *ExpenseController {
	return &ExpenseController{DB: db}
}

// 🟢 CREATE EXPENSE (bendahara)
func (ctrl *ExpenseController) Create(c *fiber.Ctx) error {
	sess, err := authMw.SessionFromCtx(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var body dto.CreateExpenseRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	date, _ := time.Parse("2006-01-02", body.Date)
	creator := sess.UserID
	expense := model.Expense{
		ExpenseTitle:     body.Title,
		ExpenseCategory:  body.Category,
		ExpenseAmount:    body.Amount,
		ExpenseDate:      date,
		ExpenseNote:      body.Note,
		ExpenseCreatedBy: &creator,
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&expense).Error; err != nil {
		log.Println("[ERROR] create expense:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan pengeluaran")
	}
	return helper.JsonCreated(c, "Pengeluaran berhasil dicatat", expense)
}

// 🟢 GET ALL EXPENSES (bendahara): filter ?month=&year= opsional
func (ctrl *ExpenseController) GetAll(c *fiber.Ctx) error {
	paging := helper.ParsePaging(c, 20, 100)

	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.Expense{})
	if c.Query("month") != "" || c.Query("year") != "" {
		period, err := parsePeriod(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Periode tidak valid (month 1..12, year wajib)")
		}
		from, to := period.Bounds()
		q = q.Where("expense_date >= ? AND expense_date < ?", from, to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	var expenses []model.Expense
	if err := q.Order("expense_date desc, created_at desc").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&expenses).Error; err != nil {
		log.Println("[ERROR] list expenses:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Daftar pengeluaran", expenses, &pagination)
}

// 🟢 UPDATE EXPENSE (bendahara)
func (ctrl *ExpenseController) Update(c *fiber.Ctx) error {
	expenseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengeluaran tidak valid")
	}

	var body dto.UpdateExpenseRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var expense model.Expense
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&expense, "expense_id = ?", expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Pengeluaran tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	if body.Title != nil {
		expense.ExpenseTitle = *body.Title
	}
	if body.Category != nil {
		expense.ExpenseCategory = *body.Category
	}
	if body.Amount != nil {
		expense.ExpenseAmount = *body.Amount
	}
	if body.Date != nil {
		d, _ := time.Parse("2006-01-02", *body.Date)
		expense.ExpenseDate = d
	}
	if body.Note != nil {
		expense.ExpenseNote = *body.Note
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&expense).Error; err != nil {
		log.Println("[ERROR] update expense:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan perubahan")
	}
	return helper.JsonUpdated(c, "Pengeluaran berhasil diperbarui", expense)
}

// 🟢 DELETE EXPENSE (bendahara, soft delete)
func (ctrl *ExpenseController) Delete(c *fiber.Ctx) error {
	expenseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pengeluaran tidak valid")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Delete(&model.Expense{}, "expense_id = ?", expenseID)
	if res.Error != nil {
		log.Println("[ERROR] delete expense:", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus pengeluaran")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Pengeluaran tidak ditemukan")
	}

	return helper.JsonDeleted(c, "Pengeluaran berhasil dihapus", fiber.Map{"expense_id": expenseID})
}
