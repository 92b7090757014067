// 📁 controller/auth_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"jamaahku_backend/internals/constants"
	memberModel "jamaahku_backend/internals/features/members/model"
	"jamaahku_backend/internals/features/users/auth/dto"
	"jamaahku_backend/internals/features/users/auth/model"
	authService "jamaahku_backend/internals/features/users/auth/service"
	helper "jamaahku_backend/internals/helpers"
)

var validate = validator.New()

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// 🟢 LOGIN: verifikasi email+password (bcrypt) lalu terbitkan JWT
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var user model.User
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&user, "user_email = ?", body.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
		}
		log.Println("[ERROR] login lookup:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses login")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(body.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email atau password salah")
	}

	token, err := authService.GenerateAccessToken(&user)
	if err != nil {
		log.Println("[ERROR] generate token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}

	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		AccessToken: token,
		Role:        user.UserRole,
		UserID:      user.UserID,
		MemberID:    user.UserMemberID,
	})
}

// 🟢 REGISTER (admin): buat data keanggotaan + akun login sekaligus
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var body dto.RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	role := body.Role
	if role == "" {
		role = constants.RoleJamaah
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	var user model.User
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		member := memberModel.Member{
			MemberFullName:  body.FullName,
			MemberPhone:     body.Phone,
			MemberIsActive:  true,
			MemberFeeStatus: memberModel.FeeStatusNormal,
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		user = model.User{
			UserEmail:    body.Email,
			UserPassword: string(hashed),
			UserRole:     role,
			UserMemberID: &member.MemberID,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
		}
		log.Println("[ERROR] register:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mendaftarkan akun")
	}

	return helper.JsonCreated(c, "Akun berhasil dibuat", fiber.Map{
		"user_id":   user.UserID,
		"member_id": user.UserMemberID,
		"role":      user.UserRole,
	})
}
