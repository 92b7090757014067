package seeds

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"jamaahku_backend/internals/configs"
	"jamaahku_backend/internals/constants"
	userModel "jamaahku_backend/internals/features/users/auth/model"
)

func RunAllSeeds(db *gorm.DB) {
	SeedAdminUser(db)
}

// SeedAdminUser membuat akun admin pertama dari env ADMIN_EMAIL +
// ADMIN_PASSWORD. Idempotent: kalau email sudah ada, tidak disentuh.
func SeedAdminUser(db *gorm.DB) {
	email := configs.GetEnv("ADMIN_EMAIL")
	password := configs.GetEnv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("[SEED] ADMIN_EMAIL/ADMIN_PASSWORD kosong, skip seed admin")
		return
	}

	var existing userModel.User
	err := db.First(&existing, "user_email = ?", email).Error
	if err == nil {
		log.Println("[SEED] akun admin sudah ada, skip")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("[SEED][ERROR] cek akun admin:", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("[SEED][ERROR] hash password admin:", err)
		return
	}

	admin := userModel.User{
		UserEmail:    email,
		UserPassword: string(hash),
		UserRole:     constants.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Println("[SEED][ERROR] buat akun admin:", err)
		return
	}
	log.Println("[SEED] ✅ akun admin dibuat:", email)
}
