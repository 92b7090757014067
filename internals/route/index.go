// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"jamaahku_backend/internals/constants"
	ossHelper "jamaahku_backend/internals/helpers/oss"
	authMw "jamaahku_backend/internals/middlewares/auth"
	routeDetails "jamaahku_backend/internals/route/details"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Blob store opsional: tanpa env OSS, upload gambar/bukti dimatikan
	oss, err := ossHelper.NewOSSServiceFromEnv("jamaahku")
	if err != nil {
		log.Println("[WARN] OSS tidak dikonfigurasi, fitur upload nonaktif:", err)
		oss = nil
	}

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	user := app.Group("/api/u", authMw.AuthMiddleware())

	// ===================== PENGURUS =====================
	log.Println("[INFO] Setting up PENGURUS group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMw.AuthMiddleware(),
		authMw.OnlyRoles(constants.RoleErrorPengurus("portal pengurus"), constants.PengurusRoles...),
	)

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, admin, db)

	log.Println("[INFO] Setting up MemberRoutes...")
	routeDetails.MemberRoutes(user, admin, db)

	log.Println("[INFO] Setting up DonationRoutes...")
	routeDetails.DonationRoutes(public, user, admin, db, oss)

	log.Println("[INFO] Setting up FinanceRoutes...")
	routeDetails.FinanceRoutes(app, user, admin, db, oss)
}
