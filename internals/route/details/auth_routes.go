package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"jamaahku_backend/internals/constants"
	authController "jamaahku_backend/internals/features/users/auth/controller"
	"jamaahku_backend/internals/middlewares"
	authMw "jamaahku_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, admin fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)

	// login dibatasi rate limiter khusus
	app.Post("/api/auth/login", middlewares.LoginRateLimiter(), ctrl.Login)

	// pembuatan akun hanya lewat admin
	admin.Post("/auth/register",
		authMw.OnlyRoles(constants.RoleErrorAdmin("registrasi akun"), constants.AdminOnly...),
		ctrl.Register,
	)
}
