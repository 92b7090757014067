package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"jamaahku_backend/internals/constants"
	memberController "jamaahku_backend/internals/features/members/controller"
	authMw "jamaahku_backend/internals/middlewares/auth"
)

func MemberRoutes(user fiber.Router, admin fiber.Router, db *gorm.DB) {
	ctrl := memberController.NewMemberController(db)

	// jamaah: profil keanggotaan sendiri
	user.Get("/members/me", ctrl.GetMe)

	// pengurus: daftar jamaah (bendahara perlu untuk papan iuran)
	admin.Get("/members", ctrl.GetAll)

	// admin: kelola data jamaah
	adminOnly := authMw.OnlyRoles(constants.RoleErrorAdmin("data jamaah"), constants.AdminOnly...)
	admin.Post("/members", adminOnly, ctrl.Create)
	admin.Put("/members/:id", adminOnly, ctrl.Update)
	admin.Delete("/members/:id", adminOnly, ctrl.Delete)
}
