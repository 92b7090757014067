package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"jamaahku_backend/internals/constants"
	listController "jamaahku_backend/internals/features/donations/lists/controller"
	pledgeController "jamaahku_backend/internals/features/donations/pledges/controller"
	ossHelper "jamaahku_backend/internals/helpers/oss"
	authMw "jamaahku_backend/internals/middlewares/auth"
)

func DonationRoutes(public fiber.Router, user fiber.Router, admin fiber.Router, db *gorm.DB, oss *ossHelper.OSSService) {
	listCtrl := listController.NewDonationListController(db, oss)
	pledgeCtrl := pledgeController.NewPledgeController(db)

	// publik: daftar kebutuhan bisa dilihat tanpa login
	public.Get("/donation-lists", listCtrl.GetAll)
	public.Get("/donation-lists/:id", listCtrl.GetByID)

	// jamaah
	user.Get("/donation-lists", listCtrl.GetAll)
	user.Get("/donation-lists/:id", listCtrl.GetByID)
	user.Get("/donation-lists/:id/share", listCtrl.Share)
	user.Post("/pledges", pledgeCtrl.Create)
	user.Get("/pledges/me", pledgeCtrl.GetMine)

	// admin: kelola list, item, dan koreksi pledge
	adminOnly := authMw.OnlyRoles(constants.RoleErrorAdmin("list donasi"), constants.AdminOnly...)
	admin.Post("/donation-lists", adminOnly, listCtrl.Create)
	admin.Put("/donation-lists/:id", adminOnly, listCtrl.Update)
	admin.Delete("/donation-lists/:id", adminOnly, listCtrl.Delete)
	admin.Post("/donation-lists/:id/items", adminOnly, listCtrl.CreateItem)
	admin.Post("/donation-lists/:id/import-items", adminOnly, listCtrl.ImportItems)
	admin.Put("/donation-items/:itemId", adminOnly, listCtrl.UpdateItem)
	admin.Delete("/donation-items/:itemId", adminOnly, listCtrl.DeleteItem)
	admin.Delete("/pledges/:id", adminOnly, pledgeCtrl.Delete)
}
