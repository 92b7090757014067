package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	duesController "jamaahku_backend/internals/features/finance/dues/controller"
	gatewayController "jamaahku_backend/internals/features/finance/gateway/controller"
	ossHelper "jamaahku_backend/internals/helpers/oss"
)

func FinanceRoutes(app *fiber.App, user fiber.Router, admin fiber.Router, db *gorm.DB, oss *ossHelper.OSSService) {
	paymentCtrl := duesController.NewDuesPaymentController(db, oss)
	expenseCtrl := duesController.NewExpenseController(db)
	gatewayCtrl := gatewayController.NewGatewayController(db)

	// webhook Midtrans: tanpa auth, path ini di-skip middleware
	app.Post("/api/donations/notification", gatewayCtrl.HandleNotification)

	// jamaah
	user.Post("/dues-payments", paymentCtrl.Submit)
	user.Get("/dues-payments/me", paymentCtrl.GetMine)
	user.Post("/dues-payments/:id/gateway-token", gatewayCtrl.GatewayToken)

	// bendahara/admin
	admin.Get("/dues-payments/pending", paymentCtrl.GetPending)
	admin.Post("/dues-payments/:id/review", paymentCtrl.Review)
	admin.Get("/dues/board", paymentCtrl.GetBoard)
	admin.Get("/dues/totals", paymentCtrl.GetTotals)

	admin.Post("/expenses", expenseCtrl.Create)
	admin.Get("/expenses", expenseCtrl.GetAll)
	admin.Put("/expenses/:id", expenseCtrl.Update)
	admin.Delete("/expenses/:id", expenseCtrl.Delete)
}
