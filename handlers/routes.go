package handlers

import "github.com/gofiber/fiber/v2"

// SetupRoutes wires the API. Fixed-segment routes (/api/users, /api/admin)
// must be registered before the :username wildcards.
func SetupRoutes(app *fiber.App, h *Handler, admin *AdminHandler) {
	api := app.Group("/api")

	api.Get("/users", h.ListUsers)

	adminRoutes := api.Group("/admin")
	adminRoutes.Post("/login", admin.Login)
	adminRoutes.Post("/logout", admin.Logout)
	adminRoutes.Get("/users", admin.RequireAuth, admin.ListUsers)
	adminRoutes.Post("/add_user", admin.RequireAuth, admin.AddUser)
	adminRoutes.Post("/delete_user", admin.RequireAuth, admin.DeleteUser)

	userRoutes := api.Group("/:username")
	userRoutes.Get("/wishlist", h.GetWishlist)
	userRoutes.Get("/archive", h.GetArchive)
	userRoutes.Post("/add", h.AddItem)
	userRoutes.Post("/delete", h.DeleteItem)
	userRoutes.Post("/mark_purchased", h.MarkPurchased)
	userRoutes.Post("/unmark_purchased", h.UnmarkPurchased)
	userRoutes.Post("/archive_purchased", h.ArchivePurchased)
	userRoutes.Post("/restore", h.RestoreItem)
	userRoutes.Get("/info", h.GetUserInfo)
	userRoutes.Post("/set_link", h.SetExternalLink)

	app.Get("/:username", h.UserPage)
}
