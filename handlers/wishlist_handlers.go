package handlers

import (
	"errors"

	"wishlist-lite/logger"
	"wishlist-lite/models"
	"wishlist-lite/repository"
	"wishlist-lite/wishlist"

	"github.com/gofiber/fiber/v2"
)

// UserStore is the slice of the user repository the handlers need.
type UserStore interface {
	FindOrCreate(username string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	ListUsernames() ([]string, error)
	ListWithCounts() ([]repository.UserWithCount, error)
	SetExternalLink(userID uint, link *string) error
	DeleteCascade(username string) error
}

// Handler serves the per-user wishlist API. Every operation resolves the
// :username segment to a user first; all except GetUserInfo create the
// user on first sight.
type Handler struct {
	service *wishlist.Service
	users   UserStore
	log     logger.Logger
}

func NewHandler(service *wishlist.Service, users UserStore, log logger.Logger) *Handler {
	return &Handler{service: service, users: users, log: log}
}

// ItemPayload is the request body for all url-keyed operations.
type ItemPayload struct {
	URL string `json:"url"`
}

// LinkPayload is the request body for SetExternalLink.
type LinkPayload struct {
	Link *string `json:"link"`
}

// ListUsers returns all usernames, ordered case-insensitively. Backs the
// landing page.
func (h *Handler) ListUsers(c *fiber.Ctx) error {
	names, err := h.users.ListUsernames()
	if err != nil {
		return h.internalError(c, err)
	}
	return c.JSON(fiber.Map{"users": names})
}

// GetWishlist returns the user's active items, newest first.
func (h *Handler) GetWishlist(c *fiber.Ctx) error {
	user, err := h.users.FindOrCreate(c.Params("username"))
	if err != nil {
		return h.internalError(c, err)
	}
	items, err := h.service.ListActive(user.ID)
	if err != nil {
		return h.internalError(c, err)
	}
	return c.JSON(itemsOrEmpty(items))
}

// GetArchive returns the user's archived items, newest first.
func (h *Handler) GetArchive(c *fiber.Ctx) error {
	user, err := h.users.FindOrCreate(c.Params("username"))
	if err != nil {
		return h.internalError(c, err)
	}
	items, err := h.service.ListArchived(user.ID)
	if err != nil {
		return h.internalError(c, err)
	}
	return c.JSON(itemsOrEmpty(items))
}

// AddItem adds a URL to the wishlist, restoring an archived duplicate or
// reporting an active one instead of creating a second row.
func (h *Handler) AddItem(c *fiber.Ctx) error {
	payload := new(ItemPayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Cannot parse JSON payload")
	}
	if payload.URL == "" {
		return badRequest(c, "URL cannot be empty")
	}

	user, err := h.users.FindOrCreate(c.Params("username"))
	if err != nil {
		return h.internalError(c, err)
	}

	result, err := h.service.Add(user.ID, payload.URL)
	if err != nil {
		return h.internalError(c, err)
	}

	resp := fiber.Map{"status": result.Status}
	if result.Status != wishlist.StatusExists {
		resp["title"] = result.Title
	}
	return c.JSON(resp)
}

// DeleteItem removes every row for (user, url).
func (h *Handler) DeleteItem(c *fiber.Ctx) error {
	payload := new(ItemPayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Cannot parse JSON payload")
	}
	user, err := h.users.FindOrCreate(c.Params("username"))
	if err != nil {
		return h.internalError(c, err)
	}
	if err := h.service.Delete(user.ID, payload.URL); err != nil {
		return h.internalError(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

// MarkPurchased flags every matching row as purchased.
func (h *Handler) MarkPurchased(c *fiber.Ctx) error {
	return h.setPurchased(c, true, "marked")
}

// UnmarkPurchased clears the purchased flag on every matching row.
func (h *Handler) UnmarkPurchased(c *fiber.Ctx) error {
	return h.setPurchased(c, false, "unmarked")
}

func (h *Handler) setPurchased(c *fiber.Ctx, purchased bool, status string) error {
	payload := new(ItemPayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Cannot parse JSON payload")
	}
	user, err := h.users.FindOrCreate(c.Params("username"))
	if err != nil {
		return h.internalError(c, err)
	}
	if err := h.service.SetPurchased(user.ID, payload.URL, purchased); err != nil {
		return h.internalError(c, err)
	}
	return c.JSON(fiber.Map{"status": status})
}

// ArchivePurchased bulk-archives the user's purchased active items.
func (h *Handler) ArchivePurchased(c *fiber.Ctx) error {
	user, err := h.users.FindOrCreate(c.Params("username"))
	if err != nil {
		return h.internalError(c, err)
	}
	count, err := h.service.ArchivePurchased(user.ID)
	if err != nil {
		return h.internalError(c, err)
	}
	return c.JSON(fiber.Map{"status": "archived", "count": count})
}

// RestoreItem moves an archived item back to the active list, refusing when
// the active list already holds the URL.
func (h *Handler) RestoreItem(c *fiber.Ctx) error {
	payload := new(ItemPayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Cannot parse JSON payload")
	}
	user, err := h.users.FindOrCreate(c.Params("username"))
	if err != nil {
		return h.internalError(c, err)
	}
	if err := h.service.Restore(user.ID, payload.URL); err != nil {
		if errors.Is(err, wishlist.ErrActiveExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "exists_active"})
		}
		return h.internalError(c, err)
	}
	return c.JSON(fiber.Map{"status": "restored"})
}

// GetUserInfo returns the user's external link. Unlike the other
// operations it never creates the user.
func (h *Handler) GetUserInfo(c *fiber.Ctx) error {
	user, err := h.users.FindByUsername(c.Params("username"))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return h.internalError(c, err)
	}
	return c.JSON(fiber.Map{"external_link": user.ExternalLink})
}

// SetExternalLink updates the user's external profile link.
func (h *Handler) SetExternalLink(c *fiber.Ctx) error {
	payload := new(LinkPayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Cannot parse JSON payload")
	}
	user, err := h.users.FindOrCreate(c.Params("username"))
	if err != nil {
		return h.internalError(c, err)
	}
	if err := h.users.SetExternalLink(user.ID, payload.Link); err != nil {
		return h.internalError(c, err)
	}
	return c.JSON(fiber.Map{"status": "updated", "link": payload.Link})
}

// UserPage serves the wishlist front page for an existing user, 404 for
// anyone else. This is the one page route that never creates a user.
func (h *Handler) UserPage(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "favicon.ico" {
		return c.SendStatus(fiber.StatusNotFound)
	}
	if _, err := h.users.FindByUsername(username); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).
				SendString("User not found. Please ask the administrator to create your profile.")
		}
		return h.internalError(c, err)
	}
	return c.SendFile("./static/index.html")
}

func (h *Handler) internalError(c *fiber.Ctx, err error) error {
	h.log.Error("request failed", logger.String("path", c.Path()), logger.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func itemsOrEmpty(items []models.Item) []models.Item {
	if items == nil {
		return []models.Item{}
	}
	return items
}
