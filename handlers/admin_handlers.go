package handlers

import (
	"errors"
	"sync"
	"time"

	"wishlist-lite/logger"
	"wishlist-lite/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	adminCookieName = "admin_session"
	sessionTTL      = 12 * time.Hour
)

// sessionStore keeps admin session tokens in memory. Sessions do not
// survive a restart; admins just log in again.
type sessionStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time // token -> expiry
}

func newSessionStore() *sessionStore {
	return &sessionStore{tokens: map[string]time.Time{}}
}

func (s *sessionStore) create() string {
	token := uuid.New().String()
	s.mu.Lock()
	s.tokens[token] = time.Now().Add(sessionTTL)
	s.mu.Unlock()
	return token
}

func (s *sessionStore) valid(token string) bool {
	if token == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.tokens[token]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(s.tokens, token)
		return false
	}
	return true
}

func (s *sessionStore) revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// AdminHandler serves the user-management API behind a password gate. The
// password comes from configuration; when it is empty the whole admin API
// refuses access.
type AdminHandler struct {
	users    UserStore
	sessions *sessionStore
	password string
	log      logger.Logger
}

func NewAdminHandler(users UserStore, password string, log logger.Logger) *AdminHandler {
	return &AdminHandler{
		users:    users,
		sessions: newSessionStore(),
		password: password,
		log:      log,
	}
}

type loginPayload struct {
	Password string `json:"password"`
}

type usernamePayload struct {
	Username string `json:"username"`
}

// Login exchanges the admin password for a session cookie.
func (a *AdminHandler) Login(c *fiber.Ctx) error {
	payload := new(loginPayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Cannot parse JSON payload")
	}
	if a.password == "" || payload.Password != a.password {
		a.log.Warn("admin login rejected")
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Invalid password"})
	}

	token := a.sessions.create()
	c.Cookie(&fiber.Cookie{
		Name:     adminCookieName,
		Value:    token,
		Expires:  time.Now().Add(sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"status": "ok"})
}

// Logout revokes the current session.
func (a *AdminHandler) Logout(c *fiber.Ctx) error {
	a.sessions.revoke(c.Cookies(adminCookieName))
	c.ClearCookie(adminCookieName)
	return c.JSON(fiber.Map{"status": "logged_out"})
}

// RequireAuth guards the management routes.
func (a *AdminHandler) RequireAuth(c *fiber.Ctx) error {
	if !a.sessions.valid(c.Cookies(adminCookieName)) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.Next()
}

// ListUsers returns every user with its item count for the dashboard.
func (a *AdminHandler) ListUsers(c *fiber.Ctx) error {
	rows, err := a.users.ListWithCounts()
	if err != nil {
		a.log.Error("admin user listing failed", logger.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if rows == nil {
		rows = []repository.UserWithCount{}
	}
	return c.JSON(fiber.Map{"users": rows})
}

// AddUser creates a user profile; adding an existing username is a no-op.
func (a *AdminHandler) AddUser(c *fiber.Ctx) error {
	payload := new(usernamePayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Cannot parse JSON payload")
	}
	if payload.Username == "" {
		return badRequest(c, "Username required")
	}
	if _, err := a.users.FindOrCreate(payload.Username); err != nil {
		a.log.Error("admin add user failed", logger.String("username", payload.Username), logger.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "added", "username": payload.Username})
}

// DeleteUser removes a user and all of their items.
func (a *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	payload := new(usernamePayload)
	if err := c.BodyParser(payload); err != nil {
		return badRequest(c, "Cannot parse JSON payload")
	}
	if err := a.users.DeleteCascade(payload.Username); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		a.log.Error("admin delete user failed", logger.String("username", payload.Username), logger.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}
