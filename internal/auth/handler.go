package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/drizz21/car-rent-new/internal/config"
	"github.com/drizz21/car-rent-new/internal/httpx"
	"github.com/drizz21/car-rent-new/internal/models"
	"github.com/drizz21/car-rent-new/internal/repository"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	CreateOwner(ctx context.Context, u *models.User) error
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

const msgEmailTaken = "Email sudah terdaftar"

func newUser(body RegisterRequest, role models.UserRole) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Password gagal di-hash")
	}
	return &models.User{
		Name:         strings.TrimSpace(body.Name),
		Email:        strings.TrimSpace(strings.ToLower(body.Email)),
		PasswordHash: string(hash),
		Role:         role,
	}, nil
}

// RegisterOwnerHandler bootstraps the single owner account. It refuses once
// an owner exists.
func RegisterOwnerHandler(users UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := httpx.Bind(c, &body); err != nil {
			return err
		}

		user, err := newUser(body, models.RoleOwner)
		if err != nil {
			return err
		}
		err = users.CreateOwner(c.UserContext(), user)
		if errors.Is(err, repository.ErrOwnerExists) {
			return fiber.NewError(fiber.StatusForbidden, "Owner sudah terdaftar")
		}
		if err != nil {
			return httpx.StoreError(err, "", msgEmailTaken)
		}
		return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
	}
}

// CreateStaffHandler lets the owner add staff accounts.
func CreateStaffHandler(users UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := httpx.Bind(c, &body); err != nil {
			return err
		}
		user, err := newUser(body, models.RoleStaff)
		if err != nil {
			return err
		}
		if err := users.Create(c.UserContext(), user); err != nil {
			return httpx.StoreError(err, "", msgEmailTaken)
		}
		return c.Status(fiber.StatusCreated).JSON(toUserResponse(user))
	}
}

func LoginHandler(cfg *config.Config, users UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := httpx.Bind(c, &body); err != nil {
			return err
		}

		user, err := users.FindByEmail(c.UserContext(), body.Email)
		if errors.Is(err, repository.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
		}
		if err != nil {
			return err
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
		}

		token, err := GenerateToken(cfg.JWTSecret, cfg.TokenTTL, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token gagal dibuat")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user":  toUserResponse(user),
		})
	}
}

func MeHandler(users UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		me, ok := CurrentUser(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Pengguna tidak dikenali")
		}

		user, err := users.Get(c.UserContext(), me.UserID)
		if err != nil {
			// Token is still valid; fall back to its claims.
			return c.JSON(fiber.Map{
				"id":   me.UserID,
				"name": me.Name,
				"role": me.Role,
			})
		}
		return c.JSON(toUserResponse(user))
	}
}
