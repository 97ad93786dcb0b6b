package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mypunksoft/auth/config"
	"github.com/mypunksoft/auth/internal/auth/dto"
	"github.com/mypunksoft/auth/internal/auth/keyring"
	"github.com/mypunksoft/auth/internal/auth/service"
	autherror "github.com/mypunksoft/auth/internal/errors"
	"github.com/mypunksoft/auth/internal/logger"
)

const sessionCookie = "jwt"

const (
	msgKeyExpired      = "Encryption key expired or does not exist. Please request a new one."
	msgInvalidPayload  = "Unable to decrypt payload."
	msgUsernameShort   = "Username must be at least 3 characters."
	msgPasswordShort   = "Password must be at least 6 characters."
	msgUsernameTaken   = "Username already exists."
	msgRegistered      = "User registered successfully! Now log in."
	msgInvalidLogin    = "Invalid username or password."
	msgLoginSuccess    = "Login successful! Welcome!"
	msgLoggedOut       = "Logged out successfully"
	msgUnauthorized    = "Unauthorized"
	msgBadToken        = "Token is invalid or expired."
	msgAuthorized      = "You are authorized!"
	msgUserNotFound    = "User not found"
	msgUserIDMissing   = "User ID not provided."
	msgDetailsSaved    = "Additional data saved successfully!"
	msgStoreFailure    = "Database error"
)

type AuthHandler struct {
	userService *service.UserService
	tokens      service.TokenGenerator
	keys        *keyring.Registry
	cfg         *config.Config
	log         *logger.Logger
}

func NewAuthHandler(userService *service.UserService, tokens service.TokenGenerator, keys *keyring.Registry, cfg *config.Config, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		tokens:      tokens,
		keys:        keys,
		cfg:         cfg,
		log:         log,
	}
}

func (h *AuthHandler) GenerateKey(c *fiber.Ctx) error {
	var input dto.GenerateKeyInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid input",
		})
	}

	key, err := h.keys.Issue(input.UserID)
	if err != nil {
		h.log.Error("failed to issue encryption key", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": msgStoreFailure,
		})
	}

	return c.JSON(dto.GenerateKeyOutput{KeyHash: key})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid input",
		})
	}

	_, err := h.userService.Register(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, autherror.ErrKeyExpired):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message":    msgKeyExpired,
				"refreshKey": true,
			})
		case errors.Is(err, autherror.ErrInvalidPayload):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msgInvalidPayload})
		case errors.Is(err, autherror.ErrUsernameTooShort):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msgUsernameShort})
		case errors.Is(err, autherror.ErrPasswordTooShort):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msgPasswordShort})
		case errors.Is(err, autherror.ErrUsernameTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msgUsernameTaken})
		default:
			h.log.Error("database error during registration", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": msgStoreFailure})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": msgRegistered})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid input",
		})
	}

	out, err := h.userService.Login(c.Context(), input)
	if err != nil {
		var invalidCreds *autherror.InvalidCredentialsError
		switch {
		case errors.Is(err, autherror.ErrKeyExpired):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message":    msgKeyExpired,
				"refreshKey": true,
			})
		case errors.Is(err, autherror.ErrInvalidPayload):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msgInvalidPayload})
		case errors.As(err, &invalidCreds):
			body := fiber.Map{"message": msgInvalidLogin}
			if invalidCreds.AttemptsLeft != nil {
				body["attemptsLeft"] = *invalidCreds.AttemptsLeft
			}
			return c.Status(fiber.StatusBadRequest).JSON(body)
		default:
			h.log.Error("database error during login", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": msgStoreFailure})
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    out.Token,
		Expires:  time.Now().Add(h.tokens.Expiry()),
		HTTPOnly: true,
		Secure:   h.cfg.SecureCookies(),
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": msgLoginSuccess,
		"user": fiber.Map{
			"id":       out.UserID,
			"username": out.Username,
		},
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.SecureCookies(),
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":   msgLoggedOut,
		"loggedOut": true,
	})
}

func (h *AuthHandler) Protected(c *fiber.Ctx) error {
	token := c.Cookies(sessionCookie)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": msgUnauthorized})
	}

	userID, err := h.tokens.Verify(token)
	if err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": msgBadToken})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": msgAuthorized,
		"userId":  userID,
	})
}

func (h *AuthHandler) GetUserID(c *fiber.Ctx) error {
	username := c.Query("username")

	id, err := h.userService.GetUserID(c.Context(), username)
	if err != nil {
		if errors.Is(err, autherror.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": msgUserNotFound})
		}
		h.log.Error("database error during user id lookup", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": msgStoreFailure})
	}

	return c.JSON(fiber.Map{"userId": id})
}

func (h *AuthHandler) AdditionalData(c *fiber.Ctx) error {
	var input dto.AdditionalDataInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "invalid input",
		})
	}

	err := h.userService.SaveAdditionalData(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, autherror.ErrKeyExpired):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": msgKeyExpired})
		case errors.Is(err, autherror.ErrInvalidPayload):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msgInvalidPayload})
		case errors.Is(err, autherror.ErrMissingUserID):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": msgUserIDMissing})
		default:
			h.log.Error("database error while saving additional data", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": msgStoreFailure})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": msgDetailsSaved})
}
