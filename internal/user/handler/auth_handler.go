package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	usererror "github.com/atulsm/user-service/internal/errors"
	"github.com/atulsm/user-service/internal/user/dto"
	"github.com/atulsm/user-service/internal/user/service"
)

type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	user, err := h.userService.Register(c.Context(), input)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FromUser(user))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	token, user, err := h.userService.Login(c.Context(), input)
	if err != nil {
		if errors.Is(err, usererror.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.LoginResponse{
		Token: token,
		User:  dto.FromUser(user),
	})
}

// Logout runs behind the auth middleware, which stashes the verified raw
// token in locals.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals(localsTokenKey).(string)

	if err := h.userService.Logout(c.Context(), token); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "successfully logged out"})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid input",
		})
	}

	if err := h.userService.ResetPassword(c.Context(), input); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "password reset successfully"})
}

// errorResponse maps domain errors onto HTTP statuses.
func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, usererror.ErrUserNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, usererror.ErrEmailAlreadyInUse):
		status = fiber.StatusConflict
	case errors.Is(err, usererror.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
