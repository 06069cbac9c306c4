package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/atulsm/user-service/internal/user/dto"
	"github.com/atulsm/user-service/internal/user/service"
	"github.com/atulsm/user-service/pkg/constant"
)

const dateLayout = "2006-01-02"

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", constant.DefaultListLimit)
	offset := c.QueryInt("offset", 0)

	users, err := h.userService.List(c.Context(), limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}

	response := make([]dto.UserOutput, len(users))
	for i, user := range users {
		response[i] = dto.FromUser(user)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.userService.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.FromUser(user))
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input dto.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	user, err := h.userService.Create(c.Context(), input)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.FromUser(user))
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	var input dto.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	user, err := h.userService.Update(c.Context(), c.Params("id"), input)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.FromUser(user))
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.userService.Delete(c.Context(), c.Params("id")); err != nil {
		return errorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals(localsUserIDKey).(string)

	user, err := h.userService.Get(c.Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.FromUser(user))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals(localsUserIDKey).(string)

	var input dto.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid input"})
	}

	user, err := h.userService.Update(c.Context(), userID, input)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.FromUser(user))
}

func (h *UserHandler) Activity(c *fiber.Ctx) error {
	start, err := time.Parse(dateLayout, c.Query("startDate"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid startDate"})
	}
	end, err := time.Parse(dateLayout, c.Query("endDate"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid endDate"})
	}

	points, err := h.userService.Activity(c.Context(), start, end)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	response := make([]dto.ActivityOutput, len(points))
	for i, p := range points {
		response[i] = dto.ActivityOutput{
			Date:        p.Date.Format(dateLayout),
			NewUsers:    p.NewUsers,
			ActiveUsers: p.ActiveUsers,
		}
	}

	return c.Status(fiber.StatusOK).JSON(response)
}

func (h *UserHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.userService.Stats(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(dto.StatsOutput{
		TotalUsers:  stats.TotalUsers,
		ActiveUsers: stats.ActiveUsers,
		NewUsers:    stats.NewUsers,
	})
}
