package bot

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	botuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/bot"
)

type Handler struct {
	uc *botuc.Usecase
}

func New(uc *botuc.Usecase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) Get(c *fiber.Ctx) error {
	s, err := h.uc.Get(c.Context())
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(s)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	var in botuc.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	s, err := h.uc.Update(c.Context(), in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(s)
}

// Status asks the gateway whether a device is connected.
func (h *Handler) Status(c *fiber.Ctx) error {
	st, err := h.uc.Status(c.Context())
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(st)
}

type testRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (h *Handler) SendTest(c *fiber.Ctx) error {
	var req testRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if err := h.uc.SendTest(c.Context(), req.Phone, req.Message); err != nil {
		return mapErr(err)
	}
	return c.JSON(fiber.Map{"sent": true})
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, botuc.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, botuc.ErrNoGateway):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, botuc.ErrDisabled):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
}
