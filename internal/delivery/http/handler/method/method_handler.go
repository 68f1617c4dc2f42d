package method

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	methoduc "github.com/nicklvs1307/gestao-sub001/internal/usecase/method"
)

type Handler struct {
	uc *methoduc.Usecase
}

func New(uc *methoduc.Usecase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var in methoduc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	m, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapErr(err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

func (h *Handler) List(c *fiber.Ctx) error {
	ms, err := h.uc.List(c.Context(), c.QueryBool("active", false))
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(ms)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	var in methoduc.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	m, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(m)
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, methoduc.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, methoduc.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
}
