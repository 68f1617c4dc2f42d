package ingredient

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	ingredientuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/ingredient"
)

type Handler struct {
	uc *ingredientuc.Usecase
}

func New(uc *ingredientuc.Usecase) *Handler {
	return &Handler{uc: uc}
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var in ingredientuc.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	ing, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return mapErr(err)
	}
	return c.Status(fiber.StatusCreated).JSON(ing)
}

// List returns every ingredient, or only those at or below their
// minimum stock when ?low=true.
func (h *Handler) List(c *fiber.Ctx) error {
	ings, err := h.uc.List(c.Context(), c.QueryBool("low", false))
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(ings)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	var in ingredientuc.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	ing, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(ing)
}

func (h *Handler) Move(c *fiber.Ctx) error {
	var in ingredientuc.MoveInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	ing, err := h.uc.Move(c.Context(), c.Params("id"), in)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(ing)
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, ingredientuc.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ingredientuc.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ingredientuc.ErrInsufficientStock):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
}
