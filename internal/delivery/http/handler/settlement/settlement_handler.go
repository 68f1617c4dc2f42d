package settlement

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	settlementuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/settlement"
)

type Handler struct {
	uc *settlementuc.Usecase
}

func New(uc *settlementuc.Usecase) *Handler {
	return &Handler{uc: uc}
}

// Outstanding lists accrued, not-yet-settled dues per staff member.
func (h *Handler) Outstanding(c *fiber.Ctx) error {
	out, err := h.uc.Outstanding(c.Context())
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(out)
}

type closeRequest struct {
	StaffID string `json:"staffId"`
}

func (h *Handler) Close(c *fiber.Ctx) error {
	var req closeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	s, err := h.uc.Close(c.Context(), req.StaffID)
	if err != nil {
		return mapErr(err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

func (h *Handler) ListByStaff(c *fiber.Ctx) error {
	ss, err := h.uc.ListByStaff(
		c.Context(),
		c.Params("staffId"),
		c.QueryInt("limit", 20),
		c.QueryInt("offset", 0),
	)
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(ss)
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, settlementuc.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, settlementuc.ErrStaffMissing):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, settlementuc.ErrNothingToSettle):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
}
