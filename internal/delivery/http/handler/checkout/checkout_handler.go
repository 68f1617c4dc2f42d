package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/nicklvs1307/gestao-sub001/internal/delivery/middleware"
	checkoutuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/checkout"
	orderuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/order"
)

type Handler struct {
	uc *checkoutuc.Usecase
}

func New(uc *checkoutuc.Usecase) *Handler {
	return &Handler{uc: uc}
}

// Start opens (or restarts) the checkout for an order.
func (h *Handler) Start(c *fiber.Ctx) error {
	s, err := h.uc.Start(c.Context(), c.Params("id"), middleware.StaffID(c))
	return writeSession(c, s, err, fiber.StatusCreated)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	s, err := h.uc.Get(c.Context(), c.Params("id"), middleware.StaffID(c))
	return writeSession(c, s, err, fiber.StatusOK)
}

func (h *Handler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id"), middleware.StaffID(c)); err != nil {
		return mapErr(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type selectRequest struct {
	ItemID string `json:"itemId"`
	// "unit" adds one unit, "all" the item's full outstanding quantity,
	// "everything" replaces the selection with the whole order.
	Mode string `json:"mode"`
}

func (h *Handler) Select(c *fiber.Ctx) error {
	var req selectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}

	orderID := c.Params("id")
	staffID := middleware.StaffID(c)

	var (
		s   *checkoutuc.Session
		err error
	)
	switch req.Mode {
	case "", "unit":
		s, err = h.uc.AddUnit(c.Context(), orderID, staffID, req.ItemID)
	case "all":
		s, err = h.uc.AddAllOutstanding(c.Context(), orderID, staffID, req.ItemID)
	case "everything":
		s, err = h.uc.SelectAllOutstanding(c.Context(), orderID, staffID)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "unknown selection mode")
	}
	return writeSession(c, s, err, fiber.StatusOK)
}

func (h *Handler) Deselect(c *fiber.Ctx) error {
	orderID := c.Params("id")
	staffID := middleware.StaffID(c)
	itemID := c.Params("itemId")

	var (
		s   *checkoutuc.Session
		err error
	)
	if c.QueryBool("all", false) {
		s, err = h.uc.RemoveAll(c.Context(), orderID, staffID, itemID)
	} else {
		s, err = h.uc.RemoveUnit(c.Context(), orderID, staffID, itemID)
	}
	return writeSession(c, s, err, fiber.StatusOK)
}

type adjustRequest struct {
	Discount  *string `json:"discount"`
	Surcharge *string `json:"surcharge"`
}

func (h *Handler) Adjust(c *fiber.Ctx) error {
	var req adjustRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}

	s, err := h.uc.SetAdjustments(c.Context(), c.Params("id"), middleware.StaffID(c), req.Discount, req.Surcharge)
	return writeSession(c, s, err, fiber.StatusOK)
}

type tenderRequest struct {
	MethodID string `json:"methodId"`
	Amount   string `json:"amount"` // "10,50" and "10.50" both work
}

func (h *Handler) AddTender(c *fiber.Ctx) error {
	var req tenderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}

	s, err := h.uc.AddTender(c.Context(), c.Params("id"), middleware.StaffID(c), req.MethodID, req.Amount)
	return writeSession(c, s, err, fiber.StatusCreated)
}

func (h *Handler) RemoveTender(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid tender index")
	}

	s, err := h.uc.RemoveTender(c.Context(), c.Params("id"), middleware.StaffID(c), index)
	return writeSession(c, s, err, fiber.StatusOK)
}

func (h *Handler) Submit(c *fiber.Ctx) error {
	s, res, err := h.uc.Submit(c.Context(), c.Params("id"), middleware.StaffID(c))
	if err != nil {
		return mapErr(err)
	}
	return c.JSON(fiber.Map{
		"session":    sessionView(s),
		"settlement": res,
	})
}

func writeSession(c *fiber.Ctx, s *checkoutuc.Session, err error, okStatus int) error {
	if err != nil {
		return mapErr(err)
	}
	return c.Status(okStatus).JSON(sessionView(s))
}

// sessionView decorates the raw session with its derived totals so the
// console never recomputes them.
func sessionView(s *checkoutuc.Session) fiber.Map {
	return fiber.Map{
		"orderId":   s.OrderID,
		"state":     s.State,
		"lines":     s.Lines,
		"selection": s.Selection,
		"tenders":   s.Tenders,
		"discount":  s.Discount,
		"surcharge": s.Surcharge,
		"subtotal":  s.Subtotal(),
		"totalDue":  s.TotalDue(),
		"tendered":  s.Tendered(),
		"remaining": s.Remaining(),
		"suggested": s.Suggested,
		"canSubmit": s.CanSubmit(),
	}
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, checkoutuc.ErrInvalidAmount),
		errors.Is(err, checkoutuc.ErrNoMethodSelected),
		errors.Is(err, checkoutuc.ErrInvalidInput),
		errors.Is(err, checkoutuc.ErrItemUnknown),
		errors.Is(err, checkoutuc.ErrNothingOutstanding),
		errors.Is(err, checkoutuc.ErrNotSelected),
		errors.Is(err, checkoutuc.ErrNoSuchTender):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, checkoutuc.ErrInsufficientPayment):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, checkoutuc.ErrSessionMissing), errors.Is(err, orderuc.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, checkoutuc.ErrItemUnavailable), errors.Is(err, checkoutuc.ErrOrderClosed):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
}
