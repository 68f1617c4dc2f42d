package kitchen

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/nicklvs1307/gestao-sub001/internal/events"
	orderuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/order"
)

type Handler struct {
	uc  *orderuc.Usecase
	bus *events.Bus
}

func New(uc *orderuc.Usecase, bus *events.Bus) *Handler {
	return &Handler{uc: uc, bus: bus}
}

// Board returns every open order, oldest first, for the display.
func (h *Handler) Board(c *fiber.Ctx) error {
	out, err := h.uc.Board(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
	return c.JSON(fiber.Map{"orders": out})
}

func (h *Handler) UpdateStatus(c *fiber.Ctx) error {
	var in orderuc.UpdateStatusInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}

	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, orderuc.ErrInvalidInput), errors.Is(err, orderuc.ErrInvalidStatus):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, orderuc.ErrNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case errors.Is(err, orderuc.ErrInvalidTransition):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "internal error")
		}
	}
	return c.JSON(out)
}

// Events streams order-changed notifications as server-sent events.
// The console listens and refetches the board on every message; the
// subscription is torn down when the client goes away.
func (h *Handler) Events(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ch, unsubscribe := h.bus.SubscribeOrders(ctx)
		defer unsubscribe()

		heartbeat := time.NewTicker(25 * time.Second)
		defer heartbeat.Stop()

		for {
			select {
			case ev, ok := <-ch:
				if !ok {
					return
				}
				payload, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "data: %s\n\n", payload)
				if err := w.Flush(); err != nil {
					// client disconnected
					return
				}
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))

	return nil
}
