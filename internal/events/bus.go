package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

// Channel carrying order-changed notifications. Display surfaces
// subscribe and refetch on every message, they never trust the payload
// as state.
const ordersChannel = "kitchen.orders"

type OrderEvent struct {
	OrderID string    `json:"orderId"`
	Event   string    `json:"event"`
	At      time.Time `json:"at"`
}

type Bus struct {
	rdb *redis.Client
}

func NewBus(rdb *redis.Client) *Bus {
	return &Bus{rdb: rdb}
}

func (b *Bus) OrderChanged(ctx context.Context, orderID, event string) error {
	payload, err := json.Marshal(OrderEvent{OrderID: orderID, Event: event, At: time.Now()})
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, ordersChannel, payload).Err()
}

// SubscribeOrders returns a channel of order events plus a teardown
// func. The teardown closes the underlying pubsub; the channel is
// closed after that, so ranging over it terminates.
func (b *Bus) SubscribeOrders(ctx context.Context) (<-chan OrderEvent, func()) {
	sub := b.rdb.Subscribe(ctx, ordersChannel)
	out := make(chan OrderEvent, 16)

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var ev OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				continue
			}
			select {
			case out <- ev:
			default:
				// slow subscriber: drop rather than block the pump
			}
		}
	}()

	return out, func() { _ = sub.Close() }
}
