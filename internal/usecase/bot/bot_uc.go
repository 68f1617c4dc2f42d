package bot

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrDisabled     = errors.New("bot disabled")
	ErrNoGateway    = errors.New("gateway url not configured")
)

// Settings is the single WhatsApp bot configuration row. The password
// never leaves the backend.
type Settings struct {
	GatewayURL    string    `json:"gatewayUrl"`
	Username      string    `json:"username"`
	Password      string    `json:"-"`
	Enabled       bool      `json:"enabled"`
	ReadyTemplate string    `json:"readyTemplate"` // {{name}} placeholder
	UpdatedAt     time.Time `json:"updatedAt"`
}

type UpdateInput struct {
	GatewayURL    *string `json:"gatewayUrl"`
	Username      *string `json:"username"`
	Password      *string `json:"password"`
	Enabled       *bool   `json:"enabled"`
	ReadyTemplate *string `json:"readyTemplate"`
}

type Store interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, in UpdateInput) (*Settings, error)
}

type GatewayStatus struct {
	Connected bool   `json:"connected"`
	Device    string `json:"device,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// Gateway is a configured connection to the WhatsApp HTTP gateway.
type Gateway interface {
	Status(ctx context.Context) (*GatewayStatus, error)
	SendText(ctx context.Context, phone, message string) error
}

// GatewayFactory builds a client from the current settings; settings
// can change at runtime so clients are built per call.
type GatewayFactory func(s *Settings) Gateway

type Usecase struct {
	store   Store
	gateway GatewayFactory
}

func New(store Store, gateway GatewayFactory) *Usecase {
	return &Usecase{store: store, gateway: gateway}
}

func (u *Usecase) Get(ctx context.Context) (*Settings, error) {
	return u.store.Get(ctx)
}

func (u *Usecase) Update(ctx context.Context, in UpdateInput) (*Settings, error) {
	if in.GatewayURL != nil {
		url := strings.TrimSpace(*in.GatewayURL)
		if url != "" && !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return nil, ErrInvalidInput
		}
		in.GatewayURL = &url
	}
	return u.store.Update(ctx, in)
}

func (u *Usecase) Status(ctx context.Context) (*GatewayStatus, error) {
	s, err := u.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s.GatewayURL == "" {
		return nil, ErrNoGateway
	}
	return u.gateway(s).Status(ctx)
}

// SendTest pushes one message through the gateway regardless of the
// enabled flag, so the console can verify credentials before enabling.
func (u *Usecase) SendTest(ctx context.Context, phone, message string) error {
	if strings.TrimSpace(phone) == "" || strings.TrimSpace(message) == "" {
		return ErrInvalidInput
	}
	s, err := u.store.Get(ctx)
	if err != nil {
		return err
	}
	if s.GatewayURL == "" {
		return ErrNoGateway
	}
	return u.gateway(s).SendText(ctx, phone, message)
}

// OrderReady satisfies the kitchen's notifier hook.
func (u *Usecase) OrderReady(ctx context.Context, phone, customerName string) error {
	s, err := u.store.Get(ctx)
	if err != nil {
		return err
	}
	if !s.Enabled {
		return ErrDisabled
	}
	if s.GatewayURL == "" {
		return ErrNoGateway
	}
	msg := strings.ReplaceAll(s.ReadyTemplate, "{{name}}", customerName)
	if msg == "" {
		msg = "Seu pedido esta pronto!"
	}
	return u.gateway(s).SendText(ctx, phone, msg)
}
