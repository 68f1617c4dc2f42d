package http

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nicklvs1307/gestao-sub001/internal/config"
	authhandler "github.com/nicklvs1307/gestao-sub001/internal/delivery/http/handler/auth"
	bothandler "github.com/nicklvs1307/gestao-sub001/internal/delivery/http/handler/bot"
	checkouthandler "github.com/nicklvs1307/gestao-sub001/internal/delivery/http/handler/checkout"
	ingredienthandler "github.com/nicklvs1307/gestao-sub001/internal/delivery/http/handler/ingredient"
	kitchenhandler "github.com/nicklvs1307/gestao-sub001/internal/delivery/http/handler/kitchen"
	methodhandler "github.com/nicklvs1307/gestao-sub001/internal/delivery/http/handler/method"
	orderhandler "github.com/nicklvs1307/gestao-sub001/internal/delivery/http/handler/order"
	settlementhandler "github.com/nicklvs1307/gestao-sub001/internal/delivery/http/handler/settlement"
	"github.com/nicklvs1307/gestao-sub001/internal/delivery/middleware"
	"github.com/nicklvs1307/gestao-sub001/internal/events"
	botpg "github.com/nicklvs1307/gestao-sub001/internal/repository/postgres/bot"
	checkoutpg "github.com/nicklvs1307/gestao-sub001/internal/repository/postgres/checkout"
	ingredientpg "github.com/nicklvs1307/gestao-sub001/internal/repository/postgres/ingredient"
	methodpg "github.com/nicklvs1307/gestao-sub001/internal/repository/postgres/method"
	orderpg "github.com/nicklvs1307/gestao-sub001/internal/repository/postgres/order"
	settlementpg "github.com/nicklvs1307/gestao-sub001/internal/repository/postgres/settlement"
	staffpg "github.com/nicklvs1307/gestao-sub001/internal/repository/postgres/staff"
	"github.com/nicklvs1307/gestao-sub001/internal/session"
	authuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/auth"
	botuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/bot"
	checkoutuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/checkout"
	ingredientuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/ingredient"
	methoduc "github.com/nicklvs1307/gestao-sub001/internal/usecase/method"
	orderuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/order"
	settlementuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/settlement"
	"github.com/nicklvs1307/gestao-sub001/pkg/whatsapp"
)

func RegisterRoutes(app *fiber.App, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	api := app.Group("/api")

	// Auth wiring
	staffRepo := staffpg.NewStaffRepo(db)
	staffFinder := staffpg.NewStaffFinderAdapter(staffRepo)
	loginUC := authuc.NewStaffLoginUsecase(staffFinder, cfg.JWTSecret, cfg.JWTExpiresMinutes)
	loginHandler := authhandler.NewLoginHandler(loginUC)

	// Public route
	api.Post("/login", loginHandler.Handle)

	// Protected staff group (MUST be defined before use)
	admin := api.Group("/admin", middleware.RequireStaffJWT(middleware.JWTConfig{
		Secret: cfg.JWTSecret,
	}))

	admin.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"ok":     true,
			"claims": c.Locals("claims"),
		})
	})

	// Event bus over redis pub/sub
	bus := events.NewBus(rdb)

	// Bot wiring
	botRepo := botpg.NewBotSettingsRepo(db)
	botStore := botpg.NewBotStoreAdapter(botRepo)
	botUC := botuc.New(botStore, func(s *botuc.Settings) botuc.Gateway {
		return &whatsappGateway{client: whatsapp.NewClient(s.GatewayURL, s.Username, s.Password)}
	})
	botH := bothandler.New(botUC)

	// Orders wiring
	orderRepo := orderpg.NewOrderRepo(db)
	orderStore := orderpg.NewOrderStoreAdapter(orderRepo)
	orderUC := orderuc.New(orderStore, bus, botUC)
	orderH := orderhandler.New(orderUC)
	kitchenH := kitchenhandler.New(orderUC, bus)

	// Payment methods wiring
	methodRepo := methodpg.NewMethodRepo(db)
	methodStore := methodpg.NewMethodStoreAdapter(methodRepo)
	methodUC := methoduc.New(methodStore)
	methodH := methodhandler.New(methodUC)

	// Checkout wiring
	checkoutRepo := checkoutpg.NewCheckoutRepo(db)
	checkoutStore := checkoutpg.NewCheckoutStoreAdapter(checkoutRepo)
	sessions := session.NewStore(rdb, time.Duration(cfg.CheckoutTTLMin)*time.Minute)
	checkoutUC := checkoutuc.New(checkoutStore, methodpg.NewCheckoutMethodSource(methodUC), sessions, bus)
	checkoutH := checkouthandler.New(checkoutUC)

	// Settlements wiring
	settlementRepo := settlementpg.NewSettlementRepo(db)
	settlementStore := settlementpg.NewSettlementStoreAdapter(settlementRepo)
	settlementUC := settlementuc.New(settlementStore)
	settlementH := settlementhandler.New(settlementUC)

	// Ingredients wiring
	ingredientRepo := ingredientpg.NewIngredientRepo(db)
	ingredientStore := ingredientpg.NewIngredientStoreAdapter(ingredientRepo)
	ingredientUC := ingredientuc.New(ingredientStore)
	ingredientH := ingredienthandler.New(ingredientUC)

	// Order routes
	admin.Post("/orders", orderH.Create)
	admin.Get("/orders", orderH.List)
	admin.Get("/orders/:id", orderH.GetByID)
	admin.Patch("/orders/:id/status", kitchenH.UpdateStatus)

	// Kitchen display routes
	admin.Get("/kitchen/board", kitchenH.Board)
	admin.Get("/kitchen/events", kitchenH.Events)

	// Checkout routes
	admin.Post("/orders/:id/checkout", checkoutH.Start)
	admin.Get("/orders/:id/checkout", checkoutH.Get)
	admin.Delete("/orders/:id/checkout", checkoutH.Cancel)
	admin.Post("/orders/:id/checkout/items", checkoutH.Select)
	admin.Delete("/orders/:id/checkout/items/:itemId", checkoutH.Deselect)
	admin.Patch("/orders/:id/checkout/adjustments", checkoutH.Adjust)
	admin.Post("/orders/:id/checkout/tenders", checkoutH.AddTender)
	admin.Delete("/orders/:id/checkout/tenders/:index", checkoutH.RemoveTender)
	admin.Post("/orders/:id/checkout/submit", checkoutH.Submit)

	// Payment method routes
	admin.Post("/payment-methods", methodH.Create)
	admin.Get("/payment-methods", methodH.List)
	admin.Patch("/payment-methods/:id", methodH.Update)

	// Settlement routes
	admin.Get("/settlements/outstanding", settlementH.Outstanding)
	admin.Post("/settlements", settlementH.Close)
	admin.Get("/settlements/staff/:staffId", settlementH.ListByStaff)

	// Ingredient routes
	admin.Post("/ingredients", ingredientH.Create)
	admin.Get("/ingredients", ingredientH.List)
	admin.Patch("/ingredients/:id", ingredientH.Update)
	admin.Post("/ingredients/:id/movements", ingredientH.Move)

	// Bot routes
	admin.Get("/bot/settings", botH.Get)
	admin.Patch("/bot/settings", botH.Update)
	admin.Get("/bot/status", botH.Status)
	admin.Post("/bot/test", botH.SendTest)
}

type whatsappGateway struct {
	client *whatsapp.Client
}

func (g *whatsappGateway) SendText(ctx context.Context, phone, message string) error {
	return g.client.SendText(ctx, phone, message)
}

func (g *whatsappGateway) Status(ctx context.Context) (*botuc.GatewayStatus, error) {
	r, err := g.client.DeviceStatus(ctx)
	if err != nil {
		return &botuc.GatewayStatus{Connected: false, Detail: err.Error()}, nil
	}
	return &botuc.GatewayStatus{
		Connected: r.Data.Connected,
		Device:    r.Data.Device,
	}, nil
}
