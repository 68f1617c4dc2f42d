package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	botuc "github.com/nicklvs1307/gestao-sub001/internal/usecase/bot"
)

type BotSettingsRow struct {
	GatewayURL    string
	Username      string
	Password      string
	Enabled       bool
	ReadyTemplate string
	UpdatedAt     time.Time
}

// BotSettingsRepo manages the single bot configuration row (id = 1,
// enforced by the schema).
type BotSettingsRepo struct {
	db *pgxpool.Pool
}

func NewBotSettingsRepo(db *pgxpool.Pool) *BotSettingsRepo {
	return &BotSettingsRepo{db: db}
}

func (r *BotSettingsRepo) Get(ctx context.Context) (*BotSettingsRow, error) {
	const q = `
SELECT gateway_url, username, password, enabled, ready_template, updated_at
FROM bot_settings
WHERE id = 1;
`
	var out BotSettingsRow
	if err := r.db.QueryRow(ctx, q).Scan(
		&out.GatewayURL,
		&out.Username,
		&out.Password,
		&out.Enabled,
		&out.ReadyTemplate,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *BotSettingsRepo) Update(ctx context.Context, gatewayURL, username, password *string, enabled *bool, readyTemplate *string) (*BotSettingsRow, error) {
	const q = `
UPDATE bot_settings
SET gateway_url = COALESCE($1, gateway_url),
    username = COALESCE($2, username),
    password = COALESCE($3, password),
    enabled = COALESCE($4, enabled),
    ready_template = COALESCE($5, ready_template),
    updated_at = now()
WHERE id = 1
RETURNING gateway_url, username, password, enabled, ready_template, updated_at;
`
	var out BotSettingsRow
	if err := r.db.QueryRow(ctx, q, gatewayURL, username, password, enabled, readyTemplate).Scan(
		&out.GatewayURL,
		&out.Username,
		&out.Password,
		&out.Enabled,
		&out.ReadyTemplate,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

type BotStoreAdapter struct {
	repo *BotSettingsRepo
}

func NewBotStoreAdapter(repo *BotSettingsRepo) *BotStoreAdapter {
	return &BotStoreAdapter{repo: repo}
}

func (a *BotStoreAdapter) Get(ctx context.Context) (*botuc.Settings, error) {
	row, err := a.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return mapBotRowToUC(row), nil
}

func (a *BotStoreAdapter) Update(ctx context.Context, in botuc.UpdateInput) (*botuc.Settings, error) {
	row, err := a.repo.Update(ctx, in.GatewayURL, in.Username, in.Password, in.Enabled, in.ReadyTemplate)
	if err != nil {
		return nil, err
	}
	return mapBotRowToUC(row), nil
}

func mapBotRowToUC(r *BotSettingsRow) *botuc.Settings {
	return &botuc.Settings{
		GatewayURL:    r.GatewayURL,
		Username:      r.Username,
		Password:      r.Password,
		Enabled:       r.Enabled,
		ReadyTemplate: r.ReadyTemplate,
		UpdatedAt:     r.UpdatedAt,
	}
}

// Compile-time check
var _ botuc.Store = (*BotStoreAdapter)(nil)
