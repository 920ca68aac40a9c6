package db

import (
	"context"
	"fmt"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Connect opens a pgx pool against the given URL and verifies it with a
// ping. Numeric columns scan directly into decimal.Decimal.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	zap.S().Info("connected to postgres")
	return pool, nil
}

// EnsureSchema creates the tables, constraints and indexes the handlers
// rely on, and seeds the default categories. Safe to run on every start.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			city TEXT DEFAULT '',
			state TEXT DEFAULT '',
			avatar_url TEXT DEFAULT '',
			balance NUMERIC(12,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			icon TEXT DEFAULT '',
			description TEXT DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS services (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			price NUMERIC(12,2) NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			location TEXT DEFAULT '',
			latitude DOUBLE PRECISION NULL,
			longitude DOUBLE PRECISION NULL,
			category_id UUID NULL REFERENCES categories(id) ON DELETE SET NULL,
			status TEXT NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'in_progress', 'completed', 'cancelled')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_services_status_created ON services(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_services_user ON services(user_id)`,
		`CREATE TABLE IF NOT EXISTS proposals (
			id UUID PRIMARY KEY,
			service_id UUID NOT NULL REFERENCES services(id) ON DELETE CASCADE,
			provider_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			price NUMERIC(12,2) NOT NULL,
			message TEXT DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'accepted', 'rejected', 'counter')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (service_id, provider_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_proposals_service ON proposals(service_id)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			message TEXT NOT NULL,
			related_id UUID NULL,
			read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications(user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user_unread ON notifications(user_id) WHERE NOT read`,
		`CREATE TABLE IF NOT EXISTS wallet_transactions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			amount NUMERIC(12,2) NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('credit', 'debit')),
			description TEXT DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_wallet_tx_user_created ON wallet_transactions(user_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS favorite_services (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			service_id UUID NOT NULL REFERENCES services(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, service_id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return seedCategories(ctx, pool)
}

// seedCategories inserts the default category set. Existing names are left
// untouched.
func seedCategories(ctx context.Context, pool *pgxpool.Pool) error {
	defaults := []struct {
		name, icon, description string
	}{
		{"Limpeza", "broom", "Limpeza residencial e comercial"},
		{"Reformas e Reparos", "hammer", "Pequenas reformas, consertos e instalações"},
		{"Aulas Particulares", "book", "Aulas e reforço escolar"},
		{"Tecnologia", "laptop", "Suporte técnico, desenvolvimento e configuração"},
		{"Beleza e Bem-estar", "scissors", "Cabelo, estética e cuidados pessoais"},
		{"Transporte e Mudanças", "truck", "Fretes, mudanças e entregas"},
		{"Eventos", "party", "Organização, buffet e fotografia de eventos"},
		{"Jardinagem", "leaf", "Jardins, podas e paisagismo"},
	}

	for _, cat := range defaults {
		_, err := pool.Exec(ctx, `
			INSERT INTO categories (id, name, icon, description)
			VALUES (gen_random_uuid(), $1, $2, $3)
			ON CONFLICT (name) DO NOTHING`,
			cat.name, cat.icon, cat.description,
		)
		if err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}
	return nil
}
