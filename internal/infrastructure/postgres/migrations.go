package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema DDL idempotente; se ejecuta en orden al arrancar si DB_AUTO_MIGRATE=true.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('admin', 'vet', 'staff', 'client')),
		status        TEXT NOT NULL DEFAULT 'active',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_users_email ON users (lower(email))`,

	`CREATE TABLE IF NOT EXISTS suppliers (
		id             UUID PRIMARY KEY,
		name           TEXT NOT NULL,
		contact_person TEXT NOT NULL DEFAULT '',
		email          TEXT NOT NULL DEFAULT '',
		phone          TEXT NOT NULL DEFAULT '',
		address        TEXT NOT NULL DEFAULT '',
		is_active      BOOLEAN NOT NULL DEFAULT TRUE,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS inventory_items (
		id                UUID PRIMARY KEY,
		sku               TEXT NOT NULL UNIQUE,
		name              TEXT NOT NULL,
		description       TEXT NOT NULL DEFAULT '',
		category          TEXT NOT NULL CHECK (category IN ('MEDICINE', 'SUPPLY', 'EQUIPMENT', 'FOOD', 'OTHER')),
		unit              TEXT NOT NULL CHECK (unit IN ('PIECES', 'BOXES', 'BOTTLES', 'KILOGRAMS', 'LITERS', 'PACKS')),
		quantity          INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		reorder_threshold INTEGER NOT NULL DEFAULT 0 CHECK (reorder_threshold >= 0),
		unit_price        NUMERIC(12, 2) NOT NULL DEFAULT 0 CHECK (unit_price >= 0),
		expiry_date       DATE,
		supplier_id       UUID REFERENCES suppliers (id),
		last_restocked_at TIMESTAMPTZ,
		is_active         BOOLEAN NOT NULL DEFAULT TRUE,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS ix_items_category ON inventory_items (category) WHERE is_active`,
	`CREATE INDEX IF NOT EXISTS ix_items_expiry ON inventory_items (expiry_date) WHERE expiry_date IS NOT NULL`,

	// Ledger append-only: seq da el orden causal por artículo.
	`CREATE TABLE IF NOT EXISTS stock_movements (
		seq             BIGSERIAL UNIQUE,
		id              UUID PRIMARY KEY,
		item_id         UUID NOT NULL REFERENCES inventory_items (id),
		type            TEXT NOT NULL CHECK (type IN ('IN', 'OUT', 'ADJUSTMENT')),
		delta           INTEGER NOT NULL CHECK (delta <> 0),
		quantity_before INTEGER NOT NULL CHECK (quantity_before >= 0),
		quantity_after  INTEGER NOT NULL CHECK (quantity_after >= 0),
		reason          TEXT NOT NULL,
		note            TEXT NOT NULL DEFAULT '',
		created_by      UUID,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (quantity_after = quantity_before + delta)
	)`,
	`CREATE INDEX IF NOT EXISTS ix_movements_item_seq ON stock_movements (item_id, seq)`,
	`CREATE INDEX IF NOT EXISTS ix_movements_created ON stock_movements (created_at DESC)`,
	`CREATE OR REPLACE FUNCTION stock_movements_immutable() RETURNS trigger AS $$
	BEGIN
		RAISE EXCEPTION 'stock_movements es append-only';
	END;
	$$ LANGUAGE plpgsql`,
	`DROP TRIGGER IF EXISTS trg_stock_movements_immutable ON stock_movements`,
	`CREATE TRIGGER trg_stock_movements_immutable BEFORE UPDATE OR DELETE ON stock_movements
		FOR EACH ROW EXECUTE FUNCTION stock_movements_immutable()`,

	`CREATE TABLE IF NOT EXISTS purchase_orders (
		id                UUID PRIMARY KEY,
		order_number      TEXT NOT NULL UNIQUE,
		supplier_id       UUID NOT NULL REFERENCES suppliers (id),
		status            TEXT NOT NULL CHECK (status IN ('DRAFT', 'PENDING', 'APPROVED', 'ORDERED', 'RECEIVED', 'CANCELLED')),
		expected_delivery DATE,
		total_amount      NUMERIC(14, 2) NOT NULL DEFAULT 0,
		notes             TEXT NOT NULL DEFAULT '',
		created_by        UUID,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_order_items (
		line_no           BIGSERIAL UNIQUE,
		id                UUID PRIMARY KEY,
		purchase_order_id UUID NOT NULL REFERENCES purchase_orders (id) ON DELETE CASCADE,
		item_id           UUID NOT NULL REFERENCES inventory_items (id),
		quantity_ordered  INTEGER NOT NULL CHECK (quantity_ordered > 0),
		quantity_received INTEGER NOT NULL DEFAULT 0 CHECK (quantity_received >= 0),
		unit_price        NUMERIC(12, 2) NOT NULL,
		total_price       NUMERIC(14, 2) NOT NULL,
		CHECK (quantity_received <= quantity_ordered)
	)`,
	`CREATE INDEX IF NOT EXISTS ix_po_items_order ON purchase_order_items (purchase_order_id)`,
}

// Migrate aplica el esquema en una transacción.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("migrate: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for i, stmt := range schema {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: sentencia %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("migrate: commit: %w", err)
	}
	return nil
}
