package orders

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMirror copies orders into relational tables so external BI
// tooling can query them without touching the JSON log.
type PostgresMirror struct {
	db *pgxpool.Pool
}

func NewPostgresMirror(ctx context.Context, databaseURL string) (*PostgresMirror, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}

	m := &PostgresMirror{db: db}
	if err := m.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return m, nil
}

func (m *PostgresMirror) Close() {
	m.db.Close()
}

func (m *PostgresMirror) initSchema(ctx context.Context) error {
	ordersSQL := `
		CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			order_code VARCHAR(20) UNIQUE NOT NULL,
			customer VARCHAR(255) NOT NULL,
			order_timestamp VARCHAR(50) NOT NULL,
			total DOUBLE PRECISION NOT NULL,
			status VARCHAR(50) NOT NULL,
			notes TEXT,
			driver VARCHAR(255),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := m.db.Exec(ctx, ordersSQL); err != nil {
		return err
	}

	itemsSQL := `
		CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			item_name VARCHAR(255) NOT NULL,
			quantity INTEGER NOT NULL,
			price DOUBLE PRECISION NOT NULL
		)
	`
	if _, err := m.db.Exec(ctx, itemsSQL); err != nil {
		return err
	}

	indexSQL := `
		CREATE INDEX IF NOT EXISTS idx_orders_timestamp ON orders(order_timestamp);
		CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_order_items_item_name ON order_items(item_name);
	`
	_, err := m.db.Exec(ctx, indexSQL)
	return err
}

// RecordOrder upserts the order row keyed by order code, then rewrites its
// item rows.
func (m *PostgresMirror) RecordOrder(ctx context.Context, order Order) error {
	code := order.Code
	if code == "" {
		code = CodeFor(order.ID)
	}

	var rowID int
	err := m.db.QueryRow(ctx, `
		INSERT INTO orders (order_code, customer, order_timestamp, total, status, notes, driver)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		ON CONFLICT (order_code) DO UPDATE SET
			customer = EXCLUDED.customer,
			order_timestamp = EXCLUDED.order_timestamp,
			total = EXCLUDED.total,
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			driver = EXCLUDED.driver
		RETURNING id
	`, code, order.Customer, order.Timestamp, order.Total, order.Status, order.Notes, order.Driver).Scan(&rowID)
	if err != nil {
		return err
	}

	if _, err := m.db.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, rowID); err != nil {
		return err
	}
	for name, line := range order.Items {
		_, err := m.db.Exec(ctx, `
			INSERT INTO order_items (order_id, item_name, quantity, price)
			VALUES ($1, $2, $3, $4)
		`, rowID, name, line.Quantity, line.Price)
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *PostgresMirror) UpdateStatus(ctx context.Context, orderID int, status string) error {
	_, err := m.db.Exec(ctx,
		`UPDATE orders SET status = $1 WHERE order_code = $2`, status, CodeFor(orderID))
	return err
}

func (m *PostgresMirror) AssignDriver(ctx context.Context, orderID int, driver string) error {
	_, err := m.db.Exec(ctx,
		`UPDATE orders SET driver = $1 WHERE order_code = $2`, driver, CodeFor(orderID))
	return err
}

func (m *PostgresMirror) UnassignDriver(ctx context.Context, orderID int) error {
	_, err := m.db.Exec(ctx,
		`UPDATE orders SET driver = NULL WHERE order_code = $1`, CodeFor(orderID))
	return err
}
