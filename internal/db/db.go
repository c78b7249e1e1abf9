package db

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"aphonix-notify/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

// New connects to Postgres, retrying the initial ping with exponential
// backoff so the service survives a database that is still starting up.
func New(ctx context.Context, conn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, conn)
	if err != nil {
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second

	operation := func() error {
		return pool.Ping(ctx)
	}

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

// EnsureSchema creates the tables the dispatcher and admin surface touch.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			address TEXT,
			product_name TEXT NOT NULL,
			product_price BIGINT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS contact_messages (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			subject TEXT,
			message TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_replies (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			order_id UUID NOT NULL REFERENCES orders(id),
			message TEXT NOT NULL,
			sent_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS site_settings (
			key TEXT PRIMARY KEY,
			value BOOLEAN NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema init failed: %w", err)
		}
	}
	return nil
}

func (s *Store) InsertOrder(ctx context.Context, o *models.Order) error {
	return s.Pool.QueryRow(ctx,
		`INSERT INTO orders
		 (name, email, phone, address, product_name, product_price, status, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,NOW())
		 RETURNING id, created_at`,
		o.Name,
		o.Email,
		o.Phone,
		o.Address,
		o.ProductName,
		o.ProductPrice,
		models.StatusPending,
	).Scan(&o.ID, &o.CreatedAt)
}

func (s *Store) InsertContactMessage(ctx context.Context, m *models.ContactMessage) error {
	return s.Pool.QueryRow(ctx,
		`INSERT INTO contact_messages
		 (name, email, subject, message, created_at)
		 VALUES ($1,$2,$3,$4,NOW())
		 RETURNING id, created_at`,
		m.Name,
		m.Email,
		m.Subject,
		m.Message,
	).Scan(&m.ID, &m.CreatedAt)
}

func (s *Store) InsertOrderReply(ctx context.Context, r *models.OrderReply) error {
	return s.Pool.QueryRow(ctx,
		`INSERT INTO order_replies
		 (order_id, message, sent_at)
		 VALUES ($1,$2,NOW())
		 RETURNING id, sent_at`,
		r.OrderID,
		r.Message,
	).Scan(&r.ID, &r.SentAt)
}

func (s *Store) UpdateOrderStatus(
	ctx context.Context,
	id string,
	status models.OrderStatus,
) error {

	tag, err := s.Pool.Exec(ctx,
		`UPDATE orders
		 SET status=$1
		 WHERE id=$2`,
		status,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", id)
	}
	return nil
}

func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := pgxscan.Select(ctx, s.Pool, &orders,
		`SELECT id, name, email, phone, address, product_name, product_price, status, created_at
		 FROM orders
		 ORDER BY created_at DESC`,
	)
	return orders, err
}

func (s *Store) ListContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	err := pgxscan.Select(ctx, s.Pool, &msgs,
		`SELECT id, name, email, subject, message, created_at
		 FROM contact_messages
		 ORDER BY created_at DESC`,
	)
	return msgs, err
}

func (s *Store) ListOrderReplies(ctx context.Context, orderID string) ([]models.OrderReply, error) {
	var replies []models.OrderReply
	err := pgxscan.Select(ctx, s.Pool, &replies,
		`SELECT id, order_id, message, sent_at
		 FROM order_replies
		 WHERE order_id=$1
		 ORDER BY sent_at ASC`,
		orderID,
	)
	return replies, err
}

// MegaSale reads the storefront theme flag. A missing row reads as false.
func (s *Store) MegaSale(ctx context.Context) (bool, error) {
	var value bool
	err := s.Pool.QueryRow(ctx,
		`SELECT value FROM site_settings WHERE key='mega_sale'`,
	).Scan(&value)
	if err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, err
	}
	return value, nil
}

func (s *Store) SetMegaSale(ctx context.Context, enabled bool) error {
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO site_settings (key, value)
		 VALUES ('mega_sale', $1)
		 ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value`,
		enabled,
	)
	return err
}
