package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	xerrors "food-delivery/internal/xpkg/errors"
)

// pgxIface is the part of *pgxpool.Pool the store uses.
type pgxIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// Postgres keeps each collection in a table of (id uuid, doc jsonb).
type Postgres struct {
	pool pgxIface
}

func OpenPostgres(ctx context.Context, dsn string, collections ...string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", xerrors.ErrDBConn, err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping: %v", xerrors.ErrDBConn, err)
	}

	p := NewPostgres(pool)
	if err := p.Migrate(ctx, collections...); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func NewPostgres(pool pgxIface) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the tables backing the named collections.
func (p *Postgres) Migrate(ctx context.Context, collections ...string) error {
	for _, name := range collections {
		query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	seq BIGSERIAL,
	id UUID PRIMARY KEY,
	doc JSONB NOT NULL
)`, table(name))
		if _, err := p.pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("create collection %s: %w", name, err)
		}
	}
	return nil
}

func (p *Postgres) Collection(name string) Collection {
	return &pgCollection{pool: p.pool, table: table(name)}
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close(ctx context.Context) error {
	p.pool.Close()
	return nil
}

func table(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

type pgCollection struct {
	pool  pgxIface
	table string
}

func (c *pgCollection) InsertOne(ctx context.Context, doc any) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	id := uuid.NewString()
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2::jsonb - 'id')`, c.table)
	if _, err := c.pool.Exec(ctx, query, id, string(data)); err != nil {
		return "", fmt.Errorf("insert into %s: %w", c.table, err)
	}
	return id, nil
}

func (c *pgCollection) FindOne(ctx context.Context, id string, out any) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	query := fmt.Sprintf(`SELECT doc || jsonb_build_object('id', id::text) FROM %s WHERE id = $1`, c.table)
	var raw []byte
	if err := c.pool.QueryRow(ctx, query, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("select from %s: %w", c.table, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}

func (c *pgCollection) FindMany(ctx context.Context, filter Filter, out any) error {
	match, err := encodeFilter(filter)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`SELECT COALESCE(jsonb_agg(doc || jsonb_build_object('id', id::text) ORDER BY seq), '[]'::jsonb)
FROM %s WHERE doc @> $1::jsonb`, c.table)
	var raw []byte
	if err := c.pool.QueryRow(ctx, query, match).Scan(&raw); err != nil {
		return fmt.Errorf("select from %s: %w", c.table, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode documents: %w", err)
	}
	return nil
}

func (c *pgCollection) UpdateFields(ctx context.Context, id string, fields Fields) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}

	query := fmt.Sprintf(`UPDATE %s SET doc = doc || ($2::jsonb - 'id') WHERE id = $1`, c.table)
	tag, err := c.pool.Exec(ctx, query, id, string(data))
	if err != nil {
		return fmt.Errorf("update %s: %w", c.table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *pgCollection) DeleteOne(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, c.table)
	tag, err := c.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", c.table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *pgCollection) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	match, err := encodeFilter(filter)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE doc @> $1::jsonb`, c.table)
	tag, err := c.pool.Exec(ctx, query, match)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", c.table, err)
	}
	return tag.RowsAffected(), nil
}

func encodeFilter(filter Filter) (string, error) {
	if filter == nil {
		filter = Filter{}
	}
	data, err := json.Marshal(filter)
	if err != nil {
		return "", fmt.Errorf("encode filter: %w", err)
	}
	return string(data), nil
}
