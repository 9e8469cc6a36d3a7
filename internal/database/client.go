package database

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/FlagBrew/local-dex/internal/models"
	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Client is the relational store the dataset is ingested into.
type Client struct {
	drv *entsql.Driver
}

type clientCtxKey struct{}

// NewContext returns a copy of parent that carries c.
func NewContext(parent context.Context, c *Client) context.Context {
	return context.WithValue(parent, clientCtxKey{}, c)
}

// FromContext returns the Client stored in ctx, or nil.
func FromContext(ctx context.Context) *Client {
	c, _ := ctx.Value(clientCtxKey{}).(*Client)
	return c
}

// Open connects to the store described by cfg.
func Open(ctx context.Context, cfg *models.DatabaseConfig) (*Client, error) {
	switch cfg.DBType {
	case "postgres":
		poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("parse connection string: %w", err)
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return &Client{drv: entsql.OpenDB(dialect.Postgres, stdlib.OpenDBFromPool(pool))}, nil
	case "mysql":
		db, err := sql.Open(dialect.MySQL, cfg.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("connect to mysql: %w", err)
		}
		return &Client{drv: entsql.OpenDB(dialect.MySQL, db)}, nil
	case "sqlite":
		db, err := sql.Open(cfg.DBType, cfg.ConnectionString)
		if err != nil {
			return nil, fmt.Errorf("connect to sqlite: %w", err)
		}
		return &Client{drv: entsql.OpenDB(dialect.SQLite, db)}, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DBType)
	}
}

// New is Open for process setup: any failure is fatal.
func New(ctx context.Context, cfg *models.DatabaseConfig) *Client {
	c, err := Open(ctx, cfg)
	if err != nil {
		log.FromContext(ctx).WithError(err).WithField("db_type", cfg.DBType).Fatal("failed to open database")
		return nil
	}
	return c
}

func (c *Client) Close() error {
	return c.drv.Close()
}

// DB exposes the underlying handle, mostly for ad-hoc inspection in tests.
func (c *Client) DB() *sql.DB {
	return c.drv.DB()
}

func (c *Client) Dialect() string {
	return c.drv.Dialect()
}

func (c *Client) builder() *entsql.DialectBuilder {
	return entsql.Dialect(c.drv.Dialect())
}

// CreateSchema creates or upgrades every table in Tables.
func (c *Client) CreateSchema(ctx context.Context) error {
	m, err := schema.NewMigrate(c.drv, schema.WithDropIndex(true), schema.WithDropColumn(true))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func Migrate(ctx context.Context) {
	logger := log.FromContext(ctx)
	logger.Info("initiating database schema migration")
	db := FromContext(ctx)
	if db == nil {
		logger.Fatal("failed to get database client from context")
		return
	}

	if err := db.CreateSchema(ctx); err != nil {
		logger.WithError(err).Fatal("failed to create schema")
	}
	logger.Info("database schema migration complete")
}
