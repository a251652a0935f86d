// Package db opens the single connection a batch of scripts runs on. The
// pgx driver is the default; lib/pq and modernc sqlite are reached through
// database/sql.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/admin/sqlloader/internal/dataset"
	"github.com/admin/sqlloader/internal/errors"

	"github.com/jackc/pgx/v5"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Conn runs whole script texts and reports the status of each.
type Conn interface {
	Exec(ctx context.Context, sql string) (string, error)
	Close(ctx context.Context) error
}

type Provider interface {
	Connect(ctx context.Context, cfg dataset.Config) (Conn, error)
}

// Dialer is the Provider used by the CLI. Its fields are the fallbacks for
// values a dataset config leaves empty.
type Dialer struct {
	Host    string
	Driver  string
	SSLMode string
	AppName string
}

func (d Dialer) Connect(ctx context.Context, cfg dataset.Config) (Conn, error) {
	switch driver := d.driver(cfg); driver {
	case DriverPgx:
		conn, err := pgx.Connect(ctx, d.URL(cfg))
		if err != nil {
			return nil, errors.WrapConnect(err)
		}
		return &pgxConn{conn: conn}, nil
	case DriverPostgres:
		return openSQL(ctx, driver, d.URL(cfg))
	case DriverSQLite:
		return openSQL(ctx, driver, cfg.DBName)
	default:
		return nil, errors.WrapUnknownDriver(driver)
	}
}

func (d Dialer) driver(cfg dataset.Config) string {
	if cfg.Driver != "" {
		return cfg.Driver
	}
	if d.Driver != "" {
		return d.Driver
	}
	return DriverPgx
}

// URL builds the postgres connection URL for cfg.
func (d Dialer) URL(cfg dataset.Config) string {
	host := cfg.Host
	if host == "" {
		host = d.Host
	}
	if host == "" {
		host = "localhost"
	}
	port := int(cfg.Port)
	if port == 0 {
		port = dataset.DefaultPort
	}

	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + cfg.DBName,
	}
	if cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	} else if cfg.User != "" {
		u.User = url.User(cfg.User)
	}

	q := url.Values{}
	if d.SSLMode != "" {
		q.Set("sslmode", d.SSLMode)
	}
	if d.AppName != "" {
		q.Set("application_name", d.AppName)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

type pgxConn struct {
	conn *pgx.Conn
}

func (c *pgxConn) Exec(ctx context.Context, sql string) (string, error) {
	tag, err := c.conn.Exec(ctx, sql)
	if err != nil {
		return "", err
	}
	return tag.String(), nil
}

func (c *pgxConn) Close(ctx context.Context) error {
	return c.conn.Close(ctx)
}

type sqlConn struct {
	db *sql.DB
}

func openSQL(ctx context.Context, driver, dsn string) (*sqlConn, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errors.WrapConnect(err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.WrapConnect(err)
	}
	return &sqlConn{db: db}, nil
}

// Exec reports "OK <rows affected>" since database/sql exposes no command tag.
func (c *sqlConn) Exec(ctx context.Context, sql string) (string, error) {
	res, err := c.db.ExecContext(ctx, sql)
	if err != nil {
		return "", err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "OK", nil
	}
	return fmt.Sprintf("OK %d", n), nil
}

func (c *sqlConn) Close(context.Context) error {
	return c.db.Close()
}
