package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/couchcryptid/danger-zones/internal/config"
	dbsql "github.com/databricks/databricks-sql-go"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	_ "modernc.org/sqlite"             // registers the "sqlite" database/sql driver
)

// Connector opens a warehouse handle. Callers own the returned *sql.DB and
// must close it; nothing is cached between calls.
type Connector interface {
	Open(ctx context.Context) (*sql.DB, error)
}

// ConnectorFunc adapts a function to the Connector interface.
type ConnectorFunc func(ctx context.Context) (*sql.DB, error)

func (f ConnectorFunc) Open(ctx context.Context) (*sql.DB, error) { return f(ctx) }

// NewConnector returns the connector for the configured warehouse driver.
func NewConnector(cfg *config.Config) (Connector, error) {
	switch cfg.WarehouseDriver {
	case config.DriverDatabricks:
		return &DatabricksConnector{
			Hostname:    normalizeHostname(cfg.WarehouseHost),
			HTTPPath:    cfg.WarehousePath,
			AccessToken: cfg.WarehouseToken,
		}, nil
	case config.DriverPostgres:
		return &PostgresConnector{DSN: postgresDSN(cfg.WarehouseHost, cfg.WarehousePath, cfg.WarehouseUser, cfg.WarehouseToken)}, nil
	case config.DriverSQLite:
		return &SQLiteConnector{Path: cfg.WarehousePath}, nil
	default:
		return nil, fmt.Errorf("unsupported warehouse driver %q", cfg.WarehouseDriver)
	}
}

// DatabricksConnector connects to a Databricks SQL warehouse over HTTPS.
type DatabricksConnector struct {
	Hostname    string
	HTTPPath    string
	AccessToken string
}

func (c *DatabricksConnector) Open(_ context.Context) (*sql.DB, error) {
	connector, err := dbsql.NewConnector(
		dbsql.WithServerHostname(c.Hostname),
		dbsql.WithPort(443),
		dbsql.WithHTTPPath(c.HTTPPath),
		dbsql.WithAccessToken(c.AccessToken),
	)
	if err != nil {
		return nil, fmt.Errorf("databricks connector: %w", err)
	}
	return sql.OpenDB(connector), nil
}

// PostgresConnector connects through the pgx database/sql driver.
type PostgresConnector struct {
	DSN string
}

func (c *PostgresConnector) Open(_ context.Context) (*sql.DB, error) {
	return sql.Open("pgx", c.DSN)
}

// SQLiteConnector opens a local SQLite database file.
type SQLiteConnector struct {
	Path string
}

func (c *SQLiteConnector) Open(_ context.Context) (*sql.DB, error) {
	return sql.Open("sqlite", c.Path)
}

// normalizeHostname strips the scheme and trailing slash that workspace URLs
// usually carry; the Databricks driver wants a bare hostname.
func normalizeHostname(host string) string {
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimRight(host, "/")
}

// postgresDSN maps the generic warehouse settings onto a Postgres URL:
// host is host[:port], path is the database name and token the password.
func postgresDSN(host, database, user, password string) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   host,
		Path:   "/" + strings.TrimPrefix(database, "/"),
	}
	switch {
	case user != "" && password != "":
		u.User = url.UserPassword(user, password)
	case user != "":
		u.User = url.User(user)
	}
	return u.String()
}
