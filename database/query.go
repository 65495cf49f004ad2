package database

import (
	"burnshop_server/config"
	"burnshop_server/structs"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const slowQueryThreshold = time.Second

// sqliteDriverName is go-sqlite3 with lower() replaced by a Unicode-aware version;
// the built-in one only folds ASCII.
const sqliteDriverName = "sqlite3_unicode"

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", unicodeLower, true)
		},
	})
}

// unicodeLower folds text like strings.ToLower; NULL stays NULL
func unicodeLower(v any) any {
	switch s := v.(type) {
	case string:
		return strings.ToLower(s)
	case []byte:
		if s == nil {
			return nil
		}
		return strings.ToLower(string(s))
	default:
		return v
	}
}

// DB wraps the bun database connection with additional functionality
type DB struct {
	*bun.DB
}

var instance *DB

// Connect establishes a connection to the database using centralized configuration
func Connect() (*DB, error) {
	return Open(config.GetConfig().Database, config.GetLogger())
}

// Open connects to Postgres or SQLite depending on dbCfg.Driver
func Open(dbCfg *structs.DatabaseConfig, logger *gecho.Logger) (*DB, error) {
	var db *bun.DB

	switch dbCfg.Driver {
	case "postgres", "":
		connector := pgdriver.NewConnector(
			pgdriver.WithAddr(fmt.Sprintf("%s:%d", dbCfg.Host, dbCfg.Port)),
			pgdriver.WithUser(dbCfg.User),
			pgdriver.WithPassword(dbCfg.Password),
			pgdriver.WithDatabase(dbCfg.Name),
			pgdriver.WithInsecure(true),
			pgdriver.WithReadTimeout(dbCfg.ReadTimeout),
			pgdriver.WithWriteTimeout(dbCfg.WriteTimeout),
		)
		sqldb := sql.OpenDB(connector)
		sqldb.SetMaxOpenConns(dbCfg.MaxConns)
		sqldb.SetMaxIdleConns(dbCfg.MinConns)
		sqldb.SetConnMaxLifetime(dbCfg.MaxLifetime)
		sqldb.SetConnMaxIdleTime(dbCfg.MaxIdleTime)
		db = bun.NewDB(sqldb, pgdialect.New())

	case "sqlite":
		sqldb, err := sql.Open(sqliteDriverName, dbCfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// SQLite allows one writer; a single connection keeps in-memory databases alive as well
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())

	default:
		return nil, fmt.Errorf("unsupported database driver %q", dbCfg.Driver)
	}

	db.AddQueryHook(&queryLogHook{logger: logger})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database successfully", gecho.Field("driver", dbCfg.Driver))

	return &DB{db}, nil
}

// Initialize sets up the global database instance using centralized configuration
func Initialize() error {
	db, err := Connect()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if config.GetConfig().Database.CreateSchema {
		if err := CreateSchema(context.Background(), db); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	instance = db
	return nil
}

// GetInstance returns the global database instance
func GetInstance() *DB {
	if instance == nil {
		log.Fatal("Database instance is not initialized. Call Initialize() first.")
	}
	return instance
}

// CloseInstance closes the global database instance
func CloseInstance() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

// Health checks the database connection health
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

// queryLogHook logs slow queries and lost connections
type queryLogHook struct {
	logger *gecho.Logger
}

func (h *queryLogHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryLogHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)
	if duration > slowQueryThreshold {
		h.logger.Warn("Slow database query detected",
			gecho.Field("query", event.Query),
			gecho.Field("duration", duration),
		)
	}

	if event.Err != nil && (errors.Is(event.Err, sql.ErrConnDone) || event.Err.Error() == "EOF" || event.Err.Error() == "unexpected EOF") {
		h.logger.Error("Database connection lost - connection may have been closed by server",
			gecho.Field("error", event.Err),
			gecho.Field("query", event.Query),
		)
	}
}
