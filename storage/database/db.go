package database

import (
	"context"
	"embed"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/trezcool/gradebook/core"
)

const sqliteDriver = "sqlite"

//go:embed migrations
var migrationsFS embed.FS

func init() {
	sqlx.BindDriver(sqliteDriver, sqlx.QUESTION)
	goose.SetBaseFS(migrationsFS)
}

func postgresDSN(conf core.DatabaseConfig, dbName string, admin bool) string {
	user := url.UserPassword(conf.User, conf.Password)
	if admin && conf.AdminUser != "" {
		user = url.UserPassword(conf.AdminUser, conf.AdminPassword)
	}

	sslMode := "require"
	if conf.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   core.EnginePostgres,
		User:     user,
		Host:     conf.Address(),
		Path:     dbName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func sqliteDSN(conf core.DatabaseConfig) string {
	sep := "?"
	if strings.Contains(conf.Path, "?") {
		sep = "&"
	}
	return conf.Path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Open opens (but does not ping) the configured database.
// SQLite databases are limited to one open connection: writes are serialized by the engine
// anyway, and an in-memory database only lives as long as its connection.
func Open(conf core.DatabaseConfig) (*sqlx.DB, error) {
	switch conf.Engine {
	case core.EngineSQLite:
		db, err := sqlx.Open(sqliteDriver, sqliteDSN(conf))
		if err != nil {
			return nil, errors.Wrap(err, "opening sqlite database")
		}
		db.SetMaxOpenConns(1)
		return db, nil
	case core.EnginePostgres:
		db, err := sqlx.Open(core.EnginePostgres, postgresDSN(conf, conf.Name, false))
		if err != nil {
			return nil, errors.Wrap(err, "opening postgres database")
		}
		if conf.MaxOpenConns > 0 {
			db.SetMaxOpenConns(conf.MaxOpenConns)
		}
		return db, nil
	default:
		return nil, errors.Errorf("unsupported database engine %q", conf.Engine)
	}
}

// Ping waits for the database to be ready. Waits 100ms longer between each attempt.
func Ping(ctx context.Context, db *sqlx.DB, maxAttempts int) error {
	var err error
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.PingContext(ctx)
		if err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "DB ping cancelled")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func rowExists(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) (bool, error) {
	var exists bool
	if err := db.QueryRowxContext(ctx, db.Rebind(query), args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func createAppUser(ctx context.Context, db *sqlx.DB, conf core.DatabaseConfig) error {
	if conf.User == "" || conf.AdminUser == "" || conf.AdminUser == conf.User {
		return nil
	}

	exists, err := rowExists(ctx, db, "SELECT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = ?)", conf.User)
	if err != nil {
		return errors.Wrap(err, "checking app user")
	}
	if !exists {
		q := fmt.Sprintf("CREATE USER %s CREATEDB ENCRYPTED PASSWORD %s",
			pq.QuoteIdentifier(conf.User), pq.QuoteLiteral(conf.Password))
		if _, err = db.ExecContext(ctx, q); err != nil {
			return errors.Wrap(err, "creating app user")
		}
	}
	return nil
}

func createDB(ctx context.Context, db *sqlx.DB, conf core.DatabaseConfig) error {
	exists, err := rowExists(ctx, db, "SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = ?)", conf.Name)
	if err != nil {
		return errors.Wrap(err, "checking DB")
	}
	if !exists {
		if _, err = db.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(conf.Name)); err != nil {
			return errors.Wrap(err, "creating database")
		}
	}
	return nil
}

// CreateIfNotExist creates the app's postgres role and database when missing.
// SQLite databases are created on first connection, so this is a no-op for them.
func CreateIfNotExist(ctx context.Context, conf core.DatabaseConfig) error {
	if conf.Engine != core.EnginePostgres {
		return nil
	}

	// connect as admin
	admin, err := sqlx.Open(core.EnginePostgres, postgresDSN(conf, "postgres", true))
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = admin.Close() }()

	if err = Ping(ctx, admin, 30); err != nil {
		return errors.Wrap(err, "pinging database")
	}
	if err = createAppUser(ctx, admin, conf); err != nil {
		return errors.Wrap(err, "creating app user")
	}

	// create DB as app user
	db, err := sqlx.Open(core.EnginePostgres, postgresDSN(conf, "postgres", false))
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = db.Close() }()

	if err = createDB(ctx, db, conf); err != nil {
		return errors.Wrap(err, "creating database")
	}
	return nil
}

func migrationsDir(engine string) string {
	return path.Join("migrations", engine)
}

func gooseDialect(engine string) (string, error) {
	switch engine {
	case core.EnginePostgres:
		return "postgres", nil
	case core.EngineSQLite:
		return "sqlite3", nil
	}
	return "", errors.Errorf("unsupported database engine %q", engine)
}

// RunMigrations runs a goose command (up, down, status, version, redo, reset, up-to, ...)
// against the embedded migrations of engine.
func RunMigrations(ctx context.Context, db *sqlx.DB, engine, command string, args ...string) error {
	dialect, err := gooseDialect(engine)
	if err != nil {
		return err
	}
	if err = goose.SetDialect(dialect); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	if err = goose.RunContext(ctx, command, db.DB, migrationsDir(engine), args...); err != nil {
		return errors.Wrapf(err, "migrating database (%s)", command)
	}
	return nil
}

// Migrate applies all pending migrations.
func Migrate(ctx context.Context, db *sqlx.DB, engine string) error {
	return RunMigrations(ctx, db, engine, "up")
}

type gooseLogger struct {
	logger core.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSuffix(fmt.Sprintf(format, v...), "\n"))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal(fmt.Sprintf(format, v...))
}

// SetLogger routes migration logs to logger. A nil logger silences them.
func SetLogger(logger core.Logger) {
	if logger == nil {
		goose.SetLogger(goose.NopLogger())
		return
	}
	goose.SetLogger(gooseLogger{logger: logger})
}
