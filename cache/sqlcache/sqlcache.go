// Package sqlcache stores generated programs in a SQL table, so repeated
// runs of the generator across processes can skip unchanged workspaces.
//
// Supported dialects are SQLite (modernc.org/sqlite), MySQL and PostgreSQL:
//
//	c, err := sqlcache.Open("sqlite", "file:cache.db")
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//	if err := c.Migrate(ctx); err != nil {
//		return err
//	}
package sqlcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/syssam/blockgen"
)

// Dialect names.
const (
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// Table is the name of the cache table.
const Table = "blockgen_cache"

// ErrUnsupportedDialect is returned for dialects other than MySQL,
// PostgreSQL and SQLite.
var ErrUnsupportedDialect = errors.New("sqlcache: unsupported dialect")

// Cache is a blockgen.Cache backed by a SQL database.
type Cache struct {
	db      *sql.DB
	dialect string
	closed  atomic.Bool
	now     func() time.Time
}

var _ blockgen.Cache = (*Cache)(nil)

// Open opens a database with the driver registered for dialect and
// wraps it in a Cache.
func Open(dialect, dsn string) (*Cache, error) {
	if err := checkDialect(dialect); err != nil {
		return nil, err
	}
	db, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlcache: open %s: %w", dialect, err)
	}
	return &Cache{db: db, dialect: dialect, now: time.Now}, nil
}

// OpenDSN opens a cache from a "dialect:dsn" string, e.g.
// "sqlite:file:cache.db" or "postgres:postgres://localhost/blockgen".
func OpenDSN(spec string) (*Cache, error) {
	dialect, dsn, ok := strings.Cut(spec, ":")
	if !ok || dsn == "" {
		return nil, fmt.Errorf("sqlcache: invalid cache %q, want dialect:dsn", spec)
	}
	return Open(dialect, dsn)
}

// New wraps an open database.
func New(db *sql.DB, dialect string) (*Cache, error) {
	if err := checkDialect(dialect); err != nil {
		return nil, err
	}
	return &Cache{db: db, dialect: dialect, now: time.Now}, nil
}

func checkDialect(dialect string) error {
	switch dialect {
	case MySQL, Postgres, SQLite:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}
}

// Dialect returns the dialect of the underlying database.
func (c *Cache) Dialect() string {
	return c.dialect
}

// DB returns the underlying database.
func (c *Cache) DB() *sql.DB {
	return c.db
}

// Migrate creates the cache table if it does not exist.
func (c *Cache) Migrate(ctx context.Context) error {
	if c.closed.Load() {
		return blockgen.NewCacheError("migrate", "", blockgen.ErrCacheClosed)
	}
	blob := "BLOB"
	switch c.dialect {
	case MySQL:
		blob = "LONGBLOB"
	case Postgres:
		blob = "BYTEA"
	}
	query := "CREATE TABLE IF NOT EXISTS " + Table + " (" +
		"cache_key VARCHAR(255) NOT NULL PRIMARY KEY, " +
		"value " + blob + " NOT NULL, " +
		"expires_at BIGINT NOT NULL DEFAULT 0)"
	if _, err := c.db.ExecContext(ctx, query); err != nil {
		return blockgen.NewCacheError("migrate", "", err)
	}
	return nil
}

// Get implements blockgen.Cache. Expired entries are removed and reported
// as missing.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.closed.Load() {
		return nil, blockgen.NewCacheError("get", key, blockgen.ErrCacheClosed)
	}
	var (
		value   []byte
		expires int64
	)
	err := c.db.QueryRowContext(ctx,
		c.rebind("SELECT value, expires_at FROM "+Table+" WHERE cache_key = ?"), key,
	).Scan(&value, &expires)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, blockgen.NewCacheError("get", key, err)
	}
	if expires > 0 && c.now().UnixNano() >= expires {
		if err := c.Delete(ctx, key); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

// Set implements blockgen.Cache.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.closed.Load() {
		return blockgen.NewCacheError("set", key, blockgen.ErrCacheClosed)
	}
	if ttl < 0 {
		return blockgen.NewCacheError("set", key, blockgen.ErrInvalidTTL)
	}
	var expires int64
	if ttl > 0 {
		expires = c.now().Add(ttl).UnixNano()
	}
	if value == nil {
		value = []byte{}
	}
	if _, err := c.db.ExecContext(ctx, c.upsert(), key, value, expires); err != nil {
		return blockgen.NewCacheError("set", key, err)
	}
	return nil
}

func (c *Cache) upsert() string {
	insert := "INSERT INTO " + Table + " (cache_key, value, expires_at) VALUES (?, ?, ?)"
	if c.dialect == MySQL {
		return insert + " ON DUPLICATE KEY UPDATE value = VALUES(value), expires_at = VALUES(expires_at)"
	}
	return c.rebind(insert + " ON CONFLICT (cache_key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at")
}

// Delete implements blockgen.Cache.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if c.closed.Load() {
		return blockgen.NewCacheError("delete", key, blockgen.ErrCacheClosed)
	}
	if _, err := c.db.ExecContext(ctx, c.rebind("DELETE FROM "+Table+" WHERE cache_key = ?"), key); err != nil {
		return blockgen.NewCacheError("delete", key, err)
	}
	return nil
}

// DeletePrefix implements blockgen.Cache.
func (c *Cache) DeletePrefix(ctx context.Context, prefix string) error {
	if c.closed.Load() {
		return blockgen.NewCacheError("delete_prefix", prefix, blockgen.ErrCacheClosed)
	}
	query := c.rebind("DELETE FROM " + Table + " WHERE cache_key LIKE ? ESCAPE '!'")
	if _, err := c.db.ExecContext(ctx, query, escapeLike(prefix)+"%"); err != nil {
		return blockgen.NewCacheError("delete_prefix", prefix, err)
	}
	return nil
}

// Clear implements blockgen.Cache.
func (c *Cache) Clear(ctx context.Context) error {
	if c.closed.Load() {
		return blockgen.NewCacheError("clear", "", blockgen.ErrCacheClosed)
	}
	if _, err := c.db.ExecContext(ctx, "DELETE FROM "+Table); err != nil {
		return blockgen.NewCacheError("clear", "", err)
	}
	return nil
}

// Purge removes every expired entry and returns how many were removed.
func (c *Cache) Purge(ctx context.Context) (int64, error) {
	if c.closed.Load() {
		return 0, blockgen.NewCacheError("purge", "", blockgen.ErrCacheClosed)
	}
	res, err := c.db.ExecContext(ctx,
		c.rebind("DELETE FROM "+Table+" WHERE expires_at > 0 AND expires_at <= ?"),
		c.now().UnixNano())
	if err != nil {
		return 0, blockgen.NewCacheError("purge", "", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, blockgen.NewCacheError("purge", "", err)
	}
	return n, nil
}

// Close closes the database. Calls on a closed cache fail with
// blockgen.ErrCacheClosed.
func (c *Cache) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	return c.db.Close()
}

// rebind replaces "?" placeholders with "$n" for PostgreSQL.
func (c *Cache) rebind(query string) string {
	if c.dialect != Postgres {
		return query
	}
	var (
		b strings.Builder
		n int
	)
	for _, r := range query {
		if r != '?' {
			b.WriteRune(r)
			continue
		}
		n++
		b.WriteString("$" + strconv.Itoa(n))
	}
	return b.String()
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
