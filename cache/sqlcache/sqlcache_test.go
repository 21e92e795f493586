package sqlcache

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/blockgen"
)

func escape(query string) string {
	return regexp.QuoteMeta(query)
}

func mockCache(t *testing.T, dialect string) (*Cache, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	c, err := New(db, dialect)
	require.NoError(t, err)
	c.now = func() time.Time { return time.Unix(100, 0) }
	t.Cleanup(func() { _ = c.Close() })
	return c, mock
}

func TestNew(t *testing.T) {
	_, err := New(nil, "oracle")
	assert.ErrorIs(t, err, ErrUnsupportedDialect)

	_, err = OpenDSN("sqlite")
	assert.Error(t, err)
	_, err = OpenDSN("mssql:server=x")
	assert.ErrorIs(t, err, ErrUnsupportedDialect)
}

func TestSet(t *testing.T) {
	tests := []struct {
		dialect string
		query   string
	}{
		{
			dialect: SQLite,
			query:   "INSERT INTO blockgen_cache (cache_key, value, expires_at) VALUES (?, ?, ?) ON CONFLICT (cache_key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at",
		},
		{
			dialect: Postgres,
			query:   "INSERT INTO blockgen_cache (cache_key, value, expires_at) VALUES ($1, $2, $3) ON CONFLICT (cache_key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at",
		},
		{
			dialect: MySQL,
			query:   "INSERT INTO blockgen_cache (cache_key, value, expires_at) VALUES (?, ?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value), expires_at = VALUES(expires_at)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.dialect, func(t *testing.T) {
			c, mock := mockCache(t, tt.dialect)
			mock.ExpectExec(escape(tt.query)).
				WithArgs("python:ws:opts", []byte("print(1)\n"), time.Unix(160, 0).UnixNano()).
				WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectExec(escape(tt.query)).
				WithArgs("lua:ws:opts", []byte("x"), int64(0)).
				WillReturnResult(sqlmock.NewResult(1, 1))

			ctx := context.Background()
			require.NoError(t, c.Set(ctx, "python:ws:opts", []byte("print(1)\n"), time.Minute))
			require.NoError(t, c.Set(ctx, "lua:ws:opts", []byte("x"), 0))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("negative ttl", func(t *testing.T) {
		c, _ := mockCache(t, SQLite)
		err := c.Set(context.Background(), "k", nil, -time.Second)
		assert.ErrorIs(t, err, blockgen.ErrInvalidTTL)
	})
}

func TestGet(t *testing.T) {
	query := escape("SELECT value, expires_at FROM blockgen_cache WHERE cache_key = $1")
	ctx := context.Background()

	t.Run("hit", func(t *testing.T) {
		c, mock := mockCache(t, Postgres)
		mock.ExpectQuery(query).WithArgs("k").
			WillReturnRows(sqlmock.NewRows([]string{"value", "expires_at"}).AddRow([]byte("code"), 0))
		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("code"), got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss", func(t *testing.T) {
		c, mock := mockCache(t, Postgres)
		mock.ExpectQuery(query).WithArgs("k").
			WillReturnRows(sqlmock.NewRows([]string{"value", "expires_at"}))
		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("expired", func(t *testing.T) {
		c, mock := mockCache(t, Postgres)
		mock.ExpectQuery(query).WithArgs("k").
			WillReturnRows(sqlmock.NewRows([]string{"value", "expires_at"}).AddRow([]byte("old"), time.Unix(50, 0).UnixNano()))
		mock.ExpectExec(escape("DELETE FROM blockgen_cache WHERE cache_key = $1")).WithArgs("k").
			WillReturnResult(sqlmock.NewResult(0, 1))
		got, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		c, mock := mockCache(t, Postgres)
		mock.ExpectQuery(query).WithArgs("k").WillReturnError(errors.New("connection reset"))
		_, err := c.Get(ctx, "k")
		require.Error(t, err)
		assert.True(t, blockgen.IsCacheError(err))
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestDeletePrefix(t *testing.T) {
	c, mock := mockCache(t, MySQL)
	mock.ExpectExec(escape("DELETE FROM blockgen_cache WHERE cache_key LIKE ? ESCAPE '!'")).
		WithArgs("py!_3:%").
		WillReturnResult(sqlmock.NewResult(0, 2))
	require.NoError(t, c.DeletePrefix(context.Background(), "py_3:"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPurge(t *testing.T) {
	c, mock := mockCache(t, SQLite)
	mock.ExpectExec(escape("DELETE FROM blockgen_cache WHERE expires_at > 0 AND expires_at <= ?")).
		WithArgs(time.Unix(100, 0).UnixNano()).
		WillReturnResult(sqlmock.NewResult(0, 3))
	n, err := c.Purge(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate(t *testing.T) {
	tests := map[string]string{
		SQLite:   "BLOB",
		MySQL:    "LONGBLOB",
		Postgres: "BYTEA",
	}
	for dialect, blob := range tests {
		t.Run(dialect, func(t *testing.T) {
			c, mock := mockCache(t, dialect)
			mock.ExpectExec(escape("CREATE TABLE IF NOT EXISTS blockgen_cache (cache_key VARCHAR(255) NOT NULL PRIMARY KEY, value " + blob + " NOT NULL, expires_at BIGINT NOT NULL DEFAULT 0)")).
				WillReturnResult(sqlmock.NewResult(0, 0))
			require.NoError(t, c.Migrate(context.Background()))
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestClosed(t *testing.T) {
	c, mock := mockCache(t, SQLite)
	mock.ExpectClose()
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	ctx := context.Background()
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, blockgen.ErrCacheClosed)
	assert.ErrorIs(t, c.Set(ctx, "k", nil, 0), blockgen.ErrCacheClosed)
	assert.ErrorIs(t, c.Delete(ctx, "k"), blockgen.ErrCacheClosed)
	assert.ErrorIs(t, c.DeletePrefix(ctx, "k"), blockgen.ErrCacheClosed)
	assert.ErrorIs(t, c.Clear(ctx), blockgen.ErrCacheClosed)
	assert.ErrorIs(t, c.Migrate(ctx), blockgen.ErrCacheClosed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLite(t *testing.T) {
	c, err := OpenDSN("sqlite:" + filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer c.Close()

	now := time.Unix(1_000, 0)
	c.now = func() time.Time { return now }

	ctx := context.Background()
	require.NoError(t, c.Migrate(ctx))
	require.NoError(t, c.Migrate(ctx), "migrate is idempotent")

	require.NoError(t, c.Set(ctx, "lua:a:o", []byte("print(1)\n"), 0))
	require.NoError(t, c.Set(ctx, "lua:b:o", []byte("old"), time.Minute))
	require.NoError(t, c.Set(ctx, "lua:b:o", []byte("new"), time.Minute))
	require.NoError(t, c.Set(ctx, "php:a:o", []byte("<?php"), time.Second))

	got, err := c.Get(ctx, "lua:b:o")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	now = now.Add(2 * time.Second)
	got, err = c.Get(ctx, "php:a:o")
	require.NoError(t, err)
	assert.Nil(t, got, "expired entries are misses")

	require.NoError(t, c.DeletePrefix(ctx, "lua:"))
	got, err = c.Get(ctx, "lua:a:o")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, "python:a:o", []byte{}, 0))
	got, err = c.Get(ctx, "python:a:o")
	require.NoError(t, err)
	assert.Equal(t, []byte{}, got)

	require.NoError(t, c.Clear(ctx))
	got, err = c.Get(ctx, "python:a:o")
	require.NoError(t, err)
	assert.Nil(t, got)
}
