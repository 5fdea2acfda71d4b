package db

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"potatoapi/internal/model"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("oracle", "whatever")
	assert.Error(t, err)
}

func TestOpen_SQLiteLifecycle(t *testing.T) {
	gormDB, err := Open("sqlite", ":memory:")
	require.NoError(t, err)

	require.NoError(t, Migrate(gormDB))
	assert.True(t, gormDB.Migrator().HasTable("users"))
	assert.True(t, gormDB.Migrator().HasTable("api_keys"))
	assert.True(t, gormDB.Migrator().HasTable("photos"))

	assert.NoError(t, Ping(context.Background(), gormDB))
	require.NoError(t, Close(gormDB))
	assert.Error(t, Ping(context.Background(), gormDB))
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{dsn: ":memory:", want: ":memory:?_pragma=foreign_keys(1)"},
		{dsn: "file:potato.db?cache=shared", want: "file:potato.db?cache=shared&_pragma=foreign_keys(1)"},
		{dsn: "potato.db?_pragma=foreign_keys(0)", want: "potato.db?_pragma=foreign_keys(0)"},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, sqliteDSN(tt.dsn))
		})
	}
}

func TestOpen_SQLiteCascadesUserDelete(t *testing.T) {
	gormDB, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gormDB) })
	require.NoError(t, Migrate(gormDB))

	var enabled int
	require.NoError(t, gormDB.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)

	user := &model.User{Email: "spud@example.com", PasswordHash: "hash"}
	require.NoError(t, gormDB.Create(user).Error)
	require.NoError(t, gormDB.Create(&model.APIKey{Key: "pk_owned", UserID: user.ID}).Error)

	require.NoError(t, gormDB.Where("id = ?", user.ID).Delete(&model.User{}).Error)

	var keys int64
	require.NoError(t, gormDB.Model(&model.APIKey{}).Count(&keys).Error)
	assert.Zero(t, keys)
}

func TestOpen_LogsThroughSlogWithoutRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	gormDB, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gormDB) })
	require.NoError(t, Migrate(gormDB))

	var user model.User
	err = gormDB.Where("email = ?", "nobody@example.com").First(&user).Error
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.NotContains(t, buf.String(), "record not found")

	require.Error(t, gormDB.Exec("SELECT * FROM missing_table").Error)
	assert.Contains(t, buf.String(), "missing_table")
}
