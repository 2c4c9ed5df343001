// Package storetest 为测试提供独立的内存SQLite数据库
package storetest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/tienda/internal/infrastructure/config"
	"github.com/xiebiao/tienda/internal/infrastructure/persistence/store"
)

// Config 返回指向全新内存库的配置（每次调用库名不同，测试之间互不影响）
func Config() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 4000, Mode: "test"},
		Database: config.DatabaseConfig{
			Driver: config.DriverSQLite,
			DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)&_time_format=sqlite",
		},
	}
}

// NewDB 打开内存库并完成迁移，测试结束时自动关闭
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := store.NewDB(Config())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Close(db)
	})
	return db
}
