package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// PoolConfig はsql.DBのコネクションプール設定。
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig はAPIサーバー1プロセス分の設定を返す。
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// Open はlib/pqドライバでPostgreSQLの接続プールを開く。
// databaseURLはpostgres://形式のURLか、key=value形式の接続文字列を受け付ける。
// URLのスキームや構文が不正な場合はここでエラーを返すが、接続自体は試行しない。
func Open(databaseURL string, pool PoolConfig) (*sql.DB, error) {
	dsn := databaseURL
	if strings.Contains(databaseURL, "://") {
		parsed, err := pq.ParseURL(databaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid database url: %w", err)
		}
		dsn = parsed
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	return db, nil
}
