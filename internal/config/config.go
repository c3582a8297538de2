// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	keyDatabaseURL      = "DATABASE_URL"
	keyServerPort       = "SERVER_PORT"
	keyLogLevel         = "LOG_LEVEL"
	keyRunMigrations    = "RUN_MIGRATIONS"
	keyMaxConnections   = "DB_MAX_CONNECTIONS"
	keyMinConnections   = "DB_MIN_CONNECTIONS"
	keyAcquireTimeout   = "DB_ACQUIRE_TIMEOUT"
	keyIdleTimeout      = "DB_IDLE_TIMEOUT"
	keyMaxConnLifetime  = "DB_MAX_LIFETIME"
	DefaultServerPort   = 3000
	DefaultEnvFile      = ".env"
	defaultLogLevel     = "info"
	defaultMaxConns     = 10
	defaultMinConns     = 2
	defaultAcquire      = 3 * time.Second
	defaultIdleTimeout  = 10 * time.Minute
	defaultConnLifetime = 30 * time.Minute
)

// Config 是程序啟動時讀取一次的設定，執行期間不會再變更
type Config struct {
	DatabaseURL   string
	ServerPort    int
	LogLevel      string
	RunMigrations bool
	Pool          PoolConfig
}

// PoolConfig 描述資料庫連線池的大小與逾時
type PoolConfig struct {
	MaxConnections int32
	MinConnections int32
	AcquireTimeout time.Duration
	IdleTimeout    time.Duration
	MaxLifetime    time.Duration
}

// Addr 回傳 echo 監聽位址
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

// Load 從環境變數讀取設定；envFile 存在時先以 dotenv 格式載入，環境變數優先
func Load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault(keyServerPort, strconv.Itoa(DefaultServerPort))
	v.SetDefault(keyLogLevel, defaultLogLevel)
	v.SetDefault(keyRunMigrations, true)
	v.SetDefault(keyMaxConnections, defaultMaxConns)
	v.SetDefault(keyMinConnections, defaultMinConns)
	v.SetDefault(keyAcquireTimeout, defaultAcquire)
	v.SetDefault(keyIdleTimeout, defaultIdleTimeout)
	v.SetDefault(keyMaxConnLifetime, defaultConnLifetime)
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("讀取 %s 失敗: %w", envFile, err)
		}
	}

	dbURL := strings.TrimSpace(v.GetString(keyDatabaseURL))
	if dbURL == "" {
		return nil, fmt.Errorf("環境變數 %s 未設定", keyDatabaseURL)
	}

	port, err := parsePort(v.GetString(keyServerPort))
	if err != nil {
		return nil, err
	}

	pool, err := loadPool(v)
	if err != nil {
		return nil, err
	}

	return &Config{
		DatabaseURL:   dbURL,
		ServerPort:    port,
		LogLevel:      v.GetString(keyLogLevel),
		RunMigrations: v.GetBool(keyRunMigrations),
		Pool:          pool,
	}, nil
}

func parsePort(raw string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("無效的 %s %q: %w", keyServerPort, raw, err)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("無效的 %s %d: 超出範圍", keyServerPort, port)
	}
	return port, nil
}

func loadPool(v *viper.Viper) (PoolConfig, error) {
	maxConns, err := nonNegativeInt(v, keyMaxConnections)
	if err != nil {
		return PoolConfig{}, err
	}
	if maxConns == 0 {
		return PoolConfig{}, fmt.Errorf("%s 必須大於 0", keyMaxConnections)
	}
	minConns, err := nonNegativeInt(v, keyMinConnections)
	if err != nil {
		return PoolConfig{}, err
	}
	if minConns > maxConns {
		return PoolConfig{}, fmt.Errorf("%s (%d) 不可大於 %s (%d)", keyMinConnections, minConns, keyMaxConnections, maxConns)
	}

	var durations [3]time.Duration
	for i, key := range []string{keyAcquireTimeout, keyIdleTimeout, keyMaxConnLifetime} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil || d <= 0 {
			return PoolConfig{}, fmt.Errorf("無效的 %s %q", key, v.GetString(key))
		}
		durations[i] = d
	}

	return PoolConfig{
		MaxConnections: maxConns,
		MinConnections: minConns,
		AcquireTimeout: durations[0],
		IdleTimeout:    durations[1],
		MaxLifetime:    durations[2],
	}, nil
}

// nonNegativeInt 解析 int32 範圍內的非負整數，超出範圍視為錯誤
func nonNegativeInt(v *viper.Viper, key string) (int32, error) {
	raw := v.GetString(key)
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 32)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("無效的 %s %q", key, raw)
	}
	return int32(n), nil
}
