package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // debug / release
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ModerationConfig 审核队列配置
type ModerationConfig struct {
	StatsWindow     time.Duration `mapstructure:"stats_window"`      // 统计窗口，默认 30 天
	StatsCacheTTL   time.Duration `mapstructure:"stats_cache_ttl"`   // 统计缓存 TTL
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`  // 自动刷新间隔
	AuditQueueSize  int           `mapstructure:"audit_queue_size"`  // 审计日志缓冲队列长度
	AuditWorkers    int           `mapstructure:"audit_workers"`     // 审计日志异步写入 worker 数
	DefaultPageSize int           `mapstructure:"default_page_size"` // 列表默认分页大小
}

// AuthConfig 鉴权配置（仅校验上游签发的 JWT，不负责登录）
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// SentryConfig Sentry 上报配置
type SentryConfig struct {
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

// TelemetryConfig OTLP 链路追踪配置
type TelemetryConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

// Load 读取 config.yaml + 环境变量（MODQUEUE_ 前缀）
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("MODQUEUE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失时仅靠默认值 + 环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.dsn", "host=127.0.0.1 user=postgres password=postgres dbname=modqueue port=5432 sslmode=disable")
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("moderation.stats_window", 30*24*time.Hour)
	v.SetDefault("moderation.stats_cache_ttl", time.Minute)
	v.SetDefault("moderation.refresh_interval", 30*time.Second)
	v.SetDefault("moderation.audit_queue_size", 10000)
	v.SetDefault("moderation.audit_workers", 2)
	v.SetDefault("moderation.default_page_size", 10)
	v.SetDefault("sentry.sample_rate", 1.0)
	v.SetDefault("telemetry.service_name", "modqueue")
}
