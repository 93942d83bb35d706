package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	ActorHeader    string   `mapstructure:"actor_header"`

	// RateLimitPerMinute caps calculate and execute calls per caller; 0 disables it.
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects the gorm dialect with Driver ("mysql" or "sqlite").
// For sqlite, Database is the file path (":memory:" is accepted).
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.Database
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

// GooseDialect maps Driver to the dialect name goose expects.
func (d *DatabaseConfig) GooseDialect() string {
	if d.Driver == "sqlite" {
		return "sqlite3"
	}
	return "mysql"
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type DistributionConfig struct {
	PlanTTLMinutes  int    `mapstructure:"plan_ttl_minutes"`
	PlanKeyPrefix   string `mapstructure:"plan_key_prefix"`
	HistoryMaxRows  int    `mapstructure:"history_max_rows"`
	NotesMaxLength  int    `mapstructure:"notes_max_length"`
	DefaultItemUnit string `mapstructure:"default_item_unit"`
}

func (d *DistributionConfig) PlanTTL() time.Duration {
	if d.PlanTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(d.PlanTTLMinutes) * time.Minute
}

type SchedulerConfig struct {
	ExpiryIntervalMinutes int `mapstructure:"expiry_interval_minutes"`
	ExpiryBatchSize       int `mapstructure:"expiry_batch_size"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`

	// WorkerAddr is where cmd/worker listens for scrapes. Empty disables it.
	WorkerAddr string `mapstructure:"worker_addr"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}
