package config

import "fmt"

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
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
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
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

// PaymentConfig points at the payment provider used for refunds. An empty
// GatewayBaseURL selects the log-only gateway, which never calls out.
type PaymentConfig struct {
	GatewayBaseURL string `mapstructure:"gateway_base_url"`
	APIKey         string `mapstructure:"api_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// MarketplaceConfig holds tunables for the seat marketplace background jobs.
// Pricing constants are deliberately NOT configurable: client previews and
// server-side charging must agree byte-for-byte (see domain/pricing).
type MarketplaceConfig struct {
	Timezone string `mapstructure:"timezone"`

	// SweepIntervalMinutes controls how often the grant expiry sweep runs.
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes"`

	// ReleaseSeatsOnExpiry decides whether expiring a grant frees the seat
	// in the owning pool. Off by default: an expired grant keeps its seat
	// occupied until an administrator intervenes.
	ReleaseSeatsOnExpiry bool `mapstructure:"release_seats_on_expiry"`

	// RefundRetryMinutes controls how often pending refund tasks are retried.
	RefundRetryMinutes int `mapstructure:"refund_retry_minutes"`

	// RefundMaxAttempts bounds refund retries before a task is marked failed.
	RefundMaxAttempts int `mapstructure:"refund_max_attempts"`
}
