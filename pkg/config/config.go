package config

import "time"

type Config struct {
	App            AppConfig            `mapstructure:"app"`
	HTTP           HTTPConfig           `mapstructure:"http"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	Queue          QueueConfig          `mapstructure:"queue"`
	Storage        StorageConfig        `mapstructure:"storage"`
	JWT            JWTConfig            `mapstructure:"jwt"`
	Vault          VaultConfig          `mapstructure:"vault"`
	OpenTelemetry  OpenTelemetryConfig  `mapstructure:"opentelemetry"`
	Prometheus     PrometheusConfig     `mapstructure:"prometheus"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	RateLimiting   RateLimitingConfig   `mapstructure:"rate_limiting"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	CORS           CORSConfig           `mapstructure:"cors"`
	Notification   NotificationConfig   `mapstructure:"notification"`
	Analytics      AnalyticsConfig      `mapstructure:"analytics"`
	Region         RegionConfig         `mapstructure:"region"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	BodyLimitMB  int           `mapstructure:"body_limit_mb"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	LogQueries      bool          `mapstructure:"log_queries"`
}

type RedisConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

// QueueConfig selects the event bus. Provider is "nats", "rabbitmq" or "none".
type QueueConfig struct {
	Provider string         `mapstructure:"provider"`
	NATS     NATSConfig     `mapstructure:"nats"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
}

type NATSConfig struct {
	URL           string        `mapstructure:"url"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
}

type RabbitMQConfig struct {
	URL          string `mapstructure:"url"`
	ExchangeType string `mapstructure:"exchange_type"`
}

// StorageConfig points at an S3-compatible bucket (Supabase storage exposes one).
type StorageConfig struct {
	Endpoint      string `mapstructure:"endpoint"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	UsePathStyle  bool   `mapstructure:"use_path_style"`
}

type JWTConfig struct {
	Secret               string        `mapstructure:"secret"`
	AccessTokenDuration  time.Duration `mapstructure:"access_token_duration"`
	RefreshTokenDuration time.Duration `mapstructure:"refresh_token_duration"`
	Issuer               string        `mapstructure:"issuer"`
}

type VaultConfig struct {
	Address    string `mapstructure:"address"`
	Token      string `mapstructure:"token"`
	SecretPath string `mapstructure:"secret_path"`
}

type OpenTelemetryConfig struct {
	Enabled     bool         `mapstructure:"enabled"`
	Jaeger      JaegerConfig `mapstructure:"jaeger"`
	ServiceName string       `mapstructure:"service_name"`
}

type JaegerConfig struct {
	Endpoint     string  `mapstructure:"endpoint"`
	SamplerParam float64 `mapstructure:"sampler_param"`
}

type PrometheusConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string            `mapstructure:"level"`
	Format string            `mapstructure:"format"`
	Output string            `mapstructure:"output"`
	File   LoggingFileConfig `mapstructure:"file"`
}

type LoggingFileConfig struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// RateLimitingConfig sets the global per-IP bucket. The Auth* pair is a
// stricter bucket for the anonymous sign-in and privilege-check routes.
type RateLimitingConfig struct {
	Enabled               bool    `mapstructure:"enabled"`
	RequestsPerSecond     float64 `mapstructure:"requests_per_second"`
	Burst                 int     `mapstructure:"burst"`
	AuthRequestsPerSecond float64 `mapstructure:"auth_requests_per_second"`
	AuthBurst             int     `mapstructure:"auth_burst"`
}

type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold float64       `mapstructure:"failure_threshold"`
}

// CORSConfig admits the public site (SiteURL) plus any AllowedOrigins.
type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	SiteURL        string   `mapstructure:"site_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	ExposeHeaders  []string `mapstructure:"expose_headers"`
	MaxAge         int      `mapstructure:"max_age"`
	Credentials    bool     `mapstructure:"credentials"`
}

type NotificationConfig struct {
	Email           EmailConfig   `mapstructure:"email"`
	LeadsNotifyTo   string        `mapstructure:"leads_notify_to"`
	LeadsNotifyFrom string        `mapstructure:"leads_notify_from"`
	SendTimeout     time.Duration `mapstructure:"send_timeout"`
}

type EmailConfig struct {
	Provider string `mapstructure:"provider"`
	APIKey   string `mapstructure:"api_key"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	SMTPUser string `mapstructure:"smtp_user"`
	SMTPPass string `mapstructure:"smtp_pass"`
}

// AnalyticsConfig carries the business constants and the injected
// traffic/performance figures that the report exposes verbatim.
type AnalyticsConfig struct {
	RevenuePerRequest    int               `mapstructure:"revenue_per_request"`
	DailyAdSpend         int               `mapstructure:"daily_ad_spend"`
	AvgCompletionTime    float64           `mapstructure:"avg_completion_time"`
	CustomerSatisfaction float64           `mapstructure:"customer_satisfaction"`
	FetchTimeout         time.Duration     `mapstructure:"fetch_timeout"`
	Traffic              TrafficConfig     `mapstructure:"traffic"`
	Performance          PerformanceConfig `mapstructure:"performance"`
}

type TrafficConfig struct {
	TotalVisitors      int             `mapstructure:"total_visitors"`
	UniqueVisitors     int             `mapstructure:"unique_visitors"`
	PageViews          int             `mapstructure:"page_views"`
	BounceRate         float64         `mapstructure:"bounce_rate"`
	AvgSessionDuration float64         `mapstructure:"avg_session_duration"`
	TopPages           []TopPageConfig `mapstructure:"top_pages"`
}

type TopPageConfig struct {
	Page       string  `mapstructure:"page"`
	Views      int     `mapstructure:"views"`
	Conversion float64 `mapstructure:"conversion"`
}

type PerformanceConfig struct {
	ResponseTime          float64 `mapstructure:"response_time"`
	FirstDraftTime        float64 `mapstructure:"first_draft_time"`
	RevisionTime          float64 `mapstructure:"revision_time"`
	FinalDeliveryTime     float64 `mapstructure:"final_delivery_time"`
	RevisionRate          float64 `mapstructure:"revision_rate"`
	CustomerRetentionRate float64 `mapstructure:"customer_retention_rate"`
	ReferralRate          float64 `mapstructure:"referral_rate"`
}

type RegionConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// ApplySecrets overlays values fetched from a secret store onto the config.
// Unknown keys are ignored; empty values never clear an existing setting.
func (c *Config) ApplySecrets(secrets map[string]string) {
	set := func(dst *string, key string) {
		if v, ok := secrets[key]; ok && v != "" {
			*dst = v
		}
	}
	set(&c.Database.URL, "database_url")
	set(&c.Redis.URL, "redis_url")
	set(&c.JWT.Secret, "jwt_secret")
	set(&c.Notification.Email.APIKey, "email_api_key")
	set(&c.Notification.Email.SMTPPass, "smtp_pass")
	set(&c.Storage.AccessKey, "storage_access_key")
	set(&c.Storage.SecretKey, "storage_secret_key")
}

// Location resolves the reporting timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	if c.Region.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Region.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
