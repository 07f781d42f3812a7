package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	// .env is optional; real environment variables win over it.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.AddConfigPath("/app/configs")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Allow common env vars without APP_ prefix for Docker/VM deploys
	v.BindEnv("http.port", "PORT", "HTTP_PORT", "APP_HTTP_PORT")
	v.BindEnv("database.url", "DATABASE_URL", "APP_DATABASE_URL")
	v.BindEnv("redis.url", "REDIS_URL", "APP_REDIS_URL")
	v.BindEnv("queue.provider", "QUEUE_PROVIDER")
	v.BindEnv("queue.nats.url", "NATS_URL", "APP_NATS_URL")
	v.BindEnv("queue.rabbitmq.url", "RABBITMQ_URL", "AMQP_URL")
	v.BindEnv("jwt.secret", "JWT_SECRET", "APP_JWT_SECRET")
	v.BindEnv("storage.endpoint", "STORAGE_ENDPOINT")
	v.BindEnv("storage.access_key", "STORAGE_ACCESS_KEY")
	v.BindEnv("storage.secret_key", "STORAGE_SECRET_KEY")
	v.BindEnv("storage.public_base_url", "STORAGE_PUBLIC_URL")
	v.BindEnv("notification.email.api_key", "SENDGRID_API_KEY")
	v.BindEnv("notification.leads_notify_to", "LEADS_NOTIFY_TO")
	v.BindEnv("notification.leads_notify_from", "LEADS_NOTIFY_FROM")
	v.BindEnv("vault.address", "VAULT_ADDR")
	v.BindEnv("vault.token", "VAULT_TOKEN")
	v.BindEnv("app.environment", "APP_ENVIRONMENT")
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("cors.site_url", "SITE_URL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Analytics.Traffic.TopPages == nil {
		cfg.Analytics.Traffic.TopPages = defaultTopPages()
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "craftmyresume")
	v.SetDefault("app.version", "v1.0.0")
	v.SetDefault("app.environment", "development")

	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.body_limit_mb", 12)

	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 10*time.Minute)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.url", "redis://localhost:6379/0")

	v.SetDefault("queue.provider", "nats")
	v.SetDefault("queue.nats.url", "nats://localhost:4222")
	v.SetDefault("queue.nats.max_reconnects", 10)
	v.SetDefault("queue.nats.reconnect_wait", 2*time.Second)
	v.SetDefault("queue.rabbitmq.exchange_type", "fanout")

	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "resume-files")
	v.SetDefault("storage.use_path_style", true)

	v.SetDefault("jwt.access_token_duration", 15*time.Minute)
	v.SetDefault("jwt.refresh_token_duration", 7*24*time.Hour)
	v.SetDefault("jwt.issuer", "craftmyresume")

	v.SetDefault("vault.secret_path", "secret/data/craftmyresume")

	v.SetDefault("opentelemetry.service_name", "craftmyresume")
	v.SetDefault("opentelemetry.jaeger.endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("opentelemetry.jaeger.sampler_param", 1.0)

	v.SetDefault("prometheus.enabled", true)
	v.SetDefault("prometheus.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.file.path", "logs/app.log")
	v.SetDefault("logging.file.max_size_mb", 100)
	v.SetDefault("logging.file.max_backups", 5)
	v.SetDefault("logging.file.max_age_days", 30)
	v.SetDefault("logging.file.compress", true)

	v.SetDefault("rate_limiting.enabled", true)
	v.SetDefault("rate_limiting.requests_per_second", 1.0)
	v.SetDefault("rate_limiting.burst", 5)
	v.SetDefault("rate_limiting.auth_requests_per_second", 0.2)
	v.SetDefault("rate_limiting.auth_burst", 5)

	v.SetDefault("circuit_breaker.enabled", true)
	v.SetDefault("circuit_breaker.max_requests", 5)
	v.SetDefault("circuit_breaker.interval", 60*time.Second)
	v.SetDefault("circuit_breaker.timeout", 30*time.Second)
	v.SetDefault("circuit_breaker.failure_threshold", 0.6)

	v.SetDefault("cors.enabled", true)
	v.SetDefault("cors.site_url", "https://craftmyresume.com")
	v.SetDefault("cors.allowed_origins", []string{})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Accept", "Authorization"})
	v.SetDefault("cors.max_age", 3600)

	v.SetDefault("notification.email.provider", "sendgrid")
	v.SetDefault("notification.email.from", "no-reply@craftmyresume.com")
	v.SetDefault("notification.email.from_name", "CraftMyResume")
	v.SetDefault("notification.email.smtp_port", 587)
	v.SetDefault("notification.send_timeout", 5*time.Second)

	v.SetDefault("analytics.revenue_per_request", 499)
	v.SetDefault("analytics.daily_ad_spend", 500)
	v.SetDefault("analytics.avg_completion_time", 24)
	v.SetDefault("analytics.customer_satisfaction", 4.7)
	v.SetDefault("analytics.fetch_timeout", 10*time.Second)
	v.SetDefault("analytics.traffic.total_visitors", 2847)
	v.SetDefault("analytics.traffic.unique_visitors", 2156)
	v.SetDefault("analytics.traffic.page_views", 8934)
	v.SetDefault("analytics.traffic.bounce_rate", 34)
	v.SetDefault("analytics.traffic.avg_session_duration", 3.2)
	v.SetDefault("analytics.performance.response_time", 2.1)
	v.SetDefault("analytics.performance.first_draft_time", 18)
	v.SetDefault("analytics.performance.revision_time", 6)
	v.SetDefault("analytics.performance.final_delivery_time", 24)
	v.SetDefault("analytics.performance.revision_rate", 15)
	v.SetDefault("analytics.performance.customer_retention_rate", 68)
	v.SetDefault("analytics.performance.referral_rate", 23)

	v.SetDefault("region.timezone", "Asia/Kolkata")
}

func defaultTopPages() []TopPageConfig {
	return []TopPageConfig{
		{Page: "/", Views: 3421, Conversion: 2.8},
		{Page: "/thankyou", Views: 1234, Conversion: 100},
		{Page: "/page2", Views: 987, Conversion: 1.2},
	}
}
