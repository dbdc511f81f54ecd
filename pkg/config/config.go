package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	Yoco   YocoConfig
	Brevo  BrevoConfig
	Sheets SheetsConfig
	Event  EventConfig
	Static StaticConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MG_APP_ENV" required:"true"`
	Port         string `envconfig:"MG_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MG_LOG_WARN_STACK" default:"false"`

	// PublicBaseURL is where the payment provider redirects the browser back to.
	// When empty the scheme/host of the incoming request is used instead.
	PublicBaseURL string `envconfig:"MG_PUBLIC_BASE_URL"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"MG_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"MG_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"MG_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"MG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MG_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MG_REDIS_URL"`
	Address      string        `envconfig:"MG_REDIS_ADDR"`
	Password     string        `envconfig:"MG_REDIS_PASSWORD"`
	DB           int           `envconfig:"MG_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MG_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MG_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MG_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. The service
// runs without one; idempotency replay is simply unavailable then.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type YocoConfig struct {
	SecretKey string `envconfig:"MG_YOCO_SECRET_KEY" required:"true"`
	BaseURL   string `envconfig:"MG_YOCO_BASE_URL" default:"https://payments.yoco.com"`
}

type BrevoConfig struct {
	APIKey      string `envconfig:"MG_BREVO_API_KEY" required:"true"`
	SenderName  string `envconfig:"MG_BREVO_SENDER_NAME" default:"Marital Grace Team"`
	SenderEmail string `envconfig:"MG_BREVO_SENDER_EMAIL" required:"true"`
	BaseURL     string `envconfig:"MG_BREVO_BASE_URL" default:"https://api.brevo.com"`
}

type SheetsConfig struct {
	SpreadsheetID   string `envconfig:"MG_SHEETS_SPREADSHEET_ID"`
	Range           string `envconfig:"MG_SHEETS_RANGE" default:"Sales!A:F"`
	CredentialsJSON string `envconfig:"MG_SHEETS_CREDENTIALS_JSON"`
}

// Enabled reports whether the guest-list spreadsheet should receive rows.
func (s SheetsConfig) Enabled() bool {
	return strings.TrimSpace(s.SpreadsheetID) != ""
}

type EventConfig struct {
	Name     string `envconfig:"MG_EVENT_NAME" default:"MARITAL GRACE"`
	Tagline  string `envconfig:"MG_EVENT_TAGLINE" default:"THE KEY TO 32 YEARS OF MARRIAGE"`
	Date     string `envconfig:"MG_EVENT_DATE" default:"14.03.2026"`
	Time     string `envconfig:"MG_EVENT_TIME" default:"9:00am"`
	Location string `envconfig:"MG_EVENT_LOCATION" default:"63 Langrand Road, Vereeniging, 1929"`
	Venue    string `envconfig:"MG_EVENT_VENUE" default:"The Synagogues JWC"`

	// UnitPrice is the per-ticket price in major currency units.
	UnitPrice       string `envconfig:"MG_EVENT_UNIT_PRICE" default:"100"`
	Currency        string `envconfig:"MG_EVENT_CURRENCY" default:"ZAR"`
	ReferencePrefix string `envconfig:"MG_EVENT_REFERENCE_PREFIX" default:"MG"`

	// ImagePath points at the polaroid artwork drawn on the ticket. A missing
	// file is tolerated; the renderer draws an empty framed box instead.
	ImagePath string `envconfig:"MG_EVENT_IMAGE_PATH" default:"public/media/1994.png"`
}

type StaticConfig struct {
	PublicDir string `envconfig:"MG_STATIC_PUBLIC_DIR" default:"public"`
}
