package config

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Billing  BillingConfig  `yaml:"billing"`
	Storage  StorageConfig  `yaml:"storage"`
	Assets   AssetsConfig   `yaml:"assets"`
	Renderer RendererConfig `yaml:"renderer"`
	Google   GoogleConfig   `yaml:"google"`
	WhatsApp WhatsAppConfig `yaml:"whatsapp"`
	FollowUp FollowUpConfig `yaml:"followup"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// BillingConfig holds invoice money settings.
type BillingConfig struct {
	TaxRateRaw      string `yaml:"tax_rate"         env:"BILLING_TAX_RATE"         env-default:"0.15"`
	DefaultCurrency string `yaml:"default_currency" env:"BILLING_DEFAULT_CURRENCY" env-default:"JMD"`
}

// TaxRate returns the parsed tax rate. Validate rejects unparsable values,
// so after Load it never falls back.
func (b BillingConfig) TaxRate() decimal.Decimal {
	rate, err := decimal.NewFromString(strings.TrimSpace(b.TaxRateRaw))
	if err != nil {
		return decimal.Zero
	}
	return rate
}

// StorageConfig holds the local blob store location.
type StorageConfig struct {
	Root string `yaml:"root" env:"STORAGE_ROOT" env-default:"./media"`
}

// AssetsConfig lists where the logo and signature images are looked up.
// Each list is comma-separated; the first existing candidate wins.
type AssetsConfig struct {
	DirsRaw           string `yaml:"dirs"            env:"ASSETS_DIRS"            env-default:"static,resources"`
	LogoNamesRaw      string `yaml:"logo_names"      env:"ASSETS_LOGO_NAMES"      env-default:"invoicegen/logo.jpeg,logo.jpeg"`
	SignatureNamesRaw string `yaml:"signature_names" env:"ASSETS_SIGNATURE_NAMES" env-default:"Stepmath_signature-no background.png,resources/Stepmath_signature-no background.png"`
}

// Dirs returns the configured asset search directories.
func (a AssetsConfig) Dirs() []string { return splitList(a.DirsRaw) }

// LogoNames returns the logo candidate names in priority order.
func (a AssetsConfig) LogoNames() []string { return splitList(a.LogoNamesRaw) }

// SignatureNames returns the signature candidate names in priority order.
func (a AssetsConfig) SignatureNames() []string { return splitList(a.SignatureNamesRaw) }

// RendererConfig holds headless Chromium settings.
type RendererConfig struct {
	ChromePath     string        `yaml:"chrome_path"     env:"RENDERER_CHROME_PATH"`
	Timeout        time.Duration `yaml:"timeout"         env:"RENDERER_TIMEOUT"         env-default:"60s"`
	ViewportWidth  int64         `yaml:"viewport_width"  env:"RENDERER_VIEWPORT_WIDTH"  env-default:"1280"`
	ViewportHeight int64         `yaml:"viewport_height" env:"RENDERER_VIEWPORT_HEIGHT" env-default:"1920"`
	NoSandbox      bool          `yaml:"no_sandbox"      env:"RENDERER_NO_SANDBOX"      env-default:"true"`
}

// GoogleConfig holds Drive and Gmail API credentials.
// Endpoint and TokenURL are overridable for tests and proxies.
type GoogleConfig struct {
	ClientID     string        `yaml:"client_id"     env:"GOOGLE_CLIENT_ID"`
	ClientSecret string        `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET"`
	TokenURL     string        `yaml:"token_url"     env:"GOOGLE_TOKEN_URL"     env-default:"https://oauth2.googleapis.com/token"`
	APIEndpoint  string        `yaml:"api_endpoint"  env:"GOOGLE_API_ENDPOINT"`
	Timeout      time.Duration `yaml:"timeout"       env:"GOOGLE_TIMEOUT"       env-default:"30s"`
}

// Configured reports whether both OAuth client credentials are present.
func (g GoogleConfig) Configured() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// WhatsAppConfig holds the outbound message gateway settings.
type WhatsAppConfig struct {
	GatewayURL string        `yaml:"gateway_url" env:"WHATSAPP_GATEWAY_URL"`
	Timeout    time.Duration `yaml:"timeout"     env:"WHATSAPP_TIMEOUT"     env-default:"15s"`
}

// FollowUpConfig holds outreach scheduling settings.
type FollowUpConfig struct {
	Timezone      string `yaml:"timezone"       env:"FOLLOWUP_TIMEZONE"       env-default:"America/Jamaica"`
	Template      string `yaml:"template"       env:"FOLLOWUP_TEMPLATE"`
	SweepSchedule string `yaml:"sweep_schedule" env:"FOLLOWUP_SWEEP_SCHEDULE" env-default:"0 9 * * *"`
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
