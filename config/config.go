package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// AppConfig is the full console configuration. Values are loaded from a YAML
// file and may be overridden by environment variables (FLORELIA_* keys).
type AppConfig struct {
	System  SysConfig     `yaml:"system"`
	Web     WebConfig     `yaml:"web"`
	Backend BackendConfig `yaml:"backend"`
	Stripe  StripeConfig  `yaml:"stripe"`
	Logger  LogConfig     `yaml:"logger"`
}

type SysConfig struct {
	Appid    string `yaml:"appid"`
	Workdir  string `yaml:"workdir"`
	Location string `yaml:"location"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// BackendConfig points at the Florelia platform REST API.
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
}

// StripeConfig carries the hosted payment processor publishable key. The key
// is validated at use time, not load time, so a missing key degrades the
// payments view instead of preventing startup.
type StripeConfig struct {
	PublishableKey string `yaml:"publishable_key"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "floraladmin",
		Workdir:  "/var/floraladmin",
		Location: "Europe/Amsterdam",
		Debug:    false,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 1907,
	},
	Backend: BackendConfig{
		BaseURL: "http://127.0.0.1:5000/api",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/floraladmin/floraladmin.log",
	},
}

// LoadConfig reads the YAML config file and applies environment overrides.
// A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	_ = godotenv.Load()

	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" && fileExists(cfile) {
		data, err := os.ReadFile(cfile)
		if err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("FLORELIA_WORKDIR", &cfg.System.Workdir)
	setEnvValue("FLORELIA_LOCATION", &cfg.System.Location)
	setEnvValue("FLORELIA_BACKEND_URL", &cfg.Backend.BaseURL)
	setEnvValue("FLORELIA_STRIPE_PUBLISHABLE_KEY", &cfg.Stripe.PublishableKey)
	setEnvValue("FLORELIA_WEB_HOST", &cfg.Web.Host)
	setEnvValue("FLORELIA_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvInt64Value("FLORELIA_WEB_PORT", &cfg.Web.Port)
	if os.Getenv("FLORELIA_DEBUG") == "true" {
		cfg.System.Debug = true
	}
	return cfg
}

// SessionDBPath is where the persisted admin session lives.
func (c *AppConfig) SessionDBPath() string {
	return filepath.Join(c.System.Workdir, "session.db")
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(c.System.Workdir, 0o755)
}

func setEnvValue(name string, val *string) {
	if evalue, ok := os.LookupEnv(name); ok {
		*val = evalue
	}
}

func setEnvInt64Value(name string, val *int) {
	if evalue, ok := os.LookupEnv(name); ok {
		if p := cast.ToInt(evalue); p > 0 {
			*val = p
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
