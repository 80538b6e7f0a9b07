package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	LLM struct {
		Provider      string
		APIKey        string
		BaseURL       string
		SummaryModel  string
		WorkflowModel string
		Timeout       time.Duration
	}
	Render struct {
		Backend         string
		Dir             string
		Margin          float64
		Timeout         time.Duration
		WkhtmltopdfPath string
	}
	API struct {
		Tokens []string
	}
	SessionLifetime time.Duration
	InsecureCookies bool
}

// Load reads config from environment (WORKFLOWS_ prefix) and optional workflows.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WORKFLOWS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("workflows")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("session.lifetime", "12h")
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.summary_model", "gpt-4o")
	v.SetDefault("llm.workflow_model", "gpt-4o")
	v.SetDefault("llm.timeout", "2m")
	v.SetDefault("render.backend", "text")
	v.SetDefault("render.margin", 15.0)
	v.SetDefault("render.timeout", "1m")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.LLM.Provider = v.GetString("llm.provider")
	cfg.LLM.APIKey = v.GetString("llm.api_key")
	cfg.LLM.BaseURL = v.GetString("llm.base_url")
	cfg.LLM.SummaryModel = v.GetString("llm.summary_model")
	cfg.LLM.WorkflowModel = v.GetString("llm.workflow_model")
	cfg.Render.Backend = v.GetString("render.backend")
	cfg.Render.Dir = v.GetString("render.dir")
	cfg.Render.Margin = v.GetFloat64("render.margin")
	cfg.Render.WkhtmltopdfPath = v.GetString("render.wkhtmltopdf_path")
	cfg.API.Tokens = splitList(v.GetStringSlice("api.tokens"))
	cfg.InsecureCookies = v.GetBool("insecure_cookies")

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = providerKeyFromEnv(cfg.LLM.Provider)
	}
	if cfg.Render.Dir == "" {
		cfg.Render.Dir = os.TempDir()
	}

	var err error
	if cfg.SessionLifetime, err = parseDuration(v, "session.lifetime", "WORKFLOWS_SESSION_LIFETIME"); err != nil {
		return nil, err
	}
	if cfg.LLM.Timeout, err = parseDuration(v, "llm.timeout", "WORKFLOWS_LLM_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.Render.Timeout, err = parseDuration(v, "render.timeout", "WORKFLOWS_RENDER_TIMEOUT"); err != nil {
		return nil, err
	}

	switch cfg.LLM.Provider {
	case "openai", "openai-compatible", "anthropic":
	default:
		return nil, fmt.Errorf("WORKFLOWS_LLM_PROVIDER must be one of openai, openai-compatible, anthropic (got %q)", cfg.LLM.Provider)
	}
	if cfg.LLM.Provider == "openai-compatible" && cfg.LLM.BaseURL == "" {
		return nil, fmt.Errorf("WORKFLOWS_LLM_BASE_URL is required for the openai-compatible provider")
	}
	switch cfg.Render.Backend {
	case "text", "html":
	default:
		return nil, fmt.Errorf("WORKFLOWS_RENDER_BACKEND must be text or html (got %q)", cfg.Render.Backend)
	}
	if cfg.Render.Margin < 0 {
		return nil, fmt.Errorf("WORKFLOWS_RENDER_MARGIN must not be negative")
	}

	return cfg, nil
}

// RequireAPIKey reports a descriptive error when no provider key is configured.
// Commands that never reach the LLM (roles, version) skip this check.
func (c *Config) RequireAPIKey() error {
	if c.LLM.APIKey == "" && c.LLM.Provider != "openai-compatible" {
		return fmt.Errorf("WORKFLOWS_LLM_API_KEY is required (or %s)", providerEnvVar(c.LLM.Provider))
	}
	return nil
}

func parseDuration(v *viper.Viper, key, envName string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", envName, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", envName)
	}
	return d, nil
}

func providerEnvVar(provider string) string {
	if provider == "anthropic" {
		return "ANTHROPIC_API_KEY"
	}
	return "OPENAI_API_KEY"
}

func providerKeyFromEnv(provider string) string {
	return os.Getenv(providerEnvVar(provider))
}

// splitList accepts both yaml lists and a comma-separated env value.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
