package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is read from the environment at startup, prefix TRENDIFY_.
type Config struct {
	Port string

	// GeminiAPIKey is the upstream credential. It lives only in this
	// process; clients talk to the gateway, never to the upstream API.
	GeminiAPIKey string
	ModelName    string
	UseMockLLM   bool // use the canned generator, no upstream calls

	CatalogURL   string
	CatalogLimit int

	// GatewayURL is where the proxy client posts chat prompts. Defaults
	// to this process's own address.
	GatewayURL string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRENDIFY")
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("model_name", "gemini-2.0-flash")
	v.SetDefault("use_mock_llm", false)
	v.SetDefault("catalog_url", "https://fakestoreapi.com/products")
	v.SetDefault("catalog_limit", 60)
	v.SetDefault("gateway_url", "")

	cfg := &Config{
		Port:         v.GetString("port"),
		GeminiAPIKey: v.GetString("gemini_api_key"),
		ModelName:    v.GetString("model_name"),
		UseMockLLM:   v.GetBool("use_mock_llm"),
		CatalogURL:   v.GetString("catalog_url"),
		CatalogLimit: v.GetInt("catalog_limit"),
		GatewayURL:   v.GetString("gateway_url"),
	}

	if cfg.GatewayURL == "" {
		cfg.GatewayURL = "http://localhost:" + cfg.Port
	}

	// Absence of the upstream credential is a startup concern, not a
	// request-time error path.
	if !cfg.UseMockLLM && cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("TRENDIFY_GEMINI_API_KEY must be set (or enable TRENDIFY_USE_MOCK_LLM)")
	}

	return cfg, nil
}
