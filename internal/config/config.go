package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	ServiceName string
	Env         string
	HTTPAddr    string
	// PaymentSuccessRate is the probability a simulated payment is accepted.
	PaymentSuccessRate float64
	// SeedOnStart populates the catalog with demo products before serving.
	SeedOnStart bool
}

// Load reads configuration from the environment with the STOREFRONT_ prefix
// (e.g. STOREFRONT_HTTP_ADDR), falling back to defaults.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STOREFRONT")
	v.AutomaticEnv()

	v.SetDefault("service_name", "storefront")
	v.SetDefault("env", "dev")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("payment_success_rate", 0.9)
	v.SetDefault("seed_on_start", false)

	cfg := Config{
		ServiceName:        v.GetString("service_name"),
		Env:                v.GetString("env"),
		HTTPAddr:           v.GetString("http_addr"),
		PaymentSuccessRate: v.GetFloat64("payment_success_rate"),
		SeedOnStart:        v.GetBool("seed_on_start"),
	}

	if cfg.PaymentSuccessRate < 0 || cfg.PaymentSuccessRate > 1 {
		return Config{}, fmt.Errorf("config: payment_success_rate %v out of [0,1]", cfg.PaymentSuccessRate)
	}
	return cfg, nil
}
