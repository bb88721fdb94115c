package config

import (
	"strings"
	"testing"
)

func baseConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc", OwnerID: 42, Channel: "@src_hub"},
	}
}

func TestNormalizeDefaultsToLongpoll(t *testing.T) {
	cfg := baseConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q, want %q", cfg.Telegram.RunMode, RunModeLongpoll)
	}
	if cfg.Database.MaxConnections <= 0 {
		t.Error("max_connections default not applied")
	}
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := baseConfig()
	cfg.Telegram.Token = ""
	if err := Normalize(cfg); err == nil {
		t.Fatal("missing token accepted")
	}
}

func TestNormalizePrefixesChannel(t *testing.T) {
	cfg := baseConfig()
	cfg.Telegram.Channel = "src_hub"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Telegram.Channel != "@src_hub" {
		t.Errorf("channel = %q, want @src_hub", cfg.Telegram.Channel)
	}
}

func TestNormalizeWebhookValidation(t *testing.T) {
	cfg := baseConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	err := Normalize(cfg)
	if err == nil || !strings.Contains(err.Error(), "webhook.url") {
		t.Fatalf("err = %v, want webhook.url complaint", err)
	}

	cfg.Webhook = WebhookConfig{URL: "https://example.com/hook", Listen: "0.0.0.0", Port: 8443}
	if err := Normalize(cfg); err != nil {
		t.Fatalf("valid webhook config rejected: %v", err)
	}
}

func TestNormalizeRejectsUnknownRateLimitExclusion(t *testing.T) {
	cfg := baseConfig()
	cfg.RateLimit.ExcludeUpdates = []string{"Callback", "poll"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("unknown exclude_updates value accepted")
	}
}
