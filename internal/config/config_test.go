// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"log/slog"
	"slices"
	"testing"
	"time"
)

const (
	testServerAddress = "0.0.0.0"
	testServerPort    = "8080"
	testServerTimeout = time.Second * 20
	testDisplayDelay  = time.Second * 5
	testOperator      = "bookings@example.com"
)

func TestNew(t *testing.T) {
	t.Run("the config from the home directory is returned", func(t *testing.T) {
		t.Setenv("HOME", "../../testdata")
		config, err := New()
		if err != nil {
			t.Fatalf("failed to create config: %s", err)
		}
		if config.Log.Level != slog.LevelDebug {
			t.Errorf("expected log level to be %d, got %d", slog.LevelDebug, config.Log.Level)
		}
		if config.Log.Format != "text" {
			t.Errorf("expected log format to be text, got %s", config.Log.Format)
		}
		if !config.Log.DontLogEmail {
			t.Error("expected email addresses to be masked")
		}
		if config.Server.BindAddress != testServerAddress {
			t.Errorf("expected server bind address to be %s, got %s", testServerAddress,
				config.Server.BindAddress)
		}
		if config.Server.BindPort != testServerPort {
			t.Errorf("expected server bind port to be %s, got %s", testServerPort, config.Server.BindPort)
		}
		if config.Server.Timeout != testServerTimeout {
			t.Errorf("expected server timeout to be %s, got %s", testServerTimeout, config.Server.Timeout)
		}
		if !slices.Equal(config.Server.Domains, []string{"example.com", "www.example.com"}) {
			t.Errorf("unexpected domains: %v", config.Server.Domains)
		}
		if config.Mail.Provider != ProviderDryRun {
			t.Errorf("expected mail provider to be %s, got %s", ProviderDryRun, config.Mail.Provider)
		}
		if config.Mail.Operator != testOperator {
			t.Errorf("expected operator to be %s, got %s", testOperator, config.Mail.Operator)
		}
		if config.Forms.DisplayDelay != testDisplayDelay {
			t.Errorf("expected display delay to be %s, got %s", testDisplayDelay, config.Forms.DisplayDelay)
		}
		if config.Forms.Honeypot != "website" {
			t.Errorf("expected default honeypot field, got %s", config.Forms.Honeypot)
		}
		if config.Brand.Name != "Test Safaris" {
			t.Errorf("expected brand name to be Test Safaris, got %s", config.Brand.Name)
		}
	})
	t.Run("config without a home directory", func(t *testing.T) {
		t.Setenv("HOME", "")
		_, err := New()
		if err == nil {
			t.Fatal("expected error when no home directory is set")
		}
	})
	t.Run("config with a home directory but no configs", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		_, err := New()
		if err == nil {
			t.Fatal("expected error when required values are missing")
		}
	})
	t.Run("config with a home directory but no configs but environment", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("TOURMAILER_MAIL_SENDER", "no-reply@example.com")
		t.Setenv("TOURMAILER_MAIL_OPERATOR", testOperator)
		config, err := New()
		if err != nil {
			t.Fatalf("failed to create config: %s", err)
		}
		if config.Mail.Operator != testOperator {
			t.Errorf("expected operator to be %s, got %s", testOperator, config.Mail.Operator)
		}
		if config.Mail.Provider != ProviderAPI {
			t.Errorf("expected default mail provider to be %s, got %s", ProviderAPI, config.Mail.Provider)
		}
		if config.Mail.Endpoint != "https://api.resend.com/emails" {
			t.Errorf("unexpected default endpoint: %s", config.Mail.Endpoint)
		}
		if config.Forms.DisplayDelay != time.Second*3 {
			t.Errorf("expected default display delay of 3s, got %s", config.Forms.DisplayDelay)
		}
		if config.Forms.Timezone != "Africa/Kigali" {
			t.Errorf("expected default time zone, got %s", config.Forms.Timezone)
		}
	})
}

func TestNewFromFile(t *testing.T) {
	t.Run("return config from file", func(t *testing.T) {
		tests := []struct {
			name     string
			path     string
			file     string
			succeeds bool
		}{
			{"json", "../../testdata", "config.json", true},
			{"yaml", "../../testdata", "config.yml", true},
			{"toml", "../../testdata/.config/tour-mailer", "tour-mailer.toml", true},
			{"non-existing", "../../testdata", "non-existing.json", false},
			{"incomplete", "../../testdata", "incomplete.toml", false},
			{"invalid provider", "../../testdata", "invalid_provider.toml", false},
			{"invalid time zone", "../../testdata", "invalid_timezone.toml", false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewFromFile(tt.path, tt.file)
				if tt.succeeds && err != nil {
					t.Fatalf("failed to create config from file: %s", err)
				}
				if !tt.succeeds && err == nil {
					t.Fatal("expected config to fail")
				}
			})
		}
	})
	t.Run("smtp settings are read", func(t *testing.T) {
		config, err := NewFromFile("../../testdata", "config.yml")
		if err != nil {
			t.Fatalf("failed to create config from file: %s", err)
		}
		if config.Mail.SMTP.Host != "mail.example.com" || config.Mail.SMTP.Port != 465 || !config.Mail.SMTP.ForceTLS {
			t.Errorf("unexpected smtp settings: %+v", config.Mail.SMTP)
		}
		if config.Catalog.DSN != "/var/lib/tour-mailer/catalog.db" {
			t.Errorf("unexpected catalog dsn: %s", config.Catalog.DSN)
		}
		if config.Catalog.CacheTTL != 10*time.Minute {
			t.Errorf("expected catalog cache ttl to be 10m, got %s", config.Catalog.CacheTTL)
		}
	})
	t.Run("captcha settings are read", func(t *testing.T) {
		config, err := NewFromFile("../../testdata", "config.json")
		if err != nil {
			t.Fatalf("failed to create config from file: %s", err)
		}
		if config.Forms.Captcha.Provider != CaptchaTurnstile {
			t.Errorf("expected captcha provider %s, got %s", CaptchaTurnstile, config.Forms.Captcha.Provider)
		}
	})
}

func TestConfig_Location(t *testing.T) {
	config, err := NewFromFile("../../testdata", "config.json")
	if err != nil {
		t.Fatalf("failed to create config from file: %s", err)
	}
	loc, err := config.Location()
	if err != nil {
		t.Fatalf("failed to load location: %s", err)
	}
	if loc.String() != "Africa/Kigali" {
		t.Errorf("expected location Africa/Kigali, got %s", loc)
	}
}
