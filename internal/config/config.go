// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/kkyr/fig"
)

const configEnv = "TOURMAILER"

// Supported mail providers
const (
	ProviderAPI    = "api"
	ProviderSMTP   = "smtp"
	ProviderDryRun = "dryrun"
)

// Supported captcha providers
const (
	CaptchaHCaptcha  = "hcaptcha"
	CaptchaTurnstile = "turnstile"
)

// Config represents the global config object struct
type Config struct {
	Log struct {
		Level        slog.Level `fig:"level" default:"0"`
		Format       string     `fig:"format" default:"json"`
		DontLogIP    bool       `fig:"dont_log_ip"`
		DontLogEmail bool       `fig:"dont_log_email"`
	}

	Server struct {
		BindAddress string        `fig:"address" default:"127.0.0.1"`
		BindPort    string        `fig:"port" default:"8765"`
		Timeout     time.Duration `fig:"timeout" default:"15s"`
		// Domains are the website domains that may submit forms cross-origin
		Domains []string `fig:"domains"`
	} `fig:"server"`

	Mail struct {
		Provider string `fig:"provider" default:"api"`
		APIKey   string `fig:"api_key"`
		Endpoint string `fig:"endpoint" default:"https://api.resend.com/emails"`
		Sender   string `fig:"sender" validate:"required"`
		Operator string `fig:"operator" validate:"required"`
		SMTP     struct {
			Host     string `fig:"host"`
			Port     int    `fig:"port" default:"587"`
			Username string `fig:"username"`
			Password string `fig:"password"`
			ForceTLS bool   `fig:"force_tls"`
		} `fig:"smtp"`
	} `fig:"mail"`

	Forms struct {
		Timezone     string        `fig:"timezone" default:"Africa/Kigali"`
		DisplayDelay time.Duration `fig:"display_delay" default:"3s"`
		Honeypot     string        `fig:"honeypot" default:"website"`
		Captcha      struct {
			Provider  string `fig:"provider"`
			SiteKey   string `fig:"site_key"`
			SecretKey string `fig:"secret_key"`
		} `fig:"captcha"`
	} `fig:"forms"`

	Brand struct {
		Name    string `fig:"name" default:"Tour Mailer"`
		Tagline string `fig:"tagline"`
		Phone   string `fig:"phone" default:"+250788000000"`
		Email   string `fig:"email"`
		Website string `fig:"website"`
	} `fig:"brand"`

	Catalog struct {
		DSN      string        `fig:"dsn"`
		CacheTTL time.Duration `fig:"cache_ttl" default:"5m"`
	} `fig:"catalog"`
}

// New returns a new Config. It tries to load the config from the default location
// and falls back to the defaults or environment variables if the config file
// was not found.
func New() (*Config, error) {
	conf := new(Config)

	configPath, configFile := findConfigFile()
	if configPath != "" && configFile != "" {
		return NewFromFile(configPath, configFile)
	}

	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}
	if err := conf.validate(); err != nil {
		return conf, err
	}

	return conf, nil
}

// NewFromFile returns a new Config from the given path and file.
func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}

	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}
	if err = conf.validate(); err != nil {
		return conf, err
	}

	return conf, nil
}

// Location returns the time zone in which submission timestamps are shown.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Forms.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone %q: %w", c.Forms.Timezone, err)
	}
	return loc, nil
}

func (c *Config) validate() error {
	switch c.Mail.Provider {
	case ProviderAPI, ProviderSMTP, ProviderDryRun:
	default:
		return fmt.Errorf("unsupported mail provider: %q", c.Mail.Provider)
	}
	switch c.Forms.Captcha.Provider {
	case "", CaptchaHCaptcha, CaptchaTurnstile:
	default:
		return fmt.Errorf("unsupported captcha provider: %q", c.Forms.Captcha.Provider)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "tour-mailer", "tour-mailer."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
