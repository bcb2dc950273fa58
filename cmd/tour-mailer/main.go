// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/wneessen/tour-mailer/internal/catalog"
	"github.com/wneessen/tour-mailer/internal/config"
	"github.com/wneessen/tour-mailer/internal/httpclient"
	"github.com/wneessen/tour-mailer/internal/logger"
	"github.com/wneessen/tour-mailer/internal/notify"
	"github.com/wneessen/tour-mailer/internal/server"
	"github.com/wneessen/tour-mailer/internal/templates"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGKILL,
		syscall.SIGABRT, os.Interrupt)
	defer cancel()

	var conf *config.Config
	var err error

	confPath := flag.String("config", "", "path to the config file")
	flag.Parse()
	switch {
	case confPath != nil && *confPath != "":
		file := filepath.Base(*confPath)
		path := filepath.Dir(*confPath)
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to load config from file: %s\n", err)
			os.Exit(1)
		}
	default:
		conf, err = config.New()
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to load default config: %s\n", err)
			os.Exit(1)
		}
	}

	// Initialize a logger based on the config
	log := logger.New(conf.Log.Level, logger.Opts{
		Format:       conf.Log.Format,
		DontLogIP:    conf.Log.DontLogIP,
		DontLogEmail: conf.Log.DontLogEmail,
	})

	location, err := conf.Location()
	if err != nil {
		log.Error("failed to load time zone", logger.Err(err))
		os.Exit(1)
	}
	renderer, err := templates.New(templates.Brand{
		Name:    conf.Brand.Name,
		Tagline: conf.Brand.Tagline,
		Phone:   conf.Brand.Phone,
		Email:   conf.Brand.Email,
		Website: conf.Brand.Website,
	})
	if err != nil {
		log.Error("failed to initialize email templates", logger.Err(err))
		os.Exit(1)
	}

	dispatcher := notify.NewDispatcher(newSender(conf, log), renderer, notify.Settings{
		From:     conf.Mail.Sender,
		Operator: conf.Mail.Operator,
		Location: location,
	}, log)

	opts := []server.Option{server.WithVersion(version)}
	if conf.Catalog.DSN != "" {
		store, err := catalog.Open(conf.Catalog.DSN, catalog.WithCacheTTL(conf.Catalog.CacheTTL))
		if err != nil {
			log.Error("failed to open catalog", logger.Err(err))
			os.Exit(1)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Error("failed to close catalog", logger.Err(err))
			}
		}()
		opts = append(opts, server.WithCatalog(store))
	}

	// Initialize server instance
	srv := server.New(conf, log, dispatcher, opts...)

	// Start server
	log.Info("starting tour-mailer service", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date),
		slog.String("mail_provider", conf.Mail.Provider))
	if err = srv.Start(ctx); err != nil {
		log.Error("failed to start server", logger.Err(err))
	}
	log.Info("shutting down tour-mailer service")
}

// newSender returns the mail delivery backend selected in the config.
func newSender(conf *config.Config, log *logger.Logger) notify.Sender {
	switch conf.Mail.Provider {
	case config.ProviderSMTP:
		return &notify.SMTPSender{
			Host:     conf.Mail.SMTP.Host,
			Port:     conf.Mail.SMTP.Port,
			Username: conf.Mail.SMTP.Username,
			Password: conf.Mail.SMTP.Password,
			ForceTLS: conf.Mail.SMTP.ForceTLS,
		}
	case config.ProviderDryRun:
		return notify.NewDryRunSender(log)
	default:
		return notify.NewAPISender(httpclient.New(log), conf.Mail.Endpoint, conf.Mail.APIKey)
	}
}
