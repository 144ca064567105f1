// Copyright (c) 2026 Karasu Dev. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in
// the LICENSE file.

package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// main is the main function of this example program. A small metadata server
// that answers file stat queries over HTTP through a throttled stat cache.
//
// The first request for a path stats the real filesystem. Requests for the
// same path within the throttle window are answered from the cache without
// touching the filesystem at all.
func main() {
	confPath := flag.String("config", "statd.yaml", "path to the configuration file")
	flag.Parse()

	conf, err := loadConfig(*confPath)
	if err != nil {
		elog := zerolog.New(os.Stderr)
		elog.Error().Err(err).Msg("config")
		os.Exit(1)
	}

	lvl, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).Level(lvl).With().Timestamp().Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create and run the stat server.
	sv, err := newServer(conf, log)
	if err != nil {
		log.Error().Err(err).Msg("server")
		os.Exit(1)
	}
	go func() {
		if err := sv.serve(ctx); err != nil {
			log.Error().Err(err).Msg("server")
			os.Exit(1)
		}
	}()

	// Create and run the HTTP server.
	httpd := &http.Server{
		Addr:           conf.Listen,
		Handler:        sv,
		ReadTimeout:    time.Second * 10,
		WriteTimeout:   time.Second * 30,
		MaxHeaderBytes: 4096,
	}
	go func() {
		<-ctx.Done()
		sdctx, sdcancel := context.WithTimeout(context.Background(), time.Second*5)
		defer sdcancel()
		if err := httpd.Shutdown(sdctx); err != nil { //nolint:contextcheck
			log.Warn().Err(err).Msg("httpd shutdown")
		}
	}()
	log.Info().Str("listen", conf.Listen).Msg("statd starting")
	if err := httpd.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("httpd")
		os.Exit(1)
	}
}
