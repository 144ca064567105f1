// Copyright (c) 2026 Karasu Dev. All rights reserved.
// Use of this source code is governed by the MIT license that can be found in
// the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/karasu-dev/go-statcache"
)

// server represents the statd HTTP server. It holds one statcache.Cache
// instance and answers metadata queries from it.
type server struct {
	cache    *statcache.Cache
	throttle time.Duration
	log      zerolog.Logger
}

// newServer creates a statd server instance from the loaded configuration.
func newServer(conf *config, log zerolog.Logger) (*server, error) {
	sv := &server{
		throttle: time.Duration(conf.Throttle),
		log:      log,
	}
	cache, err := statcache.NewWithConfig(&statcache.Config{
		MaxEntries: conf.MaxEntries,
		MaxAge:     time.Duration(conf.MaxAge),
		GCInterval: time.Duration(conf.GCInterval),
		Logger:     sv,
		DebugLog:   conf.DebugLog,
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	sv.cache = cache

	return sv, nil
}

// StatCacheLog implements statcache.Logger to receive log messages from the
// statcache package.
func (sv *server) StatCacheLog(line string) {
	sv.log.Debug().Str("component", "statcache").Msg(line)
}

// serve runs the cache's sweep process and logs the cache status every 30
// seconds, until ctx is cancelled.
func (sv *server) serve(ctx context.Context) error {
	go func() {
		ticker := time.NewTicker(time.Second * 30)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			cstat, err := sv.cache.Status(ctx)
			if err != nil {
				return
			}
			sv.log.Info().Stringer("status", cstat).Msg("cache status")
		}
	}()

	return sv.cache.Serve(ctx) //nolint:wrapcheck
}

// statResponse is the JSON document served for /stat requests.
type statResponse struct {
	Path    string    `json:"path"`
	Exists  bool      `json:"exists"`
	Error   string    `json:"error,omitempty"`
	Size    int64     `json:"size,omitempty"`
	Mode    string    `json:"mode,omitempty"`
	ModTime time.Time `json:"mod_time,omitempty"`
	Dir     bool      `json:"dir,omitempty"`
}

// ServeHTTP responds to incoming HTTP requests. GET /stat?path=... answers
// from the cache, re-statting the file at most once per throttle window.
// GET /status reports the cache statistics.
func (sv *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/stat":
		sv.serveStat(w, r)
	case "/status":
		sv.serveStatus(w, r)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (sv *server) serveStat(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "missing path parameter", http.StatusBadRequest)
		return
	}

	startedAt := time.Now()
	res, err := sv.cache.Stat(r.Context(), path, sv.throttle)
	if err != nil {
		// Infrastructure failure, typically the client going away
		// while the request was blocked on the cache.
		sv.log.Warn().Err(err).Str("path", path).Msg("stat aborted")
		http.Error(w, "temporarily unavailable, retry", http.StatusServiceUnavailable)
		return
	}

	resp := statResponse{Path: path, Exists: res.OK}
	if res.OK {
		resp.Size = res.Info.Size
		resp.Mode = res.Info.Mode.String()
		resp.ModTime = res.Info.ModTime
		resp.Dir = res.Info.IsDir()
	} else {
		resp.Error = res.Errno.Error()
	}
	sv.writeJSON(w, resp)

	sv.log.Debug().
		Str("path", path).
		Bool("exists", res.OK).
		Dur("elapsed", time.Since(startedAt)).
		Msg("served stat")
}

func (sv *server) serveStatus(w http.ResponseWriter, r *http.Request) {
	cstat, err := sv.cache.Status(r.Context())
	if err != nil {
		http.Error(w, "temporarily unavailable, retry", http.StatusServiceUnavailable)
		return
	}
	sv.writeJSON(w, cstat)
}

func (sv *server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		sv.log.Warn().Err(err).Msg("response write failed")
	}
}
