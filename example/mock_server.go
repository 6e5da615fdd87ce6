package main

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// startSlowService runs a health endpoint on addr that reports "starting"
// until startup has elapsed and "ok" afterwards.
func startSlowService(addr string, startup time.Duration) (*http.Server, error) {
	ready := time.Now().Add(startup)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		if time.Now().Before(ready) {
			status = "starting"
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"status": status}); err != nil {
			slog.Error("failed to write response", "error", err)
		}
	})

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Error("mock server error", "error", err)
		}
	}()
	return srv, nil
}
