// Standalone mock server for trying the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/eventually wait -c example/checks.yaml
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"
)

func main() {
	startup := flag.Duration("startup", 5*time.Second, "time before /health reports up")
	flag.Parse()

	fmt.Println("Mock health server starting on :9999")
	fmt.Printf("/health reports down for %s, then up; /flaky alternates\n", *startup)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	ready := time.Now().Add(*startup)

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		status := "up"
		if time.Now().Before(ready) {
			status = "down"
		}
		writeStatus(w, status)
	})

	var (
		mu    sync.Mutex
		flaky bool
	)
	http.HandleFunc("/flaky", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		flaky = !flaky
		up := flaky
		mu.Unlock()

		if !up {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		fmt.Fprintln(w, "ready")
	})

	if err := http.ListenAndServe(":9999", nil); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func writeStatus(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
}
