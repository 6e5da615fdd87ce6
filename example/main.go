// Command example waits for a slow-starting service with the eventually
// library, then shows the diagnosis of a wait that times out.
//
//	go run ./example
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jpalmerr/eventually"
	"github.com/jpalmerr/eventually/describe"
	"github.com/jpalmerr/eventually/match"
	"github.com/jpalmerr/eventually/poll"
)

const healthURL = "http://127.0.0.1:9999/health"

func main() {
	srv, err := startSlowService("127.0.0.1:9999", 2*time.Second)
	if err != nil {
		slog.Error("failed to start mock server", "error", err)
		os.Exit(1)
	}
	defer func() { _ = srv.Close() }()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	checker, err := eventually.New(
		eventually.WithSchedule(poll.NewSchedule(250*time.Millisecond, 10*time.Second)),
		eventually.WithLogger(logger),
	)
	if err != nil {
		slog.Error("failed to create checker", "error", err)
		os.Exit(1)
	}

	health := describe.NewFunction("health status", fetchStatus)

	status, err := eventually.When(checker, healthURL, health, eventually.Matches(match.EqualTo("ok")))
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Printf("service is %s\n\n", status)

	// a short wait for a state the service never reaches
	brief := checker.Within(poll.NewSchedule(100*time.Millisecond, 500*time.Millisecond))
	err = eventually.WaitUntilValue(brief, healthURL, health, eventually.Matches(match.EqualTo("maintenance")))
	fmt.Println(err)
}

// fetchStatus returns the "status" field of the JSON document at url, or
// the request error text.
func fetchStatus(url string) string {
	client := http.Client{Timeout: time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return err.Error()
	}
	defer func() { _ = resp.Body.Close() }()

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "unreadable body: " + err.Error()
	}
	return body.Status
}
