package main

import (
	"fmt"
	"io"

	"github.com/jpalmerr/eventually"
	"github.com/jpalmerr/eventually/config"
	"github.com/jpalmerr/eventually/internal/probe"
)

// check is one validated check file entry ready to poll.
type check struct {
	target    probe.Target
	extractor probe.Extractor
	expect    probe.Status
}

// buildChecks converts validated check configs into probe targets and
// extractors.
func buildChecks(cfg *config.Config) ([]check, error) {
	checks := make([]check, 0, len(cfg.Checks))
	for i, cc := range cfg.Checks {
		extractor, err := buildExtractor(cc.Extractor)
		if err != nil {
			return nil, fmt.Errorf("checks[%d]: %w", i, err)
		}
		expect, err := probe.ParseStatus(cc.Expect)
		if err != nil {
			return nil, fmt.Errorf("checks[%d]: %w", i, err)
		}

		checks = append(checks, check{
			target: probe.Target{
				Name:    cc.Name,
				URL:     cc.URL,
				Method:  cc.Method,
				Headers: cc.Headers,
				Timeout: cc.Timeout.Duration(),
			},
			extractor: extractor,
			expect:    expect,
		})
	}
	return checks, nil
}

func buildExtractor(e config.ExtractorConfig) (probe.Extractor, error) {
	switch e.Type {
	case "", "default":
		return probe.Default(), nil
	case "http":
		return probe.HTTPStatus(), nil
	case "json":
		return probe.JSONField(e.Path), nil
	case "contains":
		return probe.Contains(e.Text), nil
	case "regex":
		return probe.Regex(e.Pattern, e.Text)
	default:
		return probe.Extractor{}, fmt.Errorf("unknown extractor type %q", e.Type)
	}
}

// runChecks polls each check in turn and writes one line per check to out.
// A timed-out check prints its diagnosis; the remaining checks still run.
func runChecks(out io.Writer, c *eventually.Checker, client *probe.Client, checks []check) error {
	failed := 0
	for _, ck := range checks {
		obs, err := eventually.When(c, ck.target, probe.Check(client, ck.extractor),
			eventually.Matches(probe.HasStatus(ck.expect)))
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s\n%s\n", ck.target, err)
			continue
		}
		fmt.Fprintf(out, "ok   %s: %s\n", ck.target, obs)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d checks not satisfied within %s", failed, len(checks), c.Schedule())
	}
	return nil
}
