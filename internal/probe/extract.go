package probe

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jpalmerr/eventually/describe"
	"github.com/jpalmerr/eventually/match"
)

// Status is the health state read from a response.
type Status string

const (
	StatusUp       Status = "up"
	StatusDown     Status = "down"
	StatusDegraded Status = "degraded"
	StatusUnknown  Status = "unknown"
)

// ParseStatus validates s as one of the four status values.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusUp, StatusDown, StatusDegraded, StatusUnknown:
		return st, nil
	default:
		return "", fmt.Errorf("unknown status %q (expected up, down, degraded or unknown)", s)
	}
}

// Observation is the value a check produces from one response.
type Observation struct {
	Status     Status
	StatusCode int
	Err        error
}

// String renders the observation for diagnoses, e.g. "down (503)" or
// "down (request failed: ...)".
func (o Observation) String() string {
	switch {
	case o.Err != nil:
		return string(o.Status) + " (" + o.Err.Error() + ")"
	case o.StatusCode != 0:
		return string(o.Status) + " (" + strconv.Itoa(o.StatusCode) + ")"
	default:
		return string(o.Status)
	}
}

// Extractor reads an [Observation] from a [Response].
type Extractor = describe.Function[Response, Observation]

// HasStatus matches observations whose status is want.
func HasStatus(want Status) match.Matcher[Observation] {
	return match.New("status "+string(want), func(o Observation) bool {
		return o.Status == want
	}, nil)
}

// newExtractor wraps read so that failed requests are observed as down
// without consulting the body.
func newExtractor(description string, read func(body []byte, statusCode int) Status) Extractor {
	return describe.NewFunction(description, func(r Response) Observation {
		if r.Error != nil {
			return Observation{Status: StatusDown, StatusCode: r.StatusCode, Err: r.Error}
		}
		return Observation{Status: read(r.Body, r.StatusCode), StatusCode: r.StatusCode}
	})
}

// HTTPStatus reads status from the status code alone: 2xx up, 4xx degraded,
// anything else down.
func HTTPStatus() Extractor {
	return newExtractor("http status", httpStatus)
}

func httpStatus(_ []byte, statusCode int) Status {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return StatusUp
	case statusCode >= 400 && statusCode < 500:
		return StatusDegraded
	default:
		return StatusDown
	}
}

// JSONField reads status from a JSON field addressed with dot notation,
// e.g. "data.health.status".
//
// Common health words map to up ("ok", "healthy", "pass", ...) or degraded
// ("warning", "partial", ...); any other value is down. A body that is not
// JSON or lacks the field is unknown.
func JSONField(path string) Extractor {
	return newExtractor("json field "+path, jsonField(path))
}

func jsonField(path string) func([]byte, int) Status {
	parts := strings.Split(path, ".")
	return func(body []byte, _ int) Status {
		var data any
		if err := json.Unmarshal(body, &data); err != nil {
			return StatusUnknown
		}
		value := lookupJSONPath(data, parts)
		if value == "" {
			return StatusUnknown
		}
		return statusFromWord(strings.ToLower(value))
	}
}

// lookupJSONPath walks a decoded JSON document and renders the leaf as text.
func lookupJSONPath(data any, parts []string) string {
	current := data
	for _, part := range parts {
		obj, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		if current, ok = obj[part]; !ok {
			return ""
		}
	}

	switch v := current.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		switch v {
		case 0:
			return "false"
		case 1:
			return "true"
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func statusFromWord(s string) Status {
	switch s {
	case "ok", "healthy", "up", "active", "running", "pass", "passed", "true", "green", "operational":
		return StatusUp
	case "degraded", "warning", "partial", "yellow", "amber":
		return StatusDegraded
	default:
		return StatusDown
	}
}

// Contains reads up when the body contains text (case-insensitive) and down
// otherwise.
func Contains(text string) Extractor {
	lower := strings.ToLower(text)
	return newExtractor("body containing "+text, func(body []byte, _ int) Status {
		if strings.Contains(strings.ToLower(string(body)), lower) {
			return StatusUp
		}
		return StatusDown
	})
}

// Regex reads the first capture group of pattern and compares it to upMatch
// case-insensitively: equal is up, different is down, no match is unknown.
func Regex(pattern, upMatch string) (Extractor, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Extractor{}, err
	}
	if re.NumSubexp() < 1 {
		return Extractor{}, fmt.Errorf("pattern %q has no capture group", pattern)
	}

	return newExtractor("body matching "+pattern, func(body []byte, _ int) Status {
		m := re.FindSubmatch(body)
		if len(m) < 2 {
			return StatusUnknown
		}
		if strings.EqualFold(string(m[1]), upMatch) {
			return StatusUp
		}
		return StatusDown
	}), nil
}

// Default tries the JSON "status" field and falls back to the status code.
func Default() Extractor {
	field := jsonField("status")
	return newExtractor("status", func(body []byte, statusCode int) Status {
		if st := field(body, statusCode); st != StatusUnknown {
			return st
		}
		return httpStatus(body, statusCode)
	})
}
