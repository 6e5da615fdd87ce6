package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/jpalmerr/eventually/describe"
)

// DefaultTimeout bounds a single request when the target sets none.
const DefaultTimeout = 10 * time.Second

// Target is an HTTP endpoint to check. It is the subject of a check and
// describes itself by name and URL.
type Target struct {
	Name    string
	URL     string
	Method  string
	Headers map[string]string
	Timeout time.Duration
}

// String returns "name (url)", or just the URL for unnamed targets.
func (t Target) String() string {
	if t.Name == "" || t.Name == t.URL {
		return t.URL
	}
	return t.Name + " (" + t.URL + ")"
}

func (t Target) method() string {
	if t.Method == "" {
		return http.MethodGet
	}
	return t.Method
}

// Request returns the transform that fetches a target with client.
func Request(client *Client) describe.Function[Target, Response] {
	return describe.NewFunction("response", func(t Target) Response {
		return client.Fetch(context.Background(), t)
	})
}

// Check returns the transform that fetches a target and reads the response
// with extractor, described as "(<extractor> of response)".
func Check(client *Client, extractor Extractor) describe.Function[Target, Observation] {
	return describe.AndThen[Target, Response, Observation](Request(client), extractor)
}
