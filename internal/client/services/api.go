// Package services maps the CASIEC backend's REST resources onto client
// models. Each service talks to the backend through an API, which in
// production is the session-aware client.HTTPClient.
package services

import (
	"context"
	"net/url"
	"time"

	"github.com/dmitrijs2005/casiec/internal/client/client"
)

// API sends a request and decodes the JSON response into out.
type API interface {
	Do(ctx context.Context, method, path string, body *client.Body, out any) error
}

// now is replaced in tests.
var now = time.Now

func resourcePath(resource, id string) string {
	return "/" + resource + "/" + url.PathEscape(id)
}

// parseTime accepts the backend's RFC 3339 timestamps. Anything else yields
// the zero time.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// displayDate renders createdAt the way listings show it, falling back to
// today when the record has none.
func displayDate(createdAt string) string {
	t := parseTime(createdAt)
	if t.IsZero() {
		t = now()
	}
	return t.Local().Format("Jan 2, 2006")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
