package services

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/casiec/internal/client/client"
	"github.com/stretchr/testify/require"
)

type call struct {
	Method string
	Path   string
	Body   *client.Body
}

// fakeAPI answers requests from canned responses keyed by "METHOD /path".
type fakeAPI struct {
	mu        sync.Mutex
	calls     []call
	responses map[string]any
	errs      map[string]error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{responses: map[string]any{}, errs: map[string]error{}}
}

func (f *fakeAPI) Do(_ context.Context, method, path string, body *client.Body, out any) error {
	key := method + " " + path

	f.mu.Lock()
	f.calls = append(f.calls, call{Method: method, Path: path, Body: body})
	resp, hasResp := f.responses[key]
	err := f.errs[key]
	f.mu.Unlock()

	if err != nil {
		return err
	}
	if hasResp && out != nil {
		data, err := json.Marshal(resp)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, out)
	}
	return nil
}

func (f *fakeAPI) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Method+" "+c.Path)
	}
	sort.Strings(out)
	return out
}

func (f *fakeAPI) last(t *testing.T) call {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func jsonBody(t *testing.T, c call) map[string]any {
	t.Helper()
	require.NotNil(t, c.Body)
	require.Equal(t, "application/json", c.Body.ContentType)
	var m map[string]any
	require.NoError(t, json.Unmarshal(c.Body.Data, &m))
	return m
}

func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}
