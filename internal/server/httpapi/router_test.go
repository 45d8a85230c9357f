package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/casiec/internal/logging"
	"github.com/dmitrijs2005/casiec/internal/server/config"
	"github.com/dmitrijs2005/casiec/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/casiec/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@casiec.ng"
	adminPassword = "s3cret"
)

type fakeSender struct {
	codes map[string]string
}

func (f *fakeSender) SendCode(_ context.Context, email, code string) error {
	f.codes[email] = code
	return nil
}

type fakeImages struct{}

func (fakeImages) Put(_ context.Context, fileName, _ string, _ []byte) (string, error) {
	return "http://minio/casiec/" + fileName, nil
}

type testServer struct {
	*httptest.Server
	sender *fakeSender
}

func newTestServer(t *testing.T, images services.ImageStore) *testServer {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "test-key",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		OTPValidityDuration:          5 * time.Minute,
	}
	m := repomanager.NewInMemoryRepositoryManager()
	sender := &fakeSender{codes: map[string]string{}}
	logger := logging.Discard()

	authSvc := services.NewAuthService(m, sender, cfg, logger)
	require.NoError(t, authSvc.SeedAdmin(context.Background(), adminEmail, adminPassword))
	contentSvc := services.NewContentService(m, images, logger)

	srv := httptest.NewServer(NewRouter(authSvc, contentSvc, logger, RouterOptions{}))
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, sender: sender}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, s.URL+path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(t, req, token)
}

func (s *testServer) send(t *testing.T, req *http.Request, token string) (*http.Response, []byte) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, out.Bytes()
}

func (s *testServer) signIn(t *testing.T) services.TokenPair {
	t.Helper()
	resp, body := s.do(t, http.MethodPost, "/auth/login", "", loginRequest{Email: adminEmail, Password: adminPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	resp, body = s.do(t, http.MethodPost, "/auth/verify-2fa", "", verifyRequest{Email: adminEmail, Code: s.sender.codes[adminEmail]})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var pair services.TokenPair
	require.NoError(t, json.Unmarshal(body, &pair))
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	return pair
}

func message(t *testing.T, body []byte) string {
	t.Helper()
	var e errorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e.Message
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	resp, body := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, nil)

	resp, body := s.do(t, http.MethodPost, "/auth/login", "", loginRequest{Email: "Admin@Casiec.ng", Password: adminPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got loginResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, adminEmail, got.Email)
	assert.Contains(t, got.Message, adminEmail)
	assert.NotEmpty(t, s.sender.codes[adminEmail])

	tests := []struct {
		name   string
		body   any
		status int
		msg    string
	}{
		{"wrong password", loginRequest{Email: adminEmail, Password: "nope"}, http.StatusUnauthorized, "Invalid email or password."},
		{"unknown user", loginRequest{Email: "x@y.z", Password: "nope"}, http.StatusUnauthorized, "Invalid email or password."},
		{"missing fields", loginRequest{Email: adminEmail}, http.StatusBadRequest, "Email and password are required."},
		{"malformed", "not an object", http.StatusBadRequest, "Malformed JSON body."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := s.do(t, http.MethodPost, "/auth/login", "", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.msg, message(t, body))
		})
	}
}

func TestVerify2FA_WrongCode(t *testing.T) {
	s := newTestServer(t, nil)
	resp, _ := s.do(t, http.MethodPost, "/auth/login", "", loginRequest{Email: adminEmail, Password: adminPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := s.do(t, http.MethodPost, "/auth/verify-2fa", "", verifyRequest{Email: adminEmail, Code: "000000x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid or expired code.", message(t, body))
}

func TestRefreshAndLogout(t *testing.T) {
	s := newTestServer(t, nil)
	pair := s.signIn(t)

	resp, body := s.do(t, http.MethodPost, "/auth/refresh", "", refreshRequest{RefreshToken: pair.RefreshToken})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var next services.TokenPair
	require.NoError(t, json.Unmarshal(body, &next))
	assert.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	resp, body = s.do(t, http.MethodPost, "/auth/refresh", "", refreshRequest{RefreshToken: pair.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "refresh tokens are single use")
	assert.Equal(t, "Session expired. Please sign in again.", message(t, body))

	resp, _ = s.do(t, http.MethodPost, "/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/auth/logout", next.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/auth/refresh", "", refreshRequest{RefreshToken: next.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAccessRules(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.signIn(t).AccessToken

	tests := []struct {
		method string
		path   string
		body   any
		anon   int
	}{
		{http.MethodGet, "/article", nil, http.StatusOK},
		{http.MethodGet, "/carousel", nil, http.StatusOK},
		{http.MethodGet, "/finance", nil, http.StatusUnauthorized},
		{http.MethodGet, "/contact", nil, http.StatusUnauthorized},
		{http.MethodPost, "/article", map[string]any{"headline": "Rates cut"}, http.StatusUnauthorized},
		{http.MethodPost, "/contact", map[string]any{"email": "reader@mail.ng"}, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, _ := s.do(t, tt.method, tt.path, "", tt.body)
			assert.Equal(t, tt.anon, resp.StatusCode, "anonymous")
		})
	}

	resp, _ := s.do(t, http.MethodGet, "/finance", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = s.do(t, http.MethodGet, "/finance", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestContentCRUD(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.signIn(t).AccessToken

	resp, body := s.do(t, http.MethodPost, "/ticker", token, map[string]any{"text": "Naira steady", "id": "forged"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var created map[string]any
	require.NoError(t, json.Unmarshal(body, &created))
	id, _ := created["id"].(string)
	assert.NotEqual(t, "forged", id)
	assert.Equal(t, "Market", created["category"])
	assert.Equal(t, true, created["isManual"])
	_, err := time.Parse(time.RFC3339Nano, created["createdAt"].(string))
	require.NoError(t, err)

	resp, body = s.do(t, http.MethodPatch, "/ticker/"+id, token, map[string]any{"category": "Urgent"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var updated map[string]any
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "Urgent", updated["category"])
	assert.Equal(t, "Naira steady", updated["text"])

	resp, body = s.do(t, http.MethodPatch, "/ticker/"+id, token, map[string]any{"category": "Gossip"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Category must be one of Market, Corporate, Urgent.", message(t, body))

	resp, body = s.do(t, http.MethodGet, "/ticker", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Len(t, list, 1)

	resp, _ = s.do(t, http.MethodDelete, "/ticker/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = s.do(t, http.MethodGet, "/ticker/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = s.do(t, http.MethodDelete, "/ticker/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestContact(t *testing.T) {
	s := newTestServer(t, nil)
	token := s.signIn(t).AccessToken

	resp, body := s.do(t, http.MethodPost, "/contact", "", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email is required.", message(t, body))

	resp, body = s.do(t, http.MethodPost, "/contact", "", map[string]any{"email": "Reader@Mail.ng"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var sub map[string]any
	require.NoError(t, json.Unmarshal(body, &sub))
	assert.Equal(t, "reader@mail.ng", sub["email"])
	assert.Equal(t, "Unread", sub["status"])
	assert.Equal(t, false, sub["opened"])

	resp, body = s.do(t, http.MethodPost, "/contact", "", map[string]any{"email": "reader@mail.ng"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Email is already subscribed.", message(t, body))

	resp, _ = s.do(t, http.MethodPost, "/contact", "", map[string]any{"email": "reader@mail.ng", "subject": "Loans", "message": "Hi"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode, "a message from a subscriber is not a duplicate")

	id := sub["id"].(string)
	resp, _ = s.do(t, http.MethodPut, "/contact/"+id+"/opened", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = s.do(t, http.MethodPut, "/contact/"+id+"/opened", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var opened map[string]any
	require.NoError(t, json.Unmarshal(body, &opened))
	assert.Equal(t, true, opened["opened"])
	assert.Equal(t, "Unread", opened["status"])
}

func multipartRequest(t *testing.T, method, url string, fields map[string]string, image []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "photo.png")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestMultipartUpload(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")

	t.Run("stored", func(t *testing.T) {
		s := newTestServer(t, fakeImages{})
		token := s.signIn(t).AccessToken

		req := multipartRequest(t, http.MethodPost, s.URL+"/team", map[string]string{"name": "Ada", "role": "CEO"}, png)
		resp, body := s.send(t, req, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
		var rec map[string]any
		require.NoError(t, json.Unmarshal(body, &rec))
		assert.Equal(t, "http://minio/casiec/photo.png", rec["imageUrl"])
	})

	t.Run("booleans parsed", func(t *testing.T) {
		s := newTestServer(t, nil)
		req := multipartRequest(t, http.MethodPost, s.URL+"/support", map[string]string{
			"fullName": "Ada", "email": "a@b.ng", "phone": "+234803", "businessName": "Acme",
			"advisoryPillars": "Expert Advisory", "isRegistered": "true",
		}, nil)
		resp, body := s.send(t, req, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
		var rec map[string]any
		require.NoError(t, json.Unmarshal(body, &rec))
		assert.Equal(t, true, rec["isRegistered"])
	})

	t.Run("uploads disabled", func(t *testing.T) {
		s := newTestServer(t, nil)
		token := s.signIn(t).AccessToken

		req := multipartRequest(t, http.MethodPost, s.URL+"/article", map[string]string{"headline": "Rates"}, png)
		resp, body := s.send(t, req, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Image uploads are not available.", message(t, body))
	})
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodOptions, s.URL+"/article", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://casiec.ng")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	resp, _ := s.send(t, req, "")

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPatch)
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, nil)

	resp, body := s.do(t, http.MethodGet, "/payroll", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found.", message(t, body))
}
