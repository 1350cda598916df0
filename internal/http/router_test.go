package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brightpath-agency/brightpath/internal/blob"
	"github.com/brightpath-agency/brightpath/internal/mail"
	"github.com/brightpath-agency/brightpath/internal/notify"
	"github.com/brightpath-agency/brightpath/internal/service"
	"github.com/brightpath-agency/brightpath/internal/store/sqlite"
	"github.com/brightpath-agency/brightpath/internal/token"
	"github.com/brightpath-agency/brightpath/pkg/slogx"
	"github.com/stretchr/testify/require"
)

type capturingTransport struct {
	mu   sync.Mutex
	sent []mail.Message
}

func (c *capturingTransport) Send(_ context.Context, msg mail.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return nil
}

func (c *capturingTransport) messages() []mail.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]mail.Message(nil), c.sent...)
}

type testEnv struct {
	server    *httptest.Server
	transport *capturingTransport
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	transport := &capturingTransport{}
	codec := token.NewCodec([]byte("router-test-share-secret"), time.Hour)
	resolver := blob.NewResolver("", "", nil, 0)
	notifier := &notify.Notifier{
		Transport:  transport,
		Resolver:   resolver,
		Codec:      codec,
		AppBaseURL: "https://app.test",
	}

	authSvc := &service.AuthService{
		Store:  st,
		Secret: []byte("router-test-auth-secret"),
		Issuer: "brightpath-test",
	}

	router := NewRouter(authSvc, "test", st, slogx.New(slogx.Config{
		Service: "brightpath",
		Level:   "error",
		Format:  "text",
	}))
	router.AuthService = authSvc
	router.ClientService = &service.ClientService{Store: st}
	router.CompanyService = &service.CompanyService{Store: st}
	router.LifecycleService = &service.LifecycleService{Store: st, Notifier: notifier}
	router.ShareService = &service.ShareService{Store: st, Codec: codec, Resolver: resolver}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, transport: transport}
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, e.server.URL+path, rd)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// register creates an account via the API and returns its bearer token.
func (e *testEnv) register(t *testing.T, email, role string) string {
	t.Helper()

	resp := e.do(t, http.MethodPost, "/v1/auth/register", "", RegisterRequest{
		Email: email, Password: "hunter2hunter2", Role: role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = e.do(t, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Email: email, Password: "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[LoginResponse](t, resp).AccessToken
}

func TestSuggestionWorkflow(t *testing.T) {
	env := newTestEnv(t)

	userToken := env.register(t, "candidate@example.com", "")
	staffToken := env.register(t, "recruiter@example.com", "recruiter")

	// Candidate creates their profile.
	resp := env.do(t, http.MethodPost, "/v1/clients", userToken, CreateClientRequest{
		FullName: "Grace Hopper",
		Email:    "candidate@example.com",
		Skills:   "go, sql",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	client := decode[ClientResponse](t, resp)
	require.Equal(t, "pending", client.Status)

	// Recruiter registers a company.
	resp = env.do(t, http.MethodPost, "/v1/companies", staffToken, CreateCompanyRequest{
		Name:  "Acme",
		Email: "talent@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	company := decode[CompanyResponse](t, resp)

	// A regular user may not suggest.
	suggestPath := "/v1/clients/" + itoa(client.ID) + "/suggest"
	resp = env.do(t, http.MethodPost, suggestPath, userToken, SuggestRequest{CompanyID: company.ID})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Recruiter suggests; client advances to suggested.
	resp = env.do(t, http.MethodPost, suggestPath, staffToken, SuggestRequest{CompanyID: company.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	suggestion := decode[SuggestResponse](t, resp)
	require.Equal(t, "suggested", suggestion.Client.Status)
	require.NotZero(t, suggestion.Assignment.ID)

	// Repeating the pair conflicts.
	resp = env.do(t, http.MethodPost, suggestPath, staffToken, SuggestRequest{CompanyID: company.ID})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// The company was mailed a share link; following it serves the profile.
	require.Eventually(t, func() bool {
		return len(env.transport.messages()) >= 1
	}, 2*time.Second, 10*time.Millisecond)

	msg := env.transport.messages()[0]
	require.Equal(t, "talent@example.com", msg.To)
	require.Contains(t, msg.Subject, "New client suggested: Grace Hopper")

	shareURL := extractShareURL(t, msg.Text)
	u, err := url.Parse(shareURL)
	require.NoError(t, err)

	resp = env.do(t, http.MethodGet, u.Path+"?"+u.RawQuery, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := decode[service.ShareView](t, resp)
	require.Equal(t, "Grace Hopper", view.Client.FullName)
	require.Equal(t, suggestion.Assignment.ID, view.Assignment.ID)
	require.False(t, view.CV.Exists)

	// The share link dies with the assignment: deleting the client cascades.
	adminToken := env.register(t, "admin@example.com", "admin")
	resp = env.do(t, http.MethodDelete, "/v1/clients/"+itoa(client.ID), adminToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(t, http.MethodGet, u.Path+"?"+u.RawQuery, "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStatusEndpoint(t *testing.T) {
	env := newTestEnv(t)

	userToken := env.register(t, "candidate@example.com", "")
	staffToken := env.register(t, "recruiter@example.com", "recruiter")

	resp := env.do(t, http.MethodPost, "/v1/clients", userToken, CreateClientRequest{
		FullName: "Grace Hopper", Email: "candidate@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	client := decode[ClientResponse](t, resp)

	statusPath := "/v1/clients/" + itoa(client.ID) + "/status"

	t.Run("forgiving spelling", func(t *testing.T) {
		resp := env.do(t, http.MethodPatch, statusPath, staffToken, ChangeStatusRequest{Status: "In_Progress"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "in progress", decode[ClientResponse](t, resp).Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		resp := env.do(t, http.MethodPatch, statusPath, staffToken, ChangeStatusRequest{Status: "on hold"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		resp := env.do(t, http.MethodPatch, "/v1/clients/abc/status", staffToken, ChangeStatusRequest{Status: "pending"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("requires auth", func(t *testing.T) {
		resp := env.do(t, http.MethodPatch, statusPath, "", ChangeStatusRequest{Status: "pending"})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestShareEndpointRejections(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing token", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/share/clients/1", "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/share/clients/1?token=garbage", "", nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non-positive id", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/share/clients/0?token=x", "", nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", decode[HealthResponse](t, resp).Status)

	resp = env.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	health := decode[HealthResponse](t, resp)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "ok", health.Checks.Database)
}

var shareURLRe = regexp.MustCompile(`https://app\.test(/share/clients/\d+\?token=\S+)`)

func extractShareURL(t *testing.T, text string) string {
	t.Helper()
	m := shareURLRe.FindStringSubmatch(text)
	require.NotNil(t, m, "mail body should carry a share link:\n%s", text)
	return strings.TrimSpace(m[0])
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
