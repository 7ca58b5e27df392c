package http

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/service"
	"github.com/ironbark/buildmat/internal/store"
	"github.com/ironbark/buildmat/internal/store/drivers/sqlite"
	"github.com/ironbark/buildmat/pkg/cryptox"
	"github.com/ironbark/buildmat/pkg/jwtx"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "buildmat-http-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper.bin"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *testMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, body)
	return nil
}

var testCodePattern = regexp.MustCompile(`code is (\d{6})`)

func (m *testMailer) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()

	require.NotEmpty(t, m.sent)
	match := testCodePattern.FindStringSubmatch(m.sent[len(m.sent)-1])
	require.Len(t, match, 2)
	return match[1]
}

type testEnv struct {
	router *Router
	mailer *testMailer
	store  store.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: "buildmat-test", NumKeys: 1})
	require.NoError(t, err)

	mailer := &testMailer{}
	tokens := &service.TokenService{KeyManager: km, Issuer: "buildmat-test", SessionTTL: time.Hour}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	r := NewRouter(km.KeySet, km.Verifier, "test", st, logger)
	r.AuthService = &service.AuthService{
		Store:        st,
		Mailer:       mailer,
		Tokens:       tokens,
		Challenges:   service.NewChallengeCache(),
		ResetBaseURL: "https://buildmat.example/reset",
	}
	r.TokenService = tokens
	r.MaterialService = &service.MaterialService{Store: st}
	r.SupplierService = &service.SupplierService{Store: st}
	r.PurchaseService = &service.PurchaseService{Store: st}
	r.SaleService = &service.SaleService{Store: st}
	r.StockService = &service.StockService{Store: st}
	r.CustomerService = &service.CustomerService{Store: st}
	r.OrderService = &service.OrderService{Store: st}
	r.OrderDetailService = &service.OrderDetailService{Store: st}
	r.ApplyRoutes()

	return &testEnv{router: r, mailer: mailer, store: st}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// loginAs registers an account and walks the two-step login, returning a
// session token. Registration only ever creates plain users, so an admin
// role is applied directly in the store before logging in.
func (e *testEnv) loginAs(t *testing.T, email, role string) string {
	t.Helper()
	ctx := context.Background()

	rec := e.do(t, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email":     email,
		"password":  "test-password",
		"full_name": "Test Account",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	if role != domain.RoleUser {
		u, err := e.store.Users().GetUserByEmail(ctx, email)
		require.NoError(t, err)
		require.NoError(t, e.store.Users().UpdateRole(ctx, u.ID, role))
	}

	rec = e.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "test-password",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPost, "/v1/auth/verify-2fa", "", map[string]string{
		"email": email,
		"code":  e.mailer.lastCode(t),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var session domain.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.NotEmpty(t, session.Token)
	return session.Token
}

func TestAuthFlowOverHTTP(t *testing.T) {
	e := newTestEnv(t)

	token := e.loginAs(t, "alice@example.com", domain.RoleUser)

	// The issued token opens the data endpoints.
	rec := e.do(t, http.MethodGet, "/v1/materials", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/v1/auth/register", "", map[string]string{
		"email":    "bob@example.com",
		"password": "right-password",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"email":    "bob@example.com",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid_credentials")
}

func TestVerifyWithoutChallenge(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodPost, "/v1/auth/verify-2fa", "", map[string]string{
		"email": "nobody@example.com",
		"code":  "123456",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "no_challenge")
}

func TestDataEndpointsRequireToken(t *testing.T) {
	e := newTestEnv(t)

	for _, path := range []string{
		"/v1/materials", "/v1/suppliers", "/v1/purchases",
		"/v1/sales", "/v1/stocks", "/v1/customers", "/v1/orders",
		"/v1/order-details",
	} {
		rec := e.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestMaterialCRUDOverHTTP(t *testing.T) {
	e := newTestEnv(t)
	token := e.loginAs(t, "carol@example.com", domain.RoleUser)

	rec := e.do(t, http.MethodPost, "/v1/materials", token, map[string]any{
		"name":       "Portland Cement",
		"category":   "cement",
		"quantity":   100,
		"unit_price": 9.50,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var m domain.Material
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	require.NotEmpty(t, m.ID)

	rec = e.do(t, http.MethodGet, "/v1/materials/"+m.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPut, "/v1/materials/"+m.ID, token, map[string]any{
		"name":       "Portland Cement",
		"category":   "cement",
		"quantity":   90,
		"unit_price": 10.00,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Material
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.EqualValues(t, 90, updated.Quantity)

	// Plain users cannot delete.
	rec = e.do(t, http.MethodDelete, "/v1/materials/"+m.ID, token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminCanDelete(t *testing.T) {
	e := newTestEnv(t)

	userToken := e.loginAs(t, "staff@example.com", domain.RoleUser)
	adminToken := e.loginAs(t, "boss@example.com", domain.RoleAdmin)

	rec := e.do(t, http.MethodPost, "/v1/suppliers", userToken, map[string]any{
		"name": "Ironbark Steel Supplies",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var sup domain.Supplier
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sup))

	rec = e.do(t, http.MethodDelete, "/v1/suppliers/"+sup.ID, adminToken, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = e.do(t, http.MethodGet, "/v1/suppliers/"+sup.ID, userToken, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderDetailsOverHTTP(t *testing.T) {
	e := newTestEnv(t)
	token := e.loginAs(t, "clerk@example.com", domain.RoleUser)

	rec := e.do(t, http.MethodPost, "/v1/customers", token, map[string]any{
		"name": "Harbour Builds",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var cust domain.Customer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cust))

	rec = e.do(t, http.MethodPost, "/v1/materials", token, map[string]any{
		"name":       "River Sand",
		"category":   "aggregate",
		"quantity":   500,
		"unit_price": 0.12,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var mat domain.Material
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mat))

	rec = e.do(t, http.MethodPost, "/v1/orders", token, map[string]any{
		"customer_id":  cust.ID,
		"total_amount": 60.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var ord domain.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ord))

	rec = e.do(t, http.MethodPost, "/v1/order-details", token, map[string]any{
		"order_id":    ord.ID,
		"material_id": mat.ID,
		"quantity":    500,
		"subtotal":    60.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var line domain.OrderDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &line))
	require.NotEmpty(t, line.ID)

	// A line item naming a missing order is rejected.
	rec = e.do(t, http.MethodPost, "/v1/order-details", token, map[string]any{
		"order_id":    "no-such-order",
		"material_id": mat.ID,
		"quantity":    1,
		"subtotal":    1.0,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid_reference")

	rec = e.do(t, http.MethodGet, "/v1/orders/"+ord.ID+"/details", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var lines []domain.OrderDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lines))
	require.Len(t, lines, 1)
	require.Equal(t, line.ID, lines[0].ID)

	rec = e.do(t, http.MethodPut, "/v1/order-details/"+line.ID, token, map[string]any{
		"order_id":    ord.ID,
		"material_id": mat.ID,
		"quantity":    450,
		"subtotal":    54.0,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.OrderDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.EqualValues(t, 450, updated.Quantity)
}

func TestRoleEndpoint(t *testing.T) {
	e := newTestEnv(t)

	userToken := e.loginAs(t, "junior@example.com", domain.RoleUser)
	adminToken := e.loginAs(t, "lead@example.com", domain.RoleAdmin)

	target, err := e.store.Users().GetUserByEmail(context.Background(), "junior@example.com")
	require.NoError(t, err)

	// Plain users cannot change roles.
	rec := e.do(t, http.MethodPut, "/v1/users/"+target.ID+"/role", userToken, map[string]string{
		"role": domain.RoleAdmin,
	})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodPut, "/v1/users/"+target.ID+"/role", adminToken, map[string]string{
		"role": domain.RoleAdmin,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var promoted domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &promoted))
	require.Equal(t, domain.RoleAdmin, promoted.Role)

	rec = e.do(t, http.MethodPut, "/v1/users/"+target.ID+"/role", adminToken, map[string]string{
		"role": "superuser",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(t, http.MethodPut, "/v1/users/no-such-user/role", adminToken, map[string]string{
		"role": domain.RoleUser,
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownMaterialReturns404(t *testing.T) {
	e := newTestEnv(t)
	token := e.loginAs(t, "dave@example.com", domain.RoleUser)

	rec := e.do(t, http.MethodGet, "/v1/materials/does-not-exist", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSystemEndpoints(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = e.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, "/.well-known/jwks.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var jwks jwtx.JWKS
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jwks))
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "OKP", jwks.Keys[0].Kty)
}

func TestGarbageTokenRejected(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(t, http.MethodGet, "/v1/materials", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterDuplicateOverHTTP(t *testing.T) {
	e := newTestEnv(t)

	body := map[string]string{"email": "erin@example.com", "password": "pw-123456"}
	rec := e.do(t, http.MethodPost, "/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPost, "/v1/auth/register", "", body)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "duplicate_account")
}
