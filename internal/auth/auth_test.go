package auth

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"Thruster/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv() *Env {
	return &Env{JWTKey: []byte("test-key"), Repo: repo.NewMemory()}
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body)))
	return rec
}

func TestRegisterLoginAndMiddleware(t *testing.T) {
	env := newEnv()
	rec := post(env.RegisterHandler, `{"login":"ada","email":"ada@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = post(env.AuthHandler, `{"login":"ada","password":"wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = post(env.AuthHandler, `{"login":"nobody","password":"secret1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = post(env.AuthHandler, `{"login":"ada","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	var seen int
	protected := env.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	protected.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, 1, seen)

	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	forged := *cookies[0]
	forged.Value += "x"
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&forged)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := newEnv()
	assert.Equal(t, http.StatusBadRequest, post(env.RegisterHandler, `{"login":"ada"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(env.RegisterHandler, `{"login":"ada","email":"a@b","password":"123"}`).Code)
	assert.Equal(t, http.StatusCreated, post(env.RegisterHandler, `{"login":"ada","email":"a@b","password":"123456"}`).Code)
	assert.Equal(t, http.StatusConflict, post(env.RegisterHandler, `{"login":"ada","email":"a@b","password":"123456"}`).Code)
}

func TestLimitMiddleware(t *testing.T) {
	limited := NewIPRateLimiter(0, 2).LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:" + string(rune('1'+i)) + "000"
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
