package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/isdelr/blogit-be/internal/models"
	"github.com/stretchr/testify/require"
)

var testUser = models.User{
	ID:    "user-123",
	Name:  "A",
	Email: "a@x.com",
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("super-secret"), 0)

	token, err := svc.Issue(testUser)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, testUser.ID, claims.UserID)
	require.Equal(t, testUser.Email, claims.Email)
}

func TestVerify_NoTTLMeansNoExpiry(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("k"), 0)
	token, err := svc.Issue(testUser)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	require.Nil(t, claims.ExpiresAt)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("k"), -time.Second)
	token, err := svc.Issue(testUser)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenService([]byte("right-secret"), 0).Issue(testUser)
	require.NoError(t, err)

	_, err = NewTokenService([]byte("wrong-secret"), 0).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService([]byte("k"), 0).Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("k"), 0)
	token, err := svc.Issue(testUser)
	require.NoError(t, err)

	// Flip one character of the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Verify(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_TamperedClaims(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("k"), 0)
	token, err := svc.Issue(testUser)
	require.NoError(t, err)

	// Swap in a different claims segment signed by nobody.
	other, err := svc.Issue(models.User{ID: "user-456", Email: "b@y.com"})
	require.NoError(t, err)

	a, b := strings.Split(token, "."), strings.Split(other, ".")
	forged := a[0] + "." + b[1] + "." + a[2]

	_, err = svc.Verify(forged)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func middlewareHarness(svc *TokenService) (http.Handler, *[]*Claims) {
	var seen []*Claims
	handler := svc.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if ok {
			seen = append(seen, claims)
		}
		w.WriteHeader(http.StatusOK)
	}))
	return handler, &seen
}

func TestMiddleware_MissingHeader(t *testing.T) {
	t.Parallel()

	handler, seen := middlewareHarness(NewTokenService([]byte("k"), 0))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Empty(t, *seen)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
}

func TestMiddleware_WrongScheme(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("k"), 0)
	token, err := svc.Issue(testUser)
	require.NoError(t, err)

	handler, seen := middlewareHarness(svc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Empty(t, *seen)
}

func TestMiddleware_InvalidToken(t *testing.T) {
	t.Parallel()

	handler, seen := middlewareHarness(NewTokenService([]byte("k"), 0))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Empty(t, *seen)
}

func TestMiddleware_ValidToken(t *testing.T) {
	t.Parallel()

	svc := NewTokenService([]byte("k"), 0)
	token, err := svc.Issue(testUser)
	require.NoError(t, err)

	handler, seen := middlewareHarness(svc)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, *seen, 1)
	require.Equal(t, testUser.ID, (*seen)[0].UserID)
	require.Equal(t, testUser.Email, (*seen)[0].Email)
}
