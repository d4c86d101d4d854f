package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"treasury/pkg/requestcontext"
)

const signingKey = "test-signing-key"

type AuthSuite struct {
	suite.Suite
	verifier *HS256Verifier
}

func (s *AuthSuite) SetupTest() {
	s.verifier = NewHS256Verifier(signingKey)
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) signToken(claims jwt.MapClaims, key string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(key))
	s.Require().NoError(err)
	return signed
}

// TestVerify covers token validation outcomes.
func (s *AuthSuite) TestVerify() {
	s.Run("valid token yields its subject", func() {
		token := s.signToken(jwt.MapClaims{
			"sub": "treasury-ops",
			"exp": time.Now().Add(time.Hour).Unix(),
		}, signingKey)

		principal, err := s.verifier.Verify(token)
		s.Require().NoError(err)
		s.Equal("treasury-ops", principal)
	})

	s.Run("wrong signing key fails", func() {
		token := s.signToken(jwt.MapClaims{"sub": "ops"}, "other-key")
		_, err := s.verifier.Verify(token)
		s.Error(err)
	})

	s.Run("expired token fails", func() {
		token := s.signToken(jwt.MapClaims{
			"sub": "ops",
			"exp": time.Now().Add(-time.Hour).Unix(),
		}, signingKey)
		_, err := s.verifier.Verify(token)
		s.Error(err)
	})

	s.Run("token without subject fails", func() {
		token := s.signToken(jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		}, signingKey)
		_, err := s.verifier.Verify(token)
		s.Error(err)
	})
}

// TestMiddleware covers the HTTP surface: header parsing, rejection
// status, and principal propagation.
func (s *AuthSuite) TestMiddleware() {
	var seenPrincipal string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPrincipal = requestcontext.Principal(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := Middleware(s.verifier)(next)

	s.Run("missing header is 401", func() {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("non-bearer scheme is 401", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic abc")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("garbage token is 401", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("valid token reaches the handler with its principal", func() {
		token := s.signToken(jwt.MapClaims{
			"sub": "treasury-ops",
			"exp": time.Now().Add(time.Hour).Unix(),
		}, signingKey)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		s.Equal(http.StatusOK, rec.Code)
		s.Equal("treasury-ops", seenPrincipal)
	})
}
