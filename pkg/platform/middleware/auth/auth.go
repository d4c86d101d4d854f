// Package auth provides bearer-token authentication middleware. Tokens are
// HS256 JWTs; the subject claim becomes the request principal.
package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	pkgerrors "treasury/pkg/errors"
	"treasury/pkg/platform/httputil"
	"treasury/pkg/requestcontext"
)

// Verifier validates a raw bearer token and returns the principal it
// identifies. Implementations must reject expired or malformed tokens.
type Verifier interface {
	Verify(token string) (principal string, err error)
}

// HS256Verifier validates HS256-signed JWTs with a shared signing key.
type HS256Verifier struct {
	key []byte
}

func NewHS256Verifier(signingKey string) *HS256Verifier {
	return &HS256Verifier{key: []byte(signingKey)}
}

func (v *HS256Verifier) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, pkgerrors.Newf(pkgerrors.CodeUnauthorized, "unexpected signing method %q", t.Method.Alg())
		}
		return v.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeUnauthorized, "invalid token", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "token has no subject")
	}
	return subject, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// authenticated principal in the request context.
func Middleware(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				httputil.WriteError(w, pkgerrors.New(pkgerrors.CodeUnauthorized, "bearer token required"))
				return
			}

			principal, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				httputil.WriteError(w, err)
				return
			}

			ctx := requestcontext.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
