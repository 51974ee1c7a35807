package echoapi

import (
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/coursatplus/coursat/core"
	"github.com/coursatplus/coursat/core/session"
)

const sessionTokenKey = "sessionToken"

// newJWTConfig returns the JWT auth middleware config.
func newJWTConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    sessionTokenKey,
		Claims:        new(Claims),
	}
}

// Claims represents the session claims transmitted via a JWT.
// The token expires exactly when the activation code does.
type Claims struct {
	jwt.StandardClaims
	Code    string `json:"code"`
	Name    string `json:"name,omitempty"`
	Section string `json:"section,omitempty"`
}

func GetSessionClaims(conf *core.Config, identity session.Identity) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   identity.Code,
			Audience:  "Students",
			ExpiresAt: identity.ExpiryDate.Unix(),
			IssuedAt:  now.Unix(),
		},
		Code:    identity.Code,
		Name:    identity.Name,
		Section: identity.Section,
	}
}

// GenerateToken generates a signed JWT token string representing the session Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(sessionTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}
