// Package middleware provides gin middlewares shared by all handlers.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/rentmates/pkg/tokenpkg"
	"github.com/go-petr/rentmates/pkg/web"
	"github.com/rs/zerolog"
)

const (
	authHeaderKey = "authorization"
	// AuthTypeBearer is the only supported authorization scheme.
	AuthTypeBearer = "bearer"
	// AuthPayloadKey is the gin context key of the verified *tokenpkg.Payload.
	AuthPayloadKey = "authorization_payload"
)

var (
	// ErrAuthHeaderNotFound indicates a request without the authorization header.
	ErrAuthHeaderNotFound = errors.New("authorization header is not provided")
	// ErrBadAuthHeaderFormat indicates an authorization header that is not "<type> <token>".
	ErrBadAuthHeaderFormat = errors.New("invalid authorization header format")
	// ErrUnsupportedAuthType indicates an authorization scheme other than bearer.
	ErrUnsupportedAuthType = errors.New("unsupported authorization type")
)

// AddAuthorization issues a token for username and sets it as the request authorization header.
func AddAuthorization(r *http.Request, tokenMaker tokenpkg.Maker, authType, username string, duration time.Duration) error {
	token, _, err := tokenMaker.CreateToken(username, duration)
	if err != nil {
		return err
	}

	r.Header.Set(authHeaderKey, fmt.Sprintf("%s %s", authType, token))

	return nil
}

// AuthMiddleware rejects requests without a valid bearer access token.
func AuthMiddleware(tokenMaker tokenpkg.Maker) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		l := zerolog.Ctx(gctx.Request.Context())

		abort := func(err error) {
			l.Info().Err(err).Send()
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
		}

		authHeader := gctx.GetHeader(authHeaderKey)
		if authHeader == "" {
			abort(ErrAuthHeaderNotFound)
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) != 2 {
			abort(ErrBadAuthHeaderFormat)
			return
		}

		if strings.ToLower(fields[0]) != AuthTypeBearer {
			abort(ErrUnsupportedAuthType)
			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			abort(err)
			return
		}

		gctx.Set(AuthPayloadKey, payload)
		gctx.Next()
	}
}

// AuthUsername returns the username of the verified access token.
// It must only be called behind AuthMiddleware.
func AuthUsername(gctx *gin.Context) string {
	return gctx.MustGet(AuthPayloadKey).(*tokenpkg.Payload).Username
}
