package middleware

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/rentmates/pkg/configpkg"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

const requestIDHeader = "X-Request-ID"

// CreateLogger returns the application logger.
// Development builds log to the console at trace level with callers.
func CreateLogger(config configpkg.Config) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	var output io.Writer = os.Stderr

	log := zerolog.New(output).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()

	if config.IsDevelopment() {
		log = log.
			Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			Level(zerolog.TraceLevel).
			With().
			Caller().
			Logger()
	}

	return log
}

// RequestLogger attaches a request scoped logger to the request context and logs every request.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		start := time.Now()

		requestID := gctx.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			gctx.Request.Header.Set(requestIDHeader, requestID)
		}

		gctx.Writer.Header().Set(requestIDHeader, requestID)

		l := logger.With().Str("request_id", requestID).Logger()
		gctx.Request = gctx.Request.WithContext(l.WithContext(gctx.Request.Context()))

		defer func() {
			if panicVal := recover(); panicVal != nil {
				l.Error().Msgf("panic message: %v", panicVal)
				gctx.AbortWithStatus(http.StatusInternalServerError)
			}

			status := gctx.Writer.Status()

			var event *zerolog.Event
			if status >= http.StatusInternalServerError {
				event = l.Error()
			} else {
				event = l.Info()
			}

			event.
				Str("client_ip", gctx.ClientIP()).
				Str("method", gctx.Request.Method).
				Int("status_code", status).
				Str("path", gctx.Request.URL.Path).
				Dur("latency", time.Since(start)).
				Msg(gctx.Errors.ByType(gin.ErrorTypePrivate).String())
		}()

		gctx.Next()
	}
}
