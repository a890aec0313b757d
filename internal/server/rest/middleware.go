package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/bazaarbuddy/internal/common"
	"github.com/dmitrijs2005/bazaarbuddy/internal/logging"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/auth"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
	"github.com/go-chi/chi/v5/middleware"
)

const redacted = "[REDACTED]"

type requestLogOpts struct {
	SkipPaths     []string
	RedactHeaders []string
}

// requestLogger writes one line per request. Request headers are only
// logged at debug level and never carry credentials.
func requestLogger(l logging.Logger, opts requestLogOpts) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(opts.SkipPaths))
	for _, p := range opts.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration", time.Since(start),
				"bytes", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()),
			}
			ctx := r.Context()
			switch {
			case status >= 500:
				l.Error(ctx, "request", args...)
			default:
				l.Info(ctx, "request", args...)
			}
			l.Debug(ctx, "request headers", "request_id", middleware.GetReqID(ctx),
				"headers", redactHeaders(r.Header, opts.RedactHeaders))
		})
	}
}

func redactHeaders(h http.Header, names []string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = strings.Join(v, ",")
	}
	for _, n := range names {
		k := http.CanonicalHeaderKey(n)
		if _, ok := out[k]; ok {
			out[k] = redacted
		}
	}
	return out
}

// identityHandler is a handler that runs only for a verified caller.
type identityHandler func(w http.ResponseWriter, r *http.Request, caller models.Identity)

// requireAuth verifies the x-auth-token header and hands the caller identity
// to next. Nothing past this point runs for an unauthenticated request.
func (a *API) requireAuth(next identityHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := a.verifier.Verify(r.Header.Get(common.AuthTokenHeaderName))
		if err != nil {
			var invalid *auth.InvalidTokenError
			if errors.As(err, &invalid) {
				a.logger.Debug(r.Context(), "token rejected", "error", invalid.Error())
				writeJSON(w, http.StatusUnauthorized, msgBody{Msg: msgInvalidToken, Error: invalid.Error()})
				return
			}
			writeMsg(w, http.StatusUnauthorized, msgNoToken)
			return
		}
		next(w, r, caller)
	}
}
