package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/photoshare/apiserver/internal/access"
	"github.com/sirupsen/logrus"
)

// Gate runs the access stages against each request and rejects it with 401
// or 403 on the first failing stage. When the chain authenticated a
// principal it is stored on the request context.
func Gate(log logrus.FieldLogger, stages ...access.Stage) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := &access.Request{
				Authorization: r.Header.Get("Authorization"),
				Params:        routeParams(r),
			}
			if err := access.Evaluate(req, stages...); err != nil {
				var accessErr *access.Error
				if !errors.As(err, &accessErr) {
					log.WithError(err).Error("access evaluation failed")
					writeError(w, http.StatusInternalServerError, "Something went wrong!")
					return
				}
				entry := log.WithFields(logrus.Fields{
					"path":   r.URL.Path,
					"kind":   accessErr.Kind.String(),
					"reason": accessErr.Reason,
				})
				if accessErr.Err != nil {
					entry = entry.WithError(accessErr.Err)
				}
				entry.Debug("request rejected")

				status, message := rejection(accessErr)
				writeError(w, status, message)
				return
			}

			if req.Principal != nil {
				r = r.WithContext(withPrincipal(r.Context(), *req.Principal))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func routeParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	return params
}

func rejection(err *access.Error) (int, string) {
	if err.Kind == access.Unauthorized {
		if err.Reason == access.ReasonInvalidToken {
			return http.StatusUnauthorized, "Unauthorized - Invalid token"
		}
		return http.StatusUnauthorized, "Unauthorized - No token provided"
	}
	if err.Reason == access.ReasonRoleMismatch && err.Required != "" {
		role := err.Required.String()
		return http.StatusForbidden, "Forbidden - " + strings.ToUpper(role[:1]) + role[1:] + " access required"
	}
	return http.StatusForbidden, "Forbidden - Insufficient permissions"
}
