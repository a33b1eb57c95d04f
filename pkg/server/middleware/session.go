package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dairy-tools/milk-atlas/pkg/models/api"
	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
)

// The app shell owns authentication; it forwards the authenticated
// caller's organizational position in these headers.
const (
	HeaderRole   = "X-Atlas-Role"
	HeaderDairy  = "X-Atlas-Dairy"
	HeaderDevice = "X-Atlas-Device"
)

type sessionKey struct{}

// Session extracts the caller's session from request headers and rejects
// requests without a recognizable role.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		session := domain.Session{
			Role:      domain.Role(req.Header.Get(HeaderRole)),
			DairyCode: req.Header.Get(HeaderDairy),
			DeviceID:  req.Header.Get(HeaderDevice),
		}

		valid := session.Role == domain.RoleAdmin ||
			(session.Role == domain.RoleDairy && session.DairyCode != "") ||
			(session.Role == domain.RoleDevice && session.DeviceID != "")
		if !valid {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(api.Error{Error: "missing or incomplete session headers"})
			return
		}

		ctx := context.WithValue(req.Context(), sessionKey{}, session)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// SessionFromContext returns the session stored by the Session middleware.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(domain.Session)
	return session, ok
}
