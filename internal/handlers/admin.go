package handlers

import (
	"crypto/subtle"
	"net/http"
)

const adminRealm = `Basic realm="TheSyncBridge Admin"`

// RequireAdmin guards a route with HTTP basic credentials. Only the password
// is compared; the username is ignored.
func RequireAdmin(password string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !validAdminPassword(r, password) {
				w.Header().Set("WWW-Authenticate", adminRealm)
				writeError(w, http.StatusUnauthorized, "invalid admin credentials")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func validAdminPassword(r *http.Request, password string) bool {
	if password == "" {
		return false
	}
	_, given, ok := r.BasicAuth()
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(password)) == 1
}

// AdminLogin confirms the credentials accepted by RequireAdmin.
func AdminLogin(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "admin authenticated"})
}
