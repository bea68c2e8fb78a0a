package session

import (
	"net/http"
	"time"
)

// CookieName is the contract with the client: the session token always
// travels in this cookie.
const CookieName = "sessionId"

// SetCookie issues the session cookie to the client. The cookie expiry
// matches the session's so the browser drops it when the server would.
func SetCookie(w http.ResponseWriter, sessionID string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
	})
}

// ClearCookie removes the session cookie from the client.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
