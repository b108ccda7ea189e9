package storefront

import (
	"net/http"
)

// SessionCookieName is the browsing session cookie.
const SessionCookieName = "wardrobe_session"

// sessionCookieMaxAge keeps carts alive for 30 days of inactivity.
const sessionCookieMaxAge = 30 * 24 * 60 * 60

// GetSessionIDFromCookie retrieves the session ID from the session cookie.
// Returns empty string if the cookie is not present.
func GetSessionIDFromCookie(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetSessionCookie sets the session cookie with appropriate security settings.
func SetSessionCookie(w http.ResponseWriter, sessionID string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
