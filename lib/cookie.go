package lib

import (
	"burnshop_server/config"
	"net/http"
	"time"
)

const (
	AccessCookieName = "burnshop_access"
	CSRFCookieName   = "csrf"
	CSRFHeaderName   = "X-CSRF-Token"
)

// cookieBase returns the attributes shared by every cookie the server sets
func cookieBase(name string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	}

	if config.IsProduction() {
		// Required for cross-subdomain cookies (www <-> api)
		cookie.SameSite = http.SameSiteNoneMode
		cookie.Secure = true
		cookie.Domain = config.GetConfig().Server.CookieDomain
	}

	return cookie
}

// SetCookie sets a secure, HttpOnly cookie for authentication/session usage
func SetCookie(key, val string, expiry time.Time, w http.ResponseWriter) {
	cookie := cookieBase(key)
	cookie.Value = val
	cookie.Expires = expiry
	cookie.HttpOnly = true

	http.SetCookie(w, cookie)
}

func GetCookieValue(key string, r *http.Request) (string, error) {
	cookie, err := r.Cookie(key)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

// ClearCookie removes the cookie from the browser
func ClearCookie(key string, w http.ResponseWriter) {
	cookie := cookieBase(key)
	cookie.Expires = time.Now().Add(-time.Hour)
	cookie.MaxAge = -1
	cookie.HttpOnly = true

	http.SetCookie(w, cookie)
}

// SetCSRFCookie sets a CSRF token cookie that must be readable by JavaScript
func SetCSRFCookie(val string, expiry time.Time, w http.ResponseWriter) {
	cookie := cookieBase(CSRFCookieName)
	cookie.Value = val
	cookie.Expires = expiry
	cookie.MaxAge = int(time.Until(expiry).Seconds())

	http.SetCookie(w, cookie)
}
