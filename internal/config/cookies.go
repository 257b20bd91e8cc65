package config

import (
	"net/http"
	"time"
)

const TokenCookie = "token"

type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func NewCookies(c Config) *Cookies {
	return &Cookies{
		Domain:   c.Cookies.Domain,
		Secure:   !c.Cookies.Insecure,
		SameSite: c.SameSite(),
	}
}

// Refresh stores token in a cookie scoped to path.
func (c *Cookies) Refresh(w http.ResponseWriter, token, path string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Path:     path,
		Value:    token,
		Expires:  expires,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

func (c *Cookies) Clear(w http.ResponseWriter, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Path:     path,
		Value:    "delete",
		MaxAge:   -1,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}
