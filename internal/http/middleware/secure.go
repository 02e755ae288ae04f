package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// Secure выставляет заголовки безопасности для JSON API.
// HSTS отдаётся только в production и только на TLS-соединениях
// (в том числе за прокси с X-Forwarded-Proto: https).
func Secure(production bool) Middleware {
	s := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         !production,
	})

	return func(next http.Handler) http.Handler {
		return s.Handler(next)
	}
}
