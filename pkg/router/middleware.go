package router

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
)

// Headers is the set of security headers SecureHeaders sends.
type Headers struct {
	FrameOptions      string
	ReferrerPolicy    string
	PermissionsPolicy string

	// HSTSMaxAge in seconds. Sent only on HTTPS requests; zero disables it.
	HSTSMaxAge int

	// CSP replaces the per-request nonce policy when set.
	CSP string
}

// HeaderOption adjusts the default Headers.
type HeaderOption func(*Headers)

// WithCSP sends a fixed Content-Security-Policy and no nonce.
func WithCSP(policy string) HeaderOption {
	return func(h *Headers) { h.CSP = policy }
}

// WithHSTS sets the HSTS max-age in seconds.
func WithHSTS(maxAge int) HeaderOption {
	return func(h *Headers) { h.HSTSMaxAge = maxAge }
}

func defaultHeaders() Headers {
	return Headers{
		FrameOptions:      "DENY",
		ReferrerPolicy:    "strict-origin-when-cross-origin",
		PermissionsPolicy: "geolocation=(), microphone=(), camera=()",
		HSTSMaxAge:        365 * 24 * 60 * 60,
	}
}

// nonceDirectives make up the default policy. Inline styles and scripts
// must carry the request's nonce; the live socket may use ws or wss.
var nonceDirectives = []string{
	"default-src 'self'",
	"script-src 'self' 'nonce-%s'",
	"style-src 'self' 'nonce-%s'",
	"img-src 'self' data: https:",
	"connect-src 'self' ws: wss:",
	"font-src 'self'",
	"frame-ancestors 'none'",
	"base-uri 'self'",
	"form-action 'self'",
}

func noncePolicy(nonce string) string {
	return strings.ReplaceAll(strings.Join(nonceDirectives, "; "), "%s", nonce)
}

type cspNonceKey struct{}

// CSPNonce returns the request's nonce for inline style and script tags,
// or "" when a fixed policy is in use.
func CSPNonce(ctx context.Context) string {
	nonce, _ := ctx.Value(cspNonceKey{}).(string)
	return nonce
}

func newNonce() string {
	b := make([]byte, 16)
	rand.Read(b)
	return base64.StdEncoding.EncodeToString(b)
}

// SecureHeaders sets framing, referrer, permissions, HSTS and CSP headers.
func SecureHeaders(opts ...HeaderOption) func(http.Handler) http.Handler {
	cfg := defaultHeaders()
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", cfg.FrameOptions)
			h.Set("Referrer-Policy", cfg.ReferrerPolicy)
			h.Set("Permissions-Policy", cfg.PermissionsPolicy)
			if cfg.HSTSMaxAge > 0 && isHTTPS(r) {
				h.Set("Strict-Transport-Security", "max-age="+strconv.Itoa(cfg.HSTSMaxAge)+"; includeSubDomains")
			}

			if cfg.CSP != "" {
				h.Set("Content-Security-Policy", cfg.CSP)
				next.ServeHTTP(w, r)
				return
			}
			nonce := newNonce()
			h.Set("Content-Security-Policy", noncePolicy(nonce))
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), cspNonceKey{}, nonce)))
		})
	}
}

func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}
