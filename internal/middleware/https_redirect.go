package middleware

import (
	"net"
	"net/http"
	"strings"
)

// NewHTTPSRedirectMiddleware は平文HTTPのリクエストをHTTPSへリダイレクトするミドルウェアを返す。
// TLS終端はリバースプロキシで行う前提のため、X-Forwarded-Proto: https のリクエストは通過させる。
// httpsPortが空の場合はリダイレクト先にポートを付与しない。
// メソッドとボディを維持するため307 Temporary Redirectを使用する。
// exemptPathsに一致するパス（コンテナ内ヘルスチェック等）はリダイレクトしない。
func NewHTTPSRedirectMiddleware(httpsPort string, exemptPaths ...string) func(next http.Handler) http.Handler {
	exempt := make(map[string]struct{}, len(exemptPaths))
	for _, p := range exemptPaths {
		exempt[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exempt[r.URL.Path]; ok || isSecureRequest(r) {
				next.ServeHTTP(w, r)
				return
			}

			host := r.Host
			if h, _, err := net.SplitHostPort(host); err == nil {
				host = h
			}
			if httpsPort != "" && httpsPort != "443" {
				host = net.JoinHostPort(host, httpsPort)
			}

			target := "https://" + host + r.URL.RequestURI()
			http.Redirect(w, r, target, http.StatusTemporaryRedirect)
		})
	}
}

func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
