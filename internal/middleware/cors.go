package middleware

import "net/http"

const defaultAllowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"

// NewCORSMiddleware は任意のオリジン・メソッド・ヘッダーを許可するCORSミドルウェアを返す。
// 認証はCookieではなくAuthorizationヘッダーで行うため、ワイルドカード(*)を使用する。
// プリフライトで要求されたメソッドとヘッダーはそのまま許可として返す。
// OPTIONSプリフライトリクエストには204で応答し、後続のハンドラーには渡さない。
func NewCORSMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", r.Header.Get("Access-Control-Request-Method"))
				if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
					h.Set("Access-Control-Allow-Headers", reqHeaders)
				} else {
					h.Set("Access-Control-Allow-Headers", "*")
				}
				h.Set("Access-Control-Max-Age", "86400")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", defaultAllowedMethods)
				h.Set("Access-Control-Allow-Headers", "*")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			h.Set("Access-Control-Expose-Headers", "Retry-After, WWW-Authenticate")
			next.ServeHTTP(w, r)
		})
	}
}
