package handler

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed swagger/index.html swagger/v1/swagger.json
var swaggerFiles embed.FS

// MountSwagger はAPIドキュメント（swagger-ui と OpenAPI 定義）を /swagger 配下に登録する。
// 開発環境でのみ呼び出すこと。
func MountSwagger(r chi.Router) {
	sub, err := fs.Sub(swaggerFiles, "swagger")
	if err != nil {
		// 埋め込みパスはコンパイル時に固定される
		panic(err)
	}
	files := http.StripPrefix("/swagger", http.FileServer(http.FS(sub)))

	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
	r.Get("/swagger/index.html", serveSwaggerIndex(sub))
	r.Get("/swagger/v1/swagger.json", files.ServeHTTP)
}

// serveSwaggerIndex はindex.htmlを返す。
// http.FileServerは /index.html を / にリダイレクトするため直接返す。
func serveSwaggerIndex(fsys fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := fs.ReadFile(fsys, "index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(b)
	}
}
