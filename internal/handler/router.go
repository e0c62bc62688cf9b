package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/quizwizards/quizapi/internal/clientconfig"
	"github.com/quizwizards/quizapi/internal/metrics"
	"github.com/quizwizards/quizapi/internal/middleware"
)

// healthPath はHTTPSリダイレクトの対象外とするヘルスチェックのパス。
const healthPath = "/health"

// QuizServiceWithOwner はクイズの操作とテイカー単位の一覧を提供するサービス。
type QuizServiceWithOwner interface {
	QuizServiceInterface
	TakerQuizLister
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger         *slog.Logger
	TokenValidator middleware.TokenValidator
	RateLimiter    *middleware.RateLimiter
	Metrics        metrics.MetricsCollector
	MetricsHandler http.Handler // nilの場合 /metrics を公開しない

	// 環境
	IsDevelopment bool
	HTTPSRedirect bool
	HTTPSPort     string
	// TrustProxyHeaders がfalseの場合、レート制限のキーはRemoteAddrのみから決まる
	TrustProxyHeaders bool
	ClientConfig      clientconfig.Config
	HealthChecker     Pinger

	// サービス
	LoginService    LoginServiceInterface
	TakerService    TakerServiceInterface
	TopicService    TopicServiceInterface
	QuizService     QuizServiceWithOwner
	QuestionService QuestionServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	HTTPSRedirect → Recovery → (TrustProxyHeaders時のみ) RealIP → Logging → Metrics → SecurityHeaders → CORS
//	→ (認証ルートのみ) BearerAuth → RateLimit(General) → ハンドラー
//
// CORSのプリフライトはルートに到達する前に204で応答する。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	collector := deps.Metrics
	if collector == nil {
		collector = metrics.NopCollector{}
	}

	r := chi.NewRouter()

	if deps.HTTPSRedirect {
		r.Use(middleware.NewHTTPSRedirectMiddleware(deps.HTTPSPort, healthPath))
	}
	r.Use(middleware.NewRecoveryMiddleware(logger))
	if deps.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewMetricsMiddleware(collector))
	r.Use(middleware.NewSecurityHeadersMiddleware(deps.HTTPSRedirect))
	r.Use(middleware.NewCORSMiddleware())

	authHandler := NewAuthHandler(deps.LoginService, collector)
	takerHandler := NewTakerHandler(deps.TakerService, deps.QuizService)
	topicHandler := NewTopicHandler(deps.TopicService)
	quizHandler := NewQuizHandler(deps.QuizService, deps.QuestionService)
	questionHandler := NewQuestionHandler(deps.QuestionService, deps.QuizService)

	// --- 認証不要のルート ---

	r.Method(http.MethodGet, healthPath, NewHealthHandler(deps.HealthChecker))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}
	r.Get("/client-config", NewClientConfigHandler(deps.ClientConfig))

	r.With(deps.RateLimiter.LoginMiddleware()).Post("/api/auth/login", authHandler.Login)

	if deps.IsDevelopment {
		MountSwagger(r)
	}

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: BearerAuth → RateLimit(General)
	authenticated := func(r chi.Router) {
		r.Use(middleware.NewBearerAuthMiddleware(deps.TokenValidator, collector))
		r.Use(deps.RateLimiter.GeneralMiddleware())
	}

	r.Route("/api/takers", func(r chi.Router) {
		// POST /api/takers - テイカー登録のみ認証不要（ログインと同じIP単位の制限）
		r.With(deps.RateLimiter.LoginMiddleware()).Post("/", takerHandler.Register)

		r.Group(func(r chi.Router) {
			authenticated(r)
			r.Get("/", takerHandler.List)
			r.Get("/username/{username}", takerHandler.GetByUsername)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", takerHandler.Get)
				r.Put("/", takerHandler.Update)
				r.Delete("/", takerHandler.Delete)
				r.Get("/quizzes", takerHandler.ListQuizzes)
			})
		})
	})

	r.Group(func(r chi.Router) {
		authenticated(r)

		r.Route("/api/topics", func(r chi.Router) {
			r.Get("/", topicHandler.List)
			r.Post("/", topicHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", topicHandler.Get)
				r.Put("/", topicHandler.Update)
				r.Delete("/", topicHandler.Delete)
			})
		})

		r.Route("/api/quizzes", func(r chi.Router) {
			r.Get("/", quizHandler.List)
			r.Post("/", quizHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", quizHandler.Get)
				r.Put("/", quizHandler.Update)
				r.Delete("/", quizHandler.Delete)
				r.Get("/questions", quizHandler.ListQuestions)
			})
		})

		r.Route("/api/questions", func(r chi.Router) {
			r.Get("/", questionHandler.List)
			r.Post("/", questionHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", questionHandler.Get)
				r.Put("/", questionHandler.Update)
				r.Delete("/", questionHandler.Delete)
			})
		})
	})

	return r
}
