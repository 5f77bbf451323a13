package handlers

import (
	"net/http"
	"time"

	"github.com/username/networth/src/logger"
	"github.com/username/networth/src/security"
	"github.com/username/networth/src/services"
	"github.com/username/networth/src/store"
)

// RouterOptions carries everything NewRouter wires into the handler tree.
type RouterOptions struct {
	Store        *store.Store
	Summaries    services.SummaryService
	AdminAuth    *security.AdminAuth
	SnapshotPath string

	AllowedOrigins    []string
	RateLimitInterval time.Duration
	RateLimitBurst    int
}

// NewRouter builds the API mux wrapped in CORS, rate limiting and request logging.
func NewRouter(opts RouterOptions) http.Handler {
	userHandler := NewUserHandler(opts.Store)
	portfolioHandler := NewPortfolioHandler(opts.Summaries)
	adminHandler := NewAdminHandler(opts.Store, opts.Summaries, opts.AdminAuth, opts.SnapshotPath)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", HandleIndex)

	mux.HandleFunc("POST /api/add_user", userHandler.HandleAddUser)
	mux.HandleFunc("GET /api/get_user", userHandler.HandleGetUser)

	mux.HandleFunc("POST /api/update_user_portfolio", portfolioHandler.HandleUpdatePortfolio)
	mux.HandleFunc("GET /api/get_net_worth", portfolioHandler.HandleGetNetWorth)
	mux.HandleFunc("GET /api/get_assets", portfolioHandler.HandleGetAssets)
	mux.HandleFunc("GET /api/get_liabilities", portfolioHandler.HandleGetLiabilities)

	mux.HandleFunc("POST /api/admin/snapshot", adminHandler.AdminMiddleware(adminHandler.HandleSaveSnapshot))
	mux.HandleFunc("POST /api/admin/clear", adminHandler.AdminMiddleware(adminHandler.HandleClear))

	interval, burst := opts.RateLimitInterval, opts.RateLimitBurst
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	if burst <= 0 {
		burst = 30
	}

	logger.L.Info("Applying global middleware...")
	cors := NewCORSMiddleware(opts.AllowedOrigins)
	rateLimit := NewRateLimitMiddleware(interval, burst)
	return cors(rateLimit(RequestLogMiddleware(mux)))
}

// HandleIndex is the liveness probe.
func HandleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("WebApp Index"))
}
