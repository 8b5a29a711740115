package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"financehub/internal/core"
	"financehub/internal/log"
	"financehub/internal/middleware/ratelimit"
	"financehub/internal/middleware/security"
	"financehub/internal/middleware/trace"

	"github.com/shopspring/decimal"
)

// Ledger is the set of ledger operations the API exposes.
type Ledger interface {
	CreateAccount(ctx context.Context, in core.NewAccount) (core.Account, error)
	Account(ctx context.Context, id int64) (core.Account, error)
	Accounts(ctx context.Context) ([]core.Account, error)
	DeleteAccount(ctx context.Context, id int64) error

	CreateTransaction(ctx context.Context, in core.NewTransaction) (core.Transaction, error)
	Transactions(ctx context.Context, limit int) ([]core.Transaction, error)
	TransactionsByAccount(ctx context.Context, accountID int64) ([]core.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error

	CreateInvestment(ctx context.Context, in core.NewInvestment) (core.Investment, error)
	Investments(ctx context.Context) ([]core.Investment, error)
	DeleteInvestment(ctx context.Context, id int64) error

	CreateGoal(ctx context.Context, in core.NewGoal) (core.Goal, error)
	Goals(ctx context.Context) ([]core.Goal, error)
	UpdateGoalAmount(ctx context.Context, id int64, amount decimal.Decimal) (core.Goal, error)
	DeleteGoal(ctx context.Context, id int64) error

	Dashboard(ctx context.Context) (core.Dashboard, error)
	CategoryStats(ctx context.Context) ([]core.CategoryStat, error)
	Trend(ctx context.Context) (core.Trend, error)

	Ping(ctx context.Context) error
}

// Options configures the middleware chain.
type Options struct {
	Logger             *log.Logger
	CORSAllowedOrigins []string
	RateLimitPerMinute int
	RequestTimeout     time.Duration
}

type Server struct {
	http.Server
	ledger Ledger
	logger *log.Logger

	rateLimiter     *ratelimit.Limiter
	detector        *security.Detector
	traceMiddleware *trace.Middleware

	started      time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, ledger Ledger, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if len(opts.CORSAllowedOrigins) == 0 {
		opts.CORSAllowedOrigins = []string{"*"}
	}

	s := &Server{
		ledger:      ledger,
		logger:      opts.Logger.WithComponent(log.ComponentHTTP),
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		detector:    security.NewDetector(opts.Logger),
		started:     time.Now(),
	}
	s.traceMiddleware = trace.NewMiddleware(opts.Logger, s.detector.ExtractClientIP)

	api := http.NewServeMux()
	api.HandleFunc("GET /api/dashboard", s.handleDashboard)

	api.HandleFunc("GET /api/conti", s.handleListAccounts)
	api.HandleFunc("POST /api/conti", s.handleCreateAccount)
	api.HandleFunc("GET /api/conti/{id}", s.handleGetAccount)
	api.HandleFunc("DELETE /api/conti/{id}", s.handleDeleteAccount)

	api.HandleFunc("GET /api/transazioni", s.handleListTransactions)
	api.HandleFunc("POST /api/transazioni", s.handleCreateTransaction)
	api.HandleFunc("GET /api/transazioni/conto/{id}", s.handleAccountTransactions)
	api.HandleFunc("DELETE /api/transazioni/{id}", s.handleDeleteTransaction)
	api.HandleFunc("GET /api/transazioni/stats", s.handleCategoryStats)
	api.HandleFunc("GET /api/transazioni/chart", s.handleTrendChart)

	api.HandleFunc("GET /api/investimenti", s.handleListInvestments)
	api.HandleFunc("POST /api/investimenti", s.handleCreateInvestment)
	api.HandleFunc("DELETE /api/investimenti/{id}", s.handleDeleteInvestment)

	api.HandleFunc("GET /api/obiettivi", s.handleListGoals)
	api.HandleFunc("POST /api/obiettivi", s.handleCreateGoal)
	api.HandleFunc("PUT /api/obiettivi/{id}", s.handleUpdateGoal)
	api.HandleFunc("DELETE /api/obiettivi/{id}", s.handleDeleteGoal)

	limited := s.rateLimiter.Middleware(s.detector.ExtractClientIP, func(w http.ResponseWriter, r *http.Request) {
		s.logger.WarnContext(r.Context(), "Rate limit exceeded",
			log.FieldClientIP, s.detector.ExtractClientIP(r),
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)
		TooManyRequestsError("Troppe richieste, riprova più tardi").Write(w)
	})
	timeoutBody := `{"detail":"Timeout della richiesta"}`

	root := http.NewServeMux()
	root.Handle("/api/", limited(http.TimeoutHandler(api, opts.RequestTimeout, timeoutBody)))
	root.HandleFunc("GET /healthz", s.handleHealth)
	root.HandleFunc("GET /readyz", s.handleReady)

	var handler http.Handler = root
	handler = security.NewCORS(security.CORSConfig{AllowedOrigins: opts.CORSAllowedOrigins}).Middleware(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.detector.Middleware(handler)
	handler = s.traceMiddleware.Middleware(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       opts.RequestTimeout,
		WriteTimeout:      opts.RequestTimeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	return s
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
