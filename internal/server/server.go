package server

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/eskrenkovic/table-scheduler/internal/config"
	"github.com/eskrenkovic/table-scheduler/internal/modules/auth"
	authdomain "github.com/eskrenkovic/table-scheduler/internal/modules/auth/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	gamesession "github.com/eskrenkovic/table-scheduler/internal/modules/game-session"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/migrate-go"
	"github.com/go-chi/chi"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Server interface {
	Start() error
	Stop() error
}

var _ Server = &HTTPServer{}

// HTTPServer acts as the composition root for an application.
type HTTPServer struct {
	server *http.Server
	db     *sql.DB
	hasher *authdomain.PasswordHasher
	logger *zap.Logger
}

func NewHTTPServer(config config.Config) (Server, error) {
	baseCtx := context.Background()

	core.SetLogger(config.Logger)

	db, err := sql.Open("postgres", config.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := migrate.Run(baseCtx, db, config.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: config.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: config.Logger}
	requestValidationBehavior := core.RequestValidationBehavior{}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)
	mediator.RegisterPipelineBehavior(&requestValidationBehavior)

	// repositories

	users := auth.NewPostgresUserRepository(db)
	refreshTokenRepository := auth.NewPostgresRefreshTokenRepository(db)
	tables := table.NewPostgresTableRepository(db)
	tableRequests := table.NewPostgresTableRequestRepository(db)
	sessions := gamesession.NewPostgresSessionRepository(db)
	intents := gamesession.NewPostgresSessionIntentRepository(db)
	checkins := gamesession.NewPostgresSessionCheckinRepository(db)

	// auth

	hasher := authdomain.NewPasswordHasher(
		config.Auth.PasswordHashCost,
		config.Auth.PasswordHashWorkers,
		config.Logger,
	)

	refreshTokens := auth.NewRefreshTokenStore(refreshTokenRepository, config.Auth.RefreshTokenTTL, config.Logger)
	authenticator := auth.NewAuthenticator(
		users,
		hasher,
		authdomain.NewTokenIssuer(config.Auth.JWTSecret),
		refreshTokens,
		config.Auth.AccessTokenTTL,
		config.Logger,
	)

	// workflows

	var notifier table.Notifier = table.NopNotifier{}
	if config.Email.Enabled() {
		emailClient := core.NewEmailClient(config.Email.Host, config.Email.Username, config.Email.Password)
		notifier = table.NewEmailNotifier(emailClient, users, config.Email.Sender)
	} else {
		config.Logger.Info("e-mail server not configured, table request notifications disabled")
	}

	requestWorkflow := table.NewRequestWorkflow(tables, tableRequests, table.WithNotifier(notifier))
	lifecycle := gamesession.NewLifecycle(tables, sessions)
	intentWorkflow := gamesession.NewIntentWorkflow(sessions, intents)
	checkinWorkflow := gamesession.NewCheckinWorkflow(tables, sessions, intents, checkins)

	// handler registration

	registrations := []func() error{
		func() error { return registerAuthHandlers(authenticator, users) },
		func() error { return registerTableHandlers(tables, requestWorkflow) },
		func() error { return registerGameSessionHandlers(lifecycle, intentWorkflow, checkinWorkflow) },
	}

	for _, register := range registrations {
		if err := register(); err != nil {
			hasher.Close()
			_ = db.Close()
			return nil, err
		}
	}

	// http

	router := chi.NewRouter()
	router.Use(baseContextMiddleware(baseCtx), core.CorrelationIDHTTPMiddleware)
	routes(router, auth.AuthenticationMiddleware(authenticator))

	server := http.Server{
		Addr:    net.JoinHostPort("", strconv.Itoa(config.Port)),
		Handler: router,
	}

	return &HTTPServer{
		server: &server,
		db:     db,
		hasher: hasher,
		logger: config.Logger,
	}, nil
}

func (s *HTTPServer) Start() error {
	s.logger.Info("starting http server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop() error {
	err := s.server.Close()

	s.hasher.Close()

	if dbErr := s.db.Close(); dbErr != nil && err == nil {
		err = dbErr
	}

	_ = s.logger.Sync()

	return err
}

func baseContextMiddleware(baseCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			baseCtx := baseCtx

			if v, ok := ctx.Value(http.ServerContextKey).(*http.Server); ok {
				baseCtx = context.WithValue(baseCtx, http.ServerContextKey, v)
			}

			if v, ok := ctx.Value(http.LocalAddrContextKey).(net.Addr); ok {
				baseCtx = context.WithValue(baseCtx, http.LocalAddrContextKey, v)
			}

			if v, ok := ctx.Value(chi.RouteCtxKey).(*chi.Context); ok {
				baseCtx = context.WithValue(baseCtx, chi.RouteCtxKey, v)
			}

			next.ServeHTTP(w, r.WithContext(baseCtx))
		})
	}
}
