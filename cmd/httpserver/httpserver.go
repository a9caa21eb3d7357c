// Package httpserver manages server creation and api routing.
package httpserver

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/go-petr/rentmates/internal/balancecache"
	"github.com/go-petr/rentmates/internal/balancedelivery"
	"github.com/go-petr/rentmates/internal/balanceservice"
	"github.com/go-petr/rentmates/internal/expensedelivery"
	"github.com/go-petr/rentmates/internal/expenserepo"
	"github.com/go-petr/rentmates/internal/expenseservice"
	"github.com/go-petr/rentmates/internal/groupdelivery"
	"github.com/go-petr/rentmates/internal/grouprepo"
	"github.com/go-petr/rentmates/internal/groupservice"
	"github.com/go-petr/rentmates/internal/middleware"
	"github.com/go-petr/rentmates/internal/sessiondelivery"
	"github.com/go-petr/rentmates/internal/sessionrepo"
	"github.com/go-petr/rentmates/internal/sessionservice"
	"github.com/go-petr/rentmates/internal/userdelivery"
	"github.com/go-petr/rentmates/internal/userrepo"
	"github.com/go-petr/rentmates/internal/userservice"
	"github.com/go-petr/rentmates/pkg/configpkg"
	"github.com/go-petr/rentmates/pkg/currencypkg"
	"github.com/go-petr/rentmates/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB      *sql.DB
	Redis   *redis.Client // nil when the balance cache is disabled
	Engine  *gin.Engine
	Config  configpkg.Config
	Metrics *middleware.Metrics
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// Close releases the connections held by the server.
func (s *Server) Close() error {
	var errs []error

	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}

	errs = append(errs, s.DB.Close())

	return errors.Join(errs...)
}

// connectRedis returns nil when the cache is disabled or unreachable.
// Balances are then computed on every request.
func connectRedis(logger zerolog.Logger, config configpkg.Config) *redis.Client {
	if config.RedisAddress == "" {
		logger.Info().Msg("balance cache disabled")
		return nil
	}

	client, err := balancecache.Connect(context.Background(), config.RedisAddress)
	if err != nil {
		logger.Warn().Err(err).Str("addr", config.RedisAddress).Msg("balance cache unavailable, running without it")
		return nil
	}

	return client
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("currency", currencypkg.ValidCurrency)
		if err != nil {
			return nil, errors.New("cannot register currency validator")
		}
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	redisClient := connectRedis(logger, config)
	cache := balancecache.New(redisClient, config.BalanceCacheTTL)
	metrics := middleware.NewMetrics()

	userRepo := userrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)
	groupRepo := grouprepo.NewRepoPGS(conn)
	expenseRepo := expenserepo.NewRepoPGS(conn)

	userService := userservice.New(userRepo)
	sessionService, err := sessionservice.New(sessionRepo, config, tokenMaker)
	if err != nil {
		return nil, errors.New("cannot initialize session service")
	}

	groupService := groupservice.New(groupRepo, userRepo, cache)
	expenseService := expenseservice.New(expenseRepo, groupRepo, cache)
	balanceService := balanceservice.New(groupRepo, expenseRepo, cache, metrics)

	userHandler := userdelivery.NewHandler(userService, sessionService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)
	groupHandler := groupdelivery.NewHandler(groupService)
	expenseHandler := expensedelivery.NewHandler(expenseService)
	balanceHandler := balancedelivery.NewHandler(balanceService)

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(metrics.Middleware())

	engine.GET("/metrics", metrics.Handler())

	engine.POST("/users", userHandler.Create)
	engine.POST("/users/login", userHandler.Login)
	engine.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.POST("/groups", groupHandler.Create)
	authRoutes.GET("/groups", groupHandler.List)
	authRoutes.GET("/groups/:id", groupHandler.Get)
	authRoutes.DELETE("/groups/:id", groupHandler.Delete)
	authRoutes.POST("/groups/:id/members", groupHandler.AddMember)

	authRoutes.POST("/groups/:id/expenses", expenseHandler.Create)
	authRoutes.GET("/groups/:id/expenses", expenseHandler.List)
	authRoutes.PUT("/expenses/:id", expenseHandler.Update)
	authRoutes.DELETE("/expenses/:id", expenseHandler.Delete)

	authRoutes.GET("/groups/:id/balances", balanceHandler.Group)
	authRoutes.GET("/groups/:id/balances/me", balanceHandler.Me)

	server := &Server{
		DB:      conn,
		Redis:   redisClient,
		Engine:  engine,
		Config:  config,
		Metrics: metrics,
	}

	return server, nil
}
