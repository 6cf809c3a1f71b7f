package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"foodgram/internal/common/pagination"
	"foodgram/internal/config"
	pgRepo "foodgram/internal/infra/adapter/persistence/postgres"
	"foodgram/internal/infra/db"
	"foodgram/internal/infra/shortlink"
	"foodgram/internal/infra/tokenstore"
	"foodgram/internal/observability/logging"
	"foodgram/internal/observability/metrics"
	"foodgram/internal/observability/tracing"
	"foodgram/internal/resilience/circuitbreaker"
	authservice "foodgram/internal/service/auth"

	catalogUC "foodgram/internal/usecase/catalog"
	recipeUC "foodgram/internal/usecase/recipe"
	shoppingUC "foodgram/internal/usecase/shopping"
	userUC "foodgram/internal/usecase/user"

	hhttp "foodgram/internal/handler/http"
	hauth "foodgram/internal/handler/http/auth"
	hcatalog "foodgram/internal/handler/http/catalog"
	"foodgram/internal/handler/http/middleware"
	hrecipe "foodgram/internal/handler/http/recipe"
	"foodgram/internal/handler/http/requestid"
	hshopping "foodgram/internal/handler/http/shopping"
	huser "foodgram/internal/handler/http/user"

	_ "foodgram/docs" // swagger docs
)

// @title           Foodgram API
// @version         1.0
// @description     レシピ共有サービス Foodgram の REST API
// @description     レシピ、タグ、材料、お気に入り、買い物リスト、購読を扱います。

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey TokenAuth
// @in header
// @name Authorization
// @description "Token {token}" または "Bearer {token}" 形式で指定してください。

// maxBodyBytes leaves room for base64-encoded recipe images and avatars.
const maxBodyBytes = 10 << 20

// requestTimeout bounds every API request.
const requestTimeout = 30 * time.Second

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.LoadAppConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	shutdownTracing := tracing.Init("foodgram-api", cfg.Version, cfg.SampleRatio())

	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	components, err := setupServer(logger, cfg, database)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}
	defer components.Close(logger)

	runServer(logger, cfg, components)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("failed to shut down tracing", slog.Any("error", err))
	}
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// ServerComponents holds what the server needs at runtime and at shutdown.
type ServerComponents struct {
	Handler  http.Handler
	Database *sql.DB
	closers  []func() error
}

// Close releases the external clients opened by setupServer.
func (c *ServerComponents) Close(logger *slog.Logger) {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			logger.Error("failed to close component", slog.Any("error", err))
		}
	}
}

// setupServer builds repositories, services and handlers and wraps them in the middleware chain.
func setupServer(logger *slog.Logger, cfg *config.AppConfig, database *sql.DB) (*ServerComponents, error) {
	components := &ServerComponents{Database: database}

	// Redis が未設定ならプロセス内の失効リストを使う
	var (
		store      authservice.RevocationStore
		revocation hhttp.Pinger
	)
	if cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := tokenstore.NewRedisClient(ctx, cfg.Redis.URL)
		cancel()
		if err != nil {
			return nil, err
		}
		components.closers = append(components.closers, client.Close)
		redisStore := tokenstore.NewRedisStore(client)
		store, revocation = redisStore, redisStore
		logger.Info("token revocation: redis store")
	} else {
		store = tokenstore.NewMemoryStore()
		logger.Warn("token revocation: in-memory store, logouts are lost on restart")
	}

	codec, err := shortlink.New(cfg.ShortLink.Alphabet, cfg.ShortLink.MinLength)
	if err != nil {
		return nil, err
	}

	users := pgRepo.NewUserRepo(database)
	follows := pgRepo.NewFollowRepo(database)
	recipes := pgRepo.NewRecipeRepo(database)
	tags := pgRepo.NewTagRepo(database)
	ingredients := pgRepo.NewIngredientRepo(database)
	favorites := pgRepo.NewFavoriteRepo(database)
	cart := pgRepo.NewCartRepo(database, circuitbreaker.NewDB(database))

	authSvc := authservice.NewService(users, store, []byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL)
	userSvc := &userUC.Service{Users: users, Follows: follows, Recipes: recipes}
	recipeSvc := &recipeUC.Service{
		Recipes:     recipes,
		Tags:        tags,
		Ingredients: ingredients,
		Users:       users,
		Follows:     follows,
		Favorites:   favorites,
		Cart:        cart,
		Links:       codec,
		BaseURL:     cfg.PublicBaseURL,
	}
	tagSvc := &catalogUC.TagService{Repo: tags}
	ingredientSvc := &catalogUC.IngredientService{Repo: ingredients}
	aggregator := &shoppingUC.Aggregator{Repo: cart}

	proxyConfig, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		return nil, err
	}
	authLimiter := middleware.NewIPRateLimiter("auth",
		float64(cfg.Auth.RateLimitRPS), cfg.Auth.RateLimitBurst, middleware.NewIPExtractor(proxyConfig))
	logger.Info("auth rate limiting initialized",
		slog.Int("rps", cfg.Auth.RateLimitRPS),
		slog.Int("burst", cfg.Auth.RateLimitBurst),
		slog.Bool("trusted_proxy", proxyConfig.Enabled))

	paginationCfg := pagination.LoadFromEnv()

	mux := http.NewServeMux()

	// 認証不要のエンドポイント
	mux.Handle("GET /health", &hhttp.HealthHandler{DB: database, Revocation: revocation, Version: cfg.Version})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	mux.Handle("POST /api/auth/token/login/{$}", authLimiter.Middleware(hauth.LoginHandler{Svc: authSvc}))
	mux.Handle("POST /api/auth/token/logout/{$}", authLimiter.Middleware(hauth.LogoutHandler{Svc: authSvc}))

	huser.Register(mux, &huser.Handler{Svc: userSvc, PaginationCfg: paginationCfg, Logger: logger})
	hcatalog.Register(mux, tagSvc, ingredientSvc)
	// download_shopping_cart は /api/recipes/{id}/ より具体的なパターンなので先に解決される
	hshopping.Register(mux, &hshopping.DownloadHandler{Builder: aggregator, Logger: logger})
	hrecipe.Register(mux, &hrecipe.Handler{Svc: recipeSvc, PaginationCfg: paginationCfg, Logger: logger})

	components.Handler = applyMiddleware(logger, mux, authSvc)
	return components, nil
}

// applyMiddleware wraps the handler with the middleware chain.
// Order (outermost first): Request ID → Tracing → Recovery → Logging → Metrics →
// Security headers → Input validation → Body limit → Timeout → Trailing slash →
// Authentication.
func applyMiddleware(logger *slog.Logger, handler http.Handler, parser hauth.TokenParser) http.Handler {
	chain := handler

	// 内側から外側へ順に適用
	chain = hauth.Authenticate(parser)(chain)
	chain = hhttp.TrailingSlash(chain)
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.LimitRequestBody(maxBodyBytes)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.SecurityHeaders(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// collectPoolStats copies sql.DBStats into the pool gauges until ctx is done.
func collectPoolStats(ctx context.Context, database *sql.DB, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		metrics.UpdateDBConnectionStats(database.Stats())
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// runServer starts the HTTP server and blocks until SIGINT/SIGTERM, then shuts down gracefully.
func runServer(logger *slog.Logger, cfg *config.AppConfig, components *ServerComponents) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go collectPoolStats(ctx, components.Database, 15*time.Second)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris 対策
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
