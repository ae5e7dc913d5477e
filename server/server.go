package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ProgressiveBBS/cache"
	"ProgressiveBBS/config"
	"ProgressiveBBS/core/account"
	"ProgressiveBBS/core/auth"
	"ProgressiveBBS/core/github"
	"ProgressiveBBS/db"
	"ProgressiveBBS/logger"
	"ProgressiveBBS/metrics"
	"ProgressiveBBS/model"
	"ProgressiveBBS/repository"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// AccountService 处理器依赖的账号操作
type AccountService interface {
	Register(ctx context.Context, in account.RegisterInput) error
	Login(ctx context.Context, acct, password string) (string, error)
	ForgotPassword(ctx context.Context, in account.ResetInput) error
	ReconcileGitHub(ctx context.Context, id account.ExternalIdentity) (*account.Redirect, error)
	EditProfile(ctx context.Context, userID int64, in account.ProfileInput) error
	GetSelf(ctx context.Context, userID int64) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetPublicProfile(ctx context.Context, id int64) (*model.PublicProfile, error)
}

// OAuthProvider GitHub 授权跳转与回调换取身份
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (account.ExternalIdentity, error)
}

// TokenParser 解析登录令牌得到用户ID
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// Handler 账号相关的 HTTP 处理器
type Handler struct {
	accounts AccountService
	oauth    OAuthProvider
	tokens   TokenParser
	metrics  metrics.Recorder
}

// NewHandler rec 为 nil 时不记录指标
func NewHandler(accounts AccountService, oauth OAuthProvider, tokens TokenParser, rec metrics.Recorder) *Handler {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Handler{accounts: accounts, oauth: oauth, tokens: tokens, metrics: rec}
}

// timed 记录每个流程的处理耗时
func (h *Handler) timed(flow string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		h.metrics.RecordLatency(flow, time.Since(start))
	}
}

// NewRouter 注册全部路由，metricsHandler 为 nil 时不暴露 /metrics
func NewRouter(h *Handler, metricsHandler http.Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware, requestIDMiddleware)

	// 用户认证相关的API端点
	router.HandleFunc("/api/auth/logup", h.timed(flowRegister, h.LogupHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", h.timed(flowLogin, h.LoginHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/forgot-password", h.timed(flowForgotPassword, h.ForgotPasswordHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/github", h.GitHubRedirectHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/github/callback", h.timed(flowGitHubLogin, h.GitHubCallbackHandler)).Methods(http.MethodGet)

	// 用户资料
	router.HandleFunc("/api/user/info", h.AuthMiddleware(h.timed(flowUserInfo, h.GetUserInfoHandler))).Methods(http.MethodGet)
	router.HandleFunc("/api/user/info", h.AuthMiddleware(h.timed(flowEditProfile, h.EditUserInfoHandler))).Methods(http.MethodPost)
	router.HandleFunc("/api/user/info/{id}", h.timed(flowUserInfoByID, h.GetUserInfoByIDHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/user/{id}", h.timed(flowPublicProfile, h.GetUserHandler)).Methods(http.MethodGet)

	// 预检请求由 corsMiddleware 直接应答
	router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	if metricsHandler != nil {
		router.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}
	return router
}

// Start 连接 MySQL 和 Redis，启动 HTTP 服务，收到退出信号后优雅关闭
func Start(cfg *config.Config) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}

	gdb, err := db.ConnectGormDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.CloseGormDB()

	if err := db.InitDB(gdb); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	rdb, err := db.ConnectRedis(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer db.CloseRedis()
	logger.Info("Successfully connected to MySQL and Redis")

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	accounts := account.NewService(
		repository.NewGormUserRepository(gdb),
		repository.NewGormTopicRepository(gdb),
		cache.NewCodeCache(rdb, cfg.CodeTTL),
		auth.NewHasher(cfg.BcryptCost),
		tokens,
		account.Options{GitHubCallbackURL: cfg.GitHubCallbackURL},
	)
	oauth := github.NewClient(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.GitHubRedirectURL)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	h := NewHandler(accounts, oauth, tokens, metrics.NewCollector(reg))

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      NewRouter(h, metrics.Handler(reg)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 创建一个通道来接收操作系统信号
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", logger.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-stop:
	}
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
