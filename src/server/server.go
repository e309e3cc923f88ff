package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lost-woods/randtest/src/api"
	"github.com/lost-woods/randtest/src/battery"
	"github.com/lost-woods/randtest/src/logger"
)

const (
	// DefaultMaxBits caps sequences accepted over HTTP. Autocorrelation is
	// quadratic in the length, so this is far below the CLI limit.
	DefaultMaxBits = 1 << 17
	DefaultTimeout = 30 * time.Second
)

type Config struct {
	Port   string
	APIKey string

	MaxBits int
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Port:    "777",
		MaxBits: DefaultMaxBits,
		Timeout: DefaultTimeout,
	}
}

type Server struct {
	cfg    Config
	router *gin.Engine
	log    *zap.SugaredLogger
}

// New builds the router. The battery limit is lowered to cfg.MaxBits when
// that is the smaller of the two.
func New(cfg Config, bcfg battery.Config, log *zap.SugaredLogger) *Server {
	if cfg.MaxBits <= 0 {
		cfg.MaxBits = DefaultMaxBits
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if bcfg.MaxBits <= 0 || bcfg.MaxBits > cfg.MaxBits {
		bcfg.MaxBits = cfg.MaxBits
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.Middleware(log))

	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{api.APIKeyHeader, "Accept", "Content-Type"},
		AllowAllOrigins:  true,
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(api.RequireAPIKey(cfg.APIKey))

	handlers := api.NewHandlers(battery.New(bcfg, log), bcfg.MaxBits, cfg.Timeout, log)
	router.POST("/battery", handlers.RunBattery)
	router.GET("/health", handlers.Health)

	return &Server{cfg: cfg, router: router, log: log}
}

func (s *Server) Handler() *gin.Engine { return s.router }

func (s *Server) Run() error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.cfg.Timeout,
	}
	s.log.Infow("listening", "port", s.cfg.Port, "max_bits", s.cfg.MaxBits, "timeout", s.cfg.Timeout)
	return srv.ListenAndServe()
}
