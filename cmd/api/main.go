package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"triplog/internal/auth"
	"triplog/internal/db"
	"triplog/internal/ratelimiter"
	"triplog/internal/shell"
	"triplog/internal/store"
	"triplog/internal/supabase"
)

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	defaultRequests := 20
	defaultEnabled := true

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil {
			requestsPerTimeFrame = parsedVal
		} else {
			log.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			log.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            time.Minute,
		Enabled:              enabled,
	}
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

var version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on the environment")
	}

	cfg := config{
		addr:        os.Getenv("ADDR"),
		env:         os.Getenv("ENV"),
		frontendURL: os.Getenv("FRONTEND_URL"),
		supabase: supabaseConfig{
			url:       os.Getenv("SUPABASE_URL"),
			anonKey:   os.Getenv("SUPABASE_ANON_KEY"),
			jwtSecret: os.Getenv("SUPABASE_JWT_SECRET"),
		},
		storageBackend: os.Getenv("STORAGE_BACKEND"),
		db: dbConfig{
			addr:         os.Getenv("DB_ADDR"),
			maxOpenConns: envInt("DB_MAX_OPEN_CONNS", 30),
			maxIdleConns: envInt("DB_MAX_IDLE_CONNS", 30),
			maxIdleTime:  envOr("DB_MAX_IDLE_TIME", "15m"),
		},
		rateLimiter: LoadRateLimiterConfig(),
	}
	if cfg.addr == "" {
		cfg.addr = ":8080"
	}

	// The two backend endpoint values are required; without them neither
	// table access nor auth can work.
	if cfg.supabase.url == "" || cfg.supabase.anonKey == "" {
		log.Fatalf("SUPABASE_URL and SUPABASE_ANON_KEY must be set")
	}

	logger, err := NewLogger()
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	client, err := supabase.New(supabase.Config{
		URL:    cfg.supabase.url,
		APIKey: cfg.supabase.anonKey,
	})
	if err != nil {
		logger.Fatal(err)
	}

	var st store.Storage
	switch cfg.storageBackend {
	case "postgres":
		pool, err := db.New(
			cfg.db.addr,
			cfg.db.maxOpenConns,
			cfg.db.maxIdleConns,
			cfg.db.maxIdleTime,
		)
		if err != nil {
			logger.Fatal(err)
		}
		defer pool.Close()
		logger.Info("database connection pool established")
		st = store.NewPostgresStorage(pool)
	default:
		logger.Infow("using hosted backend", "url", cfg.supabase.url)
		st = store.NewSupabaseStorage(client)
	}

	authenticator := auth.NewAuthenticator(cfg.supabase.jwtSecret, client.Auth())

	shells := shell.NewRegistry(func() *shell.Shell {
		return shell.New(st, auth.NewWatcher(), logger)
	})
	defer shells.Close()

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	app := &application{
		config:        cfg,
		store:         st,
		logger:        logger,
		authenticator: authenticator,
		gotrue:        client.Auth(),
		shells:        shells,
		rateLimiter:   rateLimiter,
	}

	mux := app.mount()
	logger.Fatal(app.run(mux))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid %s, defaulting to %d", key, fallback)
		return fallback
	}
	return n
}
