package commands

import (
	"context"
	"fmt"

	"github.com/moriq/kabuscan/internal/external/yahoo"
	"github.com/moriq/kabuscan/internal/market"
	"github.com/moriq/kabuscan/internal/ranking"
	"github.com/moriq/kabuscan/internal/scoring"
	"github.com/moriq/kabuscan/internal/store"
	"github.com/moriq/kabuscan/internal/strategyconfig"
	"github.com/moriq/kabuscan/internal/universe"
	"github.com/moriq/kabuscan/pkg/config"
	"github.com/moriq/kabuscan/pkg/database"
	"github.com/moriq/kabuscan/pkg/httputil"
	"github.com/moriq/kabuscan/pkg/logger"
	"github.com/moriq/kabuscan/pkg/redis"
)

// app holds the wired object graph every command runs on
// ⭐ SSOT: 依存関係の組み立てはこのファイルだけ
type app struct {
	cfg      *config.Config
	strategy *strategyconfig.Config
	logger   *logger.Logger

	redis    *redis.Client
	db       *database.DB // nil without DATABASE_URL
	provider *market.Provider
	engine   *scoring.Engine
	service  *ranking.Service
}

// newApp loads config and wires the full pipeline
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	// Strategy parameters: --strategy flag beats the env var
	strategyPath := cfg.StrategyConfigPath
	if strategyFile != "" {
		strategyPath = strategyFile
	}
	strategy, err := strategyconfig.LoadOrDefault(strategyPath)
	if err != nil {
		return nil, fmt.Errorf("load strategy config: %w", err)
	}
	configHash, err := strategyconfig.Hash(strategy)
	if err != nil {
		return nil, fmt.Errorf("hash strategy config: %w", err)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := redis.NewCache(redisClient, "kabuscan")

	// The bar store is optional; scans run straight off Yahoo without it
	var db *database.DB
	var bars *store.BarRepository
	if cfg.Database.Enabled() {
		db, err = database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		bars = store.NewBarRepository(db.Pool)
		if err := bars.InitSchema(context.Background()); err != nil {
			db.Close()
			return nil, fmt.Errorf("init bar schema: %w", err)
		}
		log.Info("Connected to database")
	}

	httpClient := httputil.New(log).WithRateLimit(cfg.Yahoo.RatePerSec)
	yahooClient := yahoo.NewClient(cfg.Yahoo, httpClient, log)

	nameMap, err := universe.LoadNameMap(cfg.Yahoo.NameMapPath, log)
	if err != nil {
		return nil, fmt.Errorf("load name map: %w", err)
	}

	provider := market.NewProvider(yahooClient, cache, bars, nameMap, strategy.Universe.LookbackMo, log)
	engine := scoring.NewEngine(strategy, log)

	orch := ranking.NewOrchestrator(provider, engine, strategy, log).
		WithNames(provider).
		WithEarnings(provider)
	service := ranking.NewService(orch, ranking.NewStore(), strategy, configHash, log)

	return &app{
		cfg:      cfg,
		strategy: strategy,
		logger:   log,
		redis:    redisClient,
		db:       db,
		provider: provider,
		engine:   engine,
		service:  service,
	}, nil
}

// close releases the app's connections
func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
