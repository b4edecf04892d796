package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hestia/config"
	"hestia/core/state"
	"hestia/native/order"
	"hestia/native/protocol"
	"hestia/native/restaurant"
	"hestia/native/reward"
	"hestia/observability"
	"hestia/observability/logging"
	"hestia/storage"
	statetrie "hestia/storage/trie"
)

// stateRootKey stores the last committed state root in the raw database so
// restarts resume from persisted state.
var stateRootKey = []byte("hestia-state-root")

func main() {
	configFile := flag.String("config", "./hestia.toml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	env := strings.TrimSpace(os.Getenv("HESTIA_ENV"))
	if env == "" {
		env = cfg.Environment
	}
	logger := logging.Setup("hestiad", env, logging.Options{
		Directory:  cfg.LogDirectory,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})

	db, err := storage.NewLevelDB(cfg.DataDir)
	if err != nil {
		panic(fmt.Sprintf("Failed to open database: %v", err))
	}
	defer db.Close()

	var root []byte
	if has, _ := db.Has(stateRootKey); has {
		if root, err = db.Get(stateRootKey); err != nil {
			panic(fmt.Sprintf("Failed to read state root: %v", err))
		}
	}
	tr, err := statetrie.NewTrie(db, root)
	if err != nil {
		panic(fmt.Sprintf("Failed to open state trie: %v", err))
	}
	manager := state.NewManager(tr)

	for _, token := range cfg.Tokens {
		if manager.TokenExists(token.Symbol) {
			continue
		}
		if err := manager.RegisterToken(token.Symbol, token.Name, token.Decimals); err != nil {
			panic(fmt.Sprintf("Failed to register token %s: %v", token.Symbol, err))
		}
		logger.Info("registered settlement currency",
			slog.String("currency", strings.ToUpper(strings.TrimSpace(token.Symbol))),
			slog.Int("decimals", int(token.Decimals)))
	}

	recorder := observability.NewEventRecorder(nil, logger)

	protocolEngine := protocol.NewEngine(manager)
	protocolEngine.SetEmitter(recorder)

	restaurantEngine := restaurant.NewEngine(manager)
	restaurantEngine.SetEmitter(recorder)

	registry := reward.NewRegistry(manager)
	rewardEngine := reward.NewEngine(manager, registry)
	rewardEngine.SetEmitter(recorder)
	rewardEngine.SetGateView(protocolEngine)

	orderEngine := order.NewEngine(manager)
	orderEngine.SetEmitter(recorder)
	orderEngine.SetRewardService(rewardEngine)

	switch err := protocolEngine.Init(protocol.RootAdmin); {
	case err == nil:
		logger.Info("protocol singletons initialised")
	case errors.Is(err, protocol.ErrAlreadyInitialized):
	default:
		panic(fmt.Sprintf("Failed to initialise protocol: %v", err))
	}

	commit := func() {
		newRoot, err := manager.Commit(0)
		if err != nil {
			logger.Error("state commit failed", slog.Any("error", err))
			return
		}
		if err := db.Put(stateRootKey, newRoot.Bytes()); err != nil {
			logger.Error("state root write failed", slog.Any("error", err))
			return
		}
		logger.Info("state committed", slog.String("root", newRoot.Hex()))
	}
	commit()

	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddress,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server terminated", slog.Any("error", err))
		}
	}()

	logger.Info("hestiad initialised and running",
		slog.String("metrics", cfg.MetricsAddress),
		slog.String("data_dir", cfg.DataDir))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	commit()
	_ = metricsSrv.Close()
}
