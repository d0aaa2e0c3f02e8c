package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mixin_wallet/internal/app/port"
	"mixin_wallet/internal/app/service"
	"mixin_wallet/internal/client"
	"mixin_wallet/internal/domain/entity"
	"mixin_wallet/internal/infrastructure/bridge"
	"mixin_wallet/internal/infrastructure/configloader"
	"mixin_wallet/internal/infrastructure/restapi"
	"mixin_wallet/internal/infrastructure/state"
	"mixin_wallet/internal/infrastructure/tokenstore"
	"mixin_wallet/internal/pkg/logger"
	"mixin_wallet/internal/pkg/metrics"
	"mixin_wallet/internal/pkg/mixinuri"
	"mixin_wallet/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

const defaultConfigPath = "config/config.yml"

type closableTokenStore interface {
	port.TokenStore
	Close() error
}

func main() {
	cfgPath := utils.GetEnv("CONFIG_PATH", defaultConfigPath)
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration %s: %v\n", cfgPath, err)
		os.Exit(1)
	}

	zapLogger, err := logger.NewZap(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	logger.InitZap(zapLogger, cfg.Logging.Level)
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewSlogAdapter()
	logger.Info("Mixin wallet service starting", "config", cfgPath)

	metrics.MustRegisterMetrics()

	mixinClient := client.NewMixinClient(
		cfg.Mixin.BaseURL,
		time.Duration(cfg.Mixin.RequestTimeoutMillis)*time.Millisecond,
		zapLogger.Named("MixinAPIClient"),
		client.WithRateLimit(cfg.Mixin.RateLimitPerSecond),
		client.WithOutputsLimit(cfg.Mixin.OutputsLimit),
	)

	var tokens closableTokenStore
	if cfg.Session.InMemory {
		tokens = tokenstore.NewMemoryStore()
		logger.Info("Session token kept in memory only")
	} else {
		tokens, err = tokenstore.NewBadgerStore(cfg.Session.TokenStoreDir, appLogger.With("component", "tokenstore"))
		if err != nil {
			logger.Fatal("Failed to open token store", "error", err)
		}
	}
	defer tokens.Close()

	hostBridge := bridge.Detect(entity.HostEnvironment{
		UserAgent:            cfg.Host.UserAgent,
		WebkitMessageHandler: cfg.Host.WebkitMessageHandler,
		GlobalContext:        cfg.Host.GlobalContext,
		GlobalContextGetter:  cfg.Host.GlobalContextGetter,
	})
	logger.Info("Host bridge detected", "bridge", hostBridge.String())

	priceCache := service.NewPriceCacheService(
		mixinClient,
		state.NewValue(entity.PriceCache{}),
		appLogger.With("component", "prices"),
	)
	valuator := service.NewValuator(
		priceCache,
		cfg.Portfolio.BenchmarkAssetID,
		cfg.Portfolio.ValuationConcurrency,
		appLogger.With("component", "valuation"),
	)
	portfolioService := service.NewPortfolioService(
		mixinClient,
		priceCache,
		valuator,
		state.NewValue[*entity.PortfolioSnapshot](nil),
		appLogger.With("component", "portfolio"),
		service.WithHostBridge(hostBridge),
	)
	stopExport := portfolioService.ExportSnapshots()
	defer stopExport()
	sessionService := service.NewSessionService(
		mixinClient,
		portfolioService,
		tokens,
		cfg.Session.TokenKey,
		state.NewValue(entity.Session{}),
		appLogger.With("component", "session"),
	)
	paymentService := service.NewPaymentService(
		utils.NewSymbolTable(cfg.Assets),
		mixinuri.NewBuilder(cfg.App.BotID, cfg.App.AppURL, cfg.App.PayBaseURL, cfg.App.ShareScheme),
		appLogger.With("component", "payments"),
	)

	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 30*time.Second)
	if err := sessionService.Restore(restoreCtx); err != nil {
		logger.Warn("Failed to restore persisted session", "error", err)
	}
	cancelRestore()

	router := restapi.SetupRouter(
		restapi.NewSessionHandler(sessionService, appLogger),
		restapi.NewPortfolioHandler(portfolioService, sessionService, priceCache, appLogger),
		restapi.NewPaymentHandler(paymentService, appLogger),
		restapi.RouterOptions{
			SwaggerEnabled:  cfg.Swagger.Enabled,
			SwaggerSpecFile: cfg.Swagger.SpecFile,
			EnablePprof:     cfg.Server.EnablePprof,
		},
		zapLogger.Named("HTTP"),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start HTTP server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	sessionService.Wait()
	logger.Info("Mixin wallet service stopped")
}
