package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"mixin_wallet/internal/app/port"
	"mixin_wallet/internal/domain/entity"
	"mixin_wallet/internal/infrastructure/bridge"
	"mixin_wallet/internal/infrastructure/state"
	"mixin_wallet/internal/pkg/metrics"
)

// PortfolioServiceImpl implements port.PortfolioService.
type PortfolioServiceImpl struct {
	client    port.MixinClient
	prices    port.PriceCacheService
	valuator  *Valuator
	published *state.Value[*entity.PortfolioSnapshot]
	host      entity.HostBridge
	logger    port.Logger
	now       func() time.Time
}

// PortfolioOption configures a PortfolioServiceImpl.
type PortfolioOption func(*PortfolioServiceImpl)

// WithHostBridge records the detected companion wallet bridge.
func WithHostBridge(b entity.HostBridge) PortfolioOption {
	return func(s *PortfolioServiceImpl) { s.host = b }
}

// WithClock overrides the clock used to stamp snapshots.
func WithClock(now func() time.Time) PortfolioOption {
	return func(s *PortfolioServiceImpl) { s.now = now }
}

// NewPortfolioService creates a new instance of PortfolioServiceImpl.
func NewPortfolioService(
	client port.MixinClient,
	prices port.PriceCacheService,
	valuator *Valuator,
	published *state.Value[*entity.PortfolioSnapshot],
	l port.Logger,
	opts ...PortfolioOption,
) *PortfolioServiceImpl {
	if published == nil {
		published = state.NewValue[*entity.PortfolioSnapshot](nil)
	}
	s := &PortfolioServiceImpl{
		client:    client,
		prices:    prices,
		valuator:  valuator,
		published: published,
		logger:    l,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RefreshBalances refreshes the price cache, fetches the user's unspent outputs,
// valuates them and publishes the snapshot. Nothing is published on failure, so the
// previous snapshot stays visible. Overlapping calls are not serialised: the last one
// to finish wins.
func (s *PortfolioServiceImpl) RefreshBalances(ctx context.Context, userID string, token string) (*entity.PortfolioSnapshot, error) {
	started := s.now()
	log := s.logger.With("user_id", userID)

	snapshot, err := s.refresh(ctx, userID, token, log)
	metrics.RefreshDuration.Observe(s.now().Sub(started).Seconds())
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		log.Error("Balance refresh failed", "error", err)
		return nil, err
	}
	metrics.RefreshTotal.WithLabelValues("ok").Inc()

	s.published.Set(snapshot)
	log.Info("Balance refresh published",
		"assets", len(snapshot.Balances),
		"total_usd", snapshot.TotalUSDBalance,
		"total_btc", snapshot.TotalBTCBalance)
	return snapshot, nil
}

func (s *PortfolioServiceImpl) refresh(ctx context.Context, userID, token string, log port.Logger) (*entity.PortfolioSnapshot, error) {
	if s.host != entity.HostBridgeNone {
		if _, err := bridge.HostAssets(ctx, s.host); errors.Is(err, entity.ErrHostBridgeNotImplemented) {
			log.Debug("Host bridge asset listing unavailable, using provider API", "bridge", s.host.String())
		}
	}

	priceCache, err := s.prices.RefreshTopAssets(ctx)
	if err != nil {
		return nil, err
	}

	outputs, err := s.client.SafeOutputs(ctx, []string{userID}, token, entity.OutputStateUnspent)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch outputs: %w", err)
	}
	log.Debug("Fetched unspent outputs", "count", len(outputs))

	grouped := GroupAndSumOutputs(outputs)
	balances, err := s.valuator.Valuate(ctx, grouped, priceCache)
	if err != nil {
		return nil, err
	}

	totalUSD := TotalUSD(balances)
	totalBTC, err := s.valuator.TotalBTC(ctx, totalUSD, priceCache)
	if err != nil {
		return nil, err
	}

	return &entity.PortfolioSnapshot{
		Balances:        balances,
		TotalUSDBalance: totalUSD,
		TotalBTCBalance: totalBTC,
		RefreshedAt:     s.now().UTC(),
	}, nil
}

// Snapshot returns the last published snapshot, or nil before the first refresh.
func (s *PortfolioServiceImpl) Snapshot() *entity.PortfolioSnapshot {
	return s.published.Get()
}

// ExportSnapshots follows published snapshots and mirrors them into the portfolio
// gauges. The returned function stops following and waits for the exporter to exit.
func (s *PortfolioServiceImpl) ExportSnapshots() func() {
	updates, cancel := s.published.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for snapshot := range updates {
			if snapshot == nil {
				continue
			}
			metrics.PortfolioAssets.Set(float64(len(snapshot.Balances)))
			if math.IsNaN(snapshot.TotalUSDBalance) || math.IsInf(snapshot.TotalUSDBalance, 0) {
				s.logger.Warn("Published snapshot has a non-finite USD total", "version", s.published.Version())
				continue
			}
			metrics.PortfolioTotalUSD.Set(snapshot.TotalUSDBalance)
			s.logger.Debug("Exported portfolio snapshot", "version", s.published.Version(), "assets", len(snapshot.Balances))
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
