package strategy

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/HaByeong/WhaleStream/internal/api"
)

// Service wraps the strategy, backtest and indicator endpoints. Reads and
// backtest runs fall back to demo data; create, update and delete propagate
// failures so the user never sees a write the server did not perform.
type Service struct {
	api    *api.Client
	logger zerolog.Logger
}

func NewService(client *api.Client, logger zerolog.Logger) *Service {
	return &Service{api: client, logger: logger}
}

// List returns the user's strategies.
func (s *Service) List(ctx context.Context) ([]Strategy, error) {
	return api.ReadWithFallback(ctx, s.logger, "strategies",
		func(ctx context.Context) ([]Strategy, error) {
			var out []Strategy
			err := s.api.Get(ctx, "/api/strategies", nil, &out)
			return out, err
		},
		DemoStrategies,
	)
}

// Create registers a new strategy.
func (s *Service) Create(ctx context.Context, input StrategyInput) (Strategy, error) {
	var out Strategy
	err := s.api.Post(ctx, "/api/strategies", input, &out)
	return out, err
}

// Update replaces an existing strategy's definition.
func (s *Service) Update(ctx context.Context, id string, input StrategyInput) (Strategy, error) {
	var out Strategy
	err := s.api.Put(ctx, "/api/strategies/"+id, input, &out)
	return out, err
}

// Delete removes a strategy. Unavailability is returned as-is; the command
// layer decides whether a local delete is tolerable in demo mode.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/api/strategies/"+id)
}

// RunBacktest executes a strategy over historical data. The report is derived,
// not a mutation, so an absent backend yields a fabricated one.
func (s *Service) RunBacktest(ctx context.Context, req BacktestRequest, strategyName, stockName string) (BacktestResult, error) {
	return api.ReadWithFallback(ctx, s.logger, "backtest",
		func(ctx context.Context) (BacktestResult, error) {
			var out BacktestResult
			err := s.api.Post(ctx, "/api/strategies/backtest", req, &out)
			return out, err
		},
		func() BacktestResult { return DemoBacktestResult(req, strategyName, stockName) },
	)
}

// BacktestResult fetches a previously computed report.
func (s *Service) BacktestResult(ctx context.Context, id string) (BacktestResult, error) {
	return api.ReadWithFallback(ctx, s.logger, "backtest result",
		func(ctx context.Context) (BacktestResult, error) {
			var out BacktestResult
			err := s.api.Get(ctx, "/api/strategies/backtest/"+id, nil, &out)
			return out, err
		},
		func() BacktestResult {
			return DemoBacktestResult(BacktestRequest{
				StrategyID:     "strategy-1",
				StockCode:      "005930",
				StartDate:      "",
				EndDate:        "",
				InitialCapital: 10000000,
			}, "RSI overbought/oversold", "Samsung Electronics")
		},
	)
}

// IndicatorData returns a technical indicator series for a stock.
func (s *Service) IndicatorData(ctx context.Context, stockCode, indicatorType, startDate, endDate string) ([]IndicatorData, error) {
	return api.ReadWithFallback(ctx, s.logger, "indicator data",
		func(ctx context.Context) ([]IndicatorData, error) {
			query := url.Values{}
			query.Set("type", indicatorType)
			query.Set("startDate", startDate)
			query.Set("endDate", endDate)
			var out []IndicatorData
			err := s.api.Get(ctx, "/api/indicators/"+stockCode, query, &out)
			return out, err
		},
		func() []IndicatorData { return DemoIndicatorSeries(indicatorType) },
	)
}
