package trade

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/HaByeong/WhaleStream/internal/api"
)

// Service exposes market data, orders, trades and the portfolio. Reads fall
// back to demo data while the backend is absent; order mutations never do.
type Service struct {
	api    *api.Client
	logger zerolog.Logger
	userID func() string
}

// NewService builds a trade service. userID supplies the logged-in user for
// demo data so fabricated portfolios belong to the right owner; it may return
// "".
func NewService(client *api.Client, logger zerolog.Logger, userID func() string) *Service {
	if userID == nil {
		userID = func() string { return "" }
	}
	return &Service{api: client, logger: logger, userID: userID}
}

// StockList returns the full market data board.
func (s *Service) StockList(ctx context.Context) ([]StockPrice, error) {
	return api.ReadWithFallback(ctx, s.logger, "stock list",
		func(ctx context.Context) ([]StockPrice, error) {
			var out []StockPrice
			err := s.api.Get(ctx, "/api/market-data", nil, &out)
			return out, err
		},
		DemoStocks,
	)
}

// StockPrice returns the current quote for one stock.
func (s *Service) StockPrice(ctx context.Context, code string) (StockPrice, error) {
	return api.ReadWithFallback(ctx, s.logger, "stock price",
		func(ctx context.Context) (StockPrice, error) {
			var out StockPrice
			err := s.api.Get(ctx, "/api/market-data/"+code, nil, &out)
			return out, err
		},
		func() StockPrice { return DemoStock(code) },
	)
}

// Portfolio returns the caller's portfolio.
func (s *Service) Portfolio(ctx context.Context) (Portfolio, error) {
	return api.ReadWithFallback(ctx, s.logger, "portfolio",
		func(ctx context.Context) (Portfolio, error) {
			var out Portfolio
			err := s.api.Get(ctx, "/api/portfolio", nil, &out)
			return out, err
		},
		func() Portfolio { return DemoPortfolio(s.userID()) },
	)
}

// Orders returns the caller's order history.
func (s *Service) Orders(ctx context.Context) ([]Order, error) {
	return api.ReadWithFallback(ctx, s.logger, "orders",
		func(ctx context.Context) ([]Order, error) {
			var out []Order
			err := s.api.Get(ctx, "/api/orders", nil, &out)
			return out, err
		},
		func() []Order { return DemoOrders(s.userID()) },
	)
}

// Trades returns the caller's execution history.
func (s *Service) Trades(ctx context.Context) ([]Trade, error) {
	return api.ReadWithFallback(ctx, s.logger, "trades",
		func(ctx context.Context) ([]Trade, error) {
			var out []Trade
			err := s.api.Get(ctx, "/api/trades", nil, &out)
			return out, err
		},
		DemoTrades,
	)
}

// CreateOrder submits an order. Failures always propagate; the portfolio is
// only updated once the server confirms.
func (s *Service) CreateOrder(ctx context.Context, req OrderRequest) (Order, error) {
	var out Order
	if req.OrderMethod == OrderMethodLimit && req.Price == nil {
		return out, fmt.Errorf("limit orders require a price")
	}
	err := s.api.Post(ctx, "/api/orders", req, &out)
	return out, err
}

// CancelOrder requests cancellation of an order. The server decides whether
// the order can still be cancelled.
func (s *Service) CancelOrder(ctx context.Context, orderID string) error {
	return s.api.Delete(ctx, "/api/orders/"+orderID)
}
