package ranking

import (
	"context"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/HaByeong/WhaleStream/internal/api"
)

// Service wraps the ranking endpoints. Both operations are reads, so both
// fall back to demo data while the backend is absent.
type Service struct {
	api    *api.Client
	logger zerolog.Logger
}

func NewService(client *api.Client, logger zerolog.Logger) *Service {
	return &Service{api: client, logger: logger}
}

// Rankings returns one page of the ranking snapshot for the given period.
// Pages count from 0.
func (s *Service) Rankings(ctx context.Context, rankingType string, page, size int) (Response, error) {
	if rankingType == "" {
		rankingType = TypeAll
	}
	return api.ReadWithFallback(ctx, s.logger, "rankings",
		func(ctx context.Context) (Response, error) {
			query := url.Values{}
			query.Set("type", rankingType)
			query.Set("page", strconv.Itoa(page))
			query.Set("size", strconv.Itoa(size))
			var out Response
			err := s.api.Get(ctx, "/api/rankings", query, &out)
			return out, err
		},
		func() Response { return DemoResponse(rankingType, page, size) },
	)
}

// PortfolioDetail returns the public view of another user's ranked portfolio.
func (s *Service) PortfolioDetail(ctx context.Context, portfolioID string) (PortfolioDetail, error) {
	return api.ReadWithFallback(ctx, s.logger, "portfolio detail",
		func(ctx context.Context) (PortfolioDetail, error) {
			var out PortfolioDetail
			err := s.api.Get(ctx, "/api/portfolios/"+portfolioID, nil, &out)
			return out, err
		},
		func() PortfolioDetail { return DemoPortfolioDetail(portfolioID) },
	)
}
