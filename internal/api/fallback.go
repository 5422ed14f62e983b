package api

import (
	"context"

	"github.com/rs/zerolog"
)

// ReadWithFallback runs fetch and, when the backend is unreachable or the
// endpoint is not implemented yet, substitutes the demo generator's value so
// screens always render fully shaped data. Any other failure, including an
// expired session, propagates to the caller.
//
// Only reads go through here. Fabricating a successful mutation would
// misrepresent what the server did, so writes always surface their errors.
func ReadWithFallback[T any](ctx context.Context, logger zerolog.Logger, op string, fetch func(context.Context) (T, error), demo func() T) (T, error) {
	v, err := fetch(ctx)
	if err == nil {
		return v, nil
	}
	if IsUnavailable(err) {
		logger.Warn().Str("op", op).Err(err).Msg("backend unavailable, using demo data")
		return demo(), nil
	}
	return v, err
}
