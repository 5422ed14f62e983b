package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
)

func TestReadWithFallback(t *testing.T) {
	demo := func() []string { return []string{"demo"} }

	t.Run("success passes through", func(t *testing.T) {
		got, err := ReadWithFallback(context.Background(), zerolog.Nop(), "list",
			func(context.Context) ([]string, error) { return []string{"real"}, nil }, demo)
		if err != nil {
			t.Fatalf("error = %v", err)
		}
		if len(got) != 1 || got[0] != "real" {
			t.Errorf("got = %v, want [real]", got)
		}
	})

	t.Run("not found masked with demo value", func(t *testing.T) {
		got, err := ReadWithFallback(context.Background(), zerolog.Nop(), "list",
			func(context.Context) ([]string, error) {
				return nil, &APIError{Status: http.StatusNotFound}
			}, demo)
		if err != nil {
			t.Fatalf("error = %v, want masked", err)
		}
		if len(got) != 1 || got[0] != "demo" {
			t.Errorf("got = %v, want [demo]", got)
		}
	})

	t.Run("expired session propagates", func(t *testing.T) {
		_, err := ReadWithFallback(context.Background(), zerolog.Nop(), "list",
			func(context.Context) ([]string, error) { return nil, ErrSessionExpired }, demo)
		if !errors.Is(err, ErrSessionExpired) {
			t.Errorf("error = %v, want ErrSessionExpired", err)
		}
	})

	t.Run("validation error propagates", func(t *testing.T) {
		apiErr := &APIError{Status: http.StatusBadRequest, Message: "bad range"}
		_, err := ReadWithFallback(context.Background(), zerolog.Nop(), "list",
			func(context.Context) ([]string, error) { return nil, apiErr }, demo)
		var got *APIError
		if !errors.As(err, &got) || got.Message != "bad range" {
			t.Errorf("error = %v, want the original APIError", err)
		}
	})
}
