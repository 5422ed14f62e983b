package strategy

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/HaByeong/WhaleStream/internal/api"
	"github.com/HaByeong/WhaleStream/internal/session"
)

func newTestService(t *testing.T, baseURL string) *Service {
	t.Helper()
	store := session.NewStore(t.TempDir())
	client := api.New(baseURL, store, zerolog.Nop())
	return NewService(client, zerolog.Nop())
}

func TestList_FallsBackToDemoStrategy(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")

	strategies, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(strategies) != 1 {
		t.Fatalf("List() len = %d, want 1 demo strategy", len(strategies))
	}
	st := strategies[0]
	if len(st.Indicators) == 0 || st.Indicators[0].Type != IndicatorRSI {
		t.Errorf("demo strategy indicators = %+v, want RSI", st.Indicators)
	}
	if len(st.EntryConditions) == 0 || len(st.ExitConditions) == 0 {
		t.Error("demo strategy missing entry or exit conditions")
	}
}

func TestRunBacktest_FallbackShapeComplete(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")

	req := BacktestRequest{
		StrategyID:     "strategy-1",
		StockCode:      "005930",
		StartDate:      "2024-01-01",
		EndDate:        "2024-01-31",
		InitialCapital: 10000000,
	}
	result, err := svc.RunBacktest(context.Background(), req, "RSI overbought/oversold", "Samsung Electronics")
	if err != nil {
		t.Fatalf("RunBacktest() error = %v", err)
	}

	if result.StrategyID != req.StrategyID || result.StockCode != req.StockCode {
		t.Errorf("result keys = %q/%q, want request's strategy and stock", result.StrategyID, result.StockCode)
	}
	if result.FinalValue != req.InitialCapital*1.25 {
		t.Errorf("FinalValue = %v, want initialCapital*1.25", result.FinalValue)
	}
	if result.TotalReturn != result.FinalValue-result.InitialCapital {
		t.Errorf("TotalReturn = %v, want finalValue-initialCapital", result.TotalReturn)
	}
	if result.ProfitableTrades+result.LosingTrades != result.TotalTrades {
		t.Errorf("trades %d+%d != total %d", result.ProfitableTrades, result.LosingTrades, result.TotalTrades)
	}
	if len(result.DailyReturns) != 30 || len(result.EquityCurve) != 30 {
		t.Errorf("series lengths = %d/%d, want 30/30", len(result.DailyReturns), len(result.EquityCurve))
	}
	for _, d := range result.DailyReturns {
		if d.Date == "" {
			t.Fatal("daily return with empty date")
		}
	}
}

func TestIndicatorData_FallbackRanges(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")

	tests := []struct {
		indicator string
		min, max  float64
	}{
		{IndicatorRSI, 30, 70},
		{IndicatorMACD, -5, 5},
		{IndicatorMA, 70000, 80000},
	}
	for _, tt := range tests {
		t.Run(tt.indicator, func(t *testing.T) {
			data, err := svc.IndicatorData(context.Background(), "005930", tt.indicator, "2024-01-01", "2024-01-31")
			if err != nil {
				t.Fatalf("IndicatorData() error = %v", err)
			}
			if len(data) != 30 {
				t.Fatalf("len = %d, want 30", len(data))
			}
			for _, d := range data {
				if d.Value < tt.min || d.Value > tt.max {
					t.Errorf("value %v outside [%v, %v]", d.Value, tt.min, tt.max)
				}
			}
		})
	}
}

func TestMutations_PropagateFailure(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")
	ctx := context.Background()
	input := StrategyInput{Name: "test", Description: "d"}

	if _, err := svc.Create(ctx, input); err == nil {
		t.Error("Create() with unreachable backend succeeded, want error")
	}
	if _, err := svc.Update(ctx, "strategy-1", input); err == nil {
		t.Error("Update() with unreachable backend succeeded, want error")
	}
	if err := svc.Delete(ctx, "strategy-1"); err == nil {
		t.Error("Delete() with unreachable backend succeeded, want error")
	} else if !api.IsUnavailable(err) {
		t.Errorf("Delete() error = %v, want unavailability so the caller can offer a local delete", err)
	}
}

func TestDelete_BackendRejectionIsNotUnavailability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Cannot delete a strategy with running backtests"}`))
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	err := svc.Delete(context.Background(), "strategy-1")
	if err == nil {
		t.Fatal("Delete() succeeded, want error")
	}
	if api.IsUnavailable(err) {
		t.Error("403 classified as unavailability; local delete would mask a real rejection")
	}
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Cannot delete a strategy with running backtests" {
		t.Errorf("error = %v, want backend message preserved", err)
	}
}

func TestRunBacktest_UsesBackendResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/strategies/backtest" || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"data":{"id":"bt-42","totalReturnRate":11.5,"dailyReturns":[],"equityCurve":[]}}`))
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	result, err := svc.RunBacktest(context.Background(), BacktestRequest{StrategyID: "s1"}, "n", "sn")
	if err != nil {
		t.Fatalf("RunBacktest() error = %v", err)
	}
	if result.ID != "bt-42" || result.TotalReturnRate != 11.5 {
		t.Errorf("result = %+v, want the backend's report", result)
	}
}
