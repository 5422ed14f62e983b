package ranking

import (
	"context"
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

func TestRankings_NotImplementedBackendYieldsDemoSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	resp, err := svc.Rankings(context.Background(), TypeAll, 0, 50)
	if err != nil {
		t.Fatalf("Rankings() error = %v", err)
	}

	if resp.TotalCount != 50 {
		t.Errorf("TotalCount = %d, want 50", resp.TotalCount)
	}
	if len(resp.Rankings) != 50 {
		t.Fatalf("len(Rankings) = %d, want 50", len(resp.Rankings))
	}

	mine := 0
	for i, e := range resp.Rankings {
		if e.Rank != i+1 {
			t.Errorf("entry %d rank = %d, want gapless ordering", i, e.Rank)
		}
		if i > 0 && e.TotalReturn > resp.Rankings[i-1].TotalReturn {
			t.Errorf("entry %d return %v above previous %v, want descending", i, e.TotalReturn, resp.Rankings[i-1].TotalReturn)
		}
		if e.TotalReturn < 0.1 {
			t.Errorf("entry %d return = %v, want >= 0.1", i, e.TotalReturn)
		}
		if e.RankChange < -3 || e.RankChange > 3 {
			t.Errorf("entry %d rankChange = %d, want within [-3, 3]", i, e.RankChange)
		}
		if e.Nickname == "" || e.PortfolioName == "" || e.PortfolioID == "" {
			t.Errorf("entry %d has empty fields: %+v", i, e)
		}
		if e.IsMyRanking {
			mine++
			if e.Rank != 4 {
				t.Errorf("my ranking at rank %d, want 4", e.Rank)
			}
		}
	}
	if mine != 1 {
		t.Errorf("entries marked mine = %d, want exactly 1", mine)
	}
}

func TestRankings_DemoPaging(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")

	page0, err := svc.Rankings(context.Background(), TypeWeekly, 0, 20)
	if err != nil {
		t.Fatalf("Rankings(page 0) error = %v", err)
	}
	if len(page0.Rankings) != 20 {
		t.Errorf("page 0 len = %d, want 20", len(page0.Rankings))
	}
	if page0.RankingType != TypeWeekly {
		t.Errorf("rankingType = %q, want %q", page0.RankingType, TypeWeekly)
	}

	page2, err := svc.Rankings(context.Background(), TypeWeekly, 2, 20)
	if err != nil {
		t.Fatalf("Rankings(page 2) error = %v", err)
	}
	if len(page2.Rankings) != 10 {
		t.Errorf("page 2 len = %d, want the 10 remaining entries", len(page2.Rankings))
	}
	if len(page2.Rankings) > 0 && page2.Rankings[0].Rank != 41 {
		t.Errorf("page 2 first rank = %d, want 41", page2.Rankings[0].Rank)
	}
}

func TestRankings_DemoPagingOutOfRange(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")

	tests := []struct {
		name      string
		page      int
		size      int
		wantLen   int
		wantFirst int
	}{
		{name: "negative page clamps to the first page", page: -1, size: 20, wantLen: 20, wantFirst: 1},
		{name: "very negative page clamps to the first page", page: -100, size: 20, wantLen: 20, wantFirst: 1},
		{name: "page past the end is empty", page: 5, size: 20, wantLen: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Rankings(context.Background(), TypeAll, tt.page, tt.size)
			if err != nil {
				t.Fatalf("Rankings(page %d) error = %v", tt.page, err)
			}
			if len(resp.Rankings) != tt.wantLen {
				t.Fatalf("len(Rankings) = %d, want %d", len(resp.Rankings), tt.wantLen)
			}
			if tt.wantLen > 0 && resp.Rankings[0].Rank != tt.wantFirst {
				t.Errorf("first rank = %d, want %d", resp.Rankings[0].Rank, tt.wantFirst)
			}
		})
	}
}

func TestRankings_UsesBackendWhenAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "daily" {
			t.Errorf("type param = %q, want daily", got)
		}
		w.Write([]byte(`{"data":{"rankingType":"daily","snapshotDate":"2024-02-01","totalCount":1,"rankings":[{"portfolioId":"p9","rank":1,"nickname":"Solo","portfolioName":"Only One","totalReturn":3.2,"totalValue":10320000,"rankChange":0}]}}`))
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	resp, err := svc.Rankings(context.Background(), TypeDaily, 0, 20)
	if err != nil {
		t.Fatalf("Rankings() error = %v", err)
	}
	if resp.TotalCount != 1 || len(resp.Rankings) != 1 || resp.Rankings[0].PortfolioID != "p9" {
		t.Errorf("resp = %+v, want the backend's snapshot, not demo data", resp)
	}
}

func TestPortfolioDetail_FallbackKeepsRequestedID(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")

	detail, err := svc.PortfolioDetail(context.Background(), "portfolio-7")
	if err != nil {
		t.Fatalf("PortfolioDetail() error = %v", err)
	}
	if detail.PortfolioID != "portfolio-7" {
		t.Errorf("PortfolioID = %q, want the requested id", detail.PortfolioID)
	}
	if len(detail.Holdings) == 0 || len(detail.RecentTrades) == 0 {
		t.Error("demo detail missing holdings or recent trades")
	}
	if detail.TotalValue != detail.InitialCapital+detail.TotalReturnAmount {
		t.Errorf("totalValue = %v, want initialCapital+totalReturnAmount", detail.TotalValue)
	}
}
