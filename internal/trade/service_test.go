package trade

import (
	"context"
	"encoding/json"
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
	return NewService(client, zerolog.Nop(), func() string { return "whale01" })
}

func TestReads_FallBackToDemoWhenUnreachable(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")
	ctx := context.Background()

	stocks, err := svc.StockList(ctx)
	if err != nil {
		t.Fatalf("StockList() error = %v", err)
	}
	if len(stocks) != 4 {
		t.Fatalf("StockList() len = %d, want 4 demo stocks", len(stocks))
	}
	for _, s := range stocks {
		if s.StockCode == "" || s.StockName == "" || s.Timestamp == "" {
			t.Errorf("demo stock %+v has empty fields", s)
		}
	}

	pf, err := svc.Portfolio(ctx)
	if err != nil {
		t.Fatalf("Portfolio() error = %v", err)
	}
	if pf.UserID != "whale01" {
		t.Errorf("demo portfolio userId = %q, want logged-in user", pf.UserID)
	}
	if len(pf.Holdings) == 0 {
		t.Error("demo portfolio has no holdings")
	}
	var holdingsValue float64
	for _, h := range pf.Holdings {
		if h.MarketValue != float64(h.Quantity)*h.CurrentPrice {
			t.Errorf("holding %s marketValue = %v, want quantity*currentPrice", h.StockCode, h.MarketValue)
		}
		holdingsValue += h.MarketValue
	}
	if pf.TotalValue != pf.CashBalance+holdingsValue {
		t.Errorf("totalValue = %v, want cash %v + holdings %v", pf.TotalValue, pf.CashBalance, holdingsValue)
	}

	orders, err := svc.Orders(ctx)
	if err != nil {
		t.Fatalf("Orders() error = %v", err)
	}
	if len(orders) == 0 || orders[0].Status != StatusFilled {
		t.Errorf("demo orders = %+v, want one FILLED order", orders)
	}

	trades, err := svc.Trades(ctx)
	if err != nil {
		t.Fatalf("Trades() error = %v", err)
	}
	if len(trades) == 0 {
		t.Fatal("demo trades empty")
	}
	tr := trades[0]
	if tr.NetAmount != tr.TotalAmount-tr.Commission {
		t.Errorf("netAmount = %v, want totalAmount-commission", tr.NetAmount)
	}
}

func TestStockPrice_FallbackMatchesRequestedCode(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")

	price, err := svc.StockPrice(context.Background(), "000660")
	if err != nil {
		t.Fatalf("StockPrice() error = %v", err)
	}
	if price.StockCode != "000660" {
		t.Errorf("StockCode = %q, want 000660", price.StockCode)
	}
}

func TestReads_UseBackendWhenAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/market-data":
			w.Write([]byte(`{"data":[{"stockCode":"005380","stockName":"Hyundai Motor","currentPrice":210000}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	stocks, err := svc.StockList(context.Background())
	if err != nil {
		t.Fatalf("StockList() error = %v", err)
	}
	if len(stocks) != 1 || stocks[0].StockCode != "005380" {
		t.Errorf("StockList() = %+v, want the backend's board, not demo data", stocks)
	}
}

func TestCreateOrder_RejectionPropagatesVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"INSUFFICIENT_FUNDS","message":"Insufficient cash balance for this order"}`))
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	_, err := svc.CreateOrder(context.Background(), OrderRequest{
		StockCode:   "005930",
		StockName:   "Samsung Electronics",
		OrderType:   OrderTypeBuy,
		OrderMethod: OrderMethodMarket,
		Quantity:    10,
	})

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *api.APIError", err)
	}
	if apiErr.Message != "Insufficient cash balance for this order" {
		t.Errorf("Message = %q, want backend validation message verbatim", apiErr.Message)
	}
}

func TestCreateOrder_NeverMasksUnavailability(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")

	_, err := svc.CreateOrder(context.Background(), OrderRequest{
		StockCode:   "005930",
		OrderType:   OrderTypeBuy,
		OrderMethod: OrderMethodMarket,
		Quantity:    1,
	})
	if err == nil {
		t.Fatal("CreateOrder() with unreachable backend succeeded, want error")
	}
	if !api.IsUnavailable(err) {
		t.Errorf("error = %v, want an unavailability error surfaced to the caller", err)
	}
}

func TestCreateOrder_LimitRequiresPrice(t *testing.T) {
	svc := newTestService(t, "http://127.0.0.1:1")

	_, err := svc.CreateOrder(context.Background(), OrderRequest{
		StockCode:   "005930",
		OrderType:   OrderTypeBuy,
		OrderMethod: OrderMethodLimit,
		Quantity:    1,
	})
	if err == nil {
		t.Fatal("CreateOrder(LIMIT, no price) succeeded, want error")
	}
}

func TestCancelOrder_Propagates(t *testing.T) {
	var method, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	if err := svc.CancelOrder(context.Background(), "order-9"); err != nil {
		t.Fatalf("CancelOrder() error = %v", err)
	}
	if method != http.MethodDelete || path != "/api/orders/order-9" {
		t.Errorf("request = %s %s, want DELETE /api/orders/order-9", method, path)
	}
}

func TestCreateOrder_SendsLimitPrice(t *testing.T) {
	var got OrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"data":{"id":"order-1","status":"PENDING"}}`))
	}))
	defer srv.Close()

	svc := newTestService(t, srv.URL)
	price := 74500.0
	order, err := svc.CreateOrder(context.Background(), OrderRequest{
		StockCode:   "005930",
		StockName:   "Samsung Electronics",
		OrderType:   OrderTypeBuy,
		OrderMethod: OrderMethodLimit,
		Quantity:    5,
		Price:       &price,
	})
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if got.Price == nil || *got.Price != 74500 {
		t.Errorf("sent price = %v, want 74500", got.Price)
	}
	if order.Status != StatusPending {
		t.Errorf("order status = %q, want PENDING from server", order.Status)
	}
}
