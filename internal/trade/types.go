package trade

// Order type and method values accepted by the backend.
const (
	OrderTypeBuy  = "BUY"
	OrderTypeSell = "SELL"

	OrderMethodMarket = "MARKET"
	OrderMethodLimit  = "LIMIT"
)

// Order statuses as reported by the backend. Transitions happen server-side;
// the client only submits orders or requests cancellation and displays
// whatever state comes back.
const (
	StatusPending         = "PENDING"
	StatusPartiallyFilled = "PARTIALLY_FILLED"
	StatusFilled          = "FILLED"
	StatusCancelled       = "CANCELLED"
)

// StockPrice is one quote from the market data feed, replaced wholesale on
// each poll.
type StockPrice struct {
	StockCode     string  `json:"stockCode"`
	StockName     string  `json:"stockName"`
	CurrentPrice  float64 `json:"currentPrice"`
	Change        float64 `json:"change"`
	ChangeRate    float64 `json:"changeRate"`
	Volume        int64   `json:"volume"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
	Timestamp     string  `json:"timestamp"`
}

// OrderRequest is the payload for creating an order. Price is only set for
// LIMIT orders.
type OrderRequest struct {
	StockCode   string   `json:"stockCode"`
	StockName   string   `json:"stockName"`
	OrderType   string   `json:"orderType"`
	OrderMethod string   `json:"orderMethod"`
	Quantity    int64    `json:"quantity"`
	Price       *float64 `json:"price,omitempty"`
}

type Order struct {
	ID             string   `json:"id"`
	UserID         string   `json:"userId"`
	StockCode      string   `json:"stockCode"`
	StockName      string   `json:"stockName"`
	OrderType      string   `json:"orderType"`
	OrderMethod    string   `json:"orderMethod"`
	Quantity       int64    `json:"quantity"`
	Price          float64  `json:"price"`
	Status         string   `json:"status"`
	FilledQuantity int64    `json:"filledQuantity"`
	FilledPrice    *float64 `json:"filledPrice"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

// Trade is an immutable execution record, one per fill event.
type Trade struct {
	ID          string  `json:"id"`
	OrderID     string  `json:"orderId"`
	StockCode   string  `json:"stockCode"`
	StockName   string  `json:"stockName"`
	OrderType   string  `json:"orderType"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
	TotalAmount float64 `json:"totalAmount"`
	Commission  float64 `json:"commission"`
	NetAmount   float64 `json:"netAmount"`
	ExecutedAt  string  `json:"executedAt"`
}

type Holding struct {
	StockCode    string  `json:"stockCode"`
	StockName    string  `json:"stockName"`
	Quantity     int64   `json:"quantity"`
	AveragePrice float64 `json:"averagePrice"`
	CurrentPrice float64 `json:"currentPrice"`
	MarketValue  float64 `json:"marketValue"`
	ProfitLoss   float64 `json:"profitLoss"`
	ReturnRate   float64 `json:"returnRate"`
}

// Portfolio is fetched whole and never mutated locally; a fresh fetch
// replaces the entire object.
type Portfolio struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	CashBalance float64   `json:"cashBalance"`
	TotalValue  float64   `json:"totalValue"`
	ReturnRate  float64   `json:"returnRate"`
	Holdings    []Holding `json:"holdings"`
}
