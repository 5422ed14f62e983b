package ranking

// Ranking period filters.
const (
	TypeAll     = "all"
	TypeDaily   = "daily"
	TypeWeekly  = "weekly"
	TypeMonthly = "monthly"
)

type Entry struct {
	PortfolioID   string  `json:"portfolioId"`
	Rank          int     `json:"rank"`
	Nickname      string  `json:"nickname"`
	PortfolioName string  `json:"portfolioName"`
	TotalReturn   float64 `json:"totalReturn"`
	TotalValue    float64 `json:"totalValue"`
	RankChange    int     `json:"rankChange"`
	IsMyRanking   bool    `json:"isMyRanking,omitempty"`
}

// Response is one page of a ranking snapshot. Within a snapshot, rank is a
// strict gapless ordering by totalReturn descending.
type Response struct {
	RankingType  string  `json:"rankingType"`
	SnapshotDate string  `json:"snapshotDate"`
	TotalCount   int     `json:"totalCount"`
	Rankings     []Entry `json:"rankings"`
}

// DetailHolding is a position as shown on another user's portfolio page; the
// field set differs from the owner's own holdings view.
type DetailHolding struct {
	StockCode    string  `json:"stockCode"`
	StockName    string  `json:"stockName"`
	Quantity     int64   `json:"quantity"`
	AvgPrice     float64 `json:"avgPrice"`
	CurrentPrice float64 `json:"currentPrice"`
	Profit       float64 `json:"profit"`
	ProfitRate   float64 `json:"profitRate"`
}

type DetailTrade struct {
	Date      string  `json:"date"`
	Type      string  `json:"type"`
	StockName string  `json:"stockName"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
	Amount    float64 `json:"amount"`
}

// PortfolioDetail is the public view of a ranked portfolio.
type PortfolioDetail struct {
	PortfolioID       string          `json:"portfolioId"`
	PortfolioName     string          `json:"portfolioName"`
	Nickname          string          `json:"nickname"`
	CurrentRank       int             `json:"currentRank"`
	TotalReturn       float64         `json:"totalReturn"`
	TotalReturnAmount float64         `json:"totalReturnAmount"`
	InitialCapital    float64         `json:"initialCapital"`
	TotalValue        float64         `json:"totalValue"`
	CurrentCash       float64         `json:"currentCash"`
	Holdings          []DetailHolding `json:"holdings"`
	RecentTrades      []DetailTrade   `json:"recentTrades"`
}
