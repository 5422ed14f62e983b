package strategy

// Indicator types understood by the backtesting engine.
const (
	IndicatorRSI            = "RSI"
	IndicatorMACD           = "MACD"
	IndicatorMA             = "MA"
	IndicatorBollingerBands = "BOLLINGER_BANDS"
)

// Condition operators.
const (
	OpGT  = "GT"
	OpLT  = "LT"
	OpEQ  = "EQ"
	OpGTE = "GTE"
	OpLTE = "LTE"
)

type Indicator struct {
	Type       string             `json:"type"`
	Parameters map[string]float64 `json:"parameters"`
}

type Condition struct {
	Indicator string  `json:"indicator"`
	Operator  string  `json:"operator"`
	Value     float64 `json:"value"`
	Logic     string  `json:"logic"`
}

type Strategy struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Indicators      []Indicator `json:"indicators"`
	EntryConditions []Condition `json:"entryConditions"`
	ExitConditions  []Condition `json:"exitConditions"`
	CreatedAt       string      `json:"createdAt"`
	UpdatedAt       string      `json:"updatedAt"`
}

// StrategyInput is the user-editable part of a strategy, used for create and
// update.
type StrategyInput struct {
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	Indicators      []Indicator `json:"indicators"`
	EntryConditions []Condition `json:"entryConditions"`
	ExitConditions  []Condition `json:"exitConditions"`
}

type BacktestRequest struct {
	StrategyID     string  `json:"strategyId"`
	StockCode      string  `json:"stockCode"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	InitialCapital float64 `json:"initialCapital"`
}

type DailyReturn struct {
	Date             string  `json:"date"`
	Return           float64 `json:"return"`
	CumulativeReturn float64 `json:"cumulativeReturn"`
	PortfolioValue   float64 `json:"portfolioValue"`
}

type EquityPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// BacktestResult is a derived, read-only report keyed by strategy, stock and
// date range.
type BacktestResult struct {
	ID               string        `json:"id"`
	StrategyID       string        `json:"strategyId"`
	StrategyName     string        `json:"strategyName"`
	StockCode        string        `json:"stockCode"`
	StockName        string        `json:"stockName"`
	StartDate        string        `json:"startDate"`
	EndDate          string        `json:"endDate"`
	InitialCapital   float64       `json:"initialCapital"`
	FinalValue       float64       `json:"finalValue"`
	TotalReturn      float64       `json:"totalReturn"`
	TotalReturnRate  float64       `json:"totalReturnRate"`
	MaxDrawdown      float64       `json:"maxDrawdown"`
	SharpeRatio      float64       `json:"sharpeRatio"`
	WinRate          float64       `json:"winRate"`
	TotalTrades      int           `json:"totalTrades"`
	ProfitableTrades int           `json:"profitableTrades"`
	LosingTrades     int           `json:"losingTrades"`
	DailyReturns     []DailyReturn `json:"dailyReturns"`
	EquityCurve      []EquityPoint `json:"equityCurve"`
}

type IndicatorData struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
	Value float64 `json:"value"`
}
