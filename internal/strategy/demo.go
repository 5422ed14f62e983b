package strategy

import (
	"math/rand"
	"time"
)

const demoSeriesDays = 30

func DemoStrategies() []Strategy {
	now := time.Now().UTC().Format(time.RFC3339)
	return []Strategy{
		{
			ID:          "strategy-1",
			Name:        "RSI overbought/oversold",
			Description: "Buy when RSI drops below 30, sell when it rises above 70",
			Indicators: []Indicator{
				{Type: IndicatorRSI, Parameters: map[string]float64{"period": 14}},
			},
			EntryConditions: []Condition{
				{Indicator: IndicatorRSI, Operator: OpLT, Value: 30, Logic: "AND"},
			},
			ExitConditions: []Condition{
				{Indicator: IndicatorRSI, Operator: OpGT, Value: 70, Logic: "AND"},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// DemoBacktestResult fabricates a plausible report for the requested run: a
// steady +25% over the window with daily noise. Every field of the real
// response is populated.
func DemoBacktestResult(req BacktestRequest, strategyName, stockName string) BacktestResult {
	capital := req.InitialCapital
	if capital <= 0 {
		capital = 10000000
	}
	if stockName == "" {
		stockName = "Samsung Electronics"
	}
	finalValue := capital * 1.25

	daily := make([]DailyReturn, demoSeriesDays)
	curve := make([]EquityPoint, demoSeriesDays)
	for i := 0; i < demoSeriesDays; i++ {
		date := time.Now().AddDate(0, 0, -(demoSeriesDays - i)).Format("2006-01-02")
		cumulative := 0.25 * float64(i) / demoSeriesDays
		daily[i] = DailyReturn{
			Date:             date,
			Return:           (rand.Float64()*2 - 1) * 2,
			CumulativeReturn: cumulative,
			PortfolioValue:   capital * (1 + cumulative),
		}
		curve[i] = EquityPoint{Date: date, Value: capital * (1 + cumulative)}
	}

	return BacktestResult{
		ID:               "backtest-demo-1",
		StrategyID:       req.StrategyID,
		StrategyName:     strategyName,
		StockCode:        req.StockCode,
		StockName:        stockName,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		InitialCapital:   capital,
		FinalValue:       finalValue,
		TotalReturn:      finalValue - capital,
		TotalReturnRate:  25.0,
		MaxDrawdown:      -8.5,
		SharpeRatio:      1.85,
		WinRate:          62.5,
		TotalTrades:      45,
		ProfitableTrades: 28,
		LosingTrades:     17,
		DailyReturns:     daily,
		EquityCurve:      curve,
	}
}

// DemoIndicatorSeries fabricates a 30-day series in the value range typical
// for the indicator type.
func DemoIndicatorSeries(indicatorType string) []IndicatorData {
	data := make([]IndicatorData, demoSeriesDays)
	for i := 0; i < demoSeriesDays; i++ {
		var value float64
		switch indicatorType {
		case IndicatorRSI:
			value = 30 + rand.Float64()*40
		case IndicatorMACD:
			value = -5 + rand.Float64()*10
		default:
			// MA and Bollinger track the price range.
			value = 70000 + rand.Float64()*10000
		}
		data[i] = IndicatorData{
			Date:  time.Now().AddDate(0, 0, -(demoSeriesDays - i)).Format("2006-01-02"),
			Price: 70000 + rand.Float64()*10000,
			Value: value,
		}
	}
	return data
}
