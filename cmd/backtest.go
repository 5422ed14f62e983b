package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/HaByeong/WhaleStream/internal/output"
	"github.com/HaByeong/WhaleStream/internal/strategy"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run strategies over historical data",
}

var backtestRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest",
	Long: `Run a strategy against one stock over a date range. Dates default to
the last 30 days and capital to ₩10,000,000.`,
	RunE: runBacktestRun,
}

var backtestGetCmd = &cobra.Command{
	Use:   "get BACKTEST_ID",
	Short: "Show a previously computed backtest report",
	Args:  cobra.ExactArgs(1),
	RunE:  runBacktestGet,
}

var indicatorCmd = &cobra.Command{
	Use:   "indicator STOCK_CODE",
	Short: "Show a technical indicator series for a stock",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndicator,
}

var (
	backtestStrategyID string
	backtestStockCode  string
	backtestStart      string
	backtestEnd        string
	backtestCapital    float64

	indicatorType  string
	indicatorStart string
	indicatorEnd   string
)

func init() {
	backtestRunCmd.Flags().StringVar(&backtestStrategyID, "strategy", "", "strategy id (required)")
	backtestRunCmd.Flags().StringVar(&backtestStockCode, "code", "", "stock code (required)")
	backtestRunCmd.Flags().StringVar(&backtestStart, "start", "", "start date YYYY-MM-DD (default 30 days ago)")
	backtestRunCmd.Flags().StringVar(&backtestEnd, "end", "", "end date YYYY-MM-DD (default today)")
	backtestRunCmd.Flags().Float64Var(&backtestCapital, "capital", 10000000, "initial capital in won")
	backtestRunCmd.MarkFlagRequired("strategy")
	backtestRunCmd.MarkFlagRequired("code")

	indicatorCmd.Flags().StringVar(&indicatorType, "type", strategy.IndicatorRSI, "RSI, MACD, MA or BOLLINGER_BANDS")
	indicatorCmd.Flags().StringVar(&indicatorStart, "start", "", "start date YYYY-MM-DD (default 30 days ago)")
	indicatorCmd.Flags().StringVar(&indicatorEnd, "end", "", "end date YYYY-MM-DD (default today)")

	backtestCmd.AddCommand(backtestRunCmd)
	backtestCmd.AddCommand(backtestGetCmd)
	rootCmd.AddCommand(backtestCmd)
	rootCmd.AddCommand(indicatorCmd)
}

func defaultDateRange(start, end string) (string, string) {
	now := time.Now()
	if end == "" {
		end = now.Format("2006-01-02")
	}
	if start == "" {
		start = now.AddDate(0, 0, -30).Format("2006-01-02")
	}
	return start, end
}

func runBacktestRun(cmd *cobra.Command, args []string) error {
	svcs, err := requireAuth(cmd)
	if err != nil {
		return nil
	}

	ctx := context.Background()
	start, end := defaultDateRange(backtestStart, backtestEnd)

	// Names are display-only; resolution failures fall through to the codes.
	strategyName := backtestStrategyID
	if strategies, err := svcs.strategy.List(ctx); err == nil {
		for _, s := range strategies {
			if s.ID == backtestStrategyID {
				strategyName = s.Name
				break
			}
		}
	}
	stockName := backtestStockCode
	if quote, err := svcs.trade.StockPrice(ctx, backtestStockCode); err == nil && quote.StockName != "" {
		stockName = quote.StockName
	}

	req := strategy.BacktestRequest{
		StrategyID:     backtestStrategyID,
		StockCode:      backtestStockCode,
		StartDate:      start,
		EndDate:        end,
		InitialCapital: backtestCapital,
	}

	result, err := svcs.strategy.RunBacktest(ctx, req, strategyName, stockName)
	if err != nil {
		printErr(err)
		return nil
	}

	if err := renderBacktest(result); err != nil {
		printErr(err)
	}
	return nil
}

func runBacktestGet(cmd *cobra.Command, args []string) error {
	svcs, err := requireAuth(cmd)
	if err != nil {
		return nil
	}

	result, err := svcs.strategy.BacktestResult(context.Background(), args[0])
	if err != nil {
		printErr(err)
		return nil
	}

	if err := renderBacktest(result); err != nil {
		printErr(err)
	}
	return nil
}

func renderBacktest(r strategy.BacktestResult) error {
	if getFormat() == "json" {
		return output.JSON(r)
	}

	output.Header(fmt.Sprintf("%s on %s (%s)", r.StrategyName, r.StockName, r.StockCode))
	output.KeyValue([][]string{
		{"Period", fmt.Sprintf("%s to %s", r.StartDate, r.EndDate)},
		{"Initial Capital", output.Amount(r.InitialCapital)},
		{"Final Value", output.Amount(r.FinalValue)},
		{"Total Return", fmt.Sprintf("%s (%s)", output.Percent(r.TotalReturnRate), output.Amount(r.TotalReturn))},
		{"Max Drawdown", output.Percent(r.MaxDrawdown)},
		{"Sharpe Ratio", fmt.Sprintf("%.2f", r.SharpeRatio)},
		{"Win Rate", fmt.Sprintf("%.1f%%", r.WinRate)},
		{"Trades", fmt.Sprintf("%d (%d won / %d lost)", r.TotalTrades, r.ProfitableTrades, r.LosingTrades)},
	})

	if n := len(r.EquityCurve); n > 0 {
		fmt.Println()
		output.Header("Equity Curve")
		// Every point in JSON; sampled to ten rows here to keep the table short.
		step := n / 10
		if step < 1 {
			step = 1
		}
		var rows [][]string
		for i := 0; i < n; i += step {
			p := r.EquityCurve[i]
			rows = append(rows, []string{p.Date, output.Amount(p.Value)})
		}
		last := r.EquityCurve[n-1]
		if len(rows) == 0 || rows[len(rows)-1][0] != last.Date {
			rows = append(rows, []string{last.Date, output.Amount(last.Value)})
		}
		output.Table([]string{"Date", "Value"}, rows)
	}
	return nil
}

func runIndicator(cmd *cobra.Command, args []string) error {
	svcs, err := requireAuth(cmd)
	if err != nil {
		return nil
	}

	start, end := defaultDateRange(indicatorStart, indicatorEnd)
	series, err := svcs.strategy.IndicatorData(context.Background(), args[0], indicatorType, start, end)
	if err != nil {
		printErr(err)
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(series)
	}

	if len(series) == 0 {
		output.Info("No indicator data for that range.")
		return nil
	}

	output.Header(fmt.Sprintf("%s for %s", indicatorType, args[0]))
	rows := make([][]string, 0, len(series))
	for _, p := range series {
		rows = append(rows, []string{p.Date, output.Amount(p.Price), strconv.FormatFloat(p.Value, 'f', 2, 64)})
	}
	output.Table([]string{"Date", "Price", "Value"}, rows)
	return nil
}
