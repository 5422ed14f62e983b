package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/HaByeong/WhaleStream/internal/output"
	"github.com/HaByeong/WhaleStream/internal/trade"
)

const marketPollInterval = 5 * time.Second

var marketWatch bool

var marketCmd = &cobra.Command{
	Use:   "market [STOCK_CODE]",
	Short: "Show the market board or a single quote",
	Long: `Show current prices for all tradable stocks, or one stock when a code
is given. With --watch the board refreshes every 5 seconds until
interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMarket,
}

func init() {
	marketCmd.Flags().BoolVarP(&marketWatch, "watch", "w", false, "refresh every 5 seconds")
	rootCmd.AddCommand(marketCmd)
}

func runMarket(cmd *cobra.Command, args []string) error {
	svcs, err := requireAuth(cmd)
	if err != nil {
		return nil
	}

	code := ""
	if len(args) == 1 {
		code = args[0]
	}

	render := func(ctx context.Context) error {
		if code != "" {
			quote, err := svcs.trade.StockPrice(ctx, code)
			if err != nil {
				return err
			}
			return renderQuote(quote)
		}
		stocks, err := svcs.trade.StockList(ctx)
		if err != nil {
			return err
		}
		return renderBoard(stocks)
	}

	if marketWatch {
		if err := watchLoop(marketPollInterval, render); err != nil {
			printErr(err)
		}
		return nil
	}
	if err := render(context.Background()); err != nil {
		printErr(err)
	}
	return nil
}

func renderBoard(stocks []trade.StockPrice) error {
	if getFormat() == "json" {
		return output.JSON(stocks)
	}

	output.Header(fmt.Sprintf("Market  %s", time.Now().Format("15:04:05")))
	rows := make([][]string, 0, len(stocks))
	for _, s := range stocks {
		rows = append(rows, []string{
			s.StockCode,
			s.StockName,
			output.Amount(s.CurrentPrice),
			output.Change(s.Change),
			output.Percent(s.ChangeRate),
			strconv.FormatInt(s.Volume, 10),
		})
	}
	output.Table([]string{"Code", "Name", "Price", "Change", "Rate", "Volume"}, rows)
	return nil
}

func renderQuote(s trade.StockPrice) error {
	if getFormat() == "json" {
		return output.JSON(s)
	}

	output.Header(fmt.Sprintf("%s (%s)", s.StockName, s.StockCode))
	output.KeyValue([][]string{
		{"Price", output.Amount(s.CurrentPrice)},
		{"Change", fmt.Sprintf("%s (%s)", output.Change(s.Change), output.Percent(s.ChangeRate))},
		{"Open", output.Amount(s.Open)},
		{"High", output.Amount(s.High)},
		{"Low", output.Amount(s.Low)},
		{"Prev Close", output.Amount(s.PreviousClose)},
		{"Volume", strconv.FormatInt(s.Volume, 10)},
	})
	return nil
}
