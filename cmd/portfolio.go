package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/HaByeong/WhaleStream/internal/output"
	"github.com/HaByeong/WhaleStream/internal/ranking"
	"github.com/HaByeong/WhaleStream/internal/trade"
)

const portfolioPollInterval = 10 * time.Second

var portfolioWatch bool

var portfolioCmd = &cobra.Command{
	Use:   "portfolio [PORTFOLIO_ID]",
	Short: "Show your portfolio, or another user's ranked portfolio",
	Long: `Without arguments, show your own cash, holdings and return. With a
portfolio id (as listed by 'whalestream ranking'), show the public view
of that user's portfolio. With --watch your own portfolio refreshes
every 10 seconds.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPortfolio,
}

func init() {
	portfolioCmd.Flags().BoolVarP(&portfolioWatch, "watch", "w", false, "refresh every 10 seconds (own portfolio only)")
	rootCmd.AddCommand(portfolioCmd)
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	svcs, err := requireAuth(cmd)
	if err != nil {
		return nil
	}

	if len(args) == 1 {
		detail, err := svcs.ranking.PortfolioDetail(context.Background(), args[0])
		if err != nil {
			printErr(err)
			return nil
		}
		if err := renderPortfolioDetail(detail); err != nil {
			printErr(err)
		}
		return nil
	}

	render := func(ctx context.Context) error {
		p, err := svcs.trade.Portfolio(ctx)
		if err != nil {
			return err
		}
		return renderPortfolio(p)
	}

	if portfolioWatch {
		if err := watchLoop(portfolioPollInterval, render); err != nil {
			printErr(err)
		}
		return nil
	}
	if err := render(context.Background()); err != nil {
		printErr(err)
	}
	return nil
}

func renderPortfolio(p trade.Portfolio) error {
	if getFormat() == "json" {
		return output.JSON(p)
	}

	output.Header("Portfolio")
	output.KeyValue([][]string{
		{"Total Value", output.Amount(p.TotalValue)},
		{"Cash", output.Amount(p.CashBalance)},
		{"Return", output.Percent(p.ReturnRate)},
	})

	if len(p.Holdings) == 0 {
		output.Info("No holdings.")
		return nil
	}

	fmt.Println()
	rows := make([][]string, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		rows = append(rows, []string{
			h.StockCode,
			h.StockName,
			strconv.FormatInt(h.Quantity, 10),
			output.Amount(h.AveragePrice),
			output.Amount(h.CurrentPrice),
			output.Amount(h.MarketValue),
			output.Percent(h.ReturnRate),
		})
	}
	output.Table([]string{"Code", "Name", "Qty", "Avg", "Current", "Value", "Return"}, rows)
	return nil
}

func renderPortfolioDetail(d ranking.PortfolioDetail) error {
	if getFormat() == "json" {
		return output.JSON(d)
	}

	output.Header(fmt.Sprintf("%s by %s", d.PortfolioName, d.Nickname))
	output.KeyValue([][]string{
		{"Rank", strconv.Itoa(d.CurrentRank)},
		{"Total Value", output.Amount(d.TotalValue)},
		{"Return", fmt.Sprintf("%s (%s)", output.Percent(d.TotalReturn), output.Amount(d.TotalReturnAmount))},
		{"Initial Capital", output.Amount(d.InitialCapital)},
		{"Cash", output.Amount(d.CurrentCash)},
	})

	if len(d.Holdings) > 0 {
		fmt.Println()
		output.Header("Holdings")
		rows := make([][]string, 0, len(d.Holdings))
		for _, h := range d.Holdings {
			rows = append(rows, []string{
				h.StockCode,
				h.StockName,
				strconv.FormatInt(h.Quantity, 10),
				output.Amount(h.AvgPrice),
				output.Amount(h.CurrentPrice),
				output.Amount(h.Profit),
				output.Percent(h.ProfitRate),
			})
		}
		output.Table([]string{"Code", "Name", "Qty", "Avg", "Current", "Profit", "Rate"}, rows)
	}

	if len(d.RecentTrades) > 0 {
		fmt.Println()
		output.Header("Recent Trades")
		rows := make([][]string, 0, len(d.RecentTrades))
		for _, t := range d.RecentTrades {
			rows = append(rows, []string{
				t.Date,
				t.Type,
				t.StockName,
				strconv.FormatInt(t.Quantity, 10),
				output.Amount(t.Price),
				output.Amount(t.Amount),
			})
		}
		output.Table([]string{"Date", "Type", "Stock", "Qty", "Price", "Amount"}, rows)
	}
	return nil
}
