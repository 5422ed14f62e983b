package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HaByeong/WhaleStream/internal/output"
	"github.com/HaByeong/WhaleStream/internal/ranking"
)

var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Show the portfolio return rankings",
	Long: `Show the current ranking snapshot, ordered by total return. Your own
entry is marked. Pass a portfolio id to 'whalestream portfolio' to
inspect any listed portfolio.`,
	RunE: runRanking,
}

var (
	rankingType string
	rankingPage int
	rankingSize int
)

func init() {
	rankingCmd.Flags().StringVar(&rankingType, "type", ranking.TypeAll, "period: all, daily, weekly, monthly")
	rankingCmd.Flags().IntVar(&rankingPage, "page", 0, "page number, starting at 0")
	rankingCmd.Flags().IntVar(&rankingSize, "size", 20, "entries per page")
	rootCmd.AddCommand(rankingCmd)
}

func runRanking(cmd *cobra.Command, args []string) error {
	svcs, err := requireAuth(cmd)
	if err != nil {
		return nil
	}

	switch rankingType {
	case ranking.TypeAll, ranking.TypeDaily, ranking.TypeWeekly, ranking.TypeMonthly:
	default:
		output.Error("--type must be all, daily, weekly or monthly.")
		return nil
	}
	if rankingPage < 0 {
		output.Error("--page must be 0 or greater.")
		return nil
	}
	if rankingSize <= 0 {
		output.Error("--size must be positive.")
		return nil
	}

	resp, err := svcs.ranking.Rankings(context.Background(), rankingType, rankingPage, rankingSize)
	if err != nil {
		printErr(err)
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(resp)
	}

	output.Header(fmt.Sprintf("Rankings (%s) as of %s", resp.RankingType, resp.SnapshotDate))
	if len(resp.Rankings) == 0 {
		output.Info("No entries on this page.")
		return nil
	}

	rows := make([][]string, 0, len(resp.Rankings))
	for _, e := range resp.Rankings {
		nickname := e.Nickname
		if e.IsMyRanking {
			nickname = output.SuccessStyle.Render(nickname + " (me)")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.Rank),
			output.RankChange(e.RankChange),
			nickname,
			e.PortfolioName,
			output.Percent(e.TotalReturn),
			output.Amount(e.TotalValue),
			e.PortfolioID,
		})
	}
	output.Table([]string{"Rank", "Move", "Nickname", "Portfolio", "Return", "Value", "ID"}, rows)
	output.Info(fmt.Sprintf("Page %d, %d entries total.", rankingPage, resp.TotalCount))
	return nil
}
