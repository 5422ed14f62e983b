package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/HaByeong/WhaleStream/internal/api"
	"github.com/HaByeong/WhaleStream/internal/output"
	"github.com/HaByeong/WhaleStream/internal/strategy"
)

var strategyCmd = &cobra.Command{
	Use:   "strategy",
	Short: "Manage backtesting strategies",
}

var strategyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your strategies",
	RunE:  runStrategyList,
}

var strategyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a strategy from a JSON definition",
	Long: `Create a strategy from a JSON file containing name, description,
indicators, entryConditions and exitConditions. Example:

  {
    "name": "RSI overbought/oversold",
    "description": "Buy under RSI 30, sell over 70",
    "indicators": [{"type": "RSI", "parameters": {"period": 14}}],
    "entryConditions": [{"indicator": "RSI", "operator": "LT", "value": 30, "logic": "AND"}],
    "exitConditions": [{"indicator": "RSI", "operator": "GT", "value": 70, "logic": "AND"}]
  }`,
	RunE: runStrategyCreate,
}

var strategyUpdateCmd = &cobra.Command{
	Use:   "update STRATEGY_ID",
	Short: "Replace a strategy's definition from a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE:  runStrategyUpdate,
}

var strategyDeleteCmd = &cobra.Command{
	Use:   "delete STRATEGY_ID",
	Short: "Delete a strategy",
	Args:  cobra.ExactArgs(1),
	RunE:  runStrategyDelete,
}

var strategyFile string

func init() {
	strategyCreateCmd.Flags().StringVar(&strategyFile, "file", "", "JSON strategy definition (required)")
	strategyCreateCmd.MarkFlagRequired("file")
	strategyUpdateCmd.Flags().StringVar(&strategyFile, "file", "", "JSON strategy definition (required)")
	strategyUpdateCmd.MarkFlagRequired("file")

	strategyCmd.AddCommand(strategyListCmd)
	strategyCmd.AddCommand(strategyCreateCmd)
	strategyCmd.AddCommand(strategyUpdateCmd)
	strategyCmd.AddCommand(strategyDeleteCmd)
	rootCmd.AddCommand(strategyCmd)
}

func readStrategyInput(path string) (strategy.StrategyInput, error) {
	var input strategy.StrategyInput
	data, err := os.ReadFile(path)
	if err != nil {
		return input, err
	}
	if err := json.Unmarshal(data, &input); err != nil {
		return input, fmt.Errorf("parse %s: %w", path, err)
	}
	if input.Name == "" {
		return input, fmt.Errorf("%s: strategy name is required", path)
	}
	return input, nil
}

func runStrategyList(cmd *cobra.Command, args []string) error {
	svcs, err := requireAuth(cmd)
	if err != nil {
		return nil
	}

	strategies, err := svcs.strategy.List(context.Background())
	if err != nil {
		printErr(err)
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(strategies)
	}

	if len(strategies) == 0 {
		output.Info("No strategies. Create one with 'whalestream strategy create --file strategy.json'.")
		return nil
	}

	rows := make([][]string, 0, len(strategies))
	for _, s := range strategies {
		indicators := ""
		for i, ind := range s.Indicators {
			if i > 0 {
				indicators += ", "
			}
			indicators += ind.Type
		}
		rows = append(rows, []string{
			s.ID,
			s.Name,
			indicators,
			strconv.Itoa(len(s.EntryConditions)),
			strconv.Itoa(len(s.ExitConditions)),
			s.UpdatedAt,
		})
	}
	output.Table([]string{"ID", "Name", "Indicators", "Entry", "Exit", "Updated"}, rows)
	return nil
}

func runStrategyCreate(cmd *cobra.Command, args []string) error {
	svcs, err := requireAuth(cmd)
	if err != nil {
		return nil
	}

	input, err := readStrategyInput(strategyFile)
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	created, err := svcs.strategy.Create(context.Background(), input)
	if err != nil {
		printErr(err)
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(created)
	}
	output.Success(fmt.Sprintf("Strategy %q created (id %s).", created.Name, created.ID))
	return nil
}

func runStrategyUpdate(cmd *cobra.Command, args []string) error {
	svcs, err := requireAuth(cmd)
	if err != nil {
		return nil
	}

	input, err := readStrategyInput(strategyFile)
	if err != nil {
		output.Error(err.Error())
		return nil
	}

	updated, err := svcs.strategy.Update(context.Background(), args[0], input)
	if err != nil {
		printErr(err)
		return nil
	}

	if getFormat() == "json" {
		return output.JSON(updated)
	}
	output.Success(fmt.Sprintf("Strategy %q updated.", updated.Name))
	return nil
}

func runStrategyDelete(cmd *cobra.Command, args []string) error {
	svcs, err := requireAuth(cmd)
	if err != nil {
		return nil
	}

	if err := svcs.strategy.Delete(context.Background(), args[0]); err != nil {
		// Demo strategies only exist in fabricated lists; with no backend to
		// own them, deleting one is a no-op rather than an error.
		if api.IsUnavailable(err) {
			output.Warning("Backend unavailable; the strategy only existed in demo data and is gone from this session.")
			return nil
		}
		printErr(err)
		return nil
	}
	output.Success("Strategy deleted.")
	return nil
}
