package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/HaByeong/WhaleStream/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change CLI configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Long: `Set a configuration value and write it to the config file.

Keys:
  api_url   backend base URL (default http://localhost:8080)
  format    default output format: table or json`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func configFilePath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".whalestream", "config.yaml"), nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	settings := map[string]interface{}{
		"api_url": viper.GetString("api_url"),
		"format":  viper.GetString("format"),
	}

	if getFormat() == "json" {
		return output.JSON(settings)
	}

	output.KeyValue([][]string{
		{"api_url", viper.GetString("api_url")},
		{"format", viper.GetString("format")},
	})
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	switch key {
	case "api_url":
	case "format":
		if value != "table" && value != "json" {
			output.Error("format must be table or json.")
			return nil
		}
	default:
		output.Error(fmt.Sprintf("Unknown key %q. Valid keys: api_url, format.", key))
		return nil
	}

	viper.Set(key, value)

	path, err := configFilePath()
	if err != nil {
		output.Error(err.Error())
		return nil
	}
	if err := viper.WriteConfigAs(path); err != nil {
		output.Error(fmt.Sprintf("Failed to write config: %v", err))
		return nil
	}

	output.Success(fmt.Sprintf("%s = %s", key, value))
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := configFilePath()
	if err != nil {
		output.Error(err.Error())
		return nil
	}
	if used := viper.ConfigFileUsed(); used != "" {
		path = used
	}
	fmt.Println(path)
	return nil
}
