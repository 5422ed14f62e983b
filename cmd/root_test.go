package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
)

func TestGetFormat_Precedence(t *testing.T) {
	// The checks share global flag and viper state, so they run in order from
	// lowest precedence to highest.
	if got := getFormat(); got != "table" {
		t.Errorf("getFormat() with no config = %q, want the table default", got)
	}

	viper.SetConfigType("yaml")
	if err := viper.ReadConfig(bytes.NewBufferString("format: json\n")); err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}
	if got := getFormat(); got != "json" {
		t.Errorf("getFormat() with config = %q, want json from the config file", got)
	}

	if err := rootCmd.PersistentFlags().Set("format", "table"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if got := getFormat(); got != "table" {
		t.Errorf("getFormat() with explicit flag = %q, want the flag to beat the config", got)
	}
}
