package output

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	UpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	DownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))
)

func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func Table(headers []string, rows [][]string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(headers)
	table.SetBorder(true)
	table.SetRowLine(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("│")
	table.SetColumnSeparator("│")
	table.SetRowSeparator("─")
	table.SetHeaderLine(true)
	table.SetTablePadding(" ")
	table.AppendBulk(rows)
	table.Render()
}

func KeyValue(pairs [][]string) {
	maxKeyLen := 0
	for _, pair := range pairs {
		if len(pair[0]) > maxKeyLen {
			maxKeyLen = len(pair[0])
		}
	}

	for _, pair := range pairs {
		key := MutedStyle.Render(fmt.Sprintf("%-*s", maxKeyLen, pair[0]))
		value := ValueStyle.Render(pair[1])
		fmt.Printf("%s  %s\n", key, value)
	}
}

func Success(msg string) {
	fmt.Println(SuccessStyle.Render("✓ ") + msg)
}

func Error(msg string) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ ")+msg)
}

func Warning(msg string) {
	fmt.Println(WarningStyle.Render("⚠ ") + msg)
}

func Info(msg string) {
	fmt.Println(MutedStyle.Render(msg))
}

func Header(msg string) {
	fmt.Println(HeaderStyle.Render(msg))
}

// Amount renders a whole-won amount with thousands separators, e.g. ₩5,000,000.
func Amount(v float64) string {
	s := strconv.FormatInt(int64(v), 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	out := ""
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(c)
	}
	if neg {
		out = "-" + out
	}
	return "₩" + out
}

// Percent renders a signed rate, colored red for gains and blue for losses the
// way Korean market displays do.
func Percent(v float64) string {
	s := fmt.Sprintf("%+.2f%%", v)
	switch {
	case v > 0:
		return UpStyle.Render(s)
	case v < 0:
		return DownStyle.Render(s)
	default:
		return s
	}
}

// Change renders a signed point change with the same color convention.
func Change(v float64) string {
	s := fmt.Sprintf("%+.0f", v)
	switch {
	case v > 0:
		return UpStyle.Render("▲ " + s)
	case v < 0:
		return DownStyle.Render("▼ " + s)
	default:
		return MutedStyle.Render("-")
	}
}

// RankChange renders a ranking move since the previous snapshot.
func RankChange(v int) string {
	switch {
	case v > 0:
		return UpStyle.Render(fmt.Sprintf("▲ %d", v))
	case v < 0:
		return DownStyle.Render(fmt.Sprintf("▼ %d", -v))
	default:
		return MutedStyle.Render("-")
	}
}

func FormatStatus(status string) string {
	switch status {
	case "FILLED":
		return SuccessStyle.Render(status)
	case "PENDING", "PARTIALLY_FILLED":
		return WarningStyle.Render(status)
	case "CANCELLED":
		return ErrorStyle.Render(status)
	default:
		return status
	}
}
