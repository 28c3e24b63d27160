package main

import (
	"fmt"
	"strings"

	"github.com/syntrade-lab/syntrade/internal/engine"
)

// renderReport formats one run's metrics as a terminal table.
func renderReport(result *engine.Result) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(fmt.Sprintf("── %s ──", result.Symbol)))
	b.WriteString("\n")

	m := result.Metrics

	row := func(label, value string) {
		b.WriteString(LabelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("Final Equity", fmt.Sprintf("$%.2f", m.FinalEquity))
	row("Total Return", FormatSignedPercent(m.TotalReturn))
	row("CAGR", FormatSignedPercent(m.CAGR))
	row("Sharpe Ratio", fmt.Sprintf("%.3f", m.Sharpe))
	row("Sortino Ratio", fmt.Sprintf("%.3f", m.Sortino))
	row("Calmar Ratio", fmt.Sprintf("%.3f", m.Calmar))
	row("Max Drawdown", FormatSignedPercent(m.MaxDrawdown))
	row("Win Rate", fmt.Sprintf("%.1f%%", m.WinRate))
	row("Profit Factor", fmt.Sprintf("%.2f", m.ProfitFactor))
	row("Exposure", fmt.Sprintf("%.1f%%", m.Exposure))
	row("Volatility (Ann)", fmt.Sprintf("%.2f%%", m.AnnualizedVolatility))
	row("Trades", fmt.Sprintf("%d", m.TradeCount))

	return b.String()
}
