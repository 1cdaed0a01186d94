package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack/internal/simulator"
	"github.com/lox/blackjack/internal/statistics"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	moneyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	lossStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// printReport renders a simulation report: the final-bankroll table
// followed by each player's statistics.
func printReport(report *simulator.Report, specs []playerSpec) {
	fmt.Printf("Rounds played: %d", report.RoundsPlayed)
	if report.Elapsed > 0 {
		fmt.Printf(" in %s", report.Elapsed.Round(time.Millisecond))
	}
	fmt.Println()
	fmt.Println()

	fmt.Println(sectionStyle.Render("Final bankrolls"))
	for _, spec := range specs {
		final := report.FinalBankrolls[spec.Name]
		fmt.Printf("  %s: %s %s\n",
			spec.Name,
			moneyStyle.Render(fmt.Sprintf("$%.2f", final)),
			deltaString(final-spec.Bankroll))
	}

	for _, spec := range specs {
		if stats, ok := report.Stats[spec.Name]; ok {
			printPlayerStats(spec, stats)
		}
	}
}

func printPlayerStats(spec playerSpec, stats *statistics.PlayerStats) {
	fmt.Println()
	fmt.Println(sectionStyle.Render(spec.Name) + mutedStyle.Render(" ("+spec.Strategy+")"))
	fmt.Printf("  Rounds: %d (%d won, %d lost, %d pushed, %d blackjacks, %d sat out)\n",
		stats.Rounds, stats.Wins, stats.Losses, stats.Pushes, stats.Blackjacks, stats.Skips)
	if stats.Rounds == 0 {
		return
	}

	low, high := stats.ConfidenceInterval95()
	fmt.Printf("  Win rate: %.1f%%\n", stats.WinRate()*100)
	fmt.Printf("  Net: %+.4f units/round (median %+.2f, stddev %.4f)\n",
		stats.Mean(), stats.Median(), stats.StdDev())
	fmt.Printf("  95%% CI: [%+.4f, %+.4f] units/round\n", low, high)
	fmt.Printf("  Max drawdown: $%.2f\n", stats.MaxDrawdown())
}

// printSweepReport renders per-player aggregates across seeds, then the
// per-seed detail.
func printSweepReport(report *simulator.SweepReport, specs []playerSpec) {
	fmt.Println(sectionStyle.Render("Final bankroll across seeds"))
	for _, spec := range specs {
		fmt.Printf("  %s: mean %s, stddev %.2f %s\n",
			spec.Name,
			moneyStyle.Render(fmt.Sprintf("$%.2f", report.MeanFinalBankroll(spec.Name))),
			report.StdDevFinalBankroll(spec.Name),
			mutedStyle.Render(fmt.Sprintf("(%d seeds)", len(report.Seeds))))
	}

	fmt.Println()
	fmt.Println(sectionStyle.Render("Per-seed results"))
	for _, seed := range report.Seeds {
		r := report.Reports[seed]
		line := fmt.Sprintf("  seed %d: %d rounds", seed, r.RoundsPlayed)
		for _, spec := range specs {
			line += fmt.Sprintf(", %s $%.2f", spec.Name, r.FinalBankrolls[spec.Name])
		}
		fmt.Println(line)
	}
}

func deltaString(delta float64) string {
	switch {
	case delta > 0:
		return moneyStyle.Render(fmt.Sprintf("(+$%.2f)", delta))
	case delta < 0:
		return lossStyle.Render(fmt.Sprintf("(-$%.2f)", -delta))
	default:
		return mutedStyle.Render("(level)")
	}
}
