package service

import (
	"fmt"
	"log/slog"

	"github.com/OleksandrChernysh/binance-trading-bot/internal/domain"
)

// FormatResults renders scan results as console report lines for the
// one-shot modes.
func FormatResults(title string, results []domain.PathResult) []string {
	lines := []string{fmt.Sprintf("--- %s ---", title)}
	for _, r := range results {
		if !r.Valid {
			lines = append(lines, fmt.Sprintf("%s: invalid (%s)", r.Label(), r.Reason))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: start=%g end=%.10f profit=%.10f (%.5f%%)",
			r.Label(), r.StartAmount, r.EndAmount, r.Profit, r.ProfitPct))
		for _, st := range r.Steps {
			lines = append(lines, fmt.Sprintf("  %s %s @ %g", st.Side, st.Symbol, st.Price))
		}
	}
	return lines
}

// report logs every path result of one scanner run.
func (s *ScanService) report(logger *slog.Logger, scanner string, results []domain.PathResult) {
	for _, r := range results {
		if !r.Valid {
			logger.Info("cycle invalid",
				slog.String("scanner", scanner),
				slog.String("path", r.Label()),
				slog.String("reason", r.Reason),
			)
			continue
		}
		logger.Info("cycle evaluated",
			slog.String("scanner", scanner),
			slog.String("path", r.Label()),
			slog.Float64("start", r.StartAmount),
			slog.Float64("end", r.EndAmount),
			slog.Float64("profit", r.Profit),
			slog.Float64("profit_pct", r.ProfitPct),
		)
	}
}
