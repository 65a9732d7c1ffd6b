package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// csvHeader is the first row of every CSV export.
//
//nolint:gochecknoglobals // Fixed header row.
var csvHeader = []string{"section", "metric", "value", "unit"}

// SanitizeCell neutralizes text that a spreadsheet would evaluate as a
// formula by prefixing it with a single quote.
func SanitizeCell(s string) string {
	if s == "" {
		return s
	}
	if strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

// WriteCSV writes one row per metric. Values are written at full precision;
// text cells are sanitized.
func WriteCSV(w io.Writer, exp Export) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, m := range exp.Metrics() {
		rec := []string{
			SanitizeCell(m.Section),
			SanitizeCell(m.Name),
			strconv.FormatFloat(m.Value, 'f', -1, 64),
			SanitizeCell(m.Unit),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
