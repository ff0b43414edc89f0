package export

import (
	"errors"
	"fmt"

	"github.com/go-analyze/charts"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
)

// ErrNothingToChart is returned when there is no spending to draw.
var ErrNothingToChart = errors.New("no expenses to chart")

// CategoryPie renders the category breakdown as a PNG pie chart.
func CategoryPie(title string, shares []engine.CategoryShare) ([]byte, error) {
	var values []float64
	var names []string
	for _, s := range shares {
		if !s.Amount.IsPositive() {
			continue
		}
		values = append(values, s.Amount.InexactFloat64())
		names = append(names, s.Name)
	}
	if len(values) == 0 {
		return nil, ErrNothingToChart
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{Text: title}),
		charts.LegendLabelsOptionFunc(names),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}
