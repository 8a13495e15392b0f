// Package aggregate derives the chartable per-age series from raw entries.
package aggregate

import (
	"sort"

	"github.com/Kohei100802/28-LifePlanner/internal/models"
)

// Point is the aggregated totals for one age.
type Point struct {
	// Age is the age this point applies to.
	Age int `json:"age"`

	// Income is the sum of income entry amounts at this age.
	Income int `json:"income"`

	// Expense is the sum of expense entry amounts at this age.
	Expense int `json:"expense"`

	// Balance is income minus expense. Can be negative.
	Balance int `json:"balance"`
}

// Series computes one Point per distinct age appearing in entries, sorted by
// age ascending. Entries sharing an age and kind are summed. An age with no
// entries of one kind contributes 0 for that kind. Ages absent from the input
// are absent from the output; nothing is interpolated.
//
// The input slice is never mutated. An empty or nil input yields a nil series.
func Series(entries []models.Entry) []Point {
	if len(entries) == 0 {
		return nil
	}

	totals := make(map[int]*Point)
	for _, e := range entries {
		p, ok := totals[e.Age]
		if !ok {
			p = &Point{Age: e.Age}
			totals[e.Age] = p
		}
		switch e.Kind {
		case models.KindIncome:
			p.Income += e.Amount
		case models.KindExpense:
			p.Expense += e.Amount
		}
	}

	series := make([]Point, 0, len(totals))
	for _, p := range totals {
		p.Balance = p.Income - p.Expense
		series = append(series, *p)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Age < series[j].Age })

	return series
}
