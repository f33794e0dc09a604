// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package finance builds the toy three-year income statement used to ground
// the financial role. It is pure arithmetic with no state.
package finance

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/ideation-engine/pkg/types"
)

// Default projection assumptions.
const (
	DefaultInitialRevenue = 250000
	DefaultGrowthRate     = 0.25
	DefaultYears          = 3
)

// Assumptions drive a projection. Percentages are 0..100.
type Assumptions struct {
	InitialRevenue     float64 `json:"initial_revenue" yaml:"initial_revenue"`
	GrowthRate         float64 `json:"growth_rate" yaml:"growth_rate"`
	COGSPercentage     float64 `json:"cogs_percentage" yaml:"cogs_percentage"`
	ExpensesPercentage float64 `json:"expenses_percentage" yaml:"expenses_percentage"`
	Years              int     `json:"years" yaml:"years"`
}

// DefaultAssumptions returns the standard revenue and growth with the given
// cost percentages.
func DefaultAssumptions(cogsPct, expensesPct float64) Assumptions {
	return Assumptions{
		InitialRevenue:     DefaultInitialRevenue,
		GrowthRate:         DefaultGrowthRate,
		COGSPercentage:     cogsPct,
		ExpensesPercentage: expensesPct,
		Years:              DefaultYears,
	}
}

// YearProjection is one row of the statement, rounded to cents.
type YearProjection struct {
	Year        int     `json:"year" yaml:"year"`
	Revenue     float64 `json:"revenue" yaml:"revenue"`
	COGS        float64 `json:"cogs" yaml:"cogs"`
	GrossProfit float64 `json:"gross_profit" yaml:"gross_profit"`
	Expenses    float64 `json:"expenses" yaml:"expenses"`
	NetIncome   float64 `json:"net_income" yaml:"net_income"`
}

// Statement is a multi-year income projection.
type Statement struct {
	Assumptions Assumptions      `json:"assumptions" yaml:"assumptions"`
	Rows        []YearProjection `json:"rows" yaml:"rows"`
}

// Project computes revenue = initial * (1+growth)^year for years 1..Years,
// with COGS and expenses as percentages of revenue, gross profit = revenue -
// COGS and net income = gross profit - expenses.
func Project(a Assumptions) (Statement, error) {
	if err := a.validate(); err != nil {
		return Statement{}, err
	}

	rows := make([]YearProjection, 0, a.Years)
	for year := 1; year <= a.Years; year++ {
		revenue := a.InitialRevenue * math.Pow(1+a.GrowthRate, float64(year))
		cogs := revenue * a.COGSPercentage / 100
		expenses := revenue * a.ExpensesPercentage / 100
		gross := revenue - cogs
		rows = append(rows, YearProjection{
			Year:        year,
			Revenue:     cents(revenue),
			COGS:        cents(cogs),
			GrossProfit: cents(gross),
			Expenses:    cents(expenses),
			NetIncome:   cents(gross - expenses),
		})
	}
	return Statement{Assumptions: a, Rows: rows}, nil
}

func (a Assumptions) validate() error {
	switch {
	case a.Years < 1:
		return fmt.Errorf("%w: projection needs at least one year", types.ErrConfiguration)
	case a.InitialRevenue < 0:
		return fmt.Errorf("%w: initial revenue must not be negative", types.ErrConfiguration)
	case a.GrowthRate <= -1:
		return fmt.Errorf("%w: growth rate must be above -100%%", types.ErrConfiguration)
	case a.COGSPercentage < 0 || a.COGSPercentage > 100:
		return fmt.Errorf("%w: COGS percentage %.2f outside 0..100", types.ErrConfiguration, a.COGSPercentage)
	case a.ExpensesPercentage < 0 || a.ExpensesPercentage > 100:
		return fmt.Errorf("%w: expenses percentage %.2f outside 0..100", types.ErrConfiguration, a.ExpensesPercentage)
	}
	return nil
}

// Markdown renders the statement as a pipe table with dollar amounts.
func (s Statement) Markdown() string {
	var b strings.Builder
	b.WriteString("Year | Revenue | COGS | Gross Profit | Expenses | Net Income\n")
	b.WriteString("--- | --- | --- | --- | --- | ---\n")
	for _, r := range s.Rows {
		fmt.Fprintf(&b, "%d | %s | %s | %s | %s | %s\n",
			r.Year, FormatUSD(r.Revenue), FormatUSD(r.COGS), FormatUSD(r.GrossProfit), FormatUSD(r.Expenses), FormatUSD(r.NetIncome))
	}
	return b.String()
}

// FormatUSD formats v as "$1,234.56"; negatives render as "$-1,234.56".
func FormatUSD(v float64) string {
	neg := v < 0
	digits := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	whole, frac, _ := strings.Cut(digits, ".")

	var b strings.Builder
	b.WriteString("$")
	if neg {
		b.WriteString("-")
	}
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteString(".")
	b.WriteString(frac)
	return b.String()
}

// ParsePercentage reads a business parameter holding a 0..100 percentage.
func ParsePercentage(params types.BusinessParams, key string) (float64, error) {
	raw := strings.TrimSpace(params[key])
	if raw == "" {
		return 0, fmt.Errorf("%w: missing required parameter(s): %s", types.ErrConfiguration, key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 100 {
		return 0, fmt.Errorf("%w: %s %q must be a number between 0 and 100", types.ErrConfiguration, key, raw)
	}
	return v, nil
}

func cents(v float64) float64 {
	return math.Round(v*100) / 100
}
