package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/logan416ah-cloud/jobsearch/internal/dataset"
)

// SalaryStats summarizes annualized salary figures across a dataset. The
// medians and means cover only listings that carried parseable salary text;
// Count is the full dataset size and WithSalary the number of priced rows.
type SalaryStats struct {
	MinSalaryMedian float64 `json:"min_salary_median"`
	MinSalaryMean   float64 `json:"min_salary_mean"`
	MaxSalaryMedian float64 `json:"max_salary_median"`
	MaxSalaryMean   float64 `json:"max_salary_mean"`
	AvgSalaryMedian float64 `json:"avg_salary_median"`
	AvgSalaryMean   float64 `json:"avg_salary_mean"`
	Count           int     `json:"count"`
	WithSalary      int     `json:"with_salary"`
}

// Summarize computes salary statistics over a compiled dataset. Returns nil
// when the dataset is empty.
func Summarize(rows []dataset.Row) *SalaryStats {
	if len(rows) == 0 {
		return nil
	}

	var mins, maxs, avgs []float64
	for _, row := range rows {
		if !row.Detail.Valid() {
			continue
		}
		mins = append(mins, *row.Detail.MinAnnualized)
		maxs = append(maxs, *row.Detail.MaxAnnualized)
		avgs = append(avgs, *row.Detail.AnnualizedAvg)
	}

	return &SalaryStats{
		MinSalaryMedian: median(mins),
		MinSalaryMean:   mean(mins),
		MaxSalaryMedian: median(maxs),
		MaxSalaryMean:   mean(maxs),
		AvgSalaryMedian: median(avgs),
		AvgSalaryMean:   mean(avgs),
		Count:           len(rows),
		WithSalary:      len(mins),
	}
}

// RenderSalaryStats prints the summary as a table with dollar formatting
func RenderSalaryStats(stats *SalaryStats) error {
	if stats == nil {
		pterm.Warning.Println("No salary data to display")
		return nil
	}

	money := func(v float64) string {
		if v == 0 {
			return "-"
		}
		return "$" + humanize.CommafWithDigits(v, 2)
	}

	data := pterm.TableData{
		{"Metric", "Median", "Mean"},
		{"Min annualized", money(stats.MinSalaryMedian), money(stats.MinSalaryMean)},
		{"Max annualized", money(stats.MaxSalaryMedian), money(stats.MaxSalaryMean)},
		{"Avg annualized", money(stats.AvgSalaryMedian), money(stats.AvgSalaryMean)},
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}

	fmt.Printf("%d listings, %d with salary information\n", stats.Count, stats.WithSalary)
	return nil
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
