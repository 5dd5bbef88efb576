// Package report computes keyword-frequency and salary summary statistics
// over compiled job datasets.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pterm/pterm"

	"github.com/logan416ah-cloud/jobsearch/internal/dataset"
)

// KeywordStat summarizes how often one keyword appears across a dataset
type KeywordStat struct {
	Keyword         string  `json:"keyword"`
	Occurrences     int     `json:"occurrences"`
	Count           int     `json:"count"`
	PercentTotal    float64 `json:"percent_total"`
	PercentFiltered float64 `json:"percent_filtered"`
}

// Keywords counts keyword mentions in job descriptions, case-insensitively.
// Count is the number of listings containing the keyword at least once;
// PercentFiltered is relative to listings matching any of the keywords.
func Keywords(rows []dataset.Row, keywords ...string) []KeywordStat {
	if len(rows) == 0 || len(keywords) == 0 {
		return nil
	}

	descriptions := make([]string, len(rows))
	for i, row := range rows {
		descriptions[i] = strings.ToLower(stripHTML(row.Description))
	}

	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}

	// Listings matching at least one keyword, for the filtered percentage.
	matchedRows := 0
	for _, desc := range descriptions {
		for _, kw := range lowered {
			if strings.Contains(desc, kw) {
				matchedRows++
				break
			}
		}
	}

	stats := make([]KeywordStat, 0, len(keywords))
	for i, kw := range lowered {
		occurrences, count := 0, 0
		for _, desc := range descriptions {
			n := strings.Count(desc, kw)
			occurrences += n
			if n > 0 {
				count++
			}
		}

		stat := KeywordStat{
			Keyword:     keywords[i],
			Occurrences: occurrences,
			Count:       count,
		}
		if len(rows) > 0 {
			stat.PercentTotal = round2(float64(count) / float64(len(rows)) * 100)
		}
		if matchedRows > 0 {
			stat.PercentFiltered = round2(float64(count) / float64(matchedRows) * 100)
		}

		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Occurrences != stats[j].Occurrences {
			return stats[i].Occurrences > stats[j].Occurrences
		}
		return stats[i].Count > stats[j].Count
	})

	return stats
}

// stripHTML reduces HTML fragments in a description to plain text. Listings
// that are already plain text pass through unchanged.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

// RenderKeywords prints keyword stats as a table
func RenderKeywords(stats []KeywordStat) error {
	if len(stats) == 0 {
		pterm.Warning.Println("No keyword data to display")
		return nil
	}

	data := pterm.TableData{
		{"Keyword", "Occurrences", "Listings", "% of Total", "% of Matched"},
	}
	for _, s := range stats {
		data = append(data, []string{
			s.Keyword,
			fmt.Sprintf("%d", s.Occurrences),
			fmt.Sprintf("%d", s.Count),
			fmt.Sprintf("%.2f", s.PercentTotal),
			fmt.Sprintf("%.2f", s.PercentFiltered),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
