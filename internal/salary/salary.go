// Package salary normalizes free-text compensation strings into numeric,
// annualized values.
package salary

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Period is the pay cadence detected in a salary string.
type Period string

const (
	PeriodHour  Period = "hour"
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// Annualization factors per pay period.
const (
	hoursPerYear  = 40 * 52
	daysPerYear   = 260
	weeksPerYear  = 52
	monthsPerYear = 12
)

// Detail is the parsed form of a raw salary string. Either every field is
// set or none are: a Detail with a nil MinRaw carries no salary information
// at all and Period is empty.
type Detail struct {
	MinRaw        *float64 `json:"min_raw"`
	MaxRaw        *float64 `json:"max_raw"`
	AvgValue      *float64 `json:"avg_value"`
	MinAnnualized *float64 `json:"min_annualized"`
	MaxAnnualized *float64 `json:"max_annualized"`
	AnnualizedAvg *float64 `json:"annualized_avg"`
	Period        Period   `json:"period"`
}

// Valid reports whether the detail carries salary information.
func (d Detail) Valid() bool {
	return d.MinRaw != nil
}

var (
	parensRegex = regexp.MustCompile(`\(.*?\)`)
	hourRegex   = regexp.MustCompile(`hour|/hr|/h|\bhr\b`)
	dayRegex    = regexp.MustCompile(`day|/day`)
	weekRegex   = regexp.MustCompile(`\bweek\b|/week|/wk\b`)
	yearRegex   = regexp.MustCompile(`yr|/yr|per year`)
	rangeRegex  = regexp.MustCompile(`(?i)([\d.]+k?)\s*[–-]\s*([\d.]+k?)`)
	singleRegex = regexp.MustCompile(`(?i)([\d.]+k?)`)

	cleaner = strings.NewReplacer(",", "", "US$", "", "$", "")
)

// Parse converts raw salary text into a Detail.
//
// It handles formats such as:
//
//	"130K-160K a year"
//	"30.00-37.50 an hour"
//	"6,211-15,211 a month"
//	"90K a year"
//	"US$132K-US$180K a year"
//	"$65K-$90K a year"
//
// Missing, blank, or unparseable input degrades to the zero Detail; Parse
// never fails for any input.
func Parse(raw string) Detail {
	if strings.TrimSpace(raw) == "" {
		return Detail{}
	}

	// The period has to come from the original text since the words that
	// carry it are discarded by the numeric cleanup below.
	period := detectPeriod(raw)

	s := parensRegex.ReplaceAllString(raw, "")
	s = strings.TrimSpace(cleaner.Replace(s))

	var low, high float64
	if m := rangeRegex.FindStringSubmatch(s); m != nil {
		var err error
		if low, err = convertNumber(m[1]); err != nil {
			return Detail{}
		}
		if high, err = convertNumber(m[2]); err != nil {
			return Detail{}
		}
	} else if m := singleRegex.FindStringSubmatch(s); m != nil {
		// Single figure like "90K a year" or "45/hr": treat as a
		// zero-width range.
		v, err := convertNumber(m[1])
		if err != nil {
			return Detail{}
		}
		low, high = v, v
	} else {
		return Detail{}
	}

	avg := (low + high) / 2

	var factor float64
	switch period {
	case PeriodHour:
		factor = hoursPerYear
	case PeriodDay:
		factor = daysPerYear
	case PeriodWeek:
		factor = weeksPerYear
	case PeriodMonth:
		factor = monthsPerYear
	default:
		factor = 1
	}

	return Detail{
		MinRaw:        ptr(low),
		MaxRaw:        ptr(high),
		AvgValue:      ptr(round2(avg)),
		MinAnnualized: ptr(round2(low * factor)),
		MaxAnnualized: ptr(round2(high * factor)),
		AnnualizedAvg: ptr(round2(avg * factor)),
		Period:        period,
	}
}

// detectPeriod infers the pay period from the unmodified salary text. The
// checks run in a fixed priority order; the first cue wins, and text with no
// cue at all is assumed to be yearly.
func detectPeriod(raw string) Period {
	text := strings.ToLower(raw)

	switch {
	case hourRegex.MatchString(text):
		return PeriodHour
	case dayRegex.MatchString(text):
		return PeriodDay
	case weekRegex.MatchString(text):
		return PeriodWeek
	case strings.Contains(text, "month"):
		return PeriodMonth
	case yearRegex.MatchString(text):
		return PeriodYear
	default:
		return PeriodYear
	}
}

// convertNumber parses a numeric token, expanding a trailing k/K to
// thousands ("130K" -> 130000, "37.50" -> 37.5).
func convertNumber(value string) (float64, error) {
	value = strings.ToLower(strings.TrimSpace(value))

	if v, ok := strings.CutSuffix(value, "k"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, err
		}
		return f * 1000, nil
	}

	return strconv.ParseFloat(value, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ptr(v float64) *float64 {
	return &v
}
