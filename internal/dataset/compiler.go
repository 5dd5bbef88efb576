package dataset

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"

	"github.com/logan416ah-cloud/jobsearch/internal/salary"
)

// CompileOptions selects which listing files to merge into a dataset
type CompileOptions struct {
	JobTitle  string
	State     string // mutually exclusive with AllStates
	AllStates bool
	Save      bool

	// Optional date filters. Date, when set, overrides Year/Month/Day.
	Year  int
	Month int
	Day   int
	Date  *time.Time

	// Dir overrides the default data directory. Used by tests.
	Dir string
}

// filePattern builds the glob used to select listing files
func (o CompileOptions) filePattern() (string, error) {
	if o.AllStates == (o.State != "") {
		return "", fmt.Errorf("specify either a state or all states, but not both")
	}

	label := "*"
	if !o.AllStates {
		label = SafeName(o.State)
	}
	prefix := fmt.Sprintf("%s_%s_jobs_", label, SafeName(o.JobTitle))

	year, month, day := o.Year, o.Month, o.Day
	if o.Date != nil {
		year, month, day = o.Date.Year(), int(o.Date.Month()), o.Date.Day()
	}

	if (month != 0 || day != 0) && year == 0 {
		return "", fmt.Errorf("year is required when filtering by month or day")
	}

	switch {
	case year != 0 && month != 0 && day != 0:
		return fmt.Sprintf("%s%d-%02d-%02d.csv", prefix, year, month, day), nil
	case year != 0 && month != 0:
		return fmt.Sprintf("%s%d-%02d-*.csv", prefix, year, month), nil
	case year != 0:
		return fmt.Sprintf("%s%d-*.csv", prefix, year), nil
	default:
		return prefix + "*.csv", nil
	}
}

// Compile loads every listing file matching the options, concatenates the
// rows, and attaches normalized salary columns to each. Optionally saves the
// result as a dataset CSV next to the listing files.
func Compile(opts CompileOptions) ([]Row, error) {
	pattern, err := opts.filePattern()
	if err != nil {
		return nil, err
	}

	dir := opts.Dir
	if dir == "" {
		if dir, err = DataDir(); err != nil {
			return nil, err
		}
	}

	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("bad file pattern: %v", err)
	}
	if len(files) == 0 {
		return nil, nil
	}

	bar := pb.StartNew(len(files))
	bar.Set("prefix", "Loading job data ")
	defer bar.Finish()

	var rows []Row
	for _, f := range files {
		listings, err := ReadListings(f)
		if err != nil {
			return nil, err
		}
		bar.Increment()

		for _, l := range listings {
			rows = append(rows, Row{
				JobListing: l,
				Detail:     salary.Parse(l.Salary),
			})
		}
	}

	if opts.Save && len(rows) > 0 {
		label := "ALL_STATES"
		if !opts.AllStates {
			label = SafeName(opts.State)
		}
		name := DatasetFilename(label, opts.JobTitle, time.Now())
		if err := WriteRows(filepath.Join(dir, name), rows); err != nil {
			return rows, err
		}
	}

	return rows, nil
}
