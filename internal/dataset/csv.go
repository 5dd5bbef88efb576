package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/logan416ah-cloud/jobsearch/internal/models"
	"github.com/logan416ah-cloud/jobsearch/internal/salary"
)

// Column order for persisted listing files.
var listingHeader = []string{
	"job_title", "company", "location", "state",
	"qualifications", "salary", "description", "link",
}

// Extra columns appended to compiled dataset files.
var detailHeader = []string{
	"min_raw", "max_raw", "avg_value",
	"min_annualized", "max_annualized", "annualized_avg", "period",
}

// WriteListings saves listings to path as CSV
func WriteListings(path string, listings []models.JobListing) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(listingHeader); err != nil {
		return err
	}

	for _, l := range listings {
		record := []string{
			l.Title, l.Company, l.Location, l.State,
			l.Qualifications, l.Salary, l.Description, l.Link,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// ReadListings loads a listing CSV. Column positions are resolved from the
// header row, so files written before the state column existed still load.
// An empty file yields no rows and no error.
func ReadListings(path string) ([]models.JobListing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %v", path, err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var listings []models.JobListing
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %v", path, err)
		}

		listings = append(listings, models.JobListing{
			Title:          field(record, "job_title"),
			Company:        field(record, "company"),
			Location:       field(record, "location"),
			State:          field(record, "state"),
			Qualifications: field(record, "qualifications"),
			Salary:         field(record, "salary"),
			Description:    field(record, "description"),
			Link:           field(record, "link"),
		})
	}

	return listings, nil
}

// WriteRows saves a compiled dataset, listing columns plus the seven
// normalized salary columns.
func WriteRows(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := append(append([]string{}, listingHeader...), detailHeader...)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.Title, row.Company, row.Location, row.State,
			row.Qualifications, row.Salary, row.Description, row.Link,
		}
		record = append(record,
			formatNullable(row.Detail.MinRaw),
			formatNullable(row.Detail.MaxRaw),
			formatNullable(row.Detail.AvgValue),
			formatNullable(row.Detail.MinAnnualized),
			formatNullable(row.Detail.MaxAnnualized),
			formatNullable(row.Detail.AnnualizedAvg),
			string(row.Detail.Period),
		)
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// formatNullable renders a nullable numeric column, empty when absent
func formatNullable(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// Row is one compiled dataset row: the raw listing plus its normalized
// salary detail.
type Row struct {
	models.JobListing
	Detail salary.Detail
}
