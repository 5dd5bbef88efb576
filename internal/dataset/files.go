// Package dataset persists job listings as CSV files and compiles them into
// aggregate datasets with normalized salary columns.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	appDirName      = ".jobsearch"
	listingsDirName = "Job_Listings"

	dateLayout = "2006-01-02"
)

var fileDateRegex = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// DataDir returns the listings directory under the user's home, creating it
// if needed.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %v", err)
	}

	dir := filepath.Join(home, appDirName, listingsDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %v", err)
	}

	return dir, nil
}

// SafeName converts a job title or location into its filename form
func SafeName(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
}

// ListingFilename builds the canonical per-search CSV name:
// {Location}_{Job_Title}_jobs_{YYYY-MM-DD}.csv
func ListingFilename(location, jobTitle string, date time.Time) string {
	return fmt.Sprintf("%s_%s_jobs_%s.csv", SafeName(location), SafeName(jobTitle), date.Format(dateLayout))
}

// CombinedFilename names the all-states roll-up CSV for one search day
func CombinedFilename(jobTitle string, date time.Time) string {
	return fmt.Sprintf("ALL_STATES_%s_jobs_%s.csv", SafeName(jobTitle), date.Format(dateLayout))
}

// DatasetFilename names a compiled dataset CSV
func DatasetFilename(label, jobTitle string, date time.Time) string {
	return fmt.Sprintf("%s_%s_dataset_%s.csv", label, SafeName(jobTitle), date.Format(dateLayout))
}

// DateFromFilename extracts the YYYY-MM-DD stamp embedded in a listing
// filename, or "" when absent.
func DateFromFilename(name string) string {
	return fileDateRegex.FindString(name)
}
