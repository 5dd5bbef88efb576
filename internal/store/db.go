// Package store persists compiled job datasets in a local SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/logan416ah-cloud/jobsearch/internal/dataset"
	"github.com/logan416ah-cloud/jobsearch/internal/models"
	"github.com/logan416ah-cloud/jobsearch/internal/salary"
)

const (
	appDirName = ".jobsearch"
	dbFileName = "jobs.db"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	job_title TEXT,
	company TEXT,
	location TEXT,
	state TEXT,
	qualifications TEXT,
	description TEXT,
	salary TEXT,
	min_raw REAL,
	max_raw REAL,
	avg_value REAL,
	min_annualized REAL,
	max_annualized REAL,
	annualized_avg REAL,
	period TEXT,
	link TEXT UNIQUE,
	date_added TEXT
);

CREATE TABLE IF NOT EXISTS files_imported (
	filename TEXT PRIMARY KEY,
	imported_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_title ON jobs(job_title);
CREATE INDEX IF NOT EXISTS idx_state ON jobs(state);
CREATE INDEX IF NOT EXISTS idx_company ON jobs(company);
CREATE INDEX IF NOT EXISTS idx_link ON jobs(link);
`

const insertJob = `
INSERT OR IGNORE INTO jobs (
	job_title, company, location, state, qualifications, description,
	salary, min_raw, max_raw, avg_value,
	min_annualized, max_annualized, annualized_avg,
	period, link, date_added
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Store wraps the jobs database
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at ~/.jobsearch/jobs.db
func Open() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %v", err)
	}

	dir := filepath.Join(home, appDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %v", dir, err)
	}

	return OpenPath(filepath.Join(dir, dbFileName))
}

// OpenPath opens the database at an explicit path
func OpenPath(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %v", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertRows bulk-inserts compiled rows in one transaction. Rows whose link
// is already present are ignored, which is what deduplicates re-imports.
func (s *Store) InsertRows(rows []dataset.Row) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertJob)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.Exec(
			row.Title, row.Company, row.Location, nullString(row.State),
			row.Qualifications, row.Description, nullString(row.Salary),
			nullFloat(row.Detail.MinRaw), nullFloat(row.Detail.MaxRaw),
			nullFloat(row.Detail.AvgValue), nullFloat(row.Detail.MinAnnualized),
			nullFloat(row.Detail.MaxAnnualized), nullFloat(row.Detail.AnnualizedAvg),
			nullString(string(row.Detail.Period)),
			row.Link, nullString(row.DateAdded),
		)
		if err != nil {
			return fmt.Errorf("failed to insert job %q: %v", row.Title, err)
		}
	}

	return tx.Commit()
}

// FileImported reports whether a listing file has been imported before
func (s *Store) FileImported(filename string) (bool, error) {
	var name string
	err := s.db.QueryRow(
		"SELECT filename FROM files_imported WHERE filename = ?", filename,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MarkFileImported records a listing file as imported
func (s *Store) MarkFileImported(filename string) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO files_imported (filename, imported_at) VALUES (?, datetime('now'))",
		filename,
	)
	return err
}

// ImportListings walks every CSV in dir, normalizes salaries, and inserts
// the rows, skipping files already recorded in files_imported. The
// date_added column comes from the date stamp in each filename. Returns the
// number of files imported.
func (s *Store) ImportListings(dir string) (int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, nil
	}

	imported := 0
	for _, path := range files {
		name := filepath.Base(path)

		done, err := s.FileImported(name)
		if err != nil {
			return imported, err
		}
		if done {
			fmt.Printf("Skipping %s (already imported).\n", name)
			continue
		}

		fmt.Printf("Importing %s\n", name)

		listings, err := dataset.ReadListings(path)
		if err != nil {
			return imported, err
		}

		dateAdded := dataset.DateFromFilename(name)

		rows := make([]dataset.Row, 0, len(listings))
		for _, l := range listings {
			l.DateAdded = dateAdded
			rows = append(rows, dataset.Row{
				JobListing: l,
				Detail:     salary.Parse(l.Salary),
			})
		}

		if err := s.InsertRows(rows); err != nil {
			return imported, err
		}
		if err := s.MarkFileImported(name); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

// JobsByTitle retrieves stored rows whose job title contains the given text
func (s *Store) JobsByTitle(title string) ([]dataset.Row, error) {
	rows, err := s.db.Query(`
		SELECT job_title, company, location, state, qualifications,
		       description, salary, min_raw, max_raw, avg_value,
		       min_annualized, max_annualized, annualized_avg, period,
		       link, date_added
		FROM jobs WHERE job_title LIKE ?`,
		"%"+title+"%",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []dataset.Row
	for rows.Next() {
		var (
			l                                  models.JobListing
			state                              sql.NullString
			rawSal                             sql.NullString
			minR, maxR, avgV, minA, maxA, avgA sql.NullFloat64
			period, dateAdded                  sql.NullString
		)

		err := rows.Scan(
			&l.Title, &l.Company, &l.Location, &state, &l.Qualifications,
			&l.Description, &rawSal, &minR, &maxR, &avgV,
			&minA, &maxA, &avgA, &period,
			&l.Link, &dateAdded,
		)
		if err != nil {
			return nil, err
		}

		l.State = state.String
		l.Salary = rawSal.String
		l.DateAdded = dateAdded.String

		result = append(result, dataset.Row{
			JobListing: l,
			Detail: salary.Detail{
				MinRaw:        floatPtr(minR),
				MaxRaw:        floatPtr(maxR),
				AvgValue:      floatPtr(avgV),
				MinAnnualized: floatPtr(minA),
				MaxAnnualized: floatPtr(maxA),
				AnnualizedAvg: floatPtr(avgA),
				Period:        salary.Period(period.String),
			},
		})
	}

	return result, rows.Err()
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
