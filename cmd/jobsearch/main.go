package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/logan416ah-cloud/jobsearch/internal/config"
	"github.com/logan416ah-cloud/jobsearch/internal/dataset"
	"github.com/logan416ah-cloud/jobsearch/internal/models"
	"github.com/logan416ah-cloud/jobsearch/internal/report"
	"github.com/logan416ah-cloud/jobsearch/internal/serpapi"
	"github.com/logan416ah-cloud/jobsearch/internal/store"
	"github.com/logan416ah-cloud/jobsearch/internal/ui"
)

const headRows = 5

func usage() {
	fmt.Println("Usage: jobsearch <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  search    Search for jobs and optionally save them as CSV")
	fmt.Println("  dataset   Compile saved listing files into one dataset")
	fmt.Println("  import    Import saved listing files into the local database")
	fmt.Println("  keywords  Keyword frequency analysis over a compiled dataset")
	fmt.Println("  stats     Salary summary statistics over a compiled dataset")
	fmt.Println("  examples  Show usage examples")
}

// printExamples displays usage examples for the program
func printExamples() {
	fmt.Println("\n1. Search for Cybersecurity jobs in New York and save the results:")
	fmt.Println("   jobsearch search -job \"Cybersecurity\" -location \"New York\" -save")

	fmt.Println("\n2. Search every US state for a job title:")
	fmt.Println("   jobsearch search -job \"Data Engineer\" -all-states -save")

	fmt.Println("\n3. Compile all saved New Jersey listings into a dataset:")
	fmt.Println("   jobsearch dataset -job \"Cybersecurity\" -state \"New Jersey\" -save")

	fmt.Println("\n4. Compile listings from every state for one month:")
	fmt.Println("   jobsearch dataset -job \"Cybersecurity\" -all -year 2026 -month 8")

	fmt.Println("\n5. Import every saved CSV into the local SQLite database:")
	fmt.Println("   jobsearch import")

	fmt.Println("\n6. Keyword analysis across all states:")
	fmt.Println("   jobsearch keywords -job \"Cybersecurity\" -all python aws splunk \"Security+\"")

	fmt.Println("\n7. Salary statistics for one state:")
	fmt.Println("   jobsearch stats -job \"Cybersecurity\" -state \"California\"")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	switch os.Args[1] {
	case "search":
		runSearch(cfg, os.Args[2:])
	case "dataset":
		runDataset(cfg, os.Args[2:])
	case "import":
		runImport(cfg, os.Args[2:])
	case "keywords":
		runKeywords(cfg, os.Args[2:])
	case "stats":
		runStats(cfg, os.Args[2:])
	case "examples":
		printExamples()
	case "-h", "-help", "--help", "help":
		usage()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func runSearch(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	job := fs.String("job", "", "Job title to search (ex. 'Cybersecurity Analyst')")
	location := fs.String("location", "", "Location to search (ex. 'New Jersey')")
	allStates := fs.Bool("all-states", false, "Search every US state")
	save := fs.Bool("save", false, "Save results to CSV")
	silence := fs.Bool("silence", false, "Silence the banner")
	debug := fs.Bool("debug", false, "Enable debug output")
	fs.Parse(args)

	ui.PrintBanner(*silence)

	if *job == "" {
		log.Fatal("-job is required")
	}
	if *allStates == (*location != "") {
		log.Fatal("Specify either -location or -all-states, but not both")
	}
	if cfg.APIKey == "" {
		log.Fatal("No API key. Set SERPAPI_API_KEY or api_key in ~/.jobsearch/config.yaml")
	}

	client, err := serpapi.New(cfg.APIKey, *debug || cfg.Debug)
	if err != nil {
		log.Fatalf("Error creating API client: %v", err)
	}

	dir, err := dataDir(cfg)
	if err != nil {
		log.Fatalf("Error preparing data directory: %v", err)
	}
	today := time.Now()

	var listings []models.JobListing

	if *allStates {
		var visit func(state string, found []models.JobListing) error
		if *save {
			visit = func(state string, found []models.JobListing) error {
				path := filepath.Join(dir, dataset.ListingFilename(state, *job, today))
				if err := dataset.WriteListings(path, found); err != nil {
					return err
				}
				fmt.Printf("Saved %s CSV to: %s\n", state, path)
				return nil
			}
		}

		listings, err = client.SearchAllStates(*job, visit)
		if err != nil {
			log.Fatalf("Error searching: %v", err)
		}

		if *save && len(listings) > 0 {
			path := filepath.Join(dir, dataset.CombinedFilename(*job, today))
			if err := dataset.WriteListings(path, listings); err != nil {
				log.Fatalf("Error saving combined CSV: %v", err)
			}
			fmt.Printf("Saved combined CSV to: %s\n", path)
		}
	} else {
		progress := &models.FetchProgress{}
		listings, err = client.Search(*job, *location, progress)
		if err != nil {
			log.Fatalf("Error searching: %v", err)
		}

		if *save && len(listings) > 0 {
			path := filepath.Join(dir, dataset.ListingFilename(*location, *job, today))
			if err := dataset.WriteListings(path, listings); err != nil {
				log.Fatalf("Error saving CSV: %v", err)
			}
			fmt.Printf("\nSaved CSV to: %s\n", path)
		}
	}

	fmt.Printf("\nFound %d job listings\n\n", len(listings))
	printListingsHead(listings)
}

func runDataset(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("dataset", flag.ExitOnError)
	opts, save := compileFlags(fs)
	fs.Parse(args)

	rows := mustCompile(cfg, opts, *save)

	fmt.Printf("Combined dataset created with %d rows.\n\n", len(rows))
	printRowsHead(rows)
}

func runImport(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	fs.Parse(args)

	dir, err := dataDir(cfg)
	if err != nil {
		log.Fatalf("Error locating data directory: %v", err)
	}

	db, err := store.Open()
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	imported, err := db.ImportListings(dir)
	if err != nil {
		log.Fatalf("Error importing: %v", err)
	}

	fmt.Printf("\nImported %d new CSV files into the database.\n", imported)
}

func runKeywords(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("keywords", flag.ExitOnError)
	opts, save := compileFlags(fs)
	fs.Parse(args)

	keywords := fs.Args()
	if len(keywords) == 0 {
		log.Fatal("At least one keyword is required")
	}

	rows := mustCompile(cfg, opts, *save)
	if len(rows) == 0 {
		fmt.Println("No data files found.")
		return
	}

	stats := report.Keywords(rows, keywords...)
	if err := report.RenderKeywords(stats); err != nil {
		log.Fatalf("Error rendering report: %v", err)
	}
}

func runStats(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	opts, save := compileFlags(fs)
	fs.Parse(args)

	rows := mustCompile(cfg, opts, *save)
	if len(rows) == 0 {
		fmt.Println("No data files found.")
		return
	}

	if err := report.RenderSalaryStats(report.Summarize(rows)); err != nil {
		log.Fatalf("Error rendering report: %v", err)
	}
}

// compileFlags registers the flags shared by every dataset-consuming command
func compileFlags(fs *flag.FlagSet) (*compileArgs, *bool) {
	a := &compileArgs{}
	fs.StringVar(&a.job, "job", "", "Job title to compile")
	fs.StringVar(&a.state, "state", "", "State to compile (ex. 'New Jersey')")
	fs.BoolVar(&a.all, "all", false, "Use all US states")
	fs.IntVar(&a.year, "year", 0, "Year (YYYY)")
	fs.IntVar(&a.month, "month", 0, "Month (1-12)")
	fs.IntVar(&a.day, "day", 0, "Day (1-31)")
	fs.StringVar(&a.date, "date", "", "Full date 'YYYY-MM-DD'")
	save := fs.Bool("save", false, "Save the compiled dataset as CSV")
	return a, save
}

type compileArgs struct {
	job   string
	state string
	all   bool
	year  int
	month int
	day   int
	date  string
}

func mustCompile(cfg *config.Config, a *compileArgs, save bool) []dataset.Row {
	if a.job == "" {
		log.Fatal("-job is required")
	}

	dir, err := dataDir(cfg)
	if err != nil {
		log.Fatalf("Error locating data directory: %v", err)
	}

	opts := dataset.CompileOptions{
		JobTitle:  a.job,
		State:     a.state,
		AllStates: a.all,
		Save:      save,
		Year:      a.year,
		Month:     a.month,
		Day:       a.day,
		Dir:       dir,
	}

	if a.date != "" {
		parsed, err := time.Parse("2006-01-02", a.date)
		if err != nil {
			log.Fatalf("Invalid -date %q: expected YYYY-MM-DD", a.date)
		}
		opts.Date = &parsed
	}

	rows, err := dataset.Compile(opts)
	if err != nil {
		log.Fatalf("Error compiling dataset: %v", err)
	}
	return rows
}

func dataDir(cfg *config.Config) (string, error) {
	if cfg.DataDir != "" {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return "", err
		}
		return cfg.DataDir, nil
	}
	return dataset.DataDir()
}

func printListingsHead(listings []models.JobListing) {
	for i, l := range listings {
		if i >= headRows {
			fmt.Printf("... and %d more\n", len(listings)-headRows)
			break
		}
		fmt.Printf("Company: %s\n", l.Company)
		fmt.Printf("Title: %s\n", l.Title)
		fmt.Printf("Location: %s\n", l.Location)
		if l.Salary != "" {
			fmt.Printf("Salary: %s\n", l.Salary)
		}
		fmt.Printf("URL: %s\n", l.Link)
		fmt.Println(strings.Repeat("-", 80))
	}
}

func printRowsHead(rows []dataset.Row) {
	for i, row := range rows {
		if i >= headRows {
			fmt.Printf("... and %d more\n", len(rows)-headRows)
			break
		}
		fmt.Printf("Company: %s\n", row.Company)
		fmt.Printf("Title: %s\n", row.Title)
		fmt.Printf("Location: %s\n", row.Location)
		fmt.Printf("Annualized Avg: %s\n", ui.ColorizeSalary(row.Detail.AnnualizedAvg))
		fmt.Println(strings.Repeat("-", 80))
	}
}
