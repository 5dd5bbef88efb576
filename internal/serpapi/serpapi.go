// Package serpapi fetches Google Jobs listings through the SerpApi search
// endpoint.
package serpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/logan416ah-cloud/jobsearch/internal/client"
	"github.com/logan416ah-cloud/jobsearch/internal/models"
)

const (
	searchURL = "https://serpapi.com/search.json"
	engine    = "google_jobs"

	maxRetries        = 5
	defaultRetryAfter = 2 * time.Second
	transientDelay    = 1 * time.Second

	// Minimum spacing between page requests.
	requestInterval = 500 * time.Millisecond
)

// USStates lists the fifty US states used by SearchAllStates.
var USStates = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii", "Idaho",
	"Illinois", "Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana",
	"Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota",
	"Mississippi", "Missouri", "Montana", "Nebraska", "Nevada",
	"New Hampshire", "New Jersey", "New Mexico", "New York",
	"North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon",
	"Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington",
	"West Virginia", "Wisconsin", "Wyoming",
}

// Client queries the SerpApi Google Jobs engine
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	debug      bool
}

// New creates a Client and validates the API key with a probe request
func New(apiKey string, debug bool) (*Client, error) {
	c := NewUnvalidated(apiKey, debug)
	if err := c.ValidateKey(); err != nil {
		return nil, err
	}
	return c, nil
}

// NewUnvalidated creates a Client without the key probe. Used by tests and
// by callers that already know the key works.
func NewUnvalidated(apiKey string, debug bool) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    searchURL,
		httpClient: client.New(),
		limiter:    rate.NewLimiter(rate.Every(requestInterval), 1),
		debug:      debug,
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// ValidateKey issues a minimal test search to confirm the key is accepted
func (c *Client) ValidateKey() error {
	if strings.TrimSpace(c.apiKey) == "" {
		return fmt.Errorf("API key is required")
	}

	params := url.Values{}
	params.Set("engine", engine)
	params.Set("q", "test")
	params.Set("hl", "en")
	params.Set("api_key", c.apiKey)

	resp, err := c.httpClient.Get(c.baseURL + "?" + params.Encode())
	if err != nil {
		return fmt.Errorf("API key check failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := client.ReadResponseBody(resp)
	if err != nil {
		return fmt.Errorf("API key check failed: %v", err)
	}

	if errMsg := gjson.GetBytes(body, "error"); errMsg.Exists() {
		return fmt.Errorf("API key rejected: %s", errMsg.String())
	}

	return nil
}

// Search fetches every page of listings for a job title in one location
func (c *Client) Search(jobTitle, location string, progress *models.FetchProgress) ([]models.JobListing, error) {
	var listings []models.JobListing
	var nextPageToken string

	q := jobTitle + " " + location

	bar := pb.New(0)
	bar.Set("prefix", "Fetching pages ")
	bar.Start()
	defer bar.Finish()

	for {
		params := url.Values{}
		params.Set("engine", engine)
		params.Set("q", q)
		params.Set("hl", "en")
		params.Set("api_key", c.apiKey)
		if nextPageToken != "" {
			params.Set("next_page_token", nextPageToken)
		}

		page, err := c.fetchPageWithRetry(params)
		if err != nil {
			return listings, err
		}

		jobs := page.Get("jobs_results").Array()
		if len(jobs) == 0 {
			break
		}

		for _, job := range jobs {
			listings = append(listings, listingFromResult(job))
		}

		bar.SetTotal(bar.Total() + 1)
		bar.Increment()

		if progress != nil {
			progress.Pages++
			progress.FoundJobs = len(listings)
		}

		nextPageToken = page.Get("serpapi_pagination.next_page_token").String()
		if nextPageToken == "" {
			break
		}
	}

	return listings, nil
}

// SearchAllStates runs Search across all US states, tagging each listing
// with its state. Per-state results are handed to the visit callback as they
// complete so callers can persist them incrementally; visit may be nil.
func (c *Client) SearchAllStates(jobTitle string, visit func(state string, listings []models.JobListing) error) ([]models.JobListing, error) {
	var all []models.JobListing

	bar := pb.StartNew(len(USStates))
	bar.Set("prefix", "Searching states ")
	defer bar.Finish()

	for _, state := range USStates {
		listings, err := c.Search(jobTitle, state, nil)
		if err != nil {
			return all, fmt.Errorf("searching %s: %v", state, err)
		}

		for i := range listings {
			listings[i].State = state
		}

		if len(listings) > 0 {
			all = append(all, listings...)
			if visit != nil {
				if err := visit(state, listings); err != nil {
					return all, err
				}
			}
		}

		bar.Increment()
	}

	return all, nil
}

// fetchPageWithRetry fetches one result page, waiting out "not ready" and
// "Processing" responses with the server-suggested delay. After maxRetries
// the last response is returned even if incomplete, matching the linear
// retry contract: no circuit breaking, no exponential backoff.
func (c *Client) fetchPageWithRetry(params url.Values) (gjson.Result, error) {
	var last gjson.Result
	var gotResponse bool

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(context.Background()); err != nil {
			return gjson.Result{}, err
		}

		resp, err := c.httpClient.Get(c.baseURL + "?" + params.Encode())
		if err != nil {
			if c.debug {
				fmt.Printf("Request error on attempt %d: %v\n", attempt, err)
			}
			time.Sleep(transientDelay)
			continue
		}

		body, err := client.ReadResponseBody(resp)
		resp.Body.Close()
		if err != nil {
			if c.debug {
				fmt.Printf("Read error on attempt %d: %v\n", attempt, err)
			}
			time.Sleep(transientDelay)
			continue
		}

		data := gjson.ParseBytes(body)
		last, gotResponse = data, true

		if errMsg := data.Get("error"); errMsg.Exists() &&
			strings.Contains(strings.ToLower(errMsg.String()), "not ready") {
			wait := retryAfter(data)
			if c.debug {
				fmt.Printf("Pagination not ready. Retrying in %v... (attempt %d)\n", wait, attempt)
			}
			time.Sleep(wait)
			continue
		}

		if data.Get("status").String() == "Processing" {
			wait := retryAfter(data)
			if c.debug {
				fmt.Printf("Page still processing. Waiting %v... (attempt %d)\n", wait, attempt)
			}
			time.Sleep(wait)
			continue
		}

		return data, nil
	}

	if gotResponse {
		if c.debug {
			fmt.Println("Max retries reached. Returning last response (may be incomplete).")
		}
		return last, nil
	}

	return gjson.Result{}, fmt.Errorf("no response after %d attempts", maxRetries)
}

func retryAfter(data gjson.Result) time.Duration {
	if v := data.Get("retry_after"); v.Exists() && v.Float() > 0 {
		return time.Duration(v.Float() * float64(time.Second))
	}
	return defaultRetryAfter
}

// listingFromResult maps one jobs_results entry onto a JobListing
func listingFromResult(job gjson.Result) models.JobListing {
	var quals []string
	for _, item := range job.Get("job_highlights.0.items").Array() {
		quals = append(quals, item.String())
	}

	return models.JobListing{
		Title:          job.Get("title").String(),
		Company:        job.Get("company_name").String(),
		Location:       job.Get("location").String(),
		Qualifications: strings.Join(quals, "; "),
		Salary:         job.Get("detected_extensions.salary").String(),
		Description:    job.Get("description").String(),
		Link:           job.Get("share_link").String(),
	}
}
