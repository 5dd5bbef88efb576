package models

// JobListing represents a single job listing returned by the search API
type JobListing struct {
	Title          string `json:"job_title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	State          string `json:"state,omitempty"`
	Qualifications string `json:"qualifications,omitempty"`
	Salary         string `json:"salary,omitempty"`
	Description    string `json:"description,omitempty"`
	Link           string `json:"link"`
	DateAdded      string `json:"date_added,omitempty"`
}

// FetchProgress tracks a paginated fetch across one or more searches
type FetchProgress struct {
	Pages     int `json:"pages"`
	FoundJobs int `json:"found_jobs"`
}
