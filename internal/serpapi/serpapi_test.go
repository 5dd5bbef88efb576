package serpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/logan416ah-cloud/jobsearch/internal/models"
)

const (
	pageOne = `{
		"jobs_results": [
			{
				"title": "Security Engineer",
				"company_name": "Acme",
				"location": "Newark, NJ",
				"description": "Defend things.",
				"share_link": "https://example.com/jobs/1",
				"detected_extensions": {"salary": "130K-160K a year"},
				"job_highlights": [{"title": "Qualifications", "items": ["CISSP", "5 years experience"]}]
			},
			{
				"title": "SOC Analyst",
				"company_name": "Globex",
				"location": "Trenton, NJ",
				"share_link": "https://example.com/jobs/2"
			}
		],
		"serpapi_pagination": {"next_page_token": "tok123"}
	}`

	pageTwo = `{
		"jobs_results": [
			{
				"title": "Pentester",
				"company_name": "Initech",
				"location": "Camden, NJ",
				"share_link": "https://example.com/jobs/3"
			}
		]
	}`
)

func testClient(srv *httptest.Server) *Client {
	c := NewUnvalidated("test-key", false)
	c.SetBaseURL(srv.URL)
	return c
}

func TestSearchPagination(t *testing.T) {
	Convey("Given an API serving two pages of results", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("next_page_token") == "tok123" {
				fmt.Fprint(w, pageTwo)
				return
			}
			fmt.Fprint(w, pageOne)
		}))
		defer srv.Close()

		c := testClient(srv)

		Convey("When searching", func() {
			progress := &models.FetchProgress{}
			listings, err := c.Search("Security", "New Jersey", progress)

			So(err, ShouldBeNil)

			Convey("Then every page's listings are collected in order", func() {
				So(listings, ShouldHaveLength, 3)
				So(listings[0].Title, ShouldEqual, "Security Engineer")
				So(listings[2].Title, ShouldEqual, "Pentester")
			})

			Convey("Then result fields are mapped onto the listing", func() {
				So(listings[0].Company, ShouldEqual, "Acme")
				So(listings[0].Salary, ShouldEqual, "130K-160K a year")
				So(listings[0].Qualifications, ShouldEqual, "CISSP; 5 years experience")
				So(listings[0].Link, ShouldEqual, "https://example.com/jobs/1")
				So(listings[1].Salary, ShouldBeEmpty)
			})

			Convey("Then progress reflects pages and jobs seen", func() {
				So(progress.Pages, ShouldEqual, 2)
				So(progress.FoundJobs, ShouldEqual, 3)
			})
		})
	})

	Convey("Given an API with no results", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"jobs_results": []}`)
		}))
		defer srv.Close()

		Convey("When searching the result is empty without error", func() {
			listings, err := testClient(srv).Search("Security", "Alaska", nil)

			So(err, ShouldBeNil)
			So(listings, ShouldBeEmpty)
		})
	})
}

func TestSearchRetry(t *testing.T) {
	Convey("Given an API whose page is still processing", t, func() {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				fmt.Fprint(w, `{"status": "Processing", "retry_after": 0.01}`)
				return
			}
			fmt.Fprint(w, pageTwo)
		}))
		defer srv.Close()

		Convey("When searching the fetch is retried until the page is ready", func() {
			listings, err := testClient(srv).Search("Security", "Ohio", nil)

			So(err, ShouldBeNil)
			So(listings, ShouldHaveLength, 1)
			So(atomic.LoadInt32(&calls), ShouldEqual, 2)
		})
	})

	Convey("Given an API reporting pagination not ready", t, func() {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				fmt.Fprint(w, `{"error": "Pagination is not ready yet", "retry_after": 0.01}`)
				return
			}
			fmt.Fprint(w, pageTwo)
		}))
		defer srv.Close()

		Convey("When searching the error responses are waited out", func() {
			listings, err := testClient(srv).Search("Security", "Ohio", nil)

			So(err, ShouldBeNil)
			So(listings, ShouldHaveLength, 1)
			So(atomic.LoadInt32(&calls), ShouldEqual, 3)
		})
	})

	Convey("Given an API that never finishes processing", t, func() {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			fmt.Fprint(w, `{"status": "Processing", "retry_after": 0.01}`)
		}))
		defer srv.Close()

		Convey("When searching the last response is accepted after max retries", func() {
			listings, err := testClient(srv).Search("Security", "Ohio", nil)

			So(err, ShouldBeNil)
			So(listings, ShouldBeEmpty)
			So(atomic.LoadInt32(&calls), ShouldEqual, maxRetries)
		})
	})
}

func TestValidateKey(t *testing.T) {
	Convey("Given the key validation probe", t, func() {
		Convey("When the key is blank it fails without a request", func() {
			So(NewUnvalidated("  ", false).ValidateKey(), ShouldNotBeNil)
		})

		Convey("When the API returns an error the key is rejected", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"error": "Invalid API key"}`)
			}))
			defer srv.Close()

			err := testClient(srv).ValidateKey()

			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "Invalid API key")
		})

		Convey("When the API answers normally the key is accepted", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"search_metadata": {"status": "Success"}}`)
			}))
			defer srv.Close()

			So(testClient(srv).ValidateKey(), ShouldBeNil)
		})
	})
}
