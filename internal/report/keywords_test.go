package report

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/logan416ah-cloud/jobsearch/internal/dataset"
	"github.com/logan416ah-cloud/jobsearch/internal/models"
)

func descRows(descriptions ...string) []dataset.Row {
	rows := make([]dataset.Row, len(descriptions))
	for i, d := range descriptions {
		rows[i] = dataset.Row{JobListing: models.JobListing{Description: d}}
	}
	return rows
}

func TestKeywords(t *testing.T) {
	Convey("Given a dataset of job descriptions", t, func() {
		rows := descRows(
			"Experience with Python and AWS. Python scripting a plus.",
			"Splunk administration and aws cloud security.",
			"Help desk role, no programming required.",
			"PYTHON developer with strong communication skills.",
		)

		Convey("When counting keyword mentions", func() {
			stats := Keywords(rows, "python", "aws", "splunk", "kubernetes")

			Convey("Then matching is case-insensitive and counts every occurrence", func() {
				byKw := map[string]KeywordStat{}
				for _, s := range stats {
					byKw[s.Keyword] = s
				}

				So(byKw["python"].Occurrences, ShouldEqual, 3)
				So(byKw["python"].Count, ShouldEqual, 2)
				So(byKw["aws"].Occurrences, ShouldEqual, 2)
				So(byKw["aws"].Count, ShouldEqual, 2)
				So(byKw["splunk"].Count, ShouldEqual, 1)
				So(byKw["kubernetes"].Count, ShouldEqual, 0)
			})

			Convey("Then percentages are relative to total and matched listings", func() {
				byKw := map[string]KeywordStat{}
				for _, s := range stats {
					byKw[s.Keyword] = s
				}

				// 3 of 4 listings match at least one keyword.
				So(byKw["python"].PercentTotal, ShouldEqual, 50.0)
				So(byKw["python"].PercentFiltered, ShouldEqual, 66.67)
				So(byKw["splunk"].PercentTotal, ShouldEqual, 25.0)
				So(byKw["splunk"].PercentFiltered, ShouldEqual, 33.33)
			})

			Convey("Then results are sorted by occurrences descending", func() {
				So(stats[0].Keyword, ShouldEqual, "python")
				So(stats[len(stats)-1].Keyword, ShouldEqual, "kubernetes")
			})
		})

		Convey("When the dataset or keyword list is empty the result is nil", func() {
			So(Keywords(nil, "python"), ShouldBeNil)
			So(Keywords(rows), ShouldBeNil)
		})
	})

	Convey("Given descriptions containing HTML markup", t, func() {
		rows := descRows(
			"<ul><li>Terraform deployments</li><li>Monitoring dashboards</li></ul>",
			"Plain text mentioning terraform once.",
		)

		Convey("When counting keywords the markup is stripped first", func() {
			stats := Keywords(rows, "terraform", "li")

			byKw := map[string]KeywordStat{}
			for _, s := range stats {
				byKw[s.Keyword] = s
			}

			So(byKw["terraform"].Count, ShouldEqual, 2)
			// Tag names are not part of the text searched.
			So(byKw["li"].Count, ShouldEqual, 0)
		})
	})
}
