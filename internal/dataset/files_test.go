package dataset

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFilenames(t *testing.T) {
	Convey("Given a job title and location with spaces", t, func() {
		date := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

		Convey("When building a listing filename", func() {
			name := ListingFilename("New Jersey", "Cybersecurity Analyst", date)

			So(name, ShouldEqual, "New_Jersey_Cybersecurity_Analyst_jobs_2026-08-24.csv")
		})

		Convey("When building the combined filename", func() {
			name := CombinedFilename("Cybersecurity Analyst", date)

			So(name, ShouldEqual, "ALL_STATES_Cybersecurity_Analyst_jobs_2026-08-24.csv")
		})

		Convey("When building a dataset filename", func() {
			name := DatasetFilename("California", "Data Engineer", date)

			So(name, ShouldEqual, "California_Data_Engineer_dataset_2026-08-24.csv")
		})
	})
}

func TestDateFromFilename(t *testing.T) {
	Convey("Given listing filenames", t, func() {
		Convey("When the name carries a date stamp it is extracted", func() {
			So(DateFromFilename("Texas_DevOps_jobs_2026-01-15.csv"), ShouldEqual, "2026-01-15")
		})

		Convey("When the name has no date stamp the result is empty", func() {
			So(DateFromFilename("notes.csv"), ShouldBeEmpty)
		})
	})
}

func TestFilePattern(t *testing.T) {
	Convey("Given compile options", t, func() {
		Convey("When neither state nor all-states is set it errors", func() {
			_, err := CompileOptions{JobTitle: "SRE"}.filePattern()
			So(err, ShouldNotBeNil)
		})

		Convey("When both state and all-states are set it errors", func() {
			_, err := CompileOptions{JobTitle: "SRE", State: "Ohio", AllStates: true}.filePattern()
			So(err, ShouldNotBeNil)
		})

		Convey("When a month is given without a year it errors", func() {
			_, err := CompileOptions{JobTitle: "SRE", State: "Ohio", Month: 3}.filePattern()
			So(err, ShouldNotBeNil)
		})

		Convey("When only a state is given the pattern spans all dates", func() {
			p, err := CompileOptions{JobTitle: "Site Reliability", State: "New York"}.filePattern()

			So(err, ShouldBeNil)
			So(p, ShouldEqual, "New_York_Site_Reliability_jobs_*.csv")
		})

		Convey("When all states and a full date are given the pattern is exact", func() {
			p, err := CompileOptions{
				JobTitle: "SRE", AllStates: true,
				Year: 2026, Month: 8, Day: 4,
			}.filePattern()

			So(err, ShouldBeNil)
			So(p, ShouldEqual, "*_SRE_jobs_2026-08-04.csv")
		})

		Convey("When a Date value is given it overrides year/month/day", func() {
			d := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
			p, err := CompileOptions{JobTitle: "SRE", State: "Ohio", Date: &d, Year: 1999}.filePattern()

			So(err, ShouldBeNil)
			So(p, ShouldEqual, "Ohio_SRE_jobs_2025-12-01.csv")
		})

		Convey("When only year and month are given the day is globbed", func() {
			p, err := CompileOptions{JobTitle: "SRE", State: "Ohio", Year: 2026, Month: 2}.filePattern()

			So(err, ShouldBeNil)
			So(p, ShouldEqual, "Ohio_SRE_jobs_2026-02-*.csv")
		})
	})
}
