package config

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given an isolated home directory", t, func() {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("SERPAPI_API_KEY", "")

		Convey("When no config file exists the defaults come back", func() {
			cfg, err := Load()

			So(err, ShouldBeNil)
			So(cfg.APIKey, ShouldBeEmpty)
			So(cfg.DataDir, ShouldBeEmpty)
			So(cfg.Debug, ShouldBeFalse)
		})

		Convey("When config.yaml exists its values are loaded", func() {
			dir := filepath.Join(home, appDirName)
			So(os.MkdirAll(dir, 0755), ShouldBeNil)

			data := "api_key: file-key\ndata_dir: /tmp/listings\ndebug: true\n"
			So(os.WriteFile(filepath.Join(dir, configFileName), []byte(data), 0644), ShouldBeNil)

			cfg, err := Load()

			So(err, ShouldBeNil)
			So(cfg.APIKey, ShouldEqual, "file-key")
			So(cfg.DataDir, ShouldEqual, "/tmp/listings")
			So(cfg.Debug, ShouldBeTrue)

			Convey("And the environment key overrides the file", func() {
				t.Setenv("SERPAPI_API_KEY", "env-key")

				cfg, err := Load()

				So(err, ShouldBeNil)
				So(cfg.APIKey, ShouldEqual, "env-key")
			})
		})

		Convey("When config.yaml is malformed loading fails", func() {
			dir := filepath.Join(home, appDirName)
			So(os.MkdirAll(dir, 0755), ShouldBeNil)
			So(os.WriteFile(filepath.Join(dir, configFileName), []byte("api_key: [broken"), 0644), ShouldBeNil)

			_, err := Load()

			So(err, ShouldNotBeNil)
		})
	})
}
