package config_test

import (
	"runtime"
	"testing"

	"github.com/gullysim/gully/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.JobQueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*4)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 100_000)
			convey.So(cfg.StoreCapacity, convey.ShouldEqual, 1024)
			convey.So(cfg.MaxResultsLimit, convey.ShouldEqual, 100)
			convey.So(cfg.TossBatBias, convey.ShouldEqual, 0.60)
			convey.So(cfg.Narrative, convey.ShouldBeTrue)
			convey.So(cfg.Seed, convey.ShouldEqual, 0)
		})
	})
}
