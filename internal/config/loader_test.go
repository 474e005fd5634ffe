package config_test

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/gullysim/gully/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.JobQueueSize, convey.ShouldEqual, 10_000)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*4)
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 100_000)
				convey.So(cfg.TossBatBias, convey.ShouldEqual, 0.60)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("GULLY_ADDR", ":8080")
			_ = os.Setenv("GULLY_QUEUE_SIZE", "500")
			_ = os.Setenv("GULLY_WORKER_COUNT", "16")
			_ = os.Setenv("GULLY_DEDUPE_SIZE", "25000")
			_ = os.Setenv("GULLY_TOSS_BAT_BIAS", "0.5")
			_ = os.Setenv("GULLY_SEED", "1234")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.JobQueueSize, convey.ShouldEqual, 500)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 25000)
				convey.So(cfg.TossBatBias, convey.ShouldEqual, 0.5)
				convey.So(cfg.Seed, convey.ShouldEqual, 1234)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
queue_size: 300
worker_count: 24
store_capacity: 64
params_path: "params.yaml"
narrative: false
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("GULLY_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.JobQueueSize, convey.ShouldEqual, 300)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 24)
				convey.So(cfg.StoreCapacity, convey.ShouldEqual, 64)
				convey.So(cfg.ParamsPath, convey.ShouldEqual, "params.yaml")
				convey.So(cfg.Narrative, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When env vars override the YAML file", func() {
			yamlContent := `
addr: ":9090"
worker_count: 24
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("GULLY_CONFIG", tmpFile)
			_ = os.Setenv("GULLY_WORKER_COUNT", "8")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env takes precedence", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 8)
			})
		})

		convey.Convey("When the config file is missing", func() {
			_ = os.Setenv("GULLY_CONFIG", "/nonexistent/config.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should fail with a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the toss bias is out of range", func() {
			_ = os.Setenv("GULLY_TOSS_BAT_BIAS", "1.5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should fail validation", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"GULLY_CONFIG",
		"GULLY_ADDR",
		"GULLY_LOG_LEVEL",
		"GULLY_QUEUE_SIZE",
		"GULLY_WORKER_COUNT",
		"GULLY_DEDUPE_SIZE",
		"GULLY_STORE_CAPACITY",
		"GULLY_MAX_RESULTS_LIMIT",
		"GULLY_PARAMS_PATH",
		"GULLY_TOSS_BAT_BIAS",
		"GULLY_NARRATIVE",
		"GULLY_SEED",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(content string) string {
	f, err := os.CreateTemp("", "gully-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := f.WriteString(content); err != nil {
		panic(err)
	}
	_ = f.Close()
	return f.Name()
}
