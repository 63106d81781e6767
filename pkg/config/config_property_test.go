package config

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestProperty_InvalidRetentionFallsBackToDefault verifies that a bad config
// file can never disable the pruning job: non-positive values are replaced
// with the defaults.
func TestProperty_InvalidRetentionFallsBackToDefault(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	defaults := DefaultRetentionConfig()

	properties.Property("non-positive retention days fall back to default", prop.ForAll(
		func(days int) bool {
			cfg := &Config{
				Retention: RetentionConfig{
					PCStatsDays:     days,
					IntervalMinutes: defaults.IntervalMinutes,
				},
			}
			validateAndApplyDefaults(cfg)
			return cfg.Retention.PCStatsDays == defaults.PCStatsDays
		},
		gen.IntRange(-1000, 0),
	))

	properties.Property("non-positive interval falls back to default", prop.ForAll(
		func(minutes int) bool {
			cfg := &Config{
				Retention: RetentionConfig{
					PCStatsDays:     defaults.PCStatsDays,
					IntervalMinutes: minutes,
				},
			}
			validateAndApplyDefaults(cfg)
			return cfg.Retention.IntervalMinutes == defaults.IntervalMinutes
		},
		gen.IntRange(-1000, 0),
	))

	properties.TestingRun(t)
}

// TestProperty_ValidRetentionIsPreserved verifies that the clamp never
// overwrites values an operator chose deliberately.
func TestProperty_ValidRetentionIsPreserved(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("positive retention values are preserved", prop.ForAll(
		func(days, minutes int) bool {
			cfg := &Config{
				Retention: RetentionConfig{
					PCStatsDays:     days,
					IntervalMinutes: minutes,
				},
			}
			validateAndApplyDefaults(cfg)
			return cfg.Retention.PCStatsDays == days && cfg.Retention.IntervalMinutes == minutes
		},
		gen.IntRange(1, 365),
		gen.IntRange(1, 1440),
	))

	properties.TestingRun(t)
}

// TestProperty_ServerDefaultsApplied covers the port clamp and the mode
// fallback.
func TestProperty_ServerDefaultsApplied(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("out-of-range ports fall back to 8080", prop.ForAll(
		func(port int) bool {
			cfg := &Config{Server: ServerConfig{Port: port, Mode: "release"}}
			validateAndApplyDefaults(cfg)
			return cfg.Server.Port == 8080
		},
		gen.OneGenOf(gen.IntRange(-1000, 0), gen.IntRange(65536, 100000)),
	))

	properties.Property("valid ports are preserved", prop.ForAll(
		func(port int) bool {
			cfg := &Config{Server: ServerConfig{Port: port, Mode: "release"}}
			validateAndApplyDefaults(cfg)
			return cfg.Server.Port == port
		},
		gen.IntRange(1, 65535),
	))

	properties.Property("empty mode falls back to release", prop.ForAll(
		func(_ int) bool {
			cfg := &Config{Server: ServerConfig{Port: 8080}}
			validateAndApplyDefaults(cfg)
			return cfg.Server.Mode == "release"
		},
		gen.Const(0),
	))

	properties.TestingRun(t)
}

// TestProperty_ValidationIsIdempotent applying the clamp twice produces the
// same config as applying it once.
func TestProperty_ValidationIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("validation is idempotent", prop.ForAll(
		func(days, minutes, port int) bool {
			cfg := &Config{
				Server:    ServerConfig{Port: port},
				Retention: RetentionConfig{PCStatsDays: days, IntervalMinutes: minutes},
			}
			validateAndApplyDefaults(cfg)
			first := *cfg
			validateAndApplyDefaults(cfg)
			return first == *cfg
		},
		gen.IntRange(-100, 100),
		gen.IntRange(-100, 100),
		gen.IntRange(-100, 70000),
	))

	properties.TestingRun(t)
}
