package config_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mockcanvas/internal/config"
	"github.com/noah-isme/mockcanvas/internal/mockcanvas"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "mockcanvas", cfg.AppName)
	require.Equal(t, "127.0.0.1:0", cfg.HTTPAddress())
	require.Equal(t, mockcanvas.DefaultDomain, cfg.Domain)
	require.Equal(t, zerolog.InfoLevel, cfg.Level())
	require.Equal(t, 1, cfg.Fixture.CourseCount)
	require.Equal(t, 1, cfg.Fixture.StudentCount)
	require.True(t, cfg.Fixture.PublishCourses)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("MOCKCANVAS_APP_PORT", "8089")
	t.Setenv("MOCKCANVAS_CANVAS_DOMAIN", "canvas.test")
	t.Setenv("MOCKCANVAS_CANVAS_SEED", "42")
	t.Setenv("MOCKCANVAS_LOG_LEVEL", "DEBUG")
	t.Setenv("MOCKCANVAS_FIXTURE_COURSE_COUNT", "3")
	t.Setenv("MOCKCANVAS_FIXTURE_PARENT_COUNT", "2")
	t.Setenv("MOCKCANVAS_FIXTURE_PUBLISH_COURSES", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, 8089, cfg.Port)
	require.Equal(t, uint64(42), cfg.Seed)
	require.Equal(t, zerolog.DebugLevel, cfg.Level())
	require.Equal(t, 3, cfg.Fixture.CourseCount)
	require.Equal(t, 2, cfg.Fixture.ParentCount)
	require.False(t, cfg.Fixture.PublishCourses)

	opts := cfg.CanvasOptions(zerolog.Nop())
	require.Equal(t, "canvas.test", opts.Domain)
	require.Equal(t, uint64(42), opts.Seed)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("MOCKCANVAS_APP_PORT", "70000")
	t.Setenv("MOCKCANVAS_LOG_LEVEL", "loud")
	t.Setenv("MOCKCANVAS_FIXTURE_STUDENT_COUNT", "-1")

	_, err := config.Load()
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	require.ErrorIs(t, err, mockcanvas.ErrInvalidFixtureConfig)
	require.ErrorContains(t, err, "Config.Port failed lte")
	require.ErrorContains(t, err, "Config.LogLevel failed oneof")
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, config.Default().Validate())
}
