package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/noah-isme/mockcanvas/internal/mockcanvas"
)

// ErrInvalidConfig is returned by Load when a value fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds runtime configuration values for the mock server.
type Config struct {
	AppName  string `validate:"required"`
	AppEnv   string `validate:"required"`
	Host     string `validate:"required"`
	Port     int    `validate:"gte=0,lte=65535"`
	Domain   string `validate:"required"`
	Seed     uint64
	LogLevel string                `validate:"oneof=trace debug info warn error disabled"`
	Fixture  mockcanvas.InitConfig `validate:"-"`
}

// HTTPAddress returns the address the HTTP server should listen on. Port 0
// asks the kernel for an ephemeral port.
func (c Config) HTTPAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// CanvasOptions returns the options used to build the fake canvas.
func (c Config) CanvasOptions(logger zerolog.Logger) mockcanvas.Options {
	return mockcanvas.Options{Domain: c.Domain, Seed: c.Seed, Logger: logger}
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}

// Validate checks the server settings and the fixture counts.
func (c Config) Validate() error {
	var problems []error
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fieldErr := range fieldErrs {
				problems = append(problems, fmt.Errorf("%s failed %s", fieldErr.Namespace(), fieldErr.Tag()))
			}
		} else {
			problems = append(problems, err)
		}
	}
	if err := c.Fixture.Validate(); err != nil {
		problems = append(problems, err)
	}
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(problems...))
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "mockcanvas")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "127.0.0.1")
	v.SetDefault("app.port", 0)
	v.SetDefault("canvas.domain", mockcanvas.DefaultDomain)
	v.SetDefault("canvas.seed", 0)
	v.SetDefault("log.level", "info")

	v.SetDefault("fixture.course_count", 1)
	v.SetDefault("fixture.invited_course_count", 0)
	v.SetDefault("fixture.past_course_count", 0)
	v.SetDefault("fixture.favorite_course_count", 0)
	v.SetDefault("fixture.homeroom_course_count", 0)
	v.SetDefault("fixture.student_count", 1)
	v.SetDefault("fixture.teacher_count", 0)
	v.SetDefault("fixture.parent_count", 0)
	v.SetDefault("fixture.account_notification_count", 0)
	v.SetDefault("fixture.create_sections", true)
	v.SetDefault("fixture.publish_courses", true)
	v.SetDefault("fixture.with_grading_periods", false)
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	return fromViper(v)
}

// Load reads configuration values from MOCKCANVAS_* environment variables
// and an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MOCKCANVAS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) Config {
	return Config{
		AppName:  v.GetString("app.name"),
		AppEnv:   v.GetString("app.env"),
		Host:     v.GetString("app.host"),
		Port:     v.GetInt("app.port"),
		Domain:   strings.TrimSpace(v.GetString("canvas.domain")),
		Seed:     v.GetUint64("canvas.seed"),
		LogLevel: strings.ToLower(v.GetString("log.level")),
		Fixture: mockcanvas.InitConfig{
			CourseCount:              v.GetInt("fixture.course_count"),
			InvitedCourseCount:       v.GetInt("fixture.invited_course_count"),
			PastCourseCount:          v.GetInt("fixture.past_course_count"),
			FavoriteCourseCount:      v.GetInt("fixture.favorite_course_count"),
			HomeroomCourseCount:      v.GetInt("fixture.homeroom_course_count"),
			StudentCount:             v.GetInt("fixture.student_count"),
			TeacherCount:             v.GetInt("fixture.teacher_count"),
			ParentCount:              v.GetInt("fixture.parent_count"),
			AccountNotificationCount: v.GetInt("fixture.account_notification_count"),
			CreateSections:           v.GetBool("fixture.create_sections"),
			PublishCourses:           v.GetBool("fixture.publish_courses"),
			WithGradingPeriods:       v.GetBool("fixture.with_grading_periods"),
		},
	}
}
