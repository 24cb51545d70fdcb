package mockcanvas

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mockcanvas/internal/store"
)

// DefaultDomain is used to build absolute URLs when Options.Domain is empty.
const DefaultDomain = "mock-data.instructure.com"

// Options configures a Canvas.
type Options struct {
	// Domain is the host used in generated URLs.
	Domain string
	// Seed makes generated names and text reproducible. Zero picks a random seed.
	Seed uint64
	// Now overrides the clock used for due dates, lateness and timestamps.
	Now    func() time.Time
	Logger zerolog.Logger
}

// Canvas is a stateful fake LMS backend. Builders mutate it; views and the
// request dispatcher read from it. It is safe for concurrent use.
type Canvas struct {
	store     *store.Store
	domain    string
	now       func() time.Time
	logger    zerolog.Logger
	faker     *gofakeit.Faker
	sanitizer *bluemonday.Policy
}

// New constructs an empty canvas.
func New(opts Options) *Canvas {
	domain := strings.TrimSpace(opts.Domain)
	if domain == "" {
		domain = DefaultDomain
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	policy := bluemonday.UGCPolicy()
	policy.AllowElements("br")

	return &Canvas{
		store:     store.New(),
		domain:    domain,
		now:       now,
		logger:    opts.Logger.With().Str("component", "mockcanvas").Logger(),
		faker:     gofakeit.New(opts.Seed),
		sanitizer: policy,
	}
}

// Domain returns the host used in generated URLs.
func (c *Canvas) Domain() string {
	return c.domain
}

// Bool returns a pointer to v, for optional params fields.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v, for optional params fields.
func String(v string) *string { return &v }

// Float returns a pointer to v, for optional params fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for optional params fields.
func Int(v int) *int { return &v }

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func (c *Canvas) apiURL(format string, args ...any) string {
	return fmt.Sprintf("https://%s/api/v1/", c.domain) + fmt.Sprintf(format, args...)
}

func (c *Canvas) webURL(format string, args ...any) string {
	return fmt.Sprintf("https://%s/", c.domain) + fmt.Sprintf(format, args...)
}

// claimID resolves a caller-supplied id, panicking when the allocator never
// issued it.
func claimID(s *store.State, kind string, id int64) int64 {
	claimed, err := s.ClaimID(kind, id)
	store.MustSucceed("claim "+kind+" id", err)
	return claimed
}

// textEntities undoes the escaping bluemonday applies to plain text, which
// is harmless inside HTML but changes what the fixture author wrote.
var textEntities = strings.NewReplacer("&amp;", "&", "&#39;", "'", "&#34;", `"`)

// sanitize strips unsafe markup from an HTML body.
func (c *Canvas) sanitize(input string) string {
	return textEntities.Replace(strings.TrimSpace(c.sanitizer.Sanitize(input)))
}

// update runs fn as one atomic builder step.
func (c *Canvas) update(fn func(*store.State)) {
	c.store.Update(fn)
}

func (c *Canvas) view(fn func(*store.State)) {
	c.store.View(fn)
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

func (c *Canvas) randomCourseName() string {
	return fmt.Sprintf("%s %s %d", capitalize(c.faker.Adjective()), capitalize(c.faker.Noun()), c.faker.Number(100, 499))
}

func (c *Canvas) randomAssignmentName() string {
	return capitalize(c.faker.Sentence(3))
}

func (c *Canvas) randomSubject() string {
	return capitalize(c.faker.Sentence(4))
}

func (c *Canvas) randomBody() string {
	return c.faker.Paragraph(1, 3, 12, " ")
}

func (c *Canvas) randomTitle() string {
	return capitalize(c.faker.Sentence(2))
}

func (c *Canvas) randomFullName() string {
	return c.faker.FirstName() + " " + c.faker.LastName()
}

func (c *Canvas) randomAvatarURL() string {
	return c.webURL("images/thumbnails/%s.png", strings.ToLower(c.faker.LetterN(10)))
}

