// Package locale holds the user-facing copy of the flow: the welcome carousel,
// onboarding step titles, buttons and the home greeting.
//
// Messages are embedded TOML files loaded into a go-i18n bundle. English is
// the default language and the fallback for any tag the bundle cannot match.
package locale

import (
	"embed"
	"fmt"
	"log/slog"
	"path"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/internal"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/session"
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed messages/*.toml
var messageFiles embed.FS

// Message IDs for fixed copy.
const (
	ButtonSkip       = "ButtonSkip"
	ButtonNext       = "ButtonNext"
	ButtonGetStarted = "ButtonGetStarted"
	ButtonContinue   = "ButtonContinue"
	ButtonFinish     = "ButtonFinish"
	ButtonLogout     = "ButtonLogout"
	ButtonRetry      = "ButtonRetry"
	HomeSubtitle     = "HomeSubtitle"
	SaveFailed       = "SaveFailed"
)

// SlideCount is the number of slides on the welcome carousel.
const SlideCount = 3

// Slide is one page of the welcome carousel.
type Slide struct {
	Title       string
	Description string
}

// Catalog resolves messages for a single language.
type Catalog struct {
	tag       language.Tag
	localizer *i18n.Localizer
	logger    *slog.Logger
}

var bundle = mustLoadBundle()

func mustLoadBundle() *i18n.Bundle {
	b, err := loadBundle()
	if err != nil {
		panic(err)
	}
	return b
}

func loadBundle() (*i18n.Bundle, error) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := messageFiles.ReadDir("messages")
	if err != nil {
		return nil, fmt.Errorf("read embedded messages: %w", err)
	}
	for _, entry := range entries {
		if _, err := b.LoadMessageFileFS(messageFiles, path.Join("messages", entry.Name())); err != nil {
			return nil, fmt.Errorf("load %s: %w", entry.Name(), err)
		}
	}
	return b, nil
}

// Supported returns the languages with a message file, default first.
func Supported() []language.Tag {
	return bundle.LanguageTags()
}

// New returns a catalog for lang, a BCP 47 tag such as "es" or "en-GB".
// Unsupported languages resolve to the closest supported one, or English.
func New(lang string) (*Catalog, error) {
	requested, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}

	supported := Supported()
	_, index, _ := language.NewMatcher(supported).Match(requested)
	tag := supported[index]

	return &Catalog{
		tag:       tag,
		localizer: i18n.NewLocalizer(bundle, tag.String()),
		logger:    internal.GetLogger(),
	}, nil
}

// Default returns the English catalog.
func Default() *Catalog {
	c, _ := New(language.English.String())
	return c
}

// Language returns the language messages resolve in.
func (c *Catalog) Language() language.Tag {
	return c.tag
}

// Text returns the message with the given ID. Unknown IDs come back as the ID
// itself so a missing translation is visible rather than blank.
func (c *Catalog) Text(id string) string {
	return c.localize(id, nil)
}

// Slides returns the welcome carousel in display order.
func (c *Catalog) Slides() []Slide {
	slides := make([]Slide, SlideCount)
	for i := range slides {
		n := i + 1
		slides[i] = Slide{
			Title:       c.localize(fmt.Sprintf("WelcomeSlide%dTitle", n), nil),
			Description: c.localize(fmt.Sprintf("WelcomeSlide%dDescription", n), nil),
		}
	}
	return slides
}

// StepTitle returns the heading of an onboarding step, or "" for any other
// route.
func (c *Catalog) StepTitle(step constants.Route) string {
	if !step.IsOnboardingStep() {
		return ""
	}
	return c.localize("Step"+step.GetName()+"Title", nil)
}

// StepProgress returns the "Step n of m" indicator for an onboarding step.
func (c *Catalog) StepProgress(step constants.Route) string {
	if !step.IsOnboardingStep() {
		return ""
	}
	return c.localize("StepProgress", map[string]any{
		"Step":  step.StepNumber(),
		"Total": len(constants.OnboardingSteps),
	})
}

// ChoiceText returns the label of an onboarding answer value.
func (c *Catalog) ChoiceText(value string) string {
	return c.localize("Choice_"+value, nil)
}

// Greeting returns the home screen greeting. An empty name greets the
// default display name.
func (c *Catalog) Greeting(name string) string {
	if name == "" {
		name = session.DefaultDisplayName
	}
	return c.localize("HomeGreeting", map[string]any{"Name": name})
}

func (c *Catalog) localize(id string, data map[string]any) string {
	msg, err := c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		c.logger.Warn("Missing message", "id", id, "language", c.tag.String(), "error", err)
		return id
	}
	return msg
}
