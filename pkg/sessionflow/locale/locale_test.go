package locale

import (
	"testing"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestSupported(t *testing.T) {
	tags := Supported()
	require.NotEmpty(t, tags)
	assert.Equal(t, language.English, tags[0])
	assert.Contains(t, tags, language.Spanish)
}

func TestSlides(t *testing.T) {
	slides := Default().Slides()
	require.Len(t, slides, SlideCount)
	assert.Equal(t, Slide{
		Title:       "Welcome to AI Fitness",
		Description: "Your personal AI-powered fitness companion to help you achieve your goals",
	}, slides[0])
	assert.Equal(t, "Personalized Workouts", slides[1].Title)
	assert.Equal(t, "Track Your Progress", slides[2].Title)
}

func TestEveryStepHasATitleInEveryLanguage(t *testing.T) {
	for _, tag := range Supported() {
		c, err := New(tag.String())
		require.NoError(t, err)
		for _, step := range constants.OnboardingSteps {
			title := c.StepTitle(step)
			assert.NotEmpty(t, title)
			assert.NotEqual(t, "Step"+step.GetName()+"Title", title, "%s missing in %s", step, tag)
		}
		for _, slide := range c.Slides() {
			assert.NotContains(t, slide.Title, "WelcomeSlide")
			assert.NotContains(t, slide.Description, "WelcomeSlide")
		}
	}
}

func TestStepTitleOutsideOnboarding(t *testing.T) {
	c := Default()
	assert.Empty(t, c.StepTitle(constants.RouteWelcome))
	assert.Empty(t, c.StepTitle(constants.RouteMain))
	assert.Empty(t, c.StepProgress(constants.RouteMain))
}

func TestStepProgress(t *testing.T) {
	assert.Equal(t, "Step 1 of 5", Default().StepProgress(constants.RouteUserInfo))
	assert.Equal(t, "Step 5 of 5", Default().StepProgress(constants.RouteFitnessGoal))
}

func TestGreeting(t *testing.T) {
	c := Default()
	assert.Equal(t, "Hello, Alex!", c.Greeting("Alex"))
	assert.Equal(t, "Hello, User!", c.Greeting(""))
}

func TestSpanish(t *testing.T) {
	c, err := New("es-MX")
	require.NoError(t, err)

	base, _ := c.Language().Base()
	assert.Equal(t, "es", base.String())
	assert.Equal(t, "¡Hola, Alex!", c.Greeting("Alex"))
	assert.Equal(t, "Omitir", c.Text(ButtonSkip))
}

func TestUnsupportedLanguageFallsBackToEnglish(t *testing.T) {
	c, err := New("ja")
	require.NoError(t, err)
	assert.Equal(t, language.English, c.Language())
	assert.Equal(t, "Get Started", c.Text(ButtonGetStarted))
}

func TestInvalidLanguage(t *testing.T) {
	_, err := New("not a tag!")
	assert.Error(t, err)
}

func TestUnknownMessageReturnsID(t *testing.T) {
	assert.Equal(t, "NoSuchMessage", Default().Text("NoSuchMessage"))
}
