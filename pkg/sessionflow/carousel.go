package sessionflow

import (
	"fmt"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/engine"
	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/locale"
)

// Carousel is the state of the welcome screen. Skip and Next are offered on
// every slide but the last; the last slide offers only Get Started.
type Carousel struct {
	slides []locale.Slide
	index  int
}

// NewCarousel starts a carousel on its first slide.
func NewCarousel(catalog *locale.Catalog) *Carousel {
	return &Carousel{slides: catalog.Slides()}
}

// Slide returns the slide on screen.
func (c *Carousel) Slide() locale.Slide {
	return c.slides[c.index]
}

// Index returns the 0-based position of the slide on screen.
func (c *Carousel) Index() int {
	return c.index
}

// IsLast reports whether the last slide is on screen.
func (c *Carousel) IsLast() bool {
	return c.index == len(c.slides)-1
}

// Actions returns the buttons offered on the current slide.
func (c *Carousel) Actions() []WelcomeAction {
	if c.IsLast() {
		return []WelcomeAction{WelcomeActionGetStarted}
	}
	return []WelcomeAction{WelcomeActionSkip, WelcomeActionNext}
}

// Apply performs action. Next moves to the following slide and returns a nil
// intent; Skip and Get Started return the intent the engine should receive.
func (c *Carousel) Apply(action WelcomeAction) (engine.Intent, error) {
	switch {
	case action == WelcomeActionNext && !c.IsLast():
		c.index++
		return nil, nil
	case action == WelcomeActionSkip && !c.IsLast():
		return engine.WelcomeSkip{}, nil
	case action == WelcomeActionGetStarted && c.IsLast():
		return engine.WelcomeGetStarted{}, nil
	default:
		return nil, fmt.Errorf("%w: %s on slide %d", ErrActionUnavailable, action, c.index+1)
	}
}
