package collapse

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/net/html"

	"github.com/go-drift/accordion/pkg/animation"
	"github.com/go-drift/accordion/pkg/transition"
)

// TransitionTimeouts are the conventional durations of the design system's
// transitions, taken from the Bootstrap SASS variables.
var TransitionTimeouts = struct {
	Fade     time.Duration // $transition-fade
	Collapse time.Duration // $transition-collapse
	Modal    time.Duration // $modal-transition
	Carousel time.Duration // $carousel-transition
}{
	Fade:     150 * time.Millisecond,
	Collapse: 350 * time.Millisecond,
	Modal:    300 * time.Millisecond,
	Carousel: 600 * time.Millisecond,
}

// DefaultTag is the container element used when Attributes.Tag is empty.
const DefaultTag = "div"

// TransitionConfig controls the phase sequencing of a Collapse.
type TransitionConfig struct {
	// Duration of the entering and exiting phases. Zero means
	// TransitionTimeouts.Collapse.
	Duration time.Duration
	// Appear animates the first mount when the collapse starts active.
	Appear bool
	// DisableEnter shows the content without animating.
	DisableEnter bool
	// DisableExit hides the content without animating.
	DisableExit bool
	// MountOnEnter renders nothing until the collapse is first activated.
	MountOnEnter bool
	// UnmountOnExit renders nothing once the collapse has fully exited.
	UnmountOnExit bool
	// Easing shapes VisualHeight during animated phases. Nil means the CSS
	// ease curve, matching the stylesheet's default transition.
	Easing animation.Curve
	// Hooks observes every phase change. Internal height bookkeeping has
	// already happened when a hook runs.
	Hooks transition.Hooks[*html.Node]
}

// Attributes are forwarded to the rendered container without interpretation.
type Attributes struct {
	// Tag is the container element name. Empty means DefaultTag.
	Tag string
	// ID is the container id. Empty means a generated "collapse-<uuid>".
	ID string
	// ClassName is joined in front of the phase class.
	ClassName string
	// Style declarations; a measured height overrides "height".
	Style map[string]string
	// Extra attributes. "class" and "style" entries are merged with the
	// computed values; "id" must be given through ID.
	Extra []html.Attribute
}

// Config is the complete configuration of a Collapse. Transition settings
// and presentation attributes are disjoint.
type Config struct {
	Transition TransitionConfig
	Attributes Attributes
	// Logger receives debug records for every rendered phase. Nil discards.
	Logger *log.Logger
	// Clock timestamps phase starts for VisualHeight. Nil means system time.
	Clock animation.Clock
}

// Validate reports every problem with c.
func (c Config) Validate() error {
	var err error
	if c.Transition.Duration < 0 {
		err = multierr.Append(err, fmt.Errorf("transition duration %v is negative", c.Transition.Duration))
	}
	if c.Attributes.Tag != "" && !validName(c.Attributes.Tag) {
		err = multierr.Append(err, fmt.Errorf("invalid tag %q", c.Attributes.Tag))
	}
	for k := range c.Attributes.Style {
		if strings.TrimSpace(k) == "" {
			err = multierr.Append(err, fmt.Errorf("empty style property"))
		}
	}
	for _, a := range c.Attributes.Extra {
		switch key := strings.ToLower(a.Key); {
		case key == "":
			err = multierr.Append(err, fmt.Errorf("empty attribute name"))
		case key == "id":
			err = multierr.Append(err, fmt.Errorf("attribute id must be set through Attributes.ID"))
		case !validName(key):
			err = multierr.Append(err, fmt.Errorf("invalid attribute name %q", a.Key))
		}
	}
	return err
}

func (c Config) withDefaults() Config {
	if c.Transition.Duration == 0 {
		c.Transition.Duration = TransitionTimeouts.Collapse
	}
	if c.Attributes.Tag == "" {
		c.Attributes.Tag = DefaultTag
	}
	c.Attributes.Tag = strings.ToLower(c.Attributes.Tag)
	if c.Attributes.ID == "" {
		c.Attributes.ID = "collapse-" + uuid.NewString()
	}
	if c.Clock == nil {
		c.Clock = animation.SystemClock{}
	}
	if c.Transition.Easing == nil {
		c.Transition.Easing = animation.Ease
	}
	return c
}

// validName accepts element and attribute names: a letter followed by
// letters, digits, '-', '_', ':' or '.'.
func validName(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_' || r == ':' || r == '.'):
		default:
			return false
		}
	}
	return s != ""
}
