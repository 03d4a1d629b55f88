// Package scenario loads and replays YAML descriptions of a collapse being
// toggled over time.
package scenario

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/accordion/pkg/animation"
	"github.com/go-drift/accordion/pkg/errors"
)

// SupportedMajor is the scenario format major version this build reads.
const SupportedMajor = "v1"

// Scenario describes a collapse and a timeline of activations.
type Scenario struct {
	Version  string   `yaml:"version"`
	Duration Duration `yaml:"duration,omitempty"`
	// Easing is a CSS timing function for sampled heights. Empty means ease.
	Easing string `yaml:"easing,omitempty"`
	// Active is the visibility at construction.
	Active        bool    `yaml:"active,omitempty"`
	Appear        bool    `yaml:"appear,omitempty"`
	DisableEnter  bool    `yaml:"disable_enter,omitempty"`
	DisableExit   bool    `yaml:"disable_exit,omitempty"`
	MountOnEnter  bool    `yaml:"mount_on_enter,omitempty"`
	UnmountOnExit bool    `yaml:"unmount_on_exit,omitempty"`
	Tag           string  `yaml:"tag,omitempty"`
	ID            string  `yaml:"id,omitempty"`
	ClassName     string  `yaml:"class_name,omitempty"`
	Content       Content `yaml:"content"`
	Steps         []Step  `yaml:"steps"`
}

// Content is what the collapse wraps and how its height is determined.
type Content struct {
	// Height fixes the natural height in pixels.
	Height *float64 `yaml:"height,omitempty"`
	// HTML is parsed as the body fragment.
	HTML string `yaml:"html,omitempty"`
	// Text is used as the body when HTML is empty.
	Text string `yaml:"text,omitempty"`
	// Width is the column width for text layout when Height is unset.
	Width float64 `yaml:"width,omitempty"`
	// LineHeight overrides the font's line height.
	LineHeight float64 `yaml:"line_height,omitempty"`
}

// Step sets the target visibility at an offset from the start.
type Step struct {
	At     Duration `yaml:"at"`
	Active bool     `yaml:"active"`
}

// Duration is a time.Duration written as "350ms" or a bare number of
// milliseconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}
	s := strings.TrimSpace(value.Value)
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		*d = Duration(ms * float64(time.Millisecond))
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Load reads a scenario from path. "-" reads standard input.
func Load(path string) (*Scenario, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.New("scenario.Parse", errors.KindScenario, err)
	}
	if err := s.Validate(); err != nil {
		return nil, errors.New("scenario.Parse", errors.KindScenario, err)
	}
	return &s, nil
}

// Validate reports every problem with s.
func (s *Scenario) Validate() error {
	var err error
	switch {
	case s.Version == "":
		err = multierr.Append(err, fmt.Errorf("version is required"))
	case !semver.IsValid(s.Version):
		err = multierr.Append(err, fmt.Errorf("version %q is not a semantic version", s.Version))
	case semver.Major(s.Version) != SupportedMajor:
		err = multierr.Append(err, fmt.Errorf("version %s is not supported (want %s.x)", s.Version, SupportedMajor))
	}
	if s.Easing != "" {
		if _, perr := animation.ParseCurve(s.Easing); perr != nil {
			err = multierr.Append(err, perr)
		}
	}
	if s.Duration < 0 {
		err = multierr.Append(err, fmt.Errorf("duration %v is negative", s.Duration.Std()))
	}
	if h := s.Content.Height; h != nil && *h < 0 {
		err = multierr.Append(err, fmt.Errorf("content height %v is negative", *h))
	}
	if s.Content.Height == nil && s.Content.Width < 0 {
		err = multierr.Append(err, fmt.Errorf("content width %v is negative", s.Content.Width))
	}
	var prev Duration
	for i, st := range s.Steps {
		if st.At < 0 {
			err = multierr.Append(err, fmt.Errorf("step %d: at %v is negative", i, st.At.Std()))
		}
		if st.At < prev {
			err = multierr.Append(err, fmt.Errorf("step %d: at %v is before step %d", i, st.At.Std(), i-1))
		}
		prev = st.At
	}
	return err
}
