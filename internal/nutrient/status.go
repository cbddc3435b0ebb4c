package nutrient

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRule is returned for thresholds that would make a status tier unreachable
// or the classification non-monotonic.
var ErrInvalidRule = errors.New("invalid nutrient rule")

// Status is a status tier, ordered from least to most intake.
type Status int

const (
	Insufficient Status = iota
	Adequate
	Caution
	Warning
	Excessive
)

var statusNames = [...]string{"insufficient", "adequate", "caution", "warning", "excessive"}

func (s Status) String() string {
	if s < Insufficient || s > Excessive {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// MarshalText encodes the status by name so JSON and YAML carry readable tiers.
func (s Status) MarshalText() ([]byte, error) {
	if s < Insufficient || s > Excessive {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(b)))
	for i, n := range statusNames {
		if n == name {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", string(b))
}

// Shape selects how a rule reads the intake ratio.
type Shape string

const (
	// Range is a dead-band around 100%: too little and too much both matter.
	Range Shape = "range"
	// Ceiling only flags going over: caution, then warning.
	Ceiling Shape = "ceiling"
	// Floor only flags falling short.
	Floor Shape = "floor"
)

// Rule holds the percentage thresholds for one nutrient.
type Rule struct {
	Shape        Shape   `yaml:"shape" json:"shape"`
	Insufficient float64 `yaml:"insufficient,omitempty" json:"insufficient,omitempty"`
	Excessive    float64 `yaml:"excessive,omitempty" json:"excessive,omitempty"`
	Caution      float64 `yaml:"caution,omitempty" json:"caution,omitempty"`
	Warning      float64 `yaml:"warning,omitempty" json:"warning,omitempty"`
}

// Validate rejects rules whose thresholds are missing or inverted.
func (r Rule) Validate() error {
	switch r.Shape {
	case Range:
		if r.Insufficient < 0 || r.Excessive < r.Insufficient {
			return fmt.Errorf("%w: range needs 0 <= insufficient (%v) <= excessive (%v)", ErrInvalidRule, r.Insufficient, r.Excessive)
		}
	case Ceiling:
		if r.Caution < 0 || r.Warning < r.Caution {
			return fmt.Errorf("%w: ceiling needs 0 <= caution (%v) <= warning (%v)", ErrInvalidRule, r.Caution, r.Warning)
		}
	case Floor:
		if r.Insufficient < 0 {
			return fmt.Errorf("%w: floor needs insufficient >= 0", ErrInvalidRule)
		}
	default:
		return fmt.Errorf("%w: unknown shape %q", ErrInvalidRule, r.Shape)
	}
	return nil
}

// classify maps an intake percentage onto a tier. Every branch is monotonic
// in pct, so status never decreases as intake grows.
func (r Rule) classify(pct float64) Status {
	switch r.Shape {
	case Range:
		if pct < r.Insufficient {
			return Insufficient
		}
		if pct <= r.Excessive {
			return Adequate
		}
		return Excessive
	case Ceiling:
		if pct > r.Warning {
			return Warning
		}
		if pct > r.Caution {
			return Caution
		}
		return Adequate
	case Floor:
		if pct < r.Insufficient {
			return Insufficient
		}
		return Adequate
	}
	return Insufficient
}

// DefaultRules are the thresholds the dashboard ships with.
func DefaultRules() map[Kind]Rule {
	return map[Kind]Rule{
		Carb:        {Shape: Range, Insufficient: 80, Excessive: 120},
		Protein:     {Shape: Range, Insufficient: 90, Excessive: 130},
		Fat:         {Shape: Range, Insufficient: 80, Excessive: 110},
		Sodium:      {Shape: Ceiling, Caution: 100, Warning: 150},
		Sugar:       {Shape: Ceiling, Caution: 100, Warning: 150},
		Cholesterol: {Shape: Ceiling, Caution: 100, Warning: 150},
		Fiber:       {Shape: Floor, Insufficient: 80},
	}
}

// Evaluator classifies intakes with per-nutrient rules.
type Evaluator struct {
	rules map[Kind]Rule
}

// NewEvaluator starts from DefaultRules and applies overrides. Every override
// is validated; the first invalid one is returned as an error.
func NewEvaluator(overrides map[Kind]Rule) (*Evaluator, error) {
	rules := DefaultRules()
	for k, r := range overrides {
		if _, ok := rules[k]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("rule for %s: %w", k, err)
		}
		rules[k] = r
	}
	return &Evaluator{rules: rules}, nil
}

// DefaultEvaluator uses DefaultRules unchanged.
func DefaultEvaluator() *Evaluator {
	return &Evaluator{rules: DefaultRules()}
}

// Rule returns the rule in effect for k.
func (e *Evaluator) Rule(k Kind) (Rule, bool) {
	r, ok := e.rules[k]
	return r, ok
}

// Rules returns a copy of every rule in effect.
func (e *Evaluator) Rules() map[Kind]Rule {
	out := make(map[Kind]Rule, len(e.rules))
	for k, r := range e.rules {
		out[k] = r
	}
	return out
}

// Evaluate classifies value against goal. A non-positive goal is reported as
// insufficient rather than dividing by zero; unknown kinds are insufficient too.
func (e *Evaluator) Evaluate(k Kind, value, goal float64) Status {
	if goal <= 0 {
		return Insufficient
	}
	r, ok := e.rules[k]
	if !ok {
		return Insufficient
	}
	return r.classify(percent(value, goal))
}

// Status classifies an Intake.
func (e *Evaluator) Status(in Intake) Status {
	return e.Evaluate(in.Kind, in.Current, in.Goal)
}
