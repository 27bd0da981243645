// Package catalog holds the declarative game design: life stages, the
// events each stage scripts, the options an event offers, and the
// instrument parameter records a choice attaches. The catalog is
// validated once at startup and read-only afterwards; every player and
// every speculative AI copy shares it by reference.
package catalog

import (
	"fmt"

	"github.com/talgya/prosperville/internal/instrument"
)

// Option is one selectable answer to an event. Instruments may be empty:
// an option can legitimately do nothing.
type Option struct {
	Name        string           `yaml:"name"`
	Title       string           `yaml:"title"`
	Desc        string           `yaml:"desc,omitempty"`
	Instruments []instrument.Def `yaml:"instruments,omitempty"`
}

// Event is a scripted or random life event. Events with no options are
// informational or carry their own instruments directly (random events).
type Event struct {
	Name        string           `yaml:"name"`
	Title       string           `yaml:"title"`
	Desc        string           `yaml:"desc,omitempty"`
	Options     []Option         `yaml:"options,omitempty"`
	Instruments []instrument.Def `yaml:"instruments,omitempty"`
}

// HasOptions reports whether the event requires a player choice.
func (e *Event) HasOptions() bool { return len(e.Options) > 0 }

// Stage is a contiguous age range with an ordered event sequence
// followed by randomly drawn event turns.
type Stage struct {
	Name            string   `yaml:"name"`
	Title           string   `yaml:"title"`
	Desc            string   `yaml:"desc,omitempty"`
	InitAge         int      `yaml:"init_age"`
	EndAge          int      `yaml:"end_age"`
	EventSeq        []string `yaml:"events"`
	RandomTurnCount int      `yaml:"random_turns"`
	RandomEvents    []string `yaml:"random_events,omitempty"`
	RandomWeights   []float64 `yaml:"random_weights,omitempty"`

	// randomProbs are the normalized draw probabilities, computed once
	// by Validate.
	randomProbs []float64
}

// RandomProbs returns the normalized random-event draw probabilities.
func (s *Stage) RandomProbs() []float64 { return s.randomProbs }

// Catalog is the full game design consumed by the engine.
type Catalog struct {
	Stages []Stage `yaml:"stages"`
	Events []Event `yaml:"events"`

	eventByName map[string]*Event
	// instrumentsByName maps an event or option name to its prototype
	// instruments, built once at validation.
	instrumentsByName map[string][]*instrument.Instrument
}

// EventByName looks up an event definition.
func (c *Catalog) EventByName(name string) (*Event, bool) {
	e, ok := c.eventByName[name]
	return e, ok
}

// InstrumentsFor returns the prototype instruments registered under an
// event or option name, or nil when the name carries none.
func (c *Catalog) InstrumentsFor(name string) []*instrument.Instrument {
	return c.instrumentsByName[name]
}

// StageByName looks up a stage definition.
func (c *Catalog) StageByName(name string) (*Stage, bool) {
	for i := range c.Stages {
		if c.Stages[i].Name == name {
			return &c.Stages[i], true
		}
	}
	return nil, false
}

// Validate checks the catalog for configuration errors, normalizes the
// random-event weights, and builds the prototype instruments. Any error
// here is fatal: a broken catalog must prevent the game from starting.
func (c *Catalog) Validate() error {
	if len(c.Stages) == 0 {
		return fmt.Errorf("catalog: no stages defined")
	}

	c.eventByName = make(map[string]*Event, len(c.Events))
	for i := range c.Events {
		evt := &c.Events[i]
		if _, dup := c.eventByName[evt.Name]; dup {
			return fmt.Errorf("catalog: duplicate event name %q", evt.Name)
		}
		c.eventByName[evt.Name] = evt
	}

	c.instrumentsByName = make(map[string][]*instrument.Instrument)
	register := func(name string, defs []instrument.Def) error {
		if len(defs) == 0 {
			return nil
		}
		if _, dup := c.instrumentsByName[name]; dup {
			return fmt.Errorf("catalog: name %q is shared between an event and an option", name)
		}
		protos := make([]*instrument.Instrument, 0, len(defs))
		for _, def := range defs {
			ins, err := instrument.New(def)
			if err != nil {
				return fmt.Errorf("catalog: %w", err)
			}
			protos = append(protos, ins)
		}
		c.instrumentsByName[name] = protos
		return nil
	}

	for i := range c.Events {
		evt := &c.Events[i]
		if err := register(evt.Name, evt.Instruments); err != nil {
			return err
		}
		for _, opt := range evt.Options {
			if _, clash := c.eventByName[opt.Name]; clash {
				return fmt.Errorf("catalog: option name %q collides with an event name", opt.Name)
			}
			if err := register(opt.Name, opt.Instruments); err != nil {
				return err
			}
		}
	}

	for i := range c.Stages {
		st := &c.Stages[i]
		if st.EndAge < st.InitAge {
			return fmt.Errorf("catalog: stage %q age range [%d, %d] is inverted", st.Name, st.InitAge, st.EndAge)
		}
		for _, name := range st.EventSeq {
			if _, ok := c.eventByName[name]; !ok {
				return fmt.Errorf("catalog: stage %q schedules unknown event %q", st.Name, name)
			}
		}
		if st.RandomTurnCount < 0 {
			return fmt.Errorf("catalog: stage %q has negative random turn count", st.Name)
		}
		if st.RandomTurnCount == 0 {
			continue
		}
		if len(st.RandomEvents) == 0 {
			return fmt.Errorf("catalog: stage %q has %d random turns but no random event catalog", st.Name, st.RandomTurnCount)
		}
		if len(st.RandomWeights) != len(st.RandomEvents) {
			return fmt.Errorf("catalog: stage %q has %d random events but %d weights",
				st.Name, len(st.RandomEvents), len(st.RandomWeights))
		}
		var total float64
		for _, w := range st.RandomWeights {
			if w < 0 {
				return fmt.Errorf("catalog: stage %q has a negative random event weight", st.Name)
			}
			total += w
		}
		if total <= 0 {
			return fmt.Errorf("catalog: stage %q random event weights sum to zero", st.Name)
		}
		for _, name := range st.RandomEvents {
			if _, ok := c.eventByName[name]; !ok {
				return fmt.Errorf("catalog: stage %q draws unknown random event %q", st.Name, name)
			}
		}
		st.randomProbs = make([]float64, len(st.RandomWeights))
		for j, w := range st.RandomWeights {
			st.randomProbs[j] = w / total
		}
	}
	return nil
}
