// Package timeline flattens the stage definitions into the step table
// the game walks: one step per scripted event, then one single-step turn
// per random event slot, with every step mapped onto the simulation
// period axis. The table is built once per catalog and cloned per game
// session, because random steps get their event names filled in as they
// are drawn.
package timeline

import (
	"errors"
	"math"

	"github.com/talgya/prosperville/internal/catalog"
	"github.com/talgya/prosperville/internal/instrument"
)

// Step is one row of the step table. Scripted steps of a stage all share
// the stage's full period range and a single turn; the per-turn tiling of
// the period axis lives in Table.FirstPeriodOfTurn / LastPeriodOfTurn.
type Step struct {
	Stage      int
	Turn       int
	EventIndex int
	StageName  string
	// EventName is empty on random steps until the event is drawn, and
	// always empty on the step of an event-less stage.
	EventName string

	// PeriodFirst and PeriodLast bound where this step's choices may
	// take effect. PeriodSimLast is how far the simulation advances
	// when the step's turn is scored.
	PeriodFirst   int
	PeriodLast    int
	PeriodSimLast int

	IsRandomEvent     bool
	IsLastTurnOfStage bool
	IsLastStepOfStage bool
}

// Table is the flattened game script plus the index tables that map
// stages and turns onto steps and periods.
type Table struct {
	Steps []Step

	FirstStepOfStage []int
	LastStepOfStage  []int
	FirstTurnOfStage []int
	LastTurnOfStage  []int

	FirstStepOfTurn []int
	LastStepOfTurn  []int

	// FirstPeriodOfTurn and LastPeriodOfTurn tile the whole horizon:
	// turn t owns [FirstPeriodOfTurn[t], LastPeriodOfTurn[t]] with no
	// gaps and no overlap.
	FirstPeriodOfTurn []int
	LastPeriodOfTurn  []int

	// PreGameAge anchors period 0: a player is PreGameAge+1 years old
	// during the first year of play.
	PreGameAge int
}

// Build constructs the step table for an ordered stage list. The stages
// are assumed to have passed catalog validation.
func Build(stages []catalog.Stage) (*Table, error) {
	if len(stages) == 0 {
		return nil, errors.New("timeline: no stages")
	}

	t := &Table{
		FirstStepOfStage: make([]int, len(stages)),
		LastStepOfStage:  make([]int, len(stages)),
		FirstTurnOfStage: make([]int, len(stages)),
		LastTurnOfStage:  make([]int, len(stages)),
		PreGameAge:       stages[0].InitAge - 1,
	}

	turn, step := 0, 0
	for si := range stages {
		st := &stages[si]
		t.FirstStepOfStage[si], t.FirstTurnOfStage[si] = step, turn
		t.FirstStepOfTurn = append(t.FirstStepOfTurn, step)
		pFirst := (st.InitAge - t.PreGameAge - 1) * instrument.PeriodsPerYear
		pLast := (st.EndAge-t.PreGameAge)*instrument.PeriodsPerYear - 1

		if len(st.EventSeq) == 0 {
			t.Steps = append(t.Steps, Step{
				Stage: si, Turn: turn, StageName: st.Name,
				PeriodFirst: pFirst, PeriodLast: pLast,
			})
			t.LastStepOfStage[si], t.LastTurnOfStage[si] = step, turn
			t.LastStepOfTurn = append(t.LastStepOfTurn, step)
			step++
		}

		for ei, evName := range st.EventSeq {
			s := Step{
				Stage: si, Turn: turn, EventIndex: ei,
				StageName: st.Name, EventName: evName,
				PeriodFirst: pFirst, PeriodLast: pLast,
			}
			if ei != len(st.EventSeq)-1 {
				t.Steps = append(t.Steps, s)
				step++
				continue
			}

			// Last scripted event closes the stage's shared turn; the
			// random slots, if any, become their own turns carving up
			// the stage's period range.
			t.LastStepOfTurn = append(t.LastStepOfTurn, step)
			if st.RandomTurnCount == 0 {
				s.IsLastTurnOfStage, s.IsLastStepOfStage = true, true
				t.Steps = append(t.Steps, s)
			} else {
				t.Steps = append(t.Steps, s)
				prlen := float64(pLast-pFirst+1) / float64(st.RandomTurnCount+1)
				for ir := 0; ir < st.RandomTurnCount; ir++ {
					turn++
					step++
					last := ir == st.RandomTurnCount-1
					t.Steps = append(t.Steps, Step{
						Stage: si, Turn: turn, EventIndex: ir,
						StageName:         st.Name,
						PeriodFirst:       int(math.Ceil(prlen*float64(ir+1) + float64(pFirst) - 1)),
						PeriodLast:        int(math.Ceil(prlen*float64(ir+2) + float64(pFirst) - 1)),
						IsRandomEvent:     true,
						IsLastTurnOfStage: last,
						IsLastStepOfStage: last,
					})
					t.FirstStepOfTurn = append(t.FirstStepOfTurn, step)
					t.LastStepOfTurn = append(t.LastStepOfTurn, step)
				}
			}
			t.LastStepOfStage[si], t.LastTurnOfStage[si] = step, turn
			step++
		}
		turn++
	}

	// Tile the period axis over turns and stamp each step with how far
	// its turn simulates: up to the period before the next turn begins,
	// or to the horizon for the final turn.
	n := len(t.FirstStepOfTurn)
	t.FirstPeriodOfTurn = make([]int, n)
	t.LastPeriodOfTurn = make([]int, n)
	t.FirstPeriodOfTurn[0] = t.Steps[0].PeriodFirst
	for ref := 1; ref < n; ref++ {
		pf := t.Steps[t.FirstStepOfTurn[ref]].PeriodFirst
		t.FirstPeriodOfTurn[ref] = pf
		t.LastPeriodOfTurn[ref-1] = pf - 1
		for i := t.FirstStepOfTurn[ref-1]; i <= t.LastStepOfTurn[ref-1]; i++ {
			t.Steps[i].PeriodSimLast = pf - 1
		}
	}
	lastStep := len(t.Steps) - 1
	t.Steps[lastStep].PeriodSimLast = t.Steps[lastStep].PeriodLast
	t.LastPeriodOfTurn[n-1] = t.Steps[lastStep].PeriodLast

	return t, nil
}

// NumTurns returns the number of turns in the game.
func (t *Table) NumTurns() int { return len(t.FirstStepOfTurn) }

// Periods returns the simulation horizon length: the number of periods
// from period 0 through the end of the last stage.
func (t *Table) Periods() int { return t.LastPeriodOfTurn[len(t.LastPeriodOfTurn)-1] + 1 }

// AgeAt converts a simulation period to the player's age in whole years.
func (t *Table) AgeAt(period int) int {
	return t.PreGameAge + 1 + period/instrument.PeriodsPerYear
}

// Clone returns an independent copy. Sessions mutate step event names as
// random events are drawn, so the shared table must never be handed out
// directly.
func (t *Table) Clone() *Table {
	cp := *t
	cp.Steps = append([]Step(nil), t.Steps...)
	cp.FirstStepOfStage = append([]int(nil), t.FirstStepOfStage...)
	cp.LastStepOfStage = append([]int(nil), t.LastStepOfStage...)
	cp.FirstTurnOfStage = append([]int(nil), t.FirstTurnOfStage...)
	cp.LastTurnOfStage = append([]int(nil), t.LastTurnOfStage...)
	cp.FirstStepOfTurn = append([]int(nil), t.FirstStepOfTurn...)
	cp.LastStepOfTurn = append([]int(nil), t.LastStepOfTurn...)
	cp.FirstPeriodOfTurn = append([]int(nil), t.FirstPeriodOfTurn...)
	cp.LastPeriodOfTurn = append([]int(nil), t.LastPeriodOfTurn...)
	return &cp
}
