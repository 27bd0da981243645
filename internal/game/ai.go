package game

import (
	"github.com/talgya/prosperville/internal/player"
)

// optimizeAI makes the AI's choices for the current turn by brute
// force: every combination of options across the turn's choice events
// is cloned, simulated to the end of the stage, and scored. Solvent
// outcomes always beat bankrupt ones; within a bucket the end-of-stage
// score decides.
func (s *Session) optimizeAI() {
	ai := s.players[len(s.players)-1]

	var eventNames []string
	var optionCounts []int
	for istp := s.tl.FirstStepOfTurn[s.iTurn]; istp <= s.tl.LastStepOfTurn[s.iTurn]; istp++ {
		evt, ok := s.cat.EventByName(s.tl.Steps[istp].EventName)
		if !ok || !evt.HasOptions() {
			continue
		}
		eventNames = append(eventNames, evt.Name)
		optionCounts = append(optionCounts, len(evt.Options))
	}

	simFirst := s.tl.FirstPeriodOfTurn[s.tl.FirstTurnOfStage[s.iStage]]
	simLast := s.tl.LastPeriodOfTurn[s.tl.LastTurnOfStage[s.iStage]]

	// Nothing to decide this turn: just advance the AI's simulation.
	if len(eventNames) == 0 {
		s.attachTurnInstruments(ai, s.iTurn, s.iTurn)
		ai.Simulate(simFirst, simLast)
		return
	}

	scorePeriod := s.tl.Steps[s.tl.LastStepOfStage[s.iStage]].PeriodLast

	var bestSolvent, bestBankrupt *player.Player
	bestSolventScore, bestBankruptScore := -1.0, -1.0

	combo := make([]int, len(eventNames))
	for {
		alt := ai.Clone()
		feasible := true
		for i, name := range eventNames {
			if err := alt.SetChoice(name, combo[i]); err != nil {
				// Some combinations are contradictory, eg dorm housing
				// without enrolling in college.
				feasible = false
				break
			}
		}
		if feasible {
			s.attachTurnInstruments(alt, s.iTurn, s.iTurn)
			alt.Simulate(simFirst, simLast)
			score := alt.ScoreAt(scorePeriod)
			if alt.Bankrupt {
				if bestBankrupt == nil || score > bestBankruptScore {
					bestBankrupt, bestBankruptScore = alt, score
				}
			} else {
				if bestSolvent == nil || score > bestSolventScore {
					bestSolvent, bestSolventScore = alt, score
				}
			}
		}

		if !nextCombo(combo, optionCounts) {
			break
		}
	}

	winner := bestSolvent
	if winner == nil {
		winner = bestBankrupt
	}
	if winner == nil {
		// Every combination was infeasible; keep the AI as is.
		s.log.Warn("no feasible choices for AI", "session", s.ID, "turn", s.iTurn)
		return
	}
	s.players[len(s.players)-1] = winner
	s.log.Info("AI committed choices",
		"session", s.ID,
		"turn", s.iTurn,
		"score", winner.Score,
		"bankrupt", winner.Bankrupt)
}

// nextCombo advances an odometer over the option counts, returning
// false after the last combination.
func nextCombo(combo, counts []int) bool {
	for i := len(combo) - 1; i >= 0; i-- {
		combo[i]++
		if combo[i] < counts[i] {
			return true
		}
		combo[i] = 0
	}
	return false
}
