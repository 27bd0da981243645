// Package game runs a Prosperville session: a fixed roster of human
// players plus one AI, stepping together through the timeline. Within a
// turn a player may revise their choices freely; once the last player
// finishes a turn the whole roster is simulated forward, ranked, and the
// AI picks its own choices by brute force.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/talgya/prosperville/internal/catalog"
	"github.com/talgya/prosperville/internal/instrument"
	"github.com/talgya/prosperville/internal/player"
	"github.com/talgya/prosperville/internal/timeline"
)

// Config describes a new session.
type Config struct {
	PlayerNames []string
	InitCash    float64
	// Seed drives random event draws. Zero means "pick one": callers
	// wanting reproducible games pass their own.
	Seed   int64
	Logger *slog.Logger
}

// Session is one running game. It is not safe for concurrent use; the
// API layer serializes access per session.
type Session struct {
	ID uuid.UUID
	// Seed is the rng seed the session was created with; a session can
	// be replayed from it and the same human choices.
	Seed int64

	cat *catalog.Catalog
	// tl is this session's copy of the step table: random event names
	// are written into it as they are drawn.
	tl *timeline.Table

	// players holds the human roster in seat order with the AI seated
	// last. survivors tracks the humans not yet bankrupt, in seat
	// order.
	players   []*player.Player
	survivors []*player.Player

	// Ranked lists human seat indices from best score to worst,
	// refreshed at the end of every turn.
	Ranked []int

	// iPlayer is the seat of the player to act, or aiSeat when the
	// game itself is acting (random events, event-less steps).
	iStep, iTurn, iStage, iPlayer int

	End bool

	rng *rand.Rand
	log *slog.Logger
}

const aiSeat = -1

// New builds a session over a validated catalog.
func New(cat *catalog.Catalog, cfg Config) (*Session, error) {
	if len(cfg.PlayerNames) == 0 {
		return nil, fmt.Errorf("game: at least one player name required")
	}
	tl, err := timeline.Build(cat.Stages)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Session{
		ID:   uuid.New(),
		Seed: cfg.Seed,
		cat:  cat,
		tl:   tl,
		rng:  rand.New(rand.NewSource(cfg.Seed)),
		log:  logger,
	}
	for _, name := range cfg.PlayerNames {
		p, err := player.New(name, cat, false, cfg.InitCash)
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		s.players = append(s.players, p)
	}
	ai, err := player.New("AI", cat, true, cfg.InitCash)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	s.players = append(s.players, ai)

	s.survivors = append(s.survivors, s.players[:len(s.players)-1]...)
	s.Ranked = make([]int, len(cfg.PlayerNames))
	for i := range s.Ranked {
		s.Ranked[i] = i
	}

	s.refresh()

	s.log.Info("game created",
		"session", s.ID,
		"players", len(cfg.PlayerNames),
		"turns", tl.NumTurns(),
		"periods", tl.Periods())
	return s, nil
}

// humanCount returns the number of human seats.
func (s *Session) humanCount() int { return len(s.players) - 1 }

// seat resolves an iPlayer value to a roster index.
func (s *Session) seat(i int) int {
	if i == aiSeat {
		return len(s.players) - 1
	}
	return i
}

// CurrentPlayer returns the player whose move it is.
func (s *Session) CurrentPlayer() *player.Player { return s.players[s.seat(s.iPlayer)] }

// Players returns the roster, AI last.
func (s *Session) Players() []*player.Player { return s.players }

// Step returns the current step index; Turn and Stage the current turn
// and stage indices.
func (s *Session) Step() int  { return s.iStep }
func (s *Session) Turn() int  { return s.iTurn }
func (s *Session) Stage() int { return s.iStage }

// Timeline exposes the session's step table, including any random
// events drawn so far.
func (s *Session) Timeline() *timeline.Table { return s.tl }

// Catalog returns the game design this session plays.
func (s *Session) Catalog() *catalog.Catalog { return s.cat }

// SurvivorCount reports how many human players are still solvent.
func (s *Session) SurvivorCount() int { return len(s.survivors) }

// CurrentEvent returns the event at the current step, or nil on the
// step of an event-less stage.
func (s *Session) CurrentEvent() *catalog.Event {
	name := s.tl.Steps[s.iStep].EventName
	if name == "" {
		return nil
	}
	evt, _ := s.cat.EventByName(name)
	return evt
}

// OptionAvailability returns the current player's availability flags
// for the current event, or nil when there is nothing to choose.
func (s *Session) OptionAvailability() []bool {
	evt := s.CurrentEvent()
	if evt == nil {
		return nil
	}
	return s.CurrentPlayer().OptionAvailability(evt.Name)
}

// SetChoice records the current player's pick for the current event.
func (s *Session) SetChoice(option int) error {
	evt := s.CurrentEvent()
	if evt == nil {
		return fmt.Errorf("game: no event to choose at step %d", s.iStep)
	}
	if !evt.HasOptions() {
		return fmt.Errorf("game: event %q offers no choices", evt.Name)
	}
	return s.CurrentPlayer().SetChoice(evt.Name, option)
}

// isRandomStep reports whether the current step is a random event slot.
func (s *Session) isRandomStep() bool { return s.tl.Steps[s.iStep].IsRandomEvent }

// isLastPlayer reports whether the acting player is the final one for
// this turn: the last surviving human, or the AI.
func (s *Session) isLastPlayer() bool {
	if len(s.survivors) == 0 {
		return false
	}
	p := s.players[s.seat(s.iPlayer)]
	return p == s.survivors[len(s.survivors)-1] || p == s.players[len(s.players)-1]
}

// CanStepBack reports whether Back will move.
func (s *Session) CanStepBack() bool {
	return s.iPlayer > 0 || s.iStep != s.tl.FirstStepOfTurn[s.iTurn]
}

// Next advances the game: through the steps of a turn first, then
// through the players, and when the last player finishes the turn,
// through simulation, ranking and the AI's move into the next turn.
func (s *Session) Next() {
	if s.End {
		return
	}

	if s.iStep == s.tl.LastStepOfTurn[s.iTurn] {
		if s.isLastPlayer() {
			s.scoreTurn()
			s.Ranked = s.rankPlayers()
			s.optimizeAI()
		}

		lastStage := len(s.tl.LastStepOfStage) - 1
		atFinalStep := s.iStep == s.tl.LastStepOfStage[lastStage]
		if len(s.survivors) == 0 || (atFinalStep && (s.isRandomStep() || s.isLastPlayer())) {
			s.End = true
			s.log.Info("game over", "session", s.ID, "survivors", len(s.survivors))
		} else if s.isLastPlayer() {
			s.iStep++
			if s.isRandomStep() || s.tl.Steps[s.iStep].EventName == "" {
				// Nothing for a human to decide: the game itself acts.
				s.iPlayer = aiSeat
			} else {
				s.iPlayer = 0
				if s.players[0].Bankrupt {
					s.progressPlayer(1)
				}
			}
		} else {
			s.progressPlayer(1)
			s.iStep = s.tl.FirstStepOfTurn[s.iTurn]
		}
	} else {
		s.iStep++
	}

	s.iStage, s.iTurn = s.tl.Steps[s.iStep].Stage, s.tl.Steps[s.iStep].Turn
	s.refresh()
}

// Back moves one step backwards within the current turn, or hands the
// turn back to the previous surviving player at the step they finished
// on. Choices made in earlier turns are already simulated and final.
func (s *Session) Back() {
	if !s.CanStepBack() {
		return
	}

	if s.iStep == s.tl.FirstStepOfTurn[s.iTurn] {
		s.progressPlayer(-1)
		s.iStep = s.tl.LastStepOfTurn[s.iTurn]
	} else {
		s.iStep--
	}

	s.iStage, s.iTurn = s.tl.Steps[s.iStep].Stage, s.tl.Steps[s.iStep].Turn
	s.refresh()
}

// progressPlayer moves the seat pointer to the next (or previous)
// solvent human. If none exists in that direction the pointer stays.
func (s *Session) progressPlayer(dir int) {
	for i := s.iPlayer + dir; i >= 0 && i < s.humanCount(); i += dir {
		if !s.players[i].Bankrupt {
			s.iPlayer = i
			return
		}
	}
}

// refresh draws the random event for the current step if it has not
// been drawn yet. Draws stick: stepping back and forward again does not
// reroll.
func (s *Session) refresh() {
	if !s.isRandomStep() || s.tl.Steps[s.iStep].EventName != "" {
		return
	}
	st := &s.cat.Stages[s.iStage]
	name := st.RandomEvents[drawIndex(s.rng, st.RandomProbs())]
	s.tl.Steps[s.iStep].EventName = name
	s.log.Info("random event drawn", "session", s.ID, "stage", st.Name, "event", name)
}

// drawIndex samples one index from a normalized probability vector.
func drawIndex(rng *rand.Rand, probs []float64) int {
	u := rng.Float64()
	var cum float64
	for i, p := range probs {
		cum += p
		if u < cum {
			return i
		}
	}
	return len(probs) - 1
}

// scoreTurn simulates every surviving human across the turn's periods,
// drops the newly bankrupt, and leaves the seat pointer on the last
// player to have acted.
func (s *Session) scoreTurn() {
	for i := 0; i < len(s.survivors); {
		p := s.survivors[i]
		s.attachTurnInstruments(p, s.iTurn, s.iTurn)
		p.Simulate(s.tl.FirstPeriodOfTurn[s.iTurn], s.tl.LastPeriodOfTurn[s.iTurn])
		if p.Bankrupt {
			s.log.Info("player bankrupt",
				"session", s.ID, "player", p.Name, "period", p.BankruptPeriod)
			s.survivors = append(s.survivors[:i], s.survivors[i+1:]...)
			continue
		}
		i++
	}

	if len(s.survivors) > 0 {
		last := s.survivors[len(s.survivors)-1]
		for i, p := range s.players {
			if p == last {
				s.iPlayer = i
				break
			}
		}
	} else {
		s.iPlayer = aiSeat
	}
}

// rankPlayers orders human seats from best score to worst. Bankrupt
// players rank among the living by the score they froze at.
func (s *Session) rankPlayers() []int {
	ranked := make([]int, s.humanCount())
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return s.players[ranked[a]].Score > s.players[ranked[b]].Score
	})
	return ranked
}

// attachTurnInstruments binds the instruments implied by a player's
// choices (and by optionless events such as random draws) for every
// step of the given turn span.
func (s *Session) attachTurnInstruments(p *player.Player, firstTurn, lastTurn int) {
	for istp := s.tl.FirstStepOfTurn[firstTurn]; istp <= s.tl.LastStepOfTurn[lastTurn]; istp++ {
		evName := s.tl.Steps[istp].EventName
		if evName == "" {
			continue
		}

		var protos []*instrument.Instrument
		if idx, chosen := p.Choice(evName); chosen {
			evt, _ := s.cat.EventByName(evName)
			protos = s.cat.InstrumentsFor(evt.Options[idx].Name)
		} else {
			// Events without a recorded choice contribute only if they
			// carry instruments themselves (random events do; undrawn
			// or skipped choice events do not).
			protos = s.cat.InstrumentsFor(evName)
		}

		for _, proto := range protos {
			ins := proto
			if ins.StartPeriod == instrument.StartAtEvent {
				ins = ins.WithStartPeriod(s.tl.Steps[s.iStep].PeriodFirst)
			}
			if ins = s.applySpecialRules(p, evName, ins); ins == nil {
				continue
			}
			p.AddInstrument(ins)
		}
	}
}

const (
	collegeEvent    = "stg1_college"
	firstJobEvent   = "stg2_firstjob"
	firstHouseEvent = "stg2_firsthouse"
	rentOption      = "stg2_firsthouse_rent"
	laterHouseEvent = "stg3_house"
)

// applySpecialRules handles the two cross-stage couplings the catalog
// cannot express on its own. Returns nil when the instrument should be
// dropped entirely.
func (s *Session) applySpecialRules(p *player.Player, evName string, ins *instrument.Instrument) *instrument.Instrument {
	// A college degree raises the first-job salary offer.
	if evName == firstJobEvent && ins.Kind == instrument.KindSalary {
		if idx, ok := p.Choice(collegeEvent); ok {
			evt, _ := s.cat.EventByName(collegeEvent)
			switch evt.Options[idx].Name {
			case "stg1_college_public_in_state", "stg1_college_public_out_state":
				ins = ins.WithAmount(ins.Amount * 1.1)
			case "stg1_college_ivy_league":
				ins = ins.WithAmount(ins.Amount * 1.15)
			}
		}
	}

	// A stage-3 house bought by a renter is a first home, not a rental
	// property, so its rental income does not apply.
	if evName == laterHouseEvent && ins.Kind == instrument.KindSalary {
		if idx, ok := p.Choice(firstHouseEvent); ok {
			evt, _ := s.cat.EventByName(firstHouseEvent)
			if evt.Options[idx].Name == rentOption {
				return nil
			}
		}
	}
	return ins
}
