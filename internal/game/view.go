package game

import "github.com/talgya/prosperville/internal/player"

// ChoiceRow is one step of a player's choice history, ready for
// display.
type ChoiceRow struct {
	Stage  string `json:"stage"`
	Turn   int    `json:"turn"` // 1-based
	Random bool   `json:"random"`
	Event  string `json:"event"`
	// Choice is the chosen option's title, "N/A" when the step offers
	// nothing to choose (or a random event is still undrawn), and
	// empty for turns not yet reached.
	Choice string `json:"choice"`
}

// ChoiceTable lists every step of the timeline with the given player's
// choices filled in through the current turn.
func (s *Session) ChoiceTable(p *player.Player) []ChoiceRow {
	rows := make([]ChoiceRow, len(s.tl.Steps))
	for i, stp := range s.tl.Steps {
		row := ChoiceRow{
			Turn:   stp.Turn + 1,
			Random: stp.IsRandomEvent,
		}
		if st, ok := s.cat.StageByName(stp.StageName); ok {
			row.Stage = st.Title
		}
		if evt, ok := s.cat.EventByName(stp.EventName); ok {
			row.Event = evt.Title
		}

		if stp.Turn <= s.iTurn {
			evt, drawn := s.cat.EventByName(stp.EventName)
			switch {
			case !drawn || !evt.HasOptions():
				row.Choice = "N/A"
			default:
				if idx, ok := p.Choice(evt.Name); ok {
					row.Choice = evt.Options[idx].Title
				}
			}
		}
		rows[i] = row
	}
	return rows
}

// Summary is a player's headline numbers at the latest simulated
// period. Monetary fields are monthly flows or point-in-time balances
// in dollars.
type Summary struct {
	Name      string  `json:"name"`
	IsAI      bool    `json:"is_ai"`
	Score     float64 `json:"score"`
	Happiness float64 `json:"happiness"`
	Wealth    float64 `json:"wealth"`
	Debt      float64 `json:"debt"`
	Asset     float64 `json:"asset"`
	Income    float64 `json:"income"`
	Spending  float64 `json:"spending"`
	NetIncome float64 `json:"net_income"`
	Bankrupt  bool    `json:"bankrupt"`
}

// Summaries returns the roster's headline numbers in seat order, AI
// last.
func (s *Session) Summaries() []Summary {
	out := make([]Summary, len(s.players))
	for i, p := range s.players {
		out[i] = Summary{
			Name:      p.Name,
			IsAI:      p.IsSystem,
			Score:     p.Score,
			Happiness: p.Happiness,
			Wealth:    p.Wealth,
			Debt:      p.Debt,
			Asset:     p.Asset,
			Income:    p.Income,
			Spending:  p.Spending,
			NetIncome: p.NetIncome,
			Bankrupt:  p.Bankrupt,
		}
	}
	return out
}
