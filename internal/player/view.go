package player

import (
	"math"

	"github.com/talgya/prosperville/internal/instrument"
)

// ScoreRow is one period of the player-facing score table. Monetary and
// score columns are truncated to whole numbers; Month is fractional
// because a period is half a month.
type ScoreRow struct {
	Age       int
	Month     float64
	Score     int
	Happiness int
	Wealth    int
	Debt      int
}

// ScoreRows renders the ledger through the given period, or through the
// insolvency period for a bankrupt player. initAge anchors the age
// column to the first stage of the game.
func (p *Player) ScoreRows(initAge, upTo int) []ScoreRow {
	if p.Bankrupt {
		upTo = p.BankruptPeriod
	}
	if upTo >= p.ledger.len() {
		upTo = p.ledger.len() - 1
	}
	if upTo < 0 {
		return nil
	}
	rows := make([]ScoreRow, 0, upTo+1)
	for i := 0; i <= upTo; i++ {
		month := math.Mod(float64(i+1)/instrument.PeriodsPerMonth, 12)
		if month == 0 {
			month = 12
		}
		rows = append(rows, ScoreRow{
			Age:       initAge + i/instrument.PeriodsPerYear,
			Month:     month,
			Score:     int(p.ledger.score[i]),
			Happiness: int(p.ledger.happiness[i]),
			Wealth:    int(p.ledger.wealth[i]),
			Debt:      int(p.ledger.debt[i]),
		})
	}
	return rows
}
