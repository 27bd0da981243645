// Package player holds the per-player simulation state: the instruments
// a player's choices attached, the period-by-period ledger of income,
// debt, assets and wealth, and the happiness-based score derived from
// it. Players are value-like: Clone produces a fully independent copy,
// which is what lets the optimizer score speculative choice
// combinations without touching the real player.
package player

import (
	"errors"
	"fmt"
	"math"

	"github.com/talgya/prosperville/internal/catalog"
	"github.com/talgya/prosperville/internal/instrument"
)

// ErrUnavailable is returned by SetChoice when a choice conflicts with
// an earlier one, such as dorm housing without enrolling in college.
var ErrUnavailable = errors.New("option unavailable")

// Player is one participant, human or AI. Exported aggregate fields are
// refreshed at the end of every Simulate call and describe the player as
// of the last simulated period.
type Player struct {
	Name     string
	IsSystem bool
	InitCash float64

	Score     float64
	Happiness float64
	Wealth    float64
	Debt      float64
	Asset     float64

	// Monthly averages over the most recent simulated span.
	NetIncome float64
	Income    float64
	Spending  float64

	DebtStudent  float64
	DebtMortgage float64
	DebtCar      float64
	DebtOther    float64

	Bankrupt       bool
	BankruptPeriod int

	// scoreAdjRatio normalizes happiness so every player starts the
	// game at exactly 100 regardless of initial cash.
	scoreAdjRatio float64

	cat         *catalog.Catalog
	choices     map[string]int
	available   map[string][]bool
	instruments []*instrument.Instrument

	ledger ledger
}

// ledger is the columnar per-period score table. Rows are appended as
// periods are first simulated and overwritten when the optimizer
// re-simulates a span it has already seen.
type ledger struct {
	income       []float64
	spending     []float64
	netIncome    []float64
	debt         []float64
	asset        []float64
	spendHappy   []float64
	monthlyHappy []float64
	wealth       []float64
	happiness    []float64
	score        []float64
	debtStd      []float64
	debtMort     []float64
	debtCar      []float64
	debtOther    []float64
	debtRatio    []float64
}

func (l *ledger) len() int { return len(l.score) }

func (l *ledger) ensure(iprd int) {
	for l.len() <= iprd {
		l.income = append(l.income, 0)
		l.spending = append(l.spending, 0)
		l.netIncome = append(l.netIncome, 0)
		l.debt = append(l.debt, 0)
		l.asset = append(l.asset, 0)
		l.spendHappy = append(l.spendHappy, 0)
		l.monthlyHappy = append(l.monthlyHappy, 0)
		l.wealth = append(l.wealth, 0)
		l.happiness = append(l.happiness, 0)
		l.score = append(l.score, 0)
		l.debtStd = append(l.debtStd, 0)
		l.debtMort = append(l.debtMort, 0)
		l.debtCar = append(l.debtCar, 0)
		l.debtOther = append(l.debtOther, 0)
		l.debtRatio = append(l.debtRatio, 0)
	}
}

func (l *ledger) clone() ledger {
	return ledger{
		income:       append([]float64(nil), l.income...),
		spending:     append([]float64(nil), l.spending...),
		netIncome:    append([]float64(nil), l.netIncome...),
		debt:         append([]float64(nil), l.debt...),
		asset:        append([]float64(nil), l.asset...),
		spendHappy:   append([]float64(nil), l.spendHappy...),
		monthlyHappy: append([]float64(nil), l.monthlyHappy...),
		wealth:       append([]float64(nil), l.wealth...),
		happiness:    append([]float64(nil), l.happiness...),
		score:        append([]float64(nil), l.score...),
		debtStd:      append([]float64(nil), l.debtStd...),
		debtMort:     append([]float64(nil), l.debtMort...),
		debtCar:      append([]float64(nil), l.debtCar...),
		debtOther:    append([]float64(nil), l.debtOther...),
		debtRatio:    append([]float64(nil), l.debtRatio...),
	}
}

// New creates a player. Initial cash must be non-negative; it seeds the
// starting wealth and the happiness normalization.
func New(name string, cat *catalog.Catalog, isSystem bool, initCash float64) (*Player, error) {
	if initCash < 0 {
		return nil, fmt.Errorf("player %q: initial cash must be non-negative, got %v", name, initCash)
	}
	p := &Player{
		Name:           name,
		IsSystem:       isSystem,
		InitCash:       initCash,
		Happiness:      100,
		Wealth:         initCash,
		BankruptPeriod: -1,
		cat:            cat,
		choices:        make(map[string]int),
		available:      make(map[string][]bool),
	}
	p.scoreAdjRatio = 100 / rawHappiness(initCash, 0, 1)
	return p, nil
}

// Clone returns an independent deep copy. Instruments are shared by
// pointer: they are immutable after construction.
func (p *Player) Clone() *Player {
	cp := *p
	cp.choices = make(map[string]int, len(p.choices))
	for k, v := range p.choices {
		cp.choices[k] = v
	}
	cp.available = make(map[string][]bool, len(p.available))
	for k, v := range p.available {
		cp.available[k] = append([]bool(nil), v...)
	}
	cp.instruments = append([]*instrument.Instrument(nil), p.instruments...)
	cp.ledger = p.ledger.clone()
	return &cp
}

// OptionAvailability returns one flag per option of the event, or nil
// when the event is unknown or has no options. Most events have every
// option open; dependent events get their flags set when the choice they
// depend on is made.
func (p *Player) OptionAvailability(eventName string) []bool {
	evt, ok := p.cat.EventByName(eventName)
	if !ok || !evt.HasOptions() {
		return nil
	}
	av, ok := p.available[eventName]
	if !ok {
		av = make([]bool, len(evt.Options))
		for i := range av {
			av[i] = true
		}
		p.available[eventName] = av
	}
	return av
}

// collegeEvent and its no-college option gate the dorm choice in the
// lodging event: the dorm is always the first lodging option.
const (
	collegeEvent    = "stg1_college"
	noCollegeOption = "stg1_no_college"
	lodgingEvent    = "stg1_lodging"
)

// SetChoice records the player's option pick for an event. Picking an
// option that another choice has made unavailable is an error, which the
// optimizer relies on to prune infeasible combinations.
func (p *Player) SetChoice(eventName string, option int) error {
	evt, ok := p.cat.EventByName(eventName)
	if !ok {
		return fmt.Errorf("player %q: unknown event %q", p.Name, eventName)
	}
	if option < 0 || option >= len(evt.Options) {
		return fmt.Errorf("player %q: event %q has no option %d", p.Name, eventName, option)
	}

	if prev, had := p.choices[eventName]; !had || prev != option {
		if eventName == collegeEvent {
			if lodging, ok := p.cat.EventByName(lodgingEvent); ok {
				av := make([]bool, len(lodging.Options))
				for i := range av {
					av[i] = true
				}
				if evt.Options[option].Name == noCollegeOption {
					av[0] = false
				}
				p.available[lodgingEvent] = av
			}
		}
	}

	if av := p.OptionAvailability(eventName); av != nil && !av[option] {
		return fmt.Errorf("player %q: option %q: %w", p.Name, evt.Options[option].Name, ErrUnavailable)
	}
	p.choices[eventName] = option
	return nil
}

// Choice returns the option index picked for an event, if any.
func (p *Player) Choice(eventName string) (int, bool) {
	i, ok := p.choices[eventName]
	return i, ok
}

// AddInstrument attaches a constructed instrument. The simulation folds
// its schedule in from its start period onward.
func (p *Player) AddInstrument(ins *instrument.Instrument) {
	p.instruments = append(p.instruments, ins)
}

// InstrumentCount reports how many instruments are attached.
func (p *Player) InstrumentCount() int { return len(p.instruments) }

// Simulate advances the ledger from start through end inclusive, then
// refreshes the aggregate fields. A player who goes insolvent stops
// simulating at the period it happened; later calls are no-ops.
func (p *Player) Simulate(start, end int) {
	if p.Bankrupt {
		return
	}
	for iprd := start; iprd <= end; iprd++ {
		p.updatePeriod(iprd)
		if p.Bankrupt {
			end = p.BankruptPeriod
			break
		}
	}

	n := float64(end - start + 1)
	l := &p.ledger
	p.Happiness = l.happiness[end]
	p.NetIncome = sumRange(l.netIncome, start, end) * instrument.PeriodsPerMonth / n
	p.Spending = sumRange(l.spending, start, end) * instrument.PeriodsPerMonth / n
	p.Income = sumRange(l.income, start, end) * instrument.PeriodsPerMonth / n

	p.DebtStudent = l.debtStd[end]
	p.DebtMortgage = l.debtMort[end]
	p.DebtCar = l.debtCar[end]
	p.DebtOther = l.debtOther[end]

	p.Score = l.score[end]
	p.Debt = l.debt[end]
	p.Wealth = l.wealth[end]
	p.Asset = l.asset[end]
}

func (p *Player) updatePeriod(iprd int) {
	adj := p.scoreAdjRatio
	var income, spending, debt, happySpend, asset, annualSalary float64
	var debtStd, debtMort, debtCar, debtOther float64

	for _, ins := range p.instruments {
		li, active := ins.ActiveAt(iprd)
		if !active {
			continue
		}
		switch ins.Kind {
		case instrument.KindSalary:
			income += ins.Schedule.Pay[li]
			annualSalary += ins.Amount
		case instrument.KindLoan:
			pay := ins.Schedule.Pay[li]
			spending += pay
			bal := ins.Schedule.BalEnd[li]
			debt += bal
			// Some debt service approximates enjoyment: a mortgage
			// payment counts as leisure spending, a student loan
			// payment does not.
			if ins.HappinessSpending {
				happySpend += pay
			}
			switch ins.Category {
			case "student":
				debtStd += bal
			case "mortgage":
				debtMort += bal
			case "car":
				debtCar += bal
			default:
				debtOther += bal
			}
		case instrument.KindExpense:
			pay := ins.Schedule.Pay[li]
			spending += pay
			if ins.HappinessSpending {
				happySpend += pay
			}
		case instrument.KindAsset:
			asset += ins.Schedule.ValueEnd[li]
			income += ins.Schedule.Pay[li]
		case instrument.KindModifier:
			adj *= ins.AdjustRatio
		}
	}
	net := income - spending

	l := &p.ledger
	l.ensure(iprd)
	l.income[iprd] = income
	l.spending[iprd] = spending
	l.netIncome[iprd] = net
	l.debt[iprd] = debt
	l.asset[iprd] = asset
	l.spendHappy[iprd] = happySpend
	l.debtStd[iprd] = debtStd
	l.debtMort[iprd] = debtMort
	l.debtCar[iprd] = debtCar
	l.debtOther[iprd] = debtOther

	if iprd == 0 {
		l.monthlyHappy[0] = happySpend
		l.wealth[0] = net - debt + asset + p.InitCash
	} else {
		// Leisure spending over the trailing month, clipped at the
		// start of the simulation.
		lo := iprd - instrument.PeriodsPerMonth + 1
		if lo < 0 {
			lo = 0
		}
		l.monthlyHappy[iprd] = sumRange(l.spendHappy, lo, iprd)
		debtChg := l.debt[iprd] - l.debt[iprd-1]
		assetChg := l.asset[iprd] - l.asset[iprd-1]
		l.wealth[iprd] = l.wealth[iprd-1] + net - debtChg + assetChg
	}

	nonStudent := l.debt[iprd] - l.debtStd[iprd]
	switch {
	case l.wealth[iprd] == 0 && nonStudent > 0:
		l.debtRatio[iprd] = 999
	case l.wealth[iprd] == 0:
		l.debtRatio[iprd] = 0
	default:
		l.debtRatio[iprd] = nonStudent / l.wealth[iprd]
	}

	l.happiness[iprd] = rawHappiness(l.wealth[iprd], l.monthlyHappy[iprd], adj)
	l.score[iprd] = sumRange(l.happiness, 0, iprd) / float64(iprd+1)

	// Insolvency: wealth net of student debt two annual salaries under
	// water. Student debt gets a pass so a freshly issued student loan
	// does not sink the player.
	if l.wealth[iprd]+l.debtStd[iprd] < -2*annualSalary {
		p.Bankrupt = true
		p.BankruptPeriod = iprd
	}
}

// ScoreAt returns the running score at a period, clamped to the last
// simulated period. The optimizer reads end-of-stage scores through this
// even when a candidate went bankrupt before the stage ended.
func (p *Player) ScoreAt(iprd int) float64 {
	if iprd >= p.ledger.len() {
		iprd = p.ledger.len() - 1
	}
	if iprd < 0 {
		return 0
	}
	return p.ledger.score[iprd]
}

// SimulatedPeriods reports how many periods have been written to the
// ledger.
func (p *Player) SimulatedPeriods() int { return p.ledger.len() }

// WealthAt returns ledger wealth at a simulated period.
func (p *Player) WealthAt(iprd int) float64 { return p.ledger.wealth[iprd] }

// DebtRatioAt returns non-student debt over wealth at a simulated
// period, with 999 standing in for "indebted at zero wealth".
func (p *Player) DebtRatioAt(iprd int) float64 { return p.ledger.debtRatio[iprd] }

// rawHappiness maps wealth and trailing-month leisure spending to a
// happiness value. Wealth saturates: beyond roughly $1.5M more money
// stops mattering. Spending saturates much earlier.
func rawHappiness(wealth, monthlySpending, adjRatio float64) float64 {
	return (1/(1+math.Exp(-wealth/167000+1)) + math.Tanh(monthlySpending/2122)) * adjRatio / 2
}

func sumRange(xs []float64, lo, hi int) float64 {
	var s float64
	for i := lo; i <= hi; i++ {
		s += xs[i]
	}
	return s
}
