// Package instrument models the financial effects a life choice attaches
// to a player: loans, salaries, recurring expenses, appreciating or
// depreciating assets, and direct happiness modifiers. Each instrument
// owns a per-period schedule of cash and balance effects.
package instrument

import (
	"fmt"
	"math"
)

// PeriodsPerMonth is the simulation clock resolution. A period is half a
// month; every schedule and age calculation is derived from this.
const (
	PeriodsPerMonth = 2
	PeriodsPerYear  = 12 * PeriodsPerMonth
)

// StartAtEvent is the startPeriod sentinel meaning "bind to the period
// the owning event actually occurs".
const StartAtEvent = -1

// Kind identifies the instrument variant. The set is closed: every
// switch over Kind in this package is exhaustive.
type Kind string

const (
	KindLoan     Kind = "loan"
	KindSalary   Kind = "salary"
	KindExpense  Kind = "expense"
	KindAsset    Kind = "asset"
	KindModifier Kind = "happiness"
)

// TermUnit is the unit a term is quoted in.
type TermUnit string

const (
	UnitYear   TermUnit = "yr"
	UnitMonth  TermUnit = "mth"
	UnitPeriod TermUnit = "prd"
)

// QuoteTerm says how an amount is quoted.
type QuoteTerm string

const (
	QuoteAnnual  QuoteTerm = "annual"
	QuoteOneTime QuoteTerm = "one-time"
)

// Def is the declarative parameter record an event or option carries for
// one instrument. Defs live in the catalog and are read-only after
// startup; instruments are built from them per player.
type Def struct {
	Kind     Kind      `yaml:"kind"`
	Category string    `yaml:"category"`
	Title    string    `yaml:"title"`
	Amount   float64   `yaml:"amount"`
	Quote    QuoteTerm `yaml:"quote,omitempty"`
	Term     int       `yaml:"term"`
	TermUnit TermUnit  `yaml:"term_unit"`
	PayFreq  int       `yaml:"pay_freq"`
	// StartPeriod is absolute, or StartAtEvent to bind at play time.
	StartPeriod       int  `yaml:"start_period"`
	HappinessSpending bool `yaml:"happiness_spending,omitempty"`

	// Loan, asset and expense escalation rate.
	AnnualRate float64 `yaml:"annual_rate,omitempty"`

	// Expense escalation frequency.
	RateFreq     int      `yaml:"rate_freq,omitempty"`
	RateFreqUnit TermUnit `yaml:"rate_freq_unit,omitempty"`

	// Asset extras. ValueCap of 0 means uncapped. RecurringEvery of 0
	// disables recurring contributions; RecurringEndPeriod is absolute.
	ValueCap           float64 `yaml:"value_cap,omitempty"`
	RecurringEvery     int     `yaml:"recurring_every,omitempty"`
	RecurringEndPeriod int     `yaml:"recurring_end_period,omitempty"`
}

// Instrument is a constructed instance attached to exactly one player.
// It is immutable after construction; rebinding the start period or
// overriding the amount produces a fresh copy with a recomputed schedule.
type Instrument struct {
	Kind              Kind
	Category          string
	Title             string
	Amount            float64
	StartPeriod       int
	PayFreq           int
	NPeriods          int
	NPayments         float64
	HappinessSpending bool

	// AdjustRatio is the multiplicative happiness adjustment for
	// KindModifier. 1 for every other kind.
	AdjustRatio float64

	Schedule Schedule

	def Def
}

// TermToPeriods converts a term quoted in years, months or raw periods
// into a period count.
func TermToPeriods(term int, unit TermUnit) (int, error) {
	switch unit {
	case UnitYear:
		return term * PeriodsPerYear, nil
	case UnitMonth:
		return term * PeriodsPerMonth, nil
	case UnitPeriod:
		return term, nil
	default:
		return 0, fmt.Errorf("unrecognized term unit %q", unit)
	}
}

// PeriodicAmount converts a quoted amount to the value paid in a single
// payment period: annual amounts are spread over the year's periods,
// one-time amounts pay as quoted.
func PeriodicAmount(amount float64, payFreq int, quote QuoteTerm) (float64, error) {
	switch quote {
	case QuoteAnnual:
		return amount * float64(payFreq) / PeriodsPerYear, nil
	case QuoteOneTime:
		return amount, nil
	default:
		return 0, fmt.Errorf("unrecognized amount quote term %q", quote)
	}
}

// New validates a definition and builds an instrument with its schedule
// computed. A validation failure is a configuration error; the catalog
// treats it as fatal at startup.
func New(def Def) (*Instrument, error) {
	if def.Quote == "" {
		def.Quote = QuoteOneTime
	}
	switch def.Kind {
	case KindLoan, KindSalary, KindExpense, KindAsset, KindModifier:
	default:
		return nil, fmt.Errorf("instrument %q: unknown kind %q", def.Title, def.Kind)
	}
	if def.PayFreq < 1 {
		return nil, fmt.Errorf("instrument %q: pay frequency must be >= 1, got %d", def.Title, def.PayFreq)
	}
	nPeriods, err := TermToPeriods(def.Term, def.TermUnit)
	if err != nil {
		return nil, fmt.Errorf("instrument %q: %w", def.Title, err)
	}
	if nPeriods < 1 {
		return nil, fmt.Errorf("instrument %q: term resolves to %d periods, must be >= 1", def.Title, nPeriods)
	}
	if _, err := PeriodicAmount(def.Amount, def.PayFreq, def.Quote); err != nil {
		return nil, fmt.Errorf("instrument %q: %w", def.Title, err)
	}
	if def.Kind == KindExpense && def.AnnualRate != 0 {
		if _, err := TermToPeriods(def.RateFreq, def.RateFreqUnit); err != nil {
			return nil, fmt.Errorf("instrument %q escalation: %w", def.Title, err)
		}
	}

	ins := &Instrument{
		Kind:              def.Kind,
		Category:          def.Category,
		Title:             def.Title,
		Amount:            def.Amount,
		StartPeriod:       def.StartPeriod,
		PayFreq:           def.PayFreq,
		NPeriods:          nPeriods,
		NPayments:         float64(nPeriods) / float64(def.PayFreq),
		HappinessSpending: def.HappinessSpending,
		AdjustRatio:       1,
		def:               def,
	}
	if def.Kind == KindModifier {
		ins.AdjustRatio = def.Amount
	}
	ins.computeSchedule()
	return ins, nil
}

// WithStartPeriod returns a copy bound to an absolute start period, with
// the schedule recomputed (asset recurring windows are absolute).
func (ins *Instrument) WithStartPeriod(period int) *Instrument {
	cp := *ins
	cp.StartPeriod = period
	cp.def.StartPeriod = period
	cp.computeSchedule()
	return &cp
}

// WithAmount returns a copy with the amount overridden and the schedule
// recomputed. Used for parameter overrides such as the education salary
// boost.
func (ins *Instrument) WithAmount(amount float64) *Instrument {
	cp := *ins
	cp.Amount = amount
	cp.def.Amount = amount
	if cp.Kind == KindModifier {
		cp.AdjustRatio = amount
	}
	cp.computeSchedule()
	return &cp
}

// ActiveAt reports whether the absolute period falls inside this
// instrument's schedule window, and the schedule row index if so.
func (ins *Instrument) ActiveAt(period int) (int, bool) {
	local := period - ins.StartPeriod
	if local < 0 || local >= ins.NPeriods {
		return 0, false
	}
	return local, true
}

func (ins *Instrument) computeSchedule() {
	switch ins.Kind {
	case KindLoan:
		ins.Schedule = loanSchedule(ins)
	case KindSalary:
		ins.Schedule = salarySchedule(ins)
	case KindExpense:
		ins.Schedule = expenseSchedule(ins)
	case KindAsset:
		ins.Schedule = assetSchedule(ins)
	case KindModifier:
		ins.Schedule = Schedule{}
	}
}

// roundCents rounds a monetary value to the nearest cent. Applied at
// every computation step, not only at the end, so compounding matches
// cent-resolved balances.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// ceilCents rounds up to the cent. Loan payments use it so the final
// payment never leaves a residual balance past the term.
func ceilCents(v float64) float64 {
	return math.Ceil(v*100) / 100
}
