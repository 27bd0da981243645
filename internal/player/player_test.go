package player

import (
	"math"
	"testing"

	"github.com/talgya/prosperville/internal/catalog"
	"github.com/talgya/prosperville/internal/instrument"
)

func defaultCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func newPlayer(t *testing.T, initCash float64) *Player {
	t.Helper()
	p, err := New("test", defaultCatalog(t), false, initCash)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func mustIns(t *testing.T, def instrument.Def) *instrument.Instrument {
	t.Helper()
	ins, err := instrument.New(def)
	if err != nil {
		t.Fatal(err)
	}
	return ins
}

func salaryDef(annual float64, termYears, payFreq int) instrument.Def {
	return instrument.Def{
		Kind: instrument.KindSalary, Category: "income", Title: "salary",
		Amount: annual, Quote: instrument.QuoteAnnual,
		Term: termYears, TermUnit: instrument.UnitYear, PayFreq: payFreq,
	}
}

func expenseDef(perPeriod float64, termYears int, leisure bool) instrument.Def {
	return instrument.Def{
		Kind: instrument.KindExpense, Category: "spending", Title: "expense",
		Amount: perPeriod, Quote: instrument.QuoteOneTime,
		Term: termYears, TermUnit: instrument.UnitYear, PayFreq: 1,
		HappinessSpending: leisure,
		RateFreq:          1, RateFreqUnit: instrument.UnitYear,
	}
}

func almostEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestNewRejectsNegativeCash(t *testing.T) {
	if _, err := New("p", defaultCatalog(t), false, -1); err == nil {
		t.Fatal("negative initial cash should be rejected")
	}
}

func TestStartingHappinessIsAlwaysHundred(t *testing.T) {
	// The normalization ratio makes every player open at 100 no matter
	// the cash they start with.
	for _, cash := range []float64{0, 1000, 250000} {
		p := newPlayer(t, cash)
		p.Simulate(0, 0)
		if !almostEqual(p.Happiness, 100, 1e-9) {
			t.Errorf("initCash %v: opening happiness %v, want 100", cash, p.Happiness)
		}
		if !almostEqual(p.Wealth, cash, 1e-9) {
			t.Errorf("initCash %v: opening wealth %v", cash, p.Wealth)
		}
	}
}

func TestRawHappinessStaysInUnitInterval(t *testing.T) {
	// Before normalization the curve lands in [0, 1) for any finite
	// wealth and non-negative spending, and is strictly positive at
	// non-negative wealth, so the adjust ratio in New can never divide
	// by zero or flip the sign.
	wealths := []float64{-1e9, -250000, -1, 0, 1, 167000, 1e9}
	spendings := []float64{0, 1, 2122, 1e7}
	for _, w := range wealths {
		for _, sp := range spendings {
			h := rawHappiness(w, sp, 1)
			if !(h >= 0 && h < 1) {
				t.Errorf("rawHappiness(%v, %v, 1) = %v, want in [0, 1)", w, sp, h)
			}
			if w >= 0 && h <= 0 {
				t.Errorf("rawHappiness(%v, %v, 1) = %v, want > 0", w, sp, h)
			}
		}
	}
}

func TestSalaryAccrualAndScore(t *testing.T) {
	p := newPlayer(t, 0)
	p.AddInstrument(mustIns(t, salaryDef(24000, 1, 2)))
	p.Simulate(0, 5)

	// $2,000 lands every second period.
	wantWealth := []float64{0, 2000, 2000, 4000, 4000, 6000}
	for i, w := range wantWealth {
		if !almostEqual(p.WealthAt(i), w, 1e-9) {
			t.Errorf("wealth[%d] = %v, want %v", i, p.WealthAt(i), w)
		}
	}
	if !almostEqual(p.Happiness, 102.648257, 1e-5) {
		t.Errorf("happiness = %v, want ~102.648257", p.Happiness)
	}
	if !almostEqual(p.Score, 101.320922, 1e-5) {
		t.Errorf("score = %v, want ~101.320922", p.Score)
	}
	// Average monthly net income over 6 periods of $6,000 total.
	if !almostEqual(p.NetIncome, 2000, 1e-9) {
		t.Errorf("monthly net income = %v, want 2000", p.NetIncome)
	}
}

func TestLeisureSpendingLiftsHappiness(t *testing.T) {
	// Income exactly covers a leisure expense: wealth pins at zero and
	// all happiness comes from the spending term.
	p := newPlayer(t, 0)
	p.AddInstrument(mustIns(t, instrument.Def{
		Kind: instrument.KindSalary, Category: "income", Title: "stipend",
		Amount: 200, Quote: instrument.QuoteOneTime,
		Term: 1, TermUnit: instrument.UnitYear, PayFreq: 1,
	}))
	p.AddInstrument(mustIns(t, expenseDef(200, 1, true)))
	p.Simulate(0, 0)
	if !almostEqual(p.Happiness, 134.941666, 1e-5) {
		t.Errorf("happiness = %v, want ~134.941666", p.Happiness)
	}
	if !almostEqual(p.Wealth, 0, 1e-9) {
		t.Errorf("wealth = %v, want 0", p.Wealth)
	}
}

func TestModifierScalesHappiness(t *testing.T) {
	p := newPlayer(t, 0)
	p.AddInstrument(mustIns(t, instrument.Def{
		Kind: instrument.KindModifier, Category: "happiness", Title: "no car",
		Amount: 0.95, Term: 1, TermUnit: instrument.UnitYear, PayFreq: 1,
	}))
	p.Simulate(0, 0)
	if !almostEqual(p.Happiness, 95, 1e-9) {
		t.Errorf("happiness = %v, want 95", p.Happiness)
	}
}

func TestBankruptcyStopsSimulation(t *testing.T) {
	p := newPlayer(t, 0)
	p.AddInstrument(mustIns(t, expenseDef(1000, 5, false)))
	p.Simulate(0, 10)

	if !p.Bankrupt {
		t.Fatal("player with pure outflow should go bankrupt")
	}
	if p.BankruptPeriod != 0 {
		t.Errorf("bankrupt at period %d, want 0", p.BankruptPeriod)
	}
	if p.SimulatedPeriods() != 1 {
		t.Errorf("simulated %d periods after insolvency, want 1", p.SimulatedPeriods())
	}

	// Later calls are no-ops.
	p.Simulate(1, 20)
	if p.SimulatedPeriods() != 1 {
		t.Error("bankrupt player kept simulating")
	}
}

func TestSalaryRaisesBankruptcyThreshold(t *testing.T) {
	// Threshold is twice the nominal annual salary: wealth may sink to
	// -$48,000 on a $24,000 salary before insolvency.
	p := newPlayer(t, 0)
	p.AddInstrument(mustIns(t, salaryDef(24000, 5, 1)))
	p.AddInstrument(mustIns(t, expenseDef(30000, 5, false)))
	p.Simulate(0, 10)

	if !p.Bankrupt {
		t.Fatal("expected eventual bankruptcy")
	}
	// net -29000/period: -29000 survives, -58000 does not.
	if p.BankruptPeriod != 1 {
		t.Errorf("bankrupt at period %d, want 1", p.BankruptPeriod)
	}
}

func TestStudentDebtDoesNotCountTowardInsolvency(t *testing.T) {
	p := newPlayer(t, 0)
	p.AddInstrument(mustIns(t, salaryDef(50000, 10, 1)))
	p.AddInstrument(mustIns(t, instrument.Def{
		Kind: instrument.KindLoan, Category: "student", Title: "student loan",
		Amount: 25000, Quote: instrument.QuoteOneTime,
		Term: 10, TermUnit: instrument.UnitYear,
		AnnualRate: 0.06, PayFreq: 2,
	}))
	p.Simulate(0, 95)

	if p.Bankrupt {
		t.Fatal("student debt alone should not bankrupt a salaried player")
	}
	if p.DebtStudent <= 0 {
		t.Errorf("student debt = %v, want > 0", p.DebtStudent)
	}
	if p.DebtCar != 0 || p.DebtMortgage != 0 || p.DebtOther != 0 {
		t.Error("debt landed in the wrong category")
	}
}

func TestResimulationOverwritesLedger(t *testing.T) {
	// The optimizer simulates the same span repeatedly on cloned
	// players; re-running a span must not double-count.
	p := newPlayer(t, 0)
	p.AddInstrument(mustIns(t, salaryDef(24000, 2, 2)))
	p.Simulate(0, 5)
	w5, s5 := p.WealthAt(5), p.Score

	p.Simulate(0, 5)
	if p.WealthAt(5) != w5 || p.Score != s5 {
		t.Errorf("re-simulating changed state: wealth %v -> %v, score %v -> %v",
			w5, p.WealthAt(5), s5, p.Score)
	}
	if p.SimulatedPeriods() != 6 {
		t.Errorf("ledger grew to %d rows, want 6", p.SimulatedPeriods())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p := newPlayer(t, 0)
	p.AddInstrument(mustIns(t, salaryDef(24000, 2, 2)))
	p.Simulate(0, 3)

	cp := p.Clone()
	cp.AddInstrument(mustIns(t, expenseDef(500, 1, false)))
	cp.Simulate(4, 9)
	if err := cp.SetChoice(collegeEvent, 0); err != nil {
		t.Fatal(err)
	}

	if p.SimulatedPeriods() != 4 {
		t.Errorf("clone simulation leaked: original has %d rows", p.SimulatedPeriods())
	}
	if p.InstrumentCount() != 1 {
		t.Errorf("clone instrument leaked: original has %d", p.InstrumentCount())
	}
	if _, ok := p.Choice(collegeEvent); ok {
		t.Error("clone choice leaked into original")
	}
}

func TestDormRequiresCollege(t *testing.T) {
	p := newPlayer(t, 0)

	// Option 0 of the college event is the no-college job.
	if err := p.SetChoice("stg1_college", 0); err != nil {
		t.Fatal(err)
	}
	if err := p.SetChoice("stg1_lodging", 0); err == nil {
		t.Fatal("dorm should be unavailable without college")
	}
	if err := p.SetChoice("stg1_lodging", 1); err != nil {
		t.Fatalf("off-campus lodging should stay available: %v", err)
	}

	// Enrolling re-opens the dorm.
	if err := p.SetChoice("stg1_college", 1); err != nil {
		t.Fatal(err)
	}
	if err := p.SetChoice("stg1_lodging", 0); err != nil {
		t.Fatalf("dorm should be available after enrolling: %v", err)
	}

	av := p.OptionAvailability("stg1_lodging")
	for i, ok := range av {
		if !ok {
			t.Errorf("lodging option %d still unavailable after enrolling", i)
		}
	}
}

func TestSetChoiceValidatesArguments(t *testing.T) {
	p := newPlayer(t, 0)
	if err := p.SetChoice("no_such_event", 0); err == nil {
		t.Error("unknown event accepted")
	}
	if err := p.SetChoice("stg1_college", 99); err == nil {
		t.Error("out-of-range option accepted")
	}
}

func TestScoreRows(t *testing.T) {
	p := newPlayer(t, 0)
	p.AddInstrument(mustIns(t, salaryDef(24000, 3, 2)))
	p.Simulate(0, 47)

	rows := p.ScoreRows(18, 25)
	if len(rows) != 26 {
		t.Fatalf("got %d rows, want 26", len(rows))
	}
	if rows[0].Age != 18 || rows[0].Month != 0.5 {
		t.Errorf("row 0 = age %d month %v, want 18 / 0.5", rows[0].Age, rows[0].Month)
	}
	if rows[23].Age != 18 || rows[23].Month != 12 {
		t.Errorf("row 23 = age %d month %v, want 18 / 12", rows[23].Age, rows[23].Month)
	}
	if rows[24].Age != 19 || rows[24].Month != 0.5 {
		t.Errorf("row 24 = age %d month %v, want 19 / 0.5", rows[24].Age, rows[24].Month)
	}
	if rows[1].Wealth != 2000 {
		t.Errorf("row 1 wealth = %d, want 2000", rows[1].Wealth)
	}
	if rows[0].Score < 99 || rows[0].Score > 100 {
		t.Errorf("row 0 score = %d, want ~100", rows[0].Score)
	}

	// Asking past the ledger clips to what was simulated.
	if got := len(p.ScoreRows(18, 10_000)); got != 48 {
		t.Errorf("clipped rows = %d, want 48", got)
	}
}

func TestScoreRowsStopAtBankruptcy(t *testing.T) {
	p := newPlayer(t, 0)
	p.AddInstrument(mustIns(t, salaryDef(24000, 5, 1)))
	p.AddInstrument(mustIns(t, expenseDef(30000, 5, false)))
	p.Simulate(0, 10)

	rows := p.ScoreRows(18, 10)
	if len(rows) != p.BankruptPeriod+1 {
		t.Errorf("got %d rows, want %d", len(rows), p.BankruptPeriod+1)
	}
}

func TestScoreAtClampsToLedger(t *testing.T) {
	p := newPlayer(t, 0)
	if p.ScoreAt(5) != 0 {
		t.Error("empty ledger should score 0")
	}
	p.AddInstrument(mustIns(t, salaryDef(24000, 1, 2)))
	p.Simulate(0, 5)
	if p.ScoreAt(100) != p.ScoreAt(5) {
		t.Error("out-of-range period should clamp to the last simulated one")
	}
}
