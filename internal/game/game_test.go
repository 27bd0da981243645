package game

import (
	"io"
	"log/slog"
	"testing"

	"github.com/talgya/prosperville/internal/catalog"
	"github.com/talgya/prosperville/internal/instrument"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testCatalog is a two-stage design small enough to walk by hand:
// stage "early" has two scripted events sharing one turn plus a single
// random turn whose only candidate is "windfall"; stage "late" has one
// scripted event. Timeline: steps 0,1 = turn 0 over periods [0,22],
// step 2 = turn 1 over [23,47], step 3 = turn 2 over [48,95].
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := &catalog.Catalog{
		Stages: []catalog.Stage{
			{
				Name: "early", Title: "Early Years",
				InitAge: 18, EndAge: 19,
				EventSeq:        []string{"job", "splurge"},
				RandomTurnCount: 1,
				RandomEvents:    []string{"windfall"},
				RandomWeights:   []float64{1},
			},
			{
				Name: "late", Title: "Later Years",
				InitAge: 20, EndAge: 21,
				EventSeq: []string{"job2"},
			},
		},
		Events: []catalog.Event{
			{
				Name: "job", Title: "Take the job?",
				Options: []catalog.Option{
					{Name: "job_decline", Title: "Decline"},
					{Name: "job_accept", Title: "Accept",
						Instruments: []instrument.Def{{
							Kind: instrument.KindSalary, Category: "income", Title: "salary",
							Amount: 24000, Quote: instrument.QuoteAnnual,
							Term: 2, TermUnit: instrument.UnitYear, PayFreq: 1,
							StartPeriod: 0,
						}}},
				},
			},
			{
				Name: "splurge", Title: "Spend on fun?",
				Options: []catalog.Option{
					{Name: "splurge_no", Title: "Save it"},
					{Name: "splurge_yes", Title: "Spend it",
						Instruments: []instrument.Def{{
							Kind: instrument.KindExpense, Category: "consumption", Title: "fun",
							Amount: 200, Quote: instrument.QuoteOneTime,
							Term: 2, TermUnit: instrument.UnitYear, PayFreq: 2,
							StartPeriod: 0, HappinessSpending: true,
						}}},
					{Name: "splurge_ruin", Title: "Blow it all",
						Instruments: []instrument.Def{{
							Kind: instrument.KindExpense, Category: "consumption", Title: "ruin",
							Amount: 90000, Quote: instrument.QuoteOneTime,
							Term: 2, TermUnit: instrument.UnitYear, PayFreq: 1,
							StartPeriod: 0,
						}}},
				},
			},
			{
				Name: "windfall", Title: "A small windfall",
				Instruments: []instrument.Def{{
					Kind: instrument.KindSalary, Category: "gift", Title: "gift",
					Amount: 1000, Quote: instrument.QuoteOneTime,
					Term: 1, TermUnit: instrument.UnitPeriod, PayFreq: 1,
					StartPeriod: instrument.StartAtEvent,
				}},
			},
			{
				Name: "job2", Title: "Keep working?",
				Options: []catalog.Option{
					{Name: "job2_retire", Title: "Retire"},
					{Name: "job2_work", Title: "Work",
						Instruments: []instrument.Def{{
							Kind: instrument.KindSalary, Category: "income", Title: "salary",
							Amount: 30000, Quote: instrument.QuoteAnnual,
							Term: 2, TermUnit: instrument.UnitYear, PayFreq: 1,
							StartPeriod: 48,
						}}},
				},
			},
		},
	}
	if err := cat.Validate(); err != nil {
		t.Fatalf("test catalog: %v", err)
	}
	return cat
}

func newTestSession(t *testing.T, names ...string) *Session {
	t.Helper()
	s, err := New(testCatalog(t), Config{
		PlayerNames: names,
		InitCash:    5000,
		Seed:        7,
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func mustChoose(t *testing.T, s *Session, option int) {
	t.Helper()
	if err := s.SetChoice(option); err != nil {
		t.Fatalf("SetChoice(%d) at step %d: %v", option, s.Step(), err)
	}
}

func TestNewSessionSeatsAILast(t *testing.T) {
	s := newTestSession(t, "ann", "bob")

	players := s.Players()
	if len(players) != 3 {
		t.Fatalf("roster size = %d, want 3", len(players))
	}
	if !players[2].IsSystem {
		t.Error("last seat should be the AI")
	}
	if players[0].Name != "ann" || players[1].Name != "bob" {
		t.Errorf("human seats = %q, %q", players[0].Name, players[1].Name)
	}
	if s.CurrentPlayer() != players[0] {
		t.Error("first player should open the game")
	}
	if s.SurvivorCount() != 2 {
		t.Errorf("SurvivorCount = %d, want 2", s.SurvivorCount())
	}
	if s.CanStepBack() {
		t.Error("nothing to step back to at game start")
	}
}

func TestTurnRotationAndEnd(t *testing.T) {
	s := newTestSession(t, "ann", "bob")
	ann, bob := s.Players()[0], s.Players()[1]

	// Ann works through both steps of turn 0.
	mustChoose(t, s, 1) // accept job
	s.Next()
	if s.Step() != 1 || s.CurrentPlayer() != ann {
		t.Fatalf("after first Next: step=%d player=%s", s.Step(), s.CurrentPlayer().Name)
	}
	mustChoose(t, s, 1) // spend on fun
	s.Next()

	// Turn hands over to Bob at the first step.
	if s.Step() != 0 || s.CurrentPlayer() != bob {
		t.Fatalf("after Ann's turn: step=%d player=%s", s.Step(), s.CurrentPlayer().Name)
	}
	mustChoose(t, s, 1)
	s.Next()
	mustChoose(t, s, 0) // save it
	s.Next()

	// Bob was the last player, so the turn is scored and the game sits
	// on the random turn with nobody to ask.
	if s.Step() != 2 || s.Turn() != 1 {
		t.Fatalf("after turn 0: step=%d turn=%d", s.Step(), s.Turn())
	}
	if !s.CurrentPlayer().IsSystem {
		t.Error("random turns belong to the game, not a human")
	}
	if ann.Score <= 0 || bob.Score <= 0 {
		t.Errorf("turn 0 should have scored both players: ann=%v bob=%v", ann.Score, bob.Score)
	}
	if s.Timeline().Steps[2].EventName != "windfall" {
		t.Errorf("random event = %q, want windfall", s.Timeline().Steps[2].EventName)
	}

	s.Next()
	// Stage 2, scripted again: Ann opens.
	if s.Step() != 3 || s.Stage() != 1 || s.CurrentPlayer() != ann {
		t.Fatalf("after random turn: step=%d stage=%d player=%s", s.Step(), s.Stage(), s.CurrentPlayer().Name)
	}
	mustChoose(t, s, 1)
	s.Next()
	if s.CurrentPlayer() != bob || s.Step() != 3 {
		t.Fatalf("after Ann's last turn: step=%d player=%s", s.Step(), s.CurrentPlayer().Name)
	}
	mustChoose(t, s, 1)
	s.Next()

	if !s.End {
		t.Fatal("game should end after the last player's final turn")
	}
	if got := len(s.Ranked); got != 2 {
		t.Fatalf("Ranked size = %d, want 2", got)
	}
	// Ann picked the happiness spending; Bob saved. Ann should rank first.
	if s.Players()[s.Ranked[0]] != ann {
		t.Errorf("expected ann ranked first, got %s", s.Players()[s.Ranked[0]].Name)
	}

	before := s.Step()
	s.Next()
	if s.Step() != before {
		t.Error("Next after the end should not move")
	}
}

func TestBackRewindsStepsAndPlayers(t *testing.T) {
	s := newTestSession(t, "ann", "bob")
	ann, bob := s.Players()[0], s.Players()[1]

	mustChoose(t, s, 1)
	s.Next()
	if !s.CanStepBack() {
		t.Fatal("second step of a turn should allow stepping back")
	}
	s.Back()
	if s.Step() != 0 || s.CurrentPlayer() != ann {
		t.Fatalf("after Back: step=%d player=%s", s.Step(), s.CurrentPlayer().Name)
	}

	// Revising within the turn is allowed.
	mustChoose(t, s, 0)
	if idx, ok := ann.Choice("job"); !ok || idx != 0 {
		t.Errorf("revised choice = %d,%v, want 0,true", idx, ok)
	}

	s.Next()
	mustChoose(t, s, 0)
	s.Next()
	if s.CurrentPlayer() != bob {
		t.Fatal("expected bob's turn")
	}
	// Bob backs out of his untouched turn into Ann's last step.
	s.Back()
	if s.CurrentPlayer() != ann || s.Step() != 1 {
		t.Errorf("after Back across players: step=%d player=%s", s.Step(), s.CurrentPlayer().Name)
	}
}

func TestBankruptPlayerLeavesRotation(t *testing.T) {
	s := newTestSession(t, "ann", "bob")
	ann := s.Players()[0]

	// Ann blows everything on a ruinous expense.
	mustChoose(t, s, 1)
	s.Next()
	mustChoose(t, s, 2)
	s.Next()
	// Bob plays it safe.
	mustChoose(t, s, 1)
	s.Next()
	mustChoose(t, s, 0)
	s.Next()

	if !ann.Bankrupt {
		t.Fatal("ann should be bankrupt after the ruinous turn")
	}
	if s.SurvivorCount() != 1 {
		t.Fatalf("SurvivorCount = %d, want 1", s.SurvivorCount())
	}

	// Past the random turn, stage 2 should skip straight to Bob.
	s.Next()
	if s.CurrentPlayer().Name != "bob" {
		t.Errorf("stage 2 opens with %s, want bob", s.CurrentPlayer().Name)
	}
}

func TestAllBankruptEndsGame(t *testing.T) {
	s := newTestSession(t, "ann", "bob")

	for i := 0; i < 2; i++ {
		mustChoose(t, s, 0) // decline the job
		s.Next()
		mustChoose(t, s, 2) // ruinous spending
		s.Next()
	}

	if !s.End {
		t.Fatal("game should end when nobody survives")
	}
	if s.SurvivorCount() != 0 {
		t.Errorf("SurvivorCount = %d, want 0", s.SurvivorCount())
	}
}

func TestChoicesBindInstruments(t *testing.T) {
	s := newTestSession(t, "ann", "bob")
	ann, bob := s.Players()[0], s.Players()[1]

	mustChoose(t, s, 1) // salary
	s.Next()
	mustChoose(t, s, 0) // nothing
	s.Next()
	mustChoose(t, s, 0) // decline: no instruments at all
	s.Next()
	mustChoose(t, s, 0)
	s.Next()

	if got := ann.InstrumentCount(); got != 1 {
		t.Errorf("ann instruments = %d, want 1 (salary)", got)
	}
	if got := bob.InstrumentCount(); got != 0 {
		t.Errorf("bob instruments = %d, want 0", got)
	}

	// The random windfall binds to every survivor when its turn is
	// scored, anchored at the turn's first period.
	s.Next()
	if got := ann.InstrumentCount(); got != 2 {
		t.Errorf("ann instruments after windfall = %d, want 2", got)
	}
}

func TestAIAvoidsRuin(t *testing.T) {
	s := newTestSession(t, "ann")
	ai := s.Players()[1]

	mustChoose(t, s, 1)
	s.Next()
	mustChoose(t, s, 0)
	s.Next()

	// The AI brute-forces the turn it just watched. Whatever it picked,
	// it must not have chosen its way into bankruptcy.
	ai = s.Players()[1] // optimization replaces the seat
	if ai.Bankrupt {
		t.Fatal("AI picked a bankrupting combination")
	}
	if ai.Score <= 0 {
		t.Errorf("AI score = %v, want > 0", ai.Score)
	}
	if _, ok := ai.Choice("job"); !ok {
		t.Error("AI should have committed a job choice")
	}
}

// dependentCatalog wires the college/dorm dependency: skipping college
// closes the dorm option.
func dependentCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := &catalog.Catalog{
		Stages: []catalog.Stage{
			{
				Name: "campus", Title: "Campus Years",
				InitAge: 18, EndAge: 18,
				EventSeq: []string{"stg1_college", "stg1_lodging"},
			},
		},
		Events: []catalog.Event{
			{
				Name: "stg1_college", Title: "What is your plan?",
				Options: []catalog.Option{
					{Name: "stg1_no_college", Title: "Work full time",
						Instruments: []instrument.Def{{
							Kind: instrument.KindSalary, Category: "income", Title: "wages",
							Amount: 18000, Quote: instrument.QuoteAnnual,
							Term: 1, TermUnit: instrument.UnitYear, PayFreq: 1,
							StartPeriod: 0,
						}}},
					{Name: "stg1_enroll", Title: "Enroll",
						Instruments: []instrument.Def{{
							Kind: instrument.KindExpense, Category: "tuition", Title: "tuition",
							Amount: 400, Quote: instrument.QuoteAnnual,
							Term: 1, TermUnit: instrument.UnitYear, PayFreq: 2,
							StartPeriod: 0,
						}}},
				},
			},
			{
				Name: "stg1_lodging", Title: "Lodging",
				Options: []catalog.Option{
					{Name: "stg1_dorm", Title: "Dorm",
						Instruments: []instrument.Def{{
							Kind: instrument.KindExpense, Category: "housing", Title: "dorm",
							Amount: 500, Quote: instrument.QuoteAnnual,
							Term: 1, TermUnit: instrument.UnitYear, PayFreq: 2,
							StartPeriod: 0,
						}}},
					{Name: "stg1_apartment", Title: "Apartment",
						Instruments: []instrument.Def{{
							Kind: instrument.KindExpense, Category: "housing", Title: "rent",
							Amount: 6000, Quote: instrument.QuoteAnnual,
							Term: 1, TermUnit: instrument.UnitYear, PayFreq: 2,
							StartPeriod: 0,
						}}},
				},
			},
		},
	}
	if err := cat.Validate(); err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return cat
}

func playDependentGame(t *testing.T) *Session {
	t.Helper()
	s, err := New(dependentCatalog(t), Config{
		PlayerNames: []string{"ann"},
		InitCash:    1000,
		Seed:        7,
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mustChoose(t, s, 0) // no college
	s.Next()
	mustChoose(t, s, 1) // dorm is closed, take the apartment
	s.Next()
	return s
}

func TestAIRespectsOptionDependencies(t *testing.T) {
	s := playDependentGame(t)
	ai := s.Players()[1]

	college, ok := ai.Choice("stg1_college")
	if !ok {
		t.Fatal("AI made no college choice")
	}
	lodging, ok := ai.Choice("stg1_lodging")
	if !ok {
		t.Fatal("AI made no lodging choice")
	}
	if college == 0 && lodging == 0 {
		t.Error("AI picked the dorm without enrolling in college")
	}

	// Same catalog, seed and human play: the brute-force search must
	// land on the same combination.
	again := playDependentGame(t)
	ai2 := again.Players()[1]
	c2, _ := ai2.Choice("stg1_college")
	l2, _ := ai2.Choice("stg1_lodging")
	if c2 != college || l2 != lodging {
		t.Errorf("optimizer not deterministic: (%d,%d) vs (%d,%d)", college, lodging, c2, l2)
	}
}

func TestChoiceTable(t *testing.T) {
	s := newTestSession(t, "ann")
	ann := s.Players()[0]

	rows := s.ChoiceTable(ann)
	if len(rows) != len(s.Timeline().Steps) {
		t.Fatalf("rows = %d, want %d", len(rows), len(s.Timeline().Steps))
	}
	if rows[0].Stage != "Early Years" || rows[0].Turn != 1 || rows[0].Event != "Take the job?" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[0].Choice != "" {
		t.Errorf("unmade choice = %q, want empty", rows[0].Choice)
	}
	// Future turns stay blank even for optionless steps.
	if rows[2].Choice != "" {
		t.Errorf("future random step choice = %q, want empty", rows[2].Choice)
	}

	mustChoose(t, s, 1)
	rows = s.ChoiceTable(ann)
	if rows[0].Choice != "Accept" {
		t.Errorf("choice = %q, want Accept", rows[0].Choice)
	}

	// Advance into the random turn: its step shows the drawn event and
	// N/A for the choice.
	s.Next()
	mustChoose(t, s, 0)
	s.Next()
	rows = s.ChoiceTable(ann)
	if rows[2].Event != "A small windfall" || rows[2].Choice != "N/A" {
		t.Errorf("random row = %+v", rows[2])
	}
	if !rows[2].Random {
		t.Error("random row should be flagged")
	}
}

func TestSummaries(t *testing.T) {
	s := newTestSession(t, "ann")

	mustChoose(t, s, 1)
	s.Next()
	mustChoose(t, s, 1)
	s.Next()

	sums := s.Summaries()
	if len(sums) != 2 {
		t.Fatalf("summaries = %d, want 2", len(sums))
	}
	if sums[0].Name != "ann" || sums[0].IsAI {
		t.Errorf("summary 0 = %+v", sums[0])
	}
	if !sums[1].IsAI {
		t.Error("last summary should be the AI")
	}
	if sums[0].Score <= 0 || sums[0].Income <= 0 {
		t.Errorf("ann summary not populated: %+v", sums[0])
	}
}

// TestFullGameDefaultCatalog plays the shipped game design end to end
// with a frugal no-car strategy. Random turns are pinned to the lottery
// event so the walk is deterministic.
func TestFullGameDefaultCatalog(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	for i := range cat.Stages {
		if cat.Stages[i].RandomTurnCount > 0 {
			cat.Stages[i].RandomEvents = []string{"rnd_lotto"}
			cat.Stages[i].RandomWeights = []float64{1}
		}
	}
	if err := cat.Validate(); err != nil {
		t.Fatalf("revalidate: %v", err)
	}

	s, err := New(cat, Config{
		PlayerNames: []string{"solo"},
		InitCash:    0,
		Seed:        11,
		Logger:      quietLogger(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	solo := s.Players()[0]

	strategy := map[string]string{
		"stg1_college":       "stg1_college_public_in_state",
		"stg1_car":           "stg1_car_none",
		"stg1_lodging":       "stg1_lodging_dorm",
		"stg1_part_time_job": "stg1_part_time_job_no",
		"stg2_firstjob":      "stg2_firstjob_opt1",
		"stg2_firsthouse":    "stg2_firsthouse_rent",
		"stg2_car":           "stg2_car_2nd_hand",
		"stg2_saving_program": "stg2_saving_opt1",
		"stg3_job_offers":    "stg3_job_offers_opt2",
		"stg3_car":           "stg3_car_2nd_hand",
		"stg3_saving_program": "stg3_saving_opt1",
		"stg4_job_offers":    "stg4_job_offers_opt1",
		"stg4_car":           "stg4_car_2nd_hand",
		"stg4_saving_program": "stg4_saving_opt1",
	}

	checkedStage1 := false
	for guard := 0; !s.End; guard++ {
		if guard > 200 {
			t.Fatal("game did not end")
		}
		if evt := s.CurrentEvent(); evt != nil && evt.HasOptions() && !s.CurrentPlayer().IsSystem {
			want, ok := strategy[evt.Name]
			if !ok {
				t.Fatalf("no strategy for event %q", evt.Name)
			}
			idx := -1
			for i, opt := range evt.Options {
				if opt.Name == want {
					idx = i
					break
				}
			}
			if idx < 0 {
				t.Fatalf("option %q not found on %q", want, evt.Name)
			}
			if err := s.SetChoice(idx); err != nil {
				t.Fatalf("SetChoice %s=%s: %v", evt.Name, want, err)
			}
		}
		s.Next()

		// End of the first stage: no car means no car debt, and the
		// student loans have not started yet.
		if !checkedStage1 && s.Stage() == 1 {
			checkedStage1 = true
			if solo.DebtCar != 0 {
				t.Errorf("car debt after stage 1 = %v, want 0", solo.DebtCar)
			}
			if solo.Bankrupt {
				t.Fatal("bankrupt during college")
			}
		}
	}

	if solo.Bankrupt {
		t.Fatalf("the frugal strategy should survive, bankrupt at period %d", solo.BankruptPeriod)
	}
	if solo.Score <= 0 {
		t.Errorf("final score = %v, want > 0", solo.Score)
	}
	if solo.DebtStudent != 0 {
		// 10 year loans starting at period 96 are paid off well before
		// the horizon.
		t.Errorf("student debt at horizon = %v, want 0", solo.DebtStudent)
	}
	if solo.Wealth <= 0 {
		t.Errorf("final wealth = %v, want > 0", solo.Wealth)
	}

	rows := solo.ScoreRows(cat.Stages[0].InitAge, solo.SimulatedPeriods())
	if len(rows) == 0 {
		t.Fatal("no score rows after a full game")
	}
}
