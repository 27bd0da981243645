package instrument

import "math"

// Schedule is the per-period table an instrument produces. Row 0 is the
// instrument's start period; the row count equals NPeriods. Pay is
// always populated (except for happiness modifiers, which have no
// schedule); balance and value columns are populated only by the kinds
// that own them.
type Schedule struct {
	// Pay is the cash effect of the period: a loan or expense payment,
	// a salary check, or an asset's liquidation payout.
	Pay []float64

	// Loan columns.
	BalBegin         []float64
	BalEnd           []float64
	PaymentInterest  []float64
	PaymentPrincipal []float64
	InterestToDate   []float64

	// Asset columns.
	ValueBegin        []float64
	ValueEnd          []float64
	Appreciation      []float64
	TotalAppreciation []float64
}

// Len returns the number of periods in the schedule.
func (s Schedule) Len() int { return len(s.Pay) }

// payPeriod reports whether 0-indexed period i is a payment period for
// the given frequency. Payments land at the end of each frequency
// window, so the first payment of a biweekly-frequency instrument is on
// row 1, not row 0.
func payPeriod(i, payFreq int) bool {
	return (i+1)%payFreq == 0
}

// loanSchedule amortizes a fixed-rate loan to a level payment per
// payment period. Zero-rate loans split the principal evenly instead.
func loanSchedule(ins *Instrument) Schedule {
	def := ins.def
	var periodicRate, payment float64
	if def.AnnualRate == 0 {
		payment = ceilCents(ins.Amount / ins.NPayments)
	} else {
		periodicRate, _ = PeriodicAmount(def.AnnualRate, ins.PayFreq, QuoteAnnual)
		payment = ceilCents(ins.Amount * periodicRate / (1 - math.Pow(1+periodicRate, -ins.NPayments)))
	}

	s := Schedule{
		Pay:              make([]float64, 0, ins.NPeriods),
		BalBegin:         make([]float64, 0, ins.NPeriods),
		BalEnd:           make([]float64, 0, ins.NPeriods),
		PaymentInterest:  make([]float64, 0, ins.NPeriods),
		PaymentPrincipal: make([]float64, 0, ins.NPeriods),
		InterestToDate:   make([]float64, 0, ins.NPeriods),
	}
	balBegin, balEnd, totalInterest := ins.Amount, ins.Amount, 0.0
	for i := 0; i < ins.NPeriods; i++ {
		var pay, payInterest, payPrincipal float64
		if payPeriod(i, ins.PayFreq) {
			// Accrue interest on the prior ending balance, then split
			// the payment. The payment is capped at the accrued balance
			// so the final payment cannot overpay.
			balBegin = roundCents(balEnd * (1 + periodicRate))
			pay = math.Min(payment, balBegin)
			payInterest = roundCents(balEnd * periodicRate)
			balEnd = balBegin - pay
			payPrincipal = pay - payInterest
			totalInterest += payInterest
		}
		s.Pay = append(s.Pay, pay)
		s.BalBegin = append(s.BalBegin, balBegin)
		s.BalEnd = append(s.BalEnd, balEnd)
		s.PaymentInterest = append(s.PaymentInterest, payInterest)
		s.PaymentPrincipal = append(s.PaymentPrincipal, payPrincipal)
		s.InterestToDate = append(s.InterestToDate, totalInterest)
	}
	return s
}

// salarySchedule pays a fixed check on every payment period.
func salarySchedule(ins *Instrument) Schedule {
	check, _ := PeriodicAmount(ins.Amount, ins.PayFreq, ins.def.Quote)
	check = roundCents(check)

	s := Schedule{Pay: make([]float64, 0, ins.NPeriods)}
	for i := 0; i < ins.NPeriods; i++ {
		if payPeriod(i, ins.PayFreq) {
			s.Pay = append(s.Pay, check)
		} else {
			s.Pay = append(s.Pay, 0)
		}
	}
	return s
}

// expenseSchedule pays a recurring amount that escalates at its own
// frequency, independent of the payment frequency. Escalation kicks in
// once the row index has advanced past one full escalation interval.
func expenseSchedule(ins *Instrument) Schedule {
	def := ins.def
	var escFreq int
	var escRate float64
	if def.AnnualRate != 0 {
		escFreq, _ = TermToPeriods(def.RateFreq, def.RateFreqUnit)
		escRate, _ = PeriodicAmount(def.AnnualRate, escFreq, QuoteAnnual)
	}

	s := Schedule{Pay: make([]float64, 0, ins.NPeriods)}
	current := ins.Amount
	for i := 0; i < ins.NPeriods; i++ {
		if def.AnnualRate != 0 && i >= escFreq && i%escFreq == 1 {
			current = roundCents((1 + escRate) * current)
		}
		if payPeriod(i, ins.PayFreq) {
			s.Pay = append(s.Pay, current)
		} else {
			s.Pay = append(s.Pay, 0)
		}
	}
	return s
}

// assetSchedule compounds an asset's value, optionally clamped to a
// value cap and optionally fed by recurring contributions of the base
// amount. The final period liquidates: the period's payout is the
// ending balance and the balance drops to zero.
func assetSchedule(ins *Instrument) Schedule {
	def := ins.def
	periodicRate, _ := PeriodicAmount(def.AnnualRate, ins.PayFreq, QuoteAnnual)

	s := Schedule{
		Pay:               make([]float64, 0, ins.NPeriods),
		ValueBegin:        make([]float64, 0, ins.NPeriods),
		ValueEnd:          make([]float64, 0, ins.NPeriods),
		Appreciation:      make([]float64, 0, ins.NPeriods),
		TotalAppreciation: make([]float64, 0, ins.NPeriods),
	}
	valueBegin, valueEnd, totalAppreciation := ins.Amount, ins.Amount, 0.0
	for i := 0; i < ins.NPeriods; i++ {
		if def.RecurringEvery != 0 && i != 0 && i%def.RecurringEvery == 0 &&
			i+ins.StartPeriod <= def.RecurringEndPeriod {
			valueBegin += ins.Amount
		}

		appreciation := 0.0
		if payPeriod(i, ins.PayFreq) {
			valueEnd = roundCents(valueBegin * (1 + periodicRate))
			if def.ValueCap != 0 && valueEnd > def.ValueCap {
				valueEnd = def.ValueCap
			}
			appreciation = roundCents(valueEnd - valueBegin)
			totalAppreciation += appreciation
		}
		s.Pay = append(s.Pay, 0)
		s.ValueBegin = append(s.ValueBegin, valueBegin)
		s.ValueEnd = append(s.ValueEnd, valueEnd)
		s.Appreciation = append(s.Appreciation, appreciation)
		s.TotalAppreciation = append(s.TotalAppreciation, totalAppreciation)
		valueBegin = valueEnd
	}

	// Sale at expiry: cash out the remaining value.
	last := ins.NPeriods - 1
	s.Pay[last] = s.ValueEnd[last]
	s.ValueEnd[last] = 0
	return s
}
