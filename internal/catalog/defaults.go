package catalog

import "github.com/talgya/prosperville/internal/instrument"

// Default builds and validates the built-in game: five life stages from
// age 18 to 87, played at two periods per month. Stage boundaries pin
// the absolute start periods used below: stage 1 starts at period 0,
// stage 2 at 96, stage 3 at 456, stage 4 at 936, retirement at 1176.
func Default() (*Catalog, error) {
	c := &Catalog{
		Stages: defaultStages(),
		Events: defaultEvents(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func defaultStages() []Stage {
	return []Stage{
		{
			Name:            "post_hi_schl",
			Title:           "Post High School",
			Desc:            "This is the first stage of the game. This stage goes from age 18 to 21.",
			InitAge:         18,
			EndAge:          21,
			EventSeq:        []string{"stg1_college", "stg1_car", "stg1_lodging", "stg1_part_time_job"},
			RandomTurnCount: 1,
			RandomEvents:    []string{"rnd_lotto", "rnd_car_accident_partial", "rnd_road_trip_cancun", "rnd_road_trip_natl_park", "rnd_grandma_visit", "rnd_broken_laptop"},
			RandomWeights:   []float64{0.01, 0.05, 0.1, 0.25, 0.25, 0.05},
		},
		{
			Name:            "young_adlt",
			Title:           "Young Adult",
			Desc:            "This is the second stage of the game. This stage lasts from age 22 to 36. Your monthly spending for basic living is $700.",
			InitAge:         22,
			EndAge:          36,
			EventSeq:        []string{"stg2_firstjob", "stg2_firsthouse", "stg2_car", "stg2_saving_program"},
			RandomTurnCount: 1,
			RandomEvents:    []string{"rnd_lotto", "rnd_car_accident_partial", "rnd_salary_increase", "rnd_extended_fam_trip", "rnd_destination_wedding", "rnd_illness_major"},
			RandomWeights:   []float64{0.01, 10, 50, 70, 20, 5},
		},
		{
			Name:            "peak_career",
			Title:           "Peak Career",
			Desc:            "This is the third stage of the game. This stage lasts from age 37 to 56. Your monthly spending for basic living is $1,400. People in this stage typically reach their peak earning potential.",
			InitAge:         37,
			EndAge:          56,
			EventSeq:        []string{"stg3_job_offers", "stg3_car", "stg3_saving_program"},
			RandomTurnCount: 2,
			RandomEvents:    []string{"rnd_lotto", "rnd_car_accident_partial", "rnd_salary_increase", "rnd_extended_fam_trip", "rnd_destination_wedding", "rnd_illness_major"},
			RandomWeights:   []float64{1, 5, 20, 50, 10, 10},
		},
		{
			Name:            "near_retirement",
			Title:           "Near Retirement",
			Desc:            "This is the 4th stage of the game. This stage lasts from age 57 to 66. Your monthly spending for basic living is $1,400.",
			InitAge:         57,
			EndAge:          66,
			EventSeq:        []string{"stg4_job_offers", "stg4_car", "stg4_saving_program"},
			RandomTurnCount: 1,
			RandomEvents:    []string{"rnd_lotto", "rnd_car_accident_partial", "rnd_salary_increase", "rnd_extended_fam_trip", "rnd_destination_wedding", "rnd_illness_major"},
			RandomWeights:   []float64{1, 20, 60, 50, 30, 15},
		},
		{
			Name:    "retired",
			Title:   "Retired",
			Desc:    "This is the last stage of the game. This stage lasts from age 67 to 87. There is no playable turn in this stage.",
			InitAge: 67,
			EndAge:  87,
		},
	}
}

// carLoan is the 5-year 6.5% fixed-rate financing every car purchase
// takes out.
func carLoan(amount float64, start int) instrument.Def {
	return instrument.Def{
		Kind: instrument.KindLoan, Category: "car", Title: "car loan",
		Amount: amount, Quote: instrument.QuoteOneTime,
		Term: 5, TermUnit: instrument.UnitYear,
		AnnualRate: 0.065, PayFreq: 2, StartPeriod: start,
		HappinessSpending: true,
	}
}

// carValue is the depreciating resale value held until the car is
// replaced or the game ends.
func carValue(value, rate float64, start, termYears int) instrument.Def {
	return instrument.Def{
		Kind: instrument.KindAsset, Category: "car", Title: "second hand car",
		Amount: value, AnnualRate: rate, PayFreq: 1, StartPeriod: start,
		Term: termYears, TermUnit: instrument.UnitYear,
	}
}

// carPurchaseOptions builds the four-tier car replacement menu reused by
// the stage 2, 3 and 4 car events. luxRate is the luxury model's
// depreciation, the one parameter the stages disagree on.
func carPurchaseOptions(prefix string, start, termYears int, luxRate float64) []Option {
	return []Option{
		{
			Name: prefix + "_2nd_hand", Title: "Second Hand Car",
			Desc: "This second hand car costs $10,000, depreciates by 20% annually. The value immediately drops to $5,000 once you bought it. Monthly loan payment $195.67, total interest $1,739.63.",
			Instruments: []instrument.Def{
				carLoan(10000, start),
				carValue(5000, -0.20, start, termYears),
			},
		},
		{
			Name: prefix + "_mid", Title: "New Sedan (Mid-tier)",
			Desc: "This car costs $20,000, depreciates by 15% annually. The value immediately drops to $16,000 once you bought it. Monthly loan payment $331.46, total interest $3,864.96.",
			Instruments: []instrument.Def{
				carLoan(20000, start),
				carValue(16000, -0.15, start, termYears),
			},
		},
		{
			Name: prefix + "_exp", Title: "New SUV",
			Desc: "This car costs $40,000, depreciates by 15% annually. The value immediately drops to $32,000 once you bought it. Monthly loan payment $662.92, total interest $7,729.92.",
			Instruments: []instrument.Def{
				carLoan(40000, start),
				carValue(32000, -0.15, start, termYears),
			},
		},
		{
			Name: prefix + "_lux", Title: "New Luxury Car",
			Desc: "This car costs $100,000. The value immediately drops to $70,000 once you bought it. Monthly loan payment $1,956.62, total interest $17,396.88.",
			Instruments: []instrument.Def{
				carLoan(100000, start),
				carValue(70000, luxRate, start, termYears),
			},
		},
	}
}

// investTransfer is the expense leg of a saving program: cash leaving
// the wallet into the investment account.
func investTransfer(monthly float64, termYears, start int) instrument.Def {
	return instrument.Def{
		Kind: instrument.KindExpense, Category: "transfer", Title: "invest transfer",
		Amount: monthly, Quote: instrument.QuoteOneTime,
		Term: termYears, TermUnit: instrument.UnitYear,
		PayFreq: 2, StartPeriod: start,
		RateFreq: 1, RateFreqUnit: instrument.UnitYear,
	}
}

// investAsset is the asset leg: the account itself, compounding at 6%
// with a semi-monthly contribution until recurringEnd.
func investAsset(monthly float64, termYears, start, recurringEnd int) instrument.Def {
	return instrument.Def{
		Kind: instrument.KindAsset, Category: "investment", Title: "investment account",
		Amount: monthly, AnnualRate: 0.06, PayFreq: 1, StartPeriod: start,
		Term: termYears, TermUnit: instrument.UnitYear,
		RecurringEvery: 2, RecurringEndPeriod: recurringEnd,
	}
}

// funSpending is discretionary consumption that counts toward the
// happiness spending window.
func funSpending(monthly float64, termYears, start int) instrument.Def {
	return instrument.Def{
		Kind: instrument.KindExpense, Category: "consumption", Title: "discretionary spending",
		Amount: monthly, Quote: instrument.QuoteOneTime,
		Term: termYears, TermUnit: instrument.UnitYear,
		PayFreq: 2, StartPeriod: start,
		HappinessSpending: true,
		RateFreq:          1, RateFreqUnit: instrument.UnitYear,
	}
}

func defaultEvents() []Event {
	events := []Event{
		// stage 1
		{
			Name: "stg1_car", Title: "Do you want to buy a car?",
			Options: []Option{
				{
					Name: "stg1_car_none", Title: "No car",
					Desc: "Life without a car can be a little difficult, but the lack of financial burden might be worth it. Reduces your raw happiness score by 5% until the end of this stage.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindModifier, Category: "car", Title: "no car happiness reduction",
							Amount: 0.95, Quote: instrument.QuoteOneTime,
							Term: 4, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 0},
					},
				},
				{
					Name: "stg1_car_cheap", Title: "Second Hand Car",
					Desc: "A second hand car costs $5,000. The value immediately drops to $2,500 once you bought it. Monthly loan payment $97.84, total interest $869.73.",
					Instruments: []instrument.Def{
						carLoan(5000, 0),
						carValue(2500, -0.15, 0, 5),
					},
				},
				{
					Name: "stg1_car_mid", Title: "New Sedan (Mid-tier)",
					Desc: "This car costs $20,000. The value immediately drops to $16,000 once you bought it. Monthly loan payment $331.46, total interest $3,864.96.",
					Instruments: []instrument.Def{
						carLoan(20000, 0),
						carValue(16000, -0.15, 0, 5),
					},
				},
				{
					Name: "stg1_car_exp", Title: "New SUV",
					Desc: "This car costs $40,000. The value immediately drops to $32,000 once you bought it. Monthly loan payment $662.92, total interest $7,729.92.",
					Instruments: []instrument.Def{
						carLoan(40000, 0),
						carValue(32000, -0.15, 0, 5),
					},
				},
			},
		},
		{
			Name: "stg1_college", Title: "What is your plan after high school?",
			Options: []Option{
				{
					Name: "stg1_no_college", Title: "First job full time",
					Desc: "Annual income: $20,000.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindSalary, Category: "income", Title: "salary",
							Amount: 20000, Quote: instrument.QuoteAnnual,
							Term: 4, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 0},
					},
				},
				{
					Name: "stg1_college_public_in_state", Title: "In-State Public University",
					Desc: "Student loan amount: $25,000. Monthly payment: $277.56. Total interest: $8,305.86. You receive a $400 monthly allowance.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindLoan, Category: "student", Title: "student loan",
							Amount: 25000, Quote: instrument.QuoteOneTime,
							Term: 10, TermUnit: instrument.UnitYear,
							AnnualRate: 0.06, PayFreq: 2, StartPeriod: 96},
						{Kind: instrument.KindSalary, Category: "income", Title: "student loan benefit",
							Amount: 4800, Quote: instrument.QuoteAnnual,
							Term: 4, TermUnit: instrument.UnitYear, PayFreq: 2, StartPeriod: 0},
					},
				},
				{
					Name: "stg1_college_public_out_state", Title: "Out-of-State Public University",
					Desc: "Student loan amount: $50,000. Monthly payment: $555.11. Total interest: $16,611.94. You receive a $600 monthly allowance.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindLoan, Category: "student", Title: "student loan",
							Amount: 50000, Quote: instrument.QuoteOneTime,
							Term: 10, TermUnit: instrument.UnitYear,
							AnnualRate: 0.06, PayFreq: 2, StartPeriod: 96},
						{Kind: instrument.KindSalary, Category: "income", Title: "student loan benefit",
							Amount: 7200, Quote: instrument.QuoteAnnual,
							Term: 4, TermUnit: instrument.UnitYear, PayFreq: 2, StartPeriod: 0},
					},
				},
				{
					Name: "stg1_college_ivy_league", Title: "Ivy League",
					Desc: "Student loan amount: $150,000. Monthly payment: $1,665.31. Total interest: $49,836.85. You receive a $1000 monthly allowance.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindLoan, Category: "student", Title: "student loan",
							Amount: 150000, Quote: instrument.QuoteOneTime,
							Term: 10, TermUnit: instrument.UnitYear,
							AnnualRate: 0.06, PayFreq: 2, StartPeriod: 96},
						{Kind: instrument.KindSalary, Category: "income", Title: "student loan benefit",
							Amount: 12000, Quote: instrument.QuoteAnnual,
							Term: 4, TermUnit: instrument.UnitYear, PayFreq: 2, StartPeriod: 0},
					},
				},
			},
		},
		{
			Name: "stg1_part_time_job", Title: "Would you want to take a part time job?",
			Options: []Option{
				{
					Name: "stg1_part_time_job_no", Title: "No part time job",
					Desc: "Life is difficult as it is. Why adding more?",
				},
				{
					Name: "stg1_part_time_job_yes", Title: "Yes to a part time job",
					Desc: "This job pays $250 twice a month. The job reduces your raw happiness value by 5% until the end of the stage.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindSalary, Category: "income", Title: "post high school part time job",
							Amount: 6000, Quote: instrument.QuoteAnnual,
							Term: 4, TermUnit: instrument.UnitYear, PayFreq: 2, StartPeriod: 0},
						{Kind: instrument.KindModifier, Category: "happiness", Title: "happiness reduction",
							Amount: 0.95, Quote: instrument.QuoteOneTime,
							Term: 4, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 0},
					},
				},
			},
		},
		// The dorm option must stay first: choosing "stg1_no_college" in
		// the college event disables it by position.
		{
			Name: "stg1_lodging", Title: "Lodging",
			Options: []Option{
				{
					Name: "stg1_lodging_dorm", Title: "Dorm",
					Desc: "Living in the dorm costs $1800 every 6 months. Not available if you did not choose to go to college.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindExpense, Category: "housing", Title: "dorm",
							Amount: 1800, Quote: instrument.QuoteOneTime,
							Term: 4, TermUnit: instrument.UnitYear, PayFreq: 12, StartPeriod: 0,
							HappinessSpending: true, RateFreq: 1, RateFreqUnit: instrument.UnitYear},
					},
				},
				{
					Name: "stg1_lodging_off_campus_shared", Title: "Off campus with roommates",
					Desc: "Staying off campus with roommates costs $250/month paid monthly.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindSalary, Category: "housing", Title: "off campus with roommates",
							Amount: 500, Quote: instrument.QuoteOneTime,
							Term: 4, TermUnit: instrument.UnitYear, PayFreq: 2, StartPeriod: 0},
					},
				},
				{
					Name: "stg1_lodging_off_campus_single", Title: "Off campus by yourself",
					Desc: "Staying off campus by yourself costs $500/month paid monthly.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindSalary, Category: "housing", Title: "off campus by yourself",
							Amount: 1000, Quote: instrument.QuoteOneTime,
							Term: 4, TermUnit: instrument.UnitYear, PayFreq: 2, StartPeriod: 0},
					},
				},
			},
		},

		// stage 2
		{
			Name: "stg2_firstjob", Title: "Which job do you want to take?",
			Options: []Option{
				{
					Name: "stg2_firstjob_opt1", Title: "Job offer 2.1: Low Stress",
					Desc: "Annual income is $25,000 paid biweekly. 10% income boost if you went to a public college, 15% if Ivy League. 1% increase in raw happiness score until the end of the life stage.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindSalary, Category: "income", Title: "salary",
							Amount: 25000, Quote: instrument.QuoteAnnual,
							Term: 15, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 96},
						{Kind: instrument.KindModifier, Category: "happiness", Title: "happiness increase",
							Amount: 1.01, Quote: instrument.QuoteOneTime,
							Term: 15, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 96},
						{Kind: instrument.KindExpense, Category: "spending", Title: "stage 2 mandatory spending",
							Amount: 500, Quote: instrument.QuoteOneTime,
							Term: 15, TermUnit: instrument.UnitYear, PayFreq: 2, StartPeriod: 96,
							RateFreq: 1, RateFreqUnit: instrument.UnitYear},
					},
				},
				{
					Name: "stg2_firstjob_opt2", Title: "Job offer 2.2",
					Desc: "Annual income is $30,000 paid biweekly. 10% income boost if you went to a public college, 15% if Ivy League.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindSalary, Category: "income", Title: "salary",
							Amount: 30000, Quote: instrument.QuoteAnnual,
							Term: 15, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 96},
						{Kind: instrument.KindExpense, Category: "spending", Title: "stage 2 mandatory spending",
							Amount: 700, Quote: instrument.QuoteOneTime,
							Term: 15, TermUnit: instrument.UnitYear, PayFreq: 2, StartPeriod: 96,
							RateFreq: 1, RateFreqUnit: instrument.UnitYear},
					},
				},
			},
		},
		{
			Name: "stg2_firsthouse", Title: "Do you want to buy a house?",
			Options: []Option{
				{
					Name: "stg2_firsthouse_rent", Title: "Rent",
					Desc: "Monthly rent: $800, increasing annually by 5%.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindExpense, Category: "rent", Title: "rent",
							Amount: 800, Quote: instrument.QuoteOneTime,
							Term: 15, TermUnit: instrument.UnitYear, PayFreq: 2, StartPeriod: 0,
							HappinessSpending: true,
							AnnualRate:        0.05, RateFreq: 1, RateFreqUnit: instrument.UnitYear},
					},
				},
				{
					Name: "stg2_firsthouse_small", Title: "Small House",
					Desc: "Price $200,000, $40,000 down. 30-year mortgage at 3.5%, monthly payment $718, total interest $98,647. Maintenance $160/month growing 2% a year.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindLoan, Category: "mortgage", Title: "mortgage 1",
							Amount: 160000, Quote: instrument.QuoteOneTime,
							Term: 30, TermUnit: instrument.UnitYear,
							AnnualRate: 0.035, PayFreq: 2, StartPeriod: 96, HappinessSpending: true},
						{Kind: instrument.KindAsset, Category: "house", Title: "house 1",
							Amount: 200000, AnnualRate: 0.02, PayFreq: 1, StartPeriod: 96,
							Term: 66, TermUnit: instrument.UnitYear,
							HappinessSpending: true, ValueCap: 500000},
						{Kind: instrument.KindExpense, Category: "down payment", Title: "house 1 down payment",
							Amount: 40000, Quote: instrument.QuoteOneTime,
							Term: 1, TermUnit: instrument.UnitPeriod, PayFreq: 1, StartPeriod: 96,
							RateFreq: 1, RateFreqUnit: instrument.UnitYear},
						{Kind: instrument.KindExpense, Category: "house", Title: "house 1 monthly expense",
							Amount: 160, Quote: instrument.QuoteOneTime,
							Term: 66, TermUnit: instrument.UnitPeriod, PayFreq: 2, StartPeriod: 96,
							HappinessSpending: true,
							AnnualRate:        0.02, RateFreq: 1, RateFreqUnit: instrument.UnitYear},
					},
				},
				{
					Name: "stg2_firsthouse_mid", Title: "Medium House",
					Desc: "Price $300,000, $60,000 down. 30-year mortgage at 3.5%, monthly payment $1,078, total interest $147,974. Maintenance $250/month growing 2% a year.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindLoan, Category: "mortgage", Title: "mortgage 2",
							Amount: 240000, Quote: instrument.QuoteOneTime,
							Term: 30, TermUnit: instrument.UnitYear,
							AnnualRate: 0.035, PayFreq: 2, StartPeriod: 96, HappinessSpending: true},
						{Kind: instrument.KindAsset, Category: "house", Title: "house 2",
							Amount: 300000, AnnualRate: 0.015, PayFreq: 1, StartPeriod: 96,
							Term: 66, TermUnit: instrument.UnitYear,
							HappinessSpending: true, ValueCap: 750000},
						{Kind: instrument.KindExpense, Category: "down payment", Title: "house 2 down payment",
							Amount: 60000, Quote: instrument.QuoteOneTime,
							Term: 1, TermUnit: instrument.UnitPeriod, PayFreq: 1, StartPeriod: 96,
							RateFreq: 1, RateFreqUnit: instrument.UnitYear},
						{Kind: instrument.KindExpense, Category: "house", Title: "house 2 monthly expense",
							Amount: 250, Quote: instrument.QuoteOneTime,
							Term: 66, TermUnit: instrument.UnitPeriod, PayFreq: 2, StartPeriod: 96,
							HappinessSpending: true,
							AnnualRate:        0.02, RateFreq: 1, RateFreqUnit: instrument.UnitYear},
					},
				},
				{
					Name: "stg2_house_big", Title: "Large House",
					Desc: "Price $800,000, $160,000 down. 30-year mortgage at 3.5%, monthly payment $2,874, total interest $394,598. Maintenance $1334/month growing 2% a year.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindLoan, Category: "mortgage", Title: "mortgage 5",
							Amount: 640000, Quote: instrument.QuoteOneTime,
							Term: 30, TermUnit: instrument.UnitYear,
							AnnualRate: 0.035, PayFreq: 2, StartPeriod: 96, HappinessSpending: true},
						{Kind: instrument.KindAsset, Category: "house", Title: "house 5",
							Amount: 800000, AnnualRate: 0.01, PayFreq: 1, StartPeriod: 96,
							Term: 66, TermUnit: instrument.UnitYear,
							HappinessSpending: true, ValueCap: 2000000},
						{Kind: instrument.KindExpense, Category: "down payment", Title: "house 5 down payment",
							Amount: 160000, Quote: instrument.QuoteOneTime,
							Term: 1, TermUnit: instrument.UnitPeriod, PayFreq: 1, StartPeriod: 96,
							RateFreq: 1, RateFreqUnit: instrument.UnitYear},
						{Kind: instrument.KindExpense, Category: "house", Title: "house 5 monthly expense",
							Amount: 667, Quote: instrument.QuoteOneTime,
							Term: 66, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 96,
							HappinessSpending: true,
							AnnualRate:        0.02, RateFreq: 1, RateFreqUnit: instrument.UnitYear},
					},
				},
			},
		},
		{
			Name: "stg2_saving_program", Title: "How much do you want to invest monthly?",
			Desc: "You have extra $200 left every month. How do you want to spend?",
			Options: []Option{
				{
					Name: "stg2_saving_none", Title: "$0/month",
					Desc: "YOLO! I don't want to invest any amount of my income in an investment account.",
					Instruments: []instrument.Def{
						funSpending(200, 15, 96),
					},
				},
				{
					Name: "stg2_saving_opt1", Title: "$100/month",
					Desc: "Invest $100/month; spend $100/month. Annual return is 6% compounding rate.",
					Instruments: []instrument.Def{
						investTransfer(100, 15, 96),
						investAsset(100, 66, 96, 455),
						funSpending(100, 15, 96),
					},
				},
				{
					Name: "stg2_saving_opt2", Title: "$200/month",
					Desc: "Invest $200/month. Annual return is 6% compounding rate.",
					Instruments: []instrument.Def{
						investTransfer(200, 15, 96),
						investAsset(200, 66, 96, 455),
					},
				},
			},
		},
		{
			Name: "stg2_car", Title: "Car purchase",
			Desc: "Your previous car needs to be replaced after 5 years. Choose an option below.",
			Options: carPurchaseOptions("stg2_car", 144, 14, -0.20),
		},

		// stage 3
		{
			Name: "stg3_job_offers", Title: "Which job do you want to take?",
			Options: []Option{
				{
					Name: "stg3_job_offers_opt1", Title: "Job offer 3.1: Low Stress",
					Desc: "Annual income is $50,000 paid biweekly. 1% increase in raw happiness score until the end of the life stage.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindSalary, Category: "income", Title: "salary",
							Amount: 50000, Quote: instrument.QuoteAnnual,
							Term: 20, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 456},
						{Kind: instrument.KindModifier, Category: "happiness", Title: "happiness increase",
							Amount: 1.01, Quote: instrument.QuoteOneTime,
							Term: 20, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 456},
						{Kind: instrument.KindExpense, Category: "spending", Title: "stage 3 mandatory spending",
							Amount: 700, Quote: instrument.QuoteOneTime,
							Term: 20, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 456,
							AnnualRate: 0.02, RateFreq: 1, RateFreqUnit: instrument.UnitYear},
					},
				},
				{
					Name: "stg3_job_offers_opt2", Title: "Job offer 3.2: Average Pay",
					Desc: "Annual income is $80,000 paid biweekly.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindSalary, Category: "income", Title: "salary",
							Amount: 80000, Quote: instrument.QuoteAnnual,
							Term: 20, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 456},
						{Kind: instrument.KindExpense, Category: "spending", Title: "stage 3 mandatory spending",
							Amount: 700, Quote: instrument.QuoteOneTime,
							Term: 20, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 456,
							AnnualRate: 0.02, RateFreq: 1, RateFreqUnit: instrument.UnitYear},
					},
				},
				{
					Name: "stg3_job_offers_opt3", Title: "Job offer 3.3: High Stress",
					Desc: "Annual income is $120,000 paid biweekly. 5% reduction of the raw happiness score until the end of the life stage.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindSalary, Category: "income", Title: "salary",
							Amount: 120000, Quote: instrument.QuoteAnnual,
							Term: 20, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 456},
						{Kind: instrument.KindModifier, Category: "happiness", Title: "happiness decrease",
							Amount: 0.95, Quote: instrument.QuoteOneTime,
							Term: 20, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 456},
						{Kind: instrument.KindExpense, Category: "spending", Title: "stage 3 mandatory spending",
							Amount: 700, Quote: instrument.QuoteOneTime,
							Term: 20, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 456,
							AnnualRate: 0.02, RateFreq: 1, RateFreqUnit: instrument.UnitYear},
					},
				},
			},
		},
		// Not scheduled in the peak career event sequence, but kept in
		// the catalog: buying here after renting in stage 2 makes the
		// house a rental property (see the first-home rule).
		{
			Name: "stg3_house", Title: "Do you want to buy a house?",
			Desc: "If you bought a house in the previous stage, the house you are buying here is going to be a rental property averaging $2000/month as rental income.",
			Options: []Option{
				{
					Name: "stg3_house_small", Title: "Small House",
					Desc: "Price $250,000, $32,000 down. 30-year mortgage at 3.5%, monthly payment $979, total interest $134,410. Maintenance $600/month growing 2% a year.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindLoan, Category: "mortgage", Title: "mortgage 3",
							Amount: 218000, Quote: instrument.QuoteOneTime,
							Term: 30, TermUnit: instrument.UnitYear,
							AnnualRate: 0.035, PayFreq: 2, StartPeriod: 456, HappinessSpending: true},
						{Kind: instrument.KindAsset, Category: "house", Title: "house 3",
							Amount: 250000, AnnualRate: 0.04, PayFreq: 1, StartPeriod: 96,
							Term: 51, TermUnit: instrument.UnitYear, HappinessSpending: true},
						{Kind: instrument.KindExpense, Category: "down payment", Title: "house 3 down payment",
							Amount: 32000, Quote: instrument.QuoteOneTime,
							Term: 1, TermUnit: instrument.UnitPeriod, PayFreq: 1, StartPeriod: 456,
							RateFreq: 1, RateFreqUnit: instrument.UnitYear},
						{Kind: instrument.KindExpense, Category: "house", Title: "house 3 monthly expense",
							Amount: 300, Quote: instrument.QuoteOneTime,
							Term: 51, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 456,
							HappinessSpending: true,
							AnnualRate:        0.02, RateFreq: 1, RateFreqUnit: instrument.UnitYear},
						{Kind: instrument.KindSalary, Category: "house", Title: "house 3 rental income",
							Amount: 2000, Quote: instrument.QuoteOneTime,
							Term: 51, TermUnit: instrument.UnitYear, PayFreq: 2, StartPeriod: 456},
					},
				},
				{
					Name: "stg3_house_mid", Title: "Medium House",
					Desc: "Price $450,000, $90,000 down. 30-year mortgage at 3.5%, monthly payment $1,617, total interest $221,960. Maintenance $740/month growing 2% a year.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindLoan, Category: "mortgage", Title: "mortgage 4",
							Amount: 360000, Quote: instrument.QuoteOneTime,
							Term: 30, TermUnit: instrument.UnitYear,
							AnnualRate: 0.035, PayFreq: 2, StartPeriod: 456, HappinessSpending: true},
						{Kind: instrument.KindAsset, Category: "house", Title: "house 4",
							Amount: 450000, AnnualRate: 0.04, PayFreq: 1, StartPeriod: 96,
							Term: 51, TermUnit: instrument.UnitYear, HappinessSpending: true},
						{Kind: instrument.KindExpense, Category: "down payment", Title: "house 4 down payment",
							Amount: 90000, Quote: instrument.QuoteOneTime,
							Term: 1, TermUnit: instrument.UnitPeriod, PayFreq: 1, StartPeriod: 456,
							RateFreq: 1, RateFreqUnit: instrument.UnitYear},
						{Kind: instrument.KindExpense, Category: "house", Title: "house 4 monthly expense",
							Amount: 740, Quote: instrument.QuoteOneTime,
							Term: 51, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 456,
							HappinessSpending: true,
							AnnualRate:        0.02, RateFreq: 1, RateFreqUnit: instrument.UnitYear},
						{Kind: instrument.KindSalary, Category: "house", Title: "house 4 rental income",
							Amount: 2000, Quote: instrument.QuoteOneTime,
							Term: 51, TermUnit: instrument.UnitYear, PayFreq: 2, StartPeriod: 456},
					},
				},
			},
		},
		{
			Name: "stg3_saving_program", Title: "How much do you want to invest monthly?",
			Desc: "You have $800 left every month. How do you want to spend?",
			Options: []Option{
				{
					Name: "stg3_saving_opt1", Title: "$150/month",
					Desc: "Invest $150/month; spend $650/month. Annual return is 6% compounding rate.",
					Instruments: []instrument.Def{
						investTransfer(150, 10, 936),
						investAsset(150, 21, 936, 1175),
						funSpending(650, 10, 936),
					},
				},
				{
					Name: "stg3_saving_opt2", Title: "$250/month",
					Desc: "Invest $250/month; spend $550/month. Annual return is 6% compounding rate.",
					Instruments: []instrument.Def{
						investTransfer(250, 10, 936),
						investAsset(250, 21, 936, 1175),
						funSpending(550, 10, 936),
					},
				},
				{
					Name: "stg3_saving_opt3", Title: "$400/month",
					Desc: "Invest $400/month; spend $400/month. Annual return is 6% compounding rate.",
					Instruments: []instrument.Def{
						investTransfer(400, 10, 936),
						investAsset(400, 21, 936, 1175),
						funSpending(400, 10, 936),
					},
				},
				{
					Name: "stg3_saving_opt4", Title: "$550/month",
					Desc: "Invest $550/month; spend $250/month. Annual return is 6% compounding rate.",
					Instruments: []instrument.Def{
						investTransfer(550, 10, 936),
						investAsset(550, 21, 936, 1175),
						funSpending(250, 10, 936),
					},
				},
				{
					Name: "stg3_saving_opt5", Title: "$800/month",
					Desc: "Invest all $800/month. Annual return is 6% compounding rate.",
					Instruments: []instrument.Def{
						investTransfer(800, 10, 936),
						investAsset(800, 21, 936, 1175),
					},
				},
			},
		},
		{
			Name: "stg3_car", Title: "Car purchase",
			Desc: "Your previous car needs to be replaced. Choose an option below.",
			Options: carPurchaseOptions("stg3_car", 456, 20, -0.15),
		},

		// stage 4
		{
			Name: "stg4_job_offers", Title: "Which job do you want to take?",
			Options: []Option{
				{
					Name: "stg4_job_offers_early_retirement", Title: "Early Retirement",
					Desc: "No income. 10% increase in raw happiness score until the end of the life stage.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindModifier, Category: "happiness", Title: "happiness increase",
							Amount: 1.1, Quote: instrument.QuoteOneTime,
							Term: 10, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 936},
						{Kind: instrument.KindExpense, Category: "spending", Title: "stage 4 mandatory spending",
							Amount: 700, Quote: instrument.QuoteOneTime,
							Term: 10, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 936,
							RateFreq: 1, RateFreqUnit: instrument.UnitYear},
					},
				},
				{
					Name: "stg4_job_offers_opt1", Title: "Job offer 4.1: Low Stress",
					Desc: "Annual income is $65,000 paid biweekly. 3% increase in raw happiness score until the end of the life stage.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindSalary, Category: "income", Title: "salary",
							Amount: 65000, Quote: instrument.QuoteAnnual,
							Term: 10, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 936},
						{Kind: instrument.KindModifier, Category: "happiness", Title: "happiness increase",
							Amount: 1.03, Quote: instrument.QuoteOneTime,
							Term: 10, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 936},
						{Kind: instrument.KindExpense, Category: "spending", Title: "stage 4 mandatory spending",
							Amount: 700, Quote: instrument.QuoteOneTime,
							Term: 10, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 936,
							RateFreq: 1, RateFreqUnit: instrument.UnitYear},
					},
				},
				{
					Name: "stg4_job_offers_opt2", Title: "Job offer 4.2: Average Pay",
					Desc: "Annual income is $80,000 paid biweekly.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindSalary, Category: "income", Title: "salary",
							Amount: 80000, Quote: instrument.QuoteAnnual,
							Term: 10, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 936},
						{Kind: instrument.KindExpense, Category: "spending", Title: "stage 4 mandatory spending",
							Amount: 700, Quote: instrument.QuoteOneTime,
							Term: 10, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 936,
							RateFreq: 1, RateFreqUnit: instrument.UnitYear},
					},
				},
				{
					Name: "stg4_job_offers_opt3", Title: "Job offer 4.3: High Stress",
					Desc: "Annual income is $120,000 paid biweekly. 4% reduction of the raw happiness score until the end of the life stage.",
					Instruments: []instrument.Def{
						{Kind: instrument.KindSalary, Category: "income", Title: "salary",
							Amount: 120000, Quote: instrument.QuoteAnnual,
							Term: 10, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 936},
						{Kind: instrument.KindModifier, Category: "happiness", Title: "happiness decrease",
							Amount: 0.96, Quote: instrument.QuoteOneTime,
							Term: 10, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 936},
						{Kind: instrument.KindExpense, Category: "spending", Title: "stage 4 mandatory spending",
							Amount: 700, Quote: instrument.QuoteOneTime,
							Term: 10, TermUnit: instrument.UnitYear, PayFreq: 1, StartPeriod: 936,
							RateFreq: 1, RateFreqUnit: instrument.UnitYear},
					},
				},
			},
		},
		{
			Name: "stg4_saving_program", Title: "How much do you want to invest monthly?",
			Desc: "You have extra $500 per month left. How do you want to spend?",
			Options: []Option{
				{
					Name: "stg4_saving_none", Title: "$0/month",
					Desc: "YOLO! I don't want to invest any amount of my income in an investment account.",
					Instruments: []instrument.Def{
						funSpending(500, 20, 456),
					},
				},
				{
					Name: "stg4_saving_opt1", Title: "$100/month",
					Desc: "Invest $100/month; spend $400/month. Annual return is 6% compounding rate.",
					Instruments: []instrument.Def{
						investTransfer(100, 20, 456),
						investAsset(100, 51, 456, 614),
						funSpending(400, 20, 456),
					},
				},
				{
					Name: "stg4_saving_opt2", Title: "$200/month",
					Desc: "Invest $200/month; spend $300/month. Annual return is 6% compounding rate.",
					Instruments: []instrument.Def{
						investTransfer(200, 20, 456),
						investAsset(200, 51, 456, 614),
						funSpending(300, 20, 456),
					},
				},
				{
					Name: "stg4_saving_opt3", Title: "$500/month",
					Desc: "Invest $500/month. Annual return is 6% compounding rate.",
					Instruments: []instrument.Def{
						investTransfer(500, 20, 456),
						investAsset(500, 51, 456, 614),
					},
				},
			},
		},
		{
			Name: "stg4_car", Title: "Car purchase",
			Desc: "Your previous car needs to be replaced. Choose an option below.",
			Options: carPurchaseOptions("stg4_car", 936, 31, -0.20),
		},

		// random events: no options, instruments bind to the period the
		// event fires
		{
			Name: "rnd_lotto", Title: "Congratulations! You won the lottery!!!",
			Desc: "You won $50,000, paid immediately to you!",
			Instruments: []instrument.Def{
				{Kind: instrument.KindSalary, Category: "lottery", Title: "lottery",
					Amount: 50000, Quote: instrument.QuoteOneTime,
					Term: 1, TermUnit: instrument.UnitPeriod, PayFreq: 1,
					StartPeriod: instrument.StartAtEvent},
			},
		},
		{
			Name: "rnd_car_accident_partial", Title: "You had a car accident :(",
			Desc: "After deductibles, the out of pocket cost is $700.",
			Instruments: []instrument.Def{
				{Kind: instrument.KindExpense, Category: "car", Title: "small car accident",
					Amount: 700, Quote: instrument.QuoteOneTime,
					Term: 1, TermUnit: instrument.UnitPeriod, PayFreq: 1,
					StartPeriod: instrument.StartAtEvent,
					RateFreq:    1, RateFreqUnit: instrument.UnitYear},
			},
		},
		{
			Name: "rnd_road_trip_cancun", Title: "Road trip to Cancun",
			Desc: "Your friend wants you to join them for a road trip to Cancun. The trip would cost $1,500.",
			Instruments: []instrument.Def{
				{Kind: instrument.KindExpense, Category: "travel", Title: "road trip to cancun",
					Amount: 1500, Quote: instrument.QuoteOneTime,
					Term: 1, TermUnit: instrument.UnitPeriod, PayFreq: 1,
					StartPeriod:       instrument.StartAtEvent,
					HappinessSpending: true,
					RateFreq:          1, RateFreqUnit: instrument.UnitYear},
			},
		},
		{
			Name: "rnd_road_trip_natl_park", Title: "Road trip to a nearby national park?",
			Desc: "Spring break rolls around. Bunch of friends are planning to go to a nearby national park for a week.",
			Instruments: []instrument.Def{
				{Kind: instrument.KindExpense, Category: "travel", Title: "road trip to nearby national park",
					Amount: 1500, Quote: instrument.QuoteOneTime,
					Term: 1, TermUnit: instrument.UnitPeriod, PayFreq: 1,
					StartPeriod:       instrument.StartAtEvent,
					HappinessSpending: true,
					RateFreq:          1, RateFreqUnit: instrument.UnitYear},
			},
		},
		{
			Name: "rnd_grandma_visit", Title: "Grandma's Visit",
			Desc: "Grandma came visit recently and gave you a $500 check.",
			Instruments: []instrument.Def{
				{Kind: instrument.KindSalary, Category: "income", Title: "grandma's visit",
					Amount: 500, Quote: instrument.QuoteOneTime,
					Term: 1, TermUnit: instrument.UnitPeriod, PayFreq: 1,
					StartPeriod: instrument.StartAtEvent},
			},
		},
		{
			Name: "rnd_broken_laptop", Title: "Broken Laptop",
			Desc: "Accidentally threw your laptop into the pool. The replacement costs $900.",
			Instruments: []instrument.Def{
				{Kind: instrument.KindExpense, Category: "tech", Title: "broken laptop",
					Amount: 900, Quote: instrument.QuoteOneTime,
					Term: 1, TermUnit: instrument.UnitPeriod, PayFreq: 1,
					StartPeriod: instrument.StartAtEvent,
					RateFreq:    1, RateFreqUnit: instrument.UnitYear},
			},
		},
		{
			Name: "rnd_salary_increase", Title: "You got a promotion!",
			Desc: "Due to your hard work, your annual salary is increased by $20,000.",
			Instruments: []instrument.Def{
				{Kind: instrument.KindSalary, Category: "income", Title: "job raise",
					Amount: 20000, Quote: instrument.QuoteAnnual,
					Term: 70, TermUnit: instrument.UnitYear, PayFreq: 2,
					StartPeriod: instrument.StartAtEvent},
			},
		},
		{
			Name: "rnd_extended_fam_trip", Title: "Extended Family Trip",
			Desc: "The extended family decided to take a trip at the beach. The trip costs $2,500.",
			Instruments: []instrument.Def{
				{Kind: instrument.KindExpense, Category: "travel", Title: "extended family trip",
					Amount: 2500, Quote: instrument.QuoteOneTime,
					Term: 1, TermUnit: instrument.UnitPeriod, PayFreq: 1,
					StartPeriod:       instrument.StartAtEvent,
					HappinessSpending: true,
					RateFreq:          1, RateFreqUnit: instrument.UnitYear},
			},
		},
		{
			Name: "rnd_destination_wedding", Title: "Destination Wedding",
			Desc: "Your cousin invited you to a wedding in France. The trip costs $5,000.",
			Instruments: []instrument.Def{
				{Kind: instrument.KindExpense, Category: "travel", Title: "destination wedding",
					Amount: 5000, Quote: instrument.QuoteOneTime,
					Term: 1, TermUnit: instrument.UnitPeriod, PayFreq: 1,
					StartPeriod:       instrument.StartAtEvent,
					HappinessSpending: true,
					RateFreq:          1, RateFreqUnit: instrument.UnitYear},
			},
		},
		{
			Name: "rnd_illness_major", Title: "Major Illness",
			Desc: "You fell after a fun day at a ski resort. The medical expense is $5,000 and you take a 40% reduction of happiness for 6 months.",
			Instruments: []instrument.Def{
				{Kind: instrument.KindExpense, Category: "medical", Title: "medical bill",
					Amount: 5000, Quote: instrument.QuoteOneTime,
					Term: 1, TermUnit: instrument.UnitPeriod, PayFreq: 1,
					StartPeriod: instrument.StartAtEvent,
					RateFreq:    1, RateFreqUnit: instrument.UnitYear},
				{Kind: instrument.KindModifier, Category: "illness", Title: "major illness",
					Amount: 0.60, Quote: instrument.QuoteOneTime,
					Term: 6, TermUnit: instrument.UnitMonth, PayFreq: 1,
					StartPeriod: instrument.StartAtEvent},
			},
		},
	}
	return events
}
