package wage

// PresetWageRates is the collectively bargained hourly tariff table.
// Negative levels are the reduced youth rates (under 18 and under 16).
var PresetWageRates = map[int]float64{
	-2: 101.49,
	-1: 116.21,
	1:  167.72,
	2:  171.40,
	3:  187.46,
	4:  193.50,
	5:  199.65,
	6:  205.81,
}

// PresetBonuses holds the standard time-of-day supplement windows in
// kroner per hour. Evening and night windows are defined separately and
// accumulate independently.
var PresetBonuses = BonusTable{
	Weekday: {
		{From: "18:00", To: "21:00", Rate: 22},
		{From: "21:00", To: "23:59", Rate: 45},
	},
	Saturday: {
		{From: "13:00", To: "15:00", Rate: 22},
		{From: "15:00", To: "18:00", Rate: 45},
		{From: "18:00", To: "23:59", Rate: 90},
	},
	Sunday: {
		{From: "00:00", To: "23:59", Rate: 96},
	},
}

// PresetTables bundles the preset rate and bonus tables.
var PresetTables = Tables{
	WageRates: PresetWageRates,
	Bonuses:   PresetBonuses,
}

// DefaultPolicy applies the standard unpaid-break rule: shifts longer
// than 5.5 hours lose half an hour of paid time.
var DefaultPolicy = Policy{
	PauseThreshold: 5.5,
	PauseDeduction: 0.5,
	Year:           2025,
}
