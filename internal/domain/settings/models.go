package settings

import "skiftlonn/internal/domain/wage"

// Settings is one user's calculation configuration. Custom bonuses are
// stored as entered; they are validated down to usable segments when the
// tables are resolved.
type Settings struct {
	UsePreset      bool            `json:"usePreset"`
	TariffLevel    int             `json:"tariffLevel"`
	CustomWage     float64         `json:"customWage"`
	PauseDeduction bool            `json:"pauseDeduction"`
	CustomBonuses  wage.BonusTable `json:"customBonuses"`
}

// Defaults mirrors a fresh user: preset tariff, lowest adult level,
// pause deduction on.
func Defaults() Settings {
	return Settings{
		UsePreset:      true,
		TariffLevel:    1,
		PauseDeduction: true,
		CustomBonuses:  wage.BonusTable{},
	}
}

// RateSource resolves the active wage source.
func (s Settings) RateSource() wage.RateSource {
	return wage.RateSource{
		UsePreset:   s.UsePreset,
		TariffLevel: s.TariffLevel,
		CustomWage:  s.CustomWage,
	}
}

// Tables resolves the active rate and bonus tables. In custom mode the
// user's bonus table is filtered segment by segment; incomplete rows are
// dropped rather than rejected.
func (s Settings) Tables() wage.Tables {
	if s.UsePreset {
		return wage.PresetTables
	}
	return wage.Tables{
		WageRates: wage.PresetWageRates,
		Bonuses:   wage.ValidateBonuses(s.CustomBonuses),
	}
}
