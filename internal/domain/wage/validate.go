package wage

// ValidateBonuses filters a user-supplied bonus table down to usable
// segments. A segment is kept only when both times parse and the rate is
// positive; everything else is dropped without error, matching the
// permissive handling of partially filled custom-rate forms.
func ValidateBonuses(raw BonusTable) BonusTable {
	out := make(BonusTable, len(raw))
	for day, segments := range raw {
		if _, err := ParseDayType(string(day)); err != nil {
			continue
		}
		kept := make([]BonusSegment, 0, len(segments))
		for _, seg := range segments {
			if seg.Rate <= 0 {
				continue
			}
			if _, err := TimeToMinutes(seg.From); err != nil {
				continue
			}
			if _, err := TimeToMinutes(seg.To); err != nil {
				continue
			}
			kept = append(kept, seg)
		}
		if len(kept) > 0 {
			out[day] = kept
		}
	}
	return out
}
