package discovery

import "strings"

const (
	PreferenceAlone = "alone"
	PreferenceAny   = "any"

	GenderMale   = "male"
	GenderFemale = "female"
)

// Accepts reports whether u is open to partners of the given gender.
// "alone" accepts nobody and an unrecognized preference value is treated the
// same way, so malformed profile data can never widen a candidate pool.
func Accepts(u Profile, gender string) bool {
	switch pref := normalize(u.PartnerPreference); pref {
	case PreferenceAlone:
		return false
	case PreferenceAny:
		return true
	case GenderMale, GenderFemale:
		return pref == normalize(gender)
	default:
		return false
	}
}

// Compatible holds only when both users accept each other's gender. It is
// symmetric: Compatible(a, b) == Compatible(b, a).
func Compatible(a, b Profile) bool {
	return Accepts(a, b.Gender) && Accepts(b, a.Gender)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
