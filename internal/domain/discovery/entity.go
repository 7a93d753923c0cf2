// Package discovery holds the pure companion-matching core: interest
// taxonomy extraction, mutual compatibility, and the ranking pipeline shared
// by the location, interest, and open search strategies.
package discovery

type Location struct {
	ID   int64
	Name string
}

type Profile struct {
	ID                int64
	ExternalID        int64
	Name              string
	Gender            string
	PartnerPreference string
	Bio               string
	PhotoURLs         []string
	Interests         []string
}

// Complete reports whether the profile carries enough data to be offered as
// a candidate: a non-empty bio and at least one photo.
func (p Profile) Complete() bool {
	return p.Bio != "" && len(p.PhotoURLs) > 0
}

// Candidate is a profile together with its favorite locations, the unit the
// ranking pipeline operates on.
type Candidate struct {
	Profile
	Favorites []Location
}
