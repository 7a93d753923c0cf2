package discovery

import (
	"sort"
	"strings"
)

// Exclusions is the set of user ids that must never be offered to a given
// requester: self plus everyone the requester has already liked or disliked,
// and optionally everyone who has acted on the requester.
type Exclusions struct {
	ids map[int64]struct{}
}

func NewExclusions(ids ...int64) Exclusions {
	e := Exclusions{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		e.ids[id] = struct{}{}
	}
	return e
}

func (e *Exclusions) Add(ids ...int64) {
	if e.ids == nil {
		e.ids = make(map[int64]struct{}, len(ids))
	}
	for _, id := range ids {
		e.ids[id] = struct{}{}
	}
}

func (e Exclusions) Contains(id int64) bool {
	_, ok := e.ids[id]
	return ok
}

// RankedCandidate is a pipeline result: the candidate, its overlap score,
// and the names of favorite locations shared with the requester.
type RankedCandidate struct {
	Candidate
	Score            int
	OverlapLocations []string
}

// scoreFunc reports a candidate's overlap score and whether the candidate
// clears the strategy's eligibility bar.
type scoreFunc func(c Candidate) (int, bool)

// rank runs the shared pipeline: drop self, excluded, incomplete, and
// incompatible candidates, score the rest, and order by score descending
// with display name as the tie-break.
func rank(requester Candidate, pool []Candidate, excluded Exclusions, score scoreFunc) []RankedCandidate {
	favIDs := make(map[int64]string, len(requester.Favorites))
	for _, l := range requester.Favorites {
		favIDs[l.ID] = l.Name
	}

	out := make([]RankedCandidate, 0, len(pool))
	for _, c := range pool {
		if c.ID == requester.ID {
			continue
		}
		if excluded.Contains(c.ID) {
			continue
		}
		if !c.Complete() {
			continue
		}
		if !Compatible(requester.Profile, c.Profile) {
			continue
		}
		s, ok := score(c)
		if !ok {
			continue
		}
		out = append(out, RankedCandidate{
			Candidate:        c,
			Score:            s,
			OverlapLocations: sharedLocationNames(favIDs, c),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// RankByLocations keeps candidates sharing at least one favorite location
// with the requester, scored by the size of the overlap.
func RankByLocations(requester Candidate, pool []Candidate, excluded Exclusions) []RankedCandidate {
	fav := make(map[int64]struct{}, len(requester.Favorites))
	for _, l := range requester.Favorites {
		fav[l.ID] = struct{}{}
	}
	return rank(requester, pool, excluded, func(c Candidate) (int, bool) {
		n := 0
		for _, l := range c.Favorites {
			if _, ok := fav[l.ID]; ok {
				n++
			}
		}
		return n, n >= 1
	})
}

// RankByInterests keeps candidates sharing at least two top-level interest
// categories with the requester, scored by the category overlap.
func RankByInterests(requester Candidate, pool []Candidate, excluded Exclusions) []RankedCandidate {
	cats := Categories(requester.Interests)
	return rank(requester, pool, excluded, func(c Candidate) (int, bool) {
		n := SharedCategories(cats, Categories(c.Interests))
		return n, n >= 2
	})
}

// RankAll keeps every compatible candidate, ordered by name only.
func RankAll(requester Candidate, pool []Candidate, excluded Exclusions) []RankedCandidate {
	return rank(requester, pool, excluded, func(Candidate) (int, bool) {
		return 0, true
	})
}

// SearchCombined runs the location strategy first, then the interest
// strategy over whatever the location block did not claim, and concatenates
// the two blocks. A candidate can therefore appear at most once, always in
// the location block when both strategies would pick it.
func SearchCombined(requester Candidate, pool []Candidate, excluded Exclusions) []RankedCandidate {
	byLocation := RankByLocations(requester, pool, excluded)

	taken := make(map[int64]struct{}, len(byLocation))
	for _, rc := range byLocation {
		taken[rc.ID] = struct{}{}
	}
	remainder := make([]Candidate, 0, len(pool))
	for _, c := range pool {
		if _, ok := taken[c.ID]; ok {
			continue
		}
		remainder = append(remainder, c)
	}

	byInterests := RankByInterests(requester, remainder, excluded)
	return append(byLocation, byInterests...)
}

func sharedLocationNames(requesterFavs map[int64]string, c Candidate) []string {
	names := make([]string, 0, len(c.Favorites))
	for _, l := range c.Favorites {
		if name, ok := requesterFavs[l.ID]; ok {
			if name == "" {
				name = l.Name
			}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
