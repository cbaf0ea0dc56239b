package activities

import (
	"strings"
	"sync"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/FACorreiaa/go-tripplanner/internal/app/models"
)

// interestActivityTypes maps each user interest to the upstream activity
// types it should pull in.
var interestActivityTypes = map[string][]string{
	"Culture":   {"Museum", "Cultural Tour", "Historical Site"},
	"Food":      {"Food Tour", "Cooking Class", "Wine Tasting"},
	"Adventure": {"Safari", "Hiking", "Water Sports", "Extreme Sports", "Water Adventure", "Sky Adventure"},
	"Nature":    {"Safari", "Wildlife", "Hiking", "National Park"},
	"Shopping":  {"Shopping Tour", "Market Visit"},
	"Nightlife": {"Night Tour", "Bar Crawl", "Entertainment"},
	"History":   {"Historical Site", "Museum", "Heritage Tour"},
	"Art":       {"Art Gallery", "Museum", "Art Tour"},
	"Beach":     {"Beach Activity", "Water Sports", "Coastal Tour", "Water Adventure"},
	"Sports":    {"Sports Activity", "Adventure Sports", "Water Sports"},
}

// ActivityTypesFor resolves a set of interests into the deduplicated upstream
// activity types used as search filters. Interests with no mapping are
// ignored. Order follows first appearance.
func ActivityTypesFor(interests []string) []string {
	seen := map[string]struct{}{}
	types := []string{}
	for _, interest := range interests {
		for _, t := range interestActivityTypes[canonicalInterest(interest)] {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			types = append(types, t)
		}
	}
	return types
}

func canonicalInterest(interest string) string {
	interest = strings.TrimSpace(interest)
	for known := range interestActivityTypes {
		if strings.EqualFold(known, interest) {
			return known
		}
	}
	return interest
}

// InterestMatcher matches free-text activity types and tags against interest
// keywords with a single multi-pattern automaton pass.
type InterestMatcher struct {
	automaton ahocorasick.AhoCorasick
	patterns  []string
}

var (
	defaultMatcher     *InterestMatcher
	defaultMatcherOnce sync.Once
)

// NewInterestMatcher builds a matcher over the given interest keywords.
// Patterns cover each keyword, its stem ("culture" also hits "cultural"),
// and its mapped activity types, so anything the upstream type filter
// admits keeps matching.
func NewInterestMatcher(interests []string) *InterestMatcher {
	patterns := make([]string, 0, len(interests)*4)
	seen := map[string]struct{}{}
	add := func(p string) {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			return
		}
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		patterns = append(patterns, p)
	}

	for _, interest := range interests {
		add(interest)
		add(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(interest)), "e"))
		for _, t := range ActivityTypesFor([]string{interest}) {
			add(t)
		}
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
	})
	return &InterestMatcher{
		automaton: builder.Build(patterns),
		patterns:  patterns,
	}
}

// DefaultMatcher matches against every known interest keyword.
func DefaultMatcher() *InterestMatcher {
	defaultMatcherOnce.Do(func() {
		interests := make([]string, 0, len(interestActivityTypes))
		for interest := range interestActivityTypes {
			interests = append(interests, interest)
		}
		defaultMatcher = NewInterestMatcher(interests)
	})
	return defaultMatcher
}

// Matches reports whether the activity's type or tags mention any of the
// matcher's interest keywords. An empty matcher matches everything, mirroring
// "no interest filter".
func (m *InterestMatcher) Matches(activity models.Activity) bool {
	if len(m.patterns) == 0 {
		return true
	}

	var haystack strings.Builder
	haystack.WriteString(activity.Type)
	for _, tag := range activity.Tags {
		haystack.WriteByte(' ')
		haystack.WriteString(tag.Name)
	}

	return len(m.automaton.FindAll(strings.ToLower(haystack.String()))) > 0
}
