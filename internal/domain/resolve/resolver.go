// Package resolve matches player names across two independently sourced
// rosters, producing a best-effort 1:1 identity map with a confidence gate.
package resolve

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/okian/fastbreak/pkg/logger"
)

// Method records how a match was produced.
type Method string

// Match methods.
const (
	MethodManual Method = "manual-override"
	MethodFuzzy  Method = "fuzzy-match"
)

// Default resolver configuration constants.
const (
	defaultThreshold = 85
	perfectScore     = 100
)

// KnownName pairs a canonical name with its source-of-record identifier.
type KnownName struct {
	Name string
	ID   string
}

// Match is one resolved identity: an observed name mapped onto the
// canonical roster.
type Match struct {
	ObservedName  string
	CanonicalName string
	CanonicalID   string
	Score         int
	Method        Method
}

// DroppedName describes an observed name rejected by the confidence gate,
// kept for the quality report.
type DroppedName struct {
	ObservedName  string
	BestCandidate string
	Score         int
}

// Report summarizes one resolver run.
type Report struct {
	Matches      []Match
	Dropped      []DroppedName
	LookupErrors int
}

// Total returns the number of observed names processed.
func (r Report) Total() int { return len(r.Matches) + len(r.Dropped) + r.LookupErrors }

// Matched returns the number of names that passed the gate.
func (r Report) Matched() int { return len(r.Matches) }

// Resolver maps observed names onto a fixed canonical roster. It carries no
// mutable state across calls, so one Resolver may serve concurrent runs.
type Resolver struct {
	names     []string          // canonical names, first-seen order
	ids       map[string]string // canonical name -> identifier
	overrides map[string]string // observed name -> canonical name
	threshold int
	logger    logger.Logger
}

// New builds a Resolver from the canonical roster. Duplicate names keep
// their first-seen identifier; order of known determines fuzzy tie-breaks,
// so callers must pass a deterministic sequence.
func New(known []KnownName, opts ...Option) (*Resolver, error) {
	if len(known) == 0 {
		return nil, ErrNoKnownNames
	}

	r := &Resolver{
		ids:       make(map[string]string, len(known)),
		overrides: map[string]string{},
		threshold: defaultThreshold,
		logger:    logger.Get(),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, k := range known {
		name := strings.TrimSpace(k.Name)
		if name == "" {
			continue
		}
		if _, seen := r.ids[name]; seen {
			continue
		}
		r.names = append(r.names, name)
		r.ids[name] = k.ID
	}
	if len(r.names) == 0 {
		return nil, ErrNoKnownNames
	}
	return r, nil
}

// Resolve processes every observed name independently: manual override
// first, then fuzzy matching against the canonical roster, then the
// confidence gate. A name that fails only degrades the report; the run
// never aborts on an individual name.
func (r *Resolver) Resolve(ctx context.Context, observed []string) (Report, error) {
	if len(observed) == 0 {
		return Report{}, ErrNoObservedNames
	}

	var report Report
	for _, raw := range observed {
		select {
		case <-ctx.Done():
			return Report{}, fmt.Errorf("resolve interrupted: %w", ctx.Err())
		default:
		}

		name := strings.TrimSpace(raw)
		target, score, method := r.bestMatch(name)

		if score < r.threshold {
			r.logger.Warn(ctx, "dropping low-confidence match",
				logger.String("observed", name),
				logger.String("best_candidate", target),
				logger.Int("score", score))
			report.Dropped = append(report.Dropped, DroppedName{
				ObservedName:  name,
				BestCandidate: target,
				Score:         score,
			})
			continue
		}

		id, ok := r.ids[target]
		if !ok {
			// Overrides may point at a name outside the roster.
			r.logger.Error(ctx, "no identifier for matched name",
				logger.String("observed", name),
				logger.String("canonical", target))
			report.LookupErrors++
			continue
		}

		report.Matches = append(report.Matches, Match{
			ObservedName:  name,
			CanonicalName: target,
			CanonicalID:   id,
			Score:         score,
			Method:        method,
		})
	}
	return report, nil
}

// bestMatch picks the canonical target for one observed name.
func (r *Resolver) bestMatch(name string) (target string, score int, method Method) {
	if canonical, ok := r.overrides[name]; ok {
		return canonical, perfectScore, MethodManual
	}

	best := -1
	// First-seen wins on ties: strict > against the ordered name slice.
	for _, candidate := range r.names {
		if s := TokenSortRatio(name, candidate); s > best {
			best, target = s, candidate
		}
	}
	return target, best, MethodFuzzy
}

// TokenSortRatio scores string similarity in [0, 100]: both names are
// lowercased, tokenized, and the tokens sorted before comparing edit
// distance, so "Smith Jane" and "jane smith" score 100.
func TokenSortRatio(a, b string) int {
	na := normalizeTokens(a)
	nb := normalizeTokens(b)
	if na == "" && nb == "" {
		return perfectScore
	}

	longest := len([]rune(na))
	if l := len([]rune(nb)); l > longest {
		longest = l
	}
	dist := levenshtein.ComputeDistance(na, nb)
	if dist >= longest {
		return 0
	}
	return int(float64(longest-dist)/float64(longest)*perfectScore + 0.5)
}

// normalizeTokens lowercases, splits on whitespace, sorts, and rejoins.
func normalizeTokens(s string) string {
	tokens := strings.Fields(strings.ToLower(s))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
