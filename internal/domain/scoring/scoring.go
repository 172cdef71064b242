// Package scoring defines fantasy-point scoring rulesets and the weighted
// target computation applied to every game record.
package scoring

import (
	"context"
	"fmt"
	"sort"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/fastbreak/internal/domain/model"
)

// DefaultSystem is the scoring system used when none is configured.
const DefaultSystem = "league-default"

// builtinSystems carries the rulesets shipped with the binary. A rulesets
// file may add systems or override these by name.
var builtinSystems = map[string]map[string]float64{
	DefaultSystem: {
		"PTS":  1.0,
		"REB":  1.2,
		"AST":  1.5,
		"STL":  3.0,
		"BLK":  3.0,
		"TOV":  -1.0,
		"FG3M": 0.5,
	},
}

// Weights maps recognized box-score categories to their point multipliers.
// Categories absent from the ruleset contribute zero. Immutable once built.
type Weights struct {
	values map[model.Category]float64
}

// NewWeights builds Weights from raw category-name keys. Unrecognized keys
// are rejected so a misspelled category never silently drops its weight.
func NewWeights(raw map[string]float64) (Weights, error) {
	values := make(map[model.Category]float64, len(raw))
	var unknown []string
	for name, weight := range raw {
		if !model.KnownCategory(name) {
			unknown = append(unknown, name)
			continue
		}
		values[model.Category(name)] = weight
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Weights{}, fmt.Errorf("%w: %v", ErrUnknownCategory, unknown)
	}
	return Weights{values: values}, nil
}

// Weight returns the multiplier for a category, zero when unweighted.
func (w Weights) Weight(c model.Category) float64 {
	return w.values[c]
}

// FantasyPoints computes the scalar target for one record: the weighted sum
// over the closed category enumeration.
func (w Weights) FantasyPoints(rec model.GameRecord) float64 {
	var total float64
	for _, c := range model.Categories {
		v, ok := rec.Box.Value(c)
		if !ok {
			continue
		}
		total += v * w.Weight(c)
	}
	return total
}

// LoadSystem resolves a scoring system by name. Systems come from the
// builtins, optionally layered under a YAML rulesets file mapping system
// name to category weights. A missing rulesets file or an unknown system
// name is a broken precondition for the whole run, so both surface as
// errors carrying the offending path or name.
func LoadSystem(ctx context.Context, rulesetsPath, name string) (Weights, error) {
	if name == "" {
		name = DefaultSystem
	}

	raw, ok := builtinSystems[name]
	if rulesetsPath != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(rulesetsPath), yaml.Parser()); err != nil {
			return Weights{}, fmt.Errorf("%w: %s: %w", ErrRulesetsUnreadable, rulesetsPath, err)
		}
		if k.Exists(name) {
			fromFile := map[string]float64{}
			if err := k.Unmarshal(name, &fromFile); err != nil {
				return Weights{}, fmt.Errorf("%w: %s: %w", ErrRulesetsUnreadable, rulesetsPath, err)
			}
			raw, ok = fromFile, true
		}
	}
	if !ok {
		return Weights{}, fmt.Errorf("%w: %q", ErrUnknownSystem, name)
	}
	return NewWeights(raw)
}
