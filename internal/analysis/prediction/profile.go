package prediction

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/Alias1177/cryptosignal/models"
	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var builtinProfiles []byte

// Rule categories, one per ScoreBreakdown sub-score
const (
	CategoryMomentum           = "momentum"
	CategoryTrend              = "trend"
	CategoryVolume             = "volume"
	CategoryOversoldOverbought = "oversold_overbought"
	CategoryVolatility         = "volatility"
	CategoryNiche              = "niche"
)

// Tier comparison operators
const (
	OpLT      = "lt"
	OpLTE     = "lte"
	OpGT      = "gt"
	OpGTE     = "gte"
	OpBetween = "between"
	OpEQ      = "eq"
	OpAny     = "any"
)

// Thresholds split the total score into the seven classes
type Thresholds struct {
	Strong float64 `yaml:"strong"`
	Normal float64 `yaml:"normal"`
	Weak   float64 `yaml:"weak"`
}

// Tier is one if/elif branch of a rule group
type Tier struct {
	Op           string  `yaml:"op"`
	Value        float64 `yaml:"value"`
	Upper        float64 `yaml:"upper"`
	Points       float64 `yaml:"points"`
	EntryQuality float64 `yaml:"entry_quality"`
	Reason       string  `yaml:"reason"`
}

// Group scores a single feature. The first matching tier wins.
//
// Direction names a feature whose sign is applied to the points; the group is skipped
// while it reads 0. Symmetric groups compare the absolute feature value and take the
// sign from the feature itself.
type Group struct {
	Name      string `yaml:"name"`
	Category  string `yaml:"category"`
	Feature   string `yaml:"feature"`
	Direction string `yaml:"direction"`
	Symmetric bool   `yaml:"symmetric"`
	Tiers     []Tier `yaml:"tiers"`
}

// Profile is a complete scoring model
type Profile struct {
	Name             string           `yaml:"name"`
	MaxScore         float64          `yaml:"max_score"`
	Thresholds       Thresholds       `yaml:"thresholds"`
	PrimaryTimeframe models.Timeframe `yaml:"primary_timeframe"`
	Groups           []Group          `yaml:"groups"`
}

type profileFile struct {
	Profiles []*Profile `yaml:"profiles"`
}

// Profiles indexes profiles by name
type Profiles map[string]*Profile

// LoadProfiles reads the built-in profiles and, when path is set, merges the file on top
func LoadProfiles(path string) (Profiles, error) {
	profiles, err := ParseProfiles(builtinProfiles)
	if err != nil {
		return nil, fmt.Errorf("builtin profiles: %w", err)
	}
	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles %s: %w", path, err)
	}
	custom, err := ParseProfiles(data)
	if err != nil {
		return nil, fmt.Errorf("profiles %s: %w", path, err)
	}
	for name, p := range custom {
		profiles[name] = p
	}
	return profiles, nil
}

// ParseProfiles decodes and validates a YAML profile document
func ParseProfiles(data []byte) (Profiles, error) {
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: decode profiles: %v", models.ErrConfiguration, err)
	}

	profiles := make(Profiles, len(file.Profiles))
	for _, p := range file.Profiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := profiles[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate profile %q", models.ErrConfiguration, p.Name)
		}
		profiles[p.Name] = p
	}
	return profiles, nil
}

// Get looks up a profile by name
func (ps Profiles) Get(name string) (*Profile, error) {
	p, ok := ps[name]
	if !ok {
		names := make([]string, 0, len(ps))
		for n := range ps {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("%w: unknown scoring profile %q (have %v)", models.ErrConfiguration, name, names)
	}
	return p, nil
}

// Validate checks that max score and thresholds are consistent and every rule resolves
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: profile without name", models.ErrConfiguration)
	}
	if p.MaxScore <= 0 {
		return fmt.Errorf("%w: profile %s: max_score must be positive", models.ErrConfiguration, p.Name)
	}
	t := p.Thresholds
	if !(t.Strong >= t.Normal && t.Normal >= t.Weak && t.Weak > 0) {
		return fmt.Errorf("%w: profile %s: thresholds must satisfy strong >= normal >= weak > 0", models.ErrConfiguration, p.Name)
	}
	if t.Strong > p.MaxScore {
		return fmt.Errorf("%w: profile %s: strong threshold exceeds max_score", models.ErrConfiguration, p.Name)
	}
	if p.PrimaryTimeframe == "" {
		p.PrimaryTimeframe = models.Timeframe1h
	}
	if p.PrimaryTimeframe.Duration() == 0 || p.PrimaryTimeframe == models.Timeframe24h {
		return fmt.Errorf("%w: profile %s: unsupported primary timeframe %q", models.ErrConfiguration, p.Name, p.PrimaryTimeframe)
	}

	for _, g := range p.Groups {
		if err := g.validate(); err != nil {
			return fmt.Errorf("%w: profile %s: group %s: %v", models.ErrConfiguration, p.Name, g.Name, err)
		}
	}
	return nil
}

func (g Group) validate() error {
	switch g.Category {
	case CategoryMomentum, CategoryTrend, CategoryVolume, CategoryOversoldOverbought, CategoryVolatility, CategoryNiche:
	default:
		return fmt.Errorf("unknown category %q", g.Category)
	}
	if _, ok := featureAccessors[g.Feature]; !ok {
		return fmt.Errorf("unknown feature %q", g.Feature)
	}
	if g.Direction != "" {
		if _, ok := featureAccessors[g.Direction]; !ok {
			return fmt.Errorf("unknown direction feature %q", g.Direction)
		}
		if g.Symmetric {
			return fmt.Errorf("direction and symmetric are exclusive")
		}
	}
	if len(g.Tiers) == 0 {
		return fmt.Errorf("no tiers")
	}
	for i, t := range g.Tiers {
		switch t.Op {
		case OpLT, OpLTE, OpGT, OpGTE, OpEQ, OpAny:
		case OpBetween:
			if t.Upper < t.Value {
				return fmt.Errorf("tier %d: upper below value", i)
			}
		default:
			return fmt.Errorf("tier %d: unknown op %q", i, t.Op)
		}
		if n := formatVerbs(t.Reason); n > 1 {
			return fmt.Errorf("tier %d: reason has %d format verbs, want at most 1", i, n)
		}
	}
	return nil
}

func (t Tier) matches(v float64) bool {
	switch t.Op {
	case OpLT:
		return v < t.Value
	case OpLTE:
		return v <= t.Value
	case OpGT:
		return v > t.Value
	case OpGTE:
		return v >= t.Value
	case OpBetween:
		return v >= t.Value && v <= t.Upper
	case OpEQ:
		return v == t.Value
	case OpAny:
		return true
	}
	return false
}
