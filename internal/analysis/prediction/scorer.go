package prediction

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Alias1177/cryptosignal/models"
)

// Score runs every rule group of the profile against the feature vector.
// It is pure: the same vector always yields the same breakdown.
func Score(p *Profile, fv FeatureVector) models.ScoreBreakdown {
	breakdown := models.ScoreBreakdown{Reasons: []string{}}

	for _, g := range p.Groups {
		points, quality, reason, ok := g.evaluate(&fv)
		if !ok {
			continue
		}

		switch g.Category {
		case CategoryMomentum:
			breakdown.Momentum += points
		case CategoryTrend:
			breakdown.Trend += points
		case CategoryVolume:
			breakdown.Volume += points
		case CategoryOversoldOverbought:
			breakdown.OversoldOverbought += points
		case CategoryVolatility:
			breakdown.Volatility += points
		case CategoryNiche:
			breakdown.Niche += points
		}
		breakdown.Total += points
		breakdown.EntryQuality += quality
		breakdown.AddReason(reason)
	}

	return breakdown
}

// evaluate returns the signed points of the first matching tier
func (g Group) evaluate(fv *FeatureVector) (points, quality float64, reason string, ok bool) {
	value, known := fv.Value(g.Feature)
	if !known {
		return 0, 0, "", false
	}

	direction := 1.0
	switch {
	case g.Direction != "":
		d, _ := fv.Value(g.Direction)
		direction = sign(d)
	case g.Symmetric:
		direction = sign(value)
	}
	if direction == 0 {
		return 0, 0, "", false
	}

	compared := value
	if g.Symmetric {
		compared = value * direction
	}

	for _, t := range g.Tiers {
		if !t.matches(compared) {
			continue
		}
		return t.Points * direction, t.EntryQuality, formatReason(t.Reason, value, direction), true
	}
	return 0, 0, "", false
}

func formatReason(template string, value, direction float64) string {
	if template == "" {
		return ""
	}

	word := "bullish"
	if direction < 0 {
		word = "bearish"
	}
	r := strings.NewReplacer(
		"{direction}", word,
		"{Direction}", strings.ToUpper(word[:1])+word[1:],
	)
	reason := r.Replace(template)

	if formatVerbs(reason) == 0 {
		return strings.ReplaceAll(reason, "%%", "%")
	}
	return fmt.Sprintf(reason, value)
}

// a bare "%" followed by text such as "10% of" is not a verb
var verbPattern = regexp.MustCompile(`%%|%[+\-#0]*[0-9]*(\.[0-9]+)?[vdfFeEgG]`)

func formatVerbs(template string) int {
	n := 0
	for _, m := range verbPattern.FindAllString(template, -1) {
		if m != "%%" {
			n++
		}
	}
	return n
}
