package prediction

import "github.com/Alias1177/cryptosignal/models"

// Classify maps the total score onto the seven recommendation states
func Classify(total float64, t Thresholds) models.RecommendationClass {
	switch {
	case total >= t.Strong:
		return models.StrongLong
	case total >= t.Normal:
		return models.Long
	case total >= t.Weak:
		return models.WeakLong
	case total <= -t.Strong:
		return models.StrongShort
	case total <= -t.Normal:
		return models.Short
	case total <= -t.Weak:
		return models.WeakShort
	}
	return models.Hold
}
