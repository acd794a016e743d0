// Package advisory derives crop and fruit planting suggestions from a forecast.
package advisory

import "github.com/fakhrymubarak/cropcast/internal/model"

// Range is an inclusive interval. A nil bound is open on that side.
type Range struct {
	Min *float64
	Max *float64
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

func atLeast(lo float64) Range { return Range{Min: &lo} }

func atMost(hi float64) Range { return Range{Max: &hi} }

func between(lo, hi float64) Range { return Range{Min: &lo, Max: &hi} }

// Rule suggests Name when both the average temperature and the total rainfall fall in range.
type Rule struct {
	Name   string
	Reason string
	Temp   Range
	Rain   Range
}

// Matches reports whether the rule holds for the given statistics.
func (r Rule) Matches(avgTemp, totalRain float64) bool {
	return r.Temp.Contains(avgTemp) && r.Rain.Contains(totalRain)
}

// NoRecommendation is the single entry returned when no rule matches.
var NoRecommendation = model.Recommendation{
	Name:   "No strong recommendation",
	Reason: "Weather is not strongly suitable for common crops or fruits.",
}

// DefaultRules is the ordered rule table: crops first, then fruits.
var DefaultRules = []Rule{
	{Name: "Rice 🌾", Reason: "Hot temperature + heavy rainfall supports rice growth.", Temp: atLeast(24), Rain: atLeast(150)},
	{Name: "Corn 🌽", Reason: "Warm climate and moderate rainfall.", Temp: between(20, 32), Rain: atLeast(60)},
	{Name: "Wheat 🌾", Reason: "Mild temperature and low rainfall.", Temp: between(10, 25), Rain: atMost(60)},
	{Name: "Potato 🥔", Reason: "Cool temperature + moderate rainfall.", Temp: between(15, 20), Rain: between(50, 100)},
	{Name: "Sunflower 🌻", Reason: "Can tolerate heat and requires low–medium rain.", Temp: between(20, 30), Rain: between(30, 60)},
	{Name: "Mango 🥭", Reason: "Thrives in hot temperature with good rainfall.", Temp: between(20, 35), Rain: atLeast(100)},
	{Name: "Banana 🍌", Reason: "Prefers warm temperature and humid climate.", Temp: between(15, 25), Rain: atLeast(70)},
	{Name: "Apple 🍎", Reason: "Cool temperature and low rainfall.", Temp: between(10, 20), Rain: atMost(50)},
	{Name: "Orange 🍊", Reason: "Warm climate with moderate rainfall.", Temp: between(18, 28), Rain: between(50, 120)},
}

// Evaluate tests every rule and returns the matches in table order,
// or exactly NoRecommendation when nothing matches.
func Evaluate(rules []Rule, avgTemp, totalRain float64) []model.Recommendation {
	var recs []model.Recommendation
	for _, r := range rules {
		if r.Matches(avgTemp, totalRain) {
			recs = append(recs, model.Recommendation{Name: r.Name, Reason: r.Reason})
		}
	}
	if len(recs) == 0 {
		return []model.Recommendation{NoRecommendation}
	}
	return recs
}
