// Package bucket classifies numeric survey values into fixed label sets.
// Each scheme is a pure, total function over non-NaN input and can be used
// as an outer or inner aggregation key.
package bucket

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnknownScheme is returned by Lookup for an unregistered name.
var ErrUnknownScheme = errors.New("unknown bucketing scheme")

// Scheme is a named classification with its full, ordered label set.
type Scheme struct {
	Name   string
	Labels []string
	// Notes optionally explains each label (e.g. clinical thresholds).
	Notes    map[string]string
	classify func(float64) string
}

// Classify maps v to its label. NaN and infinities are not classified.
func (s Scheme) Classify(v float64) (string, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", false
	}
	return s.classify(v), true
}

// Scheme names.
const (
	AgeFiveBandsName  = "age-5"
	AgeDecadesName    = "age-decades"
	AgeSevenBandsName = "age-7"
	CholesterolName   = "cholesterol"
)

// AgeFiveBands: <30, 30-40, 41-50, 51-60, >60.
var AgeFiveBands = Scheme{
	Name:   AgeFiveBandsName,
	Labels: []string{"<30", "30-40", "41-50", "51-60", ">60"},
	classify: func(age float64) string {
		switch {
		case age < 30:
			return "<30"
		case age <= 40:
			return "30-40"
		case age <= 50:
			return "41-50"
		case age <= 60:
			return "51-60"
		default:
			return ">60"
		}
	},
}

// AgeDecades: uniform ten-year bands 0-9 … 80-89, then 90+.
var AgeDecades = Scheme{
	Name:     AgeDecadesName,
	Labels:   decadeLabels(),
	classify: decade,
}

// AgeSevenBands: <20, 20-29, …, 60-69, 70+.
var AgeSevenBands = Scheme{
	Name:   AgeSevenBandsName,
	Labels: []string{"<20", "20-29", "30-39", "40-49", "50-59", "60-69", "70+"},
	classify: func(age float64) string {
		switch {
		case age < 20:
			return "<20"
		case age >= 70:
			return "70+"
		default:
			lo := int(math.Floor(age/10)) * 10
			return fmt.Sprintf("%d-%d", lo, lo+9)
		}
	},
}

// Cholesterol levels in mg/dL: Low < 200, Normal 200 to 239 inclusive,
// High above 239 (so 239.5 is High).
var Cholesterol = Scheme{
	Name:   CholesterolName,
	Labels: []string{"Low", "Normal", "High"},
	Notes: map[string]string{
		"Low":    "< 200 mg/dL",
		"Normal": "200–239 mg/dL",
		"High":   "≥ 240 mg/dL",
	},
	classify: func(v float64) string {
		switch {
		case v < 200:
			return "Low"
		case v <= 239:
			return "Normal"
		default:
			return "High"
		}
	},
}

func decade(age float64) string {
	if age < 10 {
		return "0-9"
	}
	if age >= 90 {
		return "90+"
	}
	lo := int(math.Floor(age/10)) * 10
	return fmt.Sprintf("%d-%d", lo, lo+9)
}

func decadeLabels() []string {
	labels := make([]string, 0, 10)
	for lo := 0; lo < 90; lo += 10 {
		labels = append(labels, fmt.Sprintf("%d-%d", lo, lo+9))
	}
	return append(labels, "90+")
}

var registry = map[string]Scheme{
	AgeFiveBandsName:  AgeFiveBands,
	AgeDecadesName:    AgeDecades,
	AgeSevenBandsName: AgeSevenBands,
	CholesterolName:   Cholesterol,
}

// Lookup returns a registered scheme by name.
func Lookup(name string) (Scheme, error) {
	s, ok := registry[name]
	if !ok {
		return Scheme{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScheme, name, Names())
	}
	return s, nil
}

// Names lists registered schemes, sorted.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// AgeSchemes lists the schemes usable for the age chart.
func AgeSchemes() []string {
	return []string{AgeFiveBandsName, AgeDecadesName, AgeSevenBandsName}
}
