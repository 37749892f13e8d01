package chart

import (
	"fmt"

	"github.com/KaramelBytes/heartviz/internal/aggregate"
	"github.com/KaramelBytes/heartviz/internal/bucket"
	"github.com/KaramelBytes/heartviz/internal/survey"
)

// Chart ids.
const (
	AgeStatus         = "age-status"
	GenderStatus      = "gender-status"
	SmokingStatus     = "smoking-status"
	ExerciseStatus    = "exercise-status"
	CholesterolBox    = "cholesterol-box"
	BMIBox            = "bmi-box"
	FamilyStatus      = "family-status"
	CholesterolGender = "cholesterol-gender"
)

var (
	yesNo        = []string{"Yes", "No"}
	statusColors = []string{"#4daf4a", "#e41a1c"}
	boxColors    = []string{"#ff7f0e", "#1f77b4"}
)

// Options parameterizes the catalog.
type Options struct {
	// AgeScheme names the bucket scheme of the age chart; empty means
	// bucket.AgeFiveBandsName.
	AgeScheme string
}

// category keys records by a trimmed text column, rejecting empty values.
func category(col string) aggregate.KeyFunc[survey.Record] {
	return func(r survey.Record) (string, bool) {
		v := r.Categorical(col)
		return v, v != ""
	}
}

// classify keys records by bucketing a numeric column.
func classify(s bucket.Scheme, col string) aggregate.KeyFunc[survey.Record] {
	return func(r survey.Record) (string, bool) {
		return s.Classify(r.Numeric(col))
	}
}

func numeric(col string) func(survey.Record) float64 {
	return func(r survey.Record) float64 { return r.Numeric(col) }
}

func notes(s bucket.Scheme) []Note {
	out := make([]Note, 0, len(s.Notes))
	for _, l := range s.Labels {
		if text, ok := s.Notes[l]; ok {
			out = append(out, Note{Label: l, Text: text})
		}
	}
	return out
}

// Catalog returns every chart in dashboard order.
func Catalog(opt Options) ([]Spec, error) {
	name := opt.AgeScheme
	if name == "" {
		name = bucket.AgeFiveBandsName
	}
	age, err := bucket.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !isAgeScheme(name) {
		return nil, fmt.Errorf("%w: %q is not an age scheme (use one of %v)", bucket.ErrUnknownScheme, name, bucket.AgeSchemes())
	}
	status := category(survey.ColStatus)

	return []Spec{
		{
			ID:           AgeStatus,
			Title:        "Heart Disease Status by Age Group",
			XLabel:       "Age Group",
			YLabel:       "Records",
			Kind:         GroupedBar,
			Outer:        classify(age, survey.ColAge),
			Inner:        status,
			Categories:   yesNo,
			Order:        age.Labels,
			Colors:       statusColors,
			Padding:      0.4,
			InnerPadding: 0.05,
			LegendTitle:  "Heart Disease:",
		},
		{
			ID:           GenderStatus,
			Title:        "Heart Disease Status by Gender",
			XLabel:       "Gender",
			YLabel:       "Records",
			Kind:         GroupedBar,
			Outer:        category(survey.ColGender),
			Inner:        status,
			Categories:   yesNo,
			Order:        []string{"Male", "Female"},
			Colors:       statusColors,
			Padding:      0.2,
			InnerPadding: 0.05,
			LegendTitle:  "Heart Disease:",
		},
		{
			ID:           SmokingStatus,
			Title:        "Heart Disease Status by Smoking",
			XLabel:       "Smoking Status",
			YLabel:       "Records",
			Kind:         GroupedBar,
			Outer:        category(survey.ColSmoking),
			Inner:        status,
			Categories:   yesNo,
			Colors:       statusColors,
			Padding:      0.2,
			InnerPadding: 0.05,
			LegendTitle:  "Heart Disease:",
		},
		{
			ID:           ExerciseStatus,
			Title:        "Heart Disease Status by Exercise Habits",
			XLabel:       "Exercise Habits",
			YLabel:       "Number of Records",
			Kind:         GroupedBar,
			Outer:        category(survey.ColExerciseHabits),
			Inner:        status,
			Categories:   []string{"No", "Yes"},
			Colors:       []string{"#4caf50", "#f44336"},
			Headroom:     1.1,
			Padding:      0.2,
			InnerPadding: 0.05,
			LegendTitle:  "Heart Disease:",
		},
		{
			ID:          CholesterolBox,
			Title:       "Cholesterol Level by Heart Disease Status",
			XLabel:      "Heart Disease Status",
			YLabel:      "Cholesterol Level",
			Kind:        BoxPlot,
			Outer:       status,
			Order:       yesNo,
			Value:       numeric(survey.ColCholesterol),
			Colors:      boxColors,
			Padding:     0.4,
			LegendTitle: "Heart Disease:",
		},
		{
			ID:          BMIBox,
			Title:       "BMI by Heart Disease Status",
			XLabel:      "Heart Disease Status",
			YLabel:      "BMI",
			Kind:        BoxPlot,
			Outer:       status,
			Order:       yesNo,
			Value:       numeric(survey.ColBMI),
			Colors:      boxColors,
			Padding:     0.4,
			LegendTitle: "Heart Disease:",
		},
		{
			ID:           FamilyStatus,
			Title:        "Heart Disease Status by Family History",
			XLabel:       "Family History",
			YLabel:       "Records",
			Kind:         GroupedBar,
			Outer:        category(survey.ColFamilyHeartDisease),
			Inner:        status,
			Categories:   yesNo,
			Order:        yesNo,
			Colors:       statusColors,
			Padding:      0.2,
			InnerPadding: 0.05,
			LegendTitle:  "Heart Disease:",
		},
		{
			ID:           CholesterolGender,
			Title:        "Cholesterol Level by Gender",
			XLabel:       "Cholesterol Level",
			YLabel:       "Number of Individuals",
			Kind:         GroupedBar,
			Outer:        classify(bucket.Cholesterol, survey.ColCholesterol),
			Inner:        category(survey.ColGender),
			Categories:   []string{"Male", "Female"},
			Order:        bucket.Cholesterol.Labels,
			Colors:       []string{"#1f77b4", "#e754b0"},
			Padding:      0.2,
			InnerPadding: 0.05,
			LegendTitle:  "Gender:",
			Notes:        notes(bucket.Cholesterol),
		},
	}, nil
}

func isAgeScheme(name string) bool {
	for _, n := range bucket.AgeSchemes() {
		if n == name {
			return true
		}
	}
	return false
}

// Find returns the catalog entry with the given id.
func Find(id string, opt Options) (Spec, error) {
	specs, err := Catalog(opt)
	if err != nil {
		return Spec{}, err
	}
	for _, s := range specs {
		if s.ID == id {
			return s, nil
		}
	}
	return Spec{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownChart, id, IDs())
}

// Select returns the catalog entries for ids, in the order given. An empty
// ids list selects the whole catalog.
func Select(ids []string, opt Options) ([]Spec, error) {
	specs, err := Catalog(opt)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return specs, nil
	}
	byID := make(map[string]Spec, len(specs))
	for _, s := range specs {
		byID[s.ID] = s
	}
	out := make([]Spec, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownChart, id, IDs())
		}
		out = append(out, s)
	}
	return out, nil
}

// IDs lists the catalog ids in dashboard order.
func IDs() []string {
	return []string{
		AgeStatus, GenderStatus, SmokingStatus, ExerciseStatus,
		CholesterolBox, BMIBox, FamilyStatus, CholesterolGender,
	}
}
