package survey

import (
	"math"
	"strings"
)

// Canonical column names of the heart-disease survey.
const (
	ColAge                = "Age"
	ColGender             = "Gender"
	ColBloodPressure      = "Blood Pressure"
	ColCholesterol        = "Cholesterol Level"
	ColBMI                = "BMI"
	ColSmoking            = "Smoking"
	ColExerciseHabits     = "Exercise Habits"
	ColFamilyHeartDisease = "Family Heart Disease"
	ColStatus             = "Heart Disease Status"
)

// RequiredColumns must be present in the header of every survey file.
var RequiredColumns = []string{
	ColAge,
	ColGender,
	ColBloodPressure,
	ColCholesterol,
	ColBMI,
	ColSmoking,
	ColExerciseHabits,
	ColFamilyHeartDisease,
	ColStatus,
}

// NumericColumns lists the required columns coerced to numbers.
var NumericColumns = []string{ColAge, ColBloodPressure, ColCholesterol, ColBMI}

// Record is one survey respondent after coercion. Numeric fields hold NaN
// when the source cell was missing or unparsable; categorical fields are
// trimmed and empty when missing.
type Record struct {
	Age           float64
	BloodPressure float64
	Cholesterol   float64
	BMI           float64

	Gender             string
	Smoking            string
	ExerciseHabits     string
	FamilyHeartDisease string
	Status             string

	// extra holds the remaining columns keyed by trimmed header name.
	extra map[string]string
}

// Dataset is a loaded survey file.
type Dataset struct {
	Name     string
	Rows     int
	Records  []Record
	Warnings []string
}

// Numeric returns the numeric value of a canonical column, or NaN.
func (r Record) Numeric(col string) float64 {
	switch col {
	case ColAge:
		return r.Age
	case ColBloodPressure:
		return r.BloodPressure
	case ColCholesterol:
		return r.Cholesterol
	case ColBMI:
		return r.BMI
	}
	if v, ok := r.Field(col); ok {
		return ParseNumber(v)
	}
	return math.NaN()
}

// Categorical returns the trimmed text of a column. Known numeric columns
// return "" since they are not kept as text; any other column is looked up
// with Field.
func (r Record) Categorical(col string) string {
	switch col {
	case ColGender:
		return r.Gender
	case ColSmoking:
		return r.Smoking
	case ColExerciseHabits:
		return r.ExerciseHabits
	case ColFamilyHeartDisease:
		return r.FamilyHeartDisease
	case ColStatus:
		return r.Status
	}
	v, _ := r.Field(col)
	return v
}

// Field returns a non-canonical column value and whether it was present.
func (r Record) Field(name string) (string, bool) {
	v, ok := r.extra[strings.TrimSpace(name)]
	return v, ok
}

// Valid reports whether v is a usable numeric value.
func Valid(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
