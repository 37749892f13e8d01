package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/heartviz/internal/survey"
)

var csvRows = []string{
	"Age,Gender,Blood Pressure,Cholesterol Level,BMI,Smoking,Exercise Habits,Family Heart Disease,Heart Disease Status",
	"56,Male,153,200,24.9,Yes,High,Yes,No",
	"69,Female,146,210,25.8,No,Low,Yes,No",
	"46,Male,126,190,29.8,No,Low,No,No",
	"32,Female,122,205,24.1,Yes,High,No,Yes",
	"60,Male,166,195,20.5,Yes,Medium,No,No",
	"25,Female,152,220,28.1,No,,No,Yes",
	"78,Male,121,180,27.9,Yes,Medium,Yes,No",
	"38,Female,161,215,31.7,No,High,No,No",
	"56,Male,135,600,26.6,Yes,Low,No,Yes",
	",Female,144,,23.2,No,High,Yes,",
}

var (
	cholesterol = []float64{200, 210, 190, 205, 195, 220, 180, 215, 600}
	bloodYes    = []float64{122, 152, 135}
)

func loadFixture(t *testing.T) *survey.Dataset {
	t.Helper()
	ds, err := survey.LoadCSV(strings.NewReader(strings.Join(csvRows, "\n")), "survey.csv", survey.Options{})
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	return ds
}

func TestProfileAndMarkdown(t *testing.T) {
	rep := Profile(loadFixture(t), DefaultOptions())

	if rep.Rows != 10 || len(rep.Cols) != len(survey.RequiredColumns) {
		t.Fatalf("rows=%d cols=%d", rep.Rows, len(rep.Cols))
	}

	chol := columnByName(t, rep, survey.ColCholesterol)
	if chol.Kind != "numeric" || chol.Missing != 1 {
		t.Fatalf("cholesterol kind=%s missing=%d", chol.Kind, chol.Missing)
	}
	checkStats(t, chol, cholesterol)
	if !almostEqual(chol.Median, 205, 1e-9) {
		t.Fatalf("median = %f, want 205", chol.Median)
	}
	if chol.OutliersCount != 1 {
		t.Fatalf("outliers = %d, want 1", chol.OutliersCount)
	}

	gender := columnByName(t, rep, survey.ColGender)
	if gender.Kind != "categorical" || gender.Unique != 2 {
		t.Fatalf("gender kind=%s unique=%d", gender.Kind, gender.Unique)
	}
	if gender.TopValues[0] != (CategoryCount{Value: "Female", Count: 5}) {
		t.Fatalf("top gender = %+v", gender.TopValues[0])
	}
	exercise := columnByName(t, rep, survey.ColExerciseHabits)
	if exercise.Missing != 1 {
		t.Fatalf("exercise missing = %d, want 1", exercise.Missing)
	}

	if len(rep.Groups) != 2 || rep.Groups[0].Key != "No" || rep.Groups[1].Key != "Yes" {
		t.Fatalf("groups = %+v", rep.Groups)
	}
	checkNumSummary(t, rep.Groups[1].Metrics[survey.ColBloodPressure], bloodYes)

	if rep.Corr == nil || len(rep.Corr.Columns) != len(survey.NumericColumns) {
		t.Fatalf("missing correlation matrix")
	}
	for i := range rep.Corr.Columns {
		if rep.Corr.Values[i][i] != 1 {
			t.Fatalf("diagonal not 1 at %d", i)
		}
		for j := range rep.Corr.Columns {
			if v := rep.Corr.Values[i][j]; !math.IsNaN(v) && (v < -1.000001 || v > 1.000001) {
				t.Fatalf("r out of range: %f", v)
			}
		}
	}

	md := rep.Markdown()
	for _, want := range []string{
		"[DATASET SUMMARY]",
		"File: survey.csv",
		"Rows: 10",
		"- Cholesterol Level: numeric (non-null 9, missing 10.0%)",
		"outliers: 1 above |z|>3.5",
		"- Gender: categorical",
		"Female(5)",
		"[GROUP-BY SUMMARY] Heart Disease Status",
		"- Yes (n=3)",
		"[CORRELATIONS]",
		"Age ~ Blood Pressure",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestProfileWithoutGroupsOrCorrelations(t *testing.T) {
	rep := Profile(loadFixture(t), Options{})
	if rep.Groups != nil || rep.Corr != nil {
		t.Fatalf("unexpected groups or correlations")
	}
	md := rep.Markdown()
	if strings.Contains(md, "[GROUP-BY SUMMARY]") || strings.Contains(md, "[CORRELATIONS]") {
		t.Fatalf("unexpected sections:\n%s", md)
	}
	if strings.Contains(md, "outliers") {
		t.Fatalf("outliers reported while disabled:\n%s", md)
	}
}

func TestProfileEmpty(t *testing.T) {
	rep := Profile(&survey.Dataset{Name: "empty.csv", Warnings: []string{"no rows"}}, DefaultOptions())
	md := rep.Markdown()
	if !strings.Contains(md, "Rows: 0") || !strings.Contains(md, "[NOTES]") || !strings.Contains(md, "- no rows") {
		t.Fatalf("unexpected markdown:\n%s", md)
	}
	if len(rep.Groups) != 0 {
		t.Fatalf("groups on empty dataset")
	}
}

func columnByName(t *testing.T, rep *Report, name string) ColumnSummary {
	t.Helper()
	for _, c := range rep.Cols {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("column %q not found", name)
	return ColumnSummary{}
}

func checkStats(t *testing.T, col ColumnSummary, vals []float64) {
	t.Helper()
	if col.NonNull != len(vals) {
		t.Fatalf("non-null = %d, want %d", col.NonNull, len(vals))
	}
	if !almostEqual(col.Min, minFloat(vals), 1e-6) {
		t.Fatalf("min = %f, want %f", col.Min, minFloat(vals))
	}
	if !almostEqual(col.Max, maxFloat(vals), 1e-6) {
		t.Fatalf("max = %f, want %f", col.Max, maxFloat(vals))
	}
	if !almostEqual(col.Mean, mean(vals), 1e-6) {
		t.Fatalf("mean = %f, want %f", col.Mean, mean(vals))
	}
	if !almostEqual(col.Std, sampleStd(vals), 1e-6) {
		t.Fatalf("std = %f, want %f", col.Std, sampleStd(vals))
	}
}

func checkNumSummary(t *testing.T, s NumSummary, vals []float64) {
	t.Helper()
	if s.Count != len(vals) {
		t.Fatalf("summary count = %d, want %d", s.Count, len(vals))
	}
	if !almostEqual(s.Min, minFloat(vals), 1e-6) {
		t.Fatalf("summary min = %f, want %f", s.Min, minFloat(vals))
	}
	if !almostEqual(s.Max, maxFloat(vals), 1e-6) {
		t.Fatalf("summary max = %f, want %f", s.Max, maxFloat(vals))
	}
	if !almostEqual(s.Mean, mean(vals), 1e-6) {
		t.Fatalf("summary mean = %f, want %f", s.Mean, mean(vals))
	}
}

func mean(vals []float64) float64 {
	s := 0.0
	for _, v := range vals {
		s += v
	}
	return s / float64(len(vals))
}

func sampleStd(vals []float64) float64 {
	m := mean(vals)
	s := 0.0
	for _, v := range vals {
		s += (v - m) * (v - m)
	}
	return math.Sqrt(s / float64(len(vals)-1))
}

func minFloat(vals []float64) float64 {
	m := math.Inf(1)
	for _, v := range vals {
		if v < m {
			m = v
		}
	}
	return m
}

func maxFloat(vals []float64) float64 {
	m := math.Inf(-1)
	for _, v := range vals {
		if v > m {
			m = v
		}
	}
	return m
}

func almostEqual(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestProfileGroupByExtraColumn(t *testing.T) {
	src := strings.Join([]string{
		csvRows[0] + ",Stress Level",
		csvRows[1] + ",High",
		csvRows[2] + ",Low",
		csvRows[3] + ",High",
	}, "\n")
	ds, err := survey.LoadCSV(strings.NewReader(src), "survey.csv", survey.Options{})
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	rep := Profile(ds, Options{GroupBy: "Stress Level"})
	if len(rep.Groups) != 2 || rep.Groups[0].Key != "High" || rep.Groups[0].Size != 2 {
		t.Fatalf("groups = %+v", rep.Groups)
	}
	if !strings.Contains(rep.Markdown(), "[GROUP-BY SUMMARY] Stress Level") {
		t.Fatalf("missing group-by section:\n%s", rep.Markdown())
	}
}
