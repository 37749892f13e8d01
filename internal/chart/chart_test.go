package chart

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/heartviz/internal/bucket"
	"github.com/KaramelBytes/heartviz/internal/survey"
)

func sample() []survey.Record {
	return []survey.Record{
		{Age: 25, Gender: "Male", Cholesterol: 150, BMI: 22, Smoking: "No", ExerciseHabits: "High", FamilyHeartDisease: "No", Status: "No"},
		{Age: 45, Gender: "Female", Cholesterol: 210, BMI: 27, Smoking: "Yes", ExerciseHabits: "Low", FamilyHeartDisease: "Yes", Status: "Yes"},
		{Age: 67, Gender: "Male", Cholesterol: 250, BMI: 31, Smoking: "Yes", ExerciseHabits: "", FamilyHeartDisease: "Yes", Status: "Yes"},
		{Age: math.NaN(), Gender: "Female", Cholesterol: math.NaN(), BMI: 24, Smoking: "No", ExerciseHabits: "Medium", FamilyHeartDisease: "No", Status: "No"},
	}
}

func TestCatalog_Default(t *testing.T) {
	specs, err := Catalog(Options{})
	require.NoError(t, err)
	ids := make([]string, len(specs))
	for i, s := range specs {
		ids[i] = s.ID
		assert.NotEmpty(t, s.Title, s.ID)
		assert.NotNil(t, s.Outer, s.ID)
	}
	assert.Equal(t, IDs(), ids)
	assert.Equal(t, bucket.AgeFiveBands.Labels, specs[0].Order)
}

func TestCatalog_AgeScheme(t *testing.T) {
	specs, err := Catalog(Options{AgeScheme: bucket.AgeDecadesName})
	require.NoError(t, err)
	assert.Equal(t, bucket.AgeDecades.Labels, specs[0].Order)

	_, err = Catalog(Options{AgeScheme: "nope"})
	assert.True(t, errors.Is(err, bucket.ErrUnknownScheme))
	_, err = Catalog(Options{AgeScheme: bucket.CholesterolName})
	assert.True(t, errors.Is(err, bucket.ErrUnknownScheme))
}

func TestFindAndSelect(t *testing.T) {
	s, err := Find(BMIBox, Options{})
	require.NoError(t, err)
	assert.Equal(t, BoxPlot, s.Kind)

	_, err = Find("pie", Options{})
	assert.True(t, errors.Is(err, ErrUnknownChart))

	got, err := Select([]string{FamilyStatus, AgeStatus}, Options{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, FamilyStatus, got[0].ID)
	assert.Equal(t, AgeStatus, got[1].ID)

	_, err = Select([]string{"pie"}, Options{})
	assert.True(t, errors.Is(err, ErrUnknownChart))
}

func TestBuild_GenderStatus(t *testing.T) {
	s, _ := Find(GenderStatus, Options{})
	d, err := Build(s, sample())
	require.NoError(t, err)
	assert.Equal(t, []string{"Male", "Female"}, d.Keys)
	assert.Equal(t, []string{"Yes", "No"}, d.Categories)

	assert.Equal(t, 1, countOf(t, d, "Male", "Yes"))
	assert.Equal(t, 1, countOf(t, d, "Female", "No"))
	assert.Equal(t, 4, d.Included)
	assert.Equal(t, 0, d.Excluded)
	assert.Equal(t, 1.0, d.YMax)
}

func TestBuild_AgeExcludesMissing(t *testing.T) {
	s, _ := Find(AgeStatus, Options{})
	d, err := Build(s, sample())
	require.NoError(t, err)
	assert.Equal(t, bucket.AgeFiveBands.Labels, d.Keys)
	assert.Equal(t, 3, d.Included)
	assert.Equal(t, 1, d.Excluded)
	assert.Equal(t, 0, countOf(t, d, "30-40", "Yes"))
}

func TestBuild_CholesterolGender(t *testing.T) {
	s, _ := Find(CholesterolGender, Options{})
	d, err := Build(s, sample())
	require.NoError(t, err)
	assert.Equal(t, []string{"Low", "Normal", "High"}, d.Keys)
	for _, r := range d.Counts.Rows {
		assert.Len(t, r.Counts, 2)
		assert.Equal(t, 1, r.Total, r.Key)
	}
	assert.Len(t, s.Notes, 3)
}

func TestBuild_ExerciseHeadroom(t *testing.T) {
	s, _ := Find(ExerciseStatus, Options{})
	d, err := Build(s, sample())
	require.NoError(t, err)
	assert.Equal(t, []string{"High", "Low", "Medium"}, d.Keys)
	assert.Equal(t, 1, d.Excluded)
	assert.InDelta(t, 1.1, d.YMax, 1e-9)
}

func TestBuild_BoxPlot(t *testing.T) {
	s, _ := Find(CholesterolBox, Options{})
	d, err := Build(s, sample())
	require.NoError(t, err)
	require.NotNil(t, d.Summary)
	assert.Equal(t, []string{"Yes", "No"}, d.Keys)
	assert.Equal(t, 2, d.Summary.Rows[0].Summary.N)
	assert.Equal(t, 1, d.Summary.Rows[1].Summary.N)
	assert.Equal(t, 250.0, d.YMax)
	assert.Equal(t, 1, d.Excluded)
}

func TestBuild_Invalid(t *testing.T) {
	_, err := Build(Spec{ID: "x"}, nil)
	assert.Error(t, err)
	_, err = Build(Spec{ID: "x", Kind: BoxPlot, Outer: category(survey.ColStatus)}, nil)
	assert.Error(t, err)
}

func TestLayout_Geometry(t *testing.T) {
	s, _ := Find(GenderStatus, Options{})
	d, _ := Build(s, sample())
	th := DefaultTheme()
	l := d.Layout(th)
	assert.InDelta(t, float64(th.Width-th.MarginLeft-th.MarginRight), l.Width, 1e-9)
	ticks := l.Y.Ticks(th.MaxTicks)
	require.NotEmpty(t, ticks)
	assert.Equal(t, 0.0, ticks[0])
	assert.InDelta(t, 1.0, ticks[len(ticks)-1], 1e-9)
	assert.InDelta(t, l.Height, l.Y.Map(0), 1e-9)
	assert.InDelta(t, 0, l.Y.Map(ticks[len(ticks)-1]), 1e-9)
	assert.InDelta(t, l.X.Bandwidth(), l.Inner.Step()*(2-s.InnerPadding), 1e-9)
	assert.Equal(t, "#4daf4a", l.Color.Color("Yes"))
}

func TestRender_Bars(t *testing.T) {
	s, _ := Find(GenderStatus, Options{})
	d, _ := Build(s, sample())
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, d, DefaultTheme()))
	out := buf.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<?xml"))
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "</svg>")
	assert.Contains(t, out, "<title>")
	assert.Contains(t, out, `fill="freeze"`)
	assert.Contains(t, out, "#e41a1c")
	assert.Contains(t, out, "Heart Disease:")
	assert.NotContains(t, out, "no data")
}

func TestRender_BoxAndNotes(t *testing.T) {
	s, _ := Find(BMIBox, Options{})
	d, _ := Build(s, sample())
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, d, DefaultTheme()))
	assert.Contains(t, buf.String(), "Median: ")

	s, _ = Find(CholesterolGender, Options{})
	d, _ = Build(s, sample())
	buf.Reset()
	require.NoError(t, Render(&buf, d, DefaultTheme()))
	assert.Contains(t, buf.String(), "200–239 mg/dL")
}

func TestRender_EmptyAndStatic(t *testing.T) {
	s, _ := Find(SmokingStatus, Options{})
	d, err := Build(s, nil)
	require.NoError(t, err)
	assert.True(t, d.Empty())

	th := DefaultTheme()
	th.Animation = 0
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, d, th))
	assert.Contains(t, buf.String(), "no data")
	assert.NotContains(t, buf.String(), "<animate")
}

func TestMarkdown(t *testing.T) {
	s, _ := Find(GenderStatus, Options{})
	d, _ := Build(s, sample())
	md := d.Markdown()
	assert.Contains(t, md, "| Gender | Yes | No | Total |")
	assert.Contains(t, md, "| Male | 1 | 1 | 2 |")
	assert.Contains(t, md, "Included: 4, excluded: 0")

	s, _ = Find(CholesterolBox, Options{})
	d, _ = Build(s, sample())
	assert.Contains(t, d.Markdown(), "| Yes | 2 | 210.00 | 220.00 | 230.00 | 240.00 | 250.00 | 230.00 |")
}

func TestRenderAll_OrderAndSink(t *testing.T) {
	specs, err := Catalog(Options{})
	require.NoError(t, err)
	var seen []string
	results, err := RenderAll(context.Background(), specs, sample(), DefaultTheme(), func(r Result) error {
		seen = append(seen, r.Data.ID)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, results, len(specs))
	for i, r := range results {
		assert.Equal(t, specs[i].ID, r.Data.ID)
		assert.NotEmpty(t, r.SVG)
	}
	assert.Equal(t, IDs(), seen)
}

func TestRenderAll_Canceled(t *testing.T) {
	specs, _ := Catalog(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RenderAll(ctx, specs, sample(), DefaultTheme(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestKindText(t *testing.T) {
	b, err := BoxPlot.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "box-plot", string(b))
}

func countOf(t *testing.T, d *Data, outer, inner string) int {
	t.Helper()
	for _, c := range d.Counts.Cells() {
		if c.Outer == outer && c.Inner == inner {
			return c.Value
		}
	}
	t.Fatalf("no cell %s/%s", outer, inner)
	return 0
}
