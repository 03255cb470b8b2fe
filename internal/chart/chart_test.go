package chart

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func speed(v float64) *float64 { return &v }

func TestPlacementsReferenceChart(t *testing.T) {
	t.Parallel()

	c := Chart{Name: "Ada", Kind: KindNatal, Points: []Point{{Name: "Sun", Longitude: 10}, {Name: "Moon", Longitude: 200}}}
	ps := c.Placements()
	if len(ps) != 2 {
		t.Fatalf("len(Placements) = %d, want 2", len(ps))
	}
	if ps[1].Point != &c.Points[1] {
		t.Error("placement does not reference the chart's point")
	}
	if got := ps[0].String(); got != "Ada:Sun" {
		t.Errorf("String() = %q, want %q", got, "Ada:Sun")
	}
	if ps[0].Key() == ps[1].Key() {
		t.Error("distinct points share a key")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		charts []Chart
		want   []error
	}{
		{
			name: "valid",
			charts: []Chart{
				{Name: "a", Kind: KindNatal, Points: []Point{{Name: "Sun", Longitude: 1}}},
				{Name: "b", Kind: KindTransit, Cusps: make([]float64, 12)},
			},
		},
		{
			name:   "missing chart name",
			charts: []Chart{{Kind: KindNatal}},
			want:   []error{ErrMissingField},
		},
		{
			name:   "duplicate chart name",
			charts: []Chart{{Name: "a", Kind: KindNatal}, {Name: "a", Kind: KindEvent}},
			want:   []error{ErrDuplicateName},
		},
		{
			name:   "unknown kind",
			charts: []Chart{{Name: "a", Kind: "composite"}},
			want:   []error{ErrUnknownKind},
		},
		{
			name:   "wrong cusp count",
			charts: []Chart{{Name: "a", Kind: KindNatal, Cusps: []float64{0, 30, 60}}},
			want:   []error{ErrCuspCount},
		},
		{
			name: "bad point",
			charts: []Chart{{Name: "a", Kind: KindNatal, Points: []Point{
				{Name: "Sun", Longitude: math.NaN()},
				{Name: "Sun", Longitude: 3},
				{Longitude: 4},
			}}},
			want: []error{ErrBadLongitude, ErrDuplicateName, ErrMissingField},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			errs := Validate(tt.charts)
			if len(errs) != len(tt.want) {
				t.Fatalf("Validate returned %d errors (%v), want %d", len(errs), errs, len(tt.want))
			}
			for i, want := range tt.want {
				if !errors.Is(&errs[i], want) {
					t.Errorf("errs[%d] = %v, want %v", i, &errs[i], want)
				}
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	e := &ValidationError{Chart: "Ada", Field: "cusps", Err: ErrCuspCount}
	want := "chart Ada: cusps: cusps must hold exactly 12 values"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

const tomlCharts = `
[[chart]]
name = "Ada"
kind = "natal"
ascendant = 370.5

  [[chart.point]]
  name = "Sun"
  longitude = -10.0
  speed = 0.98

  [[chart.point]]
  name = "Moon"
  longitude = 92.0

[[chart]]
name = "Now"
kind = "transit"

  [[chart.point]]
  name = "Saturn"
  longitude = 725.0
`

const yamlCharts = `
charts:
  - name: Ada
    ascendant: 370.5
    points:
      - name: Sun
        longitude: -10
        speed: 0.98
      - name: Moon
        longitude: 92
  - name: Now
    kind: transit
    points:
      - name: Saturn
        longitude: 725
`

func TestParse(t *testing.T) {
	t.Parallel()

	asc := 10.5
	want := []Chart{
		{
			Name:      "Ada",
			Kind:      KindNatal,
			Ascendant: &asc,
			Points:    []Point{{Name: "Sun", Longitude: 350, Speed: speed(0.98)}, {Name: "Moon", Longitude: 92}},
		},
		{Name: "Now", Kind: KindTransit, Points: []Point{{Name: "Saturn", Longitude: 5}}},
	}

	for _, tt := range []struct {
		ext  string
		data string
	}{
		{".toml", tomlCharts},
		{".yaml", yamlCharts},
	} {
		tt := tt
		t.Run(tt.ext, func(t *testing.T) {
			t.Parallel()
			got, err := Parse([]byte(tt.data), tt.ext)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseUnsupported(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte("x"), ".ini")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.toml")
	if err := os.WriteFile(path, []byte(tomlCharts), 0o644); err != nil {
		t.Fatal(err)
	}
	charts, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(charts) != 2 || charts[1].Kind != KindTransit {
		t.Errorf("LoadFile returned %+v", charts)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
