package scene

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"math/cmplx"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iburimskiy/epicycles/internal/config"
	"github.com/iburimskiy/epicycles/internal/geom"
	"github.com/iburimskiy/epicycles/internal/log"
	"github.com/iburimskiy/epicycles/internal/outline"
	"github.com/iburimskiy/epicycles/internal/svgpath"
)

const shapes = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 200">
  <rect x="10" y="10" width="60" height="40"/>
  <circle cx="120" cy="120" r="30"/>
</svg>`

func testConfig() config.Config {
	c := config.Default()
	c.Step = 1
	c.Points = 128
	c.Coefficients = 128
	return c
}

func load(t *testing.T, c config.Config) *Scene {
	t.Helper()
	paths, err := svgpath.Load(strings.NewReader(shapes))
	if err != nil {
		t.Fatal(err)
	}
	s, err := Build(paths, c, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestBuild(t *testing.T) {
	s := load(t, testConfig())
	if len(s.Outline) != 128 || len(s.Coefficients) != 128 || s.Figure.Len() != 128 {
		t.Fatalf("got %d points, %d coefficients, %d arrows; want 128 each",
			len(s.Outline), len(s.Coefficients), s.Figure.Len())
	}
	if s.Coefficients[0] != 0 {
		t.Errorf("DC coefficient %v, want 0", s.Coefficients[0])
	}
	if s.Figure.Origin() != geom.Pt(config.WindowWidth/2, config.WindowHeight/2) {
		t.Errorf("figure anchored at %v, want window centre", s.Figure.Origin())
	}

	// With as many arrows as points the figure passes through every
	// outline point, shifted so their mean sits on the origin.
	mean := geom.Centroid(s.Outline)
	for i, p := range s.Export(len(s.Outline)) {
		want := geom.Point(s.Outline[i].Sub(mean))
		if p.Distance(want) > 1e-6 {
			t.Fatalf("exported point %d = %v, want %v", i, p, want)
		}
	}
}

func TestKeepDC(t *testing.T) {
	c := testConfig()
	c.KeepDC = true
	c.FFT = true
	s := load(t, c)
	mean := geom.Complex(geom.Centroid(s.Outline))
	if cmplx.Abs(s.Coefficients[0]-mean) > 1e-9 {
		t.Errorf("DC coefficient %v, want outline mean %v", s.Coefficients[0], mean)
	}
}

func TestFit(t *testing.T) {
	c := testConfig()
	c.Fit = 400
	s := load(t, c)
	box, ok := geom.Bounds(s.Outline)
	if !ok {
		t.Fatal("empty outline")
	}
	if w := max(box.Width(), box.Height()); w < 399.999 || w > 400.001 {
		t.Errorf("fitted outline spans %g, want 400", w)
	}
}

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var recs []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var r map[string]any
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("%q: %v", sc.Text(), err)
		}
		recs = append(recs, r)
	}
	return recs
}

func TestEmptyDocument(t *testing.T) {
	paths, err := svgpath.Load(strings.NewReader(`<svg><g/></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	s, err := Build(paths, testConfig(), log.NewWriter(&buf, "warn"))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Outline) != 0 || len(s.Coefficients) != 0 || s.Figure.Len() != 0 {
		t.Errorf("empty document produced %+v", s)
	}
	recs := records(t, &buf)
	if len(recs) != 1 || recs[0]["level"] != "WARN" || recs[0]["msg"] != "no drawable outline in 0 SVG shapes" {
		t.Errorf("got log records %v, want one warning", recs)
	}
}

func TestExportFollowsOutline(t *testing.T) {
	c := testConfig()
	want := load(t, c).Export(64)
	for _, speed := range []float64{-0.01, 0, 3} {
		c.Speed = speed
		got := load(t, c).Export(64)
		if len(got) != len(want) {
			t.Fatalf("speed %g: exported %d points, want %d", speed, len(got), len(want))
		}
		for i := range got {
			if got[i].Distance(want[i]) > 1e-9 {
				t.Fatalf("speed %g: point %d = %v, want %v", speed, i, got[i], want[i])
			}
		}
	}
}

func TestInvalidOptions(t *testing.T) {
	c := testConfig()
	c.Step = 0
	paths, _ := svgpath.Load(strings.NewReader(shapes))
	if _, err := Build(paths, c, nil); !errors.Is(err, outline.ErrInvalidStep) {
		t.Errorf("got %v, want ErrInvalidStep", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "shapes.svg")
	if err := os.WriteFile(name, []byte(shapes), 0o644); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	s, err := Load(name, testConfig(), log.NewWriter(&buf, "debug"))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "shapes.svg" || len(s.Outline) != 128 {
		t.Errorf("got scene %q with %d points", s.Name, len(s.Outline))
	}
	var stages []string
	for _, r := range records(t, &buf) {
		if r["svg"] != name {
			t.Errorf("record %v is not tagged with the file name", r)
		}
		if st, ok := r["stage"].(string); ok {
			stages = append(stages, st)
		}
	}
	if d := cmp.Diff([]string{"load", "outline", "coefficients"}, stages); d != "" {
		t.Errorf("stages: %s", d)
	}

	if _, err := Load(filepath.Join(dir, "missing.svg"), testConfig(), nil); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want a not-exist error", err)
	}
}
