package integrator

import (
	"context"
	"math/rand"
	"testing"

	"github.com/df07/go-manylight-renderer/pkg/core"
	"github.com/df07/go-manylight-renderer/pkg/grouping"
	"github.com/df07/go-manylight-renderer/pkg/lights"
	"github.com/df07/go-manylight-renderer/pkg/scene"
	"github.com/google/go-cmp/cmp"
)

// testFilm accumulates into plain slices
type testFilm struct {
	width  int
	pixels []core.Vec3
	cuts   []int
}

func newTestFilm(width, height int) *testFilm {
	return &testFilm{width: width, pixels: make([]core.Vec3, width*height), cuts: make([]int, width*height)}
}

func (f *testFilm) Add(x, row int, radiance core.Vec3) {
	f.pixels[row*f.width+x] = f.pixels[row*f.width+x].Add(radiance)
}

func (f *testFilm) AddCutSize(x, row, n int) {
	f.cuts[row*f.width+x] += n
}

// sphereSetup shoots the sphere scene and puts its lights in a single group
func sphereSetup(t *testing.T, width, height, spp int) (*scene.Scene, ShootResult, FinalInput) {
	t.Helper()
	s, err := scene.New("sphere")
	if err != nil {
		t.Fatal(err)
	}
	shot, err := Shoot(context.Background(), core.SerialRunner{}, s, width, height, spp, ShootOptions{Seed: 9})
	if err != nil {
		t.Fatal(err)
	}

	list := lights.NewLightList()
	list.Add(lights.OmniDirLight{Position: core.NewVec3(0.5, 0.8, 3.5), Intensity: core.NewVec3(8, 8, 8)})

	elems := make([]grouping.Element, len(shot.Points))
	for i, p := range shot.Points {
		elems[i] = grouping.Element{Position: p.SI.Point, Normal: p.SI.Normal}
	}
	groups := grouping.GroupPoints(elems, 6, rand.New(rand.NewSource(1)))
	tree := grouping.AttachNeighbors(groups, elems, 2)

	cuts := make([][]lights.ScaledLight, len(groups))
	for g := range cuts {
		cuts[g] = []lights.ScaledLight{{LightIndex: 0, Weight: core.NewVec3(1, 1, 1)}}
	}
	return s, shot, FinalInput{Points: shot.Points, Groups: groups, Tree: tree, Cuts: cuts, Lights: list}
}

func TestRenderFinal_GroupsMatchesDirectLighting(t *testing.T) {
	const width, height, spp = 10, 8, 2
	s, shot, in := sphereSetup(t, width, height, spp)

	film := newTestFilm(width, height)
	opts := FinalOptions{Mode: FinalGroups, Width: width, Height: height, RecordCutSize: true}
	stats, err := RenderFinal(context.Background(), core.SerialRunner{}, s, in, film, opts)
	if err != nil {
		t.Fatalf("RenderFinal failed: %v", err)
	}
	if stats.Shaded != len(shot.Points) || stats.Evaluations != len(shot.Points) {
		t.Errorf("stats = %+v, want %d shaded points with one evaluation each", stats, len(shot.Points))
	}

	want := make([]core.Vec3, width*height)
	wantCuts := make([]int, width*height)
	for _, p := range shot.Points {
		c := LightContribution(s, in.Lights.At(0), &p.SI, p.Wo, 0)
		idx := (height-1-p.Y)*width + p.X
		want[idx] = want[idx].Add(c.Add(p.Emission).MultiplyVec(p.Weight).Multiply(p.Strength))
		if p.SampleIndex == 0 {
			wantCuts[idx]++
		}
	}

	for i := range want {
		if !vecNear(film.pixels[i], want[i], tolerance) {
			t.Errorf("pixel %d = %v, want %v", i, film.pixels[i], want[i])
		}
	}
	if diff := cmp.Diff(wantCuts, film.cuts); diff != "" {
		t.Errorf("unexpected cut sizes (-want +got):\n%s", diff)
	}
}

func TestRenderFinal_WeightScalesContribution(t *testing.T) {
	const width, height = 6, 6
	s, _, in := sphereSetup(t, width, height, 1)

	base := newTestFilm(width, height)
	if _, err := RenderFinal(context.Background(), core.SerialRunner{}, s, in, base, FinalOptions{Width: width, Height: height}); err != nil {
		t.Fatal(err)
	}

	for g := range in.Cuts {
		in.Cuts[g] = []lights.ScaledLight{{LightIndex: 0, Weight: core.NewVec3(2, 0, 1)}}
	}
	scaled := newTestFilm(width, height)
	if _, err := RenderFinal(context.Background(), core.SerialRunner{}, s, in, scaled, FinalOptions{Width: width, Height: height}); err != nil {
		t.Fatal(err)
	}

	for i := range base.pixels {
		want := base.pixels[i].MultiplyVec(core.NewVec3(2, 0, 1))
		if !vecNear(scaled.pixels[i], want, tolerance) {
			t.Errorf("pixel %d = %v, want %v", i, scaled.pixels[i], want)
		}
	}
}

func TestRenderFinal_Scanlines(t *testing.T) {
	const width, height, spp = 10, 8, 2
	s, shot, in := sphereSetup(t, width, height, spp)
	opts := FinalOptions{Mode: FinalScanlines, Width: width, Height: height, SamplesPerPixel: spp, Seed: 4, RecordCutSize: true}

	first := newTestFilm(width, height)
	stats, err := RenderFinal(context.Background(), core.SerialRunner{}, s, in, first, opts)
	if err != nil {
		t.Fatalf("RenderFinal failed: %v", err)
	}
	if stats.Shaded == 0 {
		t.Fatal("no surface sample was shaded")
	}

	second := newTestFilm(width, height)
	if _, err := RenderFinal(context.Background(), goroutineRunner{}, s, in, second, opts); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second, cmp.AllowUnexported(testFilm{})); diff != "" {
		t.Errorf("scanline rendering is not deterministic (-first +second):\n%s", diff)
	}

	covered := 0
	for _, n := range first.cuts {
		if n != 0 && n != 1 {
			t.Fatalf("cut size %d with a single light", n)
		}
		covered += n
	}
	if covered == 0 || covered > len(shot.Points) {
		t.Errorf("%d pixels record a cut, shoot found %d sphere samples", covered, len(shot.Points))
	}
	for _, px := range first.pixels {
		if px.X < 0 || px.Y < 0 || px.Z < 0 {
			t.Fatalf("negative radiance %v", px)
		}
	}
}

func TestRenderFinal_Errors(t *testing.T) {
	s, _, in := sphereSetup(t, 4, 4, 1)
	film := newTestFilm(4, 4)

	mismatched := in
	mismatched.Cuts = in.Cuts[:0]
	if _, err := RenderFinal(context.Background(), core.SerialRunner{}, s, mismatched, film, FinalOptions{Width: 4, Height: 4}); err == nil {
		t.Error("expected an error for missing cuts")
	}
	if _, err := RenderFinal(context.Background(), core.SerialRunner{}, s, in, film, FinalOptions{Mode: "tiles", Width: 4, Height: 4}); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}

func TestParseFinalMode(t *testing.T) {
	tests := []struct {
		name    string
		want    FinalMode
		wantErr bool
	}{
		{"", FinalGroups, false},
		{"groups", FinalGroups, false},
		{"scanlines", FinalScanlines, false},
		{"tiles", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFinalMode(tt.name)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFinalMode(%q) = %q, %v", tt.name, got, err)
		}
	}
}
