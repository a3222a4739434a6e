package renderer

import (
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-manylight-renderer/pkg/core"
)

func TestImage_AverageLuminance(t *testing.T) {
	// Red, green, blue and black pixels
	img := NewImage(2, 2, false)
	img.Add(0, 0, core.NewVec3(1, 0, 0))
	img.Add(1, 0, core.NewVec3(0, 1, 0))
	img.Add(0, 1, core.NewVec3(0, 0, 1))

	// The luminance weights sum to one
	expected := 0.25
	tolerance := 0.0001
	if lum := img.AverageLuminance(); lum < expected-tolerance || lum > expected+tolerance {
		t.Errorf("Expected average luminance %f, got %f", expected, lum)
	}
}

func TestImage_ToRGBA(t *testing.T) {
	img := NewImage(3, 1, false)
	img.Add(0, 0, core.NewVec3(1, 1, 1))
	img.Add(1, 0, core.NewVec3(0.25, 4, -1))

	rgba := img.ToRGBA(2.0)
	tests := []struct {
		x    int
		want color.RGBA
	}{
		{0, color.RGBA{255, 255, 255, 255}},
		{1, color.RGBA{127, 255, 0, 255}}, // sqrt(0.25) = 0.5, clamped above and below
		{2, color.RGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := rgba.RGBAAt(tt.x, 0); got != tt.want {
			t.Errorf("pixel %d = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestImage_CutSizes(t *testing.T) {
	if NewImage(2, 2, false).CutSizeImage() != nil {
		t.Error("expected no cut size image when not recorded")
	}

	img := NewImage(2, 1, true)
	img.AddCutSize(0, 0, 2)
	img.AddCutSize(1, 0, 4)
	gray := img.CutSizeImage()
	if got := gray.GrayAt(0, 0).Y; got != 127 {
		t.Errorf("half of the largest cut maps to %d, want 127", got)
	}
	if got := gray.GrayAt(1, 0).Y; got != 255 {
		t.Errorf("largest cut maps to %d, want 255", got)
	}
}

func TestRenderStats_Table(t *testing.T) {
	stats := RenderStats{
		Lights:          120,
		Groups:          4,
		Representatives: 10,
		MaxCutSize:      4,
		Stages:          []StageTiming{{Name: "shoot gather points", Duration: 2 * time.Millisecond}},
		RenderTime:      5 * time.Millisecond,
	}
	if got := stats.AverageCutSize(); got != 2.5 {
		t.Errorf("AverageCutSize = %g, want 2.5", got)
	}

	table := stats.Table()
	for _, want := range []string{"120", "2.5 avg, 4 max", "shoot gather points", "2ms", "5ms"} {
		if !strings.Contains(table, want) {
			t.Errorf("table is missing %q:\n%s", want, table)
		}
	}

	if (RenderStats{}).AverageCutSize() != 0 {
		t.Error("expected zero average cut size without groups")
	}
}
