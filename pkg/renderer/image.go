package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-manylight-renderer/pkg/core"
	"golang.org/x/image/math/f32"
)

// Image is a floating point RGB frame, row 0 at the top. Writers touching
// different rows may run concurrently.
type Image struct {
	Width, Height int
	Pixels        []f32.Vec3
	CutSizes      []int // Representative lights per pixel, nil unless recorded
}

// NewImage creates a black image
func NewImage(width, height int, recordCutSizes bool) *Image {
	img := &Image{
		Width:  width,
		Height: height,
		Pixels: make([]f32.Vec3, width*height),
	}
	if recordCutSizes {
		img.CutSizes = make([]int, width*height)
	}
	return img
}

// Add accumulates radiance into a pixel
func (img *Image) Add(x, row int, radiance core.Vec3) {
	p := &img.Pixels[row*img.Width+x]
	p[0] += float32(radiance.X)
	p[1] += float32(radiance.Y)
	p[2] += float32(radiance.Z)
}

// AddCutSize records representative lights evaluated for a pixel
func (img *Image) AddCutSize(x, row, n int) {
	if img.CutSizes != nil {
		img.CutSizes[row*img.Width+x] += n
	}
}

// At returns the radiance of a pixel
func (img *Image) At(x, row int) core.Vec3 {
	p := img.Pixels[row*img.Width+x]
	return core.NewVec3(float64(p[0]), float64(p[1]), float64(p[2]))
}

// AverageLuminance returns the mean luminance over all pixels
func (img *Image) AverageLuminance() float64 {
	if len(img.Pixels) == 0 {
		return 0
	}
	total := 0.0
	for row := 0; row < img.Height; row++ {
		for x := 0; x < img.Width; x++ {
			total += img.At(x, row).Luminance()
		}
	}
	return total / float64(len(img.Pixels))
}

// ToRGBA gamma corrects and clamps the image to 8 bits per channel
func (img *Image) ToRGBA(gamma float64) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for row := 0; row < img.Height; row++ {
		for x := 0; x < img.Width; x++ {
			out.SetRGBA(x, row, toColor(img.At(x, row), gamma))
		}
	}
	return out
}

func toColor(c core.Vec3, gamma float64) color.RGBA {
	c = c.Clamp(0.0, 1.0).GammaCorrect(gamma)
	return color.RGBA{
		R: uint8(255 * c.X),
		G: uint8(255 * c.Y),
		B: uint8(255 * c.Z),
		A: 255,
	}
}

// CutSizeImage maps the recorded cut sizes to gray levels, the largest cut
// being white. It returns nil when cut sizes were not recorded.
func (img *Image) CutSizeImage() *image.Gray {
	if img.CutSizes == nil {
		return nil
	}
	largest := 0
	for _, n := range img.CutSizes {
		largest = max(largest, n)
	}

	out := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	if largest == 0 {
		return out
	}
	for row := 0; row < img.Height; row++ {
		for x := 0; x < img.Width; x++ {
			n := img.CutSizes[row*img.Width+x]
			out.SetGray(x, row, color.Gray{Y: uint8(255 * n / largest)})
		}
	}
	return out
}
