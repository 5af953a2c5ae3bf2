package service

import (
	"math"

	"github.com/notelock/notelock/models"
)

// displayWidth is the fixed rendering width of note images, in layout units.
// Every image is scaled to this width; heights follow the aspect ratio.
const displayWidth = 403

// scaleHeight returns the display height of an image scaled to displayWidth,
// rounding half away from zero. Images without known dimensions get 0 and do
// not participate in layout.
func scaleHeight(width, height int) int {
	if width <= 0 || height <= 0 {
		return 0
	}

	return int(math.Round(float64(height) / float64(width) * displayWidth))
}

// annotateLayout fills ScaledHeight and HalfDiff for every image of one note
// and returns the height of the tallest image. HalfDiff vertically centers
// each image within the tallest image's footprint; dimensionless images keep
// both values at zero. The computation is per note: images of other notes
// never influence each other.
func annotateLayout(images []models.NoteImage) int {
	maxHeight := 0
	for i := range images {
		images[i].ScaledHeight = scaleHeight(images[i].Width, images[i].Height)
		if images[i].ScaledHeight > maxHeight {
			maxHeight = images[i].ScaledHeight
		}
	}

	for i := range images {
		if !images[i].HasDimensions() {
			continue
		}
		images[i].HalfDiff = int(math.Round(float64(maxHeight-images[i].ScaledHeight) / 2))
	}

	return maxHeight
}
