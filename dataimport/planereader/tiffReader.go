package planereader

import (
	"bytes"
	"fmt"
	"image"

	"github.com/fmi-faim/hcs-core/core/utils"
	"github.com/pkg/errors"
	"golang.org/x/image/tiff"
)

// Reading acquisition planes as exported by MetaXpress. These are plain
// single-plane grayscale TIFFs, 8 or 16 bit. We only need the raw samples
// for histogramming, so vendor tags are not decoded.

// Plane - one decoded acquisition plane, samples in row-major order
type Plane struct {
	Width  int
	Height int
	Bits   int
	Pixels []uint16
}

// PlaneReader - turns the bytes of one acquisition file into samples
type PlaneReader interface {
	ReadPlane(data []byte) (Plane, error)
}

// TIFFPlaneReader - decodes grayscale TIFF planes
type TIFFPlaneReader struct {
}

func (r TIFFPlaneReader) ReadPlane(data []byte) (Plane, error) {
	img, err := tiff.Decode(bytes.NewReader(data))
	if err != nil {
		return Plane{}, errors.Wrap(err, "failed to decode tiff plane")
	}

	switch i := img.(type) {
	case *image.Gray:
		return grayPlane(i), nil
	case *image.Gray16:
		return gray16Plane(i), nil
	}

	return Plane{}, fmt.Errorf("unsupported tiff sample format: %T", img)
}

func grayPlane(img *image.Gray) Plane {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var pixels []uint16
	if img.Stride == w {
		pixels = utils.ConvertIntSlice[uint16](img.Pix)
	} else {
		pixels = make([]uint16, 0, w*h)
		for y := 0; y < h; y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+w]
			for _, v := range row {
				pixels = append(pixels, uint16(v))
			}
		}
	}

	return Plane{Width: w, Height: h, Bits: 8, Pixels: pixels}
}

func gray16Plane(img *image.Gray16) Plane {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	// Gray16 stores big-endian sample pairs
	pixels := make([]uint16, 0, w*h)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*2]
		for x := 0; x < w; x++ {
			pixels = append(pixels, uint16(row[x*2])<<8|uint16(row[x*2+1]))
		}
	}

	return Plane{Width: w, Height: h, Bits: 16, Pixels: pixels}
}
