package planereader

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"strings"
	"testing"

	"golang.org/x/image/tiff"
)

func ExampleTIFFPlaneReader_ReadPlane() {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.Pix = []uint8{0, 1, 2, 3, 4, 5}

	var buf bytes.Buffer
	fmt.Println(tiff.Encode(&buf, img, nil))

	plane, err := TIFFPlaneReader{}.ReadPlane(buf.Bytes())
	fmt.Printf("%v|%v\n", err, plane)

	// Output:
	// <nil>
	// <nil>|{3 2 8 [0 1 2 3 4 5]}
}

func ExampleTIFFPlaneReader_ReadPlane_gray16() {
	img := image.NewGray16(image.Rect(0, 0, 2, 2))
	img.SetGray16(0, 0, color.Gray16{Y: 0})
	img.SetGray16(1, 0, color.Gray16{Y: 1000})
	img.SetGray16(0, 1, color.Gray16{Y: 65535})
	img.SetGray16(1, 1, color.Gray16{Y: 256})

	var buf bytes.Buffer
	fmt.Println(tiff.Encode(&buf, img, nil))

	plane, err := TIFFPlaneReader{}.ReadPlane(buf.Bytes())
	fmt.Printf("%v|%v\n", err, plane)

	// Output:
	// <nil>
	// <nil>|{2 2 16 [0 1000 65535 256]}
}

func TestReadPlaneErrors(t *testing.T) {
	_, err := TIFFPlaneReader{}.ReadPlane([]byte("not a tiff"))
	if err == nil || !strings.HasPrefix(err.Error(), "failed to decode tiff plane") {
		t.Errorf("ReadPlane on garbage bytes, got err: %v", err)
	}

	var buf bytes.Buffer
	if err := tiff.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2)), nil); err != nil {
		t.Fatalf("tiff encode failed: %v", err)
	}

	_, err = TIFFPlaneReader{}.ReadPlane(buf.Bytes())
	if err == nil || !strings.HasPrefix(err.Error(), "unsupported tiff sample format") {
		t.Errorf("ReadPlane on colour tiff, got err: %v", err)
	}
}

func TestGrayPlaneStride(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	img.Pix = []uint8{0, 1, 2, 3, 10, 11, 12, 13}

	sub, ok := img.SubImage(image.Rect(1, 0, 3, 2)).(*image.Gray)
	if !ok {
		t.Fatal("expected gray sub image")
	}

	plane := grayPlane(sub)
	got := fmt.Sprintf("%v", plane)
	want := "{2 2 8 [1 2 11 12]}"
	if got != want {
		t.Errorf("grayPlane with strided pixels, got %v, want %v", got, want)
	}
}
