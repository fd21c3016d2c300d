package check

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 40), uint8(y * 60), 0x7F, 0xFF})
		}
	}
	return img
}

func TestIsImage(t *testing.T) {
	t.Parallel()
	var pngBuf, gifBuf, bmpBuf bytes.Buffer
	if err := png.Encode(&pngBuf, testImage()); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	if err := gif.Encode(&gifBuf, testImage(), nil); err != nil {
		t.Fatalf("gif encode: %v", err)
	}
	if err := bmp.Encode(&bmpBuf, testImage()); err != nil {
		t.Fatalf("bmp encode: %v", err)
	}
	tests := []struct {
		name string
		in   []byte
		want bool
	}{
		{"png", pngBuf.Bytes(), true},
		{"gif", gifBuf.Bytes(), true},
		{"bmp", bmpBuf.Bytes(), true},
		{"truncated png", pngBuf.Bytes()[:8], false},
		{"text", []byte("hello, world"), false},
		{"empty", nil, false},
	}
	for _, tc := range tests {
		if got := IsImage(tc.in); got != tc.want {
			t.Errorf("%s: IsImage() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
