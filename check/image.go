package check

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// IsImage reports whether b starts with a decodable image header in one of
// the registered formats (gif, jpeg, png, bmp, webp).
func IsImage(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	_, _, err := image.DecodeConfig(bytes.NewReader(b))
	return err == nil
}
