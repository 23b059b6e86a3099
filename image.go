package cards

import (
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

// EnsureSize resizes the image at path to exactly width x height pixels,
// overwriting it in place. A missing file is a no-op, and an image already at
// the target size is left untouched, so repeated calls converge after the
// first.
func EnsureSize(path string, width, height int) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return imageProcessing("open %v: %v", path, err)
	}

	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return imageProcessing("decode %v: %v", path, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == width && bounds.Dy() == height {
		return nil
	}

	resized := resize.Resize(uint(width), uint(height), img, resize.Lanczos3)

	// Write to a temp file and rename so a concurrent render never sees a
	// half-written image.
	tmp := filepath.Join(filepath.Dir(path), "."+uuid.NewString()+".tmp")
	out, err := os.Create(tmp)
	if err != nil {
		return imageProcessing("write %v: %v", path, err)
	}

	if err := png.Encode(out, resized); err != nil {
		out.Close()
		os.Remove(tmp)
		return imageProcessing("encode %v: %v", path, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return imageProcessing("write %v: %v", path, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return imageProcessing("replace %v: %v", path, err)
	}

	return nil
}
