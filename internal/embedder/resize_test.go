package embedder

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

// encodeTestJPEG produces a JPEG of the given dimensions.
func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func decodeDimensions(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestResizeImageLandscape(t *testing.T) {
	data := encodeTestJPEG(t, 400, 200)

	resized, err := ResizeImage(data, 100)
	if err != nil {
		t.Fatalf("ResizeImage failed: %v", err)
	}

	w, h := decodeDimensions(t, resized)
	if w != 100 || h != 50 {
		t.Errorf("got %dx%d, want 100x50", w, h)
	}
}

func TestResizeImagePortrait(t *testing.T) {
	data := encodeTestJPEG(t, 200, 400)

	resized, err := ResizeImage(data, 100)
	if err != nil {
		t.Fatalf("ResizeImage failed: %v", err)
	}

	w, h := decodeDimensions(t, resized)
	if w != 50 || h != 100 {
		t.Errorf("got %dx%d, want 50x100", w, h)
	}
}

func TestResizeImageAlreadySmall(t *testing.T) {
	data := encodeTestJPEG(t, 80, 60)

	result, err := ResizeImage(data, 100)
	if err != nil {
		t.Fatalf("ResizeImage failed: %v", err)
	}
	if !bytes.Equal(result, data) {
		t.Error("small image should be returned unchanged")
	}
}

func TestResizeImageInvalidData(t *testing.T) {
	if _, err := ResizeImage([]byte("not an image"), 100); err == nil {
		t.Error("expected error for undecodable data, got nil")
	}
}
