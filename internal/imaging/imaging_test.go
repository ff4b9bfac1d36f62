package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func createTestJPEG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90})
	return buf.Bytes()
}

func createTestPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return buf.Bytes()
}

// decodeDataURI extracts and decodes the image from a logo data URI.
func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()
	const prefix = "data:image/jpeg;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("unexpected data URI prefix: %.40s", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("decoding base64: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decoding result image: %v", err)
	}
	return img
}

func TestProcessLogoJPEG(t *testing.T) {
	uri, err := ProcessLogo(bytes.NewReader(createTestJPEG(100, 100)))
	if err != nil {
		t.Fatalf("ProcessLogo JPEG: %v", err)
	}
	decodeDataURI(t, uri)
}

func TestProcessLogoPNGBecomesJPEG(t *testing.T) {
	uri, err := ProcessLogo(bytes.NewReader(createTestPNG(100, 100)))
	if err != nil {
		t.Fatalf("ProcessLogo PNG: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/jpeg;base64,") {
		t.Errorf("expected JPEG data URI, got %.40s", uri)
	}
}

func TestProcessLogoDownscale(t *testing.T) {
	uri, err := ProcessLogo(bytes.NewReader(createTestJPEG(1600, 800)))
	if err != nil {
		t.Fatalf("ProcessLogo large image: %v", err)
	}

	bounds := decodeDataURI(t, uri).Bounds()
	if bounds.Dx() > MaxLogoDimension || bounds.Dy() > MaxLogoDimension {
		t.Errorf("expected max %d, got %dx%d", MaxLogoDimension, bounds.Dx(), bounds.Dy())
	}
	if bounds.Dx() != MaxLogoDimension {
		t.Errorf("expected width %d preserving aspect ratio, got %d", MaxLogoDimension, bounds.Dx())
	}
}

func TestProcessLogoSmallImageNotUpscaled(t *testing.T) {
	uri, err := ProcessLogo(bytes.NewReader(createTestJPEG(50, 50)))
	if err != nil {
		t.Fatalf("ProcessLogo small image: %v", err)
	}

	bounds := decodeDataURI(t, uri).Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Errorf("small logo should not be resized: got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestProcessLogoInvalidFormat(t *testing.T) {
	if _, err := ProcessLogo(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestProcessLogoGIFRejected(t *testing.T) {
	if _, err := ProcessLogo(bytes.NewReader([]byte("GIF89a..."))); err == nil {
		t.Error("expected error for GIF")
	}
}
