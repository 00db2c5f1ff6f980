package upload

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/tiff"

	"github.com/bobmcallan/blog-portal/internal/config"
	"github.com/bobmcallan/blog-portal/internal/models"
)

func solid(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 50, B: 10, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, solid(w, h)); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestSniff(t *testing.T) {
	var jpg, tif bytes.Buffer
	jpeg.Encode(&jpg, solid(2, 2), nil)
	tiff.Encode(&tif, solid(2, 2), nil)

	tests := []struct {
		name     string
		filename string
		data     []byte
		want     string
	}{
		{"png magic", "x.bin", encodePNG(t, 2, 2), MIMETypePNG},
		{"jpeg magic", "x", jpg.Bytes(), MIMETypeJPEG},
		{"tiff magic", "", tif.Bytes(), MIMETypeTIFF},
		{"extension fallback", "photo.JPG", []byte("garbage"), MIMETypeJPEG},
		{"unknown", "notes.txt", []byte("hello"), "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sniff(tt.filename, tt.data); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNewPreparer_UnknownInterpolator(t *testing.T) {
	_, err := NewPreparer(config.UploadConfig{Interpolator: "lanczos"})
	if !errors.Is(err, ErrUnknownInterpolator) {
		t.Errorf("expected ErrUnknownInterpolator, got %v", err)
	}
}

func TestPrepare_Downscales(t *testing.T) {
	p, err := NewPreparer(config.UploadConfig{MaxWidth: 100, Interpolator: "bilinear"})
	if err != nil {
		t.Fatalf("NewPreparer failed: %v", err)
	}

	out, err := p.Prepare(&models.ImageFile{Filename: "wide.png", Data: encodePNG(t, 400, 200)})
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if out.ContentType != MIMETypePNG {
		t.Errorf("expected image/png, got %s", out.ContentType)
	}

	decoded, err := png.Decode(bytes.NewReader(out.Data))
	if err != nil {
		t.Fatalf("result is not a PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 100 || decoded.Bounds().Dy() != 50 {
		t.Errorf("expected 100x50, got %v", decoded.Bounds())
	}
	if out.Filename != "wide.png" {
		t.Errorf("filename should be kept, got %s", out.Filename)
	}
}

func TestPrepare_NarrowImageUntouched(t *testing.T) {
	p, _ := NewPreparer(config.UploadConfig{MaxWidth: 100})
	data := encodePNG(t, 50, 50)

	out, err := p.Prepare(&models.ImageFile{Filename: "small.png", Data: data})
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if !bytes.Equal(out.Data, data) {
		t.Error("narrow image should not be re-encoded")
	}
}

func TestPrepare_DisabledOnlySetsContentType(t *testing.T) {
	p, _ := NewPreparer(config.UploadConfig{MaxWidth: 0})
	data := encodePNG(t, 4000, 10)

	out, err := p.Prepare(&models.ImageFile{Filename: "x.png", Data: data})
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if !bytes.Equal(out.Data, data) {
		t.Error("resizing disabled, data must be unchanged")
	}
	if out.ContentType != MIMETypePNG {
		t.Errorf("expected content type set, got %s", out.ContentType)
	}
}

func TestPrepare_UnknownTypePassesThrough(t *testing.T) {
	p, _ := NewPreparer(config.UploadConfig{MaxWidth: 10})
	in := &models.ImageFile{Filename: "anim.gif", ContentType: "image/gif", Data: []byte("GIF89a....")}

	out, err := p.Prepare(in)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	if out.ContentType != "image/gif" || !bytes.Equal(out.Data, in.Data) {
		t.Errorf("unknown type should pass through, got %+v", out)
	}
}

func TestPrepare_CorruptImage(t *testing.T) {
	p, _ := NewPreparer(config.UploadConfig{MaxWidth: 10})
	data := append([]byte("\x89PNG\r\n\x1a\n"), []byte("truncated")...)
	if _, err := p.Prepare(&models.ImageFile{Filename: "bad.png", Data: data}); err == nil {
		t.Fatal("expected decode error for corrupt PNG")
	}
}

func TestPrepare_Nil(t *testing.T) {
	p, _ := NewPreparer(config.UploadConfig{})
	out, err := p.Prepare(nil)
	if out != nil || err != nil {
		t.Errorf("expected nil, nil; got %v, %v", out, err)
	}
}
