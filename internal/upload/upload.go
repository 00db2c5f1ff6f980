// Package upload prepares images for multipart upload: it detects the image
// type from magic bytes and optionally downscales wide images.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"

	"github.com/bobmcallan/blog-portal/internal/config"
	"github.com/bobmcallan/blog-portal/internal/models"
)

const (
	MIMETypeJPEG = "image/jpeg"
	MIMETypePNG  = "image/png"
	MIMETypeTIFF = "image/tiff"
)

// ErrUnknownInterpolator is returned for an unsupported upload.interpolator.
var ErrUnknownInterpolator = errors.New("unknown interpolator")

var (
	extTypes = map[string]string{
		".jpg":  MIMETypeJPEG,
		".jpeg": MIMETypeJPEG,
		".png":  MIMETypePNG,
		".tiff": MIMETypeTIFF,
		".tif":  MIMETypeTIFF,
	}

	magicHeaders = map[string][]string{
		MIMETypeJPEG: {"\xFF\xD8"},
		MIMETypePNG:  {"\x89\x50\x4E\x47\x0D\x0A\x1A\x0A"},
		MIMETypeTIFF: {"\x49\x49\x2A\x00", "\x4D\x4D\x00\x2A"},
	}

	decoders = map[string]func(io.Reader) (image.Image, error){
		MIMETypeJPEG: jpeg.Decode,
		MIMETypePNG:  png.Decode,
		MIMETypeTIFF: tiff.Decode,
	}

	encoders = map[string]func(io.Writer, image.Image) error{
		MIMETypeJPEG: func(w io.Writer, i image.Image) error { return jpeg.Encode(w, i, nil) },
		MIMETypePNG:  png.Encode,
		MIMETypeTIFF: func(w io.Writer, i image.Image) error { return tiff.Encode(w, i, nil) },
	}

	interpolators = map[string]draw.Interpolator{
		"nearestneighbor": draw.NearestNeighbor,
		"catmullrom":      draw.CatmullRom,
		"bilinear":        draw.BiLinear,
		"approxbilinear":  draw.ApproxBiLinear,
	}
)

// Sniff returns the MIME type from the magic header, falling back to the file
// extension. Unknown data yields "application/octet-stream".
func Sniff(filename string, data []byte) string {
	for mime, headers := range magicHeaders {
		for _, h := range headers {
			if bytes.HasPrefix(data, []byte(h)) {
				return mime
			}
		}
	}
	if mime, ok := extTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return mime
	}
	return "application/octet-stream"
}

// Preparer sets the content type of images and shrinks those wider than MaxWidth.
type Preparer struct {
	maxWidth     int
	interpolator draw.Interpolator
}

// NewPreparer builds a Preparer from config. MaxWidth 0 disables resizing.
func NewPreparer(cfg config.UploadConfig) (*Preparer, error) {
	name := strings.ToLower(cfg.Interpolator)
	if name == "" {
		name = "catmullrom"
	}
	interp, ok := interpolators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInterpolator, cfg.Interpolator)
	}
	return &Preparer{maxWidth: cfg.MaxWidth, interpolator: interp}, nil
}

// Prepare returns a copy of img with ContentType set and, when enabled and
// needed, the pixels scaled down to maxWidth keeping the aspect ratio.
// Types that cannot be decoded are passed through unchanged.
func (p *Preparer) Prepare(img *models.ImageFile) (*models.ImageFile, error) {
	if img == nil {
		return nil, nil
	}

	out := *img
	sniffed := Sniff(img.Filename, img.Data)
	if out.ContentType == "" {
		out.ContentType = sniffed
	}

	decode, ok := decoders[sniffed]
	if p.maxWidth <= 0 || !ok {
		return &out, nil
	}

	original, err := decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	bounds := original.Bounds()
	if bounds.Dx() <= p.maxWidth {
		return &out, nil
	}

	ratio := float64(p.maxWidth) / float64(bounds.Dx())
	height := int(float64(bounds.Dy()) * ratio)
	if height < 1 {
		height = 1
	}

	bitmap := image.NewRGBA(image.Rect(0, 0, p.maxWidth, height))
	p.interpolator.Scale(bitmap, bitmap.Bounds(), original, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := encoders[sniffed](&buf, bitmap); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	out.Data = buf.Bytes()
	out.ContentType = sniffed
	return &out, nil
}
