// Package debug provides developer capture utilities.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes frames as PNG files named after the capture time.
type Screenshots struct {
	outputDir string
	prefix    string
	now       func() time.Time
}

// NewScreenshots creates a capture handler that writes into outputDir.
func NewScreenshots(outputDir, prefix string) *Screenshots {
	return &Screenshots{
		outputDir: outputDir,
		prefix:    prefix,
		now:       time.Now,
	}
}

// SetClock replaces the time source used for filenames.
func (s *Screenshots) SetClock(now func() time.Time) {
	s.now = now
}

// SavePixels writes bottom-up RGBA pixel rows, as returned by glReadPixels,
// as a top-down PNG. It returns the path written.
func (s *Screenshots) SavePixels(pixels []byte, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid screenshot size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := range height {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return s.SaveImage(img)
}

// SaveImage writes img as PNG and returns the path written.
func (s *Screenshots) SaveImage(img image.Image) (string, error) {
	if s.outputDir != "" {
		if err := os.MkdirAll(s.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	path, err := s.nextPath()
	if err != nil {
		return "", err
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return path, nil
}

// nextPath returns an unused filename for the current second, adding a
// numeric suffix when several captures land in the same second.
func (s *Screenshots) nextPath() (string, error) {
	stamp := s.now().Format("2006-01-02_15-04-05")
	for n := 0; n < 1000; n++ {
		name := fmt.Sprintf("%s_%s.png", s.prefix, stamp)
		if n > 0 {
			name = fmt.Sprintf("%s_%s_%d.png", s.prefix, stamp, n)
		}
		path := filepath.Join(s.outputDir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
	}
	return "", fmt.Errorf("no free screenshot name for %s", stamp)
}
