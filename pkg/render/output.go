package render

// A few helper routines for writing out finished frames

import(
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
)

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %w", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

// WriteTIFF keeps the full 16 bits per channel, deflate compressed
func WriteTIFF(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %w", filename, err)
	} else {
		defer writer.Close()
		return tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	}
}

// WriteImage picks the encoder from the file extension
func WriteImage(img image.Image, filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":         return WritePNG(img, filename)
	case ".tif", ".tiff": return WriteTIFF(img, filename)
	}
	return fmt.Errorf("don't know how to write '%s', want .png or .tif", filename)
}
