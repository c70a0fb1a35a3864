// Package media inspects the raw media parts of a document package.
//
// Image blocks carry extents in EMU from the drawing markup; the probe
// supplies the intrinsic pixel dimensions of the underlying bytes so
// renderers can detect mismatched or missing extents.
package media

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageInfo describes one decodable media part.
type ImageInfo struct {
	Format   string
	WidthPx  int
	HeightPx int
}

// Probe decodes the headers of every media part and returns info for the
// parts that hold a recognizable image. Undecodable parts are skipped, not
// errors: packages routinely embed media the importer has no use for.
func Probe(media map[string][]byte) map[string]ImageInfo {
	out := make(map[string]ImageInfo, len(media))
	for part, data := range media {
		cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			continue
		}
		out[part] = ImageInfo{
			Format:   format,
			WidthPx:  cfg.Width,
			HeightPx: cfg.Height,
		}
	}
	return out
}

// Resolve follows an embed id through the relationships map to its media
// part and probes it.
func Resolve(embedID string, relationships map[string]string, media map[string][]byte) (ImageInfo, error) {
	target, ok := relationships[embedID]
	if !ok {
		return ImageInfo{}, fmt.Errorf("media: no relationship for embed id %q", embedID)
	}
	data, ok := media[target]
	if !ok {
		return ImageInfo{}, fmt.Errorf("media: part %q not in package", target)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("media: decoding %q: %w", target, err)
	}
	return ImageInfo{Format: format, WidthPx: cfg.Width, HeightPx: cfg.Height}, nil
}
