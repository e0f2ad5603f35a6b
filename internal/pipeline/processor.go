package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AnyUserName/pitboard/internal/hasher"
	"github.com/AnyUserName/pitboard/internal/manifest"
	"github.com/AnyUserName/pitboard/internal/screen"
)

// renderResult holds the result of rendering a single screen.
type renderResult struct {
	name   string
	screen manifest.Screen
	err    error
}

// renderScreen draws one screen on its own display and writes it in every
// format under a content-addressed name.
func (p *Pipeline) renderScreen(ctx context.Context, name string, formats []string, now time.Time) renderResult {
	result := renderResult{name: name}

	d := p.cfg.Profile.NewDisplay(p.cfg.Rotation)
	r, err := screen.Render(ctx, name, d, p.src, now)
	if err != nil {
		result.err = fmt.Errorf("render %s: %w", name, err)
		return result
	}

	w, h := d.Size()
	result.screen = manifest.Screen{
		Race:   r.Name,
		Round:  r.Round,
		Width:  w,
		Height: h,
	}

	var buf bytes.Buffer
	for _, format := range formats {
		enc, err := p.registry.Get(format)
		if err != nil {
			continue
		}

		buf.Reset()
		if err := enc.Encode(&buf, d); err != nil {
			p.log.Warn().Err(err).Str("screen", name).Str("format", format).Msg("encode failed")
			continue
		}
		data := buf.Bytes()

		contentHash := hasher.ContentHash(data, 16)

		// name.w.h.hash.ext
		fileName := fmt.Sprintf("%s.%d.%d.%s.%s", name, w, h, contentHash[:8], enc.Extension())

		if err := os.WriteFile(filepath.Join(p.cfg.OutputDir, fileName), data, 0o644); err != nil {
			result.err = fmt.Errorf("write %s: %w", fileName, err)
			return result
		}

		result.screen.Outputs = append(result.screen.Outputs, manifest.Output{
			Format: format,
			Size:   int64(len(data)),
			Hash:   contentHash,
			Path:   fileName,
		})
	}

	return result
}
