package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/younwookim/bounce/internal/domain/entity"
	"github.com/younwookim/bounce/internal/infrastructure/config"
)

var ErrBadColor = errors.New("color must be #RRGGBB")

// LoadStencil decodes a PNG stencil from fsys
func LoadStencil(fsys fs.FS, path string) (image.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stencil %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stencil %s: %w", path, err)
	}
	return img, nil
}

// WriteStencil encodes a stencil as PNG
func WriteStencil(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode stencil: %w", err)
	}
	return nil
}

// LoadMask builds the ball's collision mask from the stencils named in cfg
func LoadMask(fsys fs.FS, cfg *config.BallConfig) (*entity.ActorMask, error) {
	inner, err := LoadStencil(fsys, cfg.InnerStencil)
	if err != nil {
		return nil, err
	}
	outer, err := LoadStencil(fsys, cfg.OuterStencil)
	if err != nil {
		return nil, err
	}

	mask, err := entity.NewActorMask(inner, outer)
	if err != nil {
		return nil, fmt.Errorf("failed to build ball mask: %w", err)
	}
	return mask, nil
}

// ParseHexColor parses a #RRGGBB color
func ParseHexColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
