package report

import (
	"github.com/lucasb-eyer/go-colorful"

	"rag-assessment/internal/domain"
)

var defaultBrand = domain.BrandColors{
	Primary:   "#1E3A5F",
	Secondary: "#3D7EAA",
	Red:       "#D9534F",
	Amber:     "#F0AD4E",
	Green:     "#5CB85C",
}

type palette struct {
	primary   colorful.Color
	secondary colorful.Color
	red       colorful.Color
	amber     colorful.Color
	green     colorful.Color
	neutral   colorful.Color
	text      colorful.Color
	muted     colorful.Color
}

// newPalette parses brand hex codes; empty or malformed entries fall back to
// the default brand.
func newPalette(brand domain.BrandColors) palette {
	return palette{
		primary:   hexOr(brand.Primary, defaultBrand.Primary),
		secondary: hexOr(brand.Secondary, defaultBrand.Secondary),
		red:       hexOr(brand.Red, defaultBrand.Red),
		amber:     hexOr(brand.Amber, defaultBrand.Amber),
		green:     hexOr(brand.Green, defaultBrand.Green),
		neutral:   hexOr("#E0E0E0", ""),
		text:      hexOr("#333333", ""),
		muted:     hexOr("#999999", ""),
	}
}

func hexOr(raw, fallback string) colorful.Color {
	if c, err := colorful.Hex(raw); err == nil {
		return c
	}
	c, _ := colorful.Hex(fallback)
	return c
}

func (p palette) band(b domain.Band) colorful.Color {
	switch b {
	case domain.BandGreen:
		return p.green
	case domain.BandAmber:
		return p.amber
	case domain.BandRed:
		return p.red
	default:
		return p.neutral
	}
}

func rgb(c colorful.Color) (int, int, int) {
	r, g, b := c.RGB255()
	return int(r), int(g), int(b)
}
