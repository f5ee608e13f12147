package projection

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
	"slider-button/internal/domain/model"
	"slider-button/internal/domain/value"
)

// DefaultColor is the host theme's icon color, used when nothing better is known.
const DefaultColor = "var(--paper-item-icon-color, #44739e)"

var (
	coldWhite = mustParseHex("#a6d1ff")
	white     = mustParseHex("#ffffff")
	warmWhite = mustParseHex("#ffa000")
)

// mustParseHex parses a hex color via colorful.Hex, panicking on error.
func mustParseHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("mustParseHex: " + err.Error())
	}
	return c
}

// TemperatureColor maps a color temperature in mireds onto a cold-white-warm
// blend across the light's supported range.
func TemperatureColor(ct, minMireds, maxMireds float64) string {
	amount := 50.0
	if maxMireds > minMireds {
		amount = value.Clamp((ct-minMireds)/(maxMireds-minMireds)*100, 0, 100)
	}

	var c colorful.Color
	if amount < 50 {
		c = coldWhite.BlendRgb(white, amount/50)
	} else {
		c = white.BlendRgb(warmWhite, (amount-50)/50)
	}
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgb(%d, %d, %d)", r, g, b)
}

// HueSatColor renders a hue in degrees and a saturation in percent as CSS hsl.
func HueSatColor(hs model.HueSat) string {
	return fmt.Sprintf("hsl(%s, 100%%, %s%%)", model.FormatNumber(hs.Hue), model.FormatNumber(100-hs.Sat/2))
}

// hueSatColor is the color of a lit light reporting hs_color.
func hueSatColor(e model.Entity) (string, bool) {
	l := e.Attributes.Light
	if l == nil || !l.On || e.Attributes.HueSat == nil {
		return "", false
	}
	return HueSatColor(*e.Attributes.HueSat), true
}

// stateColor is hueSatColor, falling back to the color temperature when the
// light reports one along with its mired range.
func stateColor(e model.Entity) (string, bool) {
	if c, ok := hueSatColor(e); ok {
		return c, true
	}
	l := e.Attributes.Light
	if l == nil || !l.On {
		return "", false
	}
	if l.Ct > 0 && e.Attributes.MinMireds > 0 && e.Attributes.MaxMireds > 0 {
		return TemperatureColor(float64(l.Ct), e.Attributes.MinMireds, e.Attributes.MaxMireds), true
	}
	return "", false
}

// brightnessFilter dims by half at 0% up to full at 100%; zero reads as full
// so an off entity does not render black.
func brightnessFilter(enabled bool, pct int) string {
	if !enabled || pct == 0 {
		return "brightness(100%)"
	}
	return fmt.Sprintf("brightness(%s%%)", model.FormatNumber(float64(pct+100)/2))
}
