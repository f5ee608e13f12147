package translator

import (
	"math"

	"github.com/amimof/huego"
	"slider-button/internal/domain/model"
)

type LightStrategy struct{}

func (s *LightStrategy) ToEntity(haState map[string]interface{}, ref model.EntityRef) model.Entity {
	e := base(haState, ref, model.KindPercentage)
	attr := e.Attributes.Raw

	light := &huego.State{On: e.State == "on", Reachable: e.Available}
	bri, hasBri := number(attr, "brightness")
	if hasBri {
		light.Bri = uint8(math.Max(0, math.Min(255, bri)))
	}
	switch {
	case !light.On:
		e.Raw = 0
	case hasBri:
		e.Raw = math.Round(bri / 2.55)
	default:
		// on/off-only light
		e.Raw = 100
	}

	if hs, ok := attr["hs_color"].([]interface{}); ok && len(hs) == 2 {
		h, _ := hs[0].(float64)
		sat, _ := hs[1].(float64)
		e.Attributes.HueSat = &model.HueSat{Hue: h, Sat: sat}
		light.Hue = uint16(math.Round(h / 360 * 65535))
		light.Sat = uint8(math.Round(sat / 100 * 254))
		light.ColorMode = "hs"
	}
	if ct, ok := number(attr, "color_temp"); ok {
		light.Ct = uint16(ct)
	} else if k, ok := number(attr, "color_temp_kelvin"); ok && k > 0 {
		light.Ct = uint16(math.Round(1e6 / k))
	}
	if light.Ct > 0 && light.ColorMode == "" {
		light.ColorMode = "ct"
	}
	if mode, ok := attr["color_mode"].(string); ok && mode == "color_temp" {
		light.ColorMode = "ct"
	}
	e.Attributes.Light = light

	e.Attributes.MinMireds, _ = number(attr, "min_mireds")
	e.Attributes.MaxMireds, _ = number(attr, "max_mireds")
	if e.Attributes.MinMireds == 0 {
		if k, ok := number(attr, "max_color_temp_kelvin"); ok && k > 0 {
			e.Attributes.MinMireds = math.Round(1e6 / k)
		}
	}
	if e.Attributes.MaxMireds == 0 {
		if k, ok := number(attr, "min_color_temp_kelvin"); ok && k > 0 {
			e.Attributes.MaxMireds = math.Round(1e6 / k)
		}
	}
	return e
}

func (s *LightStrategy) ToCommand(e model.Entity, value float64) model.Command {
	if value <= 0 {
		return command(model.DomainLight, "turn_off", nil)
	}
	return command(model.DomainLight, "turn_on", map[string]interface{}{
		"brightness_pct": value,
	})
}

func (s *LightStrategy) ToggleCommand(e model.Entity) model.Command {
	return command(model.DomainLight, "toggle", nil)
}
