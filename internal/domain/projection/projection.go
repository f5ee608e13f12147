// Package projection derives what the host renders from a value and the card
// configuration. It holds no state and never feeds back into gestures or values.
package projection

import (
	"slider-button/internal/domain/model"
	"slider-button/internal/domain/value"
)

const (
	LabelOn          = "on"
	LabelOff         = "off"
	LabelUnavailable = "unavailable"
)

// Input is everything one render needs. Card must already carry its defaults.
type Input struct {
	Card     model.CardConfig
	Entity   model.Entity
	Model    value.Model
	Value    float64
	Changing bool
}

type Style struct {
	Filter string `json:"filter"`
	Color  string `json:"color"`
}

// Frame is the render contract handed to the host.
type Frame struct {
	Percentage     int     `json:"percentage"`
	Value          float64 `json:"value"`
	Label          string  `json:"label"`
	Name           string  `json:"name"`
	AttributeLabel string  `json:"attribute_label,omitempty"`

	Off            bool `json:"off"`
	Unavailable    bool `json:"unavailable"`
	Changing       bool `json:"changing"`
	SliderDisabled bool `json:"slider_disabled"`

	Direction  model.Direction  `json:"direction"`
	Background model.Background `json:"background"`
	ShowTrack  bool             `json:"show_track"`
	ShowName   bool             `json:"show_name"`
	ShowState  bool             `json:"show_state"`
	Compact    bool             `json:"compact"`

	Icon        string `json:"icon,omitempty"`
	ShowIcon    bool   `json:"show_icon"`
	IconStyle   Style  `json:"icon_style"`
	SliderStyle Style  `json:"slider_style"`

	ActionIcon string `json:"action_icon,omitempty"`
	ShowAction bool   `json:"show_action"`
}

// Project builds the frame for in.
func Project(in Input) Frame {
	card := in.Card
	slider := model.SliderConfig{}
	if card.Slider != nil {
		slider = *card.Slider
	}
	icon := model.IconConfig{}
	if card.Icon != nil {
		icon = *card.Icon
	}

	v := in.Value
	if !in.Entity.Available {
		v = in.Model.Min
	}
	pct := in.Model.Percentage(v)

	f := Frame{
		Percentage:     pct,
		Value:          model.Clean(v),
		Label:          Label(in.Entity, in.Model, v),
		Name:           name(card, in.Entity),
		Off:            !in.Entity.Available || v <= in.Model.Min,
		Unavailable:    !in.Entity.Available,
		Changing:       in.Changing,
		SliderDisabled: !in.Entity.Available || slider.SlidingDisabled(),
		Direction:      slider.Direction.Normalize(),
		Background:     slider.Background,
		ShowTrack:      isSet(slider.ShowTrack),
		ShowName:       isSet(card.ShowName),
		ShowState:      isSet(card.ShowState),
		Compact:        card.Compact,
		Icon:           icon.Icon,
		ShowIcon:       icon.Show == nil || *icon.Show,
	}
	if f.Icon == "" {
		f.Icon = in.Entity.Attributes.Icon
	}
	if card.ShowAttribute {
		f.AttributeLabel = in.Entity.AttributeText(card.Attribute)
	}
	if card.ActionButton != nil {
		f.ActionIcon = card.ActionButton.Icon
		f.ShowAction = isSet(card.ActionButton.Show)
	}

	f.IconStyle = Style{
		Filter: brightnessFilter(isSet(icon.UseBrightness), pct),
		Color:  iconColor(icon, in.Entity, pct),
	}
	f.SliderStyle = Style{
		Filter: brightnessFilter(isSet(slider.UseBrightness) && slider.Background != model.BackgroundGradient, pct),
		Color:  sliderColor(slider, in.Entity, pct),
	}
	return f
}

// Label is the state text for v.
func Label(e model.Entity, m value.Model, v float64) string {
	if !e.Available {
		return LabelUnavailable
	}
	switch m.Kind {
	case model.KindBinary:
		if v > m.Min {
			return LabelOn
		}
		return LabelOff
	case model.KindRanged:
		if e.Attributes.Unit != "" {
			return model.FormatNumber(v) + " " + e.Attributes.Unit
		}
		return model.FormatNumber(v)
	default:
		return model.FormatNumber(v) + "%"
	}
}

func iconColor(icon model.IconConfig, e model.Entity, pct int) string {
	switch icon.ColorMode {
	case model.ColorModeState:
		// icons follow hs_color only
		if c, ok := hueSatColor(e); ok {
			return c
		}
		return DefaultColor
	case model.ColorModeCustom:
		if pct == 0 {
			return DefaultColor
		}
		return orInherit(icon.Color)
	default:
		return ""
	}
}

func sliderColor(slider model.SliderConfig, e model.Entity, pct int) string {
	solidOff := pct == 0 && slider.Background == model.BackgroundSolid
	switch slider.ColorMode {
	case model.ColorModeState:
		if c, ok := stateColor(e); ok {
			return c
		}
		if solidOff {
			return DefaultColor
		}
		return "inherit"
	case model.ColorModeCustom:
		if solidOff {
			return DefaultColor
		}
		return orInherit(slider.Color)
	default:
		return "inherit"
	}
}

func name(card model.CardConfig, e model.Entity) string {
	switch {
	case card.Name != "":
		return card.Name
	case e.Attributes.FriendlyName != "":
		return e.Attributes.FriendlyName
	default:
		return card.Entity
	}
}

func orInherit(c string) string {
	if c == "" {
		return "inherit"
	}
	return c
}

func isSet(b *bool) bool { return b != nil && *b }
