package model

func boolPtr(b bool) *bool { return &b }

func toggleAction() *ActionConfig { return &ActionConfig{Action: ActionToggle} }

// SliderDefaults returns the per-domain slider defaults.
func SliderDefaults(domain string) SliderConfig {
	base := SliderConfig{
		Direction:      DirectionLeftRight,
		Background:     BackgroundSolid,
		UseBrightness:  boolPtr(false),
		ColorMode:      ColorModeDefault,
		ShowTrack:      boolPtr(false),
		DisableSliding: boolPtr(false),
		TapAction:      toggleAction(),
	}
	switch domain {
	case DomainLight:
		base.Background = BackgroundGradient
		base.ColorMode = ColorModeState
		base.UseBrightness = boolPtr(true)
	case DomainSwitch, DomainLock:
		base.DisableSliding = boolPtr(true)
	case DomainCover:
		base.Direction = DirectionTopBottom
		base.Background = BackgroundStriped
		base.Invert = boolPtr(true)
	case DomainMediaPlayer:
		base.Background = BackgroundTriangle
		base.ShowTrack = boolPtr(true)
	case DomainClimate:
		base.Background = BackgroundTriangle
		base.ShowTrack = boolPtr(true)
	}
	return base
}

// IconDefaults mirrors the stock icon behaviour: show it, tap opens more-info.
func IconDefaults() IconConfig {
	return IconConfig{
		Show:          boolPtr(true),
		ColorMode:     ColorModeDefault,
		UseBrightness: boolPtr(false),
		TapAction:     &ActionConfig{Action: ActionMoreInfo},
	}
}

func ActionButtonDefaults() ActionButtonConfig {
	return ActionButtonConfig{
		Icon:        "mdi:power",
		Show:        boolPtr(false),
		ShowSpinner: boolPtr(false),
		TapAction:   toggleAction(),
	}
}

// WithDefaults returns a copy of the card with domain defaults filled in under
// whatever the user configured.
func (c CardConfig) WithDefaults() CardConfig {
	out := c
	if out.ShowName == nil {
		out.ShowName = boolPtr(true)
	}
	if out.ShowState == nil {
		out.ShowState = boolPtr(true)
	}

	if DomainOf(c.Entity) == DomainMediaPlayer && out.Attribute == "" {
		out.Attribute = "media_title"
		out.ShowAttribute = true
	}

	s := SliderDefaults(DomainOf(c.Entity))
	if c.Slider != nil {
		mergeSlider(&s, *c.Slider)
	}
	out.Slider = &s

	icon := IconDefaults()
	if c.Icon != nil {
		u := *c.Icon
		if u.Icon != "" {
			icon.Icon = u.Icon
		}
		if u.Show != nil {
			icon.Show = u.Show
		}
		if u.UseBrightness != nil {
			icon.UseBrightness = u.UseBrightness
		}
		if u.ColorMode != "" {
			icon.ColorMode = u.ColorMode
		}
		if u.Color != "" {
			icon.Color = u.Color
		}
		if u.TapAction != nil {
			icon.TapAction = u.TapAction
		}
	}
	out.Icon = &icon

	btn := ActionButtonDefaults()
	if c.ActionButton != nil {
		u := *c.ActionButton
		if u.Icon != "" {
			btn.Icon = u.Icon
		}
		if u.Show != nil {
			btn.Show = u.Show
		}
		if u.ShowSpinner != nil {
			btn.ShowSpinner = u.ShowSpinner
		}
		if u.TapAction != nil {
			btn.TapAction = u.TapAction
		}
	}
	out.ActionButton = &btn
	return out
}

func mergeSlider(dst *SliderConfig, u SliderConfig) {
	if u.Direction != "" {
		dst.Direction = u.Direction
	}
	if u.Background != "" {
		dst.Background = u.Background
	}
	if u.UseBrightness != nil {
		dst.UseBrightness = u.UseBrightness
	}
	if u.ColorMode != "" {
		dst.ColorMode = u.ColorMode
	}
	if u.Color != "" {
		dst.Color = u.Color
	}
	if u.ShowTrack != nil {
		dst.ShowTrack = u.ShowTrack
	}
	if u.DisableSliding != nil {
		dst.DisableSliding = u.DisableSliding
	}
	if u.Invert != nil {
		dst.Invert = u.Invert
	}
	dst.ForceSquare = dst.ForceSquare || u.ForceSquare
	if u.Min != nil {
		dst.Min = u.Min
	}
	if u.Max != nil {
		dst.Max = u.Max
	}
	if u.MinValue != nil {
		dst.MinValue = u.MinValue
	}
	if u.MaxValue != nil {
		dst.MaxValue = u.MaxValue
	}
	if u.Step != nil {
		dst.Step = u.Step
	}
	if u.Attribute != "" {
		dst.Attribute = u.Attribute
	}
	if u.TapAction != nil {
		dst.TapAction = u.TapAction
	}
	if u.HoldAction != nil {
		dst.HoldAction = u.HoldAction
	}
	if u.DoubleTapAction != nil {
		dst.DoubleTapAction = u.DoubleTapAction
	}
}
