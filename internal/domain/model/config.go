package model

type Direction string

const (
	DirectionLeftRight Direction = "left-right"
	DirectionRightLeft Direction = "right-left"
	DirectionTopBottom Direction = "top-bottom"
	DirectionBottomTop Direction = "bottom-top"
)

// Normalize maps unknown directions to left-right.
func (d Direction) Normalize() Direction {
	switch d {
	case DirectionLeftRight, DirectionRightLeft, DirectionTopBottom, DirectionBottomTop:
		return d
	default:
		return DirectionLeftRight
	}
}

// Vertical reports whether the slider travels along the Y axis.
func (d Direction) Vertical() bool {
	d = d.Normalize()
	return d == DirectionTopBottom || d == DirectionBottomTop
}

// Reversed reports whether the pointer percentage grows against the screen axis.
func (d Direction) Reversed() bool {
	d = d.Normalize()
	return d == DirectionRightLeft || d == DirectionBottomTop
}

type Background string

const (
	BackgroundSolid    Background = "solid"
	BackgroundGradient Background = "gradient"
	BackgroundTriangle Background = "triangle"
	BackgroundStriped  Background = "striped"
	BackgroundCustom   Background = "custom"
)

type ColorMode string

const (
	ColorModeDefault ColorMode = "default"
	ColorModeState   ColorMode = "state"
	ColorModeCustom  ColorMode = "custom"
)

const (
	ActionToggle        = "toggle"
	ActionCallService   = "call-service"
	ActionPerformAction = "perform-action"
	ActionMoreInfo      = "more-info"
	ActionNavigate      = "navigate"
	ActionURL           = "url"
	ActionNone          = "none"
)

// ActionConfig names what a gesture does. The core only selects it; collaborators run it.
type ActionConfig struct {
	Action         string                 `yaml:"action" json:"action"`
	Service        string                 `yaml:"service,omitempty" json:"service,omitempty"`
	PerformAction  string                 `yaml:"perform_action,omitempty" json:"perform_action,omitempty"`
	ServiceData    map[string]interface{} `yaml:"service_data,omitempty" json:"service_data,omitempty"`
	Data           map[string]interface{} `yaml:"data,omitempty" json:"data,omitempty"`
	NavigationPath string                 `yaml:"navigation_path,omitempty" json:"navigation_path,omitempty"`
	URLPath        string                 `yaml:"url_path,omitempty" json:"url_path,omitempty"`
	Entity         string                 `yaml:"entity,omitempty" json:"entity,omitempty"`
}

// Kind returns the normalized action name; unknown or empty actions read as none.
func (a *ActionConfig) Kind() string {
	if a == nil {
		return ActionNone
	}
	switch a.Action {
	case ActionToggle, ActionCallService, ActionMoreInfo, ActionNavigate, ActionURL:
		return a.Action
	case ActionPerformAction:
		return ActionCallService
	default:
		return ActionNone
	}
}

// Enabled reports whether the action does anything.
func (a *ActionConfig) Enabled() bool {
	return a.Kind() != ActionNone
}

// ServiceName returns "domain.service" for call-service actions.
func (a *ActionConfig) ServiceName() string {
	if a == nil {
		return ""
	}
	if a.PerformAction != "" {
		return a.PerformAction
	}
	return a.Service
}

// Payload merges service_data and data.
func (a *ActionConfig) Payload() map[string]interface{} {
	out := make(map[string]interface{})
	if a == nil {
		return out
	}
	for k, v := range a.ServiceData {
		out[k] = v
	}
	for k, v := range a.Data {
		out[k] = v
	}
	return out
}

type SliderConfig struct {
	Direction      Direction  `yaml:"direction,omitempty" json:"direction,omitempty"`
	Background     Background `yaml:"background,omitempty" json:"background,omitempty"`
	UseBrightness  *bool      `yaml:"use_brightness,omitempty" json:"use_brightness,omitempty"`
	ColorMode      ColorMode  `yaml:"color_mode,omitempty" json:"color_mode,omitempty"`
	Color          string     `yaml:"color,omitempty" json:"color,omitempty"`
	ShowTrack      *bool      `yaml:"show_track,omitempty" json:"show_track,omitempty"`
	DisableSliding *bool      `yaml:"disable_sliding,omitempty" json:"disable_sliding,omitempty"`
	Invert         *bool      `yaml:"invert,omitempty" json:"invert,omitempty"`
	ForceSquare    bool       `yaml:"force_square,omitempty" json:"force_square,omitempty"`

	Min      *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max      *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	MinValue *float64 `yaml:"min_value,omitempty" json:"min_value,omitempty"`
	MaxValue *float64 `yaml:"max_value,omitempty" json:"max_value,omitempty"`
	Step     *float64 `yaml:"step,omitempty" json:"step,omitempty"`

	Attribute string `yaml:"attribute,omitempty" json:"attribute,omitempty"`

	TapAction       *ActionConfig `yaml:"tap_action,omitempty" json:"tap_action,omitempty"`
	HoldAction      *ActionConfig `yaml:"hold_action,omitempty" json:"hold_action,omitempty"`
	DoubleTapAction *ActionConfig `yaml:"double_tap_action,omitempty" json:"double_tap_action,omitempty"`
}

// SlidingDisabled reports the disable_sliding flag.
func (s SliderConfig) SlidingDisabled() bool {
	return s.DisableSliding != nil && *s.DisableSliding
}

type IconConfig struct {
	Icon          string        `yaml:"icon,omitempty" json:"icon,omitempty"`
	Show          *bool         `yaml:"show,omitempty" json:"show,omitempty"`
	UseBrightness *bool         `yaml:"use_brightness,omitempty" json:"use_brightness,omitempty"`
	ColorMode     ColorMode     `yaml:"color_mode,omitempty" json:"color_mode,omitempty"`
	Color         string        `yaml:"color,omitempty" json:"color,omitempty"`
	TapAction     *ActionConfig `yaml:"tap_action,omitempty" json:"tap_action,omitempty"`
}

type ActionButtonConfig struct {
	Icon        string        `yaml:"icon,omitempty" json:"icon,omitempty"`
	Show        *bool         `yaml:"show,omitempty" json:"show,omitempty"`
	ShowSpinner *bool         `yaml:"show_spinner,omitempty" json:"show_spinner,omitempty"`
	TapAction   *ActionConfig `yaml:"tap_action,omitempty" json:"tap_action,omitempty"`
}

// CardConfig is one widget's configuration as read from the card file.
type CardConfig struct {
	ID            string              `yaml:"id" json:"id"`
	Entity        string              `yaml:"entity" json:"entity"`
	Name          string              `yaml:"name,omitempty" json:"name,omitempty"`
	Attribute     string              `yaml:"attribute,omitempty" json:"attribute,omitempty"`
	ShowName      *bool               `yaml:"show_name,omitempty" json:"show_name,omitempty"`
	ShowState     *bool               `yaml:"show_state,omitempty" json:"show_state,omitempty"`
	ShowAttribute bool                `yaml:"show_attribute,omitempty" json:"show_attribute,omitempty"`
	Compact       bool                `yaml:"compact,omitempty" json:"compact,omitempty"`
	Icon          *IconConfig         `yaml:"icon,omitempty" json:"icon,omitempty"`
	ActionButton  *ActionButtonConfig `yaml:"action_button,omitempty" json:"action_button,omitempty"`
	Slider        *SliderConfig       `yaml:"slider,omitempty" json:"slider,omitempty"`
	Custom        *Formula            `yaml:"custom,omitempty" json:"custom,omitempty"`
	Debug         bool                `yaml:"debug,omitempty" json:"debug,omitempty"`
}

// Ref builds the entity reference the card reads and writes through.
func (c *CardConfig) Ref() EntityRef {
	ref := EntityRef{ID: c.Entity, Formula: c.Custom}
	if c.Slider != nil {
		ref.Attribute = c.Slider.Attribute
	}
	return ref
}

// Validate checks the parts of a card the core cannot default.
func (c *CardConfig) Validate() error {
	if c.Entity == "" || DomainOf(c.Entity) == "" {
		return ErrInvalidConfig
	}
	return nil
}
