package model

import (
	"errors"
	"strings"

	"github.com/amimof/huego"
)

var (
	ErrUnknownEntity = errors.New("unknown entity")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Kind is the closed set of value semantics an entity can expose to the slider.
type Kind string

const (
	KindBinary     Kind = "binary"     // 0/1, on/off
	KindRanged     Kind = "ranged"     // arbitrary numeric range, self-described min/max/step
	KindPercentage Kind = "percentage" // native 0-100
)

// Well-known Home Assistant domains.
const (
	DomainLight        = "light"
	DomainSwitch       = "switch"
	DomainFan          = "fan"
	DomainCover        = "cover"
	DomainInputBoolean = "input_boolean"
	DomainInputNumber  = "input_number"
	DomainMediaPlayer  = "media_player"
	DomainNumber       = "number"
	DomainClimate      = "climate"
	DomainLock         = "lock"
	DomainAutomation   = "automation"
)

const (
	StateUnavailable = "unavailable"
	StateUnknown     = "unknown"
)

// StatesOff lists the raw states that read as "off" for binary entities.
var StatesOff = []string{"closed", "locked", "off", "docked", "idle", "standby", "paused", "auto", "not_home", "disarmed", "false"}

// Formula maps raw entity attributes to slider values and back. Expressions use `x`.
type Formula struct {
	ToValue  string `yaml:"to_value,omitempty" json:"to_value,omitempty"`
	ToEntity string `yaml:"to_entity,omitempty" json:"to_entity,omitempty"`
}

// EntityRef identifies an entity and how its state should be read.
type EntityRef struct {
	ID        string
	Attribute string   // optional attribute selector (cover position vs tilt)
	Formula   *Formula // optional custom mapping
}

// Domain returns the part of the entity id before the dot.
func (r EntityRef) Domain() string {
	return DomainOf(r.ID)
}

func DomainOf(entityID string) string {
	domain, _, ok := strings.Cut(entityID, ".")
	if !ok {
		return ""
	}
	return domain
}

// Attributes are the presentation hints reported alongside an entity state.
type Attributes struct {
	FriendlyName string
	Icon         string
	Unit         string
	Picture      string

	// Light is the color/brightness snapshot for light entities, nil otherwise.
	// Hue is 0-65535, Sat 0-254, Ct in mireds.
	Light     *huego.State
	MinMireds float64
	MaxMireds float64

	// HueSat is hs_color exactly as reported. Light.Hue/Sat are its rounded
	// Hue API rendition, too coarse for display.
	HueSat *HueSat

	Raw map[string]interface{}
}

// HueSat is a hue in degrees and a saturation in percent.
type HueSat struct {
	Hue float64
	Sat float64
}

// Entity is the read-only view of an entity the core works with for one render or gesture cycle.
type Entity struct {
	Ref       EntityRef
	Kind      Kind
	State     string
	Raw       float64
	Available bool

	// Self-described range, only meaningful when HasRange is set.
	Min      float64
	Max      float64
	Step     float64
	HasRange bool

	// Invert is the domain's default for display inversion (covers).
	Invert bool

	Attributes Attributes
}

// IsOff reports whether the raw state is one of StatesOff.
func IsOff(state string) bool {
	for _, s := range StatesOff {
		if s == state {
			return true
		}
	}
	return false
}

// AttributeText returns the named attribute formatted for display.
func (e Entity) AttributeText(name string) string {
	if name == "" || e.Attributes.Raw == nil {
		return ""
	}
	v, ok := e.Attributes.Raw[name]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	default:
		return FormatNumberAny(t)
	}
}
