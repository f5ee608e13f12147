package translator

import (
	"slider-button/internal/domain/model"
)

type Factory struct {
	strategies map[string]Translator
	fallback   Translator
}

func NewFactory() *Factory {
	sw := &SwitchStrategy{}
	ranged := &NumberStrategy{}
	return &Factory{
		strategies: map[string]Translator{
			model.DomainLight:        &LightStrategy{},
			model.DomainSwitch:       sw,
			model.DomainInputBoolean: sw,
			model.DomainAutomation:   sw,
			model.DomainLock:         &LockStrategy{},
			model.DomainFan:          &FanStrategy{},
			model.DomainCover:        &CoverStrategy{},
			model.DomainMediaPlayer:  &MediaPlayerStrategy{},
			model.DomainClimate:      &ClimateStrategy{},
			model.DomainNumber:       ranged,
			model.DomainInputNumber:  ranged,
		},
		fallback: sw,
	}
}

// GetTranslator picks the strategy for ref's domain. References carrying a custom
// formula get the domain strategy wrapped in a CustomStrategy.
func (f *Factory) GetTranslator(ref model.EntityRef) Translator {
	t, ok := f.strategies[ref.Domain()]
	if !ok {
		t = f.fallback
	}
	if ref.Formula != nil && (ref.Formula.ToValue != "" || ref.Formula.ToEntity != "") {
		return &CustomStrategy{Inner: t}
	}
	return t
}

// Translate is GetTranslator(ref).ToEntity(haState, ref). The error is set only
// when a custom formula failed; the entity is usable either way.
func (f *Factory) Translate(haState map[string]interface{}, ref model.EntityRef) (model.Entity, error) {
	t := f.GetTranslator(ref)
	if c, ok := t.(*CustomStrategy); ok {
		return c.Entity(haState, ref)
	}
	return t.ToEntity(haState, ref), nil
}

// Command is GetTranslator(e.Ref).ToCommand(e, value) with the same error
// contract as Translate.
func (f *Factory) Command(e model.Entity, value float64) (model.Command, error) {
	t := f.GetTranslator(e.Ref)
	if c, ok := t.(*CustomStrategy); ok {
		return c.Command(e, value)
	}
	return t.ToCommand(e, value), nil
}
