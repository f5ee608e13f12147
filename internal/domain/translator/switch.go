package translator

import (
	"slider-button/internal/domain/model"
)

var toggleDomains = map[string]bool{
	model.DomainSwitch:       true,
	model.DomainInputBoolean: true,
	model.DomainAutomation:   true,
}

// SwitchStrategy handles on/off entities and any domain without its own strategy.
type SwitchStrategy struct{}

func (s *SwitchStrategy) ToEntity(haState map[string]interface{}, ref model.EntityRef) model.Entity {
	e := base(haState, ref, model.KindBinary)
	if e.Available && !model.IsOff(e.State) {
		e.Raw = 1
	}
	return e
}

func (s *SwitchStrategy) ToCommand(e model.Entity, value float64) model.Command {
	service := "turn_off"
	if value > 0 {
		service = "turn_on"
	}
	return command(s.domain(e), service, nil)
}

func (s *SwitchStrategy) ToggleCommand(e model.Entity) model.Command {
	return command(s.domain(e), "toggle", nil)
}

func (s *SwitchStrategy) domain(e model.Entity) string {
	d := e.Ref.Domain()
	if toggleDomains[d] {
		return d
	}
	return "homeassistant"
}

type LockStrategy struct{}

func (s *LockStrategy) ToEntity(haState map[string]interface{}, ref model.EntityRef) model.Entity {
	e := base(haState, ref, model.KindBinary)
	if e.State == "locked" {
		e.Raw = 1
	}
	return e
}

func (s *LockStrategy) ToCommand(e model.Entity, value float64) model.Command {
	if value > 0 {
		return command(model.DomainLock, "lock", nil)
	}
	return command(model.DomainLock, "unlock", nil)
}

func (s *LockStrategy) ToggleCommand(e model.Entity) model.Command {
	if e.State == "locked" {
		return command(model.DomainLock, "unlock", nil)
	}
	return command(model.DomainLock, "lock", nil)
}
