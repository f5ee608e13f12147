package translator

import (
	"slider-button/internal/domain/model"
)

type ClimateStrategy struct{}

func (s *ClimateStrategy) ToEntity(haState map[string]interface{}, ref model.EntityRef) model.Entity {
	e := base(haState, ref, model.KindRanged)
	attr := e.Attributes.Raw
	e.Raw, _ = number(attr, "temperature")
	e.Min, e.Max, e.Step = 7, 35, 0.5
	if v, ok := number(attr, "min_temp"); ok {
		e.Min = v
	}
	if v, ok := number(attr, "max_temp"); ok {
		e.Max = v
	}
	if v, ok := number(attr, "target_temp_step"); ok && v > 0 {
		e.Step = v
	}
	e.HasRange = true
	if e.Attributes.Unit == "" {
		e.Attributes.Unit = "°C"
	}
	return e
}

func (s *ClimateStrategy) ToCommand(e model.Entity, value float64) model.Command {
	return command(model.DomainClimate, "set_temperature", map[string]interface{}{
		"temperature": value,
	})
}

func (s *ClimateStrategy) ToggleCommand(e model.Entity) model.Command {
	return command(model.DomainClimate, "toggle", nil)
}
