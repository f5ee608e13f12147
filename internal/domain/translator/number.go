package translator

import (
	"strconv"

	"slider-button/internal/domain/model"
)

// NumberStrategy covers number and input_number: the state is the value and the
// attributes describe the range.
type NumberStrategy struct{}

func (s *NumberStrategy) ToEntity(haState map[string]interface{}, ref model.EntityRef) model.Entity {
	e := base(haState, ref, model.KindRanged)
	if v, err := strconv.ParseFloat(e.State, 64); err == nil {
		e.Raw = v
	}
	attr := e.Attributes.Raw
	minV, okMin := number(attr, "min")
	maxV, okMax := number(attr, "max")
	if okMin && okMax {
		e.Min, e.Max, e.HasRange = minV, maxV, true
		e.Step = 1
		if step, ok := number(attr, "step"); ok && step > 0 {
			e.Step = step
		}
	}
	return e
}

func (s *NumberStrategy) ToCommand(e model.Entity, value float64) model.Command {
	domain := e.Ref.Domain()
	if domain != model.DomainInputNumber {
		domain = model.DomainNumber
	}
	return command(domain, "set_value", map[string]interface{}{
		"value": value,
	})
}

// ToggleCommand flips between the ends of the entity's range.
func (s *NumberStrategy) ToggleCommand(e model.Entity) model.Command {
	target := e.Min
	if e.Raw == e.Min {
		target = e.Max
	}
	return s.ToCommand(e, target)
}
