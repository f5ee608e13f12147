package translator

import (
	"slider-button/internal/domain/model"
)

const CoverAttributeTilt = "tilt"

type CoverStrategy struct{}

func (s *CoverStrategy) ToEntity(haState map[string]interface{}, ref model.EntityRef) model.Entity {
	e := base(haState, ref, model.KindPercentage)
	e.Invert = true
	key := "current_position"
	if ref.Attribute == CoverAttributeTilt {
		key = "current_tilt_position"
	}
	if pos, ok := number(e.Attributes.Raw, key); ok {
		e.Raw = pos
	} else if e.State == "open" {
		e.Raw = 100
	}
	return e
}

func (s *CoverStrategy) ToCommand(e model.Entity, value float64) model.Command {
	if e.Ref.Attribute == CoverAttributeTilt {
		return command(model.DomainCover, "set_cover_tilt_position", map[string]interface{}{
			"tilt_position": value,
		})
	}
	return command(model.DomainCover, "set_cover_position", map[string]interface{}{
		"position": value,
	})
}

func (s *CoverStrategy) ToggleCommand(e model.Entity) model.Command {
	return command(model.DomainCover, "toggle", nil)
}
