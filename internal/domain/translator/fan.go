package translator

import (
	"slider-button/internal/domain/model"
)

type FanStrategy struct{}

func (s *FanStrategy) ToEntity(haState map[string]interface{}, ref model.EntityRef) model.Entity {
	e := base(haState, ref, model.KindPercentage)
	if e.State != "on" {
		return e
	}
	if pct, ok := number(e.Attributes.Raw, "percentage"); ok {
		e.Raw = pct
	} else {
		e.Raw = 100
	}
	if step, ok := number(e.Attributes.Raw, "percentage_step"); ok && step > 0 {
		e.Min, e.Max, e.Step, e.HasRange = 0, 100, step, true
	}
	return e
}

func (s *FanStrategy) ToCommand(e model.Entity, value float64) model.Command {
	if value <= 0 {
		return command(model.DomainFan, "turn_off", nil)
	}
	return command(model.DomainFan, "set_percentage", map[string]interface{}{
		"percentage": value,
	})
}

func (s *FanStrategy) ToggleCommand(e model.Entity) model.Command {
	return command(model.DomainFan, "toggle", nil)
}

type MediaPlayerStrategy struct{}

func (s *MediaPlayerStrategy) ToEntity(haState map[string]interface{}, ref model.EntityRef) model.Entity {
	e := base(haState, ref, model.KindPercentage)
	if vol, ok := number(e.Attributes.Raw, "volume_level"); ok {
		e.Raw = model.Clean(vol * 100)
	}
	return e
}

func (s *MediaPlayerStrategy) ToCommand(e model.Entity, value float64) model.Command {
	return command(model.DomainMediaPlayer, "volume_set", map[string]interface{}{
		"volume_level": model.Clean(value / 100),
	})
}

func (s *MediaPlayerStrategy) ToggleCommand(e model.Entity) model.Command {
	return command(model.DomainMediaPlayer, "toggle", nil)
}
