package translator

import (
	"fmt"
	"math"
	"strconv"

	"github.com/Knetic/govaluate"
	"slider-button/internal/domain/model"
)

// CustomStrategy applies the card's formulas on top of the domain strategy.
type CustomStrategy struct {
	Inner Translator
}

func (s *CustomStrategy) ToEntity(haState map[string]interface{}, ref model.EntityRef) model.Entity {
	e, _ := s.Entity(haState, ref)
	return e
}

// Entity is ToEntity that also reports a to_value formula that failed to
// compile or evaluate. The entity then carries the unconverted input.
func (s *CustomStrategy) Entity(haState map[string]interface{}, ref model.EntityRef) (model.Entity, error) {
	e := s.Inner.ToEntity(haState, ref)
	if ref.Formula == nil || ref.Formula.ToValue == "" {
		return e, nil
	}

	// Default to brightness/level if available
	var input float64
	attr := e.Attributes.Raw
	if v, ok := number(attr, "brightness"); ok {
		input = v
	} else if v, ok := number(attr, "current_position"); ok {
		input = v
	} else if v, ok := number(attr, "temperature"); ok {
		input = v
	} else if v, ok := number(attr, "value"); ok {
		input = v
	} else if v, err := strconv.ParseFloat(e.State, 64); err == nil {
		input = v
	} else {
		input = e.Raw
	}

	var err error
	if e.Available {
		e.Raw, err = evaluate(ref.Formula.ToValue, input)
	}
	if e.Kind == model.KindBinary {
		e.Kind = model.KindPercentage
	}
	return e, err
}

func (s *CustomStrategy) ToCommand(e model.Entity, value float64) model.Command {
	cmd, _ := s.Command(e, value)
	return cmd
}

// Command is ToCommand that also reports a failing to_entity formula. The
// command then carries the slider value unchanged.
func (s *CustomStrategy) Command(e model.Entity, value float64) (model.Command, error) {
	if e.Ref.Formula == nil || e.Ref.Formula.ToEntity == "" {
		return s.Inner.ToCommand(e, value), nil
	}
	output, err := evaluate(e.Ref.Formula.ToEntity, value)

	// Guessing attribute name based on entity domain
	switch e.Ref.Domain() {
	case model.DomainLight:
		if output <= 0 {
			return command(model.DomainLight, "turn_off", nil), err
		}
		return command(model.DomainLight, "turn_on", map[string]interface{}{"brightness": math.Round(output)}), err
	case model.DomainCover:
		return command(model.DomainCover, "set_cover_position", map[string]interface{}{"position": int(output)}), err
	case model.DomainClimate:
		return command(model.DomainClimate, "set_temperature", map[string]interface{}{"temperature": output}), err
	case model.DomainInputNumber, model.DomainNumber:
		return command(e.Ref.Domain(), "set_value", map[string]interface{}{"value": output}), err
	default:
		return s.Inner.ToCommand(e, output), err
	}
}

func (s *CustomStrategy) ToggleCommand(e model.Entity) model.Command {
	return s.Inner.ToggleCommand(e)
}

// evaluate handles simple formulas like "x * 2.54" or "x / 2.54 + 7".
// On failure it returns x together with the reason.
func evaluate(formula string, x float64) (float64, error) {
	expression, err := govaluate.NewEvaluableExpression(formula)
	if err != nil {
		return x, fmt.Errorf("formula %q: %w", formula, err)
	}
	parameters := make(map[string]interface{}, 1)
	parameters["x"] = x

	result, err := expression.Evaluate(parameters)
	if err != nil {
		return x, fmt.Errorf("formula %q: %w", formula, err)
	}

	if val, ok := result.(float64); ok {
		return val, nil
	}
	return x, fmt.Errorf("formula %q: result %v is not a number: %w", formula, result, model.ErrInvalidConfig)
}
