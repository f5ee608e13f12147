package translator

import (
	"strconv"

	"slider-button/internal/domain/model"
)

// Translator converts between Home Assistant state objects and slider entities
// for one entity domain.
type Translator interface {
	ToEntity(haState map[string]interface{}, ref model.EntityRef) model.Entity
	ToCommand(e model.Entity, value float64) model.Command
	ToggleCommand(e model.Entity) model.Command
}

// base fills the fields every strategy shares.
func base(haState map[string]interface{}, ref model.EntityRef, kind model.Kind) model.Entity {
	e := model.Entity{Ref: ref, Kind: kind}
	e.State, _ = haState["state"].(string)
	e.Available = e.State != "" && e.State != model.StateUnavailable

	attr := attributes(haState)
	e.Attributes.Raw = attr
	e.Attributes.FriendlyName, _ = attr["friendly_name"].(string)
	e.Attributes.Icon, _ = attr["icon"].(string)
	e.Attributes.Unit, _ = attr["unit_of_measurement"].(string)
	e.Attributes.Picture, _ = attr["entity_picture"].(string)
	return e
}

func attributes(haState map[string]interface{}) map[string]interface{} {
	if attr, ok := haState["attributes"].(map[string]interface{}); ok {
		return attr
	}
	return map[string]interface{}{}
}

// number reads a numeric attribute; Home Assistant sometimes reports numbers as strings.
func number(attr map[string]interface{}, key string) (float64, bool) {
	switch v := attr[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

func command(domain, service string, params map[string]interface{}) model.Command {
	if params == nil {
		params = make(map[string]interface{})
	}
	return model.Command{Domain: domain, Service: service, Params: params}
}
