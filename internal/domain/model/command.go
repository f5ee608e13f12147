package model

// Command is a remote service call produced from a slider value or a toggle.
type Command struct {
	Domain  string
	Service string
	Params  map[string]interface{}
	// OmitEntityID skips adding entity_id to the payload.
	OmitEntityID bool
}

// Name returns "domain.service".
func (c Command) Name() string {
	return c.Domain + "." + c.Service
}

// HostAction is an action only the host can carry out, passed through as configured.
type HostAction struct {
	Action         string     `json:"action"`
	Gesture        ActionKind `json:"gesture"`
	EntityID       string     `json:"entity_id,omitempty"`
	NavigationPath string     `json:"navigation_path,omitempty"`
	URLPath        string     `json:"url_path,omitempty"`
}
