package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"slider-button/internal/domain/gesture"
	"slider-button/internal/domain/model"
)

func kitchenState() map[string]interface{} {
	return map[string]interface{}{
		"state":      "on",
		"attributes": map[string]interface{}{"brightness": 102.0},
	}
}

func runReplay(t *testing.T, card model.CardConfig, events string) []map[string]interface{} {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, replay(context.Background(), card, kitchenState(), strings.NewReader(events), &out, gesture.DefaultConfig()))

	var lines []map[string]interface{}
	dec := json.NewDecoder(&out)
	for dec.More() {
		var line map[string]interface{}
		require.NoError(t, dec.Decode(&line))
		lines = append(lines, line)
	}
	return lines
}

const dragEvents = `
# drag from 40% to 60%
{"t": 0,  "kind": "down", "pointer_id": 1, "x": 50,  "y": 25, "rect": {"width": 200, "height": 50}}
{"t": 20, "kind": "move", "pointer_id": 1, "x": 70,  "y": 25, "rect": {"width": 200, "height": 50}}
{"t": 40, "kind": "move", "pointer_id": 1, "x": 110, "y": 25, "rect": {"width": 200, "height": 50}}
{"t": 60, "kind": "up",   "pointer_id": 1, "x": 110, "y": 25, "rect": {"width": 200, "height": 50}}
`

func TestReplay_Drag(t *testing.T) {
	lines := runReplay(t, model.CardConfig{Entity: "light.kitchen"}, dragEvents)
	require.Len(t, lines, 2)

	assert.Equal(t, "call", lines[0]["type"])
	assert.Equal(t, "light.turn_on", lines[0]["service"])
	assert.Equal(t, 60.0, lines[0]["t"])
	assert.Equal(t, map[string]interface{}{"entity_id": "light.kitchen", "brightness_pct": 60.0}, lines[0]["data"])

	frame := lines[1]["frame"].(map[string]interface{})
	assert.Equal(t, "frame", lines[1]["type"])
	assert.Equal(t, "60%", frame["label"])
}

func TestReplay_TapsAndStateChanges(t *testing.T) {
	events := `
{"t": 0,   "target": "icon", "kind": "down", "pointer_id": 7, "x": 5, "y": 5}
{"t": 30,  "target": "icon", "kind": "up",   "pointer_id": 7, "x": 5, "y": 5}
{"t": 100, "type": "state", "state": {"state": "off"}}
{"t": 200, "kind": "down", "pointer_id": 1, "x": 50, "y": 25, "rect": {"width": 200, "height": 50}}
{"t": 250, "kind": "up",   "pointer_id": 1, "x": 50, "y": 25, "rect": {"width": 200, "height": 50}}
`
	lines := runReplay(t, model.CardConfig{Entity: "light.kitchen"}, events)
	require.Len(t, lines, 3)

	action := lines[0]["action"].(map[string]interface{})
	assert.Equal(t, "action", lines[0]["type"])
	assert.Equal(t, model.ActionMoreInfo, action["action"])
	assert.Equal(t, 30.0, lines[0]["t"])

	assert.Equal(t, "light.toggle", lines[1]["service"])

	frame := lines[2]["frame"].(map[string]interface{})
	assert.Equal(t, true, frame["off"])
	assert.Equal(t, "0%", frame["label"])
}

func TestReplay_Errors(t *testing.T) {
	card := model.CardConfig{Entity: "light.kitchen"}
	var out bytes.Buffer

	err := replay(context.Background(), card, kitchenState(), strings.NewReader(`{"t": 10}`+"\n"+`{"t": 5}`), &out, gesture.DefaultConfig())
	assert.ErrorContains(t, err, "goes back in time")

	err = replay(context.Background(), card, kitchenState(), strings.NewReader(`{"t": 1, "type": "wave"}`), &out, gesture.DefaultConfig())
	assert.ErrorContains(t, err, "unknown type")

	err = replay(context.Background(), card, kitchenState(), strings.NewReader(`not json`), &out, gesture.DefaultConfig())
	assert.ErrorContains(t, err, "line 1")
}
