package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"slider-button/internal/domain/model"
)

func kitchenStates() []map[string]interface{} {
	return []map[string]interface{}{
		{"entity_id": "switch.pump", "state": "off"},
		{
			"entity_id": "light.kitchen",
			"state":     "on",
			"attributes": map[string]interface{}{
				"brightness":    102.0,
				"friendly_name": "Kitchen",
			},
		},
	}
}

func TestEntityService_GetEntity(t *testing.T) {
	mockHA := new(MockHAPort)
	svc := NewEntityService(mockHA, nil, nil)
	mockHA.On("GetRawStates", mock.Anything).Return(kitchenStates(), nil)

	e, err := svc.GetEntity(context.Background(), model.EntityRef{ID: "light.kitchen"})
	require.NoError(t, err)
	assert.True(t, e.Available)
	assert.Equal(t, model.KindPercentage, e.Kind)
	assert.Equal(t, 40.0, e.Raw)
	assert.Equal(t, "Kitchen", e.Attributes.FriendlyName)

	e, err = svc.GetEntity(context.Background(), model.EntityRef{ID: "light.attic"})
	assert.ErrorIs(t, err, model.ErrUnknownEntity)
	assert.False(t, e.Available)
	assert.Equal(t, "light.attic", e.Ref.ID)
}

func TestEntityService_GetEntityError(t *testing.T) {
	mockHA := new(MockHAPort)
	svc := NewEntityService(mockHA, nil, nil)
	mockHA.On("GetRawStates", mock.Anything).Return(nil, errors.New("connection refused"))

	e, err := svc.GetEntity(context.Background(), model.EntityRef{ID: "switch.pump"})
	assert.EqualError(t, err, "connection refused")
	assert.False(t, e.Available)
	assert.Equal(t, model.KindBinary, e.Kind)
}

func TestEntityService_Lookup(t *testing.T) {
	mockHA := new(MockHAPort)
	svc := NewEntityService(mockHA, nil, nil)
	mockHA.On("GetRawState", mock.Anything, "switch.pump").Return(map[string]interface{}{"entity_id": "switch.pump", "state": "on"}, nil)

	e, err := svc.Lookup(context.Background(), model.EntityRef{ID: "switch.pump"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, e.Raw)
	mockHA.AssertNotCalled(t, "GetRawStates", mock.Anything)
}

func TestEntityService_SetValue(t *testing.T) {
	mockHA := new(MockHAPort)
	metrics := newCountingMetrics()
	svc := NewEntityService(mockHA, metrics, nil)
	light := model.Entity{Ref: model.EntityRef{ID: "light.kitchen"}, Kind: model.KindPercentage, State: "on", Available: true}

	mockHA.On("CallService", mock.Anything, "light", "turn_on", map[string]interface{}{
		"entity_id":      "light.kitchen",
		"brightness_pct": 60.0,
	}).Return(nil).Once()
	mockHA.On("CallService", mock.Anything, "light", "turn_off", map[string]interface{}{
		"entity_id": "light.kitchen",
	}).Return(errors.New("HA API error: 500")).Once()

	require.NoError(t, svc.SetValue(context.Background(), light, 60))
	err := svc.SetValue(context.Background(), light, 0)
	assert.EqualError(t, err, "light.turn_off for light.kitchen: HA API error: 500")

	mockHA.AssertExpectations(t)
	assert.Equal(t, 1, metrics.commands["light.turn_on"])
	assert.Equal(t, 1, metrics.commands["light.turn_off"])
}

func TestEntityService_Toggle(t *testing.T) {
	mockHA := new(MockHAPort)
	svc := NewEntityService(mockHA, nil, nil)
	mockHA.On("CallService", mock.Anything, "light", "toggle", map[string]interface{}{
		"entity_id": "light.kitchen",
	}).Return(nil)

	e := model.Entity{Ref: model.EntityRef{ID: "light.kitchen"}, Kind: model.KindPercentage}
	require.NoError(t, svc.Toggle(context.Background(), e))
	mockHA.AssertExpectations(t)
}

func TestEntityService_FormulaErrorsAreLogged(t *testing.T) {
	var logs bytes.Buffer
	mockHA := new(MockHAPort)
	svc := NewEntityService(mockHA, nil, slog.New(slog.NewTextHandler(&logs, nil)))
	ref := model.EntityRef{ID: "input_number.level", Formula: &model.Formula{ToValue: "x +", ToEntity: "x * 2"}}
	mockHA.On("GetRawStates", mock.Anything).Return([]map[string]interface{}{
		{"entity_id": "input_number.level", "state": "30"},
	}, nil)

	e, err := svc.GetEntity(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, 30.0, e.Raw)
	assert.Contains(t, logs.String(), "invalid to_value formula")
	assert.Contains(t, logs.String(), "input_number.level")

	logs.Reset()
	e.Ref.Formula = &model.Formula{ToEntity: "x > 1"}
	mockHA.On("CallService", mock.Anything, "input_number", "set_value", map[string]interface{}{
		"entity_id": "input_number.level",
		"value":     40.0,
	}).Return(nil)
	require.NoError(t, svc.SetValue(context.Background(), e, 40))
	assert.Contains(t, logs.String(), "invalid to_entity formula")
	mockHA.AssertExpectations(t)
}
