package model

import (
	"encoding/json"
	"fmt"
)

// Kinds recorded in serialized models.
const (
	KindMajorClass = "majorclass"
	KindRandom     = "random"
	KindLinear     = "linear"
)

type envelope struct {
	Kind  string          `json:"kind"`
	Model json.RawMessage `json:"model"`
}

// Marshal encodes m with its kind so Unmarshal can restore the concrete type.
func Marshal(m Model) ([]byte, error) {
	var kind string
	switch m.(type) {
	case *MajorClass:
		kind = KindMajorClass
	case *Random:
		kind = KindRandom
	case *Linear:
		kind = KindLinear
	default:
		return nil, fmt.Errorf("%w: cannot serialize %T", ErrUnsupportedStrategy, m)
	}
	body, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Kind: kind, Model: body})
}

// Unmarshal decodes a model written by Marshal.
func Unmarshal(data []byte) (Model, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	var m Model
	switch env.Kind {
	case KindMajorClass:
		m = &MajorClass{}
	case KindRandom:
		m = &Random{}
	case KindLinear:
		m = &Linear{}
	default:
		return nil, fmt.Errorf("%w: model kind %q", ErrUnsupportedStrategy, env.Kind)
	}
	if err := json.Unmarshal(env.Model, m); err != nil {
		return nil, fmt.Errorf("decode %s model: %w", env.Kind, err)
	}
	return m, nil
}
