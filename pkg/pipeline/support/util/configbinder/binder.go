package configbinder

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Package configbinder binds raw stage properties from the pipeline
// configuration onto typed stage configuration structs.

// BindProperties takes a map of raw properties (as decoded from the pipeline
// YAML) and binds them to a target struct. The target struct should use
// `yaml` tags, which double as the binding tags here.
func BindProperties(props map[string]interface{}, target interface{}) error {
	if len(props) == 0 {
		return nil
	}

	config := &mapstructure.DecoderConfig{
		Metadata: nil,
		Result:   target,
		// WeaklyTypedInput allows converting strings to numbers, bools, etc.,
		// so stage properties may be given as plain strings.
		WeaklyTypedInput: true,
		TagName:          "yaml",
		// Durations may be given as strings like "30s".
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	}

	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(props); err != nil {
		targetType := reflect.TypeOf(target)
		if targetType.Kind() == reflect.Ptr {
			targetType = targetType.Elem()
		}
		return fmt.Errorf("failed to bind properties to struct %s: %w", targetType.Name(), err)
	}

	return nil
}

// BindStringProperties is a convenience wrapper for property maps whose values
// are all strings (e.g. environment-sourced overrides).
func BindStringProperties(props map[string]string, target interface{}) error {
	if len(props) == 0 {
		return nil
	}
	intermediate := make(map[string]interface{}, len(props))
	for k, v := range props {
		intermediate[k] = v
	}
	return BindProperties(intermediate, target)
}
