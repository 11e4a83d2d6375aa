// Package parameters handles configuration strings, like "color,clear_screen" or
// "max_moves=400,stop_prob=0.25", parsed into a map of keys to values.
//
// Users of a configuration pop the keys they know about with PopParamOr, and at the end
// call CheckAllUsed to reject anything left, which is most likely a typo.
package parameters

import (
	"github.com/LanMao8866/hexjump/internal/generics"
	"github.com/pkg/errors"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Params represent generic configuration parameters.
type Params map[string]string

// NewFromConfigString create params from user's configuration string, a comma-separated
// list of "key=value" or "key" (for booleans) items. Empty items are ignored.
func NewFromConfigString(config string) Params {
	params := make(Params)
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=") // Values may contain '='.
		params[strings.TrimSpace(key)] = value
	}
	return params
}

// ValueTypes that can be parsed from a configuration string.
type ValueTypes interface {
	bool | int | float64 | string | time.Duration
}

// PopParamOr is like GetParamOr, but it also deletes from the params map the retrieved parameter.
func PopParamOr[T ValueTypes](params Params, key string, defaultValue T) (T, error) {
	value, err := GetParamOr(params, key, defaultValue)
	if err != nil {
		return value, err
	}
	delete(params, key)
	return value, nil
}

// GetParamOr attempts to parse a parameter to the given type if the key is present, or returns
// the defaultValue if not.
//
// For bool types, a key without a value is interpreted as true.
func GetParamOr[T ValueTypes](params Params, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}
	toT := func(v any) T { return v.(T) }
	switch any(defaultValue).(type) {
	case string:
		return toT(value), nil
	case int:
		parsedValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q to int", key, value)
		}
		return toT(parsedValue), nil
	case float64:
		parsedValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q to float", key, value)
		}
		return toT(parsedValue), nil
	case time.Duration:
		parsedValue, err := time.ParseDuration(value)
		if err != nil {
			return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q to duration", key, value)
		}
		return toT(parsedValue), nil
	case bool:
		switch strings.ToLower(value) {
		case "", "true", "1", "yes": // Empty value is considered "true"
			return toT(true), nil
		case "false", "0", "no":
			return toT(false), nil
		}
		return defaultValue, errors.Errorf("failed to parse configuration %s=%q to bool", key, value)
	}
	return defaultValue, nil
}

// CheckAllUsed returns an error listing the keys still in params, typically after all the
// known ones were consumed with PopParamOr.
func CheckAllUsed(params Params) error {
	if len(params) == 0 {
		return nil
	}
	keys := generics.KeysSlice(params)
	slices.Sort(keys)
	return errors.Errorf("unknown configuration parameters %q", keys)
}
