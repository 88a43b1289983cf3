package driver

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/Roybie/tigr/pkg/runtime"
)

// ToValue converts a decoded YAML, JSON or msgpack document into a runtime
// value. Lists become arrays and maps become objects; map keys must be
// strings.
func ToValue(raw any) (runtime.Value, error) {
	switch v := raw.(type) {
	case nil:
		return runtime.NullValue{}, nil
	case runtime.Value:
		return v, nil
	case bool:
		return runtime.BoolValue{Val: v}, nil
	case string:
		return runtime.StringValue{Val: v}, nil
	case int:
		return runtime.IntegerValue{Val: int64(v)}, nil
	case int8:
		return runtime.IntegerValue{Val: int64(v)}, nil
	case int16:
		return runtime.IntegerValue{Val: int64(v)}, nil
	case int32:
		return runtime.IntegerValue{Val: int64(v)}, nil
	case int64:
		return runtime.IntegerValue{Val: v}, nil
	case uint8:
		return runtime.IntegerValue{Val: int64(v)}, nil
	case uint16:
		return runtime.IntegerValue{Val: int64(v)}, nil
	case uint32:
		return runtime.IntegerValue{Val: int64(v)}, nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, fmt.Errorf("%d overflows int64", v)
		}
		return runtime.IntegerValue{Val: int64(v)}, nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("%d overflows int64", v)
		}
		return runtime.IntegerValue{Val: int64(v)}, nil
	case float32:
		return runtime.FloatValue{Val: float64(v)}, nil
	case float64:
		return runtime.FloatValue{Val: v}, nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return runtime.IntegerValue{Val: n}, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", v.String())
		}
		return runtime.FloatValue{Val: f}, nil
	case []any:
		elements := make([]runtime.Value, 0, len(v))
		for i, item := range v {
			val, err := ToValue(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			elements = append(elements, val)
		}
		return runtime.ArrayValue{Elements: elements}, nil
	case map[string]any:
		obj := runtime.NewObject()
		for _, key := range sortedKeys(v) {
			val, err := ToValue(v[key])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			obj.Fields[key] = val
		}
		return obj, nil
	case map[any]any:
		m, err := stringKeys(v)
		if err != nil {
			return nil, err
		}
		return ToValue(m)
	default:
		return nil, fmt.Errorf("unsupported value of type %T", raw)
	}
}

// stringKeys converts a map with interface keys, as msgpack produces, into
// one with string keys.
func stringKeys(m map[any]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		key, ok := k.(string)
		if !ok {
			return nil, fmt.Errorf("map key %v is %T, not a string", k, k)
		}
		out[key] = v
	}
	return out, nil
}
