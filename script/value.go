package script

import (
	"fmt"

	"go.starlark.net/starlark"
)

func toStarlarkValue(v interface{}) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}
	switch val := v.(type) {
	case string:
		return starlark.String(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case float64:
		return starlark.Float(val), nil
	case bool:
		return starlark.Bool(val), nil
	case []interface{}:
		elems := make([]starlark.Value, 0, len(val))
		for _, e := range val {
			sv, err := toStarlarkValue(e)
			if err != nil {
				return nil, err
			}
			elems = append(elems, sv)
		}
		return starlark.NewList(elems), nil
	case map[string]interface{}:
		d := starlark.NewDict(len(val))
		for k, e := range val {
			sv, err := toStarlarkValue(e)
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(starlark.String(k), sv); err != nil {
				return nil, err
			}
		}
		return d, nil
	}
	return starlark.None, fmt.Errorf("unsupported type: %T", v)
}

// FromStarlarkValue converts a Starlark value to its Go counterpart. Dicts
// keep only string keys. Values with no counterpart, such as functions,
// become nil.
func FromStarlarkValue(v starlark.Value) interface{} {
	switch val := v.(type) {
	case starlark.String:
		return string(val)
	case starlark.Int:
		i, _ := val.Int64()
		return int(i)
	case starlark.Float:
		return float64(val)
	case starlark.Bool:
		return bool(val)
	case *starlark.List:
		out := make([]interface{}, 0, val.Len())
		for i := 0; i < val.Len(); i++ {
			out = append(out, FromStarlarkValue(val.Index(i)))
		}
		return out
	case starlark.Tuple:
		out := make([]interface{}, 0, len(val))
		for _, e := range val {
			out = append(out, FromStarlarkValue(e))
		}
		return out
	case *starlark.Dict:
		out := make(map[string]interface{}, val.Len())
		for _, kv := range val.Items() {
			k, ok := kv[0].(starlark.String)
			if !ok {
				continue
			}
			out[string(k)] = FromStarlarkValue(kv[1])
		}
		return out
	}
	return nil
}
