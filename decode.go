package plist

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Decode converts obj into native Go values and populates v, which
// must be a pointer. It is the trimmed, single-direction descendant
// of unmarshal.go's reflect-based Unmarshal: rather than walking v's
// reflect.Value itself, it first lowers the Object tree into plain
// map[string]interface{}/[]interface{}/scalars (ToNative below) and
// hands the result to mapstructure, which already does the
// struct-tag-aware, weakly-typed assignment teacher's Unmarshal used
// hand-rolled reflection for.
func Decode(obj Object, v interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           v,
		WeaklyTypedInput: true,
		TagName:          "plist",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return fmt.Errorf("plist: building decoder: %w", err)
	}
	return dec.Decode(ToNative(obj))
}

// ToNative lowers an Object tree into the native Go values mapstructure
// (or encoding/json, or a template) expects: string, int64, float64,
// bool, []byte, time.Time, []interface{}, and map[string]interface{}.
func ToNative(obj Object) interface{} {
	switch o := obj.(type) {
	case String:
		return string(o)
	case Integer:
		return int64(o)
	case Real:
		return float64(o)
	case Boolean:
		return bool(o)
	case Data:
		return []byte(o)
	case Date:
		return time.Time(o)
	case *Array:
		out := make([]interface{}, o.Len())
		o.Range(func(i int, v Object) { out[i] = ToNative(v) })
		return out
	case *Dictionary:
		out := make(map[string]interface{}, o.Len())
		o.Range(func(k string, v Object) { out[k] = ToNative(v) })
		return out
	default:
		return nil
	}
}
