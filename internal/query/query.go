// Package query projects a decoded GWY object tree into the
// map/slice/scalar shape encoding/json would produce, so it can be
// searched with a JMESPath expression the way one would query any JSON
// document.
package query

import (
	"fmt"

	"github.com/gwyddion/gwyfile-go/gwy"
	"github.com/jmespath/go-jmespath"
)

// Eval compiles expression and evaluates it against obj's JSON
// projection (see Project).
func Eval(obj *gwy.Object, expression string) (interface{}, error) {
	expr, err := jmespath.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("query: %q: %w", expression, err)
	}
	result, err := expr.Search(Project(obj))
	if err != nil {
		return nil, fmt.Errorf("query: evaluating %q: %w", expression, err)
	}
	return result, nil
}

// Project renders obj as a map[string]interface{} keyed by item name,
// with every value restricted to the types encoding/json produces
// (map[string]interface{}, []interface{}, string, float64, bool, nil),
// so the full JMESPath function library (sort_by, sum, type, ...) works
// on it exactly as it would on an unmarshaled JSON document.
func Project(obj *gwy.Object) map[string]interface{} {
	m := make(map[string]interface{}, obj.NItems()+1)
	m["_name"] = obj.Name()
	obj.Foreach(func(it *gwy.Item) {
		m[it.Name()] = projectItem(it)
	})
	return m
}

func projectItem(it *gwy.Item) interface{} {
	switch it.Type() {
	case gwy.TypeBool:
		return it.Bool()
	case gwy.TypeChar:
		return float64(it.Char())
	case gwy.TypeInt32:
		return float64(it.Int32())
	case gwy.TypeInt64:
		return float64(it.Int64())
	case gwy.TypeDouble:
		return it.Double()
	case gwy.TypeString:
		return it.Str()
	case gwy.TypeObject:
		return Project(it.ObjectValue())
	case gwy.TypeCharArray:
		return string(it.CharArray())
	case gwy.TypeInt32Array:
		v := it.Int32Array()
		out := make([]interface{}, len(v))
		for i, n := range v {
			out[i] = float64(n)
		}
		return out
	case gwy.TypeInt64Array:
		v := it.Int64Array()
		out := make([]interface{}, len(v))
		for i, n := range v {
			out[i] = float64(n)
		}
		return out
	case gwy.TypeDoubleArray:
		v := it.DoubleArray()
		out := make([]interface{}, len(v))
		for i, n := range v {
			out[i] = n
		}
		return out
	case gwy.TypeStringArray:
		v := it.StringArray()
		out := make([]interface{}, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case gwy.TypeObjectArray:
		v := it.ObjectArray()
		out := make([]interface{}, len(v))
		for i, o := range v {
			out[i] = Project(o)
		}
		return out
	default:
		return nil
	}
}
