package builtins

import (
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/mosaic-lang/mosaic/internal/diagnostics"
	"github.com/mosaic-lang/mosaic/internal/values"
)

// registerJSON wires to_json/from_json against gjson (read) and sjson
// (write) rather than encoding/json, building structured text incrementally
// by key path — a natural fit for Dictionary's insertion-ordered shape.
func registerJSON(r *Registry) {
	r.RegisterFunc("to_json", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 1 {
			return domainError(diag, file, line, "to_json() expects exactly 1 argument, got %d", len(args))
		}
		return values.String(marshalJSON(args[0]))
	})

	r.RegisterFunc("from_json", func(args []values.Value, diag *diagnostics.Sink, file string, line int) values.Value {
		if len(args) != 1 {
			return domainError(diag, file, line, "from_json() expects exactly 1 argument, got %d", len(args))
		}
		s, ok := args[0].(values.String)
		if !ok {
			return domainError(diag, file, line, "from_json() expects a String, got %s", args[0].Type())
		}
		if !gjson.Valid(string(s)) {
			return domainError(diag, file, line, "from_json(): invalid JSON text")
		}
		return unmarshalJSON(gjson.Parse(string(s)))
	})
}

func marshalJSON(v values.Value) string {
	switch vv := v.(type) {
	case values.None:
		return "null"
	case values.Integer:
		return strconv.FormatInt(int64(vv), 10)
	case values.Double:
		return strconv.FormatFloat(float64(vv), 'g', -1, 64)
	case values.Boolean:
		if bool(vv) {
			return "true"
		}
		return "false"
	case values.String:
		out, _ := sjson.Set("{}", "v", string(vv))
		return gjson.Get(out, "v").Raw
	case *values.Array:
		out := "[]"
		for i, e := range vv.Elements {
			out, _ = sjson.SetRaw(out, strconv.Itoa(i), marshalJSON(e))
		}
		return out
	case *values.Dictionary:
		out := "{}"
		for _, k := range vv.Keys() {
			val, _ := vv.Get(k)
			out, _ = sjson.SetRaw(out, k, marshalJSON(val))
		}
		return out
	case *values.Struct:
		out := "{}"
		for _, f := range vv.Def.Fields {
			out, _ = sjson.SetRaw(out, f, marshalJSON(vv.Values[f]))
		}
		return out
	default:
		return "null"
	}
}

func unmarshalJSON(res gjson.Result) values.Value {
	switch {
	case res.IsArray():
		var elems []values.Value
		res.ForEach(func(_, v gjson.Result) bool {
			elems = append(elems, unmarshalJSON(v))
			return true
		})
		return values.NewArray(elems...)
	case res.IsObject():
		d := values.NewDictionary()
		res.ForEach(func(k, v gjson.Result) bool {
			d.Set(k.String(), unmarshalJSON(v))
			return true
		})
		return d
	case res.Type == gjson.Null:
		return values.None{}
	case res.Type == gjson.True, res.Type == gjson.False:
		return values.Boolean(res.Bool())
	case res.Type == gjson.Number:
		if strings.ContainsAny(res.Raw, ".eE") {
			return values.Double(res.Num)
		}
		return values.Integer(int64(res.Num))
	case res.Type == gjson.String:
		return values.String(res.String())
	default:
		return values.None{}
	}
}
