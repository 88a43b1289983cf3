package runtime

import (
	"strconv"
	"strings"
)

// Format renders a value the way the REPL and environment dumps show it:
// strings are quoted, arrays print as Arr[...].
func Format(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

// Display renders a value for program output. It differs from Format only
// for a top-level string, which is written without quotes.
func Display(v Value) string {
	if s, ok := v.(StringValue); ok {
		return s.Val
	}
	return Format(v)
}

func writeValue(b *strings.Builder, v Value) {
	switch val := v.(type) {
	case nil:
		b.WriteString("null")
	case IntegerValue:
		b.WriteString(strconv.FormatInt(val.Val, 10))
	case FloatValue:
		b.WriteString(formatFloat(val.Val))
	case StringValue:
		b.WriteByte('\'')
		b.WriteString(val.Val)
		b.WriteByte('\'')
	case BoolValue:
		b.WriteString(strconv.FormatBool(val.Val))
	case NullValue:
		b.WriteString("null")
	case ArrayValue:
		b.WriteString("Arr[")
		for i, el := range val.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, el)
		}
		b.WriteByte(']')
	case ObjectValue:
		b.WriteByte('{')
		for i, key := range val.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(key)
			b.WriteString(": ")
			writeValue(b, val.Fields[key])
		}
		b.WriteByte('}')
	case *FunctionValue:
		b.WriteString("<fn(")
		b.WriteString(strings.Join(val.ParamNames(), ", "))
		b.WriteString(")>")
	case NativeFunctionValue:
		b.WriteString("<native ")
		b.WriteString(val.Name)
		b.WriteByte('>')
	default:
		b.WriteString("<")
		b.WriteString(v.Kind().String())
		b.WriteString(">")
	}
}

// formatFloat uses the shortest representation and keeps a trailing .0 on
// integral values so floats never read as integers.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.ContainsAny(s, ".IN") {
		return s
	}
	return s + ".0"
}
