package gen

import (
	"strconv"
	"strings"
	"unicode"
)

// pythonTypes maps LinkML builtin types to Python annotations.
var pythonTypes = map[string]string{
	"string":           "str",
	"integer":          "int",
	"float":            "float",
	"double":           "float",
	"boolean":          "bool",
	"date":             "date",
	"datetime":         "datetime",
	"date_or_datetime": "Union[date, datetime]",
	"time":             "time",
	"decimal":          "Decimal",
}

func pythonType(builtin string) string {
	if t, ok := pythonTypes[builtin]; ok {
		return t
	}

	return "str"
}

// ModuleName turns a schema name into a Python module name.
func ModuleName(schema string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(schema)
}

// pyString quotes s as a Python string literal.
func pyString(s string) string {
	return strconv.Quote(s)
}

// pyDoc renders s as a docstring. Every quote is escaped so none can merge
// with the closing delimiter.
func pyDoc(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)

	return `"""` + s + `"""`
}

// pyIdent makes s usable as a Python identifier.
func pyIdent(s string) string {
	var b strings.Builder

	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}

	out := b.String()
	if out == "" || unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}

	return out
}

// pyDefault renders an ifabsent expression as a Python value.
func pyDefault(ifabsent string) string {
	open := strings.IndexByte(ifabsent, '(')
	if open < 0 || !strings.HasSuffix(ifabsent, ")") {
		switch ifabsent {
		case "True", "False":
			return ifabsent
		}

		return pyString(ifabsent)
	}

	kind, value := ifabsent[:open], ifabsent[open+1:len(ifabsent)-1]

	switch kind {
	case "int":
		if _, err := strconv.ParseInt(value, 10, 64); err == nil {
			return value
		}
	case "float":
		if _, err := strconv.ParseFloat(value, 64); err == nil {
			return value
		}
	case "string":
		return pyString(value)
	}

	return pyString(value)
}
