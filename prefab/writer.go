package prefab

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Write renders a prefab tree back to definition-language source text.
// The output re-parses to an equivalent tree (round-trip).
func Write(root *Prefab) string {
	var b strings.Builder
	writeEntity(&b, root, 0)
	return b.String()
}

// WriteScene renders multiple root trees separated by blank lines
func WriteScene(roots []*Prefab) string {
	var b strings.Builder
	for i, root := range roots {
		if i > 0 {
			b.WriteString("\n")
		}
		writeEntity(&b, root, 0)
	}
	return b.String()
}

func writeEntity(b *strings.Builder, node *Prefab, depth int) {
	indent := strings.Repeat("\t", depth)

	b.WriteString(indent)
	if node.Name != "" {
		b.WriteString(node.Name)
		b.WriteString(" ")
	}
	if !node.Position.IsZero() {
		fmt.Fprintf(b, "@(%s, %s) ", formatFloat(node.Position.X), formatFloat(node.Position.Y))
	}
	b.WriteString("{\n")

	if node.Base != "" {
		b.WriteString(indent)
		b.WriteString("\tprefab: ")
		writeQuoted(b, node.Base)
		b.WriteString("\n")
	}

	for i := range node.Components {
		writeComponent(b, &node.Components[i], indent)
	}

	if len(node.Children) > 0 {
		b.WriteString("\n")
		for _, child := range node.Children {
			writeEntity(b, child, depth+1)
		}
	}

	b.WriteString(indent)
	b.WriteString("}\n")
}

// writeComponent emits one line per component: the single-field
// shorthand form when the config is exactly one field named "value",
// the brace form otherwise
func writeComponent(b *strings.Builder, cfg *ComponentConfig, indent string) {
	b.WriteString(indent)
	b.WriteString("\t")
	b.WriteString(cfg.Name)
	b.WriteString(": ")

	if len(cfg.Fields) == 1 && cfg.Fields[0].Name == ShorthandField {
		writeValue(b, cfg.Fields[0].Value)
		b.WriteString("\n")
		return
	}

	b.WriteString("{ ")
	for i := range cfg.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(cfg.Fields[i].Name)
		b.WriteString(": ")
		writeValue(b, cfg.Fields[i].Value)
	}
	b.WriteString(" }\n")
}

func writeValue(b *strings.Builder, v Value) {
	switch v.Kind {
	case ValueNull:
		b.WriteString("null")
	case ValueInt:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case ValueFloat:
		b.WriteString(formatFloat(v.F))
	case ValueBool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case ValueString:
		writeQuoted(b, v.Str)
	case ValueIdent:
		// Bare only when the lexer would read it back as one token;
		// anything else must be quoted
		if isValidIdent(v.Str) {
			b.WriteString(v.Str)
		} else {
			writeQuoted(b, v.Str)
		}
	case ValueVec2:
		fmt.Fprintf(b, "(%s, %s)", formatFloat(v.Vec.X), formatFloat(v.Vec.Y))
	case ValueVec3:
		fmt.Fprintf(b, "(%s, %s, %s)", formatFloat(v.Vec.X), formatFloat(v.Vec.Y), formatFloat(v.Vec.Z))
	case ValueVec4:
		fmt.Fprintf(b, "(%s, %s, %s, %s)", formatFloat(v.Vec.X), formatFloat(v.Vec.Y), formatFloat(v.Vec.Z), formatFloat(v.Vec.W))
	}
}

// writeQuoted emits a double-quoted string escaping quote, backslash,
// newline and tab
func writeQuoted(b *strings.Builder, s string) {
	b.WriteString("\"")
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString("\"")
}

// formatFloat prints integral floats with one decimal place so they
// re-parse as floats; everything else uses the general format
func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// isValidIdent reports whether s survives a lexer round trip as a
// single identifier token
func isValidIdent(s string) bool {
	if s == "" || s == "true" || s == "false" {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if isAlpha(ch) || ch == '_' || (i > 0 && isDigit(ch)) {
			continue
		}
		return false
	}
	return true
}
