package gen

import (
	"strings"
)

// FunctionNamePlaceholder marks where ProvideFunction substitutes the
// distinct helper name inside a helper template.
const FunctionNamePlaceholder = "{{FUNCTION_NAME}}"

// Assemble places definitions ahead of the main program, separated from
// each other by a blank line and from the program by two. Trailing
// newlines of the definitions are dropped first.
func Assemble(definitions []string, code string) string {
	defs := make([]string, len(definitions))
	for i, d := range definitions {
		defs[i] = strings.TrimRight(d, "\n")
	}
	return strings.Join(defs, "\n\n") + "\n\n\n" + code
}

// PrefixLines prepends prefix to every line of text. A single trailing
// newline is kept and not followed by a prefix.
func PrefixLines(text, prefix string) string {
	body, trailing := strings.CutSuffix(text, "\n")
	out := prefix + strings.ReplaceAll(body, "\n", "\n"+prefix)
	if trailing {
		out += "\n"
	}
	return out
}

// reindent replaces every leading pair of spaces with indent.
func reindent(code, indent string) string {
	if indent == "  " {
		return code
	}
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		n := len(line) - len(strings.TrimLeft(line, " "))
		pairs := n / 2
		lines[i] = strings.Repeat(indent, pairs) + line[pairs*2:]
	}
	return strings.Join(lines, "\n")
}

// wrapText breaks every line of text at word boundaries so that no line is
// longer than width, unless a single word is.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) > width {
				out = append(out, line)
				line = w
				continue
			}
			line += " " + w
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// quoteID renders a block ID as a single-quoted literal.
func quoteID(id string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(id) + "'"
}
