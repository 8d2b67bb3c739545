package gwy

import (
	"fmt"
	"strconv"
	"strings"
)

// maxPathComponentLength bounds how much of a single (possibly
// adversarial) name is embedded in an error message.
const maxPathComponentLength = 64

// escapeComponent renders name for inclusion in a Path(), escaping '/',
// space and backslash as "\X", bytes outside the printable ASCII range
// as "\xNN", and ellipsizing components longer than the cap.
func escapeComponent(name string) string {
	truncated := name
	ellipsized := false
	if len(truncated) > maxPathComponentLength {
		truncated = truncated[:maxPathComponentLength]
		ellipsized = true
	}
	var b strings.Builder
	for i := 0; i < len(truncated); i++ {
		c := truncated[i]
		switch {
		case c == '/' || c == ' ' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c < 0x21 || c > 0x7E:
			fmt.Fprintf(&b, "\\x%02X", c)
		default:
			b.WriteByte(c)
		}
	}
	if ellipsized {
		b.WriteString("...")
	}
	return b.String()
}

// Path returns a human-readable, escaped path identifying this object,
// for use in error messages. The root object's own name is the first
// (and for a root, only) component.
func (o *Object) Path() string {
	return "/" + strings.Join(o.components(), "/")
}

func (o *Object) components() []string {
	if o.owner == nil {
		return []string{escapeComponent(o.name)}
	}
	comps := o.owner.components()
	if o.arrayIndex >= 0 {
		comps = append(comps, strconv.Itoa(o.arrayIndex))
	}
	return comps
}

// Path returns a human-readable, escaped path identifying this item.
func (it *Item) Path() string {
	return "/" + strings.Join(it.components(), "/")
}

func (it *Item) components() []string {
	var comps []string
	if it.owner != nil {
		comps = it.owner.components()
	}
	return append(comps, escapeComponent(it.name))
}
