package schema

import (
	"io"
	"regexp"
	"strings"

	"github.com/valyala/fasttemplate"
)

var placeholderRe = regexp.MustCompile(`^\w+$`)

// RewritePath converts every {name} placeholder in the template into the
// engine's :name syntax, preserving all other characters and segment order.
// Only word character placeholders are rewritten; anything else, including
// templates without braces, passes through unchanged.
func RewritePath(tpl string) string {
	if !strings.Contains(tpl, "{") {
		return tpl
	}

	t, err := fasttemplate.NewTemplate(tpl, "{", "}")
	if err != nil {
		// unbalanced braces, nothing we can rewrite
		return tpl
	}

	return t.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		if placeholderRe.MatchString(tag) {
			return io.WriteString(w, ":"+tag)
		}
		return io.WriteString(w, "{"+tag+"}")
	})
}
