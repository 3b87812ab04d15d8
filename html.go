package hxmdx

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/pthm/hxmdx/internal/ctxlog"
	"github.com/pthm/hxmdx/lib/shallow"
)

// voidElements never have children or a closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// attrNames maps JSX-style prop names to HTML attribute names.
var attrNames = map[string]string{
	"className": "class",
	"htmlFor":   "for",
}

// Render writes n as HTML.
func (n *Node) Render(ctx context.Context, w io.Writer) error {
	if n == nil {
		return nil
	}
	ctx = n.ChildContext(ctx)

	switch r := n.Renderer.(type) {
	case Primitive:
		return renderTag(ctx, w, string(r), n.Props, n.Children)
	case Callable:
		if r == nil {
			return renderChildren(ctx, w, n.Children)
		}
		props := n.Props
		if n.Children != nil {
			props = shallow.Merge(n.Props, Props{ChildrenKey: n.Children})
		}
		c := r(props)
		if c == nil {
			return nil
		}
		return c.Render(ctx, w)
	case fragment:
		return renderChildren(ctx, w, n.Children)
	}
	return nil
}

// ChildContext returns the context n's children render under: ctx itself,
// or ctx extended with the inline overrides of a wrapper.
func (n *Node) ChildContext(ctx context.Context) context.Context {
	if n == nil || n.scope == nil {
		return ctx
	}
	return withRegistry(ctx, n.scope)
}

// RenderChildren returns a component rendering children the way element
// children are rendered: strings are escaped, components render in the
// current scope, slices render in order.
func RenderChildren(children any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return renderChildren(ctx, w, children)
	})
}

// ChildrenOf renders the children a Callable received in its props.
func ChildrenOf(props Props) templ.Component {
	return RenderChildren(props[ChildrenKey])
}

func renderChildren(ctx context.Context, w io.Writer, children any) error {
	switch c := children.(type) {
	case nil:
		return nil
	case string:
		_, err := io.WriteString(w, templ.EscapeString(c))
		return err
	case templ.Component:
		return c.Render(ctx, w)
	case []any:
		for _, child := range c {
			if err := renderChildren(ctx, w, child); err != nil {
				return err
			}
		}
		return nil
	case []templ.Component:
		for _, child := range c {
			if err := renderChildren(ctx, w, child); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := io.WriteString(w, templ.EscapeString(fmt.Sprint(c)))
		return err
	}
}

func renderTag(ctx context.Context, w io.Writer, tag string, props Props, children any) error {
	if !validName(tag) {
		ctxlog.FromContext(ctx).Warn("hxmdx: invalid tag name, rendering children only", "tag", tag)
		return renderChildren(ctx, w, children)
	}

	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(tag)
	writeAttrs(&sb, props)
	sb.WriteString(">")
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return err
	}

	if voidElements[tag] {
		return nil
	}
	if err := renderChildren(ctx, w, children); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</"+tag+">")
	return err
}

// writeAttrs renders scalar props as attributes in sorted order. Other values
// (functions, maps, components) have no HTML form and are skipped.
func writeAttrs(sb *strings.Builder, props Props) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if k == ChildrenKey || k == RefKey {
			continue
		}
		name := k
		if mapped, ok := attrNames[k]; ok {
			name = mapped
		}
		if !validName(name) {
			continue
		}

		value, ok := attrValue(props[k])
		if !ok {
			continue
		}
		sb.WriteString(" ")
		sb.WriteString(name)
		if value != nil {
			sb.WriteString(`="`)
			sb.WriteString(templ.EscapeString(*value))
			sb.WriteString(`"`)
		}
	}
}

// attrValue returns the attribute value for v. A nil value with ok set means
// a bare boolean attribute.
func attrValue(v any) (*string, bool) {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case bool:
		return nil, x
	case int:
		s = strconv.Itoa(x)
	case int8:
		s = strconv.FormatInt(int64(x), 10)
	case int16:
		s = strconv.FormatInt(int64(x), 10)
	case int32:
		s = strconv.FormatInt(int64(x), 10)
	case int64:
		s = strconv.FormatInt(x, 10)
	case uint:
		s = strconv.FormatUint(uint64(x), 10)
	case uint8:
		s = strconv.FormatUint(uint64(x), 10)
	case uint16:
		s = strconv.FormatUint(uint64(x), 10)
	case uint32:
		s = strconv.FormatUint(uint64(x), 10)
	case uint64:
		s = strconv.FormatUint(x, 10)
	case float32:
		s = strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		s = x.String()
	default:
		return nil, false
	}
	return &s, true
}

// validName accepts tag and attribute names made of ASCII letters, digits,
// '-', '_' and ':', starting with a letter.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '_' || r == ':'):
		default:
			return false
		}
	}
	return true
}
