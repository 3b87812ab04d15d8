package hxmdx

import (
	"context"
	"io"

	"github.com/pthm/hxmdx/internal/ctxlog"
	"github.com/pthm/hxmdx/lib/shallow"
)

// Factory creates elements. The zero value is ready to use.
type Factory struct {
	// DefaultProps are merged under the props of every element requested
	// with the matching key. Explicit props win.
	DefaultProps map[string]Props
}

// Element is a request to render Type with Props and Children. Elements are
// resolved against the registry in scope when they render, so the same tree
// can be rendered under different Providers.
type Element struct {
	Type  string
	Props Props

	// Children is nil without children, the child itself for a single
	// child, and a []any for two or more.
	Children any

	factory *Factory
}

// Node is an element with its renderer chosen and its props final.
type Node struct {
	Type     string
	Renderer Renderer
	Props    Props
	Children any

	// Key is the registry key that matched, empty when a built-in default
	// or the literal fallback was used.
	Key string

	// scope is set when a wrapper carried inline overrides.
	scope Registry
}

// CreateElement creates an element using the zero Factory.
//
// This is the function compiled documents call for every tag:
//
//	hxmdx.CreateElement("code", hxmdx.Props{"parentName": "pre", "mdxType": "code"}, "fmt.Println()")
func CreateElement(key string, props Props, children ...any) *Element {
	var f Factory
	return f.CreateElement(key, props, children...)
}

// CreateElement creates an element for key. Children keep their arity: a
// single child is stored as is, never wrapped in a slice.
func (f *Factory) CreateElement(key string, props Props, children ...any) *Element {
	el := &Element{
		Type:    key,
		Props:   props,
		factory: f,
	}
	switch len(children) {
	case 0:
	case 1:
		el.Children = children[0]
	default:
		el.Children = append([]any(nil), children...)
	}
	return el
}

// Resolve picks the renderer for e from the registry in ctx.
//
// Lookup tries "<parentName>.<type>", then "<type>", then the built-in
// defaults, and finally renders e.Type as a literal tag. The type is the
// mdxType prop when present, else e.Type. Resolution never fails.
func (e *Element) Resolve(ctx context.Context) *Node {
	reg := Components(ctx)
	node := &Node{Type: e.Type}

	if e.Type == WrapperKey {
		if local := overridesFromProp(e.Props[ComponentsKey]); local != nil {
			reg = applyOverrides(reg, local)
			node.scope = reg
		}
	}

	display := e.Type
	if t, ok := e.Props[TypeKey].(string); ok && t != "" {
		display = t
	}
	path := display
	if parent, ok := e.Props[ParentKey].(string); ok && parent != "" {
		path = parent + "." + display
	}

	var renderer Renderer
	if r, ok := reg.Lookup(path); ok {
		renderer, node.Key = r, path
	} else if r, ok := reg.Lookup(display); ok {
		renderer, node.Key = r, display
	} else if r, ok := builtins[display]; ok {
		renderer = r
	} else {
		ctxlog.FromContext(ctx).Debug("hxmdx: no renderer registered, using literal tag", "type", e.Type, "lookup", path)
		renderer = Primitive(e.Type)
	}
	node.Renderer = resolveAlias(reg, renderer)

	var defaults Props
	if e.factory != nil {
		defaults = e.factory.DefaultProps[e.Type]
	}
	node.Props = shallow.Merge(defaults, shallow.Omit(e.Props, reservedKeys...))

	node.Children = e.Children
	if node.Children == nil {
		node.Children = node.Props[ChildrenKey]
	}
	delete(node.Props, ChildrenKey)

	return node
}

// Render resolves e against ctx and renders the result.
func (e *Element) Render(ctx context.Context, w io.Writer) error {
	if e == nil {
		return nil
	}
	return e.Resolve(ctx).Render(ctx, w)
}

// overridesFromProp interprets the components prop of a wrapper element.
func overridesFromProp(v any) Overrides {
	switch o := v.(type) {
	case nil:
		return nil
	case Overrides:
		return o
	case map[string]Renderer:
		return Registry(o)
	case func(Registry) Registry:
		return OverridesFunc(o)
	}
	return nil
}
