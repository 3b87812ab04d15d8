package hxmdx

import "github.com/a-h/templ"

// RendererKind identifies which variant a Renderer is.
type RendererKind uint8

const (
	KindPrimitive RendererKind = iota + 1
	KindCallable
	KindAlias
	KindFragment
)

// String returns the lower-case variant name.
func (k RendererKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindCallable:
		return "callable"
	case KindAlias:
		return "alias"
	case KindFragment:
		return "fragment"
	}
	return "unknown"
}

// Renderer decides how an element is turned into output. It is a closed set:
//   - Primitive: a native HTML tag, e.g. Primitive("h2")
//   - Callable: a Go function producing a templ.Component
//   - Alias: another registry key to resolve instead, e.g. Alias("code")
//   - Fragment: render the children only, with no surrounding tag
//
// The unexported method keeps other packages from adding variants.
type Renderer interface {
	Kind() RendererKind
	isRenderer()
}

// Primitive renders the element as the named HTML tag.
type Primitive string

func (Primitive) Kind() RendererKind { return KindPrimitive }
func (Primitive) isRenderer()        {}

// Alias resolves the element as if it had been requested under another key.
// An alias whose target is missing, or that loops back on itself, renders as
// a Primitive of its own name.
type Alias string

func (Alias) Kind() RendererKind { return KindAlias }
func (Alias) isRenderer()        {}

// Callable renders the element with a Go function. The function receives the
// final props; children, if any, are under the "children" key and can be
// rendered with ChildrenOf.
//
//	hxmdx.Callable(func(props hxmdx.Props) templ.Component {
//	    return callout(props["kind"], hxmdx.ChildrenOf(props))
//	})
//
// A nil component renders nothing.
type Callable func(props Props) templ.Component

func (Callable) Kind() RendererKind { return KindCallable }
func (Callable) isRenderer()        {}

type fragment struct{}

func (fragment) Kind() RendererKind { return KindFragment }
func (fragment) isRenderer()        {}

// Fragment returns the renderer that outputs children without a wrapping tag.
// It is the default for the "wrapper" key.
func Fragment() Renderer {
	return fragment{}
}
