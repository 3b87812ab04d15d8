package hxmdx

import (
	"sort"

	"github.com/pthm/hxmdx/lib/shallow"
)

// Keys with a fixed meaning in a Registry or in element props.
const (
	// WrapperKey is the pseudo tag of the element that wraps a whole document.
	WrapperKey = "wrapper"

	// TypeKey carries the type discriminant the compiler assigned to an
	// element. When set it is used instead of the requested key for lookup.
	TypeKey = "mdxType"

	// OriginalTypeKey carries the element's original type.
	OriginalTypeKey = "originalType"

	// ParentKey carries the type of the enclosing element, enabling
	// composite lookups such as "pre.code".
	ParentKey = "parentName"

	// ComponentsKey on a wrapper element holds inline scope overrides.
	ComponentsKey = "components"

	// ChildrenKey holds children in props passed to a Callable.
	ChildrenKey = "children"

	// RefKey is forwarded to renderers untouched and never rendered as an
	// HTML attribute.
	RefKey = "ref"
)

// reservedKeys are stripped from props before they reach a renderer.
var reservedKeys = []string{TypeKey, OriginalTypeKey, ParentKey, ComponentsKey}

// ReservedKeys returns the prop keys that are consumed by resolution and
// never handed to a renderer.
func ReservedKeys() []string {
	return append([]string(nil), reservedKeys...)
}

// Props are the attributes of an element. Keys are strings only.
type Props map[string]any

// Registry maps tag names, composite keys ("pre.code") and the wrapper pseudo
// key to renderers.
//
// A Registry read from a context is a shared snapshot and must not be
// modified. Derive a new one with Apply or Merge instead.
type Registry map[string]Renderer

// Lookup returns the renderer stored under key. Nil entries, including a nil
// Callable, count as absent.
func (r Registry) Lookup(key string) (Renderer, bool) {
	renderer, ok := r[key]
	if !ok || renderer == nil {
		return nil, false
	}
	if c, ok := renderer.(Callable); ok && c == nil {
		return nil, false
	}
	return renderer, true
}

// Keys returns the registry's keys in sorted order.
func (r Registry) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Apply layers r over parent. Keys in r win.
func (r Registry) Apply(parent Registry) Registry {
	return shallow.Merge(parent, r)
}

// Overrides are locally declared changes to the registry in scope.
//
// Registry and OverridesFunc are the two implementations provided. Apply
// receives the registry currently in scope and returns the effective one.
// Whatever Apply returns is published as is, without validation; a nil
// result reads back as the empty registry.
type Overrides interface {
	Apply(parent Registry) Registry
}

// OverridesFunc computes the effective registry from the one in scope.
type OverridesFunc func(parent Registry) Registry

// Apply calls f. A nil f leaves parent unchanged.
func (f OverridesFunc) Apply(parent Registry) Registry {
	if f == nil {
		return parent
	}
	return f(parent)
}

// builtins are consulted after the registry and before the literal fallback.
var builtins = map[string]Renderer{
	WrapperKey:   fragment{},
	"inlineCode": Primitive("code"),
}

// resolveAlias follows aliases through reg until a concrete renderer is
// reached. Missing targets and cycles degrade to a Primitive of the last key.
func resolveAlias(reg Registry, renderer Renderer) Renderer {
	var seen map[Alias]bool
	for {
		alias, ok := renderer.(Alias)
		if !ok {
			return renderer
		}
		if seen[alias] {
			return Primitive(alias)
		}
		if seen == nil {
			seen = make(map[Alias]bool)
		}
		seen[alias] = true

		next, ok := reg.Lookup(string(alias))
		if !ok {
			if builtin, ok := builtins[string(alias)]; ok {
				return builtin
			}
			return Primitive(alias)
		}
		renderer = next
	}
}
