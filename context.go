package hxmdx

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

type registryKey struct{}

// emptyRegistry is what Components returns when no scope is active.
var emptyRegistry Registry

// Components returns the registry published by the nearest enclosing
// Provider, or an empty registry when there is none.
func Components(ctx context.Context) Registry {
	if ctx == nil {
		return emptyRegistry
	}
	if reg, ok := ctx.Value(registryKey{}).(Registry); ok && reg != nil {
		return reg
	}
	return emptyRegistry
}

// UseComponents returns the effective registry for local overrides declared
// under ctx. With nil overrides it is the registry in scope, unchanged.
func UseComponents(ctx context.Context, local Overrides) Registry {
	return applyOverrides(Components(ctx), local)
}

func applyOverrides(current Registry, local Overrides) Registry {
	if local == nil {
		return current
	}
	return local.Apply(current)
}

// WithComponents returns a context whose scope is the registry in ctx
// extended by local. ctx itself is unchanged, so the parent scope is back in
// effect as soon as the derived context goes out of use.
func WithComponents(ctx context.Context, local Overrides) context.Context {
	if local == nil {
		return ctx
	}
	return withRegistry(ctx, UseComponents(ctx, local))
}

func withRegistry(ctx context.Context, reg Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, reg)
}

// Provider renders children inside a scope that extends the current registry
// with local.
//
//	hxmdx.Provider(hxmdx.Registry{"h1": hxmdx.Primitive("h2")}, docs.Content(nil))
//
// When no children are passed, the templ children of the call site are
// rendered instead, so Provider also works as a wrapper in .templ files:
//
//	@hxmdx.Provider(overrides) {
//	    @docs.Content(nil)
//	}
func Provider(local Overrides, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		subtree := children
		if len(subtree) == 0 {
			subtree = []templ.Component{templ.GetChildren(ctx)}
			ctx = templ.ClearChildren(ctx)
		}

		ctx = WithComponents(ctx, local)
		for _, child := range subtree {
			if child == nil {
				continue
			}
			if err := child.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

// Inject hands the registry in scope to fn and renders what it returns.
// Use it for components that need to look up renderers themselves.
func Inject(fn func(reg Registry) templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if fn == nil {
			return nil
		}
		c := fn(Components(ctx))
		if c == nil {
			return nil
		}
		return c.Render(ctx, w)
	})
}
