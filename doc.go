// Package hxmdx resolves which renderer draws each tag of a compiled
// document, with overrides that flow down the render tree.
//
// A document compiler turns markup into calls to CreateElement, one per tag.
// Each call returns an *Element, which is a templ.Component. When the tree
// renders, every element looks up its renderer in the registry that is in
// scope at that point and renders with it.
//
// # Registries
//
// A Registry maps tag names to renderers:
//
//	overrides := hxmdx.Registry{
//	    "h1":       hxmdx.Primitive("h2"),      // render h1 as h2
//	    "pre.code": hxmdx.Alias("CodeBlock"),   // code inside pre
//	    "CodeBlock": hxmdx.Callable(codeBlock), // Go function
//	    "wrapper":  hxmdx.Primitive("article"), // the document root
//	}
//
// Renderer is a closed set of four variants: Primitive, Callable, Alias and
// Fragment. Keys are strings. Besides tag names a registry can hold composite
// keys ("parent.tag") and the wrapper pseudo key.
//
// # Scopes
//
// Scopes live in context.Context. Provider renders a subtree with a registry
// extended by local overrides:
//
//	hxmdx.Provider(overrides, docs.Content(nil))
//
// Providers nest: the inner one sees and extends the registry of the outer
// one, and wins on conflicting keys. Because contexts are immutable, leaving
// a subtree restores the outer registry and concurrent renders never see each
// other's scopes. WithComponents does the same for a plain context, and
// Components reads the registry in scope.
//
// Overrides can also be a function of the registry in scope:
//
//	hxmdx.Provider(hxmdx.OverridesFunc(func(parent hxmdx.Registry) hxmdx.Registry {
//	    return hxmdx.Registry{"p": parent["p"]} // keep only p
//	}), content)
//
// Whatever an Overrides implementation returns is published without
// validation.
//
// # Resolution
//
// For an element requested as key, the type is the mdxType prop when set,
// else key. The renderer is the first of:
//
//  1. registry["<parentName>.<type>"] when the parentName prop is set
//  2. registry["<type>"]
//  3. a built-in default: Fragment for "wrapper", code for "inlineCode"
//  4. Primitive(key)
//
// Aliases are followed through the same registry. Resolution never fails:
// unknown tags render as themselves. The props mdxType, originalType,
// parentName and components are removed before the renderer sees them; a
// components prop on the wrapper element extends the scope for the whole
// document instead.
//
// Children keep the arity they were passed with. A single child is stored as
// is and two or more as a []any.
//
// # Reading the registry
//
// Inject hands the registry in scope to a function, for components that
// dispatch on it themselves.
package hxmdx
