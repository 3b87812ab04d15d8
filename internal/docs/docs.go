// Package docs holds the "Overriding components" documentation page in the
// form a document compiler emits: one CreateElement call per tag.
package docs

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/pthm/hxmdx"
	"github.com/pthm/hxmdx/lib/shallow"
)

// Frontmatter is the page metadata.
type Frontmatter struct {
	Title       string
	Description string
	Position    int
}

// Heading is a table of contents entry.
type Heading struct {
	Depth int
	ID    string
	Text  string
}

// Page metadata.
var (
	Meta = Frontmatter{
		Title:       "Overriding components",
		Description: "Swap the renderer used for any tag in a document, for a whole site or a single subtree.",
		Position:    3,
	}

	Slug = "/docs/overriding-components"

	TOC = []Heading{
		{Depth: 2, ID: "the-registry", Text: "The registry"},
		{Depth: 2, ID: "scoping-overrides", Text: "Scoping overrides"},
		{Depth: 2, ID: "resolution-order", Text: "Resolution order"},
		{Depth: 3, ID: "composite-keys", Text: "Composite keys"},
		{Depth: 2, ID: "reading-the-registry", Text: "Reading the registry"},
	}
)

var layoutProps = hxmdx.Props{}

const registrySample = `overrides := hxmdx.Registry{
    "h1":       hxmdx.Primitive("h2"),
    "pre.code": hxmdx.Alias("code"),
    "Callout":  hxmdx.Callable(callout),
}`

const providerSample = `hxmdx.Provider(overrides, docs.Content(nil))`

const injectSample = `hxmdx.Inject(func(reg hxmdx.Registry) templ.Component {
    return keyList(reg.Keys())
})`

// el creates an element the way the compiler does: the tag is recorded as
// type and original type, and the enclosing tag as parent.
func el(tag, parent string, props hxmdx.Props, children ...any) *hxmdx.Element {
	meta := hxmdx.Props{hxmdx.TypeKey: tag, hxmdx.OriginalTypeKey: tag}
	if parent != "" {
		meta[hxmdx.ParentKey] = parent
	}
	return hxmdx.CreateElement(tag, shallow.Merge(props, meta), children...)
}

func code(parent, text string) *hxmdx.Element {
	return el("inlineCode", parent, nil, text)
}

func block(lang, src string) *hxmdx.Element {
	return el("pre", "", nil,
		el("code", "pre", hxmdx.Props{"className": "language-" + lang}, src),
	)
}

// Content returns the page body. props are passed to the wrapper and may
// carry inline overrides under the "components" key.
func Content(props hxmdx.Props) *hxmdx.Element {
	return hxmdx.CreateElement(hxmdx.WrapperKey, shallow.Merge(layoutProps, props),
		el("p", "", nil,
			"Every tag in a compiled document is rendered through a registry. ",
			"Replace an entry and every matching tag on the page changes with it, ",
			"without touching the document source.",
		),
		el("h2", "", hxmdx.Props{"id": "the-registry"}, "The registry"),
		el("p", "", nil,
			"A registry maps tag names to renderers. A renderer is a ",
			code("p", "Primitive"), " tag name, a ", code("p", "Callable"),
			" Go function, an ", code("p", "Alias"), " to another key, or a ",
			code("p", "Fragment"), ".",
		),
		block("go", registrySample),
		el("h2", "", hxmdx.Props{"id": "scoping-overrides"}, "Scoping overrides"),
		el("p", "", nil,
			"Wrap a subtree in a ", code("p", "Provider"),
			" to publish overrides to everything below it. Providers nest: an inner provider ",
			"extends the registry of the outer one and wins on conflicting keys.",
		),
		block("go", providerSample),
		el("p", "", nil,
			"Leaving the subtree restores the outer registry. Siblings never see each other's overrides.",
		),
		el("h2", "", hxmdx.Props{"id": "resolution-order"}, "Resolution order"),
		el("p", "", nil, "For each element the first match wins:"),
		el("ol", "", nil,
			el("li", "ol", nil, "the composite key ", code("li", "parent.tag"), ","),
			el("li", "ol", nil, "the tag itself,"),
			el("li", "ol", nil, "a built-in default such as the fragment used for ", code("li", "wrapper"), ","),
			el("li", "ol", nil, "the tag rendered literally."),
		),
		el("p", "", nil,
			"A miss is never an error. Unknown tags such as ", code("p", "em"),
			" render as themselves.",
		),
		el("h3", "", hxmdx.Props{"id": "composite-keys"}, "Composite keys"),
		el("p", "", nil,
			"Code blocks arrive as ", code("p", "code"), " inside ", code("p", "pre"),
			", so ", code("p", "pre.code"),
			" targets them without affecting inline code.",
		),
		el("h2", "", hxmdx.Props{"id": "reading-the-registry"}, "Reading the registry"),
		el("p", "", nil,
			"Components that need the registry themselves can ask for it with ",
			code("p", "Inject"), ".",
		),
		block("go", injectSample),
		el("blockquote", "", nil,
			el("p", "blockquote", nil,
				"See the ",
				el("a", "p", hxmdx.Props{"href": "https://templ.guide"}, "templ guide"),
				" for writing components.",
			),
		),
	)
}

// TOCNav renders the table of contents as a nav element. Its tags resolve
// through the registry in scope like the page body.
func TOCNav() *hxmdx.Element {
	items := make([]any, 0, len(TOC))
	for _, h := range TOC {
		items = append(items, hxmdx.CreateElement("li", hxmdx.Props{"className": fmt.Sprintf("toc-depth-%d", h.Depth)},
			hxmdx.CreateElement("a", hxmdx.Props{"href": "#" + h.ID}, h.Text),
		))
	}
	return hxmdx.CreateElement("nav", hxmdx.Props{"className": "toc", "aria-label": "On this page"},
		hxmdx.CreateElement("ul", nil, items...),
	)
}

// Page renders the full HTML document with root as the site-wide registry.
func Page(root hxmdx.Overrides) templ.Component {
	return hxmdx.Provider(root, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!doctype html><html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"><title>%s</title><meta name="description" content="%s"></head><body>`,
			templ.EscapeString(Meta.Title), templ.EscapeString(Meta.Description)); err != nil {
			return err
		}

		main := hxmdx.CreateElement("main", hxmdx.Props{"id": "content", "data-slug": Slug},
			hxmdx.CreateElement("h1", nil, Meta.Title),
			TOCNav(),
			Content(nil),
		)
		if err := main.Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</body></html>`)
		return err
	}))
}

// Fragment renders the page body for HTMX swaps, with root in scope.
func Fragment(root hxmdx.Overrides) templ.Component {
	return hxmdx.Provider(root, Content(nil))
}
