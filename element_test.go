package hxmdx

import (
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/google/go-cmp/cmp"
)

func TestCreateElementArity(t *testing.T) {
	tests := []struct {
		name     string
		children []any
		expect   any
	}{
		{"no children", nil, nil},
		{"single child stays scalar", []any{"hello"}, "hello"},
		{"two children become a sequence", []any{"a", "b"}, []any{"a", "b"}},
		{"single slice child is not flattened", []any{[]any{"a"}}, []any{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := CreateElement("p", Props{}, tt.children...)
			if diff := cmp.Diff(tt.expect, el.Children); diff != "" {
				t.Errorf("Children mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCreateElementCopiesChildren(t *testing.T) {
	children := []any{"a", "b"}
	el := CreateElement("p", nil, children...)
	children[0] = "changed"

	if got := el.Children.([]any)[0]; got != "a" {
		t.Errorf("Children[0] = %v, want a", got)
	}
}

func TestResolveFallbackOrder(t *testing.T) {
	w := Primitive("main")
	c := Primitive("kbd")
	ctx := WithComponents(context.Background(), Registry{
		"wrapper":  w,
		"code":     c,
		"pre.code": Alias("samp"),
		"p":        Callable(nil),
		"li.code":  Callable(nil),
	})

	tests := []struct {
		name     string
		key      string
		props    Props
		renderer Renderer
		matched  string
	}{
		{"bare key", "code", nil, c, "code"},
		{"unknown key is literal", "em", nil, Primitive("em"), ""},
		{"wrapper pseudo key", WrapperKey, nil, w, "wrapper"},
		{"composite key first", "code", Props{ParentKey: "pre"}, Primitive("samp"), "pre.code"},
		{"composite miss falls back to bare", "code", Props{ParentKey: "p"}, c, "code"},
		{"type hint wins over key", "span", Props{TypeKey: "code"}, c, "code"},
		{"empty type hint ignored", "em", Props{TypeKey: ""}, Primitive("em"), ""},
		{"builtin inlineCode", "inlineCode", nil, Primitive("code"), ""},
		{"miss with hint falls back to requested key", "em", Props{TypeKey: "emphasis"}, Primitive("em"), ""},
		{"nil callable skipped", "p", nil, Primitive("p"), ""},
		{"nil callable composite falls back to bare", "code", Props{ParentKey: "li"}, c, "code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := CreateElement(tt.key, tt.props).Resolve(ctx)
			if !sameRenderer(node.Renderer, tt.renderer) {
				t.Errorf("Renderer = %#v, want %#v", node.Renderer, tt.renderer)
			}
			if node.Key != tt.matched {
				t.Errorf("Key = %q, want %q", node.Key, tt.matched)
			}
		})
	}
}

func TestResolveWrapperWithoutRegistry(t *testing.T) {
	node := CreateElement(WrapperKey, nil, "x").Resolve(context.Background())
	if node.Renderer.Kind() != KindFragment {
		t.Errorf("wrapper renderer kind = %v, want fragment", node.Renderer.Kind())
	}
}

func TestResolveStripsReservedKeys(t *testing.T) {
	el := CreateElement("code", Props{
		ParentKey:       "pre",
		TypeKey:         "code",
		OriginalTypeKey: "code",
		"className":     "x",
	}, "y")
	node := el.Resolve(context.Background())

	if diff := cmp.Diff(Props{"className": "x"}, node.Props); diff != "" {
		t.Errorf("Props mismatch (-want +got):\n%s", diff)
	}
	if node.Children != "y" {
		t.Errorf("Children = %v, want y", node.Children)
	}
	if _, ok := el.Props[ParentKey]; !ok {
		t.Error("Resolve() mutated the element props")
	}
}

func TestResolveKeepsRef(t *testing.T) {
	ref := new(int)
	node := CreateElement("input", Props{RefKey: ref}).Resolve(context.Background())
	if node.Props[RefKey] != ref {
		t.Errorf("ref = %v, want %v", node.Props[RefKey], ref)
	}
}

func TestResolveChildrenFromProps(t *testing.T) {
	node := CreateElement("p", Props{ChildrenKey: "from props"}).Resolve(context.Background())
	if node.Children != "from props" {
		t.Errorf("Children = %v, want from props", node.Children)
	}
	if _, ok := node.Props[ChildrenKey]; ok {
		t.Error("children left in props")
	}

	node = CreateElement("p", Props{ChildrenKey: "ignored"}, "explicit").Resolve(context.Background())
	if node.Children != "explicit" {
		t.Errorf("Children = %v, want explicit", node.Children)
	}
}

func TestFactoryDefaultProps(t *testing.T) {
	f := &Factory{DefaultProps: map[string]Props{
		"a": {"rel": "noopener", "className": "link"},
	}}

	node := f.CreateElement("a", Props{"href": "/x", "className": "nav"}).Resolve(context.Background())
	want := Props{"rel": "noopener", "className": "nav", "href": "/x"}
	if diff := cmp.Diff(want, node.Props); diff != "" {
		t.Errorf("Props mismatch (-want +got):\n%s", diff)
	}

	node = f.CreateElement("p", nil).Resolve(context.Background())
	if len(node.Props) != 0 {
		t.Errorf("Props = %v, want empty", node.Props)
	}
}

func TestWrapperComponentsProp(t *testing.T) {
	ctx := WithComponents(context.Background(), Registry{"p": Primitive("p"), "em": Primitive("i")})

	tests := []struct {
		name       string
		components any
	}{
		{"registry", Registry{WrapperKey: Primitive("article"), "p": Primitive("div")}},
		{"plain map", map[string]Renderer{WrapperKey: Primitive("article"), "p": Primitive("div")}},
		{"function", func(parent Registry) Registry {
			return Registry{WrapperKey: Primitive("article"), "p": Primitive("div")}.Apply(parent)
		}},
		{"overrides func", OverridesFunc(func(parent Registry) Registry {
			return Registry{WrapperKey: Primitive("article"), "p": Primitive("div")}.Apply(parent)
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := CreateElement(WrapperKey, Props{ComponentsKey: tt.components, "id": "doc"},
				CreateElement("p", nil, "a"),
				CreateElement("em", nil, "b"),
			)

			node := el.Resolve(ctx)
			if node.Renderer != Primitive("article") {
				t.Errorf("Renderer = %#v, want article", node.Renderer)
			}
			if _, ok := node.Props[ComponentsKey]; ok {
				t.Error("components passed through as a prop")
			}

			result, err := TestRenderWithContext(ctx, el)
			if err != nil {
				t.Fatalf("render error = %v", err)
			}
			if want := `<article id="doc"><div>a</div><i>b</i></article>`; result.HTML != want {
				t.Errorf("HTML = %q, want %q", result.HTML, want)
			}
		})
	}
}

func TestComponentsPropIgnoredOffWrapper(t *testing.T) {
	el := CreateElement("p", Props{ComponentsKey: Registry{"p": Primitive("div")}}, "x")

	result, err := TestRender(el)
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if result.HTML != "<p>x</p>" {
		t.Errorf("HTML = %q, want <p>x</p>", result.HTML)
	}
}

func TestUnknownComponentsValueIgnored(t *testing.T) {
	el := CreateElement(WrapperKey, Props{ComponentsKey: "not overrides"}, "x")
	node := el.Resolve(context.Background())
	if node.Renderer.Kind() != KindFragment {
		t.Errorf("Renderer kind = %v, want fragment", node.Renderer.Kind())
	}
	if _, ok := node.Props[ComponentsKey]; ok {
		t.Error("components passed through as a prop")
	}
}

func TestReentrantRenderSeesScope(t *testing.T) {
	// A callable that renders another element tree while rendering.
	card := Callable(func(props Props) templ.Component {
		return Provider(Registry{"h3": Primitive("strong")},
			CreateElement("div", Props{"className": "card"},
				CreateElement("h3", nil, props["title"]),
				ChildrenOf(props),
			),
		)
	})

	ctx := WithComponents(context.Background(), Registry{"Card": card})
	tree := templ.Join(
		CreateElement("Card", Props{"title": "T"}, CreateElement("h3", nil, "inner")),
		CreateElement("h3", nil, "outer"),
	)

	result, err := TestRenderWithContext(ctx, tree)
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	want := `<div class="card"><strong>T</strong><strong>inner</strong></div><h3>outer</h3>`
	if result.HTML != want {
		t.Errorf("HTML = %q, want %q", result.HTML, want)
	}
}

func TestNilCallableRendersLiteralTag(t *testing.T) {
	ctx := WithComponents(context.Background(), Registry{"p": Callable(nil)})

	result, err := TestRenderWithContext(ctx, CreateElement("p", nil, "x"))
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if result.HTML != "<p>x</p>" {
		t.Errorf("HTML = %q, want %q", result.HTML, "<p>x</p>")
	}
}
