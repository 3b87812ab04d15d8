package hxmdx

import (
	"bytes"
	"context"
	"strings"

	"github.com/a-h/templ"
)

// TestResult holds the output of rendering a component for testing.
type TestResult struct {
	HTML string
}

// TestRender renders a component with a background context and returns
// testable output.
//
//	result, err := hxmdx.TestRender(hxmdx.CreateElement("p", nil, "hi"))
//	if !result.HTMLContains("<p>hi</p>") {
//	    t.Fatal("missing paragraph")
//	}
func TestRender(component templ.Component) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), component)
}

// TestRenderWithContext renders a component with a custom context.
//
// Use this when the test needs a registry in scope:
//
//	ctx := hxmdx.WithComponents(context.Background(), hxmdx.Registry{"p": hxmdx.Primitive("div")})
//	result, err := hxmdx.TestRenderWithContext(ctx, docs.Content(nil))
func TestRenderWithContext(ctx context.Context, component templ.Component) (*TestResult, error) {
	var buf bytes.Buffer
	if component != nil {
		if err := component.Render(ctx, &buf); err != nil {
			return nil, err
		}
	}
	return &TestResult{HTML: buf.String()}, nil
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HTMLContainsAny checks if the HTML contains any of the given substrings.
func (r *TestResult) HTMLContainsAny(substrs ...string) bool {
	for _, s := range substrs {
		if strings.Contains(r.HTML, s) {
			return true
		}
	}
	return false
}

// CountTag returns how many times an opening tag with the given name
// appears in the HTML.
func (r *TestResult) CountTag(tag string) int {
	return strings.Count(r.HTML, "<"+tag+">") + strings.Count(r.HTML, "<"+tag+" ")
}
