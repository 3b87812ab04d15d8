package hxmdx

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/a-h/templ"
)

func TestTestRender_Success(t *testing.T) {
	result, err := TestRender(CreateElement("p", Props{"className": "lead"}, "Hello, World!"))
	if err != nil {
		t.Fatalf("TestRender() error = %v", err)
	}

	if result.HTML != `<p class="lead">Hello, World!</p>` {
		t.Errorf("HTML = %q", result.HTML)
	}
}

func TestTestRender_Error(t *testing.T) {
	renderErr := errors.New("render failed")
	comp := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return renderErr
	})

	result, err := TestRender(comp)
	if !errors.Is(err, renderErr) {
		t.Errorf("TestRender() error = %v, want %v", err, renderErr)
	}
	if result != nil {
		t.Error("TestRender() should return nil result on error")
	}
}

func TestTestRender_Nil(t *testing.T) {
	result, err := TestRender(nil)
	if err != nil {
		t.Fatalf("TestRender() error = %v", err)
	}
	if result.HTML != "" {
		t.Errorf("HTML = %q, want empty", result.HTML)
	}
}

func TestTestRenderWithContext(t *testing.T) {
	ctx := WithComponents(context.Background(), Registry{"em": Primitive("i")})

	result, err := TestRenderWithContext(ctx, CreateElement("em", nil, "x"))
	if err != nil {
		t.Fatalf("TestRenderWithContext() error = %v", err)
	}
	if !result.HTMLContains("<i>x</i>") {
		t.Errorf("HTML = %q, want it to contain <i>x</i>", result.HTML)
	}
}

func TestTestResult_Helpers(t *testing.T) {
	result := &TestResult{HTML: `<ul><li>a</li><li class="x">b</li></ul>`}

	if !result.HTMLContains("<ul>") {
		t.Error("HTMLContains(<ul>) = false")
	}
	if !result.HTMLContainsAll("<li>a</li>", ">b<") {
		t.Error("HTMLContainsAll() = false")
	}
	if result.HTMLContainsAll("<li>a</li>", "<ol>") {
		t.Error("HTMLContainsAll() with missing substring = true")
	}
	if !result.HTMLContainsAny("<ol>", "<ul>") {
		t.Error("HTMLContainsAny() = false")
	}
	if result.HTMLContainsAny("<ol>", "<table>") {
		t.Error("HTMLContainsAny() with no matches = true")
	}
	if got := result.CountTag("li"); got != 2 {
		t.Errorf("CountTag(li) = %d, want 2", got)
	}
}
