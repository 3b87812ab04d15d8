// Package overrides loads a root renderer registry from HCL files.
//
//	component "h1" {
//	  tag = "h2"
//	}
//
//	component "pre.code" {
//	  alias = "code"
//	}
//
//	component "p" {
//	  tag   = "p"
//	  class = "lead"
//	}
//
// Each block sets exactly one of tag or alias. class adds a CSS class to the
// rendered tag and needs tag. When a key repeats, the later block wins.
package overrides

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/a-h/templ"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pthm/hxmdx"
	"github.com/pthm/hxmdx/internal/ctxlog"
)

// Sentinel errors for invalid component blocks.
var (
	ErrConflictingRenderer = errors.New("overrides: component sets both tag and alias")
	ErrEmptyRenderer       = errors.New("overrides: component sets neither tag nor alias")
	ErrClassWithoutTag     = errors.New("overrides: class requires tag")
)

// IsInvalidComponent checks if err reports an invalid component block.
func IsInvalidComponent(err error) bool {
	return errors.Is(err, ErrConflictingRenderer) ||
		errors.Is(err, ErrEmptyRenderer) ||
		errors.Is(err, ErrClassWithoutTag)
}

type fileRoot struct {
	Components []*componentBlock `hcl:"component,block"`
	Remain     hcl.Body          `hcl:",remain"`
}

type componentBlock struct {
	Key   string  `hcl:"key,label"`
	Tag   *string `hcl:"tag,optional"`
	Alias *string `hcl:"alias,optional"`
	Class *string `hcl:"class,optional"`
}

// Load parses the HCL files at paths, in order, into one registry.
func Load(ctx context.Context, paths ...string) (hxmdx.Registry, error) {
	logger := ctxlog.FromContext(ctx)
	parser := hclparse.NewParser()

	reg := hxmdx.Registry{}
	for _, path := range paths {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}
		if err := decodeInto(reg, file); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		logger.Debug("Loaded component overrides.", "file", path)
	}

	logger.Info("Component overrides loaded.", "files", len(paths), "components", len(reg))
	return reg, nil
}

// Parse decodes HCL source into a registry. filename is used in diagnostics.
func Parse(ctx context.Context, src []byte, filename string) (hxmdx.Registry, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL %s: %w", filename, diags)
	}

	reg := hxmdx.Registry{}
	if err := decodeInto(reg, file); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	ctxlog.FromContext(ctx).Debug("Parsed component overrides.", "file", filename, "components", len(reg))
	return reg, nil
}

func decodeInto(reg hxmdx.Registry, file *hcl.File) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode: %w", diags)
	}

	for _, block := range root.Components {
		renderer, err := block.renderer()
		if err != nil {
			return fmt.Errorf("component %q: %w", block.Key, err)
		}
		reg[block.Key] = renderer
	}
	return nil
}

func (b *componentBlock) renderer() (hxmdx.Renderer, error) {
	tag, alias, class := value(b.Tag), value(b.Alias), value(b.Class)

	switch {
	case tag != "" && alias != "":
		return nil, ErrConflictingRenderer
	case tag == "" && alias == "":
		return nil, ErrEmptyRenderer
	case alias != "":
		if class != "" {
			return nil, ErrClassWithoutTag
		}
		return hxmdx.Alias(alias), nil
	case class == "":
		return hxmdx.Primitive(tag), nil
	}
	return classed(tag, class), nil
}

// classed renders tag with class appended to any className prop. It builds
// the node directly so the tag is not looked up again, which would loop when
// a key overrides itself ("p" -> "p" with a class).
func classed(tag, class string) hxmdx.Callable {
	return func(props hxmdx.Props) templ.Component {
		attrs := hxmdx.Props{}
		for k, v := range props {
			if k != hxmdx.ChildrenKey {
				attrs[k] = v
			}
		}
		if existing, ok := attrs["className"].(string); ok && existing != "" {
			attrs["className"] = strings.TrimSpace(existing + " " + class)
		} else {
			attrs["className"] = class
		}

		return &hxmdx.Node{
			Type:     tag,
			Renderer: hxmdx.Primitive(tag),
			Props:    attrs,
			Children: props[hxmdx.ChildrenKey],
		}
	}
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
