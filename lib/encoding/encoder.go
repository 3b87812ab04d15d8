// Package encoding snapshots resolved element trees into a plain structure
// and encodes them with msgpack, so other tools can consume the renderer
// decisions without running templ.
package encoding

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/a-h/templ"
	"github.com/pthm/hxmdx"
	"github.com/vmihailenco/msgpack/v5"
)

// Tree kinds beyond the hxmdx renderer kinds.
const (
	KindText = "text"
	KindHTML = "html"
)

// ErrInvalidFormat is returned when encoded data is not a tree.
var ErrInvalidFormat = errors.New("encoding: invalid tree format")

// Tree is one resolved node of a render tree.
type Tree struct {
	// Kind is a renderer kind ("primitive", "callable", "fragment") or
	// KindText / KindHTML for leaf values.
	Kind string `msgpack:"k"`

	// Type is the key the element was requested with.
	Type string `msgpack:"t,omitempty"`

	// Name is the tag a primitive renders.
	Name string `msgpack:"n,omitempty"`

	// Key is the registry key that matched.
	Key string `msgpack:"r,omitempty"`

	// Props holds the scalar props; other values have no portable form.
	Props map[string]any `msgpack:"p,omitempty"`

	// Text holds the raw text of a text leaf or the rendered markup of an
	// opaque component.
	Text string `msgpack:"x,omitempty"`

	Children []*Tree `msgpack:"c,omitempty"`
}

// Snapshot resolves c under ctx and returns its tree. Components that are
// not elements are rendered and kept as an html leaf.
func Snapshot(ctx context.Context, c templ.Component) (*Tree, error) {
	trees, err := snapshotValue(ctx, c)
	if err != nil {
		return nil, err
	}
	if len(trees) == 1 {
		return trees[0], nil
	}
	return &Tree{Kind: hxmdx.KindFragment.String(), Children: trees}, nil
}

// Marshal encodes t with msgpack.
func Marshal(t *Tree) ([]byte, error) {
	return msgpack.Marshal(t)
}

// Unmarshal decodes a tree encoded by Marshal.
func Unmarshal(data []byte) (*Tree, error) {
	var t Tree
	if err := msgpack.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if t.Kind == "" {
		return nil, ErrInvalidFormat
	}
	return &t, nil
}

func snapshotValue(ctx context.Context, v any) ([]*Tree, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []*Tree{{Kind: KindText, Text: x}}, nil
	case *hxmdx.Element:
		if x == nil {
			return nil, nil
		}
		return snapshotNode(ctx, x.Resolve(ctx))
	case *hxmdx.Node:
		if x == nil {
			return nil, nil
		}
		return snapshotNode(ctx, x)
	case []any:
		var out []*Tree
		for _, child := range x {
			trees, err := snapshotValue(ctx, child)
			if err != nil {
				return nil, err
			}
			out = append(out, trees...)
		}
		return out, nil
	case []templ.Component:
		var out []*Tree
		for _, child := range x {
			trees, err := snapshotValue(ctx, child)
			if err != nil {
				return nil, err
			}
			out = append(out, trees...)
		}
		return out, nil
	case templ.Component:
		var buf bytes.Buffer
		if err := x.Render(ctx, &buf); err != nil {
			return nil, err
		}
		return []*Tree{{Kind: KindHTML, Text: buf.String()}}, nil
	default:
		return []*Tree{{Kind: KindText, Text: fmt.Sprint(x)}}, nil
	}
}

func snapshotNode(ctx context.Context, n *hxmdx.Node) ([]*Tree, error) {
	t := &Tree{
		Kind:  n.Renderer.Kind().String(),
		Type:  n.Type,
		Key:   n.Key,
		Props: scalarProps(n.Props),
	}
	if name, ok := n.Renderer.(hxmdx.Primitive); ok {
		t.Name = string(name)
	}

	children, err := snapshotValue(n.ChildContext(ctx), n.Children)
	if err != nil {
		return nil, err
	}
	t.Children = children
	return []*Tree{t}, nil
}

func scalarProps(props hxmdx.Props) map[string]any {
	var out map[string]any
	for k, v := range props {
		switch v.(type) {
		case string, bool, int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64, float32, float64:
		default:
			continue
		}
		if out == nil {
			out = make(map[string]any, len(props))
		}
		out[k] = v
	}
	return out
}
