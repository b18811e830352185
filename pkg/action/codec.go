package action

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// decoder builds a concrete action from an encoded payload.
type decoder func(decode func(target any) error) (Action, error)

func decodeAs[T Action]() decoder {
	return decodeOnto(func() T {
		var v T
		return v
	})
}

// decodeOnto decodes over the value built by fresh, so fields missing from
// the payload keep their constructor defaults.
func decodeOnto[T Action](fresh func() T) decoder {
	return func(decode func(target any) error) (Action, error) {
		v := fresh()
		if err := decode(&v); err != nil {
			return nil, err
		}
		if n, ok := any(v).(normalizer); ok {
			return n.normalize(), nil
		}
		return v, nil
	}
}

// normalizer is implemented by actions that create entities. Decoded
// payloads may omit identities or carry duplicate cells.
type normalizer interface {
	normalize() Action
}

func (a AddScene) normalize() Action {
	if a.Scene.ID == "" {
		a.Scene.ID = domain.NewID()
	}
	if len(a.Scene.Nodes) == 0 {
		a.Scene.Nodes = []domain.Node{domain.NewNode()}
	}
	nodes := make([]domain.Node, len(a.Scene.Nodes))
	for i, n := range a.Scene.Nodes {
		nodes[i] = normalizeNode(n)
	}
	a.Scene.Nodes = nodes
	return a
}

func (a AddNode) normalize() Action {
	a.Node = normalizeNode(a.Node)
	return a
}

func normalizeNode(n domain.Node) domain.Node {
	if n.ID == "" {
		n.ID = domain.NewID()
	}
	cells := n.Cells
	n.Cells = []domain.Cell{}
	for _, c := range cells {
		n = n.SetCell(c.X, c.Y, c.Glyph, c.Color)
	}
	return n
}

// decoders lists every kind that can travel over the wire. Workspace
// replacement carries a whole State and is only built in-process.
var decoders = map[domain.ActionKind]decoder{
	KindSelectTool:     decodeAs[SelectTool](),
	KindSelectColor:    decodeAs[SelectColor](),
	KindSelectGlyph:    decodeAs[SelectGlyph](),
	KindSelectScene:    decodeAs[SelectScene](),
	KindSelectNode:     decodeAs[SelectNode](),
	KindSetCursor:      decodeAs[SetCursor](),
	KindSetSelection:   decodeAs[SetSelection](),
	KindClearSelection: decodeAs[ClearSelection](),

	KindUndo:           decodeAs[Undo](),
	KindRedo:           decodeAs[Redo](),
	KindSelectRevision: decodeAs[SelectRevision](),

	KindSetName:            decodeAs[SetName](),
	KindSetFont:            decodeAs[SetFont](),
	KindSetDimensions:      decodeAs[SetDimensions](),
	KindSetCellDimensions:  decodeAs[SetCellDimensions](),
	KindSetBackgroundColor: decodeAs[SetBackgroundColor](),
	KindSetGlyphIndex:      decodeAs[SetGlyphIndex](),
	KindSetColorIndex:      decodeAs[SetColorIndex](),

	KindAddScene: decodeOnto(func() AddScene {
		return AddScene{Scene: domain.NewScene(domain.WithNodes())}
	}),
	KindDeleteScene: decodeAs[DeleteScene](),
	KindRenameScene: decodeAs[RenameScene](),

	KindAddNode: decodeOnto(func() AddNode {
		return AddNode{Node: domain.NewNode()}
	}),
	KindDeleteNode:     decodeAs[DeleteNode](),
	KindRenameNode:     decodeAs[RenameNode](),
	KindSetCell:        decodeAs[SetCell](),
	KindClearCell:      decodeAs[ClearCell](),
	KindSetVisibility:  decodeAs[SetVisibility](),
	KindSetTranslation: decodeAs[SetTranslation](),
}

func lookup(kind domain.ActionKind) (decoder, error) {
	if kind == KindNewWorkspace || kind == KindLoadWorkspace {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedAction, kind)
	}
	dec, ok := decoders[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAction, kind)
	}
	return dec, nil
}

// Marshal encodes an action as a flat JSON object with a "type" field.
func Marshal(a domain.Action) ([]byte, error) {
	if _, err := lookup(a.Kind()); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", a.Kind(), err)
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("marshal %s: %w", a.Kind(), err)
	}

	kind, _ := json.Marshal(string(a.Kind()))
	fields["type"] = kind

	return json.Marshal(fields)
}

// Unmarshal decodes a single action produced by Marshal.
func Unmarshal(data []byte) (Action, error) {
	var envelope struct {
		Type domain.ActionKind `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}

	dec, err := lookup(envelope.Type)
	if err != nil {
		return nil, err
	}

	a, err := dec(func(target any) error {
		return json.Unmarshal(data, target)
	})
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", envelope.Type, err)
	}
	return a, nil
}

// UnmarshalList decodes either a single action object or an array of them.
func UnmarshalList(data []byte) ([]Action, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		a, err := Unmarshal(trimmed)
		if err != nil {
			return nil, err
		}
		return []Action{a}, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("decode actions: %w", err)
	}

	actions := make([]Action, 0, len(raw))
	for i, r := range raw {
		a, err := Unmarshal(r)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// FromMap decodes a loosely typed action, such as tool arguments or a parsed
// YAML script. Numbers may arrive as floats or strings.
func FromMap(m map[string]any) (Action, error) {
	kind, _ := m["type"].(string)

	dec, err := lookup(domain.ActionKind(kind))
	if err != nil {
		return nil, err
	}

	a, err := dec(func(target any) error {
		d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           target,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return err
		}
		return d.Decode(m)
	})
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind, err)
	}
	return a, nil
}
