package snapshot

import (
	"fmt"

	"github.com/aretw0/glyphgrid/pkg/domain"
	"gopkg.in/yaml.v3"
)

// EncodeDocumentYAML writes a document, without history, as YAML.
func EncodeDocumentYAML(doc domain.Document) ([]byte, error) {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return out, nil
}

// DecodeDocumentYAML reads a document written by EncodeDocumentYAML.
// Missing palettes and settings fall back to the defaults of a new document.
func DecodeDocumentYAML(data []byte) (domain.Document, error) {
	doc := domain.NewDocument(domain.WithScenes())
	doc.Colors, doc.Glyphs = nil, nil

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Document{}, fmt.Errorf("decode document: %w", err)
	}

	if len(doc.Colors) == 0 {
		doc = doc.SetColors(domain.DefaultColors)
	}
	if len(doc.Glyphs) == 0 {
		doc = doc.SetGlyphs(domain.DefaultGlyphs)
	}
	if len(doc.Scenes) == 0 {
		return domain.Document{}, fmt.Errorf("%w: document has no scenes", domain.ErrInvalidSnapshot)
	}
	return doc, nil
}
