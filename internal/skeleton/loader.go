package skeleton

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"spine-mesh-baker/internal/textio"
)

// Load reads and decodes the skeleton JSON at path.
func Load(path string) (*Document, error) {
	data, err := textio.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("skeleton: read %s: %w", path, err)
	}
	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("skeleton: parse %s: %w", path, err)
	}
	return doc, nil
}

// Decode parses a skeleton document. bones, slots and skins are required.
func Decode(data []byte) (*Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("skeleton: decode: %w", err)
	}
	for _, key := range []string{"bones", "slots", "skins"} {
		if _, ok := top[key]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingKey, key)
		}
	}

	doc := &Document{}
	if raw, ok := top["skeleton"]; ok {
		var h Header
		if err := json.Unmarshal(raw, &h); err != nil {
			return nil, fmt.Errorf("skeleton: decode header: %w", err)
		}
		doc.Header = &h
	}
	if err := json.Unmarshal(top["bones"], &doc.Bones); err != nil {
		return nil, fmt.Errorf("skeleton: decode bones: %w", err)
	}
	if err := json.Unmarshal(top["slots"], &doc.Slots); err != nil {
		return nil, fmt.Errorf("skeleton: decode slots: %w", err)
	}
	skins, err := decodeSkins(top["skins"])
	if err != nil {
		return nil, err
	}
	doc.Skins = skins

	return doc, nil
}

// decodeSkins accepts the list form (Spine 3.8+) and the legacy object form
// keyed by skin name. In the object form "default" is placed first.
func decodeSkins(raw json.RawMessage) ([]Skin, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var byName map[string]map[string]map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &byName); err != nil {
			return nil, fmt.Errorf("skeleton: decode skins: %w", err)
		}
		names := make([]string, 0, len(byName))
		for name := range byName {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if (names[i] == "default") != (names[j] == "default") {
				return names[i] == "default"
			}
			return names[i] < names[j]
		})
		skins := make([]Skin, 0, len(names))
		for _, name := range names {
			skins = append(skins, Skin{Name: name, Attachments: byName[name]})
		}
		return skins, nil
	}

	var skins []Skin
	if err := json.Unmarshal(trimmed, &skins); err != nil {
		return nil, fmt.Errorf("skeleton: decode skins: %w", err)
	}
	return skins, nil
}

// ActiveSkin returns skins[0], the only skin the baker uses.
func (d *Document) ActiveSkin() (*Skin, error) {
	if len(d.Skins) == 0 {
		return nil, fmt.Errorf("%w: \"skins[0]\"", ErrMissingKey)
	}
	return &d.Skins[0], nil
}

// Attachment decodes the attachment name under slot. ok is false when the
// skin has no such attachment.
func (s *Skin) Attachment(slot, name string) (att *AttachmentData, ok bool, err error) {
	raw, ok := s.Attachments[slot][name]
	if !ok {
		return nil, false, nil
	}
	att = &AttachmentData{}
	if err := json.Unmarshal(raw, att); err != nil {
		return nil, true, fmt.Errorf("skeleton: decode attachment %s:%s: %w", slot, name, err)
	}
	return att, true, nil
}
