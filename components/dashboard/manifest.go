package dashboard

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current layout manifest version for tooling.
	ManifestVersion = manifestVersionV1
)

//go:embed layouts/default.yaml
var defaultLayoutYAML []byte

// LayoutManifest describes which cards the shell mounts and where.
type LayoutManifest struct {
	Version string       `json:"version" yaml:"version"`
	Name    string       `json:"name,omitempty" yaml:"name,omitempty"`
	Header  LayoutHeader `json:"header" yaml:"header"`
	Always  []CardID     `json:"always" yaml:"always"`
	Tabs    []TabLayout  `json:"tabs" yaml:"tabs"`
	Source  string       `json:"-" yaml:"-"`
}

// LayoutHeader is the static header copy.
type LayoutHeader struct {
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle" yaml:"subtitle"`
}

// TabLayout lists the card rows of one tab.
type TabLayout struct {
	Key  Tab        `json:"key" yaml:"key"`
	Rows [][]CardID `json:"rows" yaml:"rows"`
}

// DefaultLayout decodes the embedded default manifest.
func DefaultLayout() (*LayoutManifest, error) {
	doc, err := DecodeLayout(bytes.NewReader(defaultLayoutYAML))
	if err != nil {
		return nil, err
	}
	doc.Source = "embedded:layouts/default.yaml"
	return doc, nil
}

// ReadLayout loads a manifest file from disk.
func ReadLayout(path string) (*LayoutManifest, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open layout %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeLayout(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode layout %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeLayout reads a manifest from any reader. Unknown keys are rejected.
func DecodeLayout(r io.Reader) (*LayoutManifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc LayoutManifest
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dashboard: layout is empty")
		}
		return nil, fmt.Errorf("dashboard: parse layout: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(nil); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeLayout writes the manifest as YAML.
func EncodeLayout(w io.Writer, doc *LayoutManifest) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("dashboard: encode layout: %w", err)
	}
	return encoder.Close()
}

// Validate checks the structure and, when reg is non-nil, that every card id
// is registered.
func (doc *LayoutManifest) Validate(reg *Registry) error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("dashboard: unsupported layout version %q", doc.Version)
	}
	always := make(map[CardID]struct{}, len(doc.Always))
	for _, id := range doc.Always {
		if err := checkCard(reg, id); err != nil {
			return err
		}
		if _, dup := always[id]; dup {
			return fmt.Errorf("dashboard: layout lists %s twice in always", id)
		}
		always[id] = struct{}{}
	}
	seenTabs := make(map[Tab]struct{}, len(doc.Tabs))
	for _, tab := range doc.Tabs {
		if _, err := ParseTab(string(tab.Key)); err != nil {
			return fmt.Errorf("dashboard: layout tab %q: %w", tab.Key, err)
		}
		if _, dup := seenTabs[tab.Key]; dup {
			return fmt.Errorf("dashboard: layout duplicates tab %s", tab.Key)
		}
		seenTabs[tab.Key] = struct{}{}
		seenCards := map[CardID]struct{}{}
		for _, row := range tab.Rows {
			for _, id := range row {
				if err := checkCard(reg, id); err != nil {
					return fmt.Errorf("dashboard: layout tab %s: %w", tab.Key, err)
				}
				if _, ok := always[id]; ok {
					return fmt.Errorf("dashboard: layout tab %s repeats always-mounted card %s", tab.Key, id)
				}
				if _, dup := seenCards[id]; dup {
					return fmt.Errorf("dashboard: layout tab %s lists %s twice", tab.Key, id)
				}
				seenCards[id] = struct{}{}
			}
		}
	}
	return nil
}

func checkCard(reg *Registry, id CardID) error {
	if id == "" {
		return fmt.Errorf("dashboard: layout contains an empty card id")
	}
	if reg == nil {
		return nil
	}
	if _, ok := reg.Definition(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCard, id)
	}
	return nil
}

// Rows returns the card rows of tab; an absent tab has no rows.
func (doc *LayoutManifest) Rows(tab Tab) [][]CardID {
	for _, t := range doc.Tabs {
		if t.Key == tab {
			return t.Rows
		}
	}
	return nil
}

// TabCards flattens the rows of tab in display order.
func (doc *LayoutManifest) TabCards(tab Tab) []CardID {
	var out []CardID
	for _, row := range doc.Rows(tab) {
		out = append(out, row...)
	}
	return out
}

func (doc *LayoutManifest) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}
