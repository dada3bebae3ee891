package lens

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Reserved preset ids. "default" always exists; "custom" is the
// synthetic id a selection demotes to once the user edits any field.
const (
	PresetDefault = "default"
	PresetCustom  = "custom"
)

// Preset is one named lens configuration tuple. Selection is
// transactional: all four fields apply together or not at all.
type Preset struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	XKey    string `yaml:"xKey" json:"xKey"`
	YKey    string `yaml:"yKey" json:"yKey"`
	Y2Key   string `yaml:"y2Key,omitempty" json:"y2Key,omitempty"`
}

// PresetConfig is the persisted shape. The persistence mechanism is the
// caller's concern; this package only defines the encoding.
type PresetConfig struct {
	ActiveID string            `yaml:"activeId" json:"activeId"`
	Presets  map[string]Preset `yaml:"presets" json:"presets"`
}

type presetState struct {
	activeID string
	presets  map[string]Preset
}

func newPresetState() *presetState {
	return &presetState{
		activeID: PresetDefault,
		presets: map[string]Preset{
			PresetDefault: {},
		},
	}
}

func (p *presetState) demote() {
	if p.activeID != PresetCustom {
		p.activeID = PresetCustom
	}
}

// ActivePresetID returns the currently selected preset id, which is
// PresetCustom once any field has been edited.
func (l *Lens) ActivePresetID() string { return l.presets.activeID }

// PresetNames returns the stored preset ids in sorted order.
func (l *Lens) PresetNames() []string {
	names := make([]string, 0, len(l.presets.presets))
	for name := range l.presets.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SelectPreset applies a stored preset transactionally. An unknown id
// is a no-op and returns false.
func (l *Lens) SelectPreset(id string) bool {
	p, ok := l.presets.presets[id]
	if !ok {
		return false
	}
	l.apply(p)
	l.presets.activeID = id
	return true
}

// SavePreset stores the current tuple under name and selects it.
// Saving over an existing name overwrites it.
func (l *Lens) SavePreset(name string) error {
	if name == "" {
		return fmt.Errorf("preset name is required")
	}
	if name == PresetCustom {
		return fmt.Errorf("%q is reserved for the unnamed state", PresetCustom)
	}
	l.presets.presets[name] = l.snapshot()
	l.presets.activeID = name
	return nil
}

// DeletePreset removes a stored preset. The "default" and "custom" ids
// are protected. Deleting the active preset demotes selection to
// "custom" without touching the live tuple.
func (l *Lens) DeletePreset(name string) error {
	if name == PresetDefault || name == PresetCustom {
		return fmt.Errorf("preset %q cannot be deleted", name)
	}
	if _, ok := l.presets.presets[name]; !ok {
		return fmt.Errorf("preset %q does not exist", name)
	}
	delete(l.presets.presets, name)
	if l.presets.activeID == name {
		l.presets.demote()
	}
	return nil
}

// ExportPresets captures the preset table for persistence.
func (l *Lens) ExportPresets() PresetConfig {
	out := PresetConfig{ActiveID: l.presets.activeID, Presets: make(map[string]Preset, len(l.presets.presets))}
	for name, p := range l.presets.presets {
		out.Presets[name] = p
	}
	return out
}

// ImportPresets restores a persisted preset table. The active id is
// re-applied when it names a stored preset; otherwise selection lands
// on "custom" and the live tuple is untouched.
func (l *Lens) ImportPresets(cfg PresetConfig) {
	l.presets.presets = make(map[string]Preset, len(cfg.Presets)+1)
	for name, p := range cfg.Presets {
		l.presets.presets[name] = p
	}
	if _, ok := l.presets.presets[PresetDefault]; !ok {
		l.presets.presets[PresetDefault] = Preset{}
	}
	if !l.SelectPreset(cfg.ActiveID) {
		l.presets.activeID = PresetCustom
	}
}

// EncodePresets writes the preset table as YAML.
func (l *Lens) EncodePresets(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	cfg := l.ExportPresets()
	if err := enc.Encode(&cfg); err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}
	return nil
}

// DecodePresets reads a YAML preset table and installs it.
func (l *Lens) DecodePresets(r io.Reader) error {
	var cfg PresetConfig
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return fmt.Errorf("decode presets: %w", err)
	}
	l.ImportPresets(cfg)
	return nil
}
