// Package provenance provides field-level tracking of where each output value came from.
package provenance

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/tallysheet/pkg/constants"
	"github.com/agentstation/tallysheet/pkg/errors"
	"github.com/agentstation/tallysheet/pkg/types"
)

// Provenance records one candidate value for a field.
type Provenance struct {
	Source    types.SourceID `yaml:"source"`             // Source consulted (e.g., "registry", "roster")
	Field     string         `yaml:"field"`              // Field path
	Value     any            `yaml:"value"`              // The candidate value
	Timestamp time.Time      `yaml:"timestamp"`          // When the value was recorded
	Priority  int            `yaml:"priority"`           // Position in the authority chain, 0 is highest
	Selected  bool           `yaml:"selected"`           // Whether this candidate was emitted
	Reason    string         `yaml:"reason,omitempty"`   // Why the value was selected or passed over
}

// Map tracks provenance for multiple resources.
type Map map[string][]Provenance // key is "resourceType:resourceID:fieldPath"

// Tracker manages provenance tracking during resolution.
type Tracker interface {
	// Track records provenance for a field
	Track(resourceType types.ResourceType, resourceID string, field string, history Provenance)

	// FindByField retrieves provenance for a specific field
	FindByField(resourceType types.ResourceType, resourceID string, field string) []Provenance

	// FindByResource retrieves all provenance for a resource
	FindByResource(resourceType types.ResourceType, resourceID string) map[string][]Provenance

	// Enabled reports whether tracking records anything
	Enabled() bool

	// Map returns the complete provenance map
	Map() Map

	// Clear removes all provenance data
	Clear()
}

// tracker is the default implementation.
type tracker struct {
	provenance Map
	enabled    bool
}

// NewTracker creates a new provenance tracker.
func NewTracker(enabled bool) Tracker {
	return &tracker{
		provenance: make(Map),
		enabled:    enabled,
	}
}

// Track records provenance for a field.
func (p *tracker) Track(resourceType types.ResourceType, resourceID string, field string, history Provenance) {
	if !p.enabled {
		return
	}

	if history.Timestamp.IsZero() {
		history.Timestamp = time.Now()
	}
	if history.Field == "" {
		history.Field = field
	}

	key := MakeKey(resourceType, resourceID, field)
	p.provenance[key] = append(p.provenance[key], history)
}

// FindByField retrieves provenance for a specific field.
func (p *tracker) FindByField(resourceType types.ResourceType, resourceID string, field string) []Provenance {
	if !p.enabled {
		return nil
	}
	return p.provenance[MakeKey(resourceType, resourceID, field)]
}

// FindByResource retrieves all provenance for a resource.
func (p *tracker) FindByResource(resourceType types.ResourceType, resourceID string) map[string][]Provenance {
	if !p.enabled {
		return nil
	}

	result := make(map[string][]Provenance)
	for key, info := range p.provenance {
		rt, id, field, ok := SplitKey(key)
		if ok && rt == resourceType && id == resourceID {
			result[field] = info
		}
	}
	return result
}

// Enabled reports whether the tracker records anything.
func (p *tracker) Enabled() bool {
	return p.enabled
}

// Map returns the complete provenance map.
func (p *tracker) Map() Map {
	if !p.enabled {
		return nil
	}

	// Return a copy to prevent external modification
	result := make(Map, len(p.provenance))
	for k, v := range p.provenance {
		result[k] = append([]Provenance{}, v...)
	}
	return result
}

// Clear removes all provenance data.
func (p *tracker) Clear() {
	p.provenance = make(Map)
}

// MakeKey creates the map key for a resource field. The resource ID may
// contain colons; the type and field never do.
func MakeKey(resourceType types.ResourceType, resourceID string, field string) string {
	return fmt.Sprintf("%s:%s:%s", resourceType, resourceID, field)
}

// SplitKey is the inverse of MakeKey.
func SplitKey(key string) (types.ResourceType, string, string, bool) {
	first := strings.Index(key, ":")
	last := strings.LastIndex(key, ":")
	if first < 0 || last <= first {
		return "", "", "", false
	}
	return types.ResourceType(key[:first]), key[first+1 : last], key[last+1:], true
}

// Report groups provenance by resource for output.
type Report struct {
	Resources map[string]ResourceProvenance `yaml:"resources"` // key is "resourceType:resourceID"
}

// ResourceProvenance contains provenance for a single output row.
type ResourceProvenance struct {
	Type   types.ResourceType `yaml:"type"`
	ID     string             `yaml:"id"`
	Fields map[string]Field   `yaml:"fields"`
}

// Field contains the candidates considered for a single field.
type Field struct {
	Current   Provenance     `yaml:"current"`
	History   []Provenance   `yaml:"history,omitempty"`
	Conflicts []ConflictInfo `yaml:"conflicts,omitempty"`
}

// ConflictInfo describes sources that disagreed on a field.
type ConflictInfo struct {
	Sources        []types.SourceID `yaml:"sources"`
	Values         []any            `yaml:"values"`
	Resolution     string           `yaml:"resolution"`
	SelectedSource types.SourceID   `yaml:"selected_source"`
}

// GenerateReport creates a provenance report from a Map.
func GenerateReport(provenance Map) *Report {
	report := &Report{
		Resources: make(map[string]ResourceProvenance),
	}

	for key, infos := range provenance {
		resourceType, resourceID, field, ok := SplitKey(key)
		if !ok {
			continue
		}

		resourceKey := fmt.Sprintf("%s:%s", resourceType, resourceID)
		resource, exists := report.Resources[resourceKey]
		if !exists {
			resource = ResourceProvenance{
				Type:   resourceType,
				ID:     resourceID,
				Fields: make(map[string]Field),
			}
		}

		history := append([]Provenance{}, infos...)
		sort.SliceStable(history, func(i, j int) bool {
			return history[i].Priority < history[j].Priority
		})

		fieldProv := Field{History: history}
		for _, info := range history {
			if info.Selected {
				fieldProv.Current = info
				break
			}
		}
		if fieldProv.Current.Source == "" && len(history) > 0 {
			fieldProv.Current = history[0]
		}
		fieldProv.Conflicts = detectConflicts(history)

		resource.Fields[field] = fieldProv
		report.Resources[resourceKey] = resource
	}

	return report
}

// detectConflicts reports a conflict when more than one source offered a
// non-empty value and the values differ.
func detectConflicts(infos []Provenance) []ConflictInfo {
	var offered []Provenance
	for _, info := range infos {
		if fmt.Sprint(info.Value) != "" && info.Value != nil {
			offered = append(offered, info)
		}
	}
	if len(offered) < 2 {
		return nil
	}

	distinct := false
	for _, info := range offered[1:] {
		if fmt.Sprint(info.Value) != fmt.Sprint(offered[0].Value) {
			distinct = true
			break
		}
	}
	if !distinct {
		return nil
	}

	conflict := ConflictInfo{}
	for _, info := range offered {
		conflict.Sources = append(conflict.Sources, info.Source)
		conflict.Values = append(conflict.Values, info.Value)
		if info.Selected {
			conflict.SelectedSource = info.Source
			conflict.Resolution = info.Reason
		}
	}
	return []ConflictInfo{conflict}
}

// Filter returns the entries whose key satisfies keep.
func (m Map) Filter(keep func(resourceType types.ResourceType, resourceID, field string) bool) Map {
	out := make(Map)
	for key, infos := range m {
		rt, id, field, ok := SplitKey(key)
		if ok && keep(rt, id, field) {
			out[key] = infos
		}
	}
	return out
}

// OnlyConflicts returns a copy of the report holding just the fields whose
// sources disagreed.
func (r *Report) OnlyConflicts() *Report {
	out := &Report{Resources: make(map[string]ResourceProvenance)}
	for key, resource := range r.Resources {
		fields := make(map[string]Field)
		for name, field := range resource.Fields {
			if len(field.Conflicts) > 0 {
				fields[name] = field
			}
		}
		if len(fields) > 0 {
			resource.Fields = fields
			out.Resources[key] = resource
		}
	}
	return out
}

// Conflicts returns the number of fields with disagreeing sources.
func (r *Report) Conflicts() int {
	n := 0
	for _, resource := range r.Resources {
		for _, field := range resource.Fields {
			n += len(field.Conflicts)
		}
	}
	return n
}

// String generates a string representation of the provenance report.
func (r *Report) String() string {
	var sb strings.Builder

	sb.WriteString("Provenance Report\n")
	sb.WriteString("=================\n\n")

	resourceKeys := make([]string, 0, len(r.Resources))
	for key := range r.Resources {
		resourceKeys = append(resourceKeys, key)
	}
	sort.Strings(resourceKeys)

	for _, key := range resourceKeys {
		resource := r.Resources[key]
		sb.WriteString(fmt.Sprintf("%s: %s\n", resource.Type, resource.ID))
		sb.WriteString(strings.Repeat("-", 40))
		sb.WriteString("\n")

		fieldKeys := make([]string, 0, len(resource.Fields))
		for field := range resource.Fields {
			fieldKeys = append(fieldKeys, field)
		}
		sort.Strings(fieldKeys)

		for _, field := range fieldKeys {
			fieldProv := resource.Fields[field]
			sb.WriteString(fmt.Sprintf("  %s:\n", field))
			sb.WriteString(fmt.Sprintf("    Current: %v (from %s)\n",
				fieldProv.Current.Value, fieldProv.Current.Source))

			for _, conflict := range fieldProv.Conflicts {
				sb.WriteString("    Conflict:\n")
				sb.WriteString(fmt.Sprintf("      - Sources: %v\n", conflict.Sources))
				sb.WriteString(fmt.Sprintf("        Values: %v\n", conflict.Values))
				sb.WriteString(fmt.Sprintf("        Selected: %s\n", conflict.SelectedSource))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// File represents a provenance file stored on disk.
type File struct {
	GeneratedAt time.Time `yaml:"generated_at"`
	Provenance  Map       `yaml:"provenance"`
}

// WriteYAML encodes the provenance map as YAML.
func WriteYAML(w io.Writer, provenance Map) error {
	data, err := yaml.Marshal(File{GeneratedAt: time.Now().UTC(), Provenance: provenance})
	if err != nil {
		return &errors.ParseError{Format: "yaml", Message: "failed to encode provenance", Err: err}
	}
	if _, err := w.Write(data); err != nil {
		return errors.WrapIO("write", "", err)
	}
	return nil
}

// Save writes the provenance map to path, creating parent directories.
func Save(path string, provenance Map) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("mkdir", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions) //nolint:gosec // output path comes from CLI flags
	if err != nil {
		return errors.WrapIO("open", path, err)
	}
	if err := WriteYAML(f, provenance); err != nil {
		_ = f.Close()
		return err
	}
	return errors.WrapIO("close", path, f.Close())
}

// Load reads provenance data from a YAML file.
// Returns nil, nil if the file doesn't exist (not an error).
func Load(path string) (*File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var pf File
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	return &pf, nil
}
