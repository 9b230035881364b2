package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"zoia/internal/errs"
	"zoia/internal/validation"

	"github.com/BurntSushi/toml"
)

// PositionalKey names the list of positional parameter types in a
// parameter table.
const PositionalKey = "_"

// Config is the raw content of zoia.toml.
type Config struct {
	Project  ProjectConfig                        `toml:"project"`
	Header   map[string]toml.Primitive            `toml:"header"`
	Commands map[string]map[string]toml.Primitive `toml:"commands"`
}

type ProjectConfig struct {
	Name string `toml:"name"`
	// Chapters is the directory with *.zoia files, relative to the root.
	Chapters string `toml:"chapters"`
	// Strict turns unknown commands into errors instead of warnings.
	Strict bool `toml:"strict"`
}

// Manifest is a loaded and resolved zoia.toml.
type Manifest struct {
	Path     string
	Root     string
	Config   Config
	Header   *Schema
	Commands map[string]*Schema
	Hash     Digest
}

// ChaptersDir returns the absolute directory holding the documents.
func (m *Manifest) ChaptersDir() string {
	if m.Config.Project.Chapters == "" {
		return m.Root
	}
	return filepath.Join(m.Root, filepath.FromSlash(m.Config.Project.Chapters))
}

// Command returns the schema of a declared command.
func (m *Manifest) Command(name string) (*Schema, bool) {
	s, ok := m.Commands[name]
	return s, ok
}

// CommandNames returns declared command names, sorted.
func (m *Manifest) CommandNames() []string {
	out := make([]string, 0, len(m.Commands))
	for n := range m.Commands {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// LoadManifest finds zoia.toml upward from startDir and loads it.
// ok is false when no manifest exists.
func LoadManifest(startDir string, types *validation.Registry) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifestFile(path, types)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadManifestFile decodes and resolves a manifest. Structural problems
// are *errs.ProjectStructureError.
func LoadManifestFile(path string, types *validation.Registry) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(path, data, types)
}

// ParseManifest resolves manifest content read from path.
func ParseManifest(path string, data []byte, types *validation.Registry) (*Manifest, error) {
	if types == nil {
		types = validation.NewRegistry()
	}
	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errs.NewProjectStructureError(path, "failed to parse TOML: "+err.Error())
	}
	if !meta.IsDefined("project") {
		return nil, errs.NewProjectStructureError(path, "missing [project]")
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return nil, errs.NewProjectStructureError(path, "missing [project].name")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		unknown := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			// таблицы параметров декодируются отдельно ниже
			if len(k) > 0 && (k[0] == "header" || k[0] == "commands") {
				continue
			}
			unknown = append(unknown, k.String())
		}
		if len(unknown) > 0 {
			return nil, errs.NewProjectStructureError(path, "unknown keys: "+strings.Join(unknown, ", "))
		}
	}

	m := &Manifest{
		Path:     path,
		Root:     filepath.Dir(path),
		Config:   cfg,
		Commands: make(map[string]*Schema, len(cfg.Commands)),
		Hash:     HashString(string(data)),
	}
	m.Header, err = buildSchema(path, "header", meta, cfg.Header, types)
	if err != nil {
		return nil, err
	}
	for name, params := range cfg.Commands {
		s, err := buildSchema(path, "commands."+name, meta, params, types)
		if err != nil {
			return nil, err
		}
		s.Name = name
		m.Commands[name] = s
	}
	return m, nil
}
