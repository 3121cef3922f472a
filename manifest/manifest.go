// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package manifest describes a set of shader programs in a YAML or TOML file.
//
//	version: 1
//	language: glsl
//	programs:
//	  - name: orange
//	    vertex: triangle.vert
//	    fragment: orange.frag
//
// Source paths are relative to the manifest file.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/shaderprog"
)

// CurrentVersion is the manifest format version written by Marshal.
const CurrentVersion = 1

var (
	// ErrNoPrograms is returned when a manifest lists no programs.
	ErrNoPrograms = errors.New("manifest: no programs")

	// ErrUnknownFormat is returned for a file extension that is neither YAML
	// nor TOML.
	ErrUnknownFormat = errors.New("manifest: unknown format")

	// ErrUnsupportedVersion is returned for a version newer than CurrentVersion.
	ErrUnsupportedVersion = errors.New("manifest: unsupported version")
)

// Format is the encoding of a manifest file.
type Format uint8

const (
	// FormatYAML is YAML (.yaml, .yml).
	FormatYAML Format = iota
	// FormatTOML is TOML (.toml).
	FormatTOML
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "yaml"
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Manifest is a list of programs to build.
type Manifest struct {
	Version  int       `yaml:"version" toml:"version"`
	Language string    `yaml:"language,omitempty" toml:"language,omitempty"`
	Programs []Program `yaml:"programs" toml:"programs"`

	// dir is the directory source paths are resolved against.
	dir string
}

// Program is one vertex/fragment pair.
type Program struct {
	Name     string `yaml:"name" toml:"name"`
	Vertex   string `yaml:"vertex" toml:"vertex"`
	Fragment string `yaml:"fragment" toml:"fragment"`
	// Language overrides the manifest language for this program.
	Language string `yaml:"language,omitempty" toml:"language,omitempty"`
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// Parse decodes and validates a manifest. Source paths resolve against the
// working directory; Load resolves them against the manifest's directory.
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("manifest: parse toml: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("manifest: parse yaml: %w", err)
		}
	}
	m.normalize()
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Marshal encodes the manifest in the given format.
func Marshal(m *Manifest, format Format) ([]byte, error) {
	out := *m
	out.normalize()
	if format == FormatTOML {
		return toml.Marshal(&out)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return nil, fmt.Errorf("manifest: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("manifest: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func (m *Manifest) normalize() {
	if m.Version == 0 {
		m.Version = CurrentVersion
	}
	if m.Language == "" {
		m.Language = shaderprog.LanguageGLSL.String()
	}
}

func (m *Manifest) validate() error {
	if m.Version > CurrentVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, m.Version)
	}
	if _, err := shaderprog.ParseLanguage(m.Language); err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	if len(m.Programs) == 0 {
		return ErrNoPrograms
	}
	seen := make(map[string]bool, len(m.Programs))
	for i, p := range m.Programs {
		if p.Name == "" {
			return fmt.Errorf("manifest: program %d has no name", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("manifest: duplicate program %q", p.Name)
		}
		seen[p.Name] = true
		if p.Vertex == "" {
			return fmt.Errorf("manifest: program %q has no vertex shader", p.Name)
		}
		if p.Fragment == "" {
			return fmt.Errorf("manifest: program %q has no fragment shader", p.Name)
		}
		if p.Language != "" {
			if _, err := shaderprog.ParseLanguage(p.Language); err != nil {
				return fmt.Errorf("manifest: program %q: %w", p.Name, err)
			}
		}
	}
	return nil
}

// Dir returns the directory source paths are resolved against.
func (m *Manifest) Dir() string {
	return m.dir
}

// language returns the shading language of p, already validated.
func (m *Manifest) language(p Program) shaderprog.Language {
	name := p.Language
	if name == "" {
		name = m.Language
	}
	lang, _ := shaderprog.ParseLanguage(name)
	return lang
}

func (m *Manifest) path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(m.dir, rel)
}

// Files returns every referenced source path, resolved and without
// duplicates, in manifest order.
func (m *Manifest) Files() []string {
	var files []string
	seen := make(map[string]bool)
	for _, p := range m.Programs {
		for _, rel := range []string{p.Vertex, p.Fragment} {
			path := m.path(rel)
			if !seen[path] {
				seen[path] = true
				files = append(files, path)
			}
		}
	}
	return files
}

// Variants reads every source file and returns one variant per program.
// A file shared by several programs is read once.
func (m *Manifest) Variants() ([]shaderprog.Variant, error) {
	cache := make(map[string]string)
	read := func(rel string) (string, error) {
		path := m.path(rel)
		if text, ok := cache[path]; ok {
			return text, nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("manifest: read source: %w", err)
		}
		cache[path] = string(data)
		return string(data), nil
	}

	variants := make([]shaderprog.Variant, 0, len(m.Programs))
	for _, p := range m.Programs {
		lang := m.language(p)
		vs, err := read(p.Vertex)
		if err != nil {
			return nil, err
		}
		fs, err := read(p.Fragment)
		if err != nil {
			return nil, err
		}
		variants = append(variants, shaderprog.Variant{
			Name: p.Name,
			Vertex: shaderprog.Source{
				Stage: shaderprog.StageVertex, Language: lang, Text: vs, Label: p.Vertex,
			},
			Fragment: shaderprog.Source{
				Stage: shaderprog.StageFragment, Language: lang, Text: fs, Label: p.Fragment,
			},
		})
	}
	return variants, nil
}
