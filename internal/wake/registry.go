// Package wake sends one-shot HEAD probes to backend services when a visitor
// first scrolls a page, so that idle services start warming up before the
// visitor reaches anything that needs them.
package wake

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Registry errors.
var (
	ErrInvalidServiceURL  = errors.New("service URL must be an absolute http(s) URL")
	ErrUnsupportedFormat  = errors.New("unsupported registry format")
	ErrMissingProjectName = errors.New("project name is required")
)

//go:embed registry.yaml
var defaultRegistry []byte

// Project groups the service URLs belonging to one client project.
type Project struct {
	Name     string   `yaml:"name" json:"name"`
	Services []string `yaml:"services" json:"services"`
}

// Registry is the ordered, read-only list of projects to wake.
type Registry struct {
	projects []Project
	urls     []string
}

type registryFile struct {
	Projects []Project `yaml:"projects" json:"projects"`
}

// NewRegistry validates the projects and freezes them in the given order.
func NewRegistry(projects ...Project) (*Registry, error) {
	r := &Registry{projects: make([]Project, 0, len(projects))}

	for i, p := range projects {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("project %d: %w", i, ErrMissingProjectName)
		}
		services := make([]string, 0, len(p.Services))
		for _, raw := range p.Services {
			if err := validateServiceURL(raw); err != nil {
				return nil, fmt.Errorf("project %q: %q: %w", p.Name, raw, err)
			}
			services = append(services, raw)
		}
		r.projects = append(r.projects, Project{Name: p.Name, Services: services})
		r.urls = append(r.urls, services...)
	}

	return r, nil
}

func validateServiceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidServiceURL
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrInvalidServiceURL
	}
	return nil
}

// Parse decodes a registry document. A registry without URLs is valid;
// its wake cycles send nothing. format is "yaml" or "json"; JSON is
// decoded by the YAML parser, which accepts it as a subset.
func Parse(data []byte, format string) (*Registry, error) {
	switch format {
	case "yaml", "yml", "json":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}

	return NewRegistry(file.Projects...)
}

// Load reads a registry file, choosing the format from its extension.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	r, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Default returns the registry embedded in the binary.
func Default() (*Registry, error) {
	return Parse(defaultRegistry, "yaml")
}

// LoadOrDefault loads path, or the embedded registry when path is empty.
func LoadOrDefault(path string) (*Registry, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// URLs returns every service URL, project by project in registry order and
// then in each project's own order. A URL listed by two projects appears twice.
func (r *Registry) URLs() []string {
	out := make([]string, len(r.urls))
	copy(out, r.urls)
	return out
}

// Projects returns a copy of the projects.
func (r *Registry) Projects() []Project {
	out := make([]Project, len(r.projects))
	for i, p := range r.projects {
		out[i] = Project{Name: p.Name, Services: append([]string(nil), p.Services...)}
	}
	return out
}

// Len returns the number of service URLs, duplicates included.
func (r *Registry) Len() int {
	return len(r.urls)
}
