package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultManifestFile = "skills-manifest.yaml"

// DefaultBranch is used when a skill's source omits the branch field.
const DefaultBranch = "main"

// Manifest represents the full skills-manifest.yaml file: an ordered list
// of skills to mirror from remote repositories.
type Manifest struct {
	Skills []Skill `yaml:"skills"`
}

// Skill describes one unit of content tracked by the manifest.
type Skill struct {
	Name        string `yaml:"name"`
	Source      Source `yaml:"source"`
	Destination string `yaml:"destination"`
}

// Source identifies where a skill's content lives on GitHub.
// A trailing slash on Path marks the skill as a directory tree.
type Source struct {
	Repo   string `yaml:"repo"`
	Branch string `yaml:"branch,omitempty"`
	Path   string `yaml:"path"`
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{}
}

// Load reads and parses a skills-manifest.yaml file from the given path.
// A missing file is an error (wrapping fs.ErrNotExist): callers that want
// to start from an empty manifest must handle it explicitly.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("manifest %s not found: %w", path, err)
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	m := New()
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	for i := range m.Skills {
		if m.Skills[i].Source.Branch == "" {
			m.Skills[i].Source.Branch = DefaultBranch
		}
	}

	if err := m.validate(); err != nil {
		return nil, err
	}

	return m, nil
}

// validate rejects skills with missing required fields.
func (m *Manifest) validate() error {
	for i, s := range m.Skills {
		switch {
		case s.Name == "":
			return fmt.Errorf("skill %d: missing name", i)
		case s.Source.Repo == "":
			return fmt.Errorf("skill %q: missing source.repo", s.Name)
		case s.Source.Path == "":
			return fmt.Errorf("skill %q: missing source.path", s.Name)
		case s.Destination == "":
			return fmt.Errorf("skill %q: missing destination", s.Name)
		}
	}
	return nil
}

// Save writes the manifest back to the given path.
func (m *Manifest) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating manifest file: %w", err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(m); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}

	return encoder.Close()
}

// Get returns the skill with the given name, if present.
func (m *Manifest) Get(name string) (Skill, bool) {
	for _, s := range m.Skills {
		if s.Name == name {
			return s, true
		}
	}
	return Skill{}, false
}

// Add appends a skill to the manifest. Names must be unique.
func (m *Manifest) Add(s Skill) error {
	if _, exists := m.Get(s.Name); exists {
		return fmt.Errorf("skill %q already in manifest", s.Name)
	}
	if s.Source.Branch == "" {
		s.Source.Branch = DefaultBranch
	}
	m.Skills = append(m.Skills, s)
	return nil
}

// Remove deletes the named skill from the manifest.
// Returns true if the skill existed, false otherwise.
func (m *Manifest) Remove(name string) bool {
	for i, s := range m.Skills {
		if s.Name == name {
			m.Skills = append(m.Skills[:i], m.Skills[i+1:]...)
			return true
		}
	}
	return false
}

// IsDirectory reports whether the source path denotes a directory tree
// (trailing path separator) rather than a single file.
func (s Source) IsDirectory() bool {
	return len(s.Path) > 0 && s.Path[len(s.Path)-1] == '/'
}
