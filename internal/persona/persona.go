// Package persona holds the named voices used to diversify generated comments.
package persona

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Persona is a named voice with a short descriptive trait.
type Persona struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Registry is an immutable, ordered set of personas.
type Registry struct {
	personas []Persona
	byName   map[string]int
}

var defaultPersonas = []Persona{
	{Name: "Tech Enthusiast", Description: "excited about new gadgets and always asks about the tooling"},
	{Name: "Skeptic", Description: "questions every claim and wants to see evidence"},
	{Name: "Beginner", Description: "new to the topic, asks simple clarifying questions"},
	{Name: "Industry Veteran", Description: "decades of experience, shares war stories and practical caveats"},
	{Name: "Optimist", Description: "sees the bright side and encourages the author"},
	{Name: "Pedant", Description: "notices small inaccuracies and politely corrects them"},
	{Name: "Student", Description: "connects the post to what they are learning in class"},
	{Name: "Busy Parent", Description: "skims quickly and wants the practical takeaway"},
}

// Default returns the built-in persona set.
func Default() *Registry {
	r, err := NewRegistry(defaultPersonas...)
	if err != nil {
		panic(fmt.Sprintf("invalid default personas: %v", err))
	}

	return r
}

// NewRegistry builds a registry, rejecting blank or duplicate names.
func NewRegistry(personas ...Persona) (*Registry, error) {
	r := &Registry{
		personas: make([]Persona, 0, len(personas)),
		byName:   make(map[string]int, len(personas)),
	}

	for _, p := range personas {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, errors.New("persona name cannot be empty")
		}
		if _, dup := r.byName[p.Name]; dup {
			return nil, fmt.Errorf("duplicate persona %q", p.Name)
		}
		r.byName[p.Name] = len(r.personas)
		r.personas = append(r.personas, p)
	}

	return r, nil
}

// LoadFile reads a YAML list of personas.
//
//	- name: Skeptic
//	  description: questions every claim
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read personas file %s: %w", path, err)
	}

	var personas []Persona
	if err := yaml.Unmarshal(data, &personas); err != nil {
		return nil, fmt.Errorf("failed to parse personas file %s: %w", path, err)
	}

	if len(personas) == 0 {
		return nil, fmt.Errorf("personas file %s defines no personas", path)
	}

	return NewRegistry(personas...)
}

// All returns a copy of the personas in registry order.
func (r *Registry) All() []Persona {
	out := make([]Persona, len(r.personas))
	copy(out, r.personas)

	return out
}

// Len returns the number of personas.
func (r *Registry) Len() int {
	return len(r.personas)
}

// Lookup finds a persona by name.
func (r *Registry) Lookup(name string) (Persona, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Persona{}, false
	}

	return r.personas[i], true
}
