// Package ext loads the yolang.yaml project configuration.
//
// The file declares the host-provided extern functions a project links
// against. The loader validates the declared host-version constraint,
// parses the signature type expressions, and hands the resulting
// extern declarations to the front-end for registration, where their
// signatures are sealed against the call sites.
package ext

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/yolang-dev/yolang/internal/ast"
	"github.com/yolang-dev/yolang/internal/config"
	"github.com/yolang-dev/yolang/internal/typesystem"
)

// Config represents the top-level yolang.yaml configuration.
type Config struct {
	// Requires is an optional semver constraint on the host runtime
	// version (e.g. ">= 0.3", "~0.3.1").
	Requires string `yaml:"requires,omitempty"`

	// Externs lists the host-provided functions available to the
	// program.
	Externs []Extern `yaml:"externs"`
}

// Extern declares a single host-provided function.
type Extern struct {
	// Name is the function name as referenced from source.
	Name string `yaml:"name"`

	// Params are the parameter type expressions (e.g. "u32", "Ptr<u8>",
	// "Fn(u32) -> bool").
	Params []string `yaml:"params,omitempty"`

	// Returns is the return type expression. Defaults to unit.
	Returns string `yaml:"returns,omitempty"`

	// Link optionally names the host library providing the symbol.
	Link string `yaml:"link,omitempty"`
}

// Load reads and parses a yolang.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", config.ProjectConfigName, err)
	}
	return Parse(data)
}

// Parse decodes a yolang.yaml document and validates it.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", config.ProjectConfigName, err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.Requires != "" {
		if _, err := semver.NewConstraint(c.Requires); err != nil {
			return fmt.Errorf("invalid requires constraint %q: %w", c.Requires, err)
		}
	}
	seen := make(map[string]bool, len(c.Externs))
	for _, e := range c.Externs {
		if e.Name == "" {
			return fmt.Errorf("extern declaration without a name")
		}
		if seen[e.Name] {
			return fmt.Errorf("duplicate extern %q", e.Name)
		}
		seen[e.Name] = true
	}
	return nil
}

// CheckHostVersion verifies the config's requires constraint against
// the given host version.
func (c *Config) CheckHostVersion(version string) error {
	if c.Requires == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("invalid requires constraint %q: %w", c.Requires, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid host version %q: %w", version, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("host version %s does not satisfy %q", version, c.Requires)
	}
	return nil
}

// Declarations converts the extern entries into AST declarations ready
// for registration. Name-reference placeholders are left unset; the
// analyzer primes them together with the rest of the program.
func (c *Config) Declarations() ([]*ast.ExternFuncDecl, error) {
	decls := make([]*ast.ExternFuncDecl, 0, len(c.Externs))
	for _, e := range c.Externs {
		params := make([]typesystem.Type, len(e.Params))
		for i, p := range e.Params {
			t, err := ParseType(p)
			if err != nil {
				return nil, fmt.Errorf("extern %q: parameter %d: %w", e.Name, i+1, err)
			}
			params[i] = t
		}
		ret := typesystem.Type(typesystem.Unit)
		if e.Returns != "" {
			t, err := ParseType(e.Returns)
			if err != nil {
				return nil, fmt.Errorf("extern %q: return type: %w", e.Name, err)
			}
			ret = t
		}
		decls = append(decls, &ast.ExternFuncDecl{
			Ref:    &ast.NameRef{Name: e.Name},
			Params: params,
			Return: ret,
		})
	}
	return decls, nil
}
