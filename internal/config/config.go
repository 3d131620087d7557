// Package config loads the pipeline configuration: which specification
// documents to parse, where generated source goes, and how route groups are
// prefixed.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config is the root of a pipeline.hcl file.
type Config struct {
	OutputDir string       `hcl:"output_dir"`
	Listen    string       `hcl:"listen,optional"`
	Specs     []SpecConfig `hcl:"spec,block"`
}

// SpecConfig describes one specification document.
type SpecConfig struct {
	Name        string `hcl:"name,label"`
	Path        string `hcl:"path"`
	Package     string `hcl:"package,optional"`
	RoutePrefix string `hcl:"route_prefix,optional"`
}

// Load reads and decodes an HCL config file, applying defaults: the package
// name falls back to the spec label and the route prefix to /v1/<label>.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("load config %s: output_dir must not be empty", path)
	}
	if len(cfg.Specs) == 0 {
		return nil, fmt.Errorf("load config %s: at least one spec block is required", path)
	}
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	for i := range cfg.Specs {
		sp := &cfg.Specs[i]
		if sp.Path == "" {
			return nil, fmt.Errorf("load config %s: spec %q has no path", path, sp.Name)
		}
		if sp.Package == "" {
			sp.Package = sp.Name
		}
		if sp.RoutePrefix == "" {
			sp.RoutePrefix = "/v1/" + sp.Name
		}
	}
	return &cfg, nil
}
