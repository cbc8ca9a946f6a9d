// Package config loads the node's YAML configuration file: its id,
// willingness, and any overrides of the protocol engine's timing
// constants. Modeled on this mesh daemon's own config package: a file
// that's not an error when absent (defaults apply) and a thin YAML
// struct around the tunables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kprusa/olsrmesh/olsr"
)

// File is the on-disk YAML shape. Any interval or cap field left zero
// falls back to olsr.DefaultConfig()'s value; a zero Willingness means
// DEFAULT, and NodeID has no default.
type File struct {
	NodeID      uint32 `yaml:"node_id"`
	Willingness int    `yaml:"willingness"`

	HelloIntervalSeconds int `yaml:"hello_interval_seconds,omitempty"`
	TCIntervalSeconds    int `yaml:"tc_interval_seconds,omitempty"`
	HelloTimeoutSeconds  int `yaml:"hello_timeout_seconds,omitempty"`
	TCValiditySeconds    int `yaml:"tc_validity_seconds,omitempty"`

	MaxNeighbors     int `yaml:"max_neighbors,omitempty"`
	MaxTwoHop        int `yaml:"max_two_hop,omitempty"`
	MaxTopologyLinks int `yaml:"max_topology_links,omitempty"`
	MaxControlQueue  int `yaml:"max_control_queue,omitempty"`
}

// Load reads the config file at path. If the file does not exist, a zero
// File is returned (not an error) so the caller can apply defaults.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &f, nil
}

// EngineConfig merges the file's overrides onto olsr.DefaultConfig().
func (f *File) EngineConfig() olsr.Config {
	cfg := olsr.DefaultConfig()
	if f.HelloIntervalSeconds > 0 {
		cfg.HelloInterval = time.Duration(f.HelloIntervalSeconds) * time.Second
	}
	if f.TCIntervalSeconds > 0 {
		cfg.TCInterval = time.Duration(f.TCIntervalSeconds) * time.Second
	}
	if f.HelloTimeoutSeconds > 0 {
		cfg.HelloTimeout = time.Duration(f.HelloTimeoutSeconds) * time.Second
	}
	if f.TCValiditySeconds > 0 {
		cfg.TCValidity = time.Duration(f.TCValiditySeconds) * time.Second
	}
	if f.MaxNeighbors > 0 {
		cfg.MaxNeighbors = f.MaxNeighbors
	}
	if f.MaxTwoHop > 0 {
		cfg.MaxTwoHop = f.MaxTwoHop
	}
	if f.MaxTopologyLinks > 0 {
		cfg.MaxTopologyLinks = f.MaxTopologyLinks
	}
	if f.MaxControlQueue > 0 {
		cfg.MaxControlQueue = f.MaxControlQueue
	}
	return cfg
}

// NodeWillingness returns the configured willingness, defaulting to DEFAULT
// when unset.
func (f *File) NodeWillingness() olsr.Willingness {
	if f.Willingness == 0 {
		return olsr.WillingnessDefault
	}
	return olsr.Willingness(f.Willingness)
}
