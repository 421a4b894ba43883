package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// DispatchConfig configures the dispatch daemon
type DispatchConfig struct {
	API      `json:"api" yaml:"api"`
	LogPath  string `json:"log_path" yaml:"log_path"`
	Dispatch `json:"dispatch" yaml:"dispatch"`
	Views    `json:"views" yaml:"views"`
	Cache    `json:"cache" yaml:"cache"`
	Debug    `json:"debug" yaml:"debug"`
}

// API declares configuration for the daemon's HTTP server
type API struct {
	Host    string   `json:"host" yaml:"host"`
	Port    string   `json:"port" yaml:"port"`
	Timeout Duration `json:"timeout" yaml:"timeout"`
	TLS     `json:"ssl" yaml:"ssl"`
}

// TLS declares HTTPS configuration for the daemon's HTTP server
type TLS struct {
	CertPath string `json:"cert" yaml:"cert"`
	KeyPath  string `json:"key" yaml:"key"`
}

// Target names an action by app, controller and action
type Target struct {
	App        string `json:"app" yaml:"app"`
	Controller string `json:"controller" yaml:"controller"`
	Action     string `json:"action" yaml:"action"`
}

// Dispatch declares where dynamically resolved paths are sent. Apps maps
// parsed app names to their own targets; all other apps use Default.
type Dispatch struct {
	Default Target            `json:"default" yaml:"default"`
	Apps    map[string]Target `json:"apps,omitempty" yaml:"apps,omitempty"`
	// TemplateRoot prefixes view name hints. It must start with "~/", which
	// refers to the views directory.
	TemplateRoot string `json:"template_root" yaml:"template_root"`
}

// Views declares where dynamic view templates are read from
type Views struct {
	Dir    string `json:"dir" yaml:"dir"`
	Reload bool   `json:"reload" yaml:"reload"`
}

// Cache declares caching of parsed request paths
type Cache struct {
	Expiry        Duration `json:"expiry" yaml:"expiry"`
	CleanInterval Duration `json:"clean_interval" yaml:"clean_interval"`
	Size          int      `json:"size" yaml:"size"`
}

// Debug declares access to the debug endpoints. If Key is empty, debug
// endpoints are unauthenticated.
type Debug struct {
	Key string `json:"key" yaml:"key"`
}

// New creates a new, default configuration
func New() DispatchConfig {
	var cfg DispatchConfig
	cfg.SetDefaults(false)
	return cfg
}

// LoadConfig loads a DispatchConfig from given filepath. Files with a .yaml
// or .yml extension are read as YAML, everything else as JSON.
func LoadConfig(configPath string) (DispatchConfig, error) {
	var cfg DispatchConfig

	raw, err := ioutil.ReadFile(configPath)
	if err != nil {
		return cfg, fmt.Errorf("could not open config: %s", err.Error())
	}

	if isYAML(configPath) {
		err = yaml.Unmarshal(raw, &cfg)
	} else {
		err = json.Unmarshal(raw, &cfg)
	}
	if err != nil {
		return DispatchConfig{}, fmt.Errorf("could not read config: %s", err.Error())
	}

	cfg.SetDefaults(false)
	if err := cfg.Validate(); err != nil {
		return DispatchConfig{}, err
	}

	return cfg, nil
}

// Validate checks for settings that cannot be served
func (c *DispatchConfig) Validate() error {
	if !strings.HasPrefix(c.Dispatch.TemplateRoot, "~/") {
		return fmt.Errorf("invalid template root '%s': views are only served from '~/'",
			c.Dispatch.TemplateRoot)
	}
	return nil
}

// SetDefaults initializes unset values
func (c *DispatchConfig) SetDefaults(dev bool) {
	if c.API.Host == "" {
		c.API.Host = "127.0.0.1"
	}
	if c.API.Port == "" {
		c.API.Port = "8080"
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = Duration(30 * time.Second)
	}
	if c.Dispatch.Default == (Target{}) {
		c.Dispatch.Default = Target{App: "demo01", Controller: "test", Action: "dynamic"}
	}
	if c.Dispatch.TemplateRoot == "" {
		c.Dispatch.TemplateRoot = "~/apps"
	}
	if c.Views.Dir == "" {
		c.Views.Dir = "./content"
	}
	if dev {
		c.Views.Reload = true
	}
	if c.Cache.Expiry == 0 {
		c.Cache.Expiry = Duration(30 * time.Minute)
	}
	if c.Cache.CleanInterval == 0 {
		c.Cache.CleanInterval = Duration(30 * time.Minute)
	}
	if c.Cache.Size == 0 {
		c.Cache.Size = 10000
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
