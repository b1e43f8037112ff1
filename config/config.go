package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"artifactdev/smctemp/smc"
)

// FileName is looked up next to the executable when no path is given.
const FileName = "smctemp.yaml"

// Config holds all configuration settings for smctemp. Every field is
// optional; command line flags take precedence.
type Config struct {
	Scale      string `yaml:"scale"`      // "C" or "F"
	ShowUnits  *bool  `yaml:"show_units"` // nil means true
	CPUKey     string `yaml:"cpu_key"`
	GPUKey     string `yaml:"gpu_key"`
	AmbientKey string `yaml:"ambient_key"`
	Hostname   string `yaml:"hostname"`

	IP       string `yaml:"mqtt_ip"`
	Port     string `yaml:"mqtt_port"`
	User     string `yaml:"mqtt_user"`
	Password string `yaml:"mqtt_password"`
	SSL      bool   `yaml:"mqtt_ssl"`
	Topic    string `yaml:"mqtt_topic"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.setDefaults()
	return c
}

// Load reads the configuration from path. An empty path means FileName in
// the executable's directory, and in that case a missing file is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		ex, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		path = filepath.Join(filepath.Dir(ex), FileName)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	log.Printf("Config: %v", path)

	c, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes, defaults and validates YAML content.
func Parse(content []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.UnmarshalStrict(content, c); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	c.setDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) setDefaults() {
	c.Scale = strings.ToUpper(c.Scale)
	if c.Scale == "" {
		c.Scale = "C"
	}
	if c.CPUKey == "" {
		c.CPUKey = "TC0P"
	}
	if c.GPUKey == "" {
		c.GPUKey = "TG0P"
	}
	if c.AmbientKey == "" {
		c.AmbientKey = "TA0P"
	}
	if c.Topic == "" {
		c.Topic = "smctemp"
	}
}

// Units reports whether temperature units should be printed.
func (c *Config) Units() bool {
	return c.ShowUnits == nil || *c.ShowUnits
}

// MQTTEnabled reports whether a broker is configured.
func (c *Config) MQTTEnabled() bool {
	return c.IP != ""
}

// Validate checks if all configuration fields are usable
func (c *Config) Validate() error {
	if c.Scale != "C" && c.Scale != "F" {
		return fmt.Errorf("scale must be C or F, got %q", c.Scale)
	}
	for name, key := range map[string]string{
		"cpu_key":     c.CPUKey,
		"gpu_key":     c.GPUKey,
		"ambient_key": c.AmbientKey,
	} {
		if _, err := smc.ParseKey(key); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if c.IP != "" && c.Port == "" {
		return fmt.Errorf("mqtt_port is required when mqtt_ip is set")
	}
	if c.IP == "" && c.Port != "" {
		return fmt.Errorf("mqtt_ip is required when mqtt_port is set")
	}
	return nil
}
