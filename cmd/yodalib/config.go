package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// cliConfig carries the lifter settings shared by commands that translate
// artifact dumps: the backend image base and the native-to-canonical type
// name table. Values load from a YAML file and can be overridden through
// the environment (YODALIB_IMAGE_BASE), with a .env file honored first.
type cliConfig struct {
	Lifter struct {
		ImageBase string            `yaml:"image_base"`
		TypeMap   map[string]string `yaml:"type_map"`
	} `yaml:"lifter"`
}

func loadConfig(path string) (*cliConfig, error) {
	_ = godotenv.Load()

	var cfg cliConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}

	if base := os.Getenv("YODALIB_IMAGE_BASE"); base != "" {
		cfg.Lifter.ImageBase = base
	}

	return &cfg, nil
}

// imageBase parses the configured base address, accepting decimal or 0x
// hex. An unset base means the dump is already canonical.
func (c *cliConfig) imageBase() (uint64, error) {
	if c.Lifter.ImageBase == "" {
		return 0, nil
	}
	return strconv.ParseUint(c.Lifter.ImageBase, 0, 64)
}
