package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Scene   SceneConfig   `yaml:"scene"`
	Logging LoggingConfig `yaml:"logging"`
}

type SceneConfig struct {
	// InboxCapacity bounds the sandbox→engine update channel; a full inbox
	// is backpressure for the transport.
	InboxCapacity int `yaml:"inbox_capacity"`
	// OutboxCapacity bounds the engine→sandbox correction channel.
	OutboxCapacity int `yaml:"outbox_capacity"`
	// MaxPayloadBytes caps a single component payload; 0 takes the
	// default, -1 disables the cap.
	MaxPayloadBytes int `yaml:"max_payload_bytes"`
	// MaxEntities caps materialized entities per scene; 0 takes the
	// default, -1 disables the cap.
	MaxEntities int `yaml:"max_entities"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
