package config

import (
	"strings"

	"github.com/decentraland/bevy-explorer-sub002/pkg/structs"
)

var knownLevels = structs.NewSet("debug", "info", "warn", "error")

func (c *Config) Validate() error {
	if err := c.Scene.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return nil
}

func (c *SceneConfig) Validate() error {
	if c.InboxCapacity < 0 || c.OutboxCapacity < 0 {
		return ErrNegativeCapacity
	}

	if c.MaxPayloadBytes < -1 || c.MaxEntities < -1 {
		return ErrInvalidLimit
	}

	return nil
}

func (c *LoggingConfig) Validate() error {
	if c.Level == "" {
		return nil
	}

	if !knownLevels.Contains(strings.ToLower(c.Level)) {
		return ErrUnknownLogLevel
	}
	return nil
}
