package config

var defaultScene = SceneConfig{
	InboxCapacity:   1024,
	OutboxCapacity:  256,
	MaxPayloadBytes: 1 << 20,
	MaxEntities:     1 << 16,
}

var defaultLogging = LoggingConfig{
	Level: "info",
}

func Default() *Config {
	return &Config{
		Scene:   defaultScene,
		Logging: defaultLogging,
	}
}

func (c *SceneConfig) PopulateDefaults() {
	if c.InboxCapacity == 0 {
		c.InboxCapacity = defaultScene.InboxCapacity
	}

	if c.OutboxCapacity == 0 {
		c.OutboxCapacity = defaultScene.OutboxCapacity
	}

	if c.MaxPayloadBytes == 0 {
		c.MaxPayloadBytes = defaultScene.MaxPayloadBytes
	}

	if c.MaxEntities == 0 {
		c.MaxEntities = defaultScene.MaxEntities
	}
}

func (c *LoggingConfig) PopulateDefaults() {
	if c.Level == "" {
		c.Level = defaultLogging.Level
	}
}

func (c *Config) PopulateDefaults() {
	c.Scene.PopulateDefaults()
	c.Logging.PopulateDefaults()
}
