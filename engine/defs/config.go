package defs

import (
	"time"

	"go.uber.org/zap"
)

const DefaultDB = "glycostats"

const (
	TimeoutInterval = 5 * time.Second
	DefaultAddress  = ":4242"
)

type Config struct {
	Dexcom   DexcomConfig  `yaml:"dexcom" envconfig:"DEXCOM"`
	Mongo    MongoConfig   `yaml:"mongo" envconfig:"MONGO"`
	Glucose  GlucoseConfig `yaml:"glucose" envconfig:"GLUCOSE"`
	HTTP     HTTPConfig    `yaml:"http" envconfig:"HTTP"`
	Timezone string        `yaml:"timezone" envconfig:"TIMEZONE"`
	Logger   *zap.Logger   `yaml:"-" ignored:"true"`
}

type DexcomConfig struct {
	Account  string `yaml:"account" envconfig:"ACCOUNT"`
	Password string `yaml:"password" envconfig:"PASSWORD"`
}

type MongoConfig struct {
	URI      string `yaml:"uri" envconfig:"URI"`
	Username string `yaml:"username" envconfig:"USERNAME"`
	Password string `yaml:"password" envconfig:"PASSWORD"`
	Database string `yaml:"database" envconfig:"DATABASE"`
}

// GlucoseConfig selects the default bounds. Bounds, when set, replace them.
type GlucoseConfig struct {
	Unit         BgUnit       `yaml:"unit" envconfig:"UNIT"`
	DiabeticType DiabeticType `yaml:"diabeticType" envconfig:"DIABETIC_TYPE"`
	Bounds       *BgBounds    `yaml:"bounds" ignored:"true"`
}

type HTTPConfig struct {
	Address string `yaml:"address" envconfig:"ADDRESS"`
}
