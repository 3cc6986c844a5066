package engine

import (
	"os"
	"path/filepath"
	"testing"

	"glycostats/engine/defs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const testConfig = `
dexcom:
  account: someone
  password: secret
mongo:
  uri: mongodb://localhost:27017
glucose:
  unit: mmol/L
  diabeticType: DT1Pregnancy
timezone: Europe/Paris
`

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
}

func (suite *ConfigTestSuite) write(content string) string {
	path := filepath.Join(suite.dir, "config.yaml")
	assert.NoError(suite.T(), os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (suite *ConfigTestSuite) TestLoadConfig() {
	cfg, err := LoadConfig(suite.write(testConfig))
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), "someone", cfg.Dexcom.Account)
	assert.Equal(suite.T(), defs.MmolL, cfg.Glucose.Unit)
	assert.Equal(suite.T(), defs.DT1Pregnancy, cfg.Glucose.DiabeticType)
	assert.Equal(suite.T(), defs.DefaultDB, cfg.Mongo.Database)
	assert.Equal(suite.T(), defs.DefaultAddress, cfg.HTTP.Address)

	b, err := GlucoseBounds(cfg.Glucose)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 7.8, b.TargetUpperBound)
}

func (suite *ConfigTestSuite) TestLoadConfigEnvOverride() {
	suite.T().Setenv("GLYCOSTATS_MONGO_DATABASE", "other")
	suite.T().Setenv("GLYCOSTATS_GLUCOSE_UNIT", "mg/dL")

	cfg, err := LoadConfig(suite.write(testConfig))
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "other", cfg.Mongo.Database)
	assert.Equal(suite.T(), defs.MgdL, cfg.Glucose.Unit)
}

func (suite *ConfigTestSuite) TestLoadConfigDefaults() {
	cfg, err := LoadConfig("")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), defs.MgdL, cfg.Glucose.Unit)
	assert.Equal(suite.T(), defs.DT1DT2, cfg.Glucose.DiabeticType)
}

func (suite *ConfigTestSuite) TestLoadConfigInvalid() {
	_, err := LoadConfig(suite.write("glucose:\n  unit: mg\n"))
	assert.Error(suite.T(), err)

	_, err = LoadConfig(suite.write(`
glucose:
  bounds:
    veryLowThreshold: 70
    targetLowerBound: 54
    targetUpperBound: 180
    veryHighThreshold: 250
`))
	assert.Error(suite.T(), err)

	_, err = LoadConfig(filepath.Join(suite.dir, "missing.yaml"))
	assert.Error(suite.T(), err)
}

func (suite *ConfigTestSuite) TestGlucoseBoundsOverride() {
	override := &defs.BgBounds{
		VeryLowThreshold:  50,
		TargetLowerBound:  80,
		TargetUpperBound:  160,
		VeryHighThreshold: 240,
	}
	b, err := GlucoseBounds(defs.GlucoseConfig{Unit: defs.MgdL, DiabeticType: defs.DT1DT2, Bounds: override})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), *override, b)
}
