package main

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestBindEnvMapsNestedKeys(t *testing.T) {
	t.Setenv("CUPPING_DATABASE_PATH", "/tmp/cupping-test.db")
	t.Setenv("CUPPING_LOGGING_LEVEL", "debug")

	viper.Reset()
	defer viper.Reset()
	bindEnv()

	assert.Equal(t, "/tmp/cupping-test.db", viper.GetString("database.path"))
	assert.Equal(t, "debug", viper.GetString("logging.level"))
}
