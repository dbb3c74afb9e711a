package cmd

import (
	"github.com/paulschiretz/pgl-bincut/pkg/config"
	"github.com/paulschiretz/pgl-bincut/pkg/plog"
)

// loadRunConfig builds the configuration for a run from the flag map and
// applies its logging settings.
func loadRunConfig(flagMap map[string]interface{}) (config.Config, error) {
	runConfig, err := config.FromFlags(flagMap)
	if err != nil {
		return config.Config{}, err
	}

	plog.SetLevel(plog.LevelFromString(runConfig.LogLevel))
	plog.SetQuiet(runConfig.Runtime.Quiet)

	runConfig.LogSummary()
	return runConfig, nil
}

func overwriteFlag(flagMap map[string]interface{}) bool {
	overwrite, _ := flagMap["overwrite"].(bool)
	return overwrite
}
