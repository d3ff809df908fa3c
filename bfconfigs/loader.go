package bfconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/bfem/cmds"
	"github.com/reusee/bfem/configs"
	"github.com/reusee/bfem/logs"
)

//go:embed schema.cue
var schema string

var configPaths = cmds.Collect[string]("-config", "load an extra config file before the discovered ones")

// Dirs lists the directories searched for bfem.cue and .bfem.cue, in priority order.
type Dirs []string

func (Module) Dirs() Dirs {
	var dirs Dirs
	// working directory
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	// user config dir
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, configDir)
	}
	// system wide dir
	dirs = append(dirs, "/etc")
	return dirs
}

func (Module) ConfigsLoader(
	logger logs.Logger,
	dirs Dirs,
) configs.Loader {

	paths := append([]string(nil), *configPaths...)
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	filenames := []string{
		"bfem.cue",
		".bfem.cue",
	}

	for _, dir := range dirs {
		for _, filename := range filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	return configs.NewLoader(paths, schema)
}
