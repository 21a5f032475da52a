package commands

import (
	"errors"
	"io/fs"

	"github.com/agiangrant/conui"
)

// loadConfig reads path, or ./conui.toml when path is empty. A missing
// default file yields the default config; a missing explicit file is an
// error.
func loadConfig(path string) (conui.Config, error) {
	explicit := path != ""
	if !explicit {
		path = conui.DefaultConfigFile
	}
	config, err := conui.LoadConfig(path)
	if err != nil && !explicit && errors.Is(err, fs.ErrNotExist) {
		return conui.DefaultConfig(), nil
	}
	return config, err
}
