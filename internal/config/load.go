package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/taigrr/foldermap/internal/types"
)

const (
	// DefaultAppName names the config directory and environment prefix.
	DefaultAppName = "foldermap"
	// DefaultConfigName is the config file searched for when none is given.
	DefaultConfigName = ".foldermap"
)

// envKeys are the option keys that can be set from FOLDERMAP_* variables.
// List values are comma separated.
var envKeys = []string{
	"excludeNames",
	"includeNames",
	"excludeExtensions",
	"includeExtensions",
	"skipEmpty",
	"ignoreFile",
}

// Load reads mapping options from a YAML file and the environment. With an
// empty path it searches the working directory and the user config
// directory; finding nothing there is not an error. It returns the options
// and the config file actually used, if any.
func Load(path string) (types.Options, string, error) {
	// Folder names may contain dots, so keep viper from treating them as
	// nesting.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, DefaultAppName))
		}
	}

	v.SetEnvPrefix(DefaultAppName)
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return types.Options{}, "", fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Options{}, "", fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var opts types.Options
	if err := v.Unmarshal(&opts); err != nil {
		return types.Options{}, "", fmt.Errorf("unable to decode options: %w", err)
	}

	return opts, v.ConfigFileUsed(), nil
}
