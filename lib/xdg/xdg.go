package xdg

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "nm-livesearch"

// Return a path relative to the user home config dir
func ConfigPath(paths ...string) string {
	res := filepath.Join(paths...)
	if !filepath.IsAbs(res) {
		var config string
		if runtime.GOOS == "darwin" {
			config = os.Getenv("XDG_CONFIG_HOME")
			if config == "" {
				config = ExpandHome("~/Library/Preferences")
			}
		} else {
			var err error
			config, err = os.UserConfigDir()
			if err != nil {
				config = ExpandHome("~/.config")
			}
		}
		res = filepath.Join(config, res)
	}
	return res
}

// ConfigFile returns the default location of the configuration file.
func ConfigFile() string {
	return ConfigPath(appName, appName+".conf")
}
