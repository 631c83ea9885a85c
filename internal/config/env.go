package config

import (
	"errors"
	"io/fs"

	"github.com/subosito/gotenv"
)

// LoadDotEnv loads a .env file from the working directory into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	if err := gotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
