package environment

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads each .env file and sets the variables env does not already
// have, so real environment values win over file defaults. Missing files are
// ignored.
func LoadDotEnv(env Environment, paths ...string) error {
	for _, path := range paths {
		vars, err := godotenv.Read(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		keys := make([]string, 0, len(vars))
		for key := range vars {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if _, ok := env.Lookup(key); ok {
				continue
			}
			if err := env.Set(key, vars[key]); err != nil {
				return fmt.Errorf("set %s from %s: %w", key, path, err)
			}
		}
	}
	return nil
}
