package shell

import (
	"os"
	"sort"

	"github.com/Cyclone1070/codeagent/internal/config"
)

// loadEnvFile reads and parses one dotenv file.
func loadEnvFile(files envFileReader, path string) (map[string]string, error) {
	content, err := files.ReadFile(path)
	if err != nil {
		return nil, &EnvFileReadError{Path: path, Cause: err}
	}
	return config.ParseEnv(content, path)
}

// buildEnv layers the process environment, env files and explicit overrides.
// Later entries win, since exec uses the last value for a duplicated key.
func buildEnv(fileVars []map[string]string, overrides map[string]string) []string {
	env := os.Environ()
	for _, vars := range fileVars {
		env = appendSorted(env, vars)
	}
	return appendSorted(env, overrides)
}

func appendSorted(env []string, vars map[string]string) []string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+vars[k])
	}
	return env
}
