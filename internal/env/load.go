// Package env reads a dotenv file and the WALKER_* variables that stand in for
// command-line flags.
package env

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Prefix is prepended to every variable name Lookup reads.
const Prefix = "WALKER_"

// Load sets the KEY=VALUE pairs in path as environment variables. Variables already set in
// the process win over the file. A missing file is not an error.
func Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("env: %w", err)
	}
	defer f.Close()

	pairs, err := parse(bufio.NewScanner(f))
	if err != nil {
		return fmt.Errorf("env: %s: %w", path, err)
	}
	for _, kv := range pairs {
		if _, set := os.LookupEnv(kv[0]); set {
			continue
		}
		if err := os.Setenv(kv[0], kv[1]); err != nil {
			return fmt.Errorf("env: %s: %w", kv[0], err)
		}
	}
	return nil
}

// parse skips blanks, comments and malformed lines. An optional "export " prefix and
// matching outer quotes are stripped.
func parse(sc *bufio.Scanner) ([][2]string, error) {
	var out [][2]string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		out = append(out, [2]string{key, unquote(strings.TrimSpace(value))})
	}
	return out, sc.Err()
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// Lookup returns WALKER_<name>, or def when it is unset or empty.
func Lookup(name, def string) string {
	if v := os.Getenv(Prefix + name); v != "" {
		return v
	}
	return def
}
