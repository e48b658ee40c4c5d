package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/riskibarqy/fantasy-admin/internal/platform/logging"
)

type commandKind string

const (
	cmdUp      commandKind = "up"
	cmdDown    commandKind = "down"
	cmdVersion commandKind = "version"
	cmdForce   commandKind = "force"
	cmdGoto    commandKind = "goto"
)

type command struct {
	kind    commandKind
	steps   int
	version int
	target  uint
}

// parseCommand validates arguments before any database connection is made.
func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, errUsage
	}

	rest := args[1:]
	switch kind := commandKind(strings.ToLower(strings.TrimSpace(args[0]))); kind {
	case cmdUp, cmdVersion:
		return command{kind: kind}, nil
	case cmdDown:
		steps, err := parseSteps(rest)
		if err != nil {
			return command{}, err
		}
		return command{kind: kind, steps: steps}, nil
	case cmdForce:
		if len(rest) == 0 {
			return command{}, fmt.Errorf("force requires a version argument")
		}
		version, err := parseVersion(rest[0])
		if err != nil {
			return command{}, err
		}
		return command{kind: kind, version: version}, nil
	case cmdGoto, "migrate":
		if len(rest) == 0 {
			return command{}, fmt.Errorf("goto requires a target version argument")
		}
		target, err := parseTarget(rest[0])
		if err != nil {
			return command{}, err
		}
		return command{kind: cmdGoto, target: target}, nil
	default:
		return command{}, errUsage
	}
}

func (c command) apply(m *migrate.Migrate, out io.Writer, logger *logging.Logger) error {
	switch c.kind {
	case cmdUp:
		if err := ignoreNoChange(m.Up(), logger); err != nil {
			return err
		}
		logger.Info("migrations applied")
	case cmdDown:
		if err := ignoreNoChange(m.Steps(-c.steps), logger); err != nil {
			return err
		}
		logger.Info("migrations rolled back", "steps", c.steps)
	case cmdVersion:
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Fprintln(out, "version: none")
			fmt.Fprintln(out, "dirty: false")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Fprintf(out, "version: %d\n", version)
		fmt.Fprintf(out, "dirty: %t\n", dirty)
	case cmdForce:
		if err := m.Force(c.version); err != nil {
			return fmt.Errorf("force version %d: %w", c.version, err)
		}
		logger.Info("migration version forced", "version", c.version)
	case cmdGoto:
		if err := ignoreNoChange(m.Migrate(c.target), logger); err != nil {
			return err
		}
		logger.Info("migrated to version", "version", c.target)
	}
	return nil
}

func ignoreNoChange(err error, logger *logging.Logger) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	return err
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	if value > int64(^uint(0)>>1) {
		return 0, fmt.Errorf("version is too large for this platform")
	}
	return int(value), nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

// resolveMigrationsDir returns the first candidate that is an existing
// directory. Blank candidates are skipped.
func resolveMigrationsDir(candidates ...string) (string, error) {
	checked := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		checked = append(checked, candidate)
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}
	return "", fmt.Errorf("migration directory not found (checked %s)", strings.Join(checked, ", "))
}

func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func envBool(key string) bool {
	switch strings.TrimSpace(strings.ToLower(os.Getenv(key))) {
	case "1", "true", "t", "yes", "y", "on":
		return true
	default:
		return false
	}
}
