// Package config overlays a TOML file and GPIOBLINK_ environment variables
// onto flag-parsed option structs, and watches the file for changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/pelletier/go-toml/v2"
	"github.com/smazurov/gpioblink/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// EnvPrefix is prepended to every `env` tag when reading environment variables.
const EnvPrefix = "GPIOBLINK_"

// LoadConfig fills opts with precedence CLI flag > env var > config file >
// struct default. opts must point to a struct; a string field named Config
// holds the file path. Fields are mapped by their `toml` (dotted path) and
// `env` tags. Flags that cmd reports as changed are never overwritten. A
// missing file is not an error; a malformed file or an unparsable value is,
// though env vars are still applied in both cases.
func LoadConfig(opts any, cmd *cobra.Command) error {
	v := reflect.ValueOf(opts).Elem()
	t := v.Type()

	changed := changedFlags(cmd)
	settable := func(i int) bool {
		return !changed[fieldNameToFlag(t.Field(i).Name)]
	}

	var errs []error

	if path := configPath(v); path != "" {
		// A malformed file still lets the env overlay run.
		tree, err := readTree(path)
		if err != nil {
			errs = append(errs, err)
		}
		for i := 0; i < v.NumField(); i++ {
			tomlPath := t.Field(i).Tag.Get("toml")
			if tomlPath == "" || !settable(i) {
				continue
			}
			if value := getNestedValue(tree, tomlPath); value != nil {
				if err := setFieldValue(v.Field(i), value); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", tomlPath, err))
				}
			}
		}
	}

	for i := 0; i < v.NumField(); i++ {
		envKey := t.Field(i).Tag.Get("env")
		if envKey == "" || !settable(i) {
			continue
		}
		if envValue := os.Getenv(EnvPrefix + envKey); envValue != "" {
			if err := setFieldValueFromString(v.Field(i), envValue); err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, envKey, err))
			}
		}
	}

	return errors.Join(errs...)
}

func changedFlags(cmd *cobra.Command) map[string]bool {
	changed := make(map[string]bool)
	if cmd == nil {
		return changed
	}
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			changed[f.Name] = true
		}
	})
	return changed
}

func configPath(v reflect.Value) string {
	if f := v.FieldByName("Config"); f.IsValid() && f.Kind() == reflect.String {
		return f.String()
	}
	return ""
}

// readTree parses path into a generic map. A missing file yields nil.
func readTree(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}
	return tree, nil
}

// fieldNameToFlag converts a struct field name to a CLI flag name.
// Example: "PinColorButton" -> "pin-color-button".
func fieldNameToFlag(fieldName string) string {
	var result []rune
	for i, r := range fieldName {
		if i > 0 && unicode.IsUpper(r) {
			result = append(result, '-')
		}
		result = append(result, unicode.ToLower(r))
	}
	return string(result)
}

// getNestedValue looks up a dotted path such as "pins.red".
func getNestedValue(data map[string]any, path string) any {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return current[parts[len(parts)-1]]
}

// setFieldValue assigns a decoded TOML value to field.
func setFieldValue(field reflect.Value, value any) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("want string, got %T", value)
		}
		field.SetString(s)
	case reflect.Bool:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("want bool, got %T", value)
		}
		field.SetBool(b)
	case reflect.Int:
		switch i := value.(type) {
		case int64:
			field.SetInt(i)
		case int:
			field.SetInt(int64(i))
		default:
			return fmt.Errorf("want integer, got %T", value)
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return nil
		}
		arr, ok := value.([]any)
		if !ok {
			return fmt.Errorf("want array, got %T", value)
		}
		slice := make([]string, len(arr))
		for i, item := range arr {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("element %d: want string, got %T", i, item)
			}
			slice[i] = s
		}
		field.Set(reflect.ValueOf(slice))
	}
	return nil
}

// setFieldValueFromString parses an env var value into field. Slices are
// comma-separated.
func setFieldValueFromString(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(i)
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			field.Set(reflect.ValueOf(parts))
		}
	}
	return nil
}

func defaultLoggingConfig() logging.Config {
	return logging.Config{Level: "info", Format: "text", Modules: make(map[string]string)}
}

// ReadLoggingConfig reads the [logging] table of a TOML config file.
// Keys other than level and format are module-specific levels.
func ReadLoggingConfig(configPath string) (logging.Config, error) {
	cfg := defaultLoggingConfig()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}

	var raw struct {
		Logging map[string]string `toml:"logging"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse TOML config: %w", err)
	}

	for key, value := range raw.Logging {
		switch key {
		case "level":
			cfg.Level = value
		case "format":
			cfg.Format = value
		default:
			cfg.Modules[key] = value
		}
	}
	return cfg, nil
}

// LoadLoggingConfig is ReadLoggingConfig with defaults in place of errors.
func LoadLoggingConfig(configPath string) logging.Config {
	if configPath == "" {
		return defaultLoggingConfig()
	}
	cfg, err := ReadLoggingConfig(configPath)
	if err != nil {
		return defaultLoggingConfig()
	}
	return cfg
}
