// Package config loads structured configuration from YAML files with
// environment variable overrides. Struct fields opt in through `yaml` and
// `env` tags.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Loader resolves configuration from a file plus prefixed environment
// variables, file first, environment second.
type Loader struct {
	envPrefix string
}

// NewLoader creates a configuration loader with the given env prefix
func NewLoader(envPrefix string) *Loader {
	return &Loader{envPrefix: envPrefix}
}

// Load populates config from the YAML file at configPath (skipped when
// empty) and then overlays environment variables.
func (l *Loader) Load(configPath string, config interface{}) error {
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("reading config file %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("parsing config file %s: %w", configPath, err)
		}
	}
	if err := l.overlayEnv(reflect.ValueOf(config).Elem(), ""); err != nil {
		return fmt.Errorf("applying environment overrides: %w", err)
	}
	return nil
}

// overlayEnv walks the struct and applies any set environment variables
func (l *Loader) overlayEnv(value reflect.Value, prefix string) error {
	if !value.IsValid() || !value.CanSet() {
		return nil
	}

	switch value.Kind() {
	case reflect.Ptr:
		if value.IsNil() {
			value.Set(reflect.New(value.Type().Elem()))
		}
		return l.overlayEnv(value.Elem(), prefix)

	case reflect.Struct:
		structType := value.Type()
		for i := 0; i < value.NumField(); i++ {
			field := value.Field(i)
			fieldType := structType.Field(i)
			if !field.CanSet() {
				continue
			}

			name := fieldType.Tag.Get("env")
			if name == "" {
				name = fieldType.Tag.Get("yaml")
				if idx := strings.IndexByte(name, ','); idx >= 0 {
					name = name[:idx]
				}
				if name == "" || name == "-" {
					name = fieldType.Name
				}
			}

			if field.Kind() == reflect.Struct ||
				(field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct) {
				nested := name
				if prefix != "" {
					nested = prefix + "_" + name
				}
				if err := l.overlayEnv(field, nested); err != nil {
					return err
				}
				continue
			}

			envName := l.envName(prefix, name)
			if envValue := os.Getenv(envName); envValue != "" {
				if err := setField(field, envValue); err != nil {
					return fmt.Errorf("field %s from %s: %w", fieldType.Name, envName, err)
				}
			}
		}
	}
	return nil
}

func (l *Loader) envName(prefix, name string) string {
	parts := make([]string, 0, 3)
	if l.envPrefix != "" {
		parts = append(parts, l.envPrefix)
	}
	if prefix != "" {
		parts = append(parts, prefix)
	}
	parts = append(parts, name)
	return strings.ToUpper(strings.Join(parts, "_"))
}

// setField assigns an environment string to a typed struct field
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool %q", value)
		}
		field.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration %q", value)
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid int %q", value)
		}
		field.SetInt(n)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float %q", value)
		}
		field.SetFloat(f)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", field.Type())
		}
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		field.Set(reflect.ValueOf(parts))

	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}
