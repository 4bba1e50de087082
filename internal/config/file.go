package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	App struct {
		DemoMode          bool     `json:"demo_mode" yaml:"demo_mode"`
		InactivityTimeout Duration `json:"inactivity_timeout" yaml:"inactivity_timeout"`
		LogLevel          string   `json:"log_level" yaml:"log_level"`
		LogDir            string   `json:"log_dir" yaml:"log_dir"`
	} `json:"app" yaml:"app"`

	Storage struct {
		Vault struct {
			Path string `json:"path" yaml:"path"`
		} `json:"vault" yaml:"vault"`
		BackupDir string `json:"backup_dir" yaml:"backup_dir"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		GRPCAddress    string   `json:"grpc_address" yaml:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"server" yaml:"server"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		DatabaseURI    string   `json:"database_uri" yaml:"database_uri"`
		Token          string   `json:"token" yaml:"token"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter" yaml:"adapter"`

	Workers struct {
		LockCheckInterval Duration `json:"lock_check_interval" yaml:"lock_check_interval"`
	} `json:"workers" yaml:"workers"`
}

// parseFile reads a JSON or YAML config file, picked by extension.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	case ".json", "":
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFile, path)
	}

	return &StructuredConfig{
		App: App{
			DemoMode:          fc.App.DemoMode,
			InactivityTimeout: time.Duration(fc.App.InactivityTimeout),
			LogLevel:          fc.App.LogLevel,
			LogDir:            fc.App.LogDir,
		},
		Storage: Storage{
			Vault:     Vault{Path: fc.Storage.Vault.Path},
			BackupDir: fc.Storage.BackupDir,
		},
		Server: Server{
			HTTPAddress:    fc.Server.HTTPAddress,
			GRPCAddress:    fc.Server.GRPCAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    fc.Adapter.HTTPAddress,
			DatabaseURI:    fc.Adapter.DatabaseURI,
			Token:          fc.Adapter.Token,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
		},
		Workers: Workers{LockCheckInterval: time.Duration(fc.Workers.LockCheckInterval)},
	}, nil
}

// Duration is a time.Duration that decodes from strings like "1h" or "30s"
// as well as from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if n, err := time.ParseDuration(s); err == nil {
		*d = Duration(n)
		return nil
	}
	var ns int64
	if err := node.Decode(&ns); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(ns)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
