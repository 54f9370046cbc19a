// Package config defines the necessary types to configure the application.
// An example config file config.yaml is provided in the repository.
package config

import (
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
)

type Config struct {
	commoncfg.BaseConfig `mapstructure:",squash" yaml:",inline"`

	API        API        `yaml:"api"`
	TokenStore TokenStore `yaml:"tokenStore"`
	Poll       Poll       `yaml:"poll"`
}

type API struct {
	// BaseURL must not carry the /api/v1 prefix; it is appended per call.
	BaseURL string        `yaml:"baseURL" default:"http://localhost:8001"`
	Timeout time.Duration `yaml:"timeout" default:"30s"`

	// RefreshLeeway is how close to its expiry a JWT access token may get
	// before the pipeline refreshes it ahead of the request.
	RefreshLeeway time.Duration `yaml:"refreshLeeway" default:"30s"`
}

type TokenStore struct {
	// Type selects the backend: "file" or "valkey".
	Type string `yaml:"type" default:"file"`
	Path string `yaml:"path" default:"$HOME/.setter-console/tokens.json"`

	ValKey ValKey `yaml:"valkey"`
}

type ValKey struct {
	Host     commoncfg.SourceRef `yaml:"host"`
	User     commoncfg.SourceRef `yaml:"user"`
	Password commoncfg.SourceRef `yaml:"password"`
	Prefix   string              `yaml:"prefix" default:"setter-console"`
}

type Poll struct {
	Interval time.Duration `yaml:"interval" default:"2s"`
	Timeout  time.Duration `yaml:"timeout" default:"5m"`
}
