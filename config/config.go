/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package config loads the YAML configuration of the dodgeball server.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/tomoncle/dodgeball/database"
	"github.com/tomoncle/dodgeball/utils"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // trace, debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Database database.Config `yaml:"database"`
	Log      LogConfig       `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: *database.DefaultConfig(),
		Log: LogConfig{
			Level:  utils.EnvDefaultString("LOG_LEVEL", "info"),
			Format: utils.EnvDefaultString("LOG_FORMAT", "text"),
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
// HTTP_ADDR overrides the server address; database variables are applied
// later by the database factory.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	cfg.Server.Addr = utils.EnvDefaultString("HTTP_ADDR", cfg.Server.Addr)
	return cfg, nil
}

// ApplyLogging pushes the log section into every named logger.
func (c *Config) ApplyLogging() {
	utils.ConfigureLogLevel(c.Log.Level)
	utils.ConfigureLogFormat(c.Log.Format)
}
