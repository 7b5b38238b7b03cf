/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package config provides structures and functions for loading and managing client configurations.
package config

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// ApplicationConfig holds the calling application details.
type ApplicationConfig struct {
	ID string `yaml:"id"`
}

// OAuthConfig holds the OAuth client configuration details.
type OAuthConfig struct {
	ClientID            string   `yaml:"client_id"`
	RedirectURI         string   `yaml:"redirect_uri"`
	Scopes              []string `yaml:"scopes"`
	Issuer              string   `yaml:"issuer"`
	ServerURL           string   `yaml:"server_url"`
	AuthorizeURL        string   `yaml:"authorize_url"`
	TokenURL            string   `yaml:"token_url"`
	CodeChallengeMethod string   `yaml:"code_challenge_method"`
}

// RedisConfig holds the redis connection details for the flow store.
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
}

// DataSource holds the database connection details for the flow store.
type DataSource struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the data source name for the configured database.
func (d DataSource) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Hostname, d.Port, d.Name, d.Username, d.Password, sslMode)
}

// FlowStoreConfig holds the pending flow store configuration details.
type FlowStoreConfig struct {
	Type       string      `yaml:"type"`
	Size       int         `yaml:"size"`
	TTLSeconds int         `yaml:"ttl_seconds"`
	Redis      RedisConfig `yaml:"redis"`
	Database   DataSource  `yaml:"database"`
}

// Config holds the client configuration details.
type Config struct {
	Application ApplicationConfig `yaml:"application"`
	OAuth       OAuthConfig       `yaml:"oauth"`
	FlowStore   FlowStoreConfig   `yaml:"flow_store"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {

	var cfg Config
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
