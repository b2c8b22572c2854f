/*
 * Copyright (c) 2026 Francesco Biribo'
 *
 * Permission to use, copy, modify, and distribute this software for any purpose with or without fee is hereby granted, provided that the above copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package internal

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	FolderPath        string `json:"folder-path"`
	EnableLogging     bool   `json:"enable-logging"`
	LogLevel          string `json:"log-level"`
	LogJSON           bool   `json:"log-json"`
	LogFile           string `json:"log-file"`
	DBDriver          string `json:"db-driver"` // "sqlite" or "postgres"
	DBName            string `json:"db-name"`   // sqlite file or postgres DSN
	HTTPServerPort    uint16 `json:"http-server-port"`
	HealthServerPort  uint16 `json:"health-server-port"`
	TemplateDirectory string `json:"template-directory"`
	MediaDirectory    string `json:"media-directory"`
	MediaURLPrefix    string `json:"media-url-prefix"`
	S3Bucket          string `json:"s3-bucket"`
	S3Region          string `json:"s3-region"`
	RedisAddr         string `json:"redis-addr"`
	RedisPassword     string `json:"redis-password"`
	CacheTTL          int64  `json:"cache-ttl"`
	ReadTimeout       int64  `json:"read-timeout"`
	WriteTimeout      int64  `json:"write-timeout"`
	SecretKey         string `json:"secret-key"`
}

const envPrefix = "YATUBE_"

// LoadConfig reads <folderPath>/.cfg, then lets environment variables
// (optionally coming from .env files in the same folder) override it.
func LoadConfig(folderPath string) (*Config, error) {
	LoadDotEnvs(folderPath)

	file, err := os.OpenFile(filepath.Join(folderPath, ".cfg"), os.O_RDONLY, 0755)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	var config *Config = &Config{}
	if err = json.Unmarshal(payload, config); err != nil {
		return nil, err
	}
	config.FolderPath = folderPath

	if err = config.applyEnv(); err != nil {
		return nil, err
	}
	config.ApplyDefaults()
	return config, nil
}

// LoadDotEnvs loads .env.<env>.local, .env.local, .env.<env> and .env from
// dir, earlier files winning. <env> is YATUBE_ENV, "dev" when unset.
func LoadDotEnvs(dir string) {
	env := os.Getenv(envPrefix + "ENV")
	if env == "" {
		env = "dev"
	}
	for _, name := range []string{".env." + env + ".local", ".env.local", ".env." + env, ".env"} {
		// Missing files are fine, godotenv never overrides variables already set.
		_ = godotenv.Load(filepath.Join(dir, name))
	}
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"SECRET_KEY":     &c.SecretKey,
		"DB_DRIVER":      &c.DBDriver,
		"DB_NAME":        &c.DBName,
		"REDIS_ADDR":     &c.RedisAddr,
		"REDIS_PASSWORD": &c.RedisPassword,
		"S3_BUCKET":      &c.S3Bucket,
		"S3_REGION":      &c.S3Region,
		"LOG_LEVEL":      &c.LogLevel,
		"TEMPLATE_DIR":   &c.TemplateDirectory,
		"MEDIA_DIR":      &c.MediaDirectory,
	}
	for key, field := range strs {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			*field = v
		}
	}

	ports := map[string]*uint16{
		"HTTP_PORT":   &c.HTTPServerPort,
		"HEALTH_PORT": &c.HealthServerPort,
	}
	for key, field := range ports {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			port, err := strconv.ParseUint(v, 10, 16)
			if err != nil {
				return err
			}
			*field = uint16(port)
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "CACHE_TTL"); ok {
		ttl, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return err
		}
		c.CacheTTL = ttl
	}
	return nil
}

func (c *Config) ApplyDefaults() {
	if c.DBDriver == "" {
		c.DBDriver = "sqlite"
	}
	if c.DBName == "" {
		c.DBName = "yatube.db"
	}
	if c.HTTPServerPort == 0 {
		c.HTTPServerPort = 8000
	}
	if c.HealthServerPort == 0 {
		c.HealthServerPort = 8001
	}
	if c.TemplateDirectory == "" {
		c.TemplateDirectory = filepath.Join("web", "templates")
	}
	if c.MediaDirectory == "" {
		c.MediaDirectory = "media"
	}
	if c.MediaURLPrefix == "" {
		c.MediaURLPrefix = "/media/"
	}
	if c.S3Region == "" {
		c.S3Region = "us-west-1"
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 20
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = 15
	}
}

func (c *Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// RetrieveWebTemplates maps every page template in templateDir to the list
// of files it is parsed with: all layouts plus the page itself.
func RetrieveWebTemplates(templateDir string) (map[string][]string, error) {

	mapping := make(map[string][]string)

	layoutPath := filepath.Join(templateDir, "layouts")
	layoutFiles, err := filepath.Glob(filepath.Join(layoutPath, "*.html"))
	if err != nil {
		return nil, err
	}

	pageFiles, err := filepath.Glob(filepath.Join(templateDir, "*.html"))
	if err != nil {
		return nil, err
	}

	for _, page := range pageFiles {
		files := append([]string{}, layoutFiles...)
		files = append(files, page)
		mapping[filepath.Base(page)] = files
	}

	return mapping, nil
}

// ResolvePath interprets p relative to the configuration folder.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.FolderPath, p)
}
