package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Logging  LoggingConfig  `yaml:"logging"`
	Docgen   DocgenConfig   `yaml:"docgen"`
}

type ServerConfig struct {
	APIPort    int    `yaml:"api_port"`
	BackendURL string `yaml:"backend_url"` // base URL used in generated links
	Mode       string `yaml:"mode"`        // gin mode: debug / release / test
}

// SetDefaults sets server defaults
func (c *ServerConfig) SetDefaults() {
	if c.APIPort == 0 {
		c.APIPort = 8080
	}
	if c.Mode == "" {
		c.Mode = "release"
	}
}

type DatabaseConfig struct {
	Driver          string `yaml:"driver"` // postgres, mysql (default: postgres)
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
}

func (c *DatabaseConfig) DSN() string {
	if c.Driver == "mysql" {
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.User, c.Password, c.Host, c.Port, c.DBName)
	}
	// default postgres
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.DBName)
}

// SetDefaults sets database defaults
func (c *DatabaseConfig) SetDefaults() {
	if c.Driver == "" {
		c.Driver = "postgres"
	}
	if c.Port == 0 {
		if c.Driver == "mysql" {
			c.Port = 3306
		} else {
			c.Port = 5432
		}
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 10
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 100
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = 3600 // 1 hour
	}
}

type RedisConfig struct {
	// Enabled toggles the template-content cache. When false (or when the
	// connection fails) every template read goes straight to the database.
	Enabled bool `yaml:"enabled"`

	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`

	ConnectTimeout int `yaml:"connect_timeout"` // seconds, default 5
	ReadTimeout    int `yaml:"read_timeout"`    // seconds, default 3
	WriteTimeout   int `yaml:"write_timeout"`   // seconds, default 3
	PoolSize       int `yaml:"pool_size"`       // default 10
	MinIdleConns   int `yaml:"min_idle_conns"`  // default 5
}

// Validate validates the redis section
func (c *RedisConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Host == "" {
		return fmt.Errorf("redis host is required when enabled=true")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid redis port: %d", c.Port)
	}
	return nil
}

// SetDefaults sets redis defaults
func (c *RedisConfig) SetDefaults() {
	if c.Port == 0 {
		c.Port = 6379
	}
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = 5
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 3
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 3
	}
	if c.PoolSize == 0 {
		c.PoolSize = 10
	}
	if c.MinIdleConns == 0 {
		c.MinIdleConns = 5
	}
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug / info / warn / error
	Output string `yaml:"output"` // console / file / both
	File   string `yaml:"file"`   // log file path when output includes file
}

type DocgenConfig struct {
	// AdvisorName is the fallback advisor identity printed on documents
	// when a case has no advisor assigned.
	AdvisorName  string `yaml:"advisor_name"`
	AdvisorEmail string `yaml:"advisor_email"`
	AdvisorPhone string `yaml:"advisor_phone"`
	AgencyCity   string `yaml:"agency_city"`

	// Signature image size in EMU-backed logical units (docx inline extent).
	SignatureWidth  int `yaml:"signature_width"`
	SignatureHeight int `yaml:"signature_height"`

	// TemplateCacheTTL is the redis cache TTL for template content (seconds).
	TemplateCacheTTL int `yaml:"template_cache_ttl"`
}

// SetDefaults sets document-generation defaults
func (c *DocgenConfig) SetDefaults() {
	if c.AdvisorName == "" {
		c.AdvisorName = "Conseiller Opsio"
	}
	if c.AdvisorEmail == "" {
		c.AdvisorEmail = "info@opsio.ch"
	}
	if c.AgencyCity == "" {
		c.AgencyCity = "Lausanne"
	}
	if c.SignatureWidth == 0 {
		c.SignatureWidth = 200
	}
	if c.SignatureHeight == 0 {
		c.SignatureHeight = 100
	}
	if c.TemplateCacheTTL == 0 {
		c.TemplateCacheTTL = 300
	}
}

var GlobalConfig *Config

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.Server.SetDefaults()
	config.Database.SetDefaults()
	config.Redis.SetDefaults()
	config.Docgen.SetDefaults()

	// Environment overrides for containerized deployments
	if dbDriver := os.Getenv("DB_DRIVER"); dbDriver != "" {
		config.Database.Driver = dbDriver
	}
	if dbHost := os.Getenv("DB_HOST"); dbHost != "" {
		config.Database.Host = dbHost
	}
	if dbPort := os.Getenv("DB_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			config.Database.Port = port
		}
	}
	if dbUser := os.Getenv("DB_USER"); dbUser != "" {
		config.Database.User = dbUser
	}
	if dbPassword := os.Getenv("DB_PASSWORD"); dbPassword != "" {
		config.Database.Password = dbPassword
	}
	if dbName := os.Getenv("DB_NAME"); dbName != "" {
		config.Database.DBName = dbName
	}
	config.Database.SetDefaults()

	if redisEnabled := os.Getenv("REDIS_ENABLED"); redisEnabled != "" {
		if enabled, err := strconv.ParseBool(redisEnabled); err == nil {
			config.Redis.Enabled = enabled
		}
	}
	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		config.Redis.Host = redisHost
	}
	if redisPort := os.Getenv("REDIS_PORT"); redisPort != "" {
		if port, err := strconv.Atoi(redisPort); err == nil {
			config.Redis.Port = port
		}
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	config.Redis.SetDefaults()

	if err := config.Redis.Validate(); err != nil {
		return nil, fmt.Errorf("invalid redis config: %w", err)
	}

	GlobalConfig = &config
	return &config, nil
}
