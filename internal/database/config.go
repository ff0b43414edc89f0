package database

import (
	"fmt"
	"net/url"

	gormlogger "gorm.io/gorm/logger"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/config"
)

// Config holds database connection settings
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxIdleConns int
	MaxOpenConns int
	LogLevel     gormlogger.LogLevel
}

// NewConfig derives the database settings from the application config.
// SQL statements are only logged outside production.
func NewConfig(cfg *config.Config) *Config {
	level := gormlogger.Warn
	if cfg.Env == "production" {
		level = gormlogger.Error
	}
	return &Config{
		Host:         cfg.DBHost,
		Port:         cfg.DBPort,
		User:         cfg.DBUser,
		Password:     cfg.DBPassword,
		DBName:       cfg.DBName,
		SSLMode:      cfg.DBSSLMode,
		MaxIdleConns: 10,
		MaxOpenConns: 50,
		LogLevel:     level,
	}
}

// DSN returns the key/value connection string used by the GORM driver.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the connection URL used by golang-migrate.
func (c *Config) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}
