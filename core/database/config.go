package database

import (
	"fmt"
	"net/url"
)

// Config holds configuration for the database connection.
type Config struct {
	// Host is the database host.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user.
	User string `mapstructure:"user" default:"root"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"gateway"`
	// TimeoutSeconds applies to connect, read, write and the initial ping.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

func (c Config) timeout() int {
	if c.TimeoutSeconds <= 0 {
		return 30
	}
	return c.TimeoutSeconds
}

// DSN renders the go-sql-driver/mysql data source name.
// Special characters in the password are URL encoded.
func (c Config) DSN() string {
	userInfo := url.UserPassword(c.User, c.Password).String()
	timeout := c.timeout()
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		userInfo, c.Host, c.Port, c.Name, timeout, timeout, timeout)
}
