package config

import "time"

type Config interface {
	EnvConfig
	ClientConfig
	MockAPIConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetDataFolder() string
}

type ClientConfig interface {
	GetAPIBaseURL() string
	GetDownloadFolder() string
	GetHTTPTimeout() time.Duration
}

type MockAPIConfig interface {
	GetPort() string
	GetJWTSecret() string
	GetTokenExpiry() time.Duration
}

type mainConfig struct {
	EnvVars
	Client
	MockAPI
}

// Option overrides a value that would otherwise be read from the environment.
type Option func(*mainConfig)

// WithAPIBaseURL overrides API_BASE_URL
func WithAPIBaseURL(url string) Option {
	return func(c *mainConfig) {
		c.Client.baseURL = url
	}
}

// WithDataFolder overrides FOLDER
func WithDataFolder(folder string) Option {
	return func(c *mainConfig) {
		c.EnvVars.dataFolder = folder
	}
}

// WithDownloadFolder overrides DOWNLOAD_FOLDER
func WithDownloadFolder(folder string) Option {
	return func(c *mainConfig) {
		c.Client.downloadFolder = folder
	}
}

// WithPort overrides PORT
func WithPort(port string) Option {
	return func(c *mainConfig) {
		c.MockAPI.port = port
	}
}

func New(options ...Option) Config {
	c := mainConfig{}
	for _, opt := range options {
		opt(&c)
	}
	return c
}
