package config

import (
	"strings"
	"time"
)

const (
	apiBaseURLVar     = "API_BASE_URL"
	downloadFolderVar = "DOWNLOAD_FOLDER"
	httpTimeoutVar    = "HTTP_TIMEOUT"

	defaultAPIBaseURL  = "https://levitation.api.corevision.live"
	defaultHTTPTimeout = 30 * time.Second
)

type Client struct {
	baseURL        string
	downloadFolder string
}

var _ ClientConfig = Client{}

func (c Client) GetAPIBaseURL() string {
	url := c.baseURL
	if url == "" {
		url = GetEnv(apiBaseURLVar, defaultAPIBaseURL)
	}
	return strings.TrimRight(url, "/")
}

func (c Client) GetDownloadFolder() string {
	if c.downloadFolder != "" {
		return c.downloadFolder
	}
	return GetEnv(downloadFolderVar, ".")
}

// GetHTTPTimeout falls back to the default when HTTP_TIMEOUT is unset or unparsable.
func (Client) GetHTTPTimeout() time.Duration {
	d, err := time.ParseDuration(GetEnv(httpTimeoutVar, ""))
	if err != nil || d <= 0 {
		return defaultHTTPTimeout
	}
	return d
}
