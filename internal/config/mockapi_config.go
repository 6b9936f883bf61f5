package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	portEnvVar   = "PORT"
	jwtSecretVar = "MOCK_JWT_SECRET"
)

type MockAPI struct {
	port string
}

var _ MockAPIConfig = MockAPI{}

func (m MockAPI) GetPort() string {
	port := m.port
	if port == "" {
		port = GetEnv(portEnvVar, "8080")
	}
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (MockAPI) GetJWTSecret() string {
	return GetEnv(jwtSecretVar, "dev-secret-change-me")
}

func (MockAPI) GetTokenExpiry() time.Duration {
	return 1 * time.Hour
}
