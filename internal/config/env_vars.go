package config

import (
	"strings"
)

type EnvVars struct {
	Port       string `envconfig:"PORT" default:"8080"`
	AppName    string `envconfig:"APP_NAME" default:"Barber Client"`
	DataFolder string `envconfig:"FOLDER" default:"./data"`
	Env        string `envconfig:"ENV" default:"DEV"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	return listenAddr(e.Port, "8080")
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetDataFolder() string {
	return e.DataFolder
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return e.Env
}

func listenAddr(port, fallback string) string {
	if port == "" {
		port = fallback
	}
	if !strings.Contains(port, ":") {
		port = ":" + port
	}
	return port
}
