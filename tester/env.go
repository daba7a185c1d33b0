package tester

import (
	"os"
	"strconv"
	"time"
)

func getEnvDef(name, def string) (result string) {
	result = os.Getenv(name)
	if result == "" {
		result = def
	}
	return
}

func getIntEnvDef(name string, def int) (result int) {
	value := os.Getenv(name)
	if value == "" {
		return def
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return
}

func getDurationEnvDef(name string, def time.Duration) (result time.Duration) {
	value := os.Getenv(name)
	if value == "" {
		return def
	}
	result, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return
}
