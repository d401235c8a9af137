package env

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

var (
	ErrNotFound         = errors.New("environment variable with key not found")
	ErrConversionFailed = errors.New("failed to convert environment variable with key to value")
)

func errNotFound(key string) error {
	return fmt.Errorf("key: %s: %w", key, ErrNotFound)
}

func errConversionFailed(key string, typeName string, err error) error {
	return fmt.Errorf("key: %s type: %s: %s: %w", key, typeName, err.Error(), ErrConversionFailed)
}

func GetStringOrDefault(key string, defaultVal string) string {
	if val, found := os.LookupEnv(key); found && val != "" {
		return val
	}

	return defaultVal
}

func GetString(key string) (string, error) {
	if val, found := os.LookupEnv(key); found {
		return val, nil
	}

	return "", errNotFound(key)
}

func GetIntOrDefault(key string, defaultVal int) (int, error) {
	envVal, found := os.LookupEnv(key)
	if !found || envVal == "" {
		return defaultVal, nil
	}

	val, err := strconv.Atoi(envVal)
	if err != nil {
		return 0, errConversionFailed(key, "int", err)
	}

	return val, nil
}

func GetDurationOrDefault(key string, defaultVal time.Duration) (time.Duration, error) {
	envVal, found := os.LookupEnv(key)
	if !found || envVal == "" {
		return defaultVal, nil
	}

	val, err := time.ParseDuration(envVal)
	if err != nil {
		return 0, errConversionFailed(key, "time.Duration", err)
	}

	return val, nil
}

func GetURL(key string) (*url.URL, error) {
	val, found := os.LookupEnv(key)
	if !found || val == "" {
		return nil, errNotFound(key)
	}

	u, err := url.Parse(val)
	if err != nil {
		return nil, errConversionFailed(key, "url.URL", err)
	}

	return u, nil
}

func MustGetString(key string) string {
	val, err := GetString(key)
	if err != nil {
		panic(err)
	}

	return val
}

func MustGetInt(key string) int {
	envVal := MustGetString(key)

	val, err := strconv.Atoi(envVal)
	if err != nil {
		panic(errConversionFailed(key, "int", err))
	}

	return val
}
