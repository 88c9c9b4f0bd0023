package constants

import (
	"os"

	"github.com/pkg/errors"
)

func getenv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func GetIndexDir() string {
	return getenv("INDEX_PATH", "./out")
}

func GetMediaDir() (string, error) {
	path := os.Getenv("MEDIA_PATH")
	if path != "" {
		return path, nil
	}
	return "", errors.New("MEDIA_PATH environment variable is not set")
}

func GetDynamoEndpoint() string {
	return getenv("DYNAMODB_ENDPOINT", "http://localhost:8000")
}

func GetDynamoRegion() string {
	return getenv("DYNAMODB_REGION", "localhost")
}

func GetDynamoTable() string {
	return getenv("DYNAMODB_TABLE", "smfnotes-summaries")
}

func GetPort() string {
	return getenv("PORT", "8080")
}

func GetLogLevel() string {
	return getenv("LOG_LEVEL", "info")
}

const SummariesFilename = "summaries.dat"

// MaxUploadSize caps request bodies for the decode endpoint.
const MaxUploadSize = 16 * 1024 * 1024
