package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summonerscompass/compass-go/internal/infrastructure/config"
	"github.com/summonerscompass/compass-go/internal/infrastructure/logging"
)

func TestNew_StdoutLogger(t *testing.T) {
	// Arrange
	cfg := &config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"}

	// Act
	logger, err := logging.New(cfg)

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	// Arrange
	cfg := &config.LoggingConfig{Level: "loud", Format: "json", Output: "stdout"}

	// Act
	_, err := logging.New(cfg)

	// Assert
	assert.Error(t, err)
}

func TestNew_RejectsUnknownOutput(t *testing.T) {
	// Arrange
	cfg := &config.LoggingConfig{Level: "info", Format: "json", Output: "syslog"}

	// Act
	_, err := logging.New(cfg)

	// Assert
	assert.Error(t, err)
}

func TestNew_FileOutputRequiresPath(t *testing.T) {
	// Arrange
	cfg := &config.LoggingConfig{Level: "info", Format: "json", Output: "file"}

	// Act
	_, err := logging.New(cfg)

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "file_path")
}
