// internal/workers/matching/generate-anonymous-id/handler_test.go
package generateanonymousid

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mridulmalani2/wandernest2-sub003/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_GeneratesLabel(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewNoOpLogger())

	output, err := handler.Execute(context.Background(), &Input{GuideID: "guide-abc-123"})

	require.NoError(t, err)
	assert.Equal(t, "guide-abc-123", output.GuideID)
	assert.Regexp(t, regexp.MustCompile(`^Guide #\d{4}$`), output.AnonymousID)
}

func TestHandler_Execute_Deterministic(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewNoOpLogger())

	first, err := handler.Execute(context.Background(), &Input{GuideID: "guide-abc-123"})
	require.NoError(t, err)
	second, err := handler.Execute(context.Background(), &Input{GuideID: "guide-abc-123"})
	require.NoError(t, err)

	assert.Equal(t, first.AnonymousID, second.AnonymousID)
}

func TestHandler_Execute_RejectsBlankGuideID(t *testing.T) {
	handler := NewHandler(createTestConfig(), logger.NewNoOpLogger())

	for _, id := range []string{"", "   "} {
		_, err := handler.Execute(context.Background(), &Input{GuideID: id})
		assert.Error(t, err)
	}
}
