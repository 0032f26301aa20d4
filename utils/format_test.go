package utils

import (
	"testing"
	"time"

	"lce-project/backend/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "15 Sep 2026", FormatDate("2026-09-15"))
	assert.Equal(t, "15 Sep 2026", FormatDate("2026-09-15T10:30:00Z"))
	assert.Equal(t, "—", FormatDate(""))
	assert.Equal(t, "—", FormatDate("not-a-date"))
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "15 Sep 2026 10:30", FormatDateTime(&ts))
	assert.Equal(t, "—", FormatDateTime(nil))
}

func TestIsOverdue(t *testing.T) {
	assert.True(t, IsOverdue("2020-01-01"))
	assert.False(t, IsOverdue(time.Now().AddDate(1, 0, 0).Format("2006-01-02")))
	// Bez roka nema kašnjenja
	assert.False(t, IsOverdue(""))
	assert.False(t, IsOverdue("garbage"))
}

func TestColors(t *testing.T) {
	assert.Equal(t, "#e74c3c", PriorityColor(models.PriorityHigh))
	assert.Equal(t, "#95a5a6", PriorityColor(models.Priority("Unknown")))
	assert.Equal(t, "#3498db", StatusColor(string(models.ProjectInProgress)))
	assert.Equal(t, "#95a5a6", StatusColor("Unknown"))
}
