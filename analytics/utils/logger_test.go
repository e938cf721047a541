package utils

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Сообщения об ошибках могут содержать знаки процента (например, текст
// SQL-ошибки с LIKE '%...%'), поэтому они передаются аргументом к "%s",
// а не как строка формата
func TestLoggerMessageWithPercentSigns(t *testing.T) {
	prevDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(prevDir) })

	logger := NewAnalyticsLogger(false)

	errMsg := "Ошибка в фазе Extract: синтаксис около '%s' неверен (заполнено 50%)"
	logger.Error("%s", errMsg)

	logFileName := "analytics_log_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(logFileName)
	require.NoError(t, err)

	assert.Contains(t, string(data), errMsg)
	assert.NotContains(t, string(data), "%!s(MISSING)")
}
