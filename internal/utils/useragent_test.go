package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUserAgent(t *testing.T) {
	chrome := "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	formatted := FormatUserAgent(chrome)
	assert.Contains(t, formatted, "Chrome")
	assert.Contains(t, formatted, "on")

	assert.Equal(t, "unknown", FormatUserAgent(""))
}
