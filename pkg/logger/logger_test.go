//go:build !integration

package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorWithBareError(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Error("failed to load relics", errors.New("boom"))

	assert.Contains(t, buf.String(), `"msg":"failed to load relics"`)
	assert.Contains(t, buf.String(), `"error":"boom"`)
}

func TestInfoWithKeyValues(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("Server starting", "address", ":8080")

	assert.Contains(t, buf.String(), `"address":":8080"`)
}

func TestInitFansOutToExtraWriters(t *testing.T) {
	var buf bytes.Buffer
	Init("production", &buf)

	Warn("cache miss", "user_id", 7)

	assert.Contains(t, buf.String(), `"user_id":7`)
}

func TestErrorFollowedByKeyValues(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)

	Error("request failed", errors.New("boom"), "path", "/api/v1/me/optimize")

	assert.Contains(t, buf.String(), `"error":"boom"`)
	assert.Contains(t, buf.String(), `"path":"/api/v1/me/optimize"`)
	assert.NotContains(t, buf.String(), "BADKEY")
}
