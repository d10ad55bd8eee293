package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	Version, GitCommit, BuildTime = "9.9.9", "abc123", "today"
	assert.Equal(t, "goglass v9.9.9 (abc123, built today)", String())
}
