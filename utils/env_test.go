package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOr(t *testing.T) {
	t.Setenv("ORASCHEMAGEN_TEST_KEY", "from-env")
	assert.Equal(t, "from-env", EnvOr("ORASCHEMAGEN_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", EnvOr("ORASCHEMAGEN_TEST_MISSING", "fallback"))
}
