package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvFallsBackWhenUnsetOrInvalid(t *testing.T) {
	assert.Equal(t, 42, getEnvAsInt("BURNSHOP_TEST_UNSET_INT", 42))

	t.Setenv("BURNSHOP_TEST_INT", "not-a-number")
	assert.Equal(t, 7, getEnvAsInt("BURNSHOP_TEST_INT", 7))

	t.Setenv("BURNSHOP_TEST_BOOL", "maybe")
	assert.True(t, getEnvAsBool("BURNSHOP_TEST_BOOL", true))
}

func TestGetEnvParsesValues(t *testing.T) {
	t.Setenv("BURNSHOP_TEST_INT", " 12 ")
	t.Setenv("BURNSHOP_TEST_BOOL", "false")
	t.Setenv("BURNSHOP_TEST_STRING", "")

	assert.Equal(t, 12, getEnvAsInt("BURNSHOP_TEST_INT", 0))
	assert.False(t, getEnvAsBool("BURNSHOP_TEST_BOOL", true))
	// set but empty is still set
	assert.Equal(t, "", getEnvAsString("BURNSHOP_TEST_STRING", "default"))
}

func TestGetEnvAsTimeDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"30":     30 * time.Second,
		"1500ms": 1500 * time.Millisecond,
		"24h":    24 * time.Hour,
	}
	for raw, want := range cases {
		t.Setenv("BURNSHOP_TEST_DURATION", raw)
		assert.Equal(t, want, getEnvAsTimeDuration("BURNSHOP_TEST_DURATION", time.Minute), raw)
	}

	t.Setenv("BURNSHOP_TEST_DURATION", "soon")
	assert.Equal(t, time.Minute, getEnvAsTimeDuration("BURNSHOP_TEST_DURATION", time.Minute))
}

func TestGetEnvAsSlice(t *testing.T) {
	t.Setenv("BURNSHOP_TEST_SLICE", "http://a.test, ,http://b.test ,")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, getEnvAsSlice("BURNSHOP_TEST_SLICE", nil))

	assert.Equal(t, []string{"x"}, getEnvAsSlice("BURNSHOP_TEST_UNSET_SLICE", []string{"x"}))
}
