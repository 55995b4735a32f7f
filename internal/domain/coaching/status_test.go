package coaching

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/coachtrack/internal/httperr"
)

func TestParseDecision(t *testing.T) {
	s, err := ParseDecision("accepted")
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, s)

	s, err = ParseDecision("rejected")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, s)

	for _, bad := range []string{"pending", "ACCEPTED", ""} {
		_, err := ParseDecision(bad)
		assert.True(t, httperr.IsBusiness(err, "invalid_status"), bad)
	}
}

func TestTransitionsOnlyFromPending(t *testing.T) {
	assert.True(t, CanRespond(StatusPending))
	assert.False(t, CanRespond(StatusAccepted))
	assert.False(t, CanRespond(StatusRejected))

	assert.Equal(t, StatusPending, InitialStatus())
}

func TestOnboardingCode(t *testing.T) {
	code, err := GenerateOnboardingCode()
	require.NoError(t, err)
	assert.True(t, IsValidCode(code), code)

	zero := NewCodeGenerator(bytes.NewReader(make([]byte, 64)))
	code, err = zero()
	require.NoError(t, err)
	assert.Equal(t, "#000000", code)

	_, err = NewCodeGenerator(bytes.NewReader(nil))()
	assert.Error(t, err)

	assert.False(t, IsValidCode("123456"))
	assert.False(t, IsValidCode("#12345"))
	assert.False(t, IsValidCode("#12345a"))
}
