package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCapabilityResponse_ReachableUsersList(t *testing.T) {
	raw := json.RawMessage(`{"reachableUsers":["+919812345678","+919876543210"]}`)
	requested := []string{"+919812345678", "+919876543210", "+919800000000"}

	verdicts, err := ParseCapabilityResponse(raw, requested)
	require.NoError(t, err)

	assert.True(t, verdicts["+919812345678"])
	assert.True(t, verdicts["+919876543210"])
	assert.False(t, verdicts["+919800000000"])
}

func TestParseCapabilityResponse_FeatureMap(t *testing.T) {
	raw := json.RawMessage(`{
		"+919812345678": {"features": ["RICHCARD_STANDALONE", "ACTION_CREATE_CALENDAR_EVENT"]},
		"+919876543210": {"features": []}
	}`)
	requested := []string{"+919812345678", "+919876543210"}

	verdicts, err := ParseCapabilityResponse(raw, requested)
	require.NoError(t, err)

	assert.True(t, verdicts["+919812345678"])
	assert.False(t, verdicts["+919876543210"], "empty feature list means not capable")
}

func TestParseCapabilityResponse_IgnoresUnrequestedNumbers(t *testing.T) {
	raw := json.RawMessage(`{"reachableUsers":["+919812345678","+911111111111"]}`)

	verdicts, err := ParseCapabilityResponse(raw, []string{"+919812345678"})
	require.NoError(t, err)

	assert.Len(t, verdicts, 1)
	assert.True(t, verdicts["+919812345678"])
}

func TestParseCapabilityResponse_MalformedShape(t *testing.T) {
	_, err := ParseCapabilityResponse(json.RawMessage(`["not","an","object"]`), []string{"+919812345678"})
	assert.ErrorIs(t, err, ErrCapabilityUnavailable)
}

func TestParseCapabilityResponse_SkipsUnparseableEntries(t *testing.T) {
	raw := json.RawMessage(`{
		"+919812345678": "garbage",
		"+919876543210": {"features": ["RICHCARD_STANDALONE"]}
	}`)
	requested := []string{"+919812345678", "+919876543210"}

	verdicts, err := ParseCapabilityResponse(raw, requested)
	require.NoError(t, err)

	assert.False(t, verdicts["+919812345678"])
	assert.True(t, verdicts["+919876543210"])
}

func TestCapabilityResult_CapableNumbers(t *testing.T) {
	result := NewCapabilityResult(map[string]bool{
		"+919812345678": true,
		"+919876543210": false,
	})

	assert.True(t, result.Capable("+919812345678"))
	assert.False(t, result.Capable("+919876543210"))
	assert.False(t, result.Capable("+910000000000"), "unknown numbers are not capable")
	assert.Equal(t, []string{"+919812345678"}, result.CapableNumbers())
}

func TestMockCapabilityService_RecordsCalls(t *testing.T) {
	mock := NewMockCapabilityService()
	mock.CapableNumbers["+919812345678"] = true

	result, err := mock.CheckBatch(context.Background(), []string{"+919812345678", "+919876543210"}, "acct-1")
	require.NoError(t, err)

	assert.True(t, result.Capable("+919812345678"))
	assert.False(t, result.Capable("+919876543210"))

	require.Len(t, mock.Calls, 1)
	assert.Equal(t, "acct-1", mock.Calls[0].AccountID)
	assert.Equal(t, []string{"+919812345678", "+919876543210"}, mock.Calls[0].Numbers)
}
