package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshRequestRoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 5, 10, 0, 0, 0, time.FixedZone("CET", 3600))

	body, err := EncodeRefreshRequest([]string{"b/two", "a/one"}, at)
	require.NoError(t, err)

	req, err := DecodeRefreshRequest(body)
	require.NoError(t, err)
	assert.Equal(t, []string{"b/two", "a/one"}, req.Repositories)
	assert.True(t, at.Equal(req.RequestedAt))
	assert.Equal(t, time.UTC, req.RequestedAt.Location())
}

func TestEncodeRefreshRequest_NilListIsEmptyArray(t *testing.T) {
	body, err := EncodeRefreshRequest(nil, time.Unix(0, 0))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"repositories":[]`)
}

func TestDecodeRefreshRequest_Invalid(t *testing.T) {
	_, err := DecodeRefreshRequest([]byte("not json"))
	assert.Error(t, err)
}
