package avito

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeState(t *testing.T) {
	encoded, err := EncodeState(StatePayload{OwnerID: 42, Nonce: "abc123"})
	require.NoError(t, err)

	payload, err := DecodeState(encoded)
	require.NoError(t, err)
	assert.Equal(t, int64(42), payload.OwnerID)
	assert.Equal(t, "abc123", payload.Nonce)
}

func TestDecodeState_Invalid(t *testing.T) {
	_, err := DecodeState("not-base64!!!")
	require.ErrorIs(t, err, ErrInvalidState)

	garbage := base64.URLEncoding.EncodeToString([]byte("not json"))
	_, err = DecodeState(garbage)
	require.ErrorIs(t, err, ErrInvalidState)

	noOwner := base64.URLEncoding.EncodeToString([]byte(`{"nonce":"x"}`))
	_, err = DecodeState(noOwner)
	require.ErrorIs(t, err, ErrInvalidState)
}
