package discord

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	publicKey, privateKey, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	body := []byte(`{"type":1}`)
	timestamp := "1700000000"
	signature := ed25519.Sign(privateKey, append([]byte(timestamp), body...))

	r := httptest.NewRequest("POST", "/discord/interactions", bytes.NewReader(body))
	r.Header.Set("X-Signature-Ed25519", hex.EncodeToString(signature))
	r.Header.Set("X-Signature-Timestamp", timestamp)

	require.NoError(t, Verify(r, publicKey))

	// The body must still be readable after verification.
	readBack, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	require.Equal(t, body, readBack)
}

func TestVerify_badSignature(t *testing.T) {
	publicKey, privateKey, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	body := []byte(`{"type":1}`)
	signature := ed25519.Sign(privateKey, append([]byte("1700000000"), body...))

	r := httptest.NewRequest("POST", "/discord/interactions", bytes.NewReader(body))
	r.Header.Set("X-Signature-Ed25519", hex.EncodeToString(signature))
	r.Header.Set("X-Signature-Timestamp", "1700000001")
	require.Error(t, Verify(r, publicKey))

	r = httptest.NewRequest("POST", "/discord/interactions", bytes.NewReader(body))
	require.Error(t, Verify(r, publicKey))
}
