package types

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const systemProgramStr = "11111111111111111111111111111111"

func TestParsePubkey(t *testing.T) {
	p, err := ParsePubkey(systemProgramStr)
	require.NoError(t, err)
	assert.Equal(t, Pubkey{}, p)
	assert.Equal(t, systemProgramStr, p.String())
	assert.Equal(t, strings.Repeat("00", 32), p.Hex())

	hexID := strings.Repeat("ab", 32)
	p, err = ParsePubkey(hexID)
	require.NoError(t, err)
	assert.Equal(t, PubkeyFromBytes(bytes.Repeat([]byte{0xab}, 32)), p)
	assert.Equal(t, hexID, p.Hex())

	// 与 base58 往返
	again, err := ParsePubkey(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, again)

	for _, bad := range []string{"", "0OIl", "abc", strings.Repeat("zz", 32), "1111"} {
		_, err := ParsePubkey(bad)
		assert.Error(t, err, bad)
	}
}

func TestPubkeyFromBase58_Panics(t *testing.T) {
	assert.Equal(t, Pubkey{}, PubkeyFromBase58(systemProgramStr))
	assert.Panics(t, func() { PubkeyFromBase58("not-base58!") })
	assert.Panics(t, func() { PubkeyFromBytes([]byte{1, 2, 3}) })
}

func TestTryPubkeyFromHex(t *testing.T) {
	_, err := TryPubkeyFromHex(strings.Repeat("01", 31))
	assert.Error(t, err)
	_, err = TryPubkeyFromHex("xyz")
	assert.Error(t, err)
}

func TestHash(t *testing.T) {
	var h Hash
	for i := range h {
		h[i] = byte(i)
	}
	assert.Equal(t, "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f", h.Hex())

	decoded, err := base58.Decode(h.String())
	require.NoError(t, err)
	assert.Equal(t, h[:], decoded)

	assert.Equal(t, strings.Repeat("1", HashSize), Hash{}.String())
}
