package hex_test

import (
	"testing"

	"github.com/rcastle4778/coinbase1/pkg/hex"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	require.Equal(t, "0xdeadbeef", hex.Encode([]byte{0xde, 0xad, 0xbe, 0xef}))
	require.Equal(t, "0x", hex.Encode(nil))
}

func TestDecode(t *testing.T) {
	bz, err := hex.Decode("0xdeadbeef")
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, bz)

	bz, err = hex.Decode("deadbeef")
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, bz)

	_, err = hex.Decode("not hex")
	require.Error(t, err)
}

func TestTrimPrefix(t *testing.T) {
	require.Equal(t, "aa11", hex.TrimPrefix("0xaa11"))
	require.Equal(t, "aa11", hex.TrimPrefix("aa11"))
}

func TestIsHex(t *testing.T) {
	require.True(t, hex.IsHex("0xaa11"))
	require.True(t, hex.IsHex(""))
	require.False(t, hex.IsHex("zz"))
}
