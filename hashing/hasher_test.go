package hashing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	d1 := Sum([]byte("hello"))
	d2 := SumString("hello")
	require.Equal(t, d1, d2)
	require.Len(t, d1, DigestSize*2)
	require.Equal(t, strings.ToLower(d1), d1)

	require.NotEqual(t, d1, Sum([]byte("hello ")))
}

func TestSumWithLength(t *testing.T) {
	full := Sum([]byte("payload"))

	short, err := SumWithLength([]byte("payload"), 20)
	require.NoError(t, err)
	require.Len(t, short, 40)

	// BLAKE3 output is an XOF, shorter digests are prefixes of longer ones
	require.Equal(t, full[:40], short)
	require.Equal(t, short, Sum160([]byte("payload")))

	_, err = SumWithLength([]byte("payload"), 0)
	require.Error(t, err)
	_, err = SumWithLength([]byte("payload"), -5)
	require.Error(t, err)
}

func TestRandomHex(t *testing.T) {
	a, err := RandomHex(16)
	require.NoError(t, err)
	require.Len(t, a, 32)

	b, err := RandomHex(16)
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	_, err = RandomHex(0)
	require.Error(t, err)
}
