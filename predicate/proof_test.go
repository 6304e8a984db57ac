package predicate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestAgeOverBoundary(t *testing.T) {
	cases := []struct {
		name string
		at   string
		want bool
	}{
		{"day before 18th birthday", "2024-03-14", false},
		{"18th birthday", "2024-03-15", true},
		{"day after", "2024-03-16", true},
		{"month before", "2024-02-20", false},
		{"years later", "2030-01-01", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := AgeOverAt("2006-03-15", 18, mustDate(t, tc.at))
			require.NoError(t, err)
			require.Equal(t, tc.want, p.Result)
			require.True(t, Verify(p, tc.want))
			require.False(t, Verify(p, !tc.want))
		})
	}
}

func TestAgeOverBadDate(t *testing.T) {
	_, err := AgeOver("15.03.2006", 18)
	require.Error(t, err)
}

func TestAgeOverTamper(t *testing.T) {
	p, err := AgeOverAt("2006-03-15", 18, mustDate(t, "2023-01-01"))
	require.NoError(t, err)
	require.False(t, p.Result)

	// flipping the asserted result invalidates the hash
	p.Result = true
	require.False(t, Verify(p, true))

	fresh, err := AgeOverAt("2006-03-15", 18, mustDate(t, "2025-01-01"))
	require.NoError(t, err)
	fresh.Threshold = 16
	require.False(t, Verify(fresh, true))
}

func TestRange(t *testing.T) {
	t.Run("inside", func(t *testing.T) {
		p, err := Range(54321, 10000, 100000, "annual_income")
		require.NoError(t, err)
		require.True(t, p.Result)
		require.True(t, Verify(p, true))
	})

	t.Run("boundaries inclusive", func(t *testing.T) {
		low, err := Range(10, 10, 20, "score")
		require.NoError(t, err)
		require.True(t, low.Result)

		high, err := Range(20, 10, 20, "score")
		require.NoError(t, err)
		require.True(t, high.Result)
	})

	t.Run("outside", func(t *testing.T) {
		p, err := Range(9.99, 10, 20, "score")
		require.NoError(t, err)
		require.False(t, p.Result)
		require.True(t, Verify(p, false))
		require.False(t, Verify(p, true))
	})

	t.Run("tampered bounds", func(t *testing.T) {
		p, err := Range(15, 10, 20, "score")
		require.NoError(t, err)
		wider := 1000.0
		p.Max = &wider
		require.False(t, Verify(p, true))
	})
}

func TestMembership(t *testing.T) {
	allowed := []string{"DE", "FR", "IT"}

	p, err := Membership("FR", allowed, "nationality")
	require.NoError(t, err)
	require.True(t, p.Result)
	require.True(t, Verify(p, true))

	miss, err := Membership("US", allowed, "nationality")
	require.NoError(t, err)
	require.False(t, miss.Result)
	require.True(t, Verify(miss, false))

	// the set hash does not depend on list order
	shuffled, err := Membership("FR", []string{"IT", "DE", "FR"}, "nationality")
	require.NoError(t, err)
	require.Equal(t, p.SetHash, shuffled.SetHash)

	// binding to a different set invalidates the proof
	other, err := Membership("FR", []string{"FR", "US"}, "nationality")
	require.NoError(t, err)
	p.SetHash = other.SetHash
	require.False(t, Verify(p, true))
}

func TestVerifyUnknownType(t *testing.T) {
	p, err := AgeOverAt("2000-01-01", 18, mustDate(t, "2024-01-01"))
	require.NoError(t, err)

	p.Type = Type("zk_snark")
	require.False(t, Verify(p, true))
	require.False(t, Verify(Proof{}, false))
}

func TestNoncesAreFresh(t *testing.T) {
	a, err := AgeOverAt("2000-01-01", 18, mustDate(t, "2024-01-01"))
	require.NoError(t, err)
	b, err := AgeOverAt("2000-01-01", 18, mustDate(t, "2024-01-01"))
	require.NoError(t, err)

	require.NotEqual(t, a.Nonce, b.Nonce)
	require.NotEqual(t, a.Proof, b.Proof)
}
