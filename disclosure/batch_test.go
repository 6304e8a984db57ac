package disclosure

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/veridoc/go-disclosure/commitment"
)

func TestCreateBatchCommitments(t *testing.T) {
	p := New()

	items := []BatchItem{
		{ID: "holder-1", Claims: map[string]any{"given_name": "Jane"}},
		{ID: "holder-2", Claims: map[string]any{"bad": make(chan int)}},
		{ID: "holder-3", Claims: map[string]any{"given_name": "John", "age_over_18": true}},
	}

	out := p.CreateBatchCommitments(items)

	// one item per input, in input order, failures isolated
	require.Len(t, out, len(items))
	require.Equal(t, "holder-1", out[0].ID)
	require.Equal(t, "holder-2", out[1].ID)
	require.Equal(t, "holder-3", out[2].ID)

	require.NoError(t, out[0].Err)
	require.Len(t, out[0].Commitments, 1)
	require.True(t, commitment.Verify("given_name", "Jane",
		out[0].Commitments["given_name"].Salt, out[0].Commitments["given_name"].Commitment))

	require.Error(t, out[1].Err)
	require.Empty(t, out[1].Commitments)

	require.NoError(t, out[2].Err)
	require.Len(t, out[2].Commitments, 2)
}

func TestVerifyBatchPresentations(t *testing.T) {
	p := New()

	cred, err := p.CreateCredential(pidClaims, nil)
	require.NoError(t, err)

	good, err := p.CreatePresentation(cred, []string{"given_name"}, pidClaims)
	require.NoError(t, err)

	bad, err := p.CreatePresentation(cred, []string{"nationality"}, pidClaims)
	require.NoError(t, err)
	forged := bad.Disclosed["nationality"]
	forged.Value = "FR"
	bad.Disclosed["nationality"] = forged

	results := p.VerifyBatchPresentations([]*Presentation{good, bad, nil})
	require.Len(t, results, 3)
	require.True(t, results[0].Valid)
	require.False(t, results[1].Valid)
	require.False(t, results[2].Valid)
}
