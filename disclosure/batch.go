package disclosure

import (
	"github.com/veridoc/go-disclosure/commitment"
)

// BatchItem pairs a caller-chosen identifier with one claim set.
type BatchItem struct {
	ID     string         `json:"id"`
	Claims map[string]any `json:"claims"`
}

// BatchCommitments is the per-item result of CreateBatchCommitments. Err is
// set when that item failed; the rest of the batch is unaffected.
type BatchCommitments struct {
	ID          string                           `json:"id"`
	Commitments map[string]commitment.Commitment `json:"commitments,omitempty"`
	Err         error                            `json:"-"`
}

// CreateBatchCommitments commits every item's claims independently, in
// input order. The result has the same length and order as items so the
// caller can correlate positionally.
func (p *Protocol) CreateBatchCommitments(items []BatchItem) []BatchCommitments {
	builder := p.builder()
	out := make([]BatchCommitments, len(items))
	for i, item := range items {
		out[i].ID = item.ID
		commitments, err := builder.NewBatch(item.Claims, nil)
		if err != nil {
			out[i].Err = err
			continue
		}
		out[i].Commitments = commitments
	}
	return out
}

// VerifyBatchPresentations verifies every presentation independently, in
// input order. Verification is fail-soft per item, so the result always has
// the same length and order as presentations.
func (p *Protocol) VerifyBatchPresentations(presentations []*Presentation) []*VerificationResult {
	out := make([]*VerificationResult, len(presentations))
	for i, pres := range presentations {
		out[i] = p.VerifyPresentation(pres)
	}
	return out
}
