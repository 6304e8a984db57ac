package disclosure

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/veridoc/go-disclosure/hashing"
)

// DefaultRequestTTL is the lifetime of a disclosure request when the
// relying party does not set one.
const DefaultRequestTTL = 5 * time.Minute

const requestNonceLength = 16

// Request is a relying party's ask for specific claims.
type Request struct {
	RequestID       string    `json:"requestId"`
	RPID            string    `json:"rpId"`
	RPName          string    `json:"rpName,omitempty"`
	RequestedClaims []string  `json:"requestedClaims"`
	Purpose         string    `json:"purpose,omitempty"`
	IntentToRetain  bool      `json:"intentToRetain"`
	Nonce           string    `json:"nonce"`
	CreatedAt       time.Time `json:"createdAt"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// RequestOptions configure a new disclosure request. A non-positive TTL
// falls back to DefaultRequestTTL.
type RequestOptions struct {
	RPID            string
	RPName          string
	RequestedClaims []string
	Purpose         string
	IntentToRetain  bool
	TTL             time.Duration
}

// NewRequest builds a disclosure request with a generated ID and a fresh
// random nonce.
func NewRequest(opts *RequestOptions) (*Request, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}

	nonce, err := hashing.RandomHex(requestNonceLength)
	if err != nil {
		return nil, errors.Wrap(err, "request nonce")
	}

	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultRequestTTL
	}

	now := time.Now().UTC()
	return &Request{
		RequestID:       uuid.NewString(),
		RPID:            opts.RPID,
		RPName:          opts.RPName,
		RequestedClaims: opts.RequestedClaims,
		Purpose:         opts.Purpose,
		IntentToRetain:  opts.IntentToRetain,
		Nonce:           nonce,
		CreatedAt:       now,
		ExpiresAt:       now.Add(ttl),
	}, nil
}

// RequestValidation is the structured outcome of request validation.
type RequestValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidateRequest checks a request for completeness and freshness. Every
// violation is accumulated; validation never stops at the first problem.
func ValidateRequest(r *Request) RequestValidation {
	v := RequestValidation{Errors: []string{}}

	if r == nil {
		v.Errors = append(v.Errors, "request is nil")
		return v
	}

	if r.RequestID == "" {
		v.Errors = append(v.Errors, "requestId is required")
	}
	if r.RPID == "" {
		v.Errors = append(v.Errors, "rpId is required")
	}
	if r.Nonce == "" {
		v.Errors = append(v.Errors, "nonce is required")
	}
	if len(r.RequestedClaims) == 0 {
		v.Errors = append(v.Errors, "requestedClaims must be a non-empty list")
	}
	if !r.ExpiresAt.IsZero() && r.ExpiresAt.Before(time.Now()) {
		v.Errors = append(v.Errors,
			fmt.Sprintf("request expired at %s", r.ExpiresAt.UTC().Format(time.RFC3339)))
	}

	v.Valid = len(v.Errors) == 0
	return v
}
