// Package predicate creates commitment-style proofs of boolean facts about
// claims (age over a threshold, numeric range, set membership) so a holder
// can reveal the fact instead of the raw value.
//
// These are committed assertions, not zero-knowledge proofs: the proof hash
// binds the result, the predicate parameters, and a fresh nonce, but
// verifying it means trusting whoever computed the result. The private
// input never enters the hash. The interface is kept stable so a real range
// proof (a Bulletproof or Σ-protocol) can replace the construction without
// changing callers.
package predicate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/veridoc/go-disclosure/commitment"
	"github.com/veridoc/go-disclosure/hashing"
)

// Type discriminates predicate proof kinds.
type Type string

const (
	// TypeAgeOver proves age >= threshold.
	TypeAgeOver Type = "age_over"
	// TypeRange proves min <= value <= max.
	TypeRange Type = "range"
	// TypeMembership proves value is in an allowed set.
	TypeMembership Type = "membership"
)

// DateLayout is the calendar date format birth dates are supplied in.
const DateLayout = "2006-01-02"

const nonceLength = 16

// Proof is a predicate proof of any kind. Fields beyond Type, Result,
// Proof, Nonce, and Timestamp are kind-specific and empty for other kinds.
type Proof struct {
	Type      Type      `json:"type"`
	Threshold int       `json:"threshold,omitempty"`
	Min       *float64  `json:"min,omitempty"`
	Max       *float64  `json:"max,omitempty"`
	ClaimType string    `json:"claimType,omitempty"`
	SetHash   string    `json:"setHash,omitempty"`
	Result    bool      `json:"result"`
	Proof     string    `json:"proof"`
	Nonce     string    `json:"nonce"`
	Timestamp time.Time `json:"timestamp"`
}

// AgeOver proves that a holder born on birthDate (YYYY-MM-DD) is at least
// threshold years old now.
func AgeOver(birthDate string, threshold int) (Proof, error) {
	return AgeOverAt(birthDate, threshold, time.Now().UTC())
}

// AgeOverAt evaluates the age predicate at a fixed point in time. Age is
// computed calendar-correctly: the year difference is reduced by one until
// the birthday's month and day have passed in the evaluation year.
func AgeOverAt(birthDate string, threshold int, at time.Time) (Proof, error) {
	born, err := time.Parse(DateLayout, birthDate)
	if err != nil {
		return Proof{}, errors.Wrap(err, "parse birth date")
	}

	age := at.Year() - born.Year()
	if at.Month() < born.Month() ||
		(at.Month() == born.Month() && at.Day() < born.Day()) {
		age--
	}

	return seal(Proof{
		Type:      TypeAgeOver,
		Threshold: threshold,
		Result:    age >= threshold,
		Timestamp: at,
	})
}

// Range proves min <= value <= max for the named claim.
func Range(value, min, max float64, claimType string) (Proof, error) {
	return seal(Proof{
		Type:      TypeRange,
		Min:       &min,
		Max:       &max,
		ClaimType: claimType,
		Result:    value >= min && value <= max,
		Timestamp: time.Now().UTC(),
	})
}

// Membership proves that value is one of the allowed values for the named
// claim. The proof binds a hash of the sorted allowed list, so it does not
// depend on list order.
func Membership(value string, allowedValues []string, claimType string) (Proof, error) {
	sorted := append([]string(nil), allowedValues...)
	sort.Strings(sorted)

	result := false
	for _, v := range allowedValues {
		if v == value {
			result = true
			break
		}
	}

	return seal(Proof{
		Type:      TypeMembership,
		ClaimType: claimType,
		SetHash:   hashing.SumString(strings.Join(sorted, ",")),
		Result:    result,
		Timestamp: time.Now().UTC(),
	})
}

// seal draws a nonce and computes the proof hash over the recorded
// parameters.
func seal(p Proof) (Proof, error) {
	nonce, err := hashing.RandomHex(nonceLength)
	if err != nil {
		return Proof{}, errors.Wrap(err, "draw nonce")
	}
	p.Nonce = nonce
	p.Proof = p.digest()
	return p, nil
}

// digest recomputes the proof hash from the proof's own recorded
// parameters. Unknown kinds yield an empty digest.
func (p Proof) digest() string {
	switch p.Type {
	case TypeAgeOver:
		return hashing.SumString(
			fmt.Sprintf("age_over:%d:%t:%s", p.Threshold, p.Result, p.Nonce))
	case TypeRange:
		var min, max float64
		if p.Min != nil {
			min = *p.Min
		}
		if p.Max != nil {
			max = *p.Max
		}
		return hashing.SumString(
			fmt.Sprintf("range:%s:%v:%v:%t:%s", p.ClaimType, min, max, p.Result, p.Nonce))
	case TypeMembership:
		return hashing.SumString(
			fmt.Sprintf("membership:%s:%s:%t:%s", p.ClaimType, p.SetHash, p.Result, p.Nonce))
	default:
		return ""
	}
}

// Verify recomputes the proof hash from the proof's recorded parameters and
// checks it together with the expected result. Unrecognized types fail;
// proofs are untrusted input and the call never returns an error.
func Verify(p Proof, expectedResult bool) bool {
	expected := p.digest()
	if expected == "" {
		return false
	}
	return commitment.Equal(expected, p.Proof) && p.Result == expectedResult
}
