// Package merkle builds dense binary hash trees over claim commitments and
// derives the inclusion proofs selective disclosure rests on.
//
// Parent nodes hash the sorted concatenation of their children, so the same
// leaf set always yields the same root no matter which side a sibling sat
// on. Odd-sized layers duplicate and rehash their trailing node; proofs
// generated under the alternative promote-unmodified convention are not
// interchangeable with this one.
package merkle

import (
	"encoding/json"
	"sort"

	"github.com/pkg/errors"

	"github.com/veridoc/go-disclosure/commitment"
	"github.com/veridoc/go-disclosure/hashing"
)

const (
	leafPrefix = "leaf:"
	nodePrefix = "node:"
)

// Sibling positions recorded in proof steps, relative to the leaf path
// before sorted concatenation is applied. Verification does not need them;
// they stay on the wire for debuggability.
const (
	PositionLeft  = "left"
	PositionRight = "right"
)

var (
	// ErrNoLeaves is returned when building or constructing a tree with an
	// empty leaf set.
	ErrNoLeaves = errors.New("merkle tree has no leaves")
	// ErrNotBuilt is returned when roots or proofs are requested before Build.
	ErrNotBuilt = errors.New("merkle tree is not built")
	// ErrBuilt is returned when leaves are added after Build.
	ErrBuilt = errors.New("merkle tree is already built")
	// ErrUnknownClaim is returned when a proof is requested for a claim type
	// the tree has no leaf for.
	ErrUnknownClaim = errors.New("unknown claim type")
	// ErrDuplicateClaim is returned when two leaves share a claim type.
	ErrDuplicateClaim = errors.New("duplicate claim type")
)

// Leaf binds a claim type to its commitment and leaf hash.
type Leaf struct {
	ClaimType  string `json:"claimType"`
	Commitment string `json:"commitment"`
	Hash       string `json:"hash"`
}

// ProofStep is one level of an inclusion proof: the sibling hash and which
// side it sat on.
type ProofStep struct {
	Position string `json:"position"`
	Hash     string `json:"hash"`
}

// Proof lets a verifier recompute the root from a single leaf.
type Proof struct {
	ClaimType string      `json:"claimType"`
	LeafHash  string      `json:"leafHash"`
	Proof     []ProofStep `json:"proof"`
	Root      string      `json:"root"`
}

// Tree is a dense binary hash tree over claim commitments. It is mutable
// between AddLeaf and Build and read-only afterwards; a built tree is safe
// for concurrent readers.
type Tree struct {
	leaves []Leaf
	layers [][]string
	index  map[string]int
	hasher hashing.Hasher
}

// Option configures a Tree.
type Option func(*Tree)

// WithHasher replaces the default BLAKE3 hasher.
func WithHasher(h hashing.Hasher) Option {
	return func(t *Tree) {
		t.hasher = h
	}
}

// New returns an empty tree.
func New(opts ...Option) *Tree {
	t := &Tree{
		index:  make(map[string]int),
		hasher: hashing.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// FromCommitments is the canonical constructor: it sorts claim types
// lexicographically, adds one leaf per type, and builds. The resulting root
// does not depend on map iteration order.
func FromCommitments(commitments map[string]commitment.Commitment, opts ...Option) (*Tree, error) {
	if len(commitments) == 0 {
		return nil, ErrNoLeaves
	}

	claimTypes := make([]string, 0, len(commitments))
	for claimType := range commitments {
		claimTypes = append(claimTypes, claimType)
	}
	sort.Strings(claimTypes)

	t := New(opts...)
	for _, claimType := range claimTypes {
		if err := t.AddLeaf(claimType, commitments[claimType].Commitment); err != nil {
			return nil, err
		}
	}
	if err := t.Build(); err != nil {
		return nil, err
	}
	return t, nil
}

// LeafHash computes the hash of a leaf for the given commitment.
func LeafHash(h hashing.Hasher, commitmentHex string) string {
	return h.Sum([]byte(leafPrefix + commitmentHex))
}

// AddLeaf appends a leaf for the commitment and records its index.
func (t *Tree) AddLeaf(claimType, commitmentHex string) error {
	if t.built() {
		return ErrBuilt
	}
	if _, exists := t.index[claimType]; exists {
		return errors.Wrap(ErrDuplicateClaim, claimType)
	}

	t.index[claimType] = len(t.leaves)
	t.leaves = append(t.leaves, Leaf{
		ClaimType:  claimType,
		Commitment: commitmentHex,
		Hash:       LeafHash(t.hasher, commitmentHex),
	})
	return nil
}

// Build freezes the leaf set and computes all layers up to the root.
// Building with no leaves is a caller error.
func (t *Tree) Build() error {
	if t.built() {
		return ErrBuilt
	}
	if len(t.leaves) == 0 {
		return ErrNoLeaves
	}

	layer := make([]string, len(t.leaves))
	for i, leaf := range t.leaves {
		layer[i] = leaf.Hash
	}
	t.layers = append(t.layers, layer)

	for len(layer) > 1 {
		next := make([]string, 0, (len(layer)+1)/2)
		for i := 0; i < len(layer); i += 2 {
			right := layer[i]
			if i+1 < len(layer) {
				right = layer[i+1]
			}
			next = append(next, parentHash(t.hasher, layer[i], right))
		}
		t.layers = append(t.layers, next)
		layer = next
	}
	return nil
}

func (t *Tree) built() bool {
	return len(t.layers) > 0
}

// parentHash sorts the two child hashes before concatenation, making the
// parent independent of left/right order.
func parentHash(h hashing.Hasher, a, b string) string {
	if b < a {
		a, b = b, a
	}
	return h.Sum([]byte(nodePrefix + a + b))
}

// Root returns the root hash of a built tree.
func (t *Tree) Root() (string, error) {
	if !t.built() {
		return "", ErrNotBuilt
	}
	return t.layers[len(t.layers)-1][0], nil
}

// Leaves returns the leaves in tree order.
func (t *Tree) Leaves() []Leaf {
	return append([]Leaf(nil), t.leaves...)
}

// GenerateProof walks from the leaf for claimType up to the root, recording
// the sibling hash and its side at every level.
func (t *Tree) GenerateProof(claimType string) (Proof, error) {
	if !t.built() {
		return Proof{}, ErrNotBuilt
	}

	idx, ok := t.index[claimType]
	if !ok {
		return Proof{}, errors.Wrap(ErrUnknownClaim, claimType)
	}

	root, err := t.Root()
	if err != nil {
		return Proof{}, err
	}

	p := Proof{
		ClaimType: claimType,
		LeafHash:  t.leaves[idx].Hash,
		Proof:     []ProofStep{},
		Root:      root,
	}

	for _, layer := range t.layers[:len(t.layers)-1] {
		sibling := idx ^ 1
		position := PositionRight
		if sibling < idx {
			position = PositionLeft
		}
		if sibling >= len(layer) {
			// odd layer, the trailing node pairs with itself
			sibling = idx
		}
		p.Proof = append(p.Proof, ProofStep{Position: position, Hash: layer[sibling]})
		idx /= 2
	}
	return p, nil
}

// VerifyProof replays the proof path from leafHash with the default hasher
// and compares the result with expectedRoot.
func VerifyProof(leafHash string, steps []ProofStep, expectedRoot string) bool {
	return VerifyProofWithHasher(hashing.Default(), leafHash, steps, expectedRoot)
}

// VerifyProofWithHasher is VerifyProof with an explicit hasher. Malformed
// proofs fail to match; it never panics or returns an error, since proofs
// are untrusted input.
func VerifyProofWithHasher(h hashing.Hasher, leafHash string, steps []ProofStep, expectedRoot string) bool {
	if leafHash == "" || expectedRoot == "" {
		return false
	}
	current := leafHash
	for _, step := range steps {
		current = parentHash(h, current, step.Hash)
	}
	return current == expectedRoot
}

type treeJSON struct {
	Leaves []Leaf     `json:"leaves"`
	Layers [][]string `json:"layers"`
	Root   string     `json:"root"`
}

// MarshalJSON exports the ordered leaves and layers. The claimType index is
// derived state and never persisted.
func (t *Tree) MarshalJSON() ([]byte, error) {
	root := ""
	if t.built() {
		root = t.layers[len(t.layers)-1][0]
	}
	return json.Marshal(treeJSON{Leaves: t.leaves, Layers: t.layers, Root: root})
}

// UnmarshalJSON restores leaves and layers exactly and rebuilds the
// claimType index from leaf order, keeping the two consistent by
// construction.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var tj treeJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return errors.Wrap(err, "decode merkle tree")
	}

	t.leaves = tj.Leaves
	t.layers = tj.Layers
	if t.hasher == nil {
		t.hasher = hashing.Default()
	}
	t.index = make(map[string]int, len(tj.Leaves))
	for i, leaf := range tj.Leaves {
		t.index[leaf.ClaimType] = i
	}
	return nil
}
