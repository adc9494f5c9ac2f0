package storage

import (
	"cmp"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"slices"

	"golang.org/x/crypto/blake2b"

	"nestquiz/local-app/internal/model"
)

// Checksum returns the BLAKE2b-256 digest of a snapshot in hex. The digest does not
// depend on the order of nodes in the slice, nor on nil versus empty option lists.
func Checksum(nodes []model.FlatNode) (string, error) {
	canonical := make([]model.FlatNode, len(nodes))
	for i, n := range nodes {
		if n.Options == nil {
			n.Options = []model.Option{}
		}
		canonical[i] = n
	}
	slices.SortFunc(canonical, func(a, b model.FlatNode) int {
		if c := cmp.Compare(a.Left, b.Left); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	data, err := json.Marshal(canonical)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// VerifyChecksum compares a snapshot against an expected digest.
func VerifyChecksum(nodes []model.FlatNode, expected string) error {
	actual, err := Checksum(nodes)
	if err != nil {
		return err
	}
	if actual != expected {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksumMismatch, expected, actual)
	}
	return nil
}
