package utils

import (
	"encoding/hex"
	"sort"
	"strings"

	"golang.org/x/crypto/sha3"
)

// HashMembers returns the provider's identifier for a set of members: the hex
// SHA3-256 of the sorted ids concatenated without separator.
func HashMembers(ids []string) string {
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)
	sum := sha3.Sum256([]byte(strings.Join(sorted, "")))
	return hex.EncodeToString(sum[:])
}
