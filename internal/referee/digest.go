package referee

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// RevealDigest computes the commit digest for one side's setup placement.
// It is a deterministic function of (side, nonce, placements sorted by
// piece_id): the reference implementation uses 64-bit FNV-1a over the
// textual serialization "side|nonce|{pieceId|x|y|}*"; here the same
// canonical serialization is hashed with 64-bit xxHash instead, rendered as
// 16 lowercase hex digits. Any symmetric substitute is acceptable as long as
// commit and reveal both call this function.
func RevealDigest(side Side, nonce string, placements []SetupPlacement) string {
	sorted := make([]SetupPlacement, len(placements))
	copy(sorted, placements)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PieceID < sorted[j].PieceID })

	var b strings.Builder
	fmt.Fprintf(&b, "%d|%s|", side, nonce)
	for _, pl := range sorted {
		fmt.Fprintf(&b, "%d|%d|%d|", pl.PieceID, pl.Target.X, pl.Target.Y)
	}
	sum := xxhash.Sum64String(b.String())
	return fmt.Sprintf("%016x", sum)
}
