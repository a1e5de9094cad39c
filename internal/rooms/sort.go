package rooms

import (
	"strings"

	"github.com/pssfleet/starbot/internal/entity"
)

// maxChainDepth caps the upgrade-chain walk. Real chains are ~15 levels deep;
// the cap only matters for corrupt data.
const maxChainDepth = 64

// SortKey orders rooms by their upgrade lineage: the key concatenates the
// zero-padded design IDs of all upgrade ancestors (root first) followed by the
// room's own ID. Rooms of one upgrade chain therefore sort base level first,
// and whole chains group together. The key depends only on snapshot content,
// never on query order.
func SortKey(r entity.Record, data *entity.Data) string {
	var b strings.Builder
	for _, id := range parentChain(r, data) {
		b.WriteString(pad4(id))
	}
	id, _ := r.String(KeyField)
	b.WriteString(pad4(id))
	return b.String()
}

// parentChain returns the upgrade ancestor IDs of r, root ancestor first.
// Broken references, cycles and over-deep chains end the walk early.
func parentChain(r entity.Record, data *entity.Data) []string {
	var chain []string
	seen := make(map[string]bool)
	cur := r
	for range maxChainDepth {
		parentID, _ := cur.String("UpgradeFromRoomDesignId")
		if parentID == "" || parentID == "0" || seen[parentID] {
			break
		}
		parent, ok := data.Get(parentID)
		if !ok {
			break
		}
		seen[parentID] = true
		chain = append(chain, parentID)
		cur = parent
	}
	// Collected child-to-root; the key wants root first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func pad4(id string) string {
	if len(id) >= 4 {
		return id
	}
	return strings.Repeat("0", 4-len(id)) + id
}
