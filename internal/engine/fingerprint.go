package engine

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/DioGolang/GoNearby/internal/domain/entity"
)

// Fingerprint computes a cheap structural hash of a roster. Each snapshot
// is hashed independently and the per-entry hashes are folded with XOR, so
// the result is insensitive to roster order but sensitive to membership and
// to every tracked field. Used by the recalculation policy to answer "did
// anything change" without a full diff.
func Fingerprint(roster []entity.FriendSnapshot) uint64 {
	var fold uint64
	var buf [8]byte
	for i := range roster {
		f := &roster[i]
		d := xxhash.New()
		_, _ = d.WriteString(f.ID)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(f.DisplayName)
		_, _ = d.Write([]byte{0})
		if f.Coordinate != nil {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f.Coordinate.Latitude))
			_, _ = d.Write(buf[:])
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f.Coordinate.Longitude))
			_, _ = d.Write(buf[:])
		} else {
			_, _ = d.Write([]byte{0xff})
		}
		if f.IsOnline {
			_, _ = d.Write([]byte{1})
		} else {
			_, _ = d.Write([]byte{0})
		}
		binary.LittleEndian.PutUint64(buf[:], uint64(f.LastActiveAtMillis))
		_, _ = d.Write(buf[:])
		fold ^= d.Sum64()
	}
	// Mix in the size so an empty roster and a self-cancelling pair of
	// duplicates cannot collide with each other.
	binary.LittleEndian.PutUint64(buf[:], uint64(len(roster)))
	return fold ^ xxhash.Sum64(buf[:])
}
