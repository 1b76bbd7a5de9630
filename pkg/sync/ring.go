package sync

import (
	"encoding/binary"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/spaolacci/murmur3"
)

// ring maps an arbitrary key space onto a fixed set of stripe indices using
// consistent hashing. Each stripe is placed on the ring at multiple points so
// the key space spreads evenly.
type ring struct {
	points *treemap.Map

	// firstStripe caches the lowest entry so lookups that wrap around the
	// ring avoid the O(log n) Min call.
	firstStripe interface{}
}

func newRing(stripes uint, pointsPerStripe uint) *ring {
	points := treemap.NewWith(utils.Int64Comparator)

	seed := make([]byte, 4)
	for stripe := 0; stripe < int(stripes); stripe++ {
		binary.LittleEndian.PutUint32(seed, uint32(stripe))
		base, _ := murmur3.Sum128(seed)

		point := make([]byte, 12)
		binary.LittleEndian.PutUint64(point, base)
		for i := 0; i < int(pointsPerStripe); i++ {
			binary.LittleEndian.PutUint32(point[8:], uint32(i))
			hash, _ := murmur3.Sum128(point)
			points.Put(int64(hash), stripe)
		}
	}

	_, firstStripe := points.Min()

	return &ring{
		points:      points,
		firstStripe: firstStripe,
	}
}

// locate returns the stripe index owning the key. The same key always maps
// to the same stripe.
func (r *ring) locate(key []byte) int {
	raw, _ := murmur3.Sum128(key)
	_, stripe := r.points.Ceiling(int64(raw))
	if stripe == nil {
		stripe = r.firstStripe
	}
	return stripe.(int)
}
