package kitchen

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"

	"pixelcooked.dev/internal/sim/kitchen/logic/geom"
)

// stateDigest hashes everything that can change during a round. Two kitchens built from the
// same config and fed the same inputs produce the same digest at every tick.
func (k *Kitchen) stateDigest(nowTick uint64) string {
	h := sha256.New()
	var tmp [8]byte

	digestWriteU64(h, &tmp, nowTick)
	digestWriteI64(h, &tmp, int64(k.remainingMs))
	digestWriteI64(h, &tmp, int64(k.score))
	digestWriteI64(h, &tmp, int64(k.delivered))
	h.Write([]byte{boolByte(k.over)})

	for _, s := range k.stations {
		digestWriteU64(h, &tmp, uint64(s.ID))
		h.Write([]byte{byte(s.Kind)})
		digestWriteU64(h, &tmp, uint64(s.Held))
		digestWriteI64(h, &tmp, int64(s.TimerMs))
	}
	for _, p := range k.players {
		digestWriteI64(h, &tmp, int64(p.ID))
		digestWriteBox(h, &tmp, p.Box)
		h.Write([]byte{byte(p.Facing), boolByte(p.Interact)})
		digestWriteU64(h, &tmp, math.Float64bits(p.VX))
		digestWriteU64(h, &tmp, math.Float64bits(p.VY))
		digestWriteU64(h, &tmp, uint64(p.Carrying))
	}
	digestWriteU64(h, &tmp, uint64(k.items.len()))
	for _, id := range k.items.ids() {
		it := k.items.byID[id]
		digestWriteU64(h, &tmp, uint64(it.ID))
		digestWriteString(h, &tmp, it.Ingredient)
		digestWriteBox(h, &tmp, it.Box)
		digestWriteI64(h, &tmp, int64(it.Carrier))
	}
	for _, o := range k.orders {
		digestWriteString(h, &tmp, o.Name)
	}
	for _, n := range k.stock {
		digestWriteI64(h, &tmp, int64(n))
	}

	return hex.EncodeToString(h.Sum(nil))
}

func digestWriteU64(h hash.Hash, tmp *[8]byte, v uint64) {
	binary.LittleEndian.PutUint64(tmp[:], v)
	h.Write(tmp[:])
}

func digestWriteI64(h hash.Hash, tmp *[8]byte, v int64) {
	digestWriteU64(h, tmp, uint64(v))
}

func digestWriteString(h hash.Hash, tmp *[8]byte, s string) {
	digestWriteU64(h, tmp, uint64(len(s)))
	h.Write([]byte(s))
}

func digestWriteBox(h hash.Hash, tmp *[8]byte, b geom.Box) {
	for _, v := range b.Array() {
		digestWriteU64(h, tmp, math.Float64bits(v))
	}
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
