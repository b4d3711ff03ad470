package auth

import (
	"hash/fnv"

	"github.com/speps/go-hashids/v2"
)

const tripcodeSalt = "triplog-tripcode"

// Tripcode derives a short stable signature for an anonymous author from
// their session seed. The same seed always yields the same code, so a
// poster stays recognizable within a session without an account.
func Tripcode(seed string) string {
	hd := hashids.NewData()
	hd.Salt = tripcodeSalt
	hd.MinLength = 8

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return "Anonymous"
	}

	sum := fnv.New64a()
	sum.Write([]byte(seed))
	v := sum.Sum64()

	code, err := h.Encode([]int{int(v >> 33), int(v & 0x1ffffffff)})
	if err != nil {
		return "Anonymous"
	}
	return "!" + code
}
