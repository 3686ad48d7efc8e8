package ledger

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// certificateDigest derives the fixed-width certificate identifier from the
// immutable content plus the issuance nonce. The nonce is what keeps two
// issuances with identical content from colliding. Fields are length-prefixed
// so ("ab","c") and ("a","bc") cannot hash alike.
func certificateDigest(recipientName, eventName, issueDate, issuer string, nonce uint64) string {
	h := sha256.New()
	for _, field := range []string{recipientName, eventName, issueDate, issuer} {
		var l [8]byte
		binary.BigEndian.PutUint64(l[:], uint64(len(field)))
		h.Write(l[:])
		h.Write([]byte(field))
	}
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], nonce)
	h.Write(n[:])
	return "0x" + hex.EncodeToString(h.Sum(nil))
}
