package types

import (
	"encoding/hex"

	"github.com/mr-tron/base58"
)

// HashSize 是 blockhash 的固定字节长度
const HashSize = 32

type Hash [HashSize]byte

func (h Hash) String() string {
	return base58.Encode(h[:])
}

func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}
