package types

import (
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
)

// PubkeySize 是 Solana 地址的固定字节长度
const PubkeySize = 32

type Pubkey [PubkeySize]byte

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// Hex 返回小写十六进制编码，解码输出中的地址统一使用该格式
func (p Pubkey) Hex() string {
	return hex.EncodeToString(p[:])
}

// TryPubkeyFromBase58 解析 base58 字符串为 Pubkey，失败时返回 error（用于不信任输入路径）
func TryPubkeyFromBase58(s string) (Pubkey, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("failed to decode base58 pubkey %q: %w", s, err)
	}
	return pubkeyFromBytes(data, s)
}

// TryPubkeyFromHex 解析 64 位十六进制字符串为 Pubkey
func TryPubkeyFromHex(s string) (Pubkey, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("failed to decode hex pubkey %q: %w", s, err)
	}
	return pubkeyFromBytes(data, s)
}

// ParsePubkey 同时接受两种写法：
//   - 64 个字符且为合法十六进制 → 按 hex 解析（与解码输出格式一致）；
//   - 其他 → 按 base58 解析（链上常用写法）。
func ParsePubkey(s string) (Pubkey, error) {
	if len(s) == hex.EncodedLen(PubkeySize) {
		if p, err := TryPubkeyFromHex(s); err == nil {
			return p, nil
		}
	}
	return TryPubkeyFromBase58(s)
}

func PubkeyFromBase58(s string) Pubkey {
	p, err := TryPubkeyFromBase58(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PubkeyFromBytes 拷贝 32 字节为 Pubkey，长度不符时 panic（仅用于已校验长度的路径）
func PubkeyFromBytes(b []byte) Pubkey {
	var p Pubkey
	if len(b) != PubkeySize {
		panic(fmt.Errorf("invalid pubkey length: got %d, want %d", len(b), PubkeySize))
	}
	copy(p[:], b)
	return p
}

func pubkeyFromBytes(data []byte, input string) (Pubkey, error) {
	if len(data) != PubkeySize {
		return Pubkey{}, fmt.Errorf("invalid pubkey length: got %d, want %d, input=%q", len(data), PubkeySize, input)
	}
	var p Pubkey
	copy(p[:], data)
	return p, nil
}
