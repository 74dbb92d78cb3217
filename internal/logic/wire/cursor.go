package wire

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/near/borsh-go"
)

// ErrTruncatedInput 表示剩余字节不足以读取当前字段
var ErrTruncatedInput = errors.New("truncated input")

const (
	HeaderSize       = 3 // 消息头：required / readonly / notrequired 三个字节
	StringLengthSize = 4 // 字符串长度前缀（u32 小端）
	InstructionIDLen = 4 // 指令 ID 前缀（u32 小端）

	compactContinue = 0x80
	compactMask     = 0x7f
)

// Cursor 是输入缓冲区上的只读游标。
// 所有读取方法在成功时推进 pos，失败时不移动 pos，且从不修改底层 buf。
// Cursor 不是并发安全的，每次顶层解码应创建独立的 Cursor。
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor 基于 buf 创建游标，起始位置为 0
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos 返回当前读取位置（即已消费的字节数）
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining 返回尚未读取的字节数
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Rewind 将游标退回到之前通过 Pos 记录的位置。
// 只允许回退，不允许跳到未读区域。
func (c *Cursor) Rewind(mark int) {
	if mark < 0 || mark > c.pos {
		panic(fmt.Sprintf("wire: invalid rewind mark %d (pos=%d)", mark, c.pos))
	}
	c.pos = mark
}

// need 校验剩余字节是否 >= n
func (c *Cursor) need(n int, what string) error {
	if n < 0 || c.Remaining() < n {
		return fmt.Errorf("%w: %s needs %d bytes at offset %d, %d remaining",
			ErrTruncatedInput, what, n, c.pos, c.Remaining())
	}
	return nil
}

// ReadByte 读取单个字节
func (c *Cursor) ReadByte() (byte, error) {
	if err := c.need(1, "byte"); err != nil {
		return 0, err
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// ReadBytes 读取 n 个字节，返回底层缓冲区的子切片（调用方不得修改）
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n, "byte span"); err != nil {
		return nil, err
	}
	out := c.buf[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return out, nil
}

// ReadHeader 读取 3 字节消息头
func (c *Cursor) ReadHeader() (required, readonly, notRequired uint8, err error) {
	if err = c.need(HeaderSize, "message header"); err != nil {
		return 0, 0, 0, err
	}
	required, readonly, notRequired = c.buf[c.pos], c.buf[c.pos+1], c.buf[c.pos+2]
	c.pos += HeaderSize
	return required, readonly, notRequired, nil
}

// ReadCompactU16 读取 1~3 字节的 compact-u16。
//
// 注意：这不是标准 shortvec，各字节不做拼接：
//   - 第 1 字节最高位为 0：value = b0 & 0x7f，消费 1 字节；
//   - 第 2 字节最高位为 0：value = (b1 & 0x7f) << 7，消费 2 字节，b0 的低 7 位被丢弃；
//   - 否则：value = (b2 & 0x7f) << 14，消费 3 字节，不再检查 b2 的最高位。
//
// 例如 [0x80, 0x01] 解码为 128，而标准 shortvec 同样得到 128；
// 但 [0x81, 0x01] 在这里仍为 128，标准 shortvec 为 129。
func (c *Cursor) ReadCompactU16() (int, error) {
	if err := c.need(1, "compact-u16"); err != nil {
		return 0, err
	}
	b0 := c.buf[c.pos]
	if b0&compactContinue == 0 {
		c.pos++
		return int(b0 & compactMask), nil
	}

	if err := c.need(2, "compact-u16"); err != nil {
		return 0, err
	}
	b1 := c.buf[c.pos+1]
	if b1&compactContinue == 0 {
		c.pos += 2
		return int(b1&compactMask) << 7, nil
	}

	if err := c.need(3, "compact-u16"); err != nil {
		return 0, err
	}
	b2 := c.buf[c.pos+2]
	c.pos += 3
	return int(b2&compactMask) << 14, nil
}

// ReadFixedHex 读取 n 字节并按原顺序输出小写十六进制（用于 Pubkey / Hash）
func (c *Cursor) ReadFixedHex(n int) (string, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// ReadReversedHex 读取 width 字节的小端整数，输出字节逆序后的十六进制字符串。
// 例如 [0x01,0x02,0x03,0x04] → "04030201"，输出不是算术整数，下游依赖这一表示。
func (c *Cursor) ReadReversedHex(width int) (string, error) {
	b, err := c.ReadBytes(width)
	if err != nil {
		return "", err
	}
	reversed := make([]byte, width)
	for i, v := range b {
		reversed[width-1-i] = v
	}
	return hex.EncodeToString(reversed), nil
}

// ReadU32LE 读取 4 字节小端无符号整数（指令 ID 使用该格式）
func (c *Cursor) ReadU32LE() (uint32, error) {
	if err := c.need(InstructionIDLen, "u32"); err != nil {
		return 0, err
	}
	var v uint32
	if err := borsh.Deserialize(&v, c.buf[c.pos:c.pos+InstructionIDLen]); err != nil {
		return 0, fmt.Errorf("decode u32 at offset %d: %w", c.pos, err)
	}
	c.pos += InstructionIDLen
	return v, nil
}

// ReadLengthPrefixedString 读取 u32 小端长度前缀 + 对应字节数的字符串。
// 每个字节直接映射为同值的 Unicode 码点（不做 UTF-8 解码），消费 4 + length 字节。
// 长度与内容任一不足时整体失败，游标不移动。
func (c *Cursor) ReadLengthPrefixedString() (string, error) {
	start := c.pos
	length, err := c.ReadU32LE()
	if err != nil {
		return "", err
	}
	if rem := c.Remaining(); uint64(length) > uint64(rem) {
		c.pos = start
		return "", fmt.Errorf("%w: string of %d bytes at offset %d, %d remaining",
			ErrTruncatedInput, length, start+StringLengthSize, rem)
	}
	raw := c.buf[c.pos : c.pos+int(length)]
	c.pos += int(length)

	var sb strings.Builder
	sb.Grow(len(raw))
	for _, b := range raw {
		sb.WriteRune(rune(b))
	}
	return sb.String(), nil
}
