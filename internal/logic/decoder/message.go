package decoder

import (
	"fmt"

	"github.com/albi84/solana-message-parser/internal/logic/core"
	"github.com/albi84/solana-message-parser/internal/logic/wire"
	"github.com/albi84/solana-message-parser/internal/types"
)

// DecodeMessage 解码一条完整的消息（不含签名列表），返回结果与消费的字节数。
// 顺序固定：消息头 → 账户地址表 → recent blockhash → 指令列表。
// 消息之后的多余字节不会被读取，调用方可根据返回的字节数判断。
func (d *Decoder) DecodeMessage(buf []byte) (*core.DecodedMessage, int, error) {
	c := wire.NewCursor(buf)
	msg := &core.DecodedMessage{}

	// 1. 消息头
	required, readonly, notRequired, err := c.ReadHeader()
	if err != nil {
		return nil, 0, fmt.Errorf("header: %w", err)
	}
	msg.Header = core.MessageHeader{
		Required:    required,
		Readonly:    readonly,
		NotRequired: notRequired,
	}

	// 2. 账户地址表
	addresses, err := readAddressTable(c)
	if err != nil {
		return nil, 0, fmt.Errorf("account addresses: %w", err)
	}
	msg.AccountAddresses = core.AccountAddresses{
		Count:     len(addresses),
		Addresses: make([]string, 0, len(addresses)),
	}
	for _, addr := range addresses {
		msg.AccountAddresses.Addresses = append(msg.AccountAddresses.Addresses, addr.Hex())
	}

	// 3. recent blockhash
	blockhash, err := c.ReadFixedHex(types.HashSize)
	if err != nil {
		return nil, 0, fmt.Errorf("recent blockhash: %w", err)
	}
	msg.RecentBlockhash = blockhash

	// 4. 指令列表
	count, err := c.ReadCompactU16()
	if err != nil {
		return nil, 0, fmt.Errorf("instruction count: %w", err)
	}
	msg.Instructions = core.Instructions{
		Count:        count,
		Instructions: make([]*core.Instruction, 0, min(count, c.Remaining())),
	}
	for i := 0; i < count; i++ {
		_, ix, err := d.DecodeCompiledInstruction(c, addresses)
		if err != nil {
			return nil, 0, fmt.Errorf("instruction #%d: %w", i, err)
		}
		msg.Instructions.Instructions = append(msg.Instructions.Instructions, ix)
	}

	return msg, c.Pos(), nil
}

// readAddressTable 读取 compact-u16 数量 + 数量×32 字节地址
func readAddressTable(c *wire.Cursor) ([]types.Pubkey, error) {
	count, err := c.ReadCompactU16()
	if err != nil {
		return nil, err
	}
	raw, err := c.ReadBytes(count * types.PubkeySize)
	if err != nil {
		return nil, fmt.Errorf("declared %d addresses: %w", count, err)
	}
	addresses := make([]types.Pubkey, count)
	for i := range addresses {
		copy(addresses[i][:], raw[i*types.PubkeySize:])
	}
	return addresses, nil
}
