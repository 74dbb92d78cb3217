package decoder

import (
	"fmt"

	"github.com/albi84/solana-message-parser/internal/catalog"
	"github.com/albi84/solana-message-parser/internal/logic/core"
	"github.com/albi84/solana-message-parser/internal/logic/wire"
	"github.com/albi84/solana-message-parser/internal/types"
)

// DecodeInstruction 按指令定义依次解码参数。
// data 为去掉 4 字节指令 ID 之后的指令数据，参数之后多余的字节会被忽略。
func (d *Decoder) DecodeInstruction(data []byte, def *catalog.InstructionDef) (*core.Instruction, error) {
	c := wire.NewCursor(data)
	params := make([]*core.Parameter, 0, len(def.Params))
	for _, p := range def.Params {
		_, v, err := d.DecodeParameter(c, p.Type)
		if err != nil {
			return nil, fmt.Errorf("instruction %s, parameter %s: %w", def.Name, p.Name, err)
		}
		params = append(params, &core.Parameter{Name: p.Name, Type: p.Type, Value: v})
	}
	return &core.Instruction{
		Name:       def.Name,
		Parameters: params,
	}, nil
}

// DecodeCompiledInstruction 从游标处读取一条 compiled instruction 并解码。
//
// 线上布局：
//
//	[program index: u8] [account count: compact-u16] [account index: u8 ...]
//	[data length: compact-u16] [data: instruction id (u32 LE) + parameters]
//
// 外层游标只前进到 data 末尾，参数解析在 data 子切片内完成。
// 失败时游标回到调用前的位置。
func (d *Decoder) DecodeCompiledInstruction(c *wire.Cursor, addresses []types.Pubkey) (int, *core.Instruction, error) {
	start := c.Pos()
	ix, err := d.decodeCompiledInstruction(c, addresses)
	if err != nil {
		c.Rewind(start)
		return 0, nil, err
	}
	return c.Pos() - start, ix, nil
}

func (d *Decoder) decodeCompiledInstruction(c *wire.Cursor, addresses []types.Pubkey) (*core.Instruction, error) {
	// 1. 程序地址下标 → 程序定义
	programIndex, err := c.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("program index: %w", err)
	}
	programAddr, err := resolveAddress(addresses, programIndex)
	if err != nil {
		return nil, fmt.Errorf("program index: %w", err)
	}
	program, ok := d.catalog.Program(programAddr)
	if !ok {
		return nil, fmt.Errorf("%w: %s (%s)", ErrProgramNotFound, programAddr.Hex(), programAddr)
	}

	// 2. 账户下标列表
	accountCount, err := c.ReadCompactU16()
	if err != nil {
		return nil, fmt.Errorf("account count: %w", err)
	}
	indexes, err := c.ReadBytes(accountCount)
	if err != nil {
		return nil, fmt.Errorf("account indexes: %w", err)
	}
	accounts := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		addr, err := resolveAddress(addresses, idx)
		if err != nil {
			return nil, fmt.Errorf("accounts of %s: %w", program.Name, err)
		}
		accounts = append(accounts, addr.Hex())
	}

	// 3. 指令数据
	dataLen, err := c.ReadCompactU16()
	if err != nil {
		return nil, fmt.Errorf("instruction data length: %w", err)
	}
	data, err := c.ReadBytes(dataLen)
	if err != nil {
		return nil, fmt.Errorf("instruction data: %w", err)
	}

	// 4. 指令 ID → 指令定义
	dc := wire.NewCursor(data)
	instructionID, err := dc.ReadU32LE()
	if err != nil {
		return nil, fmt.Errorf("instruction id of %s: %w", program.Name, err)
	}
	def, ok := program.Instruction(instructionID)
	if !ok {
		return nil, fmt.Errorf("%w: id %d in %s", ErrInstructionNotFound, instructionID, program.Label())
	}

	// 5. 参数
	ix, err := d.DecodeInstruction(data[wire.InstructionIDLen:], def)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", program.Label(), err)
	}

	// 6. 程序展示名
	ix.Program = program.Label()
	if d.opt.IncludeAccounts {
		ix.Accounts = accounts
	}
	return ix, nil
}

// resolveAddress 按下标取账户地址，越界返回 ErrIndexOutOfRange
func resolveAddress(addresses []types.Pubkey, index uint8) (types.Pubkey, error) {
	if int(index) >= len(addresses) {
		return types.Pubkey{}, fmt.Errorf("%w: index %d, table size %d", ErrIndexOutOfRange, index, len(addresses))
	}
	return addresses[index], nil
}
