package consts

import "github.com/albi84/solana-message-parser/internal/types"

// Base58 地址常量（可读性高，适合配置与日志使用）
const (
	SystemProgramStr          = "11111111111111111111111111111111"
	StakeProgramStr           = "Stake11111111111111111111111111111111111111"
	VoteProgramStr            = "Vote111111111111111111111111111111111111111"
	TokenProgramStr           = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	TokenProgram2022Str       = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"
	AssociatedTokenProgramStr = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	ComputeBudgetProgramIdStr = "ComputeBudget111111111111111111111111111111"
	MemoProgramStr            = "MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr"
)

var (
	// Programs
	SystemProgram          = types.PubkeyFromBase58(SystemProgramStr)
	StakeProgram           = types.PubkeyFromBase58(StakeProgramStr)
	VoteProgram            = types.PubkeyFromBase58(VoteProgramStr)
	TokenProgram           = types.PubkeyFromBase58(TokenProgramStr)
	TokenProgram2022       = types.PubkeyFromBase58(TokenProgram2022Str)
	AssociatedTokenProgram = types.PubkeyFromBase58(AssociatedTokenProgramStr)
	ComputeBudgetProgram   = types.PubkeyFromBase58(ComputeBudgetProgramIdStr)
	MemoProgram            = types.PubkeyFromBase58(MemoProgramStr)
)

// NativePrograms 是常见的原生/SPL 程序，启动时用于提示目录中缺失的程序
var NativePrograms = map[types.Pubkey]string{
	SystemProgram:          "System Program",
	StakeProgram:           "Stake Program",
	VoteProgram:            "Vote Program",
	TokenProgram:           "Token Program",
	TokenProgram2022:       "Token-2022 Program",
	AssociatedTokenProgram: "Associated Token Program",
	ComputeBudgetProgram:   "Compute Budget Program",
	MemoProgram:            "Memo Program",
}
