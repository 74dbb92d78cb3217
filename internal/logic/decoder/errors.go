package decoder

import (
	"errors"

	"github.com/albi84/solana-message-parser/internal/logic/wire"
)

// 解码错误分类。所有错误都会中止整条消息的解码，调用方通过 errors.Is 判断类别。
var (
	ErrTruncatedInput      = wire.ErrTruncatedInput
	ErrTypeNotFound        = errors.New("type not found")
	ErrProgramNotFound     = errors.New("program not found")
	ErrInstructionNotFound = errors.New("instruction not found")
	ErrUnsupportedFamily   = errors.New("unsupported family")
	ErrSchemaCorruption    = errors.New("schema corruption")
	ErrIndexOutOfRange     = errors.New("account index out of range")
)
