package decoder

import (
	"github.com/albi84/solana-message-parser/internal/catalog"
)

// DefaultMaxDepth 是 struct 嵌套的默认上限，超过即视为目录存在循环引用
const DefaultMaxDepth = 64

// Option 是解码器配置
type Option struct {
	MaxDepth        int  // struct 嵌套上限，<= 0 时使用 DefaultMaxDepth
	IncludeAccounts bool // 是否在指令结果中附带账户地址列表
}

// Decoder 基于只读目录解码消息。
// 内部不保存任何解码过程中的状态，可被多个 goroutine 同时用于不同的缓冲区。
type Decoder struct {
	catalog *catalog.Catalog
	opt     Option
}

// New 创建解码器
func New(c *catalog.Catalog, opt Option) *Decoder {
	if opt.MaxDepth <= 0 {
		opt.MaxDepth = DefaultMaxDepth
	}
	return &Decoder{catalog: c, opt: opt}
}
