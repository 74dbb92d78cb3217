package core

// MessageHeader 表示消息头中的三个账户计数，仅作诊断输出，不参与地址表划分。
type MessageHeader struct {
	Required    uint8 `json:"required" yaml:"required"`       // 需要签名的账户数
	Readonly    uint8 `json:"readonly" yaml:"readonly"`       // 只读且签名的账户数
	NotRequired uint8 `json:"notrequired" yaml:"notrequired"` // 只读且无需签名的账户数
}

// AccountAddresses 表示账户地址表，Addresses 顺序与链上一致（后续按下标引用）。
type AccountAddresses struct {
	Count     int      `json:"count" yaml:"count"`
	Addresses []string `json:"addresses" yaml:"addresses"` // 小写 hex
}

// Parameter 表示一条已解码参数：名称、类型名、值。
type Parameter struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	Value Value  `json:"value" yaml:"value"`
}

// Instruction 表示一条已解码指令。
// Accounts 只有在开启 include_accounts 时才会填充，默认输出格式不包含该字段。
type Instruction struct {
	Name       string       `json:"name" yaml:"name"`
	Parameters []*Parameter `json:"parameters" yaml:"parameters"`
	Program    string       `json:"program" yaml:"program"` // "<name> (<id>)"
	Accounts   []string     `json:"accounts,omitempty" yaml:"accounts,omitempty"`
}

// Instructions 表示指令列表
type Instructions struct {
	Count        int            `json:"count" yaml:"count"`
	Instructions []*Instruction `json:"instructions" yaml:"instructions"`
}

// DecodedMessage 是一次消息解码的最终结果，构造完成后只读。
type DecodedMessage struct {
	Header           MessageHeader    `json:"header" yaml:"header"`
	AccountAddresses AccountAddresses `json:"account_addresses" yaml:"account_addresses"`
	RecentBlockhash  string           `json:"recent_blockhash" yaml:"recent_blockhash"` // 小写 hex
	Instructions     Instructions     `json:"instructions" yaml:"instructions"`
}
