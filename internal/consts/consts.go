package consts

import "runtime"

const (
	ChainIDSolana uint32 = 100000

	// EventTypeDecodedMessage 是 Kafka 消息前缀中的事件类型，payload 为一批已解码消息
	EventTypeDecodedMessage uint32 = 1

	// PayloadVersion 是 Kafka payload 结构的版本号
	PayloadVersion = 1
)

// CpuCount 表示逻辑 CPU 核心数，用于控制并发任务调度上限
var CpuCount = runtime.NumCPU()
