package utils

import (
	"encoding/binary"
	"fmt"

	"google.golang.org/protobuf/proto"
)

// EventTypeSize 是事件类型前缀的字节数
const EventTypeSize = 4

// EncodeEvent 将 protobuf 消息编码为带事件类型前缀的二进制数据：
// - 前 4 字节为事件类型（uint32，小端序）
// - 后续为 protobuf 序列化数据（Deterministic，便于下游去重）
func EncodeEvent(eventType uint32, msg proto.Message) ([]byte, error) {
	const extraBuffer = 32

	buf := make([]byte, EventTypeSize, EventTypeSize+proto.Size(msg)+extraBuffer)
	binary.LittleEndian.PutUint32(buf, eventType)

	opts := proto.MarshalOptions{Deterministic: true}
	result, err := opts.MarshalAppend(buf, msg)
	if err != nil {
		return nil, fmt.Errorf("EncodeEvent: marshal %T: %w", msg, err)
	}
	// MarshalAppend 扩容时会拷贝已有前缀，result[:4] 始终有效
	return result, nil
}

// DecodeEvent 是 EncodeEvent 的逆操作，把 payload 反序列化到 msg 中并返回事件类型
func DecodeEvent(data []byte, msg proto.Message) (uint32, error) {
	if len(data) < EventTypeSize {
		return 0, fmt.Errorf("DecodeEvent: %d bytes, want at least %d", len(data), EventTypeSize)
	}
	eventType := binary.LittleEndian.Uint32(data[:EventTypeSize])
	if err := proto.Unmarshal(data[EventTypeSize:], msg); err != nil {
		return eventType, fmt.Errorf("DecodeEvent: unmarshal %T: %w", msg, err)
	}
	return eventType, nil
}
