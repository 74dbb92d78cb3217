package dispatcher

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/albi84/solana-message-parser/internal/consts"
	"github.com/albi84/solana-message-parser/internal/logic/core"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// messageToStruct 把解码结果转为 structpb.Struct，字段名与 JSON 输出一致
func messageToStruct(source string, msg *core.DecodedMessage) (*structpb.Struct, error) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal decoded message: %w", err)
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, s); err != nil {
		return nil, fmt.Errorf("convert decoded message: %w", err)
	}
	s.Fields["source"] = structpb.NewStringValue(source)
	return s, nil
}

// buildBatchProto 封装一个分区内的全部消息
func buildBatchProto(messages []*structpb.Value) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"version":  structpb.NewNumberValue(consts.PayloadVersion),
		"chain_id": structpb.NewNumberValue(float64(consts.ChainIDSolana)),
		"messages": structpb.NewListValue(&structpb.ListValue{Values: messages}),
	}}
}

// partitionKey 取 recent blockhash 原始字节作为分区依据，解析失败时返回 nil（落在 0 号分区）
func partitionKey(msg *core.DecodedMessage) []byte {
	b, err := hex.DecodeString(msg.RecentBlockhash)
	if err != nil {
		return nil
	}
	return b
}
