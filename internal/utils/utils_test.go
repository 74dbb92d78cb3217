package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestEncodeDecodeEvent(t *testing.T) {
	msg, err := structpb.NewStruct(map[string]interface{}{
		"recent_blockhash": "ab",
		"count":            2,
	})
	require.NoError(t, err)

	data, err := EncodeEvent(7, msg)
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 0, 0, 0}, data[:EventTypeSize])

	var got structpb.Struct
	eventType, err := DecodeEvent(data, &got)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), eventType)
	assert.Equal(t, "ab", got.Fields["recent_blockhash"].GetStringValue())
	assert.Equal(t, float64(2), got.Fields["count"].GetNumberValue())

	// 相同输入编码结果一致
	again, err := EncodeEvent(7, msg)
	require.NoError(t, err)
	assert.Equal(t, data, again)

	_, err = DecodeEvent([]byte{1, 2}, &got)
	assert.Error(t, err)
}

func TestPartitionHashBytes(t *testing.T) {
	b := bytes.Repeat([]byte{0}, 32)
	b[7], b[15], b[19], b[27] = 0x01, 0x02, 0x03, 0x05

	assert.Equal(t, uint32(0), PartitionHashBytes(b[:27], 4), "长度不足")
	assert.Equal(t, uint32(0), PartitionHashBytes(b, 1))
	assert.Equal(t, uint32(0), PartitionHashBytes(b, 0))
	assert.Equal(t, uint32(1), PartitionHashBytes(b, 4), "0x05 & 3")
	assert.Equal(t, uint32(0x01020305%3), PartitionHashBytes(b, 3))

	for mod := uint32(1); mod < 20; mod++ {
		assert.Less(t, PartitionHashBytes(b, mod), max(mod, 1))
	}
}

func TestCalcCapPerPartition(t *testing.T) {
	assert.Equal(t, 100, CalcCapPerPartition(100, 1, 10))
	assert.Equal(t, 50, CalcCapPerPartition(100, 4, 10))
	assert.Equal(t, 10, CalcCapPerPartition(4, 4, 10))
	assert.Equal(t, 37, CalcCapPerPartition(100, 8, 10))
}
