package dispatcher

import (
	"github.com/albi84/solana-message-parser/internal/consts"
	"github.com/albi84/solana-message-parser/internal/logic/core"
	"github.com/albi84/solana-message-parser/internal/mq"
	"github.com/albi84/solana-message-parser/internal/utils"
	"github.com/albi84/solana-message-parser/pkg/logger"
	"google.golang.org/protobuf/types/known/structpb"
)

// DecodedResult 表示一个输入的解码结果
type DecodedResult struct {
	Source  string // 输入来源（文件路径）
	Message *core.DecodedMessage
}

// BuildDecodedKafkaJobs 按 recent blockhash 把解码结果分配到各分区，每个分区生成一个 KafkaJob。
// 构建后的 []*mq.KafkaJob 可直接传入 mq.SendKafkaJobs 发送。
// 单条消息转换失败只记录日志并跳过。
func BuildDecodedKafkaJobs(topic string, partitions int, results []DecodedResult) []*mq.KafkaJob {
	if partitions <= 0 {
		partitions = 1
	}
	if len(results) == 0 {
		return nil
	}

	buckets := make([][]*structpb.Value, partitions)
	capacity := utils.CalcCapPerPartition(len(results), partitions, 4)
	for i := range buckets {
		buckets[i] = make([]*structpb.Value, 0, capacity)
	}

	for _, res := range results {
		if res.Message == nil {
			continue
		}
		s, err := messageToStruct(res.Source, res.Message)
		if err != nil {
			logger.Errorf("[dispatcher] %s: %v", res.Source, err)
			continue
		}
		pid := utils.PartitionHashBytes(partitionKey(res.Message), uint32(partitions))
		buckets[pid] = append(buckets[pid], structpb.NewStructValue(s))
	}

	return buildJobs(topic, buckets)
}

// buildJobs 将每个分区 bucket 中的消息封装为 KafkaJob
func buildJobs(topic string, buckets [][]*structpb.Value) []*mq.KafkaJob {
	jobs := make([]*mq.KafkaJob, 0, len(buckets))
	for pid, list := range buckets {
		if len(list) == 0 {
			continue
		}
		value, err := utils.EncodeEvent(consts.EventTypeDecodedMessage, buildBatchProto(list))
		if err != nil {
			logger.Errorf("[dispatcher] encode partition %d: %v", pid, err)
			continue
		}
		jobs = append(jobs, &mq.KafkaJob{
			Topic:     topic,
			Partition: int32(pid),
			Value:     value,
		})
	}
	return jobs
}
