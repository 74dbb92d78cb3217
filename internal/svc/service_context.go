package svc

import (
	"fmt"

	"github.com/albi84/solana-message-parser/internal/catalog"
	"github.com/albi84/solana-message-parser/internal/config"
	"github.com/albi84/solana-message-parser/internal/consts"
	"github.com/albi84/solana-message-parser/internal/logic/decoder"
	"github.com/albi84/solana-message-parser/internal/mq"
	"github.com/albi84/solana-message-parser/pkg/logger"
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// ServiceContext 包含解码服务所需的全部资源
type ServiceContext struct {
	Config   config.DecoderConfig
	Catalog  *catalog.Catalog
	Decoder  *decoder.Decoder
	Producer *kafka.Producer // 未配置 Kafka 时为 nil
}

// NewServiceContext 加载程序目录、创建解码器，按需初始化 Kafka 生产者
func NewServiceContext(c config.DecoderConfig) (*ServiceContext, error) {
	// 1. 程序目录
	cat, err := catalog.Load(c.CatalogPath)
	if err != nil {
		logger.Errorf("[svc] 加载程序目录失败 %s: %v", c.CatalogPath, err)
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	typeCount, programCount := cat.Stats()
	logger.Infof("[svc] 程序目录已加载: %d types, %d programs", typeCount, programCount)
	for _, p := range cat.Programs() {
		logger.Debugf("[svc] %s: %d instructions", p.Label(), p.InstructionCount())
	}
	for addr, name := range consts.NativePrograms {
		if _, ok := cat.Program(addr); !ok {
			logger.Debugf("[svc] 目录未描述 %s (%s)", name, addr)
		}
	}

	ctx := &ServiceContext{
		Config:  c,
		Catalog: cat,
		Decoder: decoder.New(cat, decoder.Option{
			MaxDepth:        c.MaxDepth,
			IncludeAccounts: c.OutputConf.IncludeAccounts,
		}),
	}

	// 2. Kafka 生产者（可选）
	if c.KafkaConf.Enabled() {
		producer, err := mq.NewKafkaProducer(c.KafkaConf.ToKafkaOption())
		if err != nil {
			logger.Errorf("[svc] Kafka producer 初始化失败: %v", err)
			return nil, err
		}
		ctx.Producer = producer
	}

	logger.Infof("[svc] 服务上下文初始化完成")
	return ctx, nil
}

// Close 关闭服务上下文中的资源，未发送完的消息最多等待 flushTimeoutMs
func (ctx *ServiceContext) Close() {
	const flushTimeoutMs = 5000
	if ctx.Producer != nil {
		if left := ctx.Producer.Flush(flushTimeoutMs); left > 0 {
			logger.Warnf("[svc] Kafka 关闭时仍有 %d 条消息未发送", left)
		}
		ctx.Producer.Close()
	}
}
