package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/albi84/solana-message-parser/internal/logic/input"
	"github.com/albi84/solana-message-parser/internal/logic/render"
	"github.com/albi84/solana-message-parser/internal/mq"
	"github.com/albi84/solana-message-parser/pkg/logger"
)

type LogConfig struct {
	Format   string `json:"format,default=console,options=console|json"` // 日志格式，支持 "console" 或 "json"
	LogDir   string `json:"log_dir,optional"`                            // 日志目录，为空时输出到 stderr
	Level    string `json:"level,default=info"`                          // 日志级别：debug / info / warn / error
	Compress bool   `json:"compress,optional"`                           // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// OutputConfig 表示解码结果的输出方式
type OutputConfig struct {
	Format          string `json:"format,default=json,options=json|yaml"` // 输出格式
	Indent          int    `json:"indent,default=4"`                      // 缩进空格数
	IncludeAccounts bool   `json:"include_accounts,optional"`             // 指令结果是否附带账户地址
}

// KafkaProducerConfig 表示 Kafka 生产者相关配置，Brokers 为空时不启用
type KafkaProducerConfig struct {
	Brokers       string `json:"brokers,optional"`                     // Kafka broker 地址，多个用英文逗号分隔
	Topic         string `json:"topic,default=solana_decoded_message"` // 解码结果 topic
	Partitions    int    `json:"partitions,default=4"`                 // topic 分区数
	BatchSize     int    `json:"batch_size,default=32768"`             // 批处理大小（单位字节）
	LingerMs      int    `json:"linger_ms,default=5"`                  // 批处理最大延迟（毫秒）
	SendTimeoutMs int    `json:"send_timeout_ms,default=3000"`         // 单条消息发送并等待 ack 的超时（毫秒）
}

func (c *KafkaProducerConfig) Enabled() bool {
	return strings.TrimSpace(c.Brokers) != ""
}

func (c *KafkaProducerConfig) SendTimeout() time.Duration {
	return time.Duration(c.SendTimeoutMs) * time.Millisecond
}

func (c *KafkaProducerConfig) ToKafkaOption() mq.KafkaProducerOption {
	return mq.KafkaProducerOption{
		Brokers:   c.Brokers,
		BatchSize: c.BatchSize,
		LingerMs:  c.LingerMs,
		Topics: []mq.TopicOption{
			{Topic: c.Topic, Partitions: c.Partitions},
		},
	}
}

// DecoderConfig 是主配置结构体，用于驱动消息解码器
type DecoderConfig struct {
	LogConf       LogConfig           `json:"log"`                         // 日志配置
	CatalogPath   string              `json:"catalog_path,optional"`       // 程序目录文件路径
	Inputs        []string            `json:"inputs,optional"`             // 待解码的消息文件列表
	InputEncoding string              `json:"input_encoding,default=hex"`  // 消息文件编码：hex / base64 / base58
	MaxDepth      int                 `json:"max_struct_depth,default=64"` // struct 嵌套上限
	Workers       int                 `json:"workers,default=4"`           // 并发解码协程数
	OutputConf    OutputConfig        `json:"output,optional"`             // 输出配置
	KafkaConf     KafkaProducerConfig `json:"kafka,optional"`              // Kafka 输出配置
}

// Check 检查取值是否合法，需在命令行参数覆盖之后调用。
// conf.Load 加载后会立即调用 Validate 方法，此时命令行参数尚未生效，故不能用该名字。
func (c *DecoderConfig) Check() error {
	if c.CatalogPath == "" {
		return fmt.Errorf("catalog_path is required")
	}
	if len(c.Inputs) == 0 {
		return fmt.Errorf("no inputs given")
	}
	if _, err := input.ParseEncoding(c.InputEncoding); err != nil {
		return err
	}
	if _, err := render.ParseFormat(c.OutputConf.Format); err != nil {
		return err
	}
	if c.OutputConf.Indent < 0 {
		return fmt.Errorf("output.indent must be >= 0, got %d", c.OutputConf.Indent)
	}
	if c.KafkaConf.Enabled() {
		if c.KafkaConf.Topic == "" {
			return fmt.Errorf("kafka.topic is required when kafka.brokers is set")
		}
		if c.KafkaConf.Partitions <= 0 {
			return fmt.Errorf("kafka.partitions must be > 0, got %d", c.KafkaConf.Partitions)
		}
	}
	return nil
}
