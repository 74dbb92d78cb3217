package service

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/albi84/solana-message-parser/internal/logic/core"
	"github.com/albi84/solana-message-parser/internal/logic/dispatcher"
	"github.com/albi84/solana-message-parser/internal/logic/input"
	"github.com/albi84/solana-message-parser/internal/logic/render"
	"github.com/albi84/solana-message-parser/internal/mq"
	"github.com/albi84/solana-message-parser/internal/svc"
	"github.com/albi84/solana-message-parser/pkg/logger"
	"github.com/albi84/solana-message-parser/pkg/utils"
)

// StdinSource 表示从标准输入读取消息
const StdinSource = "-"

// Outcome 表示单个输入的解码结果
type Outcome struct {
	Source   string
	Message  *core.DecodedMessage
	Size     int // 输入字节数
	Consumed int // 消息占用的字节数
	Err      error
}

type DecodeService struct {
	svcCtx *svc.ServiceContext
	out    io.Writer
	stdin  io.Reader
}

func NewDecodeService(svcCtx *svc.ServiceContext, out io.Writer) *DecodeService {
	return &DecodeService{svcCtx: svcCtx, out: out, stdin: os.Stdin}
}

// DecodeAll 并发解码全部输入，结果顺序与 sources 一致
func (s *DecodeService) DecodeAll(sources []string) []Outcome {
	enc, err := input.ParseEncoding(s.svcCtx.Config.InputEncoding)
	if err != nil {
		outcomes := make([]Outcome, len(sources))
		for i, src := range sources {
			outcomes[i] = Outcome{Source: src, Err: err}
		}
		return outcomes
	}

	// 标准输入只能读取一次，先在当前协程读出
	var stdinBuf []byte
	var stdinErr error
	for _, src := range sources {
		if src == StdinSource {
			stdinBuf, stdinErr = s.readStdin(enc)
			break
		}
	}

	return utils.ParallelMap(sources, s.svcCtx.Config.Workers, func(src string) Outcome {
		var buf []byte
		var err error
		if src == StdinSource {
			buf, err = stdinBuf, stdinErr
		} else {
			buf, err = input.ReadFile(src, enc)
		}
		if err != nil {
			return Outcome{Source: src, Err: err}
		}
		return s.decodeOne(src, buf)
	})
}

func (s *DecodeService) decodeOne(src string, buf []byte) (res Outcome) {
	res = Outcome{Source: src, Size: len(buf)}
	defer func() {
		if r := recover(); r != nil {
			res.Message = nil
			res.Err = fmt.Errorf("panic while decoding: %v", r)
		}
	}()

	msg, consumed, err := s.svcCtx.Decoder.DecodeMessage(buf)
	if err != nil {
		res.Err = err
		return res
	}
	res.Message = msg
	res.Consumed = consumed
	if consumed < len(buf) {
		logger.Warnf("[decode] %s: %d trailing bytes after message ignored", src, len(buf)-consumed)
	}
	return res
}

func (s *DecodeService) readStdin(enc input.Encoding) ([]byte, error) {
	data, err := io.ReadAll(s.stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return input.DecodeText(string(data), enc)
}

// Run 解码 sources，成功的结果写入输出并按配置发送到 Kafka。
// 任一输入失败时返回错误，其余输入照常处理。
func (s *DecodeService) Run(ctx context.Context, sources []string) error {
	cfg := s.svcCtx.Config
	format, err := render.ParseFormat(cfg.OutputConf.Format)
	if err != nil {
		return err
	}
	renderer, err := render.NewRenderer(s.out, format, cfg.OutputConf.Indent)
	if err != nil {
		return err
	}

	outcomes := s.DecodeAll(sources)

	var failed int
	results := make([]dispatcher.DecodedResult, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			logger.Errorf("[decode] %s: %v", o.Source, o.Err)
			continue
		}
		logger.Infow("[decode] done",
			"source", o.Source, "consumed", o.Consumed, "size", o.Size,
			"instructions", o.Message.Instructions.Count)
		if err := renderer.Render(o.Message); err != nil {
			return fmt.Errorf("%s: %w", o.Source, err)
		}
		results = append(results, dispatcher.DecodedResult{Source: o.Source, Message: o.Message})
	}
	if err := renderer.Close(); err != nil {
		return err
	}

	if s.svcCtx.Producer != nil && len(results) > 0 {
		if err := s.publish(ctx, s.svcCtx.Producer, results); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed to decode", failed, len(outcomes))
	}
	return nil
}

// publish 按分区打包并发送到 Kafka
func (s *DecodeService) publish(ctx context.Context, producer mq.Producer, results []dispatcher.DecodedResult) error {
	kc := s.svcCtx.Config.KafkaConf
	jobs := dispatcher.BuildDecodedKafkaJobs(kc.Topic, kc.Partitions, results)
	ok, failed := mq.SendKafkaJobs(ctx, producer, jobs, kc.SendTimeout())
	for _, f := range failed {
		logger.Errorf("[mq] topic=%s partition=%d: %v", f.Job.Topic, f.Job.Partition, f.Err)
	}
	logger.Infof("[mq] %d messages in %d jobs sent, %d jobs failed", len(results), len(ok), len(failed))
	if len(failed) > 0 {
		return fmt.Errorf("kafka: %d of %d jobs failed", len(failed), len(jobs))
	}
	return nil
}
