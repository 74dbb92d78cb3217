package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/albi84/solana-message-parser/internal/config"
	"github.com/albi84/solana-message-parser/internal/consts"
	"github.com/albi84/solana-message-parser/internal/service"
	"github.com/albi84/solana-message-parser/internal/svc"
	"github.com/albi84/solana-message-parser/pkg/logger"
	"github.com/zeromicro/go-zero/core/conf"
)

var (
	configFile   = flag.String("f", "etc/decoder.yaml", "the config file")
	catalogPath  = flag.String("c", "", "program catalog file, overrides catalog_path")
	inputList    = flag.String("i", "", "comma separated message files (- for stdin), overrides inputs")
	outputFormat = flag.String("o", "", "output format json|yaml, overrides output.format")
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
			code = 2
		}
		_ = logger.Sync()
	}()

	flag.Parse()

	var c config.DecoderConfig
	conf.MustLoad(*configFile, &c)
	applyFlags(&c)

	if err := logger.InitLogger(c.LogConf.ToLogOption()); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		return 1
	}
	if err := c.Check(); err != nil {
		logger.Errorf("[main] invalid config: %v", err)
		return 1
	}

	serviceContext, err := svc.NewServiceContext(c)
	if err != nil {
		logger.Errorf("[main] %v", err)
		return 1
	}
	defer serviceContext.Close()

	// 等待退出信号，取消尚未完成的 Kafka 发送
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infof("[main] decoding %d inputs with %d workers", len(c.Inputs), c.Workers)
	if err := service.NewDecodeService(serviceContext, os.Stdout).Run(ctx, c.Inputs); err != nil {
		logger.Errorf("[main] %v", err)
		return 1
	}
	return 0
}

// applyFlags 命令行参数优先于配置文件
func applyFlags(c *config.DecoderConfig) {
	if *catalogPath != "" {
		c.CatalogPath = *catalogPath
	}
	if inputs := append(splitList(*inputList), flag.Args()...); len(inputs) > 0 {
		c.Inputs = inputs
	}
	if *outputFormat != "" {
		c.OutputConf.Format = *outputFormat
	}
	if c.Workers <= 0 {
		c.Workers = consts.CpuCount
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
