package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LouYuanbo1/browseragent/internal/app"
	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/chrome"
	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/collector"
	service "github.com/LouYuanbo1/browseragent/internal/service/chrome"
	"github.com/LouYuanbo1/browseragent/param"
)

//go:embed appconfig/appconfig.json
var appConfig []byte

func main() {
	var (
		flags  app.BrowserFlags
		url    string
		output string
		engine string
	)
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "抓取页面可见文本并保存到文件",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Load(cmd, appConfig)
			if err != nil {
				return err
			}
			if url != "" {
				cfg.Extract.Url = url
			}
			if output != "" {
				cfg.Extract.Output = output
			}
			if engine != "" {
				cfg.Extract.Engine = param.Engine(engine)
			}

			log, err := app.NewLogger(cfg, "extract")
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := app.SignalContext(context.Background())
			defer stop()

			// colly 引擎不需要启动浏览器
			var (
				crawler       chrome.ChromeCrawler
				textCollector collector.TextCollector
			)
			switch cfg.Extract.Engine {
			case param.EngineColly:
				textCollector = collector.InitTextCollector(cfg, log)
			default:
				crawler, err = chrome.InitChromeCrawler(ctx, cfg, log)
				if err != nil {
					return fmt.Errorf("初始化浏览器失败: %w", err)
				}
				defer crawler.Close()
			}

			report, err := service.InitExtractService(crawler, textCollector, log).Extract(ctx, &cfg.Extract)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(report)
		},
	}
	flags.Bind(cmd)
	cmd.Flags().StringVarP(&url, "url", "u", "", "要抓取的URL")
	cmd.Flags().StringVarP(&output, "output", "o", "", "输出文件")
	cmd.Flags().StringVar(&engine, "engine", "", "抓取引擎: browser | colly")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
