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
	service "github.com/LouYuanbo1/browseragent/internal/service/chrome"
)

//go:embed appconfig/appconfig.json
var appConfig []byte

func main() {
	var (
		flags app.BrowserFlags
		url   string
		hold  int
	)
	cmd := &cobra.Command{
		Use:   "open",
		Short: "打开页面并停留一段时间",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Load(cmd, appConfig)
			if err != nil {
				return err
			}
			if url != "" {
				cfg.Open.Url = url
			}
			if cmd.Flags().Changed("hold") {
				cfg.Open.HoldSeconds = hold
			}

			log, err := app.NewLogger(cfg, "open")
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := app.SignalContext(context.Background())
			defer stop()

			crawler, err := chrome.InitChromeCrawler(ctx, cfg, log)
			if err != nil {
				return fmt.Errorf("初始化浏览器失败: %w", err)
			}
			defer crawler.Close()

			report, err := service.InitOpenService(crawler, log).Open(ctx, &cfg.Open)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(report)
		},
	}
	flags.Bind(cmd)
	cmd.Flags().StringVarP(&url, "url", "u", "", "要打开的URL")
	cmd.Flags().IntVar(&hold, "hold", 0, "页面停留秒数")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
