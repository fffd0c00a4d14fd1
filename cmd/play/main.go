package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/LouYuanbo1/browseragent/internal/app"
	"github.com/LouYuanbo1/browseragent/internal/infra/crawler/chrome"
	service "github.com/LouYuanbo1/browseragent/internal/service/chrome"
)

//go:embed appconfig/appconfig.json
var appConfig []byte

func main() {
	var (
		flags    app.BrowserFlags
		query    string
		keywords []string
		watch    int
		keepOpen bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "搜索视频并播放最匹配的结果",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.Load(cmd, appConfig)
			if err != nil {
				return err
			}
			if query != "" {
				cfg.Play.Query = query
			}
			if len(keywords) > 0 {
				cfg.Play.Keywords = keywords
			}
			if cmd.Flags().Changed("watch") {
				cfg.Play.WatchSeconds = watch
			}
			if cmd.Flags().Changed("keep-open") {
				cfg.Play.KeepOpen = keepOpen
			}

			log, err := app.NewLogger(cfg, "play")
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
			// 失败时同样保持浏览器,便于查看页面
			defer app.KeepOpen(ctx, cfg, cfg.Play.KeepOpen, log)

			report, err := service.InitPlayService(crawler, log).Play(ctx, &cfg.Play)
			if err != nil {
				log.Error("播放失败", zap.Error(err))
				return err
			}

			log.Info("完成", zap.Bool("found", report.Found), zap.String("playback", string(report.Playback)))
			return json.NewEncoder(cmd.OutOrStdout()).Encode(report)
		},
	}
	flags.Bind(cmd)
	cmd.Flags().StringVarP(&query, "query", "q", "", "搜索词")
	cmd.Flags().StringSliceVarP(&keywords, "keyword", "k", nil, "标题关键词,可重复或用逗号分隔")
	cmd.Flags().IntVar(&watch, "watch", 0, "开始播放后停留的秒数")
	cmd.Flags().BoolVar(&keepOpen, "keep-open", false, "有界面时播放结束后保持浏览器打开")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
