package cmd

import (
	"context"
	"fmt"
	"time"

	"ProgressiveBBS/cache"
	"ProgressiveBBS/core/account"
	"ProgressiveBBS/db"

	"github.com/spf13/cobra"
)

var codeCmd = &cobra.Command{
	Use:   "code <identifier> <code>",
	Short: "写入一次性验证码",
	Long: `把验证码写入 Redis。注册时 identifier 为邮箱，找回密码时为用户名。
验证码由外部渠道发送，运维排查时可用此命令手动设置。`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		identifier, code := args[0], args[1]
		if err := account.ValidateCode(code); err != nil {
			return err
		}

		rdb, err := db.ConnectRedis(cfg)
		if err != nil {
			return fmt.Errorf("无法连接到Redis: %w", err)
		}
		defer db.CloseRedis()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cache.NewCodeCache(rdb, cfg.CodeTTL).SetCode(ctx, identifier, code); err != nil {
			return err
		}
		fmt.Printf("验证码已写入: %s (有效期 %s)\n", identifier, cfg.CodeTTL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(codeCmd)
}
