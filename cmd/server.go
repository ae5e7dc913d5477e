package cmd

import (
	"ProgressiveBBS/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动账号服务",
	Long:  `启动论坛账号服务的HTTP服务器：注册、登录、找回密码、GitHub 登录和个人资料接口`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
