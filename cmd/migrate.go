package cmd

import (
	"fmt"

	"ProgressiveBBS/db"
	"ProgressiveBBS/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "创建或更新 users 表",
	Long:  `执行 GORM AutoMigrate，创建 users 表以及用户名、邮箱、GitHub ID 的唯一索引。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		gdb, err := db.ConnectGormDB(cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.CloseGormDB()

		if err := db.InitDB(gdb); err != nil {
			return err
		}
		logger.Info("数据库迁移完成", logger.String("database", cfg.DBName))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
