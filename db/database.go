package db

import (
	"fmt"

	"ProgressiveBBS/logger"
	"ProgressiveBBS/model"

	"gorm.io/gorm"
)

// InitDB 创建或更新 users 表结构。
// username、email、github_id 上的唯一索引是并发注册时的最终裁决者。
func InitDB(gdb *gorm.DB) error {
	if gdb == nil {
		return fmt.Errorf("GORM database not initialized")
	}

	if err := gdb.AutoMigrate(&model.User{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}

	logger.Info("Users table initialized successfully (or already exists).")
	return nil
}
