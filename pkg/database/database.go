package database

import (
	"fmt"
	"log"
	"studyquest_backend/internal/config"
	"studyquest_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := &cfg.Database

	var dialector gorm.Dialector
	switch dbCfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(dbCfg.DBName)
	default:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			dbCfg.User,
			dbCfg.Password,
			dbCfg.Host,
			dbCfg.Port,
			dbCfg.DBName,
			dbCfg.Charset,
			dbCfg.ParseTime,
		)
		dialector = mysql.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release模式默认跳过自动迁移，--migrate/--migrate-only强制执行
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := db.AutoMigrate(&model.User{}); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
	}

	// 演示账号：无Token请求全部以该用户身份处理
	var count int64
	db.Model(&model.User{}).Where("id = ?", model.DemoUserID).Count(&count)
	if count == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		demo := &model.User{
			Username: "demo",
			Email:    "demo@studyquest.local",
			Password: string(hashed),
			FullName: "Demo Student",
		}
		demo.ID = model.DemoUserID
		if err := db.Create(demo).Error; err != nil {
			return nil, err
		}
		log.Println("Demo user seeded")
	}

	return db, nil
}
