package database

import (
	"fmt"
	"log"

	"hacklab_backend/internal/config"
	"hacklab_backend/internal/model"
	"hacklab_backend/internal/util"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// 唯一索引冲突要翻译成 gorm.ErrDuplicatedKey，奖励/兑换引擎靠它裁决并发竞争
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Module{},
		&model.ModuleUnlock{},
		&model.Page{},
		&model.Question{},
		&model.SolveRecord{},
		&model.GiftCode{},
		&model.ProgressRecord{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := seed(db, cfg); err != nil {
		return nil, err
	}

	return db, nil
}

// seed 幂等初始化：只在对应表为空时写入，重复启动不会产生重复数据。
func seed(db *gorm.DB, cfg *config.Config) error {
	// 管理员自举账号（配置了才建）
	if cfg.Auth.BootstrapAdminUsername != "" && cfg.Auth.BootstrapAdminPassword != "" {
		var count int64
		db.Model(&model.User{}).Where("username = ?", cfg.Auth.BootstrapAdminUsername).Count(&count)
		if count == 0 {
			hashed, err := util.HashSecret(cfg.Auth.BootstrapAdminPassword)
			if err != nil {
				return err
			}
			admin := &model.User{
				Username: cfg.Auth.BootstrapAdminUsername,
				Email:    cfg.Auth.BootstrapAdminEmail,
				Password: hashed,
				Role:     model.RoleAdmin,
			}
			if err := db.Create(admin).Error; err != nil {
				return err
			}
			log.Printf("Bootstrap admin created: %s", admin.Username)
		}
	}

	if !cfg.Auth.SeedDemoData {
		return nil
	}

	// 演示学员账号
	var studentCount int64
	db.Model(&model.User{}).Where("role = ?", model.RoleUser).Count(&studentCount)
	if studentCount == 0 {
		hashed, err := util.HashSecret("student123")
		if err != nil {
			return err
		}
		student := &model.User{
			Username: "student",
			Email:    "student@hacklab.local",
			Password: hashed,
			Role:     model.RoleUser,
			Cubes:    50,
		}
		if err := db.Create(student).Error; err != nil {
			return err
		}
	}

	// 演示模块、页面和题目
	var moduleCount int64
	db.Model(&model.Module{}).Count(&moduleCount)
	if moduleCount == 0 {
		linux := &model.Module{
			Title:       "Linux Fundamentals",
			Description: "Master the essential Linux commands and file system navigation.",
			Type:        model.ModuleFree,
			CubeCost:    0,
		}
		if err := db.Create(linux).Error; err != nil {
			return err
		}

		web := &model.Module{
			Title:       "Web Exploitation I",
			Description: "Learn web application vulnerabilities including XSS, SQL injection, and CSRF.",
			Type:        model.ModulePaid,
			CubeCost:    100,
		}
		if err := db.Create(web).Error; err != nil {
			return err
		}

		pentest := &model.Module{
			Title:       "Advanced Penetration Testing",
			Description: "Advanced red team techniques, privilege escalation, and lateral movement.",
			Type:        model.ModulePaid,
			CubeCost:    500,
			IsSpecial:   true,
		}
		if err := db.Create(pentest).Error; err != nil {
			return err
		}

		pages := []model.Page{
			{ModuleID: linux.ID, Title: "Introduction to Linux", Content: "# Welcome to Linux Fundamentals\n\nLinux is the backbone of cybersecurity.", Type: model.PageText, Order: 1},
			{ModuleID: linux.ID, Title: "Basic Commands", Content: "# Essential Linux Commands\n\n```bash\npwd\nls\ncd\n```", Type: model.PageCode, Order: 2},
			{ModuleID: linux.ID, Title: "Challenge: File System", Content: "# File System Challenge\n\nFind the command that lists ALL files, including hidden ones.", Type: model.PageText, Order: 3},
		}
		for i := range pages {
			if err := db.Create(&pages[i]).Error; err != nil {
				return err
			}
		}

		challenge := pages[2]
		seedQuestions := []struct {
			Text   string
			Answer string
			Reward int
			Order  int
		}{
			{"What command lists all files including hidden ones?", "ls -la", 10, 1},
			{"Alternative shorter command (bonus)?", "ls -a", 5, 2},
		}
		for _, q := range seedQuestions {
			hash, err := util.HashSecret(q.Answer)
			if err != nil {
				return err
			}
			question := &model.Question{
				PageID:     challenge.ID,
				Text:       q.Text,
				AnswerHash: hash,
				CubeReward: q.Reward,
				Order:      q.Order,
			}
			if err := db.Create(question).Error; err != nil {
				return err
			}
		}
	}

	// 演示礼品码
	var codeCount int64
	db.Model(&model.GiftCode{}).Count(&codeCount)
	if codeCount == 0 {
		seedCodes := []model.GiftCode{
			{Code: "WELCOME100", Value: 100, Active: true},
			{Code: "HACKER2024", Value: 500, Active: true},
			{Code: "BEGINNERS50", Value: 50, Active: true},
		}
		for i := range seedCodes {
			if err := db.Create(&seedCodes[i]).Error; err != nil {
				return err
			}
		}
		log.Println("Demo gift codes created")
	}

	return nil
}
