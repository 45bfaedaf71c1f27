package database

import (
	"fmt"
	"log"
	"tiku_backend/internal/config"
	"tiku_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Chapter{},
		&model.Question{},
		&model.AnswerRecord{},
		&model.AIGradingRecord{},
		&model.WrongQuestion{},
		&model.Favorite{},
		&model.SystemConfig{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认管理员账号
	var userCount int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&userCount)
	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		admin := &model.User{
			Username: "admin",
			Password: string(hashed),
			Nickname: "系统管理员",
			Role:     model.Admin,
		}
		db.Create(admin)
		log.Println("Default admin account created (admin/admin123), please change the password")
	}

	// 默认学科与章节（空库时插入演示数据）
	var subjectCount int64
	db.Model(&model.Subject{}).Count(&subjectCount)
	if subjectCount == 0 {
		subject := &model.Subject{
			Name:        "计算机基础",
			Code:        "cs_basic",
			Description: "计算机基础知识题库",
			Status:      1,
		}
		db.Create(subject)

		defaultChapters := []model.Chapter{
			{SubjectID: subject.ID, Name: "数据结构", SortOrder: 1},
			{SubjectID: subject.ID, Name: "操作系统", SortOrder: 2},
			{SubjectID: subject.ID, Name: "计算机网络", SortOrder: 3},
		}
		for _, ch := range defaultChapters {
			db.Create(&ch)
		}
	}

	return db, nil
}
