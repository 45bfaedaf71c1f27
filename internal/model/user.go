package model

import "time"

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Username          string    `gorm:"size:50;unique;not null" json:"username"`
	Password          string    `gorm:"size:100;not null" json:"-"`
	Nickname          string    `gorm:"size:50" json:"nickname"`
	Email             string    `gorm:"size:100" json:"email"`
	Avatar            string    `gorm:"size:255" json:"avatar"`
	Role              UserRole  `gorm:"type:enum('student','teacher','admin');default:'student'" json:"role"`
	Disabled          bool      `gorm:"default:false" json:"disabled"`
	TotalAnswerCount  int       `gorm:"default:0" json:"totalAnswerCount"`  // 累计答题数
	TotalCorrectCount int       `gorm:"default:0" json:"totalCorrectCount"` // 累计答对数
	LastSeen          time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
