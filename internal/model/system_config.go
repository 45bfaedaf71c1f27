package model

// SystemConfig 系统配置项（如AI接口地址、密钥，可在后台动态修改）
// swagger:model SystemConfig
type SystemConfig struct {
	BaseModel
	ConfigKey   string `gorm:"size:100;unique;not null" json:"configKey"`
	ConfigValue string `gorm:"type:text" json:"configValue"`
	Description string `gorm:"size:255" json:"description"`
}

func (SystemConfig) TableName() string {
	return "system_configs"
}
