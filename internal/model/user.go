package model

import "time"

// User 本地用户档案，首次写操作时由外部身份惰性创建
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// 身份提供方的用户ID
	ExternalID string `json:"externalId" gorm:"uniqueIndex;not null"`

	// 由显示名派生，冲突时追加数字后缀
	Username string `json:"username" gorm:"uniqueIndex;not null"`

	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
}

// TableName 自定义表名
func (User) TableName() string {
	return "app_user"
}
