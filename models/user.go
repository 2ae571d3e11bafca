package models

import "time"

type User struct {
	ID          string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	Email       string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"column:password;not null" json:"-"`
	DisplayName string    `gorm:"column:display_name" json:"displayName"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (User) TableName() string { return "users" }
