// Package gorm provides GORM model definitions and repositories for the catalog
package gorm

import (
	"time"
)

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(120);not null"`
	Ingredients string `gorm:"type:text;not null"`
	CookingTime int    `gorm:"column:cooking_time;not null;default:0;index"`
	Difficulty  string `gorm:"type:varchar(20);not null;default:'';index"`
	Picture     string `gorm:"column:pic;type:varchar(255);not null;default:'no_picture.jpeg'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for RecipeModel
func (RecipeModel) TableName() string {
	return "recipes"
}

// UserModel represents the GORM model for users
type UserModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"type:varchar(150);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// Models lists every model for AutoMigrate
func Models() []interface{} {
	return []interface{}{&RecipeModel{}, &UserModel{}}
}
