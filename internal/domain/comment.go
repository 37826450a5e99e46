package domain

import "gorm.io/gorm"

type Comment struct {
	gorm.Model
	Contents string `gorm:"not null"`
	TodoID   uint   `gorm:"not null;index"`
	UserID   uint   `gorm:"not null;index"`
	Todo     Todo   `gorm:"constraint:OnDelete:CASCADE"`
	User     User   `gorm:"constraint:OnDelete:CASCADE"`
}
