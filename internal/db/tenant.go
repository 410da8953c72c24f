package db

import "gorm.io/gorm"

// Tenant 定义了租户（独立店铺）模型
type Tenant struct {
	gorm.Model
	Name   string `gorm:"not null"`
	Domain string `gorm:"index"`
}
