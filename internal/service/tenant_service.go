package service

import (
	"errors"
	"strings"

	"github.com/storecraft/internal/db"
	"gorm.io/gorm"
)

var ErrTenantNotFound = errors.New("tenant not found")

// TenantService 负责租户的解析与建立。
type TenantService struct {
	db *gorm.DB
}

// NewTenantService 构造 TenantService。
func NewTenantService(gdb *gorm.DB) *TenantService {
	return &TenantService{db: gdb}
}

// Get 按主键读取租户。
func (s *TenantService) Get(id uint) (*db.Tenant, error) {
	var tenant db.Tenant
	if err := s.db.First(&tenant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

// ResolveByHost 依请求 Host 解析店面归属的租户；
// 未命中任何自定义域名时回退到最早建立的租户。
func (s *TenantService) ResolveByHost(host string) (*db.Tenant, error) {
	host = strings.ToLower(strings.TrimSpace(host))
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}

	var tenant db.Tenant
	if host != "" {
		err := s.db.Where("domain = ?", host).First(&tenant).Error
		if err == nil {
			return &tenant, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if err := s.db.Order("id asc").First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

// EnsureDefault 保证至少存在一个租户，返回默认租户。
func (s *TenantService) EnsureDefault(name string) (*db.Tenant, error) {
	var tenant db.Tenant
	err := s.db.Order("id asc").First(&tenant).Error
	if err == nil {
		return &tenant, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if strings.TrimSpace(name) == "" {
		name = "默认店铺"
	}
	tenant = db.Tenant{Name: name}
	if err := s.db.Create(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}
