package repositories

import (
	"errors"

	"github.com/google/uuid"
	"github.com/phone_inventory/internal/models"
	"gorm.io/gorm"
)

// ErrUserNotFound 表示用户未找到
var ErrUserNotFound = errors.New("用户未找到")

// ErrEmailConflict 表示该邮箱已注册
var ErrEmailConflict = errors.New("该邮箱已注册")

// UserRepository 定义了用户数据仓库的接口
type UserRepository interface {
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// CreateFromProfile 根据身份提供方档案创建用户。
	// 系统首个用户自动成为已批准的管理员，其余用户为待审批的普通用户。
	// 计数与创建在同一事务内完成。
	CreateFromProfile(email string, name, image *string) (*models.User, error)
	// UpdateProfile 在每次登录时刷新用户的姓名与头像
	UpdateProfile(id string, name, image *string) error
	// List 返回全部用户，按审批状态（pending 优先）再按创建时间倒序排列
	List() ([]models.User, error)
	UpdateRole(id string, role models.UserRole) (*models.User, error)
	UpdateStatus(id string, status models.UserStatus) (*models.User, error)
}

// gormUserRepository 是 UserRepository 的 GORM 实现
type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository 创建一个新的 gormUserRepository 实例
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// GetByID 根据主键查询用户
func (r *gormUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail 根据邮箱查询用户
func (r *gormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateFromProfile 根据身份提供方档案创建用户
func (r *gormUserRepository) CreateFromProfile(email string, name, image *string) (*models.User, error) {
	user := models.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
		Image: image,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			// 首个用户引导为管理员。两个"首个"用户同时注册的竞争
			// 未做唯一性保护，见 DESIGN.md 中的已接受限制。
			user.Role = models.RoleAdmin
			user.Status = models.UserStatusApproved
		} else {
			user.Role = models.RoleUser
			user.Status = models.UserStatusPending
		}

		if err := tx.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile 在每次登录时刷新用户的姓名与头像
func (r *gormUserRepository) UpdateProfile(id string, name, image *string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":  name,
		"image": image,
	}).Error
}

// List 返回全部用户，待审批用户排在最前
func (r *gormUserRepository) List() ([]models.User, error) {
	var users []models.User
	err := r.db.Order(`
		CASE status
			WHEN 'pending' THEN 1
			WHEN 'approved' THEN 2
			WHEN 'rejected' THEN 3
		END, created_at DESC`).
		Find(&users).Error
	return users, err
}

// UpdateRole 更新用户角色
func (r *gormUserRepository) UpdateRole(id string, role models.UserRole) (*models.User, error) {
	user, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Model(user).Update("role", role).Error; err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

// UpdateStatus 更新用户审批状态
func (r *gormUserRepository) UpdateStatus(id string, status models.UserStatus) (*models.User, error) {
	user, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Model(user).Update("status", status).Error; err != nil {
		return nil, err
	}
	user.Status = status
	return user, nil
}
