package services

import (
	"errors"

	"github.com/phone_inventory/internal/models"
	"github.com/phone_inventory/internal/repositories"
	"github.com/phone_inventory/pkg/idp"
)

// 错误定义
var ErrUserNotFound = errors.New("用户未找到")
var ErrInvalidRole = errors.New("无效的角色值")
var ErrInvalidUserStatus = errors.New("无效的审批状态值")

// ErrSelfModification 表示管理员试图修改自己的角色或审批状态
var ErrSelfModification = errors.New("不能修改自己的角色或审批状态")

// UserService 定义了用户服务的接口
type UserService interface {
	// SignIn 在身份提供方验证通过后登记用户：不存在则创建
	//（系统首个用户引导为已批准的管理员），已存在则刷新姓名与头像
	SignIn(profile idp.Profile) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	// ListUsers 返回全部用户，待审批用户排在最前
	ListUsers() ([]models.User, error)
	// UpdateUserRole 管理员变更用户角色。管理员不能变更自己的角色。
	UpdateUserRole(actorID, targetID, role string) (*models.User, error)
	// UpdateUserStatus 管理员审批用户。管理员不能变更自己的审批状态。
	UpdateUserStatus(actorID, targetID, status string) (*models.User, error)
}

// userService 是 UserService 的实现
type userService struct {
	repo repositories.UserRepository
}

// NewUserService 创建一个新的 userService 实例
func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

// SignIn 登记或刷新一个经身份提供方验证的用户
func (s *userService) SignIn(profile idp.Profile) (*models.User, error) {
	user, err := s.repo.GetByEmail(profile.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return s.repo.CreateFromProfile(profile.Email, profile.Name, profile.Image)
		}
		return nil, err
	}

	// 每次登录都用身份提供方的最新档案刷新姓名与头像
	if err := s.repo.UpdateProfile(user.ID, profile.Name, profile.Image); err != nil {
		return nil, err
	}
	user.Name = profile.Name
	user.Image = profile.Image
	return user, nil
}

// GetUserByID 根据主键查询用户
func (s *userService) GetUserByID(id string) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers 返回全部用户
func (s *userService) ListUsers() ([]models.User, error) {
	return s.repo.List()
}

// UpdateUserRole 管理员变更用户角色
func (s *userService) UpdateUserRole(actorID, targetID, role string) (*models.User, error) {
	if !models.IsValidUserRole(role) {
		return nil, ErrInvalidRole
	}
	// 自我保护：无论目标值是什么，都不允许管理员修改自己的角色
	if actorID == targetID {
		return nil, ErrSelfModification
	}

	user, err := s.repo.UpdateRole(targetID, models.UserRole(role))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUserStatus 管理员审批用户
func (s *userService) UpdateUserStatus(actorID, targetID, status string) (*models.User, error) {
	if !models.IsValidUserStatus(status) {
		return nil, ErrInvalidUserStatus
	}
	if actorID == targetID {
		return nil, ErrSelfModification
	}

	user, err := s.repo.UpdateStatus(targetID, models.UserStatus(status))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
