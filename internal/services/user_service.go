// internal/services/user_service.go
package services

import (
	"github.com/Limkon/Netnope-sub000/internal/models"
	"github.com/Limkon/Netnope-sub000/internal/storage"
	"github.com/Limkon/Netnope-sub000/internal/utils"
)

// UserService 管理员的用户管理操作
type UserService struct {
	store storage.Store
}

func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// GetUsers 返回所有用户（不含口令字段）
func (s *UserService) GetUsers() ([]models.UserInfo, error) {
	users, err := s.store.Users()
	if err != nil {
		return nil, err
	}
	infos := make([]models.UserInfo, 0, len(users))
	for i := range users {
		infos = append(infos, users[i].Info())
	}
	return infos, nil
}

// CreateUser 管理员创建任意角色的账户
func (s *UserService) CreateUser(req *models.AdminCreateUserRequest) (*models.User, error) {
	if _, err := s.store.FindUserByUsername(req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if err != storage.ErrNotFound {
		return nil, err
	}

	salt, err := utils.GenerateSalt()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       req.Username,
		Salt:           salt,
		HashedPassword: utils.HashPassword(salt, req.Password),
		Role:           req.Role,
	}

	return s.store.SaveUser(user)
}

// ResetPassword 重置用户密码，换新盐重新派生
func (s *UserService) ResetPassword(userID, password string) error {
	user, err := s.store.FindUserByID(userID)
	if err != nil {
		return err
	}

	salt, err := utils.GenerateSalt()
	if err != nil {
		return err
	}
	user.Salt = salt
	user.HashedPassword = utils.HashPassword(salt, password)

	_, err = s.store.SaveUser(user)
	return err
}

// DeleteUser 删除账户。系统必须始终保留至少一个管理员，
// 删除最后一个管理员被拒绝。级联清理由存储层完成。
func (s *UserService) DeleteUser(userID string) error {
	user, err := s.store.FindUserByID(userID)
	if err != nil {
		return err
	}

	if user.Role == models.RoleAdmin {
		users, err := s.store.Users()
		if err != nil {
			return err
		}
		admins := 0
		for i := range users {
			if users[i].Role == models.RoleAdmin {
				admins++
			}
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}

	return s.store.DeleteUser(userID)
}
