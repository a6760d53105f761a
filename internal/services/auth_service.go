// internal/services/auth_service.go
package services

import (
	"github.com/Limkon/Netnope-sub000/internal/models"
	"github.com/Limkon/Netnope-sub000/internal/storage"
	"github.com/Limkon/Netnope-sub000/internal/utils"
)

type AuthService struct {
	store storage.Store
}

func NewAuthService(store storage.Store) *AuthService {
	return &AuthService{store: store}
}

// Register 注册用户。第一个注册的账户获得管理员角色，其余为普通用户。
// 允许空密码，此时哈希存空串。
func (s *AuthService) Register(req *models.UserRegisterRequest) (*models.User, error) {
	// 检查用户名是否存在
	if _, err := s.store.FindUserByUsername(req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if err != storage.ErrNotFound {
		return nil, err
	}

	users, err := s.store.Users()
	if err != nil {
		return nil, err
	}

	role := models.RoleUser
	if len(users) == 0 {
		role = models.RoleAdmin
	}

	salt, err := utils.GenerateSalt()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       req.Username,
		Salt:           salt,
		HashedPassword: utils.HashPassword(salt, req.Password),
		Role:           role,
	}

	return s.store.SaveUser(user)
}

// Login 校验用户名密码，成功返回用户
func (s *AuthService) Login(req *models.UserLoginRequest) (*models.User, error) {
	user, err := s.store.FindUserByUsername(req.Username)
	if err != nil {
		if err == storage.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.VerifyPassword(user.Salt, req.Password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) GetUserByID(userID string) (*models.User, error) {
	return s.store.FindUserByID(userID)
}
