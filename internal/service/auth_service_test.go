package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"campus-events/backend/config"
	"campus-events/backend/internal/dto"
	"campus-events/backend/internal/model"
	"campus-events/backend/pkg/jwt"
)

// ── 测试辅助 ──

func setupTestAuthService() (AuthService, *testMocks) {
	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 168 * time.Hour,
		},
	}

	repo, mocks := newTestRepository()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, mocks
}

func createTestUser(mocks *testMocks, matricula, password, role string) *model.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &model.User{
		UserID:       "user-" + matricula,
		Name:         "测试用户",
		Email:        matricula + "@test.edu",
		Matricula:    matricula,
		PasswordHash: string(hash),
		Role:         role,
	}
	mocks.user.users[user.UserID] = user
	return user
}

// ── 登录测试 ──

func TestLogin_Success(t *testing.T) {
	svc, mocks := setupTestAuthService()
	createTestUser(mocks, "2024001", "password123", model.RoleParticipant)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{
		Matricula: "2024001",
		Password:  "password123",
	})

	if err != nil {
		t.Fatalf("Login 应成功，但返回错误: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("AccessToken 不应为空")
	}
	if result.RefreshToken == "" {
		t.Error("RefreshToken 不应为空")
	}
	if result.User.Matricula != "2024001" {
		t.Errorf("期望 Matricula=2024001，实际=%s", result.User.Matricula)
	}
	if result.ExpiresIn != 900 {
		t.Errorf("期望 ExpiresIn=900，实际=%d", result.ExpiresIn)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, mocks := setupTestAuthService()
	createTestUser(mocks, "2024001", "password123", model.RoleParticipant)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Matricula: "2024001",
		Password:  "wrong_password",
	})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Matricula: "nonexistent",
		Password:  "password123",
	})

	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── RefreshToken 测试 ──

func TestRefreshToken_Success(t *testing.T) {
	svc, mocks := setupTestAuthService()
	createTestUser(mocks, "2024001", "password123", model.RoleParticipant)

	loginResult, err := svc.Login(context.Background(), &dto.LoginRequest{
		Matricula: "2024001",
		Password:  "password123",
	})
	if err != nil {
		t.Fatalf("Login 失败: %v", err)
	}

	result, err := svc.RefreshToken(context.Background(), loginResult.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken 应成功: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("新 AccessToken 不应为空")
	}
}

func TestRefreshToken_InvalidToken(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.RefreshToken(context.Background(), "invalid.token.string")
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("期望 ErrInvalidRefresh，实际: %v", err)
	}
}

func TestRefreshToken_AccessTokenNotAllowed(t *testing.T) {
	svc, mocks := setupTestAuthService()
	createTestUser(mocks, "2024001", "password123", model.RoleParticipant)

	loginResult, _ := svc.Login(context.Background(), &dto.LoginRequest{
		Matricula: "2024001",
		Password:  "password123",
	})

	// access token 不能用于刷新
	_, err := svc.RefreshToken(context.Background(), loginResult.AccessToken)
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("期望 ErrInvalidRefresh，实际: %v", err)
	}
}

// ── Logout 测试 ──

func TestLogout_RedisUnavailable(t *testing.T) {
	svc, _ := setupTestAuthService()

	// Redis 未配置时登出应降级为空操作而不报错
	err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour))
	if err != nil {
		t.Errorf("Redis 不可用时 Logout 应降级成功: %v", err)
	}
}

// ── GetCurrentUser 测试 ──

func TestGetCurrentUser_Success(t *testing.T) {
	svc, mocks := setupTestAuthService()
	createTestUser(mocks, "2024001", "password123", model.RoleAdmin)

	result, err := svc.GetCurrentUser(context.Background(), "user-2024001")
	if err != nil {
		t.Fatalf("GetCurrentUser 应成功: %v", err)
	}
	if result.Matricula != "2024001" {
		t.Errorf("期望 Matricula=2024001，实际=%s", result.Matricula)
	}
	if result.Role != model.RoleAdmin {
		t.Errorf("期望 Role=admin，实际=%s", result.Role)
	}
}

func TestGetCurrentUser_NotFound(t *testing.T) {
	svc, _ := setupTestAuthService()

	_, err := svc.GetCurrentUser(context.Background(), "nonexistent")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

// ── ChangePassword 测试 ──

func TestChangePassword_Success(t *testing.T) {
	svc, mocks := setupTestAuthService()
	createTestUser(mocks, "2024001", "password123", model.RoleParticipant)

	err := svc.ChangePassword(context.Background(), "user-2024001", &dto.ChangePasswordRequest{
		OldPassword: "password123",
		NewPassword: "newpass456",
	})
	if err != nil {
		t.Fatalf("ChangePassword 应成功: %v", err)
	}

	// 新密码可登录
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Matricula: "2024001",
		Password:  "newpass456",
	}); err != nil {
		t.Fatalf("修改密码后应能用新密码登录: %v", err)
	}
}

func TestChangePassword_WrongOldPassword(t *testing.T) {
	svc, mocks := setupTestAuthService()
	createTestUser(mocks, "2024001", "password123", model.RoleParticipant)

	err := svc.ChangePassword(context.Background(), "user-2024001", &dto.ChangePasswordRequest{
		OldPassword: "wrong_old",
		NewPassword: "newpass456",
	})
	if !errors.Is(err, ErrWrongOldPassword) {
		t.Errorf("期望 ErrWrongOldPassword，实际: %v", err)
	}
}
