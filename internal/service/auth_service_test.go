package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Chiesa14/pvms-ne/internal/domain"
	"github.com/Chiesa14/pvms-ne/internal/repository"
)

const testJWTSecret = "test-secret"

func TestAuthService_Register_ForcesUserRole(t *testing.T) {
	var created *domain.User
	userRepo := &fakeUserRepo{
		FindByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, repository.ErrNotFound
		},
		CreateFn: func(ctx context.Context, user *domain.User) (*domain.User, error) {
			created = user
			u := *user
			u.ID = 1
			return &u, nil
		},
	}
	svc := NewAuthService(userRepo, testJWTSecret, 24*time.Hour)

	user, err := svc.Register(context.Background(), domain.RegisterUserDTO{
		Email: "nam@example.com", Password: "secret123", FirstName: "Nam", LastName: "Tran",
	})

	require.NoError(t, err)
	assert.Equal(t, "user", user.Role) // đăng ký public không bao giờ ra admin
	assert.Empty(t, user.Password)

	// mật khẩu được lưu dạng bcrypt, không phải plaintext
	require.NotNil(t, created)
	assert.NotEqual(t, "secret123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	userRepo := &fakeUserRepo{
		FindByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 1, Email: email}, nil
		},
	}
	svc := NewAuthService(userRepo, testJWTSecret, 24*time.Hour)

	_, err := svc.Register(context.Background(), domain.RegisterUserDTO{
		Email: "nam@example.com", Password: "secret123", FirstName: "Nam", LastName: "Tran",
	})

	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthService_Login_IssuesValidToken(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userRepo := &fakeUserRepo{
		FindByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 7, Email: email, Password: string(hashed), Role: "user"}, nil
		},
	}
	svc := NewAuthService(userRepo, testJWTSecret, 24*time.Hour)

	resp, err := svc.Login(context.Background(), domain.LoginUserDTO{Email: "nam@example.com", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, 7, resp.UserID)
	assert.Equal(t, "user", resp.Role)

	// token phát ra phải validate được bằng chính service
	_, claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "7", claims["sub"])
	assert.Equal(t, "user", claims["role"])
	assert.Equal(t, "nam@example.com", claims["email"])
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	userRepo := &fakeUserRepo{
		FindByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 7, Email: email, Password: string(hashed)}, nil
		},
	}
	svc := NewAuthService(userRepo, testJWTSecret, 24*time.Hour)

	_, err = svc.Login(context.Background(), domain.LoginUserDTO{Email: "nam@example.com", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	userRepo := &fakeUserRepo{
		FindByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewAuthService(userRepo, testJWTSecret, 24*time.Hour)

	_, err := svc.Login(context.Background(), domain.LoginUserDTO{Email: "ghost@example.com", Password: "x"})

	// không lộ việc email có tồn tại hay không
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{}, testJWTSecret, 24*time.Hour)

	_, _, err := svc.ValidateToken("not-a-jwt")

	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuthService_SeedAdmin_CreatesOnce(t *testing.T) {
	var created *domain.User
	userRepo := &fakeUserRepo{
		FindByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return nil, repository.ErrNotFound
		},
		CreateFn: func(ctx context.Context, user *domain.User) (*domain.User, error) {
			created = user
			return user, nil
		},
	}
	svc := NewAuthService(userRepo, testJWTSecret, 24*time.Hour)

	err := svc.SeedAdmin(context.Background(), "admin@pvms.local", "admin123", "System", "Admin")

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "admin", created.Role)
}

func TestAuthService_SeedAdmin_AlreadyExists(t *testing.T) {
	userRepo := &fakeUserRepo{
		FindByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 1, Email: email, Role: "admin"}, nil
		},
		// CreateFn không được gán: gọi Create sẽ panic và làm fail test
	}
	svc := NewAuthService(userRepo, testJWTSecret, 24*time.Hour)

	err := svc.SeedAdmin(context.Background(), "admin@pvms.local", "admin123", "System", "Admin")

	require.NoError(t, err)
}
