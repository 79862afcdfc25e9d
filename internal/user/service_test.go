package user

import (
	"errors"
	"testing"

	"github.com/Cazhime/online-voting-backend/internal/testutil"
)

func setupUserDB(t *testing.T) {
	t.Helper()
	testutil.SetupTestDB(t)
	if err := PrimeDB(); err != nil {
		t.Fatalf("初始化user表失败: %v", err)
	}
}

func TestCreateUserAndAuthenticate(t *testing.T) {
	setupUserDB(t)

	created, err := CreateUser("张三", "zhangsan@example.com", "secret123")
	if err != nil {
		t.Fatalf("注册失败: %v", err)
	}
	if created.ID == 0 {
		t.Error("注册后应分配用户ID")
	}
	if created.PasswordHash == "secret123" {
		t.Error("密码不能以明文存储")
	}

	authed, err := AuthenticateUser("zhangsan@example.com", "secret123")
	if err != nil {
		t.Fatalf("正确凭证登录失败: %v", err)
	}
	if authed.ID != created.ID {
		t.Errorf("登录返回的用户ID = %d, 期望 %d", authed.ID, created.ID)
	}
}

func TestAuthenticateInvalidCredentials(t *testing.T) {
	setupUserDB(t)

	if _, err := CreateUser("张三", "zhangsan@example.com", "secret123"); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"密码错误", "zhangsan@example.com", "wrong-password"},
		{"邮箱不存在", "nobody@example.com", "secret123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AuthenticateUser(tt.email, tt.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("err = %v, 期望 ErrInvalidCredentials", err)
			}
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	setupUserDB(t)

	if _, err := CreateUser("张三", "zhangsan@example.com", "secret123"); err != nil {
		t.Fatalf("首次注册失败: %v", err)
	}

	// 重复注册同一邮箱必须失败
	_, err := CreateUser("李四", "zhangsan@example.com", "another-pass")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("err = %v, 期望 ErrDuplicateEmail", err)
	}

	// 注册失败不能破坏已有账户：原密码仍然可以登录
	authed, err := AuthenticateUser("zhangsan@example.com", "secret123")
	if err != nil {
		t.Fatalf("重复注册后原账户登录失败: %v", err)
	}
	if authed.Name != "张三" {
		t.Errorf("登录用户名 = %s, 期望 张三", authed.Name)
	}
}
