package handlers

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"study-note-manager/database"
	"study-note-manager/middleware"
	"study-note-manager/models"
	"study-note-manager/services"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("database.Open: %v", err)
	}

	tokens := services.NewTokenService("test-secret", time.Hour)
	h := NewAuthHandler(db, tokens)

	r := gin.New()
	public := r.Group("/api/auth")
	{
		public.POST("/register", h.Register)
		public.POST("/login", h.Login)
	}

	auth := r.Group("/api/auth")
	auth.Use(middleware.AuthMiddleware(tokens))
	{
		auth.GET("/me", h.GetCurrentUser)

		users := auth.Group("/users")
		users.Use(middleware.AdminRequired())
		{
			users.GET("", h.ListUsers)
			users.PUT("/:id/status", h.UpdateUserStatus)
			users.DELETE("/:id", h.DeleteUser)
		}
	}
	return r, db
}

func login(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"username": username,
		"password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status = %d, body = %s", username, w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	decodeJSON(t, w.Body.Bytes(), &resp)
	if resp.Data.Token == "" {
		t.Fatal("登录响应应携带令牌")
	}
	return resp.Data.Token
}

func TestRegisterAndDuplicate(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice",
		"email":    "a@x.com",
		"password": "secret1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}

	// 同用户名不同邮箱也算重复
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice",
		"email":    "b@x.com",
		"password": "secret2",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("重复用户名应返回 400, got %d", w.Code)
	}

	// 同邮箱不同用户名同样重复
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice2",
		"email":    "a@x.com",
		"password": "secret3",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("重复邮箱应返回 400, got %d", w.Code)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice",
		"email":    "a@x.com",
		"password": "12345",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("密码少于6位应返回 400, got %d", w.Code)
	}
}

func TestLoginUpdatesLastLogin(t *testing.T) {
	r, db := setupAuthRouter(t)

	doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice", "email": "a@x.com", "password": "secret1",
	})

	var before models.User
	db.Where("username = ?", "alice").First(&before)
	if before.LastLogin != nil {
		t.Fatal("注册后 lastLogin 应为空")
	}

	login(t, r, "alice", "secret1")

	var after models.User
	db.Where("username = ?", "alice").First(&after)
	if after.LastLogin == nil {
		t.Error("登录应更新 lastLogin")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := setupAuthRouter(t)

	doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice", "email": "a@x.com", "password": "secret1",
	})

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"username": "alice", "password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("密码错误应返回 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"username": "nobody", "password": "secret1",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("用户不存在应返回 401, got %d", w.Code)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	r, db := setupAuthRouter(t)

	doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice", "email": "a@x.com", "password": "secret1",
	})
	db.Model(&models.User{}).Where("username = ?", "alice").Update("is_active", false)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"username": "alice", "password": "secret1",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("禁用账号登录应返回 403, got %d", w.Code)
	}
}

func TestMeTokenHandling(t *testing.T) {
	r, _ := setupAuthRouter(t)

	doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice", "email": "a@x.com", "password": "secret1",
	})

	// 缺少令牌
	w := doJSON(t, r, http.MethodGet, "/api/auth/me", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("缺少令牌应返回 401, got %d", w.Code)
	}

	// 无效令牌
	w = doAuthed(t, r, http.MethodGet, "/api/auth/me", nil, "not-a-token")
	if w.Code != http.StatusForbidden {
		t.Errorf("无效令牌应返回 403, got %d", w.Code)
	}

	// 有效令牌
	token := login(t, r, "alice", "secret1")
	w = doAuthed(t, r, http.MethodGet, "/api/auth/me", nil, token)
	if w.Code != http.StatusOK {
		t.Errorf("有效令牌应返回 200, got %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data models.User `json:"data"`
	}
	decodeJSON(t, w.Body.Bytes(), &resp)
	if resp.Data.Username != "alice" {
		t.Errorf("me 应返回当前用户, got %+v", resp.Data)
	}
}

func TestAdminUserManagement(t *testing.T) {
	r, _ := setupAuthRouter(t)

	doJSON(t, r, http.MethodPost, "/api/auth/register", gin.H{
		"username": "alice", "email": "a@x.com", "password": "secret1",
	})
	userToken := login(t, r, "alice", "secret1")

	// 普通用户无权访问用户管理
	w := doAuthed(t, r, http.MethodGet, "/api/auth/users", nil, userToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("普通用户访问用户列表应 403, got %d", w.Code)
	}

	// 默认管理员由 database.Open 播种
	adminToken := login(t, r, "admin", "admin123")
	w = doAuthed(t, r, http.MethodGet, "/api/auth/users", nil, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("管理员获取用户列表失败: %d, body = %s", w.Code, w.Body.String())
	}

	var listResp struct {
		Data []models.User `json:"data"`
	}
	decodeJSON(t, w.Body.Bytes(), &listResp)
	if len(listResp.Data) != 2 {
		t.Errorf("用户列表应有2人, got %d", len(listResp.Data))
	}

	var aliceUser models.User
	for _, u := range listResp.Data {
		if u.Username == "alice" {
			aliceUser = u
		}
	}

	// 禁用后无法登录
	w = doAuthed(t, r, http.MethodPut, "/api/auth/users/"+aliceUser.ID+"/status",
		gin.H{"isActive": false}, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("更新用户状态失败: %d, body = %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/auth/login", gin.H{
		"username": "alice", "password": "secret1",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("禁用后登录应 403, got %d", w.Code)
	}

	// 删除用户，重复删除返回 404
	w = doAuthed(t, r, http.MethodDelete, "/api/auth/users/"+aliceUser.ID, nil, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("删除用户失败: %d", w.Code)
	}
	w = doAuthed(t, r, http.MethodDelete, "/api/auth/users/"+aliceUser.ID, nil, adminToken)
	if w.Code != http.StatusNotFound {
		t.Errorf("删除不存在的用户应 404, got %d", w.Code)
	}
}
