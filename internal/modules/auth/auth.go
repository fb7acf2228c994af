package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartnotes/core/internal/middleware"
	"github.com/smartnotes/core/internal/models"
	"github.com/smartnotes/core/internal/pkg/response"
	sessionpkg "github.com/smartnotes/core/internal/pkg/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

type LoginDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  *models.UserModel `json:"user"`
}

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

func (s *Service) Register(dto *RegisterDTO) (*models.UserModel, error) {
	email := strings.ToLower(strings.TrimSpace(dto.Email))

	var count int64
	if err := s.db.Model(&models.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := dto.Name
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	u := models.UserModel{Email: email, Password: string(hash), Name: name}
	return &u, s.db.Create(&u).Error
}

func (s *Service) Login(email, password, ip, ua string) (string, *models.UserModel, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u models.UserModel
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	_ = s.db.Model(&u).Updates(map[string]interface{}{
		"last_login_time": now,
		"last_login_ip":   ip,
	}).Error

	token, _, err := sessionpkg.Issue(s.db, u.ID, ip, ua, sessionpkg.DefaultTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &u, nil
}

func (s *Service) Get(userID string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// EnsureDevUser upserts the local development account used by the auth
// bypass and returns its id.
func (s *Service) EnsureDevUser(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", fmt.Errorf("dev bypass email is empty")
	}

	var u models.UserModel
	err := s.db.Where("email = ?", email).First(&u).Error
	if err == nil {
		return u.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("dev-bypass"), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	u = models.UserModel{Email: email, Password: string(hash), Name: "Local Dev User"}
	if err := s.db.Create(&u).Error; err != nil {
		return "", err
	}
	return u.ID, nil
}

// DevBypass returns a middleware that authenticates every request as the
// local development user. Only wired in non-production environments.
func DevBypass(svc *Service, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := svc.EnsureDevUser(email)
		if err != nil {
			response.InternalError(c, "Dev bypass failed", err)
			return
		}
		c.Set(middleware.ContextKeyUserID, userID)
		c.Next()
	}
}

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	a := rg.Group("/auth")

	a.POST("/register", h.register)
	a.POST("/login", h.login)
	a.GET("/me", authMW, h.me)
	a.POST("/logout", authMW, h.logout)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid registration payload")
		return
	}

	user, err := h.svc.Register(&dto)
	if errors.Is(err, ErrEmailTaken) {
		response.Conflict(c, "Email already registered")
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to register", err)
		return
	}

	token, user, err := h.svc.Login(user.Email, dto.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.InternalError(c, "Failed to register", err)
		return
	}
	response.Created(c, loginResponse{Token: token, User: user})
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "Invalid login payload")
		return
	}

	token, user, err := h.svc.Login(dto.Email, dto.Password, c.ClientIP(), c.Request.UserAgent())
	if errors.Is(err, ErrInvalidCredentials) {
		response.Unauthorized(c)
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to log in", err)
		return
	}
	response.OK(c, loginResponse{Token: token, User: user})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.Get(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, "Failed to load user", err)
		return
	}
	if user == nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, gin.H{"user": user})
}

func (h *Handler) logout(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	sid := middleware.CurrentSessionID(c)
	if sid != "" {
		if err := sessionpkg.Revoke(h.svc.db, userID, sid); err != nil {
			response.InternalError(c, "Failed to log out", err)
			return
		}
	}
	response.OK(c, gin.H{"ok": true})
}
