package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/reserva-top/internal/config"
	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/middleware"
	"github.com/BruksfildServices01/reserva-top/internal/models"
	"github.com/BruksfildServices01/reserva-top/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config

	// consulta DNS do domínio do email; substituível em testes
	emailDomainOK func(string) bool
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		db:            db,
		config:        cfg,
		emailDomainOK: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Phone      string `json:"phone"`
	Profession string `json:"profession"`

	// opcional: gerado a partir do nome quando vazio
	Slug string `json:"slug"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register cria o profissional (pendente de aprovação), o usuário de login
// e o horário de atendimento padrão.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.emailDomainOK(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "O domínio do e-mail informado não parece ser válido.",
		})
		return
	}

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email_already_exists"})
		return
	}

	slug, err := h.resolveSlug(req.Slug, req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	professional := models.Professional{
		Name:       strings.TrimSpace(req.Name),
		Slug:       slug,
		Email:      email,
		Phone:      validators.NormalizePhone(req.Phone),
		Profession: strings.TrimSpace(req.Profession),
		Status:     models.ProfessionalPending,
	}

	var user models.User

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&professional).Error; err != nil {
			return fmt.Errorf("create professional: %w", err)
		}

		user = models.User{
			ProfessionalID: &professional.ID,
			Name:           professional.Name,
			Email:          email,
			PasswordHash:   string(hashed),
			Phone:          professional.Phone,
			Role:           models.RoleProfessional,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		hours := domain.DefaultWorkingHours(professional.ID)
		if err := tx.Create(&hours).Error; err != nil {
			return fmt.Errorf("create working hours: %w", err)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_register"})
		return
	}

	token, err := middleware.IssueToken(h.config, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":         userJSON(&user),
		"professional": professional,
		"token":        token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Preload("Professional").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	// profissional bloqueado não entra; pendente entra para completar o perfil
	if user.Professional != nil && user.Professional.Status == models.ProfessionalBlocked {
		c.JSON(http.StatusForbidden, gin.H{"error": "professional_blocked"})
		return
	}

	token, err := middleware.IssueToken(h.config, &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         userJSON(&user),
		"professional": user.Professional,
		"token":        token,
	})
}

// --------- Helpers ---------

// resolveSlug valida o slug informado ou gera um livre a partir do nome.
func (h *AuthHandler) resolveSlug(requested, name string) (string, error) {
	requested = strings.ToLower(strings.TrimSpace(requested))

	if requested != "" {
		if !validators.IsSlugValid(requested) {
			return "", errors.New("invalid_slug")
		}
		if h.slugTaken(requested) {
			return "", errors.New("slug_already_exists")
		}
		return requested, nil
	}

	base := validators.Slugify(name)
	if base == "" {
		return "", errors.New("invalid_slug")
	}

	slug := base
	for i := 2; h.slugTaken(slug); i++ {
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return slug, nil
}

func (h *AuthHandler) slugTaken(slug string) bool {
	var count int64
	h.db.Model(&models.Professional{}).Where("slug = ?", slug).Count(&count)
	return count > 0
}

func userJSON(user *models.User) gin.H {
	return gin.H{
		"id":              user.ID,
		"name":            user.Name,
		"email":           user.Email,
		"phone":           user.Phone,
		"role":            user.Role,
		"professional_id": user.ProfessionalID,
	}
}
