package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pranamithra/scheduler/internal/config"
	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/identity"
	"github.com/pranamithra/scheduler/internal/models"
	"github.com/pranamithra/scheduler/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	emails validators.EmailChecker
	log    zerolog.Logger
}

func NewAuthHandler(
	db *gorm.DB,
	cfg *config.Config,
	emails validators.EmailChecker,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, emails: emails, log: log}
}

// --------- Requests ---------

type RegisterCustomerRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth"`
	Age         int    `json:"age" binding:"omitempty,min=0,max=150"`
	Address     string `json:"address"`
	Gender      string `json:"gender"`
}

type RegisterDoctorRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	Phone          string `json:"phone"`
	HospitalName   string `json:"hospital_name" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Register ---------

func (h *AuthHandler) RegisterCustomer(c *gin.Context) {
	var req RegisterCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	email, hashed, ok := h.prepareAccount(c, req.Email, req.Password)
	if !ok {
		return
	}

	customer := models.Customer{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: hashed,
		Phone:        req.Phone,
		DateOfBirth:  req.DateOfBirth,
		Age:          req.Age,
		Address:      req.Address,
		Gender:       req.Gender,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&customer).Error; err != nil {
		h.createFailed(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, customer.ID, identity.RoleCustomer, gin.H{
		"id":        customer.ID,
		"full_name": customer.FullName,
		"email":     customer.Email,
		"phone":     customer.Phone,
	})
}

// RegisterDoctor creates a PENDING doctor. An admin has to verify the account
// before customers can book it.
func (h *AuthHandler) RegisterDoctor(c *gin.Context) {
	var req RegisterDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	email, hashed, ok := h.prepareAccount(c, req.Email, req.Password)
	if !ok {
		return
	}

	doctor := models.Doctor{
		FullName:       strings.TrimSpace(req.FullName),
		Email:          email,
		PasswordHash:   hashed,
		Phone:          req.Phone,
		HospitalName:   req.HospitalName,
		Specialization: req.Specialization,
		Status:         models.DoctorPending,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&doctor).Error; err != nil {
		h.createFailed(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, doctor.ID, identity.RoleDoctor, gin.H{
		"id":             doctor.ID,
		"full_name":      doctor.FullName,
		"email":          doctor.Email,
		"specialization": doctor.Specialization,
		"status":         doctor.Status,
	})
}

// --------- Login ---------

func (h *AuthHandler) LoginCustomer(c *gin.Context) {
	var customer models.Customer
	h.login(c, identity.RoleCustomer, &customer, func() (uint, string, gin.H) {
		return customer.ID, customer.PasswordHash, gin.H{
			"id":        customer.ID,
			"full_name": customer.FullName,
			"email":     customer.Email,
		}
	})
}

func (h *AuthHandler) LoginDoctor(c *gin.Context) {
	var doctor models.Doctor
	h.login(c, identity.RoleDoctor, &doctor, func() (uint, string, gin.H) {
		return doctor.ID, doctor.PasswordHash, gin.H{
			"id":        doctor.ID,
			"full_name": doctor.FullName,
			"email":     doctor.Email,
			"status":    doctor.Status,
		}
	})
}

func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var admin models.Admin
	h.login(c, identity.RoleAdmin, &admin, func() (uint, string, gin.H) {
		return admin.ID, admin.PasswordHash, gin.H{
			"id":        admin.ID,
			"full_name": admin.FullName,
			"email":     admin.Email,
		}
	})
}

// login loads dest by email and checks the password. fields is called after
// dest has been filled.
func (h *AuthHandler) login(
	c *gin.Context,
	role identity.Role,
	dest any,
	fields func() (id uint, hash string, user gin.H),
) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(dest).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
			return
		}
		httperr.Respond(c, h.log, httperr.Store("login lookup", err))
		return
	}

	id, hash, user := fields()
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	h.respondWithToken(c, http.StatusOK, id, role, user)
}

// --------- Helpers ---------

func (h *AuthHandler) prepareAccount(c *gin.Context, rawEmail, password string) (string, string, bool) {
	email := strings.ToLower(strings.TrimSpace(rawEmail))

	if !h.emails.Valid(c.Request.Context(), email) {
		c.JSON(http.StatusBadRequest, httperr.HTTPError{
			Code:    "invalid_email_domain",
			Message: "The email domain does not look valid.",
			Field:   "email",
		})
		return "", "", false
	}

	hashed, err := HashPassword(password)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return "", "", false
	}
	return email, hashed, true
}

func (h *AuthHandler) createFailed(c *gin.Context, err error) {
	if httperr.IsUniqueViolation(err, "") {
		c.JSON(http.StatusConflict, httperr.HTTPError{
			Code:    "email_already_exists",
			Message: "An account with this email already exists.",
			Field:   "email",
		})
		return
	}
	httperr.Respond(c, h.log, httperr.Store("create account", err))
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, id uint, role identity.Role, user gin.H) {
	token, err := GenerateToken(h.config, id, role, time.Now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a token.")
		return
	}

	c.JSON(status, gin.H{
		"user":  user,
		"role":  role,
		"token": token,
	})
}

// HashPassword bcrypt-hashes a plain password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// --------- JWT ---------

// GenerateToken signs the claims AuthMiddleware reads back: sub and role.
func GenerateToken(cfg *config.Config, userID uint, role identity.Role, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"exp":  now.Add(cfg.JWTExpiry).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}
