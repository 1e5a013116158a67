package handlers

import (
	"errors"
	"net/http"
	"time"

	providerRepo "carebook/database/repository/provider"
	seekerRepo "carebook/database/repository/seeker"
	"carebook/models"
	"carebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 72 * time.Hour

// AuthHandler issues identities for providers and seekers. The booking
// engine itself only ever sees the resulting {userId, role} pair.
type AuthHandler struct {
	ProviderRepo providerRepo.ProviderRepository
	SeekerRepo   seekerRepo.SeekerRepository
}

func NewAuthHandler(pr providerRepo.ProviderRepository, sr seekerRepo.SeekerRepository) *AuthHandler {
	return &AuthHandler{ProviderRepo: pr, SeekerRepo: sr}
}

type providerSignupInput struct {
	Name                      string                   `json:"name" binding:"required"`
	Email                     string                   `json:"email" binding:"required,email"`
	Password                  string                   `json:"password" binding:"required,min=8"`
	PhoneNumber               string                   `json:"phoneNumber"`
	Address                   string                   `json:"address"`
	Lat                       float64                  `json:"lat"`
	Lon                       float64                  `json:"lon"`
	ServiceLevels             []models.ServiceOffering `json:"serviceLevels" binding:"required"`
	AdvanceNoticeHours        int                      `json:"advanceNoticeHours"`
	ConfirmationDeadlineHours int                      `json:"booking_confirmation_deadline_hours"`
}

func (h *AuthHandler) ProviderSignup(c *gin.Context) {
	var in providerSignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	if _, err := h.ProviderRepo.GetByEmail(c.Request.Context(), in.Email); err == nil {
		utils.JSONError(c, http.StatusConflict, "email_taken", "a provider with this email already exists")
		return
	} else if !errors.Is(err, providerRepo.ErrProviderNotFound) {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "failed to hash password")
		return
	}

	provider := &models.Provider{
		ID: uuid.New().String(),
		Profile: models.ProviderProfile{
			Name:        in.Name,
			Email:       in.Email,
			PhoneNumber: in.PhoneNumber,
			Address:     in.Address,
			Status:      "active",
			LocationGeo: models.NewGeoPoint(in.Lat, in.Lon),
		},
		Security:                  models.Security{PasswordHash: string(hash)},
		ServiceLevels:             in.ServiceLevels,
		AdvanceNoticeHours:        in.AdvanceNoticeHours,
		ConfirmationDeadlineHours: in.ConfirmationDeadlineHours,
	}
	if err := h.ProviderRepo.Create(c.Request.Context(), provider); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	token, err := utils.GenerateToken(provider.ID, provider.Profile.Email, "provider", tokenLifetime)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": provider.ID, "token": token})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) ProviderLogin(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	provider, err := h.ProviderRepo.GetByEmail(c.Request.Context(), in.Email)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid_credentials", "email or password is incorrect")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(provider.Security.PasswordHash), []byte(in.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid_credentials", "email or password is incorrect")
		return
	}
	token, err := utils.GenerateToken(provider.ID, provider.Profile.Email, "provider", tokenLifetime)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": provider.ID, "token": token})
}

type seekerSignupInput struct {
	Name        string  `json:"name" binding:"required"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	PhoneNumber string  `json:"phoneNumber"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

func (h *AuthHandler) SeekerSignup(c *gin.Context) {
	var in seekerSignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	if _, err := h.SeekerRepo.GetByEmail(c.Request.Context(), in.Email); err == nil {
		utils.JSONError(c, http.StatusConflict, "email_taken", "a seeker with this email already exists")
		return
	} else if !errors.Is(err, seekerRepo.ErrSeekerNotFound) {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "failed to hash password")
		return
	}

	seeker := &models.Seeker{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Address:     in.Address,
		Security:    models.Security{PasswordHash: string(hash)},
		LocationGeo: models.NewGeoPoint(in.Lat, in.Lon),
	}
	if err := h.SeekerRepo.Create(c.Request.Context(), seeker); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	token, err := utils.GenerateToken(seeker.ID, seeker.Email, "seeker", tokenLifetime)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": seeker.ID, "token": token})
}

func (h *AuthHandler) SeekerLogin(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}
	seeker, err := h.SeekerRepo.GetByEmail(c.Request.Context(), in.Email)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid_credentials", "email or password is incorrect")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(seeker.Security.PasswordHash), []byte(in.Password)) != nil {
		utils.JSONError(c, http.StatusUnauthorized, "invalid_credentials", "email or password is incorrect")
		return
	}
	token, err := utils.GenerateToken(seeker.ID, seeker.Email, "seeker", tokenLifetime)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "internal_error", "failed to issue token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": seeker.ID, "token": token})
}
