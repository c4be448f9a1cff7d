package handlers

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/ademilsodream/tcponto-app-sub002/config"
	"github.com/ademilsodream/tcponto-app-sub002/database"
	"github.com/ademilsodream/tcponto-app-sub002/middleware"
	"github.com/ademilsodream/tcponto-app-sub002/models"
)

type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var emp models.Employee
	if err := database.GetDB().Where("email = ?", req.Email).First(&emp).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if !emp.Active {
		respondError(w, http.StatusForbidden, "account deactivated")
		return
	}

	token, err := middleware.GenerateToken(&emp, h.config.JWTExpiration)
	if err != nil {
		respondInternalError(w, r, err, "failed to generate token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.config.JWTExpiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token":                token,
		"employee":             emp,
		"must_change_password": emp.MustChangePassword,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	emp := middleware.GetEmployeeFromContext(r.Context())
	if emp == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	respondJSON(w, http.StatusOK, emp)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	emp := middleware.GetEmployeeFromContext(r.Context())
	if emp == nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		respondError(w, http.StatusBadRequest, "current password is incorrect")
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		respondError(w, http.StatusBadRequest, "passwords do not match")
		return
	}

	if len(req.NewPassword) < 5 {
		respondError(w, http.StatusBadRequest, "password must be at least 5 characters")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respondInternalError(w, r, err, "failed to hash password")
		return
	}

	emp.PasswordHash = string(hashedPassword)
	emp.MustChangePassword = false
	if err := database.GetDB().Save(emp).Error; err != nil {
		respondInternalError(w, r, err, "failed to update password")
		return
	}

	// Reissue the token so the new session outlives the old one.
	token, err := middleware.GenerateToken(emp, h.config.JWTExpiration)
	if err != nil {
		respondInternalError(w, r, err, "failed to generate token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.config.JWTExpiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respondJSON(w, http.StatusOK, map[string]string{"token": token, "status": "password changed"})
}
