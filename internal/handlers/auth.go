package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/w1ncs/netcontrol/internal/middleware"
	"github.com/w1ncs/netcontrol/internal/models"
	"github.com/w1ncs/netcontrol/internal/utils"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	CallSign string `json:"callSign"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// login handles operator login
func (rt *Router) login(w http.ResponseWriter, req *http.Request) {
	var loginReq LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// 1. Find Profile
	var profile models.Profile
	if err := rt.db.Where("email = ?", loginReq.Email).First(&profile).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// 2. Check Password
	if !utils.CheckPasswordHash(loginReq.Password, profile.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// 3. Update Last Login
	now := time.Now()
	profile.LastLogin = &now
	rt.db.Save(&profile)

	// 4. Generate Tokens
	accessToken, refreshToken, err := utils.GenerateTokens(&profile, rt.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"profile": profile,
	})
}

// register handles operator registration
func (rt *Router) register(w http.ResponseWriter, req *http.Request) {
	var regReq RegisterRequest
	if err := json.NewDecoder(req.Body).Decode(&regReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	callSign := utils.NormalizeCallSign(regReq.CallSign)
	if !utils.ValidCallSign(callSign) {
		respondError(w, http.StatusBadRequest, "A valid call sign is required")
		return
	}
	if len(regReq.Password) < 8 {
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	hashedPassword, err := utils.HashPassword(regReq.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	profile := models.Profile{
		Email:    regReq.Email,
		Password: hashedPassword,
		CallSign: callSign,
		Name:     regReq.Name,
		Location: regReq.Location,
		Role:     models.RoleUser,
	}

	if err := rt.db.Create(&profile).Error; err != nil {
		respondError(w, http.StatusBadRequest, "Failed to create profile (email or call sign might exist)")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&profile, rt.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Profile created but failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Operator registered successfully",
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"profile": profile,
	})
}

// logout handles operator logout. Tokens are stateless; the client drops
// them along with any in-memory passcode grants.
func (rt *Router) logout(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// changePassword lets an authenticated operator rotate their password
func (rt *Router) changePassword(w http.ResponseWriter, req *http.Request) {
	var body ChangePasswordRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	caller := middleware.CallerFrom(req)
	var profile models.Profile
	if err := rt.db.First(&profile, "id = ?", caller.ProfileID).Error; err != nil {
		respondError(w, http.StatusUnauthorized, "Profile not found")
		return
	}

	if !utils.CheckPasswordHash(body.CurrentPassword, profile.Password) {
		respondError(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}
	if len(body.NewPassword) < 8 {
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	hashed, err := utils.HashPassword(body.NewPassword)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	profile.Password = hashed
	if err := rt.db.Save(&profile).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update password")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}
