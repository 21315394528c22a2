package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mbenali/campushub/internal/common"
	"github.com/mbenali/campushub/internal/server/models"
	"github.com/mbenali/campushub/internal/server/services"
)

type signUpRequest struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	ClassGroup string `json:"classGroup"`
	Role       string `json:"role"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type refreshTokensRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// userSummary is the profile shape returned to clients on login and /auth/me.
type userSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	ClassGroup string `json:"classGroup,omitempty"`
	StudentID  string `json:"studentId,omitempty"`
}

type loginResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         userSummary `json:"user"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type clubSummaryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PresidentID string `json:"presidentId,omitempty"`
}

func newUserSummary(u *models.User) userSummary {
	return userSummary{
		ID:         u.ID,
		Name:       u.DisplayName(),
		Email:      u.Email,
		Role:       string(u.Role),
		ClassGroup: u.ClassGroup,
		StudentID:  u.StudentID,
	}
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (s *HTTPServer) handleSignUp(w http.ResponseWriter, r *http.Request) {

	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	// The admin role is minted only through the seedadmin command.
	if role, ok := models.ParseRole(req.Role); ok && role == models.RoleAdmin {
		writeError(w, http.StatusBadRequest, "role not allowed")
		return
	}

	s.logger.Info(r.Context(), "Signup request")

	user, err := s.auth.SignUp(r.Context(), services.SignUpParams{
		Identifier: req.Identifier,
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		ClassGroup: req.ClassGroup,
		Role:       req.Role,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Signed up", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "account created",
		"userId":  user.ID,
	})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	pair, user, err := s.auth.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Logged in", "user_id", user.ID)
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         newUserSummary(user),
	})
}

func (s *HTTPServer) handleRefreshTokens(w http.ResponseWriter, r *http.Request) {

	var req refreshTokensRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	pair, err := s.auth.RefreshTokens(r.Context(), req.RefreshToken)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *HTTPServer) handleChangePassword(w http.ResponseWriter, r *http.Request) {

	p := principalFromContext(r.Context())
	if p == nil {
		s.writeServiceError(w, r, common.ErrUnauthenticated)
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "new password is required")
		return
	}

	if err := s.auth.ChangePassword(r.Context(), p.UserID, req.OldPassword, req.NewPassword); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Password changed", "user_id", p.UserID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {

	p := principalFromContext(r.Context())
	if p == nil {
		s.writeServiceError(w, r, common.ErrUnauthenticated)
		return
	}

	user, err := s.auth.Me(r.Context(), p.UserID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newUserSummary(user))
}

func (s *HTTPServer) handleClubSummary(w http.ResponseWriter, r *http.Request) {

	club, err := s.clubs.Find(r.Context(), r.PathValue("clubId"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.writeServiceError(w, r, common.ErrClubNotFound)
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, clubSummaryResponse{
		ID:          club.ID,
		Name:        club.Name,
		PresidentID: club.President.Key(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps the sentinel set onto HTTP statuses. Messages stay
// generic; internals are logged, not leaked.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorDuplicate):
		writeError(w, http.StatusBadRequest, "email or identifier already in use")
	case errors.Is(err, common.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, common.ErrRefreshTokenExpired):
		writeError(w, http.StatusUnauthorized, "refresh token expired")
	case errors.Is(err, common.ErrUserNotFound):
		writeError(w, http.StatusUnauthorized, "unknown user")
	case errors.Is(err, common.ErrUnauthenticated),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, common.ErrOldPasswordMismatch):
		writeError(w, http.StatusUnauthorized, "old password does not match")
	case errors.Is(err, common.ErrInsufficientRole),
		errors.Is(err, common.ErrNotClubPresident):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, common.ErrClubNotFound):
		writeError(w, http.StatusNotFound, "club not found")
	default:
		s.logger.Error(r.Context(), err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
