package httpserver

import (
	"net/http"

	"github.com/woodline/backend/internal/domain"
	"github.com/woodline/backend/internal/usecase"
)

type profileResponse struct {
	ProfileID string `json:"profile_id"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
}

func toProfileResponse(p *domain.Profile) profileResponse {
	return profileResponse{
		ProfileID: p.ID.String(),
		Username:  p.User.Username,
		Email:     p.User.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		Address:   p.Address,
		City:      p.City,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
		Address   string `json:"address"`
		City      string `json:"city"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	profile, err := s.accounts.Register(r.Context(), usecase.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		City:      req.City,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProfileResponse(profile))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	profile, err := s.accounts.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileResponse(profile))
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing profile"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		profile, err := s.accounts.GetProfile(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(profile))
	case http.MethodPut:
		profile, err := s.accounts.GetProfile(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		var req struct {
			FirstName *string `json:"first_name"`
			LastName  *string `json:"last_name"`
			Phone     *string `json:"phone"`
			Address   *string `json:"address"`
			City      *string `json:"city"`
		}
		if !decodeBody(w, r, &req) {
			return
		}
		if req.FirstName != nil {
			profile.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			profile.LastName = *req.LastName
		}
		if req.Phone != nil {
			profile.Phone = *req.Phone
		}
		if req.Address != nil {
			profile.Address = *req.Address
		}
		if req.City != nil {
			profile.City = *req.City
		}
		if err := s.accounts.UpdateProfile(r.Context(), profile); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(profile))
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
