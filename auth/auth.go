package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"safeplate/config"
	"safeplate/middleware"
	"safeplate/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 48 * time.Hour

// Service handles the single admin account. Credentials live in config;
// there is no user table.
type Service struct {
	cfg config.Config
}

func New(cfg config.Config) *Service {
	return &Service{cfg: cfg}
}

// HandleLogin serves POST /api/auth/login. On success the token is set as a
// cookie (the UI relies on it) and also returned in the body for API
// clients. Failures are uniform: no hint whether the username exists.
func (s *Service) HandleLogin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "invalid login body")
		return
	}

	if input.Username != s.cfg.AdminUsername ||
		bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPasswordHash), []byte(input.Password)) != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := s.issueToken(input.Username)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "success", "token": token})
}

func (s *Service) issueToken(username string) (string, error) {
	claims := middleware.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.cfg.JWTSecret)
}
