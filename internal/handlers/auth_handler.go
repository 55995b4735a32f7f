package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coachtrack/internal/httperr"
	ucAccount "github.com/BruksfildServices01/coachtrack/internal/usecase/account"
)

type AuthHandler struct {
	register *ucAccount.Register
	login    *ucAccount.Login
}

func NewAuthHandler(register *ucAccount.Register, login *ucAccount.Login) *AuthHandler {
	return &AuthHandler{register: register, login: login}
}

// --------- Requests ---------

type RegisterRequest struct {
	Firstname string `json:"firstname" binding:"required,max=50"`
	Lastname  string `json:"lastname" binding:"required,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Gender    string `json:"gender" binding:"required,oneof=male female"`
	Age       int    `json:"age" binding:"required,gt=0,lt=130"`
	Role      string `json:"role" binding:"required"`

	Nationality *string  `json:"nationality"`
	Language    *string  `json:"language"`
	City        *string  `json:"city"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Weight      *float64 `json:"weight"`
	Height      *float64 `json:"height"`
	Goal        *string  `json:"goal" binding:"omitempty,oneof=lose_weight gain_muscle maintain_weight"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	session, err := h.register.Execute(c.Request.Context(), ucAccount.RegisterInput{
		Firstname:   req.Firstname,
		Lastname:    req.Lastname,
		Email:       req.Email,
		Password:    req.Password,
		Gender:      req.Gender,
		Age:         req.Age,
		Role:        req.Role,
		Nationality: req.Nationality,
		Language:    req.Language,
		City:        req.City,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Weight:      req.Weight,
		Height:      req.Height,
		Goal:        req.Goal,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	body := sessionBody(session)
	body["message"] = "User created successfully"
	c.JSON(http.StatusCreated, body)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	session, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionBody(session))
}

func sessionBody(s *ucAccount.Session) gin.H {
	return gin.H{
		"access_token": s.Token,
		"token_type":   "bearer",
		"user": gin.H{
			"id":          s.User.ID,
			"firstname":   s.User.Firstname,
			"role":        s.User.Role,
			"unique_code": s.User.UniqueCode,
		},
	}
}
