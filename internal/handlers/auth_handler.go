package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ketan-2905/classbunk/models"
)

const sessionTTL = 7 * 24 * time.Hour

type signupInput struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	BranchID        uint   `json:"branchId" binding:"required"`
	DivisionID      uint   `json:"division" binding:"required"`
	Semester        int    `json:"semester" binding:"required"`
	SapID           string `json:"sapId" binding:"required"`
	RollNo          string `json:"rollNo" binding:"required"`
	SubDivisionID   string `json:"subDivisionId"`
	ElectiveChoice1 string `json:"electiveChoice1"`
	ElectiveChoice2 string `json:"electiveChoice2"`
}

// SignupHandler registers a student and opens a session.
func (h *Handler) SignupHandler(c *gin.Context) {
	var in signupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var existing models.Student
	err := h.db.
		Where("email = ? OR sap_id = ? OR roll_no = ?", in.Email, in.SapID, in.RollNo).
		First(&existing).Error
	if err == nil {
		switch {
		case existing.Email == in.Email:
			c.JSON(http.StatusBadRequest, gin.H{"error": "A student with this email already exists"})
		case existing.SapID == in.SapID:
			c.JSON(http.StatusBadRequest, gin.H{"error": "A student with this SAP id already exists"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "A student with this roll number already exists"})
		}
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
		return
	}

	student := models.Student{
		Name:            in.Name,
		Email:           in.Email,
		Password:        string(hash),
		SapID:           in.SapID,
		RollNo:          in.RollNo,
		BranchID:        in.BranchID,
		DivisionID:      in.DivisionID,
		Semester:        in.Semester,
		SubDivisionID:   in.SubDivisionID,
		ElectiveChoice1: in.ElectiveChoice1,
		ElectiveChoice2: in.ElectiveChoice2,
	}
	if err := h.db.Create(&student).Error; err != nil {
		slog.Error("Failed to create student", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create student"})
		return
	}

	if err := h.issueSession(c, student.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not open session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Student created successfully"})
}

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler authenticates a student and opens a session.
func (h *Handler) LoginHandler(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var student models.Student
	if err := h.db.Where("email = ?", in.Email).First(&student).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(in.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := h.issueSession(c, student.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not open session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "student": student})
}

// LogoutHandler clears the session cookie and the cached profile.
func (h *Handler) LogoutHandler(c *gin.Context) {
	if id := currentStudentID(c); id != 0 && h.rdb != nil {
		h.rdb.Del(context.Background(), fmt.Sprintf("student:%d:profile", id))
	}
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) issueSession(c *gin.Context, studentID uint) error {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"student_id": studentID,
		"jti":        uuid.NewString(),
		"iat":        now.Unix(),
		"exp":        now.Add(sessionTTL).Unix(),
	})
	signed, err := token.SignedString(h.cfg.JWTSecret)
	if err != nil {
		slog.Error("Failed to sign session token", "error", err)
		return err
	}

	c.SetCookie("auth_token", signed, int(sessionTTL.Seconds()), "/", "", false, true)
	return nil
}
