package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ketan-2905/classbunk/config"
	"github.com/ketan-2905/classbunk/models"
)

const profileCacheTTL = 10 * time.Minute

// CachedStudent is the slice of the student row the middleware caches: just
// enough to authorize requests without a database round trip.
type CachedStudent struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	BranchID      uint   `json:"branchId"`
	DivisionID    uint   `json:"divisionId"`
	Semester      int    `json:"semester"`
	SubDivisionID string `json:"subDivisionId"`
}

// AuthMiddleware authenticates requests via the session cookie or a bearer
// token and puts the student id and cached profile on the context. The Redis
// client may be nil, in which case every request hits the database.
func AuthMiddleware(cfg *config.Config, db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("auth_token")
		if err != nil || tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader == "" {
				handleAuthError(c, "Authorization token not provided")
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				handleAuthError(c, "Invalid Authorization header format")
				return
			}
			tokenStr = parts[1]
		}

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return cfg.JWTSecret, nil
		})
		if err != nil || !token.Valid {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			handleAuthError(c, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			handleAuthError(c, "Invalid token claims")
			return
		}
		idFloat, ok := claims["student_id"].(float64)
		if !ok {
			handleAuthError(c, "Invalid student id in token")
			return
		}
		studentID := uint(idFloat)

		cacheKey := fmt.Sprintf("student:%d:profile", studentID)
		if rdb != nil {
			cached, err := rdb.Get(context.Background(), cacheKey).Result()
			if err == nil {
				var profile CachedStudent
				if json.Unmarshal([]byte(cached), &profile) == nil {
					setContextAndProceed(c, &profile)
					return
				}
				slog.Warn("Failed to unmarshal cached student profile", "student_id", studentID)
			} else if err != redis.Nil {
				slog.Error("Redis GET failed", "error", err, "student_id", studentID)
			}
		}

		var student models.Student
		if err := db.First(&student, studentID).Error; err != nil {
			c.SetCookie("auth_token", "", -1, "/", "", false, true)
			handleAuthError(c, "Student from token not found")
			return
		}

		profile := CachedStudent{
			ID:            student.ID,
			Name:          student.Name,
			Email:         student.Email,
			BranchID:      student.BranchID,
			DivisionID:    student.DivisionID,
			Semester:      student.Semester,
			SubDivisionID: student.SubDivisionID,
		}

		if rdb != nil {
			if data, err := json.Marshal(profile); err == nil {
				if err := rdb.Set(context.Background(), cacheKey, data, profileCacheTTL).Err(); err != nil {
					slog.Error("Failed to cache student profile", "error", err, "student_id", studentID)
				}
			}
		}

		setContextAndProceed(c, &profile)
	}
}

func setContextAndProceed(c *gin.Context, profile *CachedStudent) {
	c.Set("student_id", profile.ID)
	c.Set("student", *profile)
	c.Next()
}

func handleAuthError(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	c.Abort()
}
