package security

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/yamagishi2448dev-lab/inventory-main-sub001/internal/repository"
	"github.com/yamagishi2448dev-lab/inventory-main-sub001/pkg/models"
)

var jwtSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if err := godotenv.Load(); err == nil {
			secret = os.Getenv("JWT_SECRET")
		}
	}

	if secret == "" {
		log.Println("Warning: JWT_SECRET is not set, using an insecure development secret.")
		secret = "insecure-development-secret"
	}

	jwtSecret = []byte(secret)
}

func AuthenticateUser(username, password string, repo *repository.Repository) (*models.User, error) {
	var user models.User

	query := repo.GoquDBWrapper.
		Select("id", "username", "fullname", "password_hash", "role").
		From("users").
		Where(goqu.Ex{"username": username})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("unknown user: %s", username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	return &user, nil
}

func GenerateJWT(userID int, role string, username string) (string, error) {
	claims := jwt.MapClaims{
		"userID":   userID,
		"role":     role,
		"username": username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func GetUserIDFromContext(c *gin.Context) (int, error) {
	raw, exists := c.Get("userID")
	if !exists {
		return 0, fmt.Errorf("no user in request context")
	}

	// MapClaims decode numbers as float64.
	id, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("userID claim is not numeric")
	}

	return int(id), nil
}
