package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"efilling/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// registerUser creates an account keyed by nomor_identitas. A missing role
// defaults to "asisten".
func registerUser(nomorIdentitas, nama, password, jurusan, angkatan string, roleID *uint) (*models.User, error) {
	nomorIdentitas = strings.TrimSpace(nomorIdentitas)
	// pre-check existing (optimistic)
	var existing models.User
	if err := db.Where("nomor_identitas = ?", nomorIdentitas).First(&existing).Error; err == nil {
		return nil, errConflict("user already exists")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if roleID == nil {
		var role models.Role
		if err := db.Where("nama = ?", "asisten").FirstOrCreate(&role, models.Role{Nama: "asisten"}).Error; err != nil {
			return nil, fmt.Errorf("failed to ensure asisten role: %w", err)
		}
		roleID = &role.ID
	}
	user := models.User{
		NomorIdentitas: nomorIdentitas,
		Nama:           nama,
		Password:       hashed,
		RoleID:         roleID,
		Jurusan:        jurusan,
		Angkatan:       angkatan,
	}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) { // race after the initial check
			return nil, errConflict("user already exists")
		}
		return nil, err
	}
	return &user, nil
}

func authenticateUser(nomorIdentitas, password string) (*models.User, error) {
	var user models.User
	if err := db.Preload("Role").Where("nomor_identitas = ?", strings.TrimSpace(nomorIdentitas)).First(&user).Error; err != nil {
		return nil, errUnauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.Password, []byte(password)); err != nil {
		return nil, errUnauthorized("invalid credentials")
	}
	return &user, nil
}

// issueToken signs a 24h HS256 token carrying the caller's id and role.
func issueToken(user *models.User) (string, error) {
	roleName := ""
	var roleID uint
	if user.RoleID != nil {
		roleID = *user.RoleID
		var r models.Role
		if err := db.First(&r, roleID).Error; err == nil {
			roleName = r.Nama
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":             user.ID,
		"nomor_identitas": user.NomorIdentitas,
		"role_id":         roleID,
		"role":            roleName,
		"exp":             time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(jwtSecret)
}

func parseToken(raw string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errUnauthorized("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errUnauthorized("invalid claims")
	}
	return claims, nil
}

// isBlacklisted reports whether raw was revoked. Rows past their expiry no
// longer count; the token is rejected by its own exp claim anyway.
func isBlacklisted(raw string) bool {
	var cnt int64
	db.Model(&models.TokenBlacklist{}).
		Where("token = ? AND expires_at > ?", raw, time.Now()).
		Count(&cnt)
	return cnt > 0
}

// blacklistToken records raw until exp. Inserting an already-revoked token is
// a no-op success. Expired rows are pruned first so the table stays bounded.
func blacklistToken(raw string, exp time.Time) error {
	db.Where("expires_at <= ?", time.Now()).Delete(&models.TokenBlacklist{})
	entry := models.TokenBlacklist{Token: raw, ExpiresAt: exp}
	if err := db.Where("token = ?", raw).FirstOrCreate(&entry).Error; err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			respondAbort(c, http.StatusUnauthorized, "missing or invalid Authorization header")
			return
		}
		raw := authHeader[7:]
		claims, err := parseToken(raw)
		if err != nil {
			respondAbort(c, http.StatusUnauthorized, "invalid token")
			return
		}
		if isBlacklisted(raw) {
			respondAbort(c, http.StatusUnauthorized, "token has been revoked")
			return
		}
		userID, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		exp := time.Now().Add(tokenTTL)
		if v, err := claims.GetExpirationTime(); err == nil && v != nil {
			exp = v.Time
		}
		c.Set("userID", userID)
		c.Set("role", role)
		c.Set("rawToken", raw)
		c.Set("tokenExp", exp)
		c.Next()
	}
}

// getUserFromContext fetches the authenticated user using the id set by
// jwtAuthMiddleware.
func getUserFromContext(c *gin.Context) (*models.User, bool) {
	idVal, _ := c.Get("userID")
	if idVal == nil {
		return nil, false
	}
	var user models.User
	if err := db.Where("id = ?", idVal.(string)).First(&user).Error; err != nil {
		return nil, false
	}
	return &user, true
}
