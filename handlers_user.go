package main

import (
	"net/http"
	"strconv"
	"time"

	"efilling/models"
	"efilling/pkg/pagination"
	"efilling/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func registerHandler(c *gin.Context) {
	var req struct {
		NomorIdentitas string `json:"nomor_identitas" binding:"required,min=3,max=64"`
		Nama           string `json:"nama" binding:"required,min=3,max=255"`
		Password       string `json:"password" binding:"required,min=6"`
		Jurusan        string `json:"jurusan"`
		Angkatan       string `json:"angkatan"`
		RoleID         *uint  `json:"role_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	user, err := registerUser(req.NomorIdentitas, req.Nama, req.Password, req.Jurusan, req.Angkatan, req.RoleID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user, "user registered successfully")
}

func loginHandler(c *gin.Context) {
	var req struct {
		NomorIdentitas string `json:"nomor_identitas" binding:"required"`
		Password       string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	user, err := authenticateUser(req.NomorIdentitas, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := issueToken(user)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"token": token}, "login successful")
}

// refreshHandler re-signs a token with the same identity claims. It sits
// behind the auth middleware, so a revoked or expired token cannot be
// exchanged for a fresh one.
func refreshHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "user not found")
		return
	}
	token, err := issueToken(user)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"token": token}, "token refreshed")
}

func logoutHandler(c *gin.Context) {
	rawVal, _ := c.Get("rawToken")
	expVal, _ := c.Get("tokenExp")
	raw, _ := rawVal.(string)
	exp, _ := expVal.(time.Time)
	if err := blacklistToken(raw, exp); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "logout successful")
}

func listUsersHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = pagination.Normalize(page, limit)

	q := db.Model(&models.User{})
	if nama := c.Query("nama"); nama != "" {
		q = q.Where("nama ILIKE ?", "%"+nama+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}
	var users []models.User
	if err := q.Preload("Role").Order("created_at desc").
		Offset(pagination.Offset(page, limit)).Limit(limit).Find(&users).Error; err != nil {
		respondError(c, err)
		return
	}
	respondList(c, users, pagination.NewMeta(page, limit, total))
}

func getUserHandler(c *gin.Context) {
	var user models.User
	if err := db.Preload("Role").Where("nomor_identitas = ?", c.Param("id")).First(&user).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "user not found")
		return
	}
	respondData(c, http.StatusOK, user, "success")
}

// updateUserHandler patches profile fields by user id. Password is re-hashed
// only when supplied; a new foto replaces the previous one in storage.
func updateUserHandler(c *gin.Context) {
	var user models.User
	if err := db.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "user not found")
		return
	}
	if v := c.PostForm("nama"); v != "" {
		user.Nama = v
	}
	if v := c.PostForm("jurusan"); v != "" {
		user.Jurusan = v
	}
	if v := c.PostForm("angkatan"); v != "" {
		user.Angkatan = v
	}
	if v := c.PostForm("role_id"); v != "" {
		rid, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			respondError(c, errBadRequest("role_id must be numeric"))
			return
		}
		var role models.Role
		if err := db.First(&role, uint(rid)).Error; err != nil {
			respondError(c, errBadRequest("unknown role_id"))
			return
		}
		user.RoleID = &role.ID
	}
	if v := c.PostForm("password"); v != "" {
		if len(v) < 6 {
			respondError(c, errBadRequest("password too short (min 6)"))
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(v), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, err)
			return
		}
		user.Password = hashed
	}

	data, fileName, err := readFormFile(c, "foto")
	if err != nil {
		respondError(c, err)
		return
	}
	if data != nil {
		url, err := store.Replace(c.Request.Context(), storage.BucketAsisten, user.FotoURL, data, fileName)
		if err != nil {
			respondError(c, err)
			return
		}
		user.FotoURL = url
	}

	if err := db.Save(&user).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, user, "user updated")
}

func deleteUserHandler(c *gin.Context) {
	var user models.User
	if err := db.Where("nomor_identitas = ?", c.Param("id")).First(&user).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "user not found")
		return
	}
	if err := db.Delete(&user).Error; err != nil {
		respondError(c, err)
		return
	}
	if user.FotoURL != "" {
		if err := store.Remove(c.Request.Context(), storage.BucketAsisten, user.FotoURL); err != nil {
			log.Warn().Err(err).Str("url", user.FotoURL).Msg("failed to remove user foto after delete")
		}
	}
	respondMessage(c, http.StatusOK, "user deleted")
}
