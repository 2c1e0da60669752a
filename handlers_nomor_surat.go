package main

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"efilling/models"
	"efilling/pkg/nomor"
	"efilling/pkg/pagination"

	"github.com/gin-gonic/gin"
)

// nomorParam strips the leading slash the catch-all route parameter carries.
func nomorParam(c *gin.Context) string {
	return strings.TrimPrefix(c.Param("nomor"), "/")
}

func listNomorSuratHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = pagination.Normalize(page, limit)

	q := db.Model(&models.NomorSurat{})
	if kategori := c.Query("kategori"); kategori != "" {
		q = q.Where("kategori ILIKE ?", "%"+kategori+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}
	var items []models.NomorSurat
	if err := q.Order("created_at desc").
		Offset(pagination.Offset(page, limit)).Limit(limit).Find(&items).Error; err != nil {
		respondError(c, err)
		return
	}
	respondList(c, items, pagination.NewMeta(page, limit, total))
}

func getNomorSuratHandler(c *gin.Context) {
	var item models.NomorSurat
	if err := db.Where("nomor = ?", nomorParam(c)).First(&item).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "nomor surat not found")
		return
	}
	respondData(c, http.StatusOK, item, "success")
}

// createNomorSuratHandler generates the next reference number. The sequence is
// the current row count plus one; two concurrent creates can compute the same
// number, in which case the primary key rejects the second insert and the
// caller gets a Conflict instead of a silent retry.
func createNomorSuratHandler(c *gin.Context) {
	if _, ok := getUserFromContext(c); !ok {
		respondMessage(c, http.StatusUnauthorized, "user not found")
		return
	}
	var req struct {
		Keyword   string `json:"keyword" binding:"required,min=1,max=100"`
		Deskripsi string `json:"deskripsi" binding:"required,min=3,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	var count int64
	if err := db.Model(&models.NomorSurat{}).Count(&count).Error; err != nil {
		respondError(c, err)
		return
	}
	generated := nomor.Format(req.Keyword, int(count)+1, time.Now())

	var existing models.NomorSurat
	if err := db.Where("nomor = ?", generated).First(&existing).Error; err == nil {
		respondError(c, errConflict("nomor surat "+generated+" already exists"))
		return
	}
	item := models.NomorSurat{
		Nomor:     generated,
		Keyword:   req.Keyword,
		Deskripsi: req.Deskripsi,
		Kategori:  nomor.Kategori(req.Keyword),
	}
	if err := db.Create(&item).Error; err != nil {
		if isUniqueViolation(err) { // concurrent create computed the same sequence
			respondError(c, errConflict("nomor surat "+generated+" already exists"))
			return
		}
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, item, "nomor surat created")
}

// updateNomorSuratHandler patches keyword/deskripsi. A keyword change
// recomputes the category label and rewrites only the prefix segment of the
// issued number; sequence, month and year stay as issued.
func updateNomorSuratHandler(c *gin.Context) {
	var item models.NomorSurat
	if err := db.Where("nomor = ?", nomorParam(c)).First(&item).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "nomor surat not found")
		return
	}
	var req struct {
		Keyword   string `json:"keyword" binding:"omitempty,min=1,max=100"`
		Deskripsi string `json:"deskripsi" binding:"omitempty,min=3,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	updates := map[string]any{}
	if req.Deskripsi != "" {
		updates["deskripsi"] = req.Deskripsi
	}
	newNomor := item.Nomor
	if req.Keyword != "" {
		newNomor = nomor.RewritePrefix(item.Nomor, req.Keyword)
		updates["nomor"] = newNomor
		updates["keyword"] = req.Keyword
		updates["kategori"] = nomor.Kategori(req.Keyword)
	}
	if len(updates) == 0 {
		respondData(c, http.StatusOK, item, "nothing to update")
		return
	}
	if err := db.Model(&models.NomorSurat{}).Where("nomor = ?", item.Nomor).Updates(updates).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, errConflict("nomor surat "+newNomor+" already exists"))
			return
		}
		respondError(c, err)
		return
	}
	var updated models.NomorSurat
	if err := db.Where("nomor = ?", newNomor).First(&updated).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, updated, "nomor surat updated")
}

func deleteNomorSuratHandler(c *gin.Context) {
	var item models.NomorSurat
	if err := db.Where("nomor = ?", nomorParam(c)).First(&item).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "nomor surat not found")
		return
	}
	if err := db.Delete(&item).Error; err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "nomor surat deleted")
}
