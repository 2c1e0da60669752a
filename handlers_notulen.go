package main

import (
	"net/http"
	"strconv"

	"efilling/models"
	"efilling/pkg/dateutil"
	"efilling/pkg/pagination"
	"efilling/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func listNotulenHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = pagination.Normalize(page, limit)

	q := db.Model(&models.Notulen{})
	if judul := c.Query("judul"); judul != "" {
		q = q.Where("judul ILIKE ?", "%"+judul+"%")
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status ILIKE ?", "%"+status+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}
	var items []models.Notulen
	if err := q.Order("tanggal_rapat desc").
		Offset(pagination.Offset(page, limit)).Limit(limit).Find(&items).Error; err != nil {
		respondError(c, err)
		return
	}
	respondList(c, items, pagination.NewMeta(page, limit, total))
}

func getNotulenHandler(c *gin.Context) {
	var item models.Notulen
	if err := db.Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "notulen not found")
		return
	}
	respondData(c, http.StatusOK, item, "success")
}

// createNotulenHandler uploads the optional attachment first, then writes the
// row inside a transaction. The blob store cannot join the transaction, so a
// failed insert triggers a compensating delete of the fresh upload.
func createNotulenHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "user not found")
		return
	}
	var req struct {
		Judul         string `form:"judul" binding:"required,min=3,max=255"`
		TanggalRapat  string `form:"tanggal_rapat" binding:"required"`
		Lokasi        string `form:"lokasi" binding:"max=255"`
		PemimpinRapat string `form:"pemimpin_rapat" binding:"max=255"`
		Peserta       string `form:"peserta"`
		Agenda        string `form:"agenda"`
		Status        string `form:"status" binding:"max=64"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	rapat, err := dateutil.Parse(req.TanggalRapat)
	if err != nil {
		respondError(c, errBadRequest("tanggal_rapat: "+err.Error()))
		return
	}
	data, fileName, err := readFormFile(c, "dokumen_lampiran")
	if err != nil {
		respondError(c, err)
		return
	}

	url := ""
	if data != nil {
		url, err = store.Store(c.Request.Context(), storage.BucketNotulen, data, fileName)
		if err != nil {
			respondError(c, err)
			return
		}
	}
	item := models.Notulen{
		Judul:              req.Judul,
		TanggalRapat:       rapat,
		Lokasi:             req.Lokasi,
		PemimpinRapat:      req.PemimpinRapat,
		Peserta:            req.Peserta,
		Agenda:             req.Agenda,
		DokumenLampiranURL: url,
		Status:             req.Status,
		CreatedBy:          user.NomorIdentitas,
		UpdatedBy:          user.NomorIdentitas,
		UserID:             user.ID,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&item).Error
	})
	if err != nil {
		if url != "" {
			if rmErr := store.Remove(c.Request.Context(), storage.BucketNotulen, url); rmErr != nil {
				log.Warn().Err(rmErr).Str("url", url).Msg("failed to clean up upload after insert failure")
			}
		}
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, item, "notulen created")
}

func updateNotulenHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "user not found")
		return
	}
	var item models.Notulen
	if err := db.Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "notulen not found")
		return
	}
	if v := c.PostForm("judul"); v != "" {
		item.Judul = v
	}
	if v := c.PostForm("lokasi"); v != "" {
		item.Lokasi = v
	}
	if v := c.PostForm("pemimpin_rapat"); v != "" {
		item.PemimpinRapat = v
	}
	if v := c.PostForm("peserta"); v != "" {
		item.Peserta = v
	}
	if v := c.PostForm("agenda"); v != "" {
		item.Agenda = v
	}
	if v := c.PostForm("status"); v != "" {
		item.Status = v
	}
	if v := c.PostForm("tanggal_rapat"); v != "" {
		t, err := dateutil.Parse(v)
		if err != nil {
			respondError(c, errBadRequest("tanggal_rapat: "+err.Error()))
			return
		}
		item.TanggalRapat = t
	}

	data, fileName, err := readFormFile(c, "dokumen_lampiran")
	if err != nil {
		respondError(c, err)
		return
	}
	if data != nil {
		url, err := store.Replace(c.Request.Context(), storage.BucketNotulen, item.DokumenLampiranURL, data, fileName)
		if err != nil {
			respondError(c, err)
			return
		}
		item.DokumenLampiranURL = url
	}

	item.UpdatedBy = user.NomorIdentitas
	if err := db.Save(&item).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, item, "notulen updated")
}

// deleteNotulenHandler deletes the row inside a transaction, then removes the
// attachment. A crash in between orphans the file, never the record.
func deleteNotulenHandler(c *gin.Context) {
	var item models.Notulen
	if err := db.Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "notulen not found")
		return
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&item).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	if item.DokumenLampiranURL != "" {
		if err := store.Remove(c.Request.Context(), storage.BucketNotulen, item.DokumenLampiranURL); err != nil {
			log.Warn().Err(err).Str("url", item.DokumenLampiranURL).Msg("failed to remove lampiran after delete")
		}
	}
	respondMessage(c, http.StatusOK, "notulen deleted")
}
