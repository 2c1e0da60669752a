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
)

func listSuratKeluarHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = pagination.Normalize(page, limit)

	q := db.Model(&models.SuratKeluar{})
	if tujuan := c.Query("tujuan"); tujuan != "" {
		q = q.Where("tujuan ILIKE ?", "%"+tujuan+"%")
	}
	if sifat := c.Query("sifat"); sifat != "" {
		q = q.Where("sifat_surat ILIKE ?", "%"+sifat+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}
	var items []models.SuratKeluar
	if err := q.Order("tanggal_keluar desc").
		Offset(pagination.Offset(page, limit)).Limit(limit).Find(&items).Error; err != nil {
		respondError(c, err)
		return
	}
	respondList(c, items, pagination.NewMeta(page, limit, total))
}

func getSuratKeluarHandler(c *gin.Context) {
	var item models.SuratKeluar
	if err := db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "surat keluar not found")
		return
	}
	respondData(c, http.StatusOK, item, "success")
}

func createSuratKeluarHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "user not found")
		return
	}
	var req struct {
		NoSuratKeluar string `form:"no_surat_keluar" binding:"required,max=128"`
		Tujuan        string `form:"tujuan" binding:"required,max=255"`
		Organisasi    string `form:"organisasi" binding:"max=255"`
		TanggalKeluar string `form:"tanggal_keluar" binding:"required"`
		SifatSurat    string `form:"sifat_surat" binding:"max=64"`
		Keterangan    string `form:"keterangan"`
		NomorSurat    string `form:"nomor_surat"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	keluar, err := dateutil.Parse(req.TanggalKeluar)
	if err != nil {
		respondError(c, errBadRequest("tanggal_keluar: "+err.Error()))
		return
	}
	var nomorID *string
	if req.NomorSurat != "" {
		var ns models.NomorSurat
		if err := db.Where("nomor = ?", req.NomorSurat).First(&ns).Error; err != nil {
			respondError(c, errBadRequest("nomor_surat does not reference a generated number"))
			return
		}
		nomorID = &ns.Nomor
	}
	data, fileName, err := readFormFile(c, "gambar")
	if err != nil {
		respondError(c, err)
		return
	}
	if data == nil {
		respondError(c, errBadRequest("gambar file is required"))
		return
	}

	url, err := store.Store(c.Request.Context(), storage.BucketSuratKeluar, data, fileName)
	if err != nil {
		respondError(c, err)
		return
	}
	item := models.SuratKeluar{
		NoSuratKeluar: req.NoSuratKeluar,
		Tujuan:        req.Tujuan,
		Organisasi:    req.Organisasi,
		TanggalKeluar: keluar,
		SifatSurat:    req.SifatSurat,
		GambarURL:     url,
		Keterangan:    req.Keterangan,
		UserID:        user.ID,
		NomorSuratID:  nomorID,
	}
	if err := db.Create(&item).Error; err != nil {
		if rmErr := store.Remove(c.Request.Context(), storage.BucketSuratKeluar, url); rmErr != nil {
			log.Warn().Err(rmErr).Str("url", url).Msg("failed to clean up upload after insert failure")
		}
		if isUniqueViolation(err) {
			respondError(c, errConflict("no_surat_keluar already exists"))
			return
		}
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, item, "surat keluar created")
}

func updateSuratKeluarHandler(c *gin.Context) {
	var item models.SuratKeluar
	if err := db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "surat keluar not found")
		return
	}
	if v := c.PostForm("no_surat_keluar"); v != "" {
		item.NoSuratKeluar = v
	}
	if v := c.PostForm("tujuan"); v != "" {
		item.Tujuan = v
	}
	if v := c.PostForm("organisasi"); v != "" {
		item.Organisasi = v
	}
	if v := c.PostForm("sifat_surat"); v != "" {
		item.SifatSurat = v
	}
	if v := c.PostForm("keterangan"); v != "" {
		item.Keterangan = v
	}
	if v := c.PostForm("tanggal_keluar"); v != "" {
		t, err := dateutil.Parse(v)
		if err != nil {
			respondError(c, errBadRequest("tanggal_keluar: "+err.Error()))
			return
		}
		item.TanggalKeluar = t
	}
	if v := c.PostForm("nomor_surat"); v != "" {
		var ns models.NomorSurat
		if err := db.Where("nomor = ?", v).First(&ns).Error; err != nil {
			respondError(c, errBadRequest("nomor_surat does not reference a generated number"))
			return
		}
		item.NomorSuratID = &ns.Nomor
	}

	data, fileName, err := readFormFile(c, "gambar")
	if err != nil {
		respondError(c, err)
		return
	}
	if data != nil {
		url, err := store.Replace(c.Request.Context(), storage.BucketSuratKeluar, item.GambarURL, data, fileName)
		if err != nil {
			respondError(c, err)
			return
		}
		item.GambarURL = url
	}

	if err := db.Save(&item).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, errConflict("no_surat_keluar already exists"))
			return
		}
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, item, "surat keluar updated")
}

func deleteSuratKeluarHandler(c *gin.Context) {
	var item models.SuratKeluar
	if err := db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "surat keluar not found")
		return
	}
	if err := db.Delete(&item).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := store.Remove(c.Request.Context(), storage.BucketSuratKeluar, item.GambarURL); err != nil {
		log.Warn().Err(err).Str("url", item.GambarURL).Msg("failed to remove gambar after delete")
	}
	respondMessage(c, http.StatusOK, "surat keluar deleted")
}
