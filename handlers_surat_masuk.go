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

func listSuratMasukHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = pagination.Normalize(page, limit)

	q := db.Model(&models.SuratMasuk{})
	if sifat := c.Query("sifat"); sifat != "" {
		q = q.Where("sifat_surat ILIKE ?", "%"+sifat+"%")
	}
	if pengirim := c.Query("pengirim"); pengirim != "" {
		q = q.Where("pengirim ILIKE ?", "%"+pengirim+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}
	var items []models.SuratMasuk
	if err := q.Order("tanggal_diterima desc").
		Offset(pagination.Offset(page, limit)).Limit(limit).Find(&items).Error; err != nil {
		respondError(c, err)
		return
	}
	respondList(c, items, pagination.NewMeta(page, limit, total))
}

func getSuratMasukHandler(c *gin.Context) {
	var item models.SuratMasuk
	if err := db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "surat masuk not found")
		return
	}
	respondData(c, http.StatusOK, item, "success")
}

// createSuratMasukHandler records a received letter. The scanned file is
// mandatory and uploaded before the row is written; a failed insert deletes
// the fresh upload again.
func createSuratMasukHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "user not found")
		return
	}
	var req struct {
		NoSuratMasuk    string `form:"no_surat_masuk" binding:"required,max=128"`
		TanggalDiterima string `form:"tanggal_diterima" binding:"required"`
		Pengirim        string `form:"pengirim" binding:"required,max=255"`
		Penerima        string `form:"penerima" binding:"max=255"`
		Organisasi      string `form:"organisasi" binding:"max=255"`
		SifatSurat      string `form:"sifat_surat" binding:"max=64"`
		ExpiredData     string `form:"expired_data"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	diterima, err := dateutil.Parse(req.TanggalDiterima)
	if err != nil {
		respondError(c, errBadRequest("tanggal_diterima: "+err.Error()))
		return
	}
	kadaluarsa, err := dateutil.ParseOptional(req.ExpiredData)
	if err != nil {
		respondError(c, errBadRequest("expired_data: "+err.Error()))
		return
	}
	data, fileName, err := readFormFile(c, "scan_surat")
	if err != nil {
		respondError(c, err)
		return
	}
	if data == nil {
		respondError(c, errBadRequest("scan_surat file is required"))
		return
	}

	url, err := store.Store(c.Request.Context(), storage.BucketSuratMasuk, data, fileName)
	if err != nil {
		respondError(c, err)
		return
	}
	item := models.SuratMasuk{
		NoSuratMasuk:      req.NoSuratMasuk,
		TanggalDiterima:   diterima,
		Pengirim:          req.Pengirim,
		Penerima:          req.Penerima,
		Organisasi:        req.Organisasi,
		SifatSurat:        req.SifatSurat,
		ScanSuratURL:      url,
		TanggalKadaluarsa: kadaluarsa,
		UserID:            user.ID,
	}
	if err := db.Create(&item).Error; err != nil {
		if rmErr := store.Remove(c.Request.Context(), storage.BucketSuratMasuk, url); rmErr != nil {
			log.Warn().Err(rmErr).Str("url", url).Msg("failed to clean up upload after insert failure")
		}
		if isUniqueViolation(err) {
			respondError(c, errConflict("no_surat_masuk already exists"))
			return
		}
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, item, "surat masuk created")
}

// updateSuratMasukHandler patches any subset of fields, including the later
// disposition data, and optionally replaces the scanned file.
func updateSuratMasukHandler(c *gin.Context) {
	var item models.SuratMasuk
	if err := db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "surat masuk not found")
		return
	}
	if v := c.PostForm("no_surat_masuk"); v != "" {
		item.NoSuratMasuk = v
	}
	if v := c.PostForm("pengirim"); v != "" {
		item.Pengirim = v
	}
	if v := c.PostForm("penerima"); v != "" {
		item.Penerima = v
	}
	if v := c.PostForm("organisasi"); v != "" {
		item.Organisasi = v
	}
	if v := c.PostForm("sifat_surat"); v != "" {
		item.SifatSurat = v
	}
	if v := c.PostForm("diteruskan_kepada"); v != "" {
		item.DiteruskanKepada = v
	}
	if v := c.PostForm("isi_disposisi"); v != "" {
		item.IsiDisposisi = v
	}
	if v := c.PostForm("tanggal_diterima"); v != "" {
		t, err := dateutil.Parse(v)
		if err != nil {
			respondError(c, errBadRequest("tanggal_diterima: "+err.Error()))
			return
		}
		item.TanggalDiterima = t
	}
	if v := c.PostForm("expired_data"); v != "" {
		t, err := dateutil.Parse(v)
		if err != nil {
			respondError(c, errBadRequest("expired_data: "+err.Error()))
			return
		}
		item.TanggalKadaluarsa = &t
	}
	if v := c.PostForm("tanggal_penyelesaian"); v != "" {
		t, err := dateutil.Parse(v)
		if err != nil {
			respondError(c, errBadRequest("tanggal_penyelesaian: "+err.Error()))
			return
		}
		item.TanggalPenyelesaian = &t
	}

	data, fileName, err := readFormFile(c, "scan_surat")
	if err != nil {
		respondError(c, err)
		return
	}
	if data != nil {
		url, err := store.Replace(c.Request.Context(), storage.BucketSuratMasuk, item.ScanSuratURL, data, fileName)
		if err != nil {
			respondError(c, err)
			return
		}
		item.ScanSuratURL = url
	}

	if err := db.Save(&item).Error; err != nil {
		if isUniqueViolation(err) {
			respondError(c, errConflict("no_surat_masuk already exists"))
			return
		}
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, item, "surat masuk updated")
}

// deleteSuratMasukHandler removes the row first; losing the file cleanup
// afterwards orphans a blob, which beats a dangling record.
func deleteSuratMasukHandler(c *gin.Context) {
	var item models.SuratMasuk
	if err := db.First(&item, "id = ?", c.Param("id")).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "surat masuk not found")
		return
	}
	if err := db.Delete(&item).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := store.Remove(c.Request.Context(), storage.BucketSuratMasuk, item.ScanSuratURL); err != nil {
		log.Warn().Err(err).Str("url", item.ScanSuratURL).Msg("failed to remove scan after delete")
	}
	respondMessage(c, http.StatusOK, "surat masuk deleted")
}
