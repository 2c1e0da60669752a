package main

import (
	"net/http"
	"strconv"

	"efilling/models"
	"efilling/pkg/ocr"
	"efilling/pkg/pagination"
	"efilling/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ocrMinConfidence is the floor below which an extracted amount is discarded.
const ocrMinConfidence = 0.15

func listFakturHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	page, limit = pagination.Normalize(page, limit)

	q := db.Model(&models.Faktur{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status_pembayaran ILIKE ?", "%"+status+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondError(c, err)
		return
	}
	var items []models.Faktur
	if err := q.Order("created_at desc").
		Offset(pagination.Offset(page, limit)).Limit(limit).Find(&items).Error; err != nil {
		respondError(c, err)
		return
	}
	respondList(c, items, pagination.NewMeta(page, limit, total))
}

func getFakturHandler(c *gin.Context) {
	var item models.Faktur
	if err := db.Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "faktur not found")
		return
	}
	respondData(c, http.StatusOK, item, "success")
}

// createFakturHandler records an expense invoice. When nominal is omitted the
// proof-of-payment image goes through OCR to read the amount off the receipt.
func createFakturHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "user not found")
		return
	}
	var req struct {
		Deskripsi        string `form:"deskripsi" binding:"required,min=3,max=512"`
		Nominal          string `form:"nominal"`
		MetodePembayaran string `form:"metode_pembayaran" binding:"max=64"`
		StatusPembayaran string `form:"status_pembayaran" binding:"max=64"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	data, fileName, err := readFormFile(c, "bukti_pembayaran")
	if err != nil {
		respondError(c, err)
		return
	}
	if data == nil {
		respondError(c, errBadRequest("bukti_pembayaran file is required"))
		return
	}

	var nominal int64
	if req.Nominal != "" {
		nominal, err = strconv.ParseInt(req.Nominal, 10, 64)
		if err != nil || nominal <= 0 {
			respondError(c, errBadRequest("nominal must be a positive integer"))
			return
		}
	} else if cfg.OCREnabled {
		amt, conf, raw, ocrErr := ocr.ExtractAmount(data)
		if ocrErr != nil || amt <= 0 || conf <= ocrMinConfidence {
			respondError(c, errBadRequest("nominal is required (could not read an amount from bukti_pembayaran)"))
			return
		}
		log.Info().Int64("amount", amt).Float64("confidence", conf).Str("raw", raw).
			Msg("faktur nominal filled from OCR")
		nominal = amt
	} else {
		respondError(c, errBadRequest("nominal is required"))
		return
	}

	url, err := store.Store(c.Request.Context(), storage.BucketFaktur, data, fileName)
	if err != nil {
		respondError(c, err)
		return
	}
	item := models.Faktur{
		Deskripsi:          req.Deskripsi,
		Nominal:            nominal,
		MetodePembayaran:   req.MetodePembayaran,
		StatusPembayaran:   req.StatusPembayaran,
		BuktiPembayaranURL: url,
		CreatedBy:          user.NomorIdentitas,
		UpdatedBy:          user.NomorIdentitas,
		UserID:             user.ID,
	}
	if err := db.Create(&item).Error; err != nil {
		if rmErr := store.Remove(c.Request.Context(), storage.BucketFaktur, url); rmErr != nil {
			log.Warn().Err(rmErr).Str("url", url).Msg("failed to clean up upload after insert failure")
		}
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, item, "faktur created")
}

func updateFakturHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, "user not found")
		return
	}
	var item models.Faktur
	if err := db.Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "faktur not found")
		return
	}
	if v := c.PostForm("deskripsi"); v != "" {
		item.Deskripsi = v
	}
	if v := c.PostForm("metode_pembayaran"); v != "" {
		item.MetodePembayaran = v
	}
	if v := c.PostForm("status_pembayaran"); v != "" {
		item.StatusPembayaran = v
	}
	if v := c.PostForm("nominal"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			respondError(c, errBadRequest("nominal must be a positive integer"))
			return
		}
		item.Nominal = n
	}

	data, fileName, err := readFormFile(c, "bukti_pembayaran")
	if err != nil {
		respondError(c, err)
		return
	}
	if data != nil {
		url, err := store.Replace(c.Request.Context(), storage.BucketFaktur, item.BuktiPembayaranURL, data, fileName)
		if err != nil {
			respondError(c, err)
			return
		}
		item.BuktiPembayaranURL = url
	}

	item.UpdatedBy = user.NomorIdentitas
	if err := db.Save(&item).Error; err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, item, "faktur updated")
}

func deleteFakturHandler(c *gin.Context) {
	var item models.Faktur
	if err := db.Where("id = ?", c.Param("id")).First(&item).Error; err != nil {
		respondMessage(c, http.StatusNotFound, "faktur not found")
		return
	}
	if err := db.Delete(&item).Error; err != nil {
		respondError(c, err)
		return
	}
	if err := store.Remove(c.Request.Context(), storage.BucketFaktur, item.BuktiPembayaranURL); err != nil {
		log.Warn().Err(err).Str("url", item.BuktiPembayaranURL).Msg("failed to remove bukti pembayaran after delete")
	}
	respondMessage(c, http.StatusOK, "faktur deleted")
}
