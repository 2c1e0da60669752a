package main

import (
	"errors"
	"io"
	"net/http"
	"time"

	"efilling/pkg/storage"

	"github.com/gin-gonic/gin"
)

const presignTTL = time.Hour

// readFormFile reads an optional multipart file field fully into memory.
// Returns (nil, "", nil) when the field is absent.
func readFormFile(c *gin.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", nil
		}
		return nil, "", errBadRequest("invalid " + field + " upload: " + err.Error())
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Filename, nil
}

// downloadFileHandler streams a stored file by bare filename. The bucket is
// unknown at this endpoint, so the storage client searches all of them.
func downloadFileHandler(c *gin.Context) {
	fileName := c.Param("fileName")
	rc, info, err := store.ResolveStream(c.Request.Context(), "", fileName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondMessage(c, http.StatusNotFound, "file not found")
			return
		}
		respondError(c, err)
		return
	}
	defer rc.Close()
	extra := map[string]string{
		"Content-Disposition": `attachment; filename="` + fileName + `"`,
	}
	c.DataFromReader(http.StatusOK, info.Size, info.ContentType, rc, extra)
}

// viewFileHandler returns a time-limited presigned URL instead of the bytes,
// for inline viewing by the frontend.
func viewFileHandler(c *gin.Context) {
	fileName := c.Param("fileName")
	url, err := store.ResolvePresignedURL(c.Request.Context(), "", fileName, presignTTL)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondMessage(c, http.StatusNotFound, "file not found")
			return
		}
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"url": url}, "success")
}
