package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"efilling/pkg/storage"

	"github.com/gin-gonic/gin"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. They need Postgres and MinIO; set
	// EFILLING_IT=1 plus the usual env to run them.
	if os.Getenv("EFILLING_IT") != "1" {
		t.Skip("integration tests are disabled; set EFILLING_IT=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	loadDotEnv()
	var err error
	cfg, err = loadConfig()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	jwtSecret = []byte(cfg.JWTSecret)
	initDB()
	store, err = storage.New(storage.Options{
		Endpoint:  cfg.MinioEndpoint,
		Port:      cfg.MinioPort,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		UseSSL:    cfg.MinioUseSSL,
	})
	if err != nil {
		t.Fatalf("storage: %v", err)
	}
	r := gin.Default()
	setupRoutes(r)
	return r
}

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)

	// 1. Register user
	regBody, _ := json.Marshal(map[string]string{
		"nomor_identitas": "2111500341",
		"nama":            "Integration User",
		"password":        "rahasia1",
	})
	resp := performRequest(r, http.MethodPost, "/api/users/register", bytes.NewBuffer(regBody), "", "application/json")
	if resp.Code != 200 && resp.Code != 400 {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 2. Login with the wrong password must 401 without a token
	badBody, _ := json.Marshal(map[string]string{"nomor_identitas": "2111500341", "password": "salah123"})
	resp = performRequest(r, http.MethodPost, "/api/users/login", bytes.NewBuffer(badBody), "", "application/json")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password expected 401 got %d body=%s", resp.Code, resp.Body.String())
	}

	// 3. Login
	loginBody, _ := json.Marshal(map[string]string{"nomor_identitas": "2111500341", "password": "rahasia1"})
	resp = performRequest(r, http.MethodPost, "/api/users/login", bytes.NewBuffer(loginBody), "", "application/json")
	if resp.Code != 200 {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var loginResp struct {
		Data map[string]any `json:"data"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &loginResp)
	token, _ := loginResp.Data["token"].(string)
	if token == "" {
		t.Fatalf("empty token in login response: %s", resp.Body.String())
	}

	// 4. Nomor surat: create two, then force a duplicate. Deleting the first
	// shrinks the row count back, so the next create recomputes the second
	// number's sequence and must be rejected as a duplicate.
	nsBody, _ := json.Marshal(map[string]string{"keyword": "H", "deskripsi": "perbaikan proyektor"})
	resp = performRequest(r, http.MethodPost, "/api/nomor-surat", bytes.NewBuffer(nsBody), token, "application/json")
	if resp.Code != 200 {
		t.Fatalf("create nomor surat failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var nsFirst struct {
		Data struct {
			Nomor string `json:"nomor_surat"`
		} `json:"data"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &nsFirst)
	if nsFirst.Data.Nomor == "" {
		t.Fatalf("missing nomor in create response: %s", resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/api/nomor-surat", bytes.NewBuffer(nsBody), token, "application/json")
	if resp.Code != 200 {
		t.Fatalf("create second nomor surat failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var nsSecond struct {
		Data struct {
			Nomor string `json:"nomor_surat"`
		} `json:"data"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &nsSecond)
	resp = performRequest(r, http.MethodDelete, "/api/nomor-surat/"+nsFirst.Data.Nomor, nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("delete nomor surat failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/api/nomor-surat", bytes.NewBuffer(nsBody), token, "application/json")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("duplicate nomor expected 400 got %d body=%s", resp.Code, resp.Body.String())
	}
	// remove the second number too so reruns start from a clean sequence
	resp = performRequest(r, http.MethodDelete, "/api/nomor-surat/"+nsSecond.Data.Nomor, nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("cleanup delete nomor surat failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 5. Create surat masuk (multipart with scan)
	noSurat := fmt.Sprintf("SM-IT-%d", time.Now().UnixNano())
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	_ = mw.WriteField("no_surat_masuk", noSurat)
	_ = mw.WriteField("tanggal_diterima", "2025-02-01")
	_ = mw.WriteField("pengirim", "Fakultas Teknologi Informasi")
	w, _ := mw.CreateFormFile("scan_surat", "scan.pdf")
	_, _ = w.Write([]byte("%PDF-1.4 test"))
	_ = mw.Close()
	resp = performRequest(r, http.MethodPost, "/api/surat", buf, token, mw.FormDataContentType())
	if resp.Code != 200 {
		t.Fatalf("create surat masuk failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var smCreated struct {
		Data struct {
			ID        uint   `json:"id"`
			ScanSurat string `json:"scan_surat"`
		} `json:"data"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &smCreated)
	if smCreated.Data.ID == 0 || smCreated.Data.ScanSurat == "" {
		t.Fatalf("create response missing id or scan url: %s", resp.Body.String())
	}

	// 5a. The stored scan must download back byte-for-byte
	scanKey := storage.KeyFromURL(smCreated.Data.ScanSurat)
	resp = performRequest(r, http.MethodGet, "/api/files/download/"+scanKey, nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("download scan failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	if !bytes.Equal(resp.Body.Bytes(), []byte("%PDF-1.4 test")) {
		t.Fatalf("downloaded scan does not match upload: %q", resp.Body.String())
	}

	// 5b. Replacing the scan must delete the old object and serve the new one
	buf = &bytes.Buffer{}
	mw = multipart.NewWriter(buf)
	w, _ = mw.CreateFormFile("scan_surat", "scan-v2.pdf")
	_, _ = w.Write([]byte("%PDF-1.4 revised"))
	_ = mw.Close()
	resp = performRequest(r, http.MethodPatch, fmt.Sprintf("/api/surat/%d", smCreated.Data.ID), buf, token, mw.FormDataContentType())
	if resp.Code != 200 {
		t.Fatalf("replace scan failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var smPatched struct {
		Data struct {
			ScanSurat string `json:"scan_surat"`
		} `json:"data"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &smPatched)
	newKey := storage.KeyFromURL(smPatched.Data.ScanSurat)
	if newKey == "" || newKey == scanKey {
		t.Fatalf("replace did not produce a new scan url: %s", resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/api/files/download/"+scanKey, nil, token, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("old scan should be gone after replace, got %d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/api/files/download/"+newKey, nil, token, "")
	if resp.Code != 200 || !bytes.Equal(resp.Body.Bytes(), []byte("%PDF-1.4 revised")) {
		t.Fatalf("new scan download mismatch status=%d body=%q", resp.Code, resp.Body.String())
	}

	// 5c. A non-numeric id is just an unknown record
	resp = performRequest(r, http.MethodGet, "/api/surat/does-not-exist", nil, token, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("non-numeric id expected 404 got %d body=%s", resp.Code, resp.Body.String())
	}

	// 6. Missing scan must 400 before any side effect
	buf = &bytes.Buffer{}
	mw = multipart.NewWriter(buf)
	_ = mw.WriteField("no_surat_masuk", noSurat+"-2")
	_ = mw.WriteField("tanggal_diterima", "2025-02-01")
	_ = mw.WriteField("pengirim", "BAAK")
	_ = mw.Close()
	resp = performRequest(r, http.MethodPost, "/api/surat", buf, token, mw.FormDataContentType())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("missing scan expected 400 got %d body=%s", resp.Code, resp.Body.String())
	}

	// 7. Paginated listing carries meta
	resp = performRequest(r, http.MethodGet, "/api/surat?page=1&limit=5", nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("list surat failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var listResp struct {
		Data struct {
			Meta struct {
				ItemsPerPage int `json:"itemsPerPage"`
			} `json:"meta"`
		} `json:"data"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &listResp)
	if listResp.Data.Meta.ItemsPerPage != 5 {
		t.Fatalf("expected itemsPerPage=5 got %d body=%s", listResp.Data.Meta.ItemsPerPage, resp.Body.String())
	}

	// 8. Deleting an unknown user is a 404 mentioning "not found"
	resp = performRequest(r, http.MethodDelete, "/api/users/0000000000", nil, token, "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("delete missing user expected 404 got %d body=%s", resp.Code, resp.Body.String())
	}
	if !bytes.Contains(resp.Body.Bytes(), []byte("not found")) {
		t.Fatalf("404 body should mention not found: %s", resp.Body.String())
	}

	// 9. Unauthorized access to a protected endpoint should be 401
	unauth := performRequest(r, http.MethodGet, "/api/surat", nil, "", "")
	if unauth.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthorized list got %d", unauth.Code)
	}

	// 10. Logout, then the same token must be rejected
	resp = performRequest(r, http.MethodPost, "/api/users/logout", nil, token, "")
	if resp.Code != 200 {
		t.Fatalf("logout failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/api/surat", nil, token, "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("blacklisted token expected 401 got %d body=%s", resp.Code, resp.Body.String())
	}
}

func TestMigrateCommand(t *testing.T) {
	if os.Getenv("EFILLING_IT") != "1" {
		t.Skip("integration tests are disabled; set EFILLING_IT=1 to enable")
	}
	loadDotEnv()
	var err error
	cfg, err = loadConfig()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	initDB()
}
