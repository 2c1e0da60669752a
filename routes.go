package main

import "github.com/gin-gonic/gin"

func setupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/users/register", registerHandler)
	api.POST("/users/login", loginHandler)

	authed := api.Group("")
	authed.Use(jwtAuthMiddleware())

	authed.POST("/users/refresh", refreshHandler)
	authed.POST("/users/logout", logoutHandler)
	authed.GET("/users", listUsersHandler)
	authed.GET("/users/:id", getUserHandler)
	authed.PATCH("/users/:id", updateUserHandler)
	authed.DELETE("/users/:id", deleteUserHandler)

	authed.GET("/surat", listSuratMasukHandler)
	authed.GET("/surat/:id", getSuratMasukHandler)
	authed.POST("/surat", createSuratMasukHandler)
	authed.PATCH("/surat/:id", updateSuratMasukHandler)
	authed.DELETE("/surat/:id", deleteSuratMasukHandler)

	authed.GET("/surat-keluar", listSuratKeluarHandler)
	authed.GET("/surat-keluar/:id", getSuratKeluarHandler)
	authed.POST("/surat-keluar", createSuratKeluarHandler)
	authed.PATCH("/surat-keluar/:id", updateSuratKeluarHandler)
	authed.DELETE("/surat-keluar/:id", deleteSuratKeluarHandler)

	authed.GET("/faktur", listFakturHandler)
	authed.GET("/faktur/:id", getFakturHandler)
	authed.POST("/faktur", createFakturHandler)
	authed.PATCH("/faktur/:id", updateFakturHandler)
	authed.DELETE("/faktur/:id", deleteFakturHandler)

	authed.GET("/notulen", listNotulenHandler)
	authed.GET("/notulen/:id", getNotulenHandler)
	authed.POST("/notulen", createNotulenHandler)
	authed.PATCH("/notulen/:id", updateNotulenHandler)
	authed.DELETE("/notulen/:id", deleteNotulenHandler)

	// Reference numbers contain '/' (e.g. H/UBL/LAB/08/02/25), so the detail
	// routes use a catch-all parameter.
	authed.GET("/nomor-surat", listNomorSuratHandler)
	authed.POST("/nomor-surat", createNomorSuratHandler)
	authed.GET("/nomor-surat/*nomor", getNomorSuratHandler)
	authed.PATCH("/nomor-surat/*nomor", updateNomorSuratHandler)
	authed.DELETE("/nomor-surat/*nomor", deleteNomorSuratHandler)

	authed.GET("/files/download/:fileName", downloadFileHandler)
	authed.GET("/files/view/:fileName", viewFileHandler)
}
