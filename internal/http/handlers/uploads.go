package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"airportbot/internal/http/middleware"
)

const maxUploadBytes = 10 << 20

var errUploadTooLarge = errors.New("file too large")

// readUpload returns the multipart "file" part and its declared content type.
func readUpload(c *gin.Context) ([]byte, string, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "missing_file", "file is required", nil)
		return nil, "", false
	}
	if fh.Size > maxUploadBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "file_too_large", errUploadTooLarge.Error(), nil)
		return nil, "", false
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_file", err.Error(), nil)
		return nil, "", false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_file", err.Error(), nil)
		return nil, "", false
	}
	if len(data) > maxUploadBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "file_too_large", errUploadTooLarge.Error(), nil)
		return nil, "", false
	}
	return data, strings.ToLower(fh.Header.Get("Content-Type")), true
}

func (a *API) UploadPassport(c *gin.Context) {
	data, contentType, ok := readUpload(c)
	if !ok {
		return
	}
	if !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "invalid_file", "File must be an image", nil)
		return
	}
	svc := a.Passports
	svc.RequestID = middleware.GetRequestID(c)
	p, err := svc.Upload(c.Request.Context(), data)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (a *API) GetPassport(c *gin.Context) {
	p, err := a.Passports.Get(c.Request.Context(), c.Param("number"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Transcribe accepts a LINEAR16 wav in "file" and an optional "language" field.
func (a *API) Transcribe(c *gin.Context) {
	data, _, ok := readUpload(c)
	if !ok {
		return
	}
	language := c.DefaultPostForm("language", c.DefaultQuery("language", "fa"))
	svc := a.Speech
	svc.RequestID = middleware.GetRequestID(c)
	text, err := svc.Transcribe(c.Request.Context(), data, language)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text, "language": language})
}
