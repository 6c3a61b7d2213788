package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	cldapi "github.com/cloudinary/cloudinary-go/v2/api"

	"github.com/druktrails/bhutan-tourism-api/config"
)

// defaultUploadFolder is used when the request names no folder
const defaultUploadFolder = "druktrails"

var errUploadsDisabled = errors.New("cloudinary is not configured")

// CloudinaryHandler signs direct browser uploads to Cloudinary
type CloudinaryHandler struct {
	Config config.CloudinaryConfig
}

// UploadSignature is the set of parameters the admin UI posts to Cloudinary
type UploadSignature struct {
	Signature    string `json:"signature"`
	Timestamp    string `json:"timestamp"`
	APIKey       string `json:"apiKey"`
	CloudName    string `json:"cloudName"`
	UploadPreset string `json:"uploadPreset,omitempty"`
	Folder       string `json:"folder"`
}

type signatureRequest struct {
	Folder string `json:"folder"`
}

// GenerateSignature signs timestamp, folder and upload preset with the API secret
func (c CloudinaryHandler) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	if c.Config.CloudName == "" || c.Config.APIKey == "" || c.Config.APISecret == "" {
		config.ErrorStatus("uploads unavailable", http.StatusServiceUnavailable, w, errUploadsDisabled)
		return
	}

	var req signatureRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
			return
		}
	}
	folder := req.Folder
	if folder == "" {
		folder = defaultUploadFolder
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	params := url.Values{}
	params.Set("timestamp", timestamp)
	params.Set("folder", folder)
	if c.Config.UploadPreset != "" {
		params.Set("upload_preset", c.Config.UploadPreset)
	}
	signature, err := cldapi.SignParameters(params, c.Config.APISecret)
	if err != nil {
		config.ErrorStatus("failed to sign upload", http.StatusInternalServerError, w, err)
		return
	}

	writeJSON(w, http.StatusOK, UploadSignature{
		Signature:    signature,
		Timestamp:    timestamp,
		APIKey:       c.Config.APIKey,
		CloudName:    c.Config.CloudName,
		UploadPreset: c.Config.UploadPreset,
		Folder:       folder,
	})
}
