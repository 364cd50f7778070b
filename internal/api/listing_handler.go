package api

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/rgoyal/flipfolio/internal/middleware"
	"github.com/rgoyal/flipfolio/internal/models"
)

// maxPhotoBytes caps a single photo upload at 10 MiB.
const maxPhotoBytes = 10 << 20

var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type listingRequest struct {
	Title               string  `json:"title"`
	Address             string  `json:"address"`
	AskingPrice         float64 `json:"askingPrice"`
	InteriorSqft        float64 `json:"interiorSqft"`
	RehabDurationMonths float64 `json:"rehabDurationMonths"`
	Notes               string  `json:"notes"`
}

type photoResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

type listingResponse struct {
	ID                  string          `json:"id"`
	OwnerID             string          `json:"ownerId"`
	Title               string          `json:"title"`
	Address             string          `json:"address"`
	AskingPrice         float64         `json:"askingPrice"`
	InteriorSqft        float64         `json:"interiorSqft"`
	RehabDurationMonths float64         `json:"rehabDurationMonths"`
	Notes               string          `json:"notes"`
	Photos              []photoResponse `json:"photos"`
	CreatedAt           int64           `json:"createdAt"`
	UpdatedAt           int64           `json:"updatedAt"`
}

func toListingResponse(l *models.Listing) listingResponse {
	photos := make([]photoResponse, 0, len(l.Photos))
	for _, p := range l.Photos {
		photos = append(photos, photoResponse{
			ID:        p.ID,
			URL:       p.URL,
			Caption:   p.Caption,
			CreatedAt: p.CreatedAt,
		})
	}
	return listingResponse{
		ID:                  l.ID,
		OwnerID:             l.OwnerID,
		Title:               l.Title,
		Address:             l.Address,
		AskingPrice:         l.AskingPrice,
		InteriorSqft:        l.InteriorSqft,
		RehabDurationMonths: l.RehabDurationMonths,
		Notes:               l.Notes,
		Photos:              photos,
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
}

func (a *API) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	var req listingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeErrorMsg(w, http.StatusBadRequest, "title is required")
		return
	}

	listing := &models.Listing{
		Title:               req.Title,
		Address:             req.Address,
		AskingPrice:         req.AskingPrice,
		InteriorSqft:        req.InteriorSqft,
		RehabDurationMonths: req.RehabDurationMonths,
		Notes:               req.Notes,
	}
	if err := a.listings.Create(r.Context(), middleware.GetUserID(r.Context()), listing); err != nil {
		a.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toListingResponse(listing))
}

func (a *API) handleListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := a.listings.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	out := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleGetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := a.listings.Get(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toListingResponse(listing))
}

func (a *API) handleUpdateListing(w http.ResponseWriter, r *http.Request) {
	var req listingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
		return
	}

	listing := &models.Listing{
		ID:                  r.PathValue("id"),
		Title:               req.Title,
		Address:             req.Address,
		AskingPrice:         req.AskingPrice,
		InteriorSqft:        req.InteriorSqft,
		RehabDurationMonths: req.RehabDurationMonths,
		Notes:               req.Notes,
	}
	if err := a.listings.Update(r.Context(), middleware.GetUserID(r.Context()), listing); err != nil {
		a.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toListingResponse(listing))
}

func (a *API) handleDeleteListing(w http.ResponseWriter, r *http.Request) {
	if err := a.listings.Delete(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id")); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUploadPhoto accepts a multipart form with a "photo" file field and an
// optional "caption" value.
func (a *API) handleUploadPhoto(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)
	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedPhotoExts[ext] {
		writeErrorMsg(w, http.StatusBadRequest, "unsupported photo format")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	photo, err := a.listings.AttachPhoto(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), ext, r.FormValue("caption"), data)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, photoResponse{
		ID:        photo.ID,
		URL:       photo.URL,
		Caption:   photo.Caption,
		CreatedAt: photo.CreatedAt,
	})
}
