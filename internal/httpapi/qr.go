package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	qrDefaultSize = 256
	qrMaxSize     = 1024
)

// projectQR renders the public page URL as a PNG QR code for offline
// sharing. Works for unpublished pages too, so owners can print material
// before launch.
func (h *handlers) projectQR(w http.ResponseWriter, r *http.Request) {
	acct := accountFrom(r.Context())
	p, err := h.Projects.Get(r.Context(), acct.ID, chi.URLParam(r, "projectID"))
	if err != nil {
		respondError(w, h.Log, err)
		return
	}

	size := qrDefaultSize
	if s := r.URL.Query().Get("size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= qrMaxSize {
			size = n
		}
	}

	png, err := qrcode.Encode(h.PublicBaseURL+"/"+p.Slug, qrcode.Medium, size)
	if err != nil {
		respondError(w, h.Log, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	_, _ = w.Write(png)
}
