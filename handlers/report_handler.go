package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"vinyasaclub/models"
	"vinyasaclub/repository"
	"vinyasaclub/utils"
)

// Uploader publishes a generated file and returns where it can be fetched.
type Uploader interface {
	Upload(ctx context.Context, fileBytes []byte, filename, contentType string) (string, error)
}

type ReportHandler struct {
	Repo     *repository.ReportRepository
	SavePath string
	// Uploader is optional; without one reports are only saved locally.
	Uploader Uploader
	// RenderPDF defaults to headless Chrome.
	RenderPDF func(ctx context.Context, html []byte) ([]byte, error)
	Clock     Clock
}

// AttendanceReport renders the attendance sheet for ?date= (default today)
// to PDF, saves it, and uploads it when an uploader is configured.
func (h *ReportHandler) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	now := h.Clock.now()
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = utils.Today(now, h.Clock.loc())
	}
	if !models.ValidDate(date) {
		utils.WriteError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	saveDir := h.SavePath
	if saveDir == "" {
		saveDir = "./reports"
	}
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		log.Printf("create report directory: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to create save directory")
		return
	}

	data, err := utils.BuildAttendanceReportData(r.Context(), h.Repo, date, now.In(h.Clock.loc()))
	if err != nil {
		log.Printf("load attendance sheet for %s: %v", date, err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	html, err := utils.RenderAttendanceReportHTML(data)
	if err != nil {
		log.Printf("render attendance sheet for %s: %v", date, err)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	render := h.RenderPDF
	if render == nil {
		render = utils.HTMLToPDF
	}
	pdfBytes, err := render(r.Context(), html)
	if err != nil {
		log.Printf("generate attendance PDF for %s: %v", date, err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to generate PDF")
		return
	}

	filename := fmt.Sprintf("attendance_%s_%d.pdf", date, now.Unix())
	if err := os.WriteFile(filepath.Join(saveDir, filename), pdfBytes, 0644); err != nil {
		log.Printf("save attendance PDF: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "failed to save PDF")
		return
	}

	resp := map[string]interface{}{"success": true, "file": filename}
	if h.Uploader != nil {
		url, err := h.Uploader.Upload(r.Context(), pdfBytes, filename, "application/pdf")
		if err != nil {
			// The local copy is still usable.
			log.Printf("upload attendance PDF %s: %v", filename, err)
		} else {
			resp["url"] = url
		}
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
