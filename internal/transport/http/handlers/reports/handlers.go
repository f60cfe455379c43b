package reportshandler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jung-kurt/gofpdf"

	"skiftlonn/internal/domain/reports"
	"skiftlonn/internal/domain/shifts"
	"skiftlonn/internal/transport/http/api"
	"skiftlonn/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
	Premium middleware.PremiumChecker
}

func NewHandler(service *reports.Service, premium middleware.PremiumChecker) *Handler {
	return &Handler{Service: service, Premium: premium}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/{month}", h.handleRegister)
	r.With(middleware.RequirePremium(h.Premium)).Get("/reports/{month}/export/csv", h.handleExportCSV)
	r.With(middleware.RequirePremium(h.Premium)).Get("/reports/{month}/export/pdf", h.handleExportPDF)
}

func (h *Handler) monthRegister(w http.ResponseWriter, r *http.Request) (reports.Register, string, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return reports.Register{}, "", false
	}

	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be a number between 1 and 12", middleware.GetRequestID(r.Context()))
		return reports.Register{}, "", false
	}

	register, err := h.Service.MonthRegister(r.Context(), user.UserID, month)
	if errors.Is(err, shifts.ErrBadMonth) {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be a number between 1 and 12", middleware.GetRequestID(r.Context()))
		return reports.Register{}, "", false
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return reports.Register{}, "", false
	}
	return register, user.Email, true
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	register, _, ok := h.monthRegister(w, r)
	if !ok {
		return
	}
	if register.Rows == nil {
		register.Rows = []reports.Row{}
	}
	api.Success(w, register, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	register, _, ok := h.monthRegister(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=wage-register-%d-%02d.csv", register.Year, register.Month))
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"employee_id", "date", "day_type", "start", "end", "hours", "base_wage", "bonus", "total"}); err != nil {
		log.Printf("register export header write failed: %v", err)
	}
	for _, row := range register.Rows {
		record := []string{
			row.EmployeeID,
			row.Date,
			row.DayType,
			row.StartTime,
			row.EndTime,
			fmt.Sprintf("%.2f", row.Hours),
			fmt.Sprintf("%.2f", row.BaseWage),
			fmt.Sprintf("%.2f", row.Bonus),
			fmt.Sprintf("%.2f", row.Total),
		}
		if err := writer.Write(record); err != nil {
			log.Printf("register export row write failed: %v", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("register export flush failed: %v", err)
	}
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	register, email, ok := h.monthRegister(w, r)
	if !ok {
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("Wage register %d-%02d", register.Year, register.Month))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Account: %s", email))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	widths := []float64{25, 22, 18, 18, 18, 28, 28, 32}
	headers := []string{"Date", "Day", "Start", "End", "Hours", "Base", "Bonus", "Total"}
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range register.Rows {
		cells := []string{
			row.Date,
			row.DayType,
			row.StartTime,
			row.EndTime,
			fmt.Sprintf("%.2f", row.Hours),
			fmt.Sprintf("%.2f", row.BaseWage),
			fmt.Sprintf("%.2f", row.Bonus),
			fmt.Sprintf("%.2f", row.Total),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Shifts: %d   Hours: %.2f   Base: %.2f kr   Bonus: %.2f kr   Total: %.2f kr",
		register.Stats.ShiftCount, register.Stats.TotalHours, register.Stats.TotalBase, register.Stats.TotalBonus, register.Stats.TotalAmount))
	if register.Stats.Skipped > 0 {
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 7, fmt.Sprintf("%d shift(s) could not be calculated and were left out.", register.Stats.Skipped))
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=wage-register-%d-%02d.pdf", register.Year, register.Month))
	if err := pdf.Output(w); err != nil {
		log.Printf("register pdf output failed: %v", err)
	}
}
