package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/sasank-in/skin-disease/internal/middleware"
	"github.com/sasank-in/skin-disease/internal/models"
	"github.com/sasank-in/skin-disease/internal/util"
)

var feedbackHeaders = []string{"ID", "Disease", "Rating", "Comments", "Email", "Created At"}

// ExportHandler downloads the feedback table for admins.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

func (h *ExportHandler) load(c *gin.Context) ([]models.Feedback, bool) {
	var rows []models.Feedback
	if err := middleware.DB(c, h.DB).Order("created_at DESC").Find(&rows).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to load feedback")
		return nil, false
	}
	return rows, true
}

func feedbackRow(f models.Feedback) []string {
	return []string{
		strconv.FormatUint(uint64(f.ID), 10),
		cellText(f.Disease),
		strconv.Itoa(f.Rating),
		cellText(deref(f.Comments)),
		cellText(deref(f.Email)),
		f.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// cellText keeps user-supplied text from being evaluated as a spreadsheet
// formula by prefixing a quote to values that open with a formula trigger.
func cellText(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

func exportName(ext string) string {
	return fmt.Sprintf("attachment; filename=\"feedback_%s.%s\"", time.Now().Format("20060102"), ext)
}

// ExportCSV writes all feedback as CSV, newest first.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows, ok := h.load(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", exportName("csv"))

	// UTF-8 BOM so spreadsheet apps detect the encoding
	_, _ = c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	_ = writer.Write(feedbackHeaders)
	for _, f := range rows {
		_ = writer.Write(feedbackRow(f))
	}
	writer.Flush()
}

// ExportXLSX writes all feedback as a single-sheet workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	rows, ok := h.load(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Feedback"
	index, err := f.NewSheet(sheet)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to create sheet")
		return
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, title := range feedbackHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
	}
	for r, fb := range rows {
		row := r + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fb.ID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), cellText(fb.Disease))
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), fb.Rating)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), cellText(deref(fb.Comments)))
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), cellText(deref(fb.Email)))
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), fb.CreatedAt.UTC().Format(time.RFC3339))
	}

	_ = f.SetColWidth(sheet, "A", "A", 8)
	_ = f.SetColWidth(sheet, "B", "B", 24)
	_ = f.SetColWidth(sheet, "C", "C", 8)
	_ = f.SetColWidth(sheet, "D", "D", 48)
	_ = f.SetColWidth(sheet, "E", "E", 28)
	_ = f.SetColWidth(sheet, "F", "F", 22)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", exportName("xlsx"))
	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Export failed")
	}
}
