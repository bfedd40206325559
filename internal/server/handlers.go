package server

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"fjacquet/expense-ledger/internal/chart"
	"fjacquet/expense-ledger/internal/dateutils"
	"fjacquet/expense-ledger/internal/ledgererror"
	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/models"
	"fjacquet/expense-ledger/internal/report"
	"fjacquet/expense-ledger/internal/validation"

	"github.com/gin-gonic/gin"
)

// transactionView is the wire form of a stored transaction.
type transactionView struct {
	ID           int64  `json:"id"`
	Date         string `json:"date"`
	CategoryType string `json:"category_type"`
	CategoryName string `json:"category_name"`
	Amount       string `json:"amount"`
}

func toView(tx models.Transaction) transactionView {
	return transactionView{
		ID:           tx.ID,
		Date:         dateutils.ToISODate(tx.Date),
		CategoryType: string(tx.CategoryType),
		CategoryName: tx.CategoryName,
		Amount:       models.FormatMoney(tx.Amount),
	}
}

// writeError maps ledger errors onto status codes: invalid input is the
// client's fault, anything else is ours.
func (s *Server) writeError(c *gin.Context, err error) {
	var ve *ledgererror.ValidationError
	var ie *ledgererror.ImportError

	switch {
	case errors.As(err, &ie):
		body := gin.H{"error": err.Error(), "row": ie.Row}
		if errors.As(ie.Err, &ve) {
			body["field"] = ve.Field
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": ve.Field})
	default:
		s.logger.WithError(err).Error("Request failed",
			logging.F(logging.FieldRequestID, c.GetString(logging.FieldRequestID)),
			logging.F(logging.FieldPath, c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getReport returns the structured report; ?format=yaml switches encoding.
func (s *Server) getReport(c *gin.Context) {
	format := strings.ToLower(c.DefaultQuery("format", report.FormatJSON))
	switch format {
	case report.FormatJSON:
		doc, err := s.service.ReportDocument(c.Request.Context())
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	case report.FormatYAML:
		out, err := s.service.RenderReport(c.Request.Context(), report.FormatYAML)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", out)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported report format: " + format, "field": "format"})
	}
}

func (s *Server) getReportText(c *gin.Context) {
	out, err := s.service.RenderReport(c.Request.Context(), report.FormatText)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", out)
}

// getChart answers 204 when there are no expenses to plot.
func (s *Server) getChart(c *gin.Context) {
	png, err := s.service.ExpenseChart(c.Request.Context())
	if errors.Is(err, chart.ErrNoData) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (s *Server) listTransactions(c *gin.Context) {
	txs, err := s.service.ListTransactions(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	views := make([]transactionView, 0, len(txs))
	for _, tx := range txs {
		views = append(views, toView(tx))
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) createTransaction(c *gin.Context) {
	var in validation.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	tx, err := s.service.AddTransaction(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toView(tx))
}

// importCSV accepts a multipart upload in the "file" field.
func (s *Server) importCSV(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading uploaded file"})
		return
	}
	defer file.Close()

	stored, err := s.service.Import(c.Request.Context(), file)
	var ie *ledgererror.ImportError
	switch {
	case err == nil:
	case errors.As(err, &ie) || ledgererror.IsDataAccess(err):
		s.writeError(c, err)
		return
	default:
		// unreadable CSV
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": len(stored), "file": fileHeader.Filename})
}

func (s *Server) exportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := s.service.Export(c.Request.Context(), &buf); err != nil {
		s.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="ledger.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
