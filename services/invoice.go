package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/Devprashant05/Paanshala-sub000/models"
)

// InvoiceGenerator renders an order into a local PDF file and returns
// its path. Purely derived from the order snapshot.
type InvoiceGenerator interface {
	GenerateInvoice(order *models.Order) (string, error)
}

// PDFInvoiceGenerator writes invoices with gofpdf into outDir
// (os.TempDir when empty).
type PDFInvoiceGenerator struct {
	OutDir string
}

func (g *PDFInvoiceGenerator) GenerateInvoice(order *models.Order) (string, error) {
	dir := g.OutDir
	if dir == "" {
		dir = os.TempDir()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+order.OrderNumber, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Paanshala")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice for order %s", order.OrderNumber))
	pdf.Ln(6)
	pdf.Cell(0, 8, "Date: "+order.CreatedAt.Format("02 Jan 2006"))
	pdf.Ln(12)

	writeAddress := func(title string, a models.AddressSnapshot) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, title)
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 5, a.FullName)
		pdf.Ln(5)
		pdf.Cell(0, 5, a.StreetAddress)
		pdf.Ln(5)
		pdf.Cell(0, 5, fmt.Sprintf("%s, %s %s", a.City, a.State, a.ZipCode))
		pdf.Ln(5)
		pdf.Cell(0, 5, "Phone: "+a.Phone)
		pdf.Ln(8)
	}
	writeAddress("Billing Address", order.BillingAddress)
	writeAddress("Shipping Address", order.ShippingAddress)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 7, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Unit Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 7, "Total", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range order.Items {
		name := item.Name
		if item.Size != "" {
			name = fmt.Sprintf("%s (%s)", name, item.Size)
		}
		pdf.CellFormat(90, 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", item.TotalPrice), "1", 1, "R", false, 0, "")
	}

	writeTotal := func(label string, amount float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(145, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f", amount), "1", 1, "R", false, 0, "")
	}
	writeTotal("Subtotal", order.Subtotal, false)
	writeTotal("Discount", order.Discount, false)
	writeTotal("Grand Total", order.Total, true)

	path := filepath.Join(dir, fmt.Sprintf("invoice_%s.pdf", order.OrderNumber))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write invoice pdf: %w", err)
	}
	return path, nil
}
