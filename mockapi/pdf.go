package mockapi

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/jrsteele09/go-invoice-client/apiclient"
	"github.com/jrsteele09/go-invoice-client/products"
	"github.com/pkg/errors"
)

const (
	rowHeight    = 7.0
	bottomMargin = 20.0
	totalsIndent = 120.0
)

var columns = []struct {
	title string
	width float64
	align string
}{
	{"Product", 80, "L"},
	{"Qty", 25, "R"},
	{"Rate", 35, "R"},
	{"Total", 50, "R"},
}

// RenderInvoice lays the products out as an A4 table followed by the GST
// totals. Long lists continue on further pages with the column headings repeated.
func RenderInvoice(user *User, items []apiclient.RemoteProduct, issued time.Time) ([]byte, error) {
	rows := make([]products.Product, 0, len(items))
	for _, item := range items {
		rows = append(rows, products.FromRemote(item))
	}
	totals := products.ComputeTotals(rows).Display()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.SetTitle("Invoice", false)
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			tableHeader(pdf)
		}
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, rowHeight, "Issued: "+issued.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, rowHeight, fmt.Sprintf("Billed to: %s <%s>", user.Name, user.Email), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	tableHeader(pdf)

	for _, p := range rows {
		cells := []string{
			p.Name,
			strconv.FormatFloat(p.Quantity, 'f', -1, 64),
			strconv.FormatFloat(p.UnitPrice, 'f', -1, 64),
			products.FormatAmount(p.LineTotal),
		}
		for i, c := range columns {
			ln := 0
			if i == len(columns)-1 {
				ln = 1
			}
			pdf.CellFormat(c.width, rowHeight, cells[i], "B", ln, c.align, false, 0, "")
		}
	}

	pdf.Ln(4)
	totalsRow(pdf, "Subtotal", totals.Subtotal)
	totalsRow(pdf, "+GST 18%", totals.Tax)
	pdf.SetFont("Helvetica", "B", 10)
	totalsRow(pdf, "Total", totals.Total)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to render invoice")
	}
	return buf.Bytes(), nil
}

func tableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	for i, c := range columns {
		ln := 0
		if i == len(columns)-1 {
			ln = 1
		}
		pdf.CellFormat(c.width, rowHeight, c.title, "B", ln, c.align, false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 10)
}

func totalsRow(pdf *fpdf.Fpdf, label, amount string) {
	pdf.CellFormat(totalsIndent, rowHeight, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(0, rowHeight, amount, "", 1, "R", false, 0, "")
}
