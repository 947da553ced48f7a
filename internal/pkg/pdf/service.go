// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/returns"
	"github.com/your-org/pos-backend/internal/domain/sale"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateReturnReceipt renders a printable receipt for a processed return
func (s *Service) GenerateReturnReceipt(ret *returns.Return, sl *sale.Sale) (*bytes.Buffer, error) {
	data := ReceiptData{
		ReceiptNumber: fmt.Sprintf("RET-%06d", ret.ID),
		ReceiptDate:   ret.CreatedAt.Format("January 2, 2006 15:04"),
		SaleNumber:    fmt.Sprintf("SALE-%06d", sl.ID),
		SaleDate:      sl.CreatedAt.Format("January 2, 2006"),
		PrintedAt:     time.Now().Format("January 2, 2006 15:04"),
		Return:        ret,
		Sale:          sl,
		Company: CompanyInfo{
			Name:    s.config.Company.Name,
			Address: s.config.Company.Address,
			Phone:   s.config.Company.Phone,
			Email:   s.config.Company.Email,
		},
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data ReceiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// ReceiptData represents the data passed to the receipt template
type ReceiptData struct {
	ReceiptNumber string          `json:"receipt_number"`
	ReceiptDate   string          `json:"receipt_date"`
	SaleNumber    string          `json:"sale_number"`
	SaleDate      string          `json:"sale_date"`
	PrintedAt     string          `json:"printed_at"`
	Return        *returns.Return `json:"return"`
	Sale          *sale.Sale      `json:"sale"`
	Company       CompanyInfo     `json:"company"`
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Return receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Return Receipt {{.ReceiptNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .company-info {
            flex: 1;
        }
        .receipt-info {
            text-align: right;
            flex: 1;
        }
        .receipt-title {
            font-size: 28px;
            font-weight: bold;
            color: #2563eb;
            margin-bottom: 10px;
        }
        .receipt-details {
            margin-bottom: 30px;
        }
        .receipt-details table {
            width: 100%;
        }
        .receipt-details td {
            padding: 5px 0;
            vertical-align: top;
        }
        .receipt-details .label {
            font-weight: bold;
            width: 150px;
        }
        .section-title {
            font-size: 16px;
            font-weight: bold;
            margin: 20px 0 10px;
            color: #374151;
        }
        .items-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .items-table th,
        .items-table td {
            border: 1px solid #ddd;
            padding: 12px 8px;
            text-align: left;
        }
        .items-table th {
            background-color: #f8f9fa;
            font-weight: bold;
        }
        .items-table .qty-col,
        .items-table .price-col,
        .items-table .total-col {
            text-align: right;
            width: 80px;
        }
        .totals {
            float: right;
            width: 300px;
        }
        .totals table {
            width: 100%;
            border-collapse: collapse;
        }
        .totals td {
            padding: 8px;
            border-bottom: 1px solid #eee;
        }
        .totals .label {
            text-align: right;
            font-weight: bold;
        }
        .totals .amount {
            text-align: right;
            width: 100px;
        }
        .total-row {
            font-size: 18px;
            font-weight: bold;
            border-top: 2px solid #333 !important;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            text-align: center;
            color: #666;
            font-size: 12px;
        }
        .action-badge {
            display: inline-block;
            padding: 4px 8px;
            border-radius: 4px;
            font-size: 12px;
            font-weight: bold;
            text-transform: uppercase;
            background-color: #dbeafe;
            color: #1e40af;
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="company-info">
            <h1>{{.Company.Name}}</h1>
            <p>{{.Company.Address}}</p>
            {{if .Company.Phone}}<p>Phone: {{.Company.Phone}}</p>{{end}}
            {{if .Company.Email}}<p>Email: {{.Company.Email}}</p>{{end}}
        </div>
        <div class="receipt-info">
            <div class="receipt-title">RETURN RECEIPT</div>
            <p><strong>Receipt #:</strong> {{.ReceiptNumber}}</p>
            <p><strong>Date:</strong> {{.ReceiptDate}}</p>
            <p><strong>Original Sale:</strong> {{.SaleNumber}}</p>
        </div>
    </div>

    <div class="receipt-details">
        <table>
            <tr>
                <td class="label">Sale Date:</td>
                <td>{{.SaleDate}}</td>
                <td class="label" style="text-align: right;">Action:</td>
                <td style="text-align: right;">
                    <span class="action-badge">{{.Return.Action}}</span>
                </td>
            </tr>
            {{if .Return.RefundMethod}}
            <tr>
                <td class="label">Refund Method:</td>
                <td>{{.Return.RefundMethod}}</td>
                <td></td>
                <td></td>
            </tr>
            {{end}}
            {{if .Return.Reason}}
            <tr>
                <td class="label">Reason:</td>
                <td colspan="3">{{.Return.Reason}}</td>
            </tr>
            {{end}}
        </table>
    </div>

    <div class="section-title">Items Returned</div>
    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="qty-col">Qty</th>
                <th class="price-col">Price</th>
                <th class="total-col">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Return.ItemsReturned}}
            <tr>
                <td>{{.ProductName}}</td>
                <td class="qty-col">{{.Quantity}}</td>
                <td class="price-col">${{printf "%.2f" .UnitPrice}}</td>
                <td class="total-col">${{printf "%.2f" .Subtotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    {{if .Return.ItemsExchanged}}
    <div class="section-title">Items Exchanged</div>
    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="qty-col">Qty</th>
                <th class="price-col">Price</th>
                <th class="total-col">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Return.ItemsExchanged}}
            <tr>
                <td>{{.ProductName}}</td>
                <td class="qty-col">{{.Quantity}}</td>
                <td class="price-col">${{printf "%.2f" .UnitPrice}}</td>
                <td class="total-col">${{printf "%.2f" .Subtotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>
    {{end}}

    <div class="totals">
        <table>
            <tr>
                <td class="label">Subtotal Refund:</td>
                <td class="amount">${{printf "%.2f" .Return.SubtotalRefund}}</td>
            </tr>
            <tr>
                <td class="label">Tax Refund:</td>
                <td class="amount">${{printf "%.2f" .Return.TaxRefund}}</td>
            </tr>
            <tr class="total-row">
                <td class="label">Total Refund:</td>
                <td class="amount">${{printf "%.2f" .Return.TotalRefund}}</td>
            </tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Printed {{.PrintedAt}}</p>
        <p>If you have any questions about this receipt, please contact us at {{.Company.Email}}</p>
    </div>
</body>
</html>
`
