package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/herbsera/herbsera-backend/config"
	"github.com/herbsera/herbsera-backend/models"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

var (
	ink     = color.Color{Red: 38, Green: 52, Blue: 40}
	muted   = color.Color{Red: 112, Green: 120, Blue: 108}
	accent  = color.Color{Red: 74, Green: 124, Blue: 89}
	divider = color.Color{Red: 210, Green: 214, Blue: 204}
)

// InvoiceFilename is the download name for an order's invoice.
func InvoiceFilename(o *models.Order) string {
	return fmt.Sprintf("invoice-%s.pdf", o.OrderNumber)
}

// GenerateInvoicePDF renders an A4 invoice for the order. The built-in PDF
// fonts are cp1252 so amounts are prefixed with the currency code.
func GenerateInvoicePDF(o *models.Order, customer *models.User, store *config.StoreSettings) (*bytes.Buffer, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 20, 20)

	money := func(v float64) string {
		return fmt.Sprintf("%s %.2f", currencyLabel(store.Currency), v)
	}

	// Header
	m.Row(14, func() {
		m.Col(8, func() {
			m.Text(strings.ToUpper(store.Name), props.Text{Size: 20, Style: consts.Bold, Color: accent})
		})
		m.Col(4, func() {
			m.Text("INVOICE", props.Text{Size: 18, Style: consts.Bold, Color: ink, Align: consts.Right})
		})
	})
	m.Line(4, props.Line{Color: divider})

	// Billing
	addr := o.ShippingAddress.Data()
	name, email := addr.Name, ""
	if customer != nil {
		email = customer.Email
		if name == "" {
			name = customer.DisplayName
		}
	}

	labelRow(m, "BILL TO", "INVOICE DETAILS")
	detailRow(m, name, fmt.Sprintf("Invoice #%s", o.OrderNumber), true)
	detailRow(m, email, "Date: "+o.CreatedAt.Format("Jan 02, 2006"), false)
	detailRow(m, addr.AddressLine1, "Payment: "+strings.ToUpper(string(o.PaymentMethod)), false)
	if addr.AddressLine2 != "" {
		detailRow(m, addr.AddressLine2, "", false)
	}
	detailRow(m, fmt.Sprintf("%s, %s %s", addr.City, addr.State, addr.Pincode), "Status: "+string(o.Status), false)
	detailRow(m, addr.Phone, "", false)

	m.Row(8, func() {})

	// Items
	m.Row(7, func() {
		m.Col(6, func() { m.Text("Item", props.Text{Size: 8, Style: consts.Bold, Color: ink}) })
		m.Col(2, func() { m.Text("Qty", props.Text{Size: 8, Style: consts.Bold, Color: ink, Align: consts.Right}) })
		m.Col(2, func() { m.Text("Price", props.Text{Size: 8, Style: consts.Bold, Color: ink, Align: consts.Right}) })
		m.Col(2, func() { m.Text("Total", props.Text{Size: 8, Style: consts.Bold, Color: ink, Align: consts.Right}) })
	})
	m.Line(2, props.Line{Color: divider})

	for _, item := range o.Items {
		item := item
		m.Row(7, func() {
			m.Col(6, func() { m.Text(item.Name, props.Text{Size: 9, Color: ink}) })
			m.Col(2, func() {
				m.Text(fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Color: ink, Align: consts.Right})
			})
			m.Col(2, func() { m.Text(money(item.Price), props.Text{Size: 9, Color: ink, Align: consts.Right}) })
			m.Col(2, func() {
				m.Text(money(item.Price*float64(item.Quantity)), props.Text{Size: 9, Color: ink, Align: consts.Right})
			})
		})
	}

	m.Line(4, props.Line{Color: divider})

	// Summary
	summaryRow(m, "Subtotal", money(o.Pricing.Subtotal), false)
	summaryRow(m, fmt.Sprintf("Tax (%.0f%%)", store.TaxRate*100), money(o.Pricing.Tax), false)
	shipping := "Free"
	if o.Pricing.ShippingCost > 0 {
		shipping = money(o.Pricing.ShippingCost)
	}
	summaryRow(m, "Shipping", shipping, false)
	if o.Pricing.Discount > 0 {
		summaryRow(m, "Discount", "-"+money(o.Pricing.Discount), false)
	}
	summaryRow(m, "Total", money(o.Pricing.Total), true)

	m.Row(14, func() {})
	m.Row(6, func() {
		m.Col(12, func() {
			m.Text("Thank you for choosing "+store.Name+".", props.Text{Size: 9, Color: muted, Align: consts.Center})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return &buf, nil
}

func labelRow(m pdf.Maroto, left, right string) {
	m.Row(5, func() {
		m.Col(6, func() { m.Text(left, props.Text{Size: 8, Style: consts.Bold, Color: ink}) })
		m.Col(6, func() { m.Text(right, props.Text{Size: 8, Style: consts.Bold, Color: ink, Align: consts.Right}) })
	})
}

func detailRow(m pdf.Maroto, left, right string, strong bool) {
	style := consts.Normal
	if strong {
		style = consts.Bold
	}
	m.Row(5, func() {
		m.Col(6, func() { m.Text(left, props.Text{Size: 9, Style: style, Color: ink}) })
		m.Col(6, func() { m.Text(right, props.Text{Size: 9, Color: muted, Align: consts.Right}) })
	})
}

func summaryRow(m pdf.Maroto, label, value string, strong bool) {
	style := consts.Normal
	size := 9.0
	if strong {
		style = consts.Bold
		size = 11
	}
	m.Row(6, func() {
		m.Col(8, func() {})
		m.Col(2, func() { m.Text(label, props.Text{Size: size, Style: style, Color: muted, Align: consts.Right}) })
		m.Col(2, func() { m.Text(value, props.Text{Size: size, Style: style, Color: ink, Align: consts.Right}) })
	})
}

func currencyLabel(code string) string {
	if code == "INR" || code == "" {
		return "Rs."
	}
	return code
}
