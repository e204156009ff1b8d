package templates

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"inventory-service/pkg/models"
)

//go:embed low_stock.html
var lowStockHTML string

var lowStockTmpl = template.Must(template.New("low_stock").Parse(lowStockHTML))

type lowStockData struct {
	Count       int
	GeneratedAt string
	Products    []models.Product
}

// RenderLowStockReport renders the HTML low-stock alert email.
func RenderLowStockReport(products []models.Product) (string, error) {
	var buf bytes.Buffer
	err := lowStockTmpl.Execute(&buf, lowStockData{
		Count:       len(products),
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
		Products:    products,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
