package templates

import (
	"strings"
	"testing"

	"inventory-service/pkg/models"
)

func TestRenderLowStockReport(t *testing.T) {
	html, err := RenderLowStockReport([]models.Product{
		{SKU: "SKU-1", Name: "Hex bolt", CurrentQuantity: 3, MinQuantity: 10},
		{SKU: "SKU-2", Name: "Hex nut", CurrentQuantity: 0, MinQuantity: 5},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{"SKU-1", "Hex bolt", "SKU-2", "2 product(s)"} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRenderLowStockReportEscapes(t *testing.T) {
	html, err := RenderLowStockReport([]models.Product{
		{SKU: "SKU-X", Name: "<script>alert(1)</script>", CurrentQuantity: 1, MinQuantity: 2},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Error("product name not HTML-escaped")
	}
}
