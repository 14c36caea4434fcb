// internal/services/export_service.go
package services

import (
	"fmt"

	"github.com/tealeg/xlsx"

	"github.com/javajoker/perfume-store/internal/models"
)

var orderExportHeaders = []string{
	"Order ID", "Ordered At", "Email", "Phone", "Address", "Commentary",
	"Completed", "Completed At", "Product", "Size", "Quantity", "Item Price", "Order Total",
}

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// OrdersWorkbook lays the orders out one row per order item, with the
// order's own columns repeated on each of its rows.
func (s *ExportService) OrdersWorkbook(orders []models.Order) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	// Header row
	headerRow := sheet.AddRow()
	for _, h := range orderExportHeaders {
		headerRow.AddCell().SetString(h)
	}

	for i := range orders {
		order := &orders[i]
		total := order.Price().StringFixed(2)

		for j := range order.Items {
			item := &order.Items[j]
			row := sheet.AddRow()

			row.AddCell().SetInt(int(order.ID))
			row.AddCell().SetString(order.OrderedAt.UTC().Format("2006-01-02 15:04:05"))
			row.AddCell().SetString(order.Email)
			row.AddCell().SetString(order.Phone)
			row.AddCell().SetString(order.Address)
			if order.Commentary != nil {
				row.AddCell().SetString(*order.Commentary)
			} else {
				row.AddCell().SetString("")
			}
			row.AddCell().SetBool(order.Completed)
			if order.CompletedAt != nil {
				row.AddCell().SetString(order.CompletedAt.UTC().Format("2006-01-02 15:04:05"))
			} else {
				row.AddCell().SetString("")
			}

			name := ""
			if item.Product != nil {
				name = item.Product.DisplayName()
			}
			row.AddCell().SetString(name)
			row.AddCell().SetInt(item.Size)
			row.AddCell().SetInt(item.Quantity)
			row.AddCell().SetString(item.Price().StringFixed(2))
			row.AddCell().SetString(total)
		}
	}

	return file, nil
}
