package orders

import (
	"fmt"

	"github.com/foodexpress/foodexpress-client/pkg/gateway"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Orders"

var exportHeader = []interface{}{
	"Order ID", "Date", "Status", "Subtotal", "Delivery fee", "Total", "Items",
}

// ExportArchived writes the archived orders to an .xlsx workbook.
func ExportArchived(history History, filePath string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, order := range history.Archived {
		row := []interface{}{
			order.ID,
			order.CreatedAt.Format("2006-01-02 15:04"),
			order.Status,
			order.Subtotal.String(),
			order.DeliveryFee.String(),
			order.TotalAmount.String(),
			itemSummary(order),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func itemSummary(order gateway.Order) string {
	summary := ""
	for i, item := range order.Items {
		if i > 0 {
			summary += ", "
		}
		summary += fmt.Sprintf("dish %d x%d", item.DishID, item.Quantity)
	}
	return summary
}
