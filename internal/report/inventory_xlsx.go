package report

import (
	"fmt"

	"go-warehouse-api/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	InventorySheet = "Inventory"
	XLSXMimeType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var inventoryHeadings = []string{"ID", "ProductID", "BatchID", "StorageLocation", "StockQuantity", "InShipment", "UpdatedAt"}

// InventoryWorkbook renders one row per inventory record under a heading row.
func InventoryWorkbook(records []model.WarehouseInventory) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", InventorySheet); err != nil {
		return nil, err
	}

	col := 'A'
	for _, h := range inventoryHeadings {
		if err := f.SetCellValue(InventorySheet, string(col)+"1", h); err != nil {
			return nil, err
		}
		col++
	}

	for i, r := range records {
		row := fmt.Sprint(i + 2)
		values := []interface{}{r.ID, r.ProductID, r.BatchID, r.StorageLocation, r.StockQuantity, r.InShipment, r.UpdatedAt.UTC().Format("2006-01-02 15:04:05")}
		col := 'A'
		for _, v := range values {
			if err := f.SetCellValue(InventorySheet, string(col)+row, v); err != nil {
				return nil, err
			}
			col++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
