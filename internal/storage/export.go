package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/brndagencynl/HETT-sub001/internal/money"
	"github.com/brndagencynl/HETT-sub001/internal/pricing"
)

// ExportOfferToExcel writes a single offer with its full price breakdown to
// an xlsx file under reports/ and returns the file path. The file is what
// gets attached to the admin notification.
func (s *PostgresStorage) ExportOfferToExcel(ctx context.Context, offer Offer) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet("Offer")
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}

	f.SetCellValue("Offer", "A1", "Offer ID")
	f.SetCellValue("Offer", "B1", offer.ID)
	f.SetCellValue("Offer", "A2", "Created At")
	f.SetCellValue("Offer", "B2", offer.CreatedAt.Format("2006-01-02 15:04"))
	f.SetCellValue("Offer", "A3", "Fingerprint")
	f.SetCellValue("Offer", "B3", offer.Fingerprint)
	f.SetCellValue("Offer", "A4", "Summary")
	f.SetCellValue("Offer", "B4", offer.Summary)
	f.SetCellValue("Offer", "A5", "Contact")
	f.SetCellValue("Offer", "B5", offer.Contact)
	f.SetCellValue("Offer", "A6", "Status")
	f.SetCellValue("Offer", "B6", offer.Status)

	f.SetCellValue("Offer", "A8", "Price Breakdown")
	f.SetCellValue("Offer", "A9", "Base price")
	f.SetCellValue("Offer", "B9", money.Format(offer.BaseCents))

	row := 10
	var bd pricing.Breakdown
	if err := json.Unmarshal(offer.Breakdown, &bd); err == nil {
		for _, r := range bd.Rows {
			f.SetCellValue("Offer", fmt.Sprintf("A%d", row), r.Label)
			f.SetCellValue("Offer", fmt.Sprintf("B%d", row), money.Format(r.Amount))
			if r.Note != "" {
				f.SetCellValue("Offer", fmt.Sprintf("C%d", row), r.Note)
			}
			row++
		}
	}

	f.SetCellValue("Offer", fmt.Sprintf("A%d", row), "Options total")
	f.SetCellValue("Offer", fmt.Sprintf("B%d", row), money.Format(offer.OptionsCents))
	row++
	f.SetCellValue("Offer", fmt.Sprintf("A%d", row), "Grand total")
	f.SetCellValue("Offer", fmt.Sprintf("B%d", row), money.Format(offer.GrandCents))

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle("Offer", "A1", "A8", style)

	f.SetActiveSheet(index)

	filename := fmt.Sprintf("offer_%d_%s.xlsx",
		offer.ID,
		offer.CreatedAt.Format("20060102_1504"))
	filepath := fmt.Sprintf("reports/%s", filename)

	if err := os.MkdirAll("reports", 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}
	if err := f.SaveAs(filepath); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}

	return filepath, nil
}

// ExportAllOffersToExcel dumps every offer into one xlsx report under
// reports/ and returns the file path.
func (s *PostgresStorage) ExportAllOffersToExcel(ctx context.Context, filename string) (string, error) {
	offers, err := s.ListOffers(ctx)
	if err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet("Offers")
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{
		"ID", "Fingerprint", "Summary", "Base", "Options", "Grand Total",
		"Contact", "Status", "Created At",
	}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue("Offers", cell, header)
	}

	for row, offer := range offers {
		data := []interface{}{
			offer.ID,
			offer.Fingerprint,
			offer.Summary,
			money.Format(offer.BaseCents),
			money.Format(offer.OptionsCents),
			money.Format(offer.GrandCents),
			offer.Contact,
			offer.Status,
			offer.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range data {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue("Offers", cell, value)
		}
	}

	f.SetActiveSheet(index)

	if err := os.MkdirAll("reports", 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	filepath := fmt.Sprintf("reports/%s.xlsx", filename)
	if err := f.SaveAs(filepath); err != nil {
		return "", fmt.Errorf("failed to save Excel file: %w", err)
	}

	return filepath, nil
}
