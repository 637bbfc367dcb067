package services

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/xuri/excelize/v2"
)

const exportSheetName = "Questions"

var exportHeaders = []string{"Order", "Type", "Question", "Options", "Answers"}

// exportQuizToExcel writes one row per question below a header row. The quiz
// title goes into the sheet's first cell above the table.
func exportQuizToExcel(quiz *models.Quiz) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheetName); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	if err := f.SetCellValue(exportSheetName, "A1", quiz.Title); err != nil {
		return nil, fmt.Errorf("failed to write quiz title: %w", err)
	}

	if err := f.SetSheetRow(exportSheetName, "A2", &exportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write headers: %w", err)
	}

	for i, question := range quiz.Questions {
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			question.Order,
			string(question.Type),
			question.Question,
			strings.Join(question.Options, "; "),
			strings.Join(question.Answers, "; "),
		}
		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write question %d: %w", question.Order, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}
