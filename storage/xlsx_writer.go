package storage

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"imdb-visualizer/models"
)

const (
	sheetDirectors   = "Top Directors"
	sheetDecades     = "Decades"
	sheetCorrelation = "Correlation"
)

// XLSXWriter writes the computed aggregates to a workbook, one sheet per chart.
type XLSXWriter struct {
	path string
	file *excelize.File
}

// NewXLSXWriter prepares a workbook that will be saved to path.
func NewXLSXWriter(path string) (*XLSXWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("xlsx: create output dir: %w", err)
	}
	return &XLSXWriter{path: path, file: excelize.NewFile()}, nil
}

// WriteReport fills the three sheets and saves the workbook.
func (x *XLSXWriter) WriteReport(r *models.Report) error {
	if err := x.file.SetSheetName("Sheet1", sheetDirectors); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	for _, name := range []string{sheetDecades, sheetCorrelation} {
		if _, err := x.file.NewSheet(name); err != nil {
			return fmt.Errorf("xlsx: new sheet %q: %w", name, err)
		}
	}

	directorRows := [][]interface{}{{"Rank", "Director", "Average IMDB Rating", "Movies"}}
	for i, d := range r.TopDirectors {
		directorRows = append(directorRows, []interface{}{i + 1, d.Director, d.MeanRating, d.Movies})
	}
	if err := x.writeRows(sheetDirectors, directorRows); err != nil {
		return err
	}

	decadeRows := [][]interface{}{{"Decade", "Movies", "Mean Rating", "Average Gross ($)", "Average Runtime (minutes)"}}
	for _, d := range r.Decades {
		var sum float64
		for _, v := range d.Ratings {
			sum += v
		}
		mean := math.NaN()
		if len(d.Ratings) > 0 {
			mean = sum / float64(len(d.Ratings))
		}
		decadeRows = append(decadeRows, []interface{}{d.Decade, d.Count, cell(mean), cell(d.MeanGross), cell(d.MeanRuntime)})
	}
	if err := x.writeRows(sheetDecades, decadeRows); err != nil {
		return err
	}

	header := []interface{}{""}
	for _, l := range r.Correlation.Labels {
		header = append(header, l)
	}
	corrRows := [][]interface{}{header}
	for i, row := range r.Correlation.Values {
		out := []interface{}{r.Correlation.Labels[i]}
		for _, v := range row {
			out = append(out, cell(v))
		}
		corrRows = append(corrRows, out)
	}
	if err := x.writeRows(sheetCorrelation, corrRows); err != nil {
		return err
	}

	if err := x.file.SaveAs(x.path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", x.path, err)
	}
	return nil
}

func (x *XLSXWriter) writeRows(sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, v := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("xlsx: cell name: %w", err)
			}
			if err := x.file.SetCellValue(sheet, name, v); err != nil {
				return fmt.Errorf("xlsx: set %s!%s: %w", sheet, name, err)
			}
		}
	}
	return nil
}

// Close releases the workbook.
func (x *XLSXWriter) Close() error {
	return x.file.Close()
}

// cell leaves NaN cells blank; workbooks cannot hold NaN.
func cell(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return f
}
