package contracts

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/JaimeStill/pacto/drafting"
)

// ExportSheet is the worksheet name of exported workbooks.
const ExportSheet = "Contratos"

// XLSXContentType is the media type of exported workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{
	"ID",
	"Trabajador",
	"RUT",
	"Plantilla",
	"Cargo",
	"Lugar de Trabajo",
	"Sueldo",
	"Fecha Contrato",
	"Fecha Ingreso",
	"Creado",
}

// WriteWorkbook writes list as a single-sheet workbook, one row per contract
// after the header row. Salaries are numeric cells; dates are dd-mm-yyyy.
func WriteWorkbook(w io.Writer, list []Contract, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	for i, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ExportSheet, cell, h); err != nil {
			return err
		}
	}

	for i, c := range list {
		row := []any{
			c.ID.String(),
			c.WorkerName,
			c.WorkerRUT,
			c.TemplateName,
			c.Fields.Get(drafting.KeyCargoTrabajador),
			c.Fields.Get(drafting.KeyLugarTrabajo),
			drafting.ParseAmount(c.Fields.Get(drafting.KeySueldo)),
			exportDate(c.Fields.Get(drafting.KeyFechaContrato), loc),
			exportDate(c.Fields.Get(drafting.KeyFechaIngresoTrabajador), loc),
			c.CreatedAt.In(location(loc)).Format("02-01-2006 15:04"),
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func exportDate(s string, loc *time.Location) string {
	t, ok := drafting.ParseDate(s, loc)
	if !ok {
		return s
	}
	return t.Format("02-01-2006")
}

func location(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
