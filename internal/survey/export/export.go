// Package export renders a survey document for download, either as the raw
// JSON document or flattened into section/field/value rows for CSV.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"benesurvey/internal/survey/fieldpath"
	"benesurvey/internal/survey/models"
)

// Format selects the export rendering.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Valid reports whether f is a supported export format.
func (f Format) Valid() bool {
	return f == FormatJSON || f == FormatCSV
}

// Row is one flattened line of the document.
type Row struct {
	Section string `json:"section"`
	Field   string `json:"field"`
	Value   string `json:"value"`
}

// generalFields are the exported leaves of the general information section.
var generalFields = []string{"organizationName", "contactPerson", "email", "phone", "employeeCount"}

// planFields maps each plan-array section to the leaf paths exported per
// entry, relative to the entry.
var planFields = map[string][]string{
	models.SectionMedicalPlans: {
		"planName", "carrier", "planType", "enrolledEmployees",
		"planDesign.deductible.individual", "planDesign.deductible.family",
	},
	models.SectionDentalPlans: {"planName", "carrier", "planType"},
	models.SectionVisionPlans: {"planName", "carrier"},
}

// JSON renders the document as indented JSON.
func JSON(doc *models.SurveyData) ([]byte, error) {
	if doc == nil {
		doc = &models.SurveyData{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Rows flattens the document into section/field/value rows. Absent leaves of
// a present section render as empty values so every entry produces the same
// row shape; absent sections produce no rows at all.
func Rows(doc *models.SurveyData) []Row {
	view := doc.Map()
	var rows []Row

	if _, ok := view[models.SectionGeneralInformation]; ok {
		for _, field := range generalFields {
			path := models.SectionGeneralInformation + "." + field
			value, _ := fieldpath.Lookup(view, path)
			rows = append(rows, Row{
				Section: "General Information",
				Field:   fieldpath.Humanize(field),
				Value:   formatValue(value),
			})
		}
	}

	planLabels := map[string]string{
		models.SectionMedicalPlans: "Medical Plan",
		models.SectionDentalPlans:  "Dental Plan",
		models.SectionVisionPlans:  "Vision Plan",
	}
	for _, section := range []string{models.SectionMedicalPlans, models.SectionDentalPlans, models.SectionVisionPlans} {
		arr, ok := view[section].([]any)
		if !ok {
			continue
		}
		for i := range arr {
			sectionName := fmt.Sprintf("%s %d", planLabels[section], i+1)
			for _, field := range planFields[section] {
				path := fmt.Sprintf("%s[%d].%s", section, i, field)
				value, _ := fieldpath.Lookup(view, path)
				rows = append(rows, Row{
					Section: sectionName,
					Field:   fieldpath.Humanize(field),
					Value:   formatValue(value),
				})
			}
		}
	}

	return rows
}

// CSV renders flattened rows with a Section,Field,Value header.
func CSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Section", "Field", "Value"}); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write([]string{row.Section, row.Field, row.Value}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
