package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"jude-explorer/internal/models"
)

// Artifact naming of every export download
const (
	Filename    = "subject_export.csv"
	ContentType = "text/csv"
)

// Exporter turns a list of subject identifiers into CSV file content
type Exporter interface {
	Export(ctx context.Context, ids []models.SubjectID) ([]byte, error)
}

// Artifact is a downloadable export file
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Run performs an export and wraps the content as the download artifact.
// No artifact is produced when the exporter fails.
func Run(ctx context.Context, exp Exporter, ids []models.SubjectID) (*Artifact, error) {
	data, err := exp.Export(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &Artifact{Filename: Filename, ContentType: ContentType, Data: data}, nil
}

// CSVExporter writes the export locally from the loaded dataset. It is
// used when subjects come straight from the database and there is no
// backend to ask.
type CSVExporter struct {
	dataset func() *models.ExplorationData
}

func NewCSVExporter(dataset func() *models.ExplorationData) *CSVExporter {
	return &CSVExporter{dataset: dataset}
}

var baseColumns = []string{
	models.FieldSubjectID,
	models.FieldURL,
	models.FieldLatitude,
	models.FieldLongitude,
	models.FieldPerijove,
	models.FieldIsVortex,
}

func (e *CSVExporter) Export(ctx context.Context, ids []models.SubjectID) ([]byte, error) {
	data := e.dataset()
	if data == nil {
		return nil, fmt.Errorf("no dataset loaded")
	}

	byID := make(map[string]models.Subject, len(data.SubjectData))
	for _, s := range data.SubjectData {
		byID[s.ID.String()] = s
	}

	columns := append([]string{}, baseColumns...)
	seen := make(map[string]bool)
	for _, c := range columns {
		seen[c] = true
	}
	for _, f := range data.Variables.Fields() {
		if !seen[f] {
			seen[f] = true
			columns = append(columns, f)
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, err
	}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, ok := byID[id.String()]
		if !ok {
			continue
		}
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = cell(s, c)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cell(s models.Subject, column string) string {
	switch column {
	case models.FieldSubjectID:
		return s.ID.String()
	case models.FieldURL:
		return s.URL
	case models.FieldIsVortex:
		return strconv.FormatBool(s.IsVortex)
	}
	v := s.Value(column)
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Value, 'f', -1, 64)
}
