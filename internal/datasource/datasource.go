package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/lib/pq"

	"jude-explorer/internal/logging"
	"jude-explorer/internal/models"
)

var logger = logging.New("datasource")

// Source loads the dataset: subject records plus variable catalogue
type Source interface {
	Fetch(ctx context.Context) (*models.ExplorationData, error)
}

// PostgresSource reads subjects straight from a PostgreSQL table, one row
// per subject. Numeric columns become the variable catalogue.
type PostgresSource struct {
	db    *sql.DB
	table string
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// OpenPostgres connects to dsn and checks the connection
func OpenPostgres(ctx context.Context, dsn, table string) (*PostgresSource, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &PostgresSource{db: db, table: table}, nil
}

func (p *PostgresSource) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *PostgresSource) Fetch(ctx context.Context) (*models.ExplorationData, error) {
	query := fmt.Sprintf("SELECT * FROM %s", p.table)

	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", p.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	dbTypes := make([]string, len(types))
	for i, ct := range types {
		dbTypes[i] = ct.DatabaseTypeName()
	}

	data := &models.ExplorationData{Variables: catalogue(columns, dbTypes)}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}
		data.SubjectData = append(data.SubjectData, models.SubjectFromMap(rowMap(columns, values)))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	logger.Infof("loaded %d subjects from %s", len(data.SubjectData), p.table)
	return data, nil
}

func rowMap(columns []string, values []interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(columns))
	for i, col := range columns {
		val := values[i]
		// NUMERIC and text columns arrive as byte slices
		if b, ok := val.([]byte); ok {
			m[col] = string(b)
		} else {
			m[col] = val
		}
	}
	return m
}

var numericTypes = map[string]bool{
	"INT2": true, "INT4": true, "INT8": true,
	"FLOAT4": true, "FLOAT8": true, "NUMERIC": true,
}

func catalogue(columns, dbTypes []string) models.Catalogue {
	c := make(models.Catalogue)
	for i, col := range columns {
		if col == models.FieldSubjectID || col == models.FieldIsVortex {
			continue
		}
		if numericTypes[strings.ToUpper(dbTypes[i])] {
			c[col] = col
		}
	}
	return c
}
