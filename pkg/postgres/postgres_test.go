package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationURL(t *testing.T) {
	tests := map[string]string{
		"postgres://u:p@db:5432/hazards?sslmode=disable":   "pgx5://u:p@db:5432/hazards?sslmode=disable",
		"postgresql://u:p@db:5432/hazards?sslmode=disable": "pgx5://u:p@db:5432/hazards?sslmode=disable",
		"pgx5://u:p@db:5432/hazards":                       "pgx5://u:p@db:5432/hazards",
	}
	for in, want := range tests {
		assert.Equal(t, want, MigrationURL(in), in)
	}
}
