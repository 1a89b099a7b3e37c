package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/ansiklopedi", "pgx5://u:p@db:5432/ansiklopedi"},
		{"postgresql://u@db/ansiklopedi?sslmode=disable", "pgx5://u@db/ansiklopedi?sslmode=disable"},
		{"pgx5://u@db/ansiklopedi", "pgx5://u@db/ansiklopedi"},
		{"host=db user=u", "host=db user=u"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, convertToPgx5DSN(tt.in))
	}
}
