package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	otelMocks "atithi/infras/otel/mocks"
	gModel "atithi/shared/model"
)

type sortFixture struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	OwnerName string `db:"owner_name" table:"owners" column:"full_name"`
	gModel.Metadata
}

func TestRepository_SortColumn(t *testing.T) {
	repo := NewRepository[sortFixture]("fixture", "fixtures", "id", nil, otelMocks.NewOtel())

	tests := []struct {
		name      string
		requested string
		expected  string
	}{
		{
			name:      "own column is qualified with the table",
			requested: "name",
			expected:  "fixtures.name",
		},
		{
			name:      "metadata column resolves like any other",
			requested: "created_at",
			expected:  "fixtures.created_at",
		},
		{
			name:      "joined column sorts by its alias",
			requested: "owner_name",
			expected:  "owner_name",
		},
		{
			name:      "unknown column is rejected",
			requested: "no_such_column",
			expected:  "",
		},
		{
			name:      "sql fragment is rejected",
			requested: "name; DROP TABLE fixtures--",
			expected:  "",
		},
		{
			name:      "subquery expression is rejected",
			requested: "(SELECT password FROM users LIMIT 1)",
			expected:  "",
		},
		{
			name:      "empty request yields no ordering",
			requested: "",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, repo.sortColumn(tt.requested))
		})
	}
}
