package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stellarmotion-erp/internal/domain/repository"
)

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"acme":     "acme",
		"50%":      `50\%`,
		"a_b":      `a\_b`,
		`c:\tmp`:   `c:\\tmp`,
		`%_\`:      `\%\_\\`,
		"":         "",
		"año 2024": "año 2024",
	}
	for in, want := range cases {
		assert.Equal(t, want, escapeLike(in), "entrada %q", in)
	}
}

func TestBuildLeadWhere_BusquedaLiteral(t *testing.T) {
	where, args := buildLeadWhere(repository.LeadFilter{Query: "  50%_off ", Sector: "retail"})

	assert.Contains(t, where, "deleted_at IS NULL")
	assert.Contains(t, where, "nombre ILIKE $1")
	assert.Contains(t, where, "sector = $2")
	require.Len(t, args, 2)
	assert.Equal(t, `%50\%\_off%`, args[0])
	assert.Equal(t, "retail", args[1])
}

func TestBuildLeadWhere_SinBusqueda(t *testing.T) {
	where, args := buildLeadWhere(repository.LeadFilter{Trash: true})

	assert.Equal(t, " WHERE deleted_at IS NOT NULL", where)
	assert.Empty(t, args)
}
