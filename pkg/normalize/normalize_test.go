package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/LabStock-api/pkg/normalize"
)

func TestSearchKey(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Ácido Clorhídrico", "acido clorhidrico"},
		{"Tampón fosfato", "tampon fosfato"},
		{"ETANOL", "etanol"},
		{"  glucosa  ", "glucosa"},
		{"", ""},
		{"ya-normalizado 37%", "ya-normalizado 37%"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalize.SearchKey(tc.in), "entrada %q", tc.in)
	}
}

// Buscar con o sin acentos produce la misma clave.
func TestSearchKey_InsensibleAAcentos(t *testing.T) {
	assert.Equal(t, normalize.SearchKey("Ácido"), normalize.SearchKey("acido"))
}
