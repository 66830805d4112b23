package usecase

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feriavalle/feriavalle/internal/application/dto"
	"github.com/feriavalle/feriavalle/internal/domain"
	"github.com/feriavalle/feriavalle/internal/store"
	"github.com/feriavalle/feriavalle/pkg/logger"
)

func newProductUC(t *testing.T) (*ProductUseCase, *store.Store) {
	t.Helper()
	s, err := store.New(&stubMirror{}, logger.Nop())
	require.NoError(t, err)
	return NewProductUseCase(s), s
}

func TestProductCreate_Valido(t *testing.T) {
	uc, _ := newProductUC(t)

	res, err := uc.Create(dto.CreateProductRequest{
		Name:     "Collar artesanal",
		Price:    decimal.NewFromInt(1000),
		Cost:     decimal.NewFromInt(400),
		Stock:    10,
		Category: "joyería",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "Collar artesanal", res.Name)
	assert.Equal(t, 10, res.Stock)
}

func TestProductCreate_EntradaInvalida(t *testing.T) {
	uc, _ := newProductUC(t)

	cases := []struct {
		name string
		in   dto.CreateProductRequest
	}{
		{"nombre vacío", dto.CreateProductRequest{Price: decimal.NewFromInt(100)}},
		{"precio negativo", dto.CreateProductRequest{Name: "x", Price: decimal.NewFromInt(-1)}},
		{"costo negativo", dto.CreateProductRequest{Name: "x", Cost: decimal.NewFromInt(-1)}},
		{"stock negativo", dto.CreateProductRequest{Name: "x", Stock: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(tc.in)
			assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
		})
	}
}

func TestProductUpdate_NombreVacioEnPatch_Rechaza(t *testing.T) {
	uc, _ := newProductUC(t)
	res, err := uc.Create(dto.CreateProductRequest{Name: "Collar", Price: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	vacio := ""
	_, err = uc.Update(res.ID, dto.UpdateProductRequest{Name: &vacio})
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida,
		"el patch puede omitir el nombre pero no vaciarlo")
}

func TestProductGetByID_Inexistente_DevuelveNil(t *testing.T) {
	uc, _ := newProductUC(t)
	assert.Nil(t, uc.GetByID("no-existe"))
}

func TestProductList_CatalogoVacio(t *testing.T) {
	uc, _ := newProductUC(t)

	res := uc.List()
	assert.Zero(t, res.Total)
	assert.NotNil(t, res.Items, "la lista vacía serializa como [], no null")
}
