package usecase

import (
	"github.com/feriavalle/feriavalle/internal/application/dto"
	"github.com/feriavalle/feriavalle/internal/domain"
	"github.com/feriavalle/feriavalle/internal/domain/entity"
	"github.com/feriavalle/feriavalle/internal/store"
)

// ProductUseCase casos de uso CRUD sobre el catálogo de productos.
type ProductUseCase struct {
	store *store.Store
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(s *store.Store) *ProductUseCase {
	return &ProductUseCase{store: s}
}

// Create valida la entrada y agrega el producto. La regla "precio debe
// superar costo más honorarios" es del formulario, no se impone aquí.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if in.Stock < 0 || in.Price.IsNegative() || in.Cost.IsNegative() {
		return nil, domain.ErrEntradaInvalida
	}
	p := uc.store.AddProduct(store.ProductDraft{
		Name:          in.Name,
		Price:         in.Price,
		Cost:          in.Cost,
		Stock:         in.Stock,
		Category:      in.Category,
		UseHonorarios: in.UseHonorarios,
	})
	return toProductResponse(p), nil
}

// GetByID obtiene un producto por id, o nil si no existe.
func (uc *ProductUseCase) GetByID(id string) *dto.ProductResponse {
	return toProductResponse(uc.store.ProductByID(id))
}

// Update fusiona los campos presentes en el producto existente.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name != nil && *in.Name == "" {
		return nil, domain.ErrEntradaInvalida
	}
	if (in.Price != nil && in.Price.IsNegative()) || (in.Cost != nil && in.Cost.IsNegative()) {
		return nil, domain.ErrEntradaInvalida
	}
	p, err := uc.store.UpdateProduct(id, store.ProductPatch{
		Name:          in.Name,
		Price:         in.Price,
		Cost:          in.Cost,
		Stock:         in.Stock,
		Category:      in.Category,
		UseHonorarios: in.UseHonorarios,
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Delete elimina el producto. Las ventas históricas quedan intactas.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.store.DeleteProduct(id)
}

// List devuelve el catálogo completo.
func (uc *ProductUseCase) List() *dto.ProductListResponse {
	products := uc.store.Products()
	items := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, *toProductResponse(&products[i]))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Cost:          p.Cost,
		Stock:         p.Stock,
		Category:      p.Category,
		UseHonorarios: p.UseHonorarios,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
