// Package store implementa el almacén de entidades: el dueño del estado
// autoritativo en memoria (catálogo de productos y libro de ventas).
//
// Todas las mutaciones son atómicas bajo un único lock de escritura y se
// espejan síncronamente al slot durable (StateMirror) antes de devolver el
// control: ningún lector observa estado sucio ni intermedio. El mismo lock
// excluye a un respaldo (lectura de snapshot) de una restauración
// (reemplazo total) en curso, de modo que nunca se observa un estado a
// medio reemplazar.
//
// Un fallo del espejo (cuota llena, I/O) se registra como warning y NO
// revierte la mutación en memoria: la persistencia es una ayuda de
// durabilidad, no un requisito para que la sesión actual siga funcionando.
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/feriavalle/feriavalle/internal/domain"
	"github.com/feriavalle/feriavalle/internal/domain/entity"
	"github.com/feriavalle/feriavalle/internal/domain/repository"
	"github.com/feriavalle/feriavalle/pkg/logger"
)

// Store almacén de entidades en memoria con espejo write-through.
type Store struct {
	mu       sync.RWMutex
	products []entity.Product
	sales    []entity.Sale

	mirror repository.StateMirror
	log    *logger.Logger
	now    func() time.Time
}

// New construye el almacén y rehidrata el estado desde el espejo. Si el slot
// está vacío o nunca fue escrito, parte con colecciones vacías.
func New(mirror repository.StateMirror, log *logger.Logger) (*Store, error) {
	s := &Store{
		products: []entity.Product{},
		sales:    []entity.Sale{},
		mirror:   mirror,
		log:      log,
		now:      time.Now,
	}
	state, err := mirror.LoadState()
	if err != nil {
		return nil, fmt.Errorf("cargar estado persistido: %w", err)
	}
	if state != nil {
		s.products = state.Products
		s.sales = state.Sales
	}
	return s, nil
}

// ProductDraft datos de un producto nuevo. El id y las marcas de tiempo los
// asigna el almacén.
type ProductDraft struct {
	Name          string
	Price         decimal.Decimal
	Cost          decimal.Decimal
	Stock         int
	Category      string
	UseHonorarios bool
}

// ProductPatch campos opcionales a fusionar en un producto existente.
type ProductPatch struct {
	Name          *string
	Price         *decimal.Decimal
	Cost          *decimal.Decimal
	Stock         *int
	Category      *string
	UseHonorarios *bool
}

// SaleDraft datos de una venta nueva. Los montos derivados (total y
// ganancia) NO se aceptan del caller: el almacén los recalcula desde el
// producto referenciado para que catálogo y libro nunca diverjan.
type SaleDraft struct {
	ProductID     string
	Quantity      int
	PaymentMethod entity.PaymentMethod
	Notes         string
}

// AddProduct asigna id y marcas de tiempo, agrega el producto y lo espeja.
// No valida precio contra costo: esa regla es del formulario, no del almacén.
func (s *Store) AddProduct(draft ProductDraft) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := entity.Product{
		ID:            uuid.NewString(),
		Name:          draft.Name,
		Price:         draft.Price,
		Cost:          draft.Cost,
		Stock:         draft.Stock,
		Category:      draft.Category,
		UseHonorarios: draft.UseHonorarios,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.products = append(s.products, p)
	s.mirrorLocked()

	out := p
	return &out
}

// UpdateProduct fusiona los campos presentes del patch y refresca UpdatedAt.
// Devuelve ErrProductoNoEncontrado si el id no existe.
func (s *Store) UpdateProduct(id string, patch ProductPatch) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndexLocked(id)
	if i < 0 {
		return nil, domain.ErrProductoNoEncontrado
	}
	p := &s.products[i]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Cost != nil {
		p.Cost = *patch.Cost
	}
	if patch.Stock != nil {
		stock := *patch.Stock
		if stock < 0 {
			stock = 0
		}
		p.Stock = stock
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.UseHonorarios != nil {
		p.UseHonorarios = *patch.UseHonorarios
	}
	p.UpdatedAt = s.now()
	s.mirrorLocked()

	out := *p
	return &out, nil
}

// DeleteProduct elimina el producto del catálogo. Las ventas históricas que
// lo referencian quedan intactas (referencia débil, sin cascada).
func (s *Store) DeleteProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndexLocked(id)
	if i < 0 {
		return domain.ErrProductoNoEncontrado
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	s.mirrorLocked()
	return nil
}

// AddSale registra una venta contra el producto referenciado. Si el producto
// no existe rechaza con ErrProductoNoEncontrado sin tocar el estado. En caso
// contrario recalcula total y ganancia desde el catálogo, descuenta el stock
// (recortado en cero, nunca negativo) y agrega la venta; todo como una única
// transición atómica.
func (s *Store) AddSale(draft SaleDraft) (*entity.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndexLocked(draft.ProductID)
	if i < 0 {
		return nil, domain.ErrProductoNoEncontrado
	}
	p := &s.products[i]

	qty := decimal.NewFromInt(int64(draft.Quantity))
	sale := entity.Sale{
		ID:            uuid.NewString(),
		ProductID:     p.ID,
		ProductName:   p.Name,
		Quantity:      draft.Quantity,
		UnitPrice:     p.Price,
		TotalPrice:    p.Price.Mul(qty),
		Profit:        p.UnitProfit().Mul(qty),
		Date:          s.now(),
		PaymentMethod: draft.PaymentMethod,
		Notes:         draft.Notes,
	}

	stock := p.Stock - draft.Quantity
	if stock < 0 {
		stock = 0
	}
	p.Stock = stock
	s.sales = append(s.sales, sale)
	s.mirrorLocked()

	out := sale
	return &out, nil
}

// DeleteSale elimina la venta. No repone el stock del producto: corregir una
// venta mal registrada no implica que la mercadería haya vuelto.
func (s *Store) DeleteSale(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.sales {
		if s.sales[i].ID == id {
			s.sales = append(s.sales[:i], s.sales[i+1:]...)
			s.mirrorLocked()
			return nil
		}
	}
	return domain.ErrVentaNoEncontrada
}

// CurrentState copia profunda del estado completo, tomada bajo el lock de
// lectura. Es la base de un respaldo: el exportador nunca ve un estado roto.
func (s *Store) CurrentState() *entity.State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := entity.State{Products: s.products, Sales: s.sales}
	return st.Clone()
}

// Replace sobrescribe ambas colecciones por completo (camino de
// restauración) y espeja el nuevo estado. Destructivo: no hay merge.
func (s *Store) Replace(state *entity.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := state.Clone()
	s.products = c.Products
	s.sales = c.Sales
	s.mirrorLocked()
}

// mirrorLocked espeja el estado actual al slot durable. Requiere el lock de
// escritura. Un fallo se registra y se descarta: la mutación ya aplicó.
func (s *Store) mirrorLocked() {
	st := entity.State{Products: s.products, Sales: s.sales}
	if err := s.mirror.SaveState(st.Clone()); err != nil {
		s.log.Warn().Err(err).Msg("no se pudo espejar el estado al almacenamiento local")
	}
}

func (s *Store) productIndexLocked(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}
