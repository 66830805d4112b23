package store

import (
	"time"

	"github.com/feriavalle/feriavalle/internal/domain/entity"
)

// Consultas puras sobre las colecciones en memoria. Son escaneos O(n) sin
// efectos: a la escala esperada (cientos a pocos miles de registros de un
// negocio chico) no amerita indexar.

// ProductByID devuelve una copia del producto, o nil si no existe.
func (s *Store) ProductByID(id string) *entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.productIndexLocked(id); i >= 0 {
		out := s.products[i]
		return &out
	}
	return nil
}

// Products devuelve una copia del catálogo completo.
func (s *Store) Products() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Sales devuelve una copia del libro de ventas completo.
func (s *Store) Sales() []entity.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Sale, len(s.sales))
	copy(out, s.sales)
	return out
}

// SalesOnDate ventas del mismo día calendario que date (zona local).
func (s *Store) SalesOnDate(date time.Time) []entity.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()

	y, m, d := date.Date()
	out := []entity.Sale{}
	for _, sale := range s.sales {
		sy, sm, sd := sale.Date.Date()
		if sy == y && sm == m && sd == d {
			out = append(out, sale)
		}
	}
	return out
}

// SalesInMonth ventas dentro del mes y año indicados (zona local).
func (s *Store) SalesInMonth(month time.Month, year int) []entity.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []entity.Sale{}
	for _, sale := range s.sales {
		if sale.Date.Month() == month && sale.Date.Year() == year {
			out = append(out, sale)
		}
	}
	return out
}
