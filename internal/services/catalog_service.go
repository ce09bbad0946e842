package services

import (
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/domain"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/repos"
)

type CatalogService struct {
	Products *repos.ProductRepo
}

func NewCatalogService(products *repos.ProductRepo) *CatalogService {
	return &CatalogService{Products: products}
}

func (s *CatalogService) List(category string) ([]domain.Product, error) {
	return s.Products.List(category)
}

func (s *CatalogService) Get(id int64) (domain.Product, error) {
	return s.Products.Get(id)
}

func (s *CatalogService) Create(p *domain.Product) (int64, error) {
	return s.Products.Create(p)
}

func (s *CatalogService) Update(id int64, upd repos.ProductUpdate) error {
	return s.Products.Update(id, upd)
}

func (s *CatalogService) Delete(id int64) error {
	return s.Products.Delete(id)
}

// SetQuantity overwrites stock for a product; the in_stock/out_of_stock
// flag always follows the new quantity.
func (s *CatalogService) SetQuantity(id int64, qty int) error {
	return s.Products.SetQuantity(id, qty)
}

// AttachImage records the stored image path for a product.
func (s *CatalogService) AttachImage(id int64, url string) error {
	return s.Products.SetImageURL(id, url)
}
