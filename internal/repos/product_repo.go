package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/Thrisha-krishnamoorthy/bakesss/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List(category string) ([]domain.Product, error) {
	out := []domain.Product{}
	if category != "" {
		err := r.db.Select(&out, `
			SELECT product_id, name, description, price, image_url, category, quantity, status, created_at
			FROM products
			WHERE category = ?
			ORDER BY created_at DESC
		`, category)
		return out, err
	}
	err := r.db.Select(&out, `
		SELECT product_id, name, description, price, image_url, category, quantity, status, created_at
		FROM products
		ORDER BY created_at DESC
	`)
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
		SELECT product_id, name, description, price, image_url, category, quantity, status, created_at
		FROM products
		WHERE product_id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return p, &domain.ProductNotFoundError{ID: id}
	}
	return p, err
}

func (r *ProductRepo) Create(p *domain.Product) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO products(name, description, price, image_url, category, quantity, status)
		VALUES(?,?,?,?,?,?,?)
	`, p.Name, p.Description, p.Price, p.ImageURL, p.Category, p.Quantity, domain.StockStatus(p.Quantity))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ProductUpdate carries a partial edit; nil fields are left untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	ImageURL    *string
	Category    *string
	Quantity    *int
}

// Update applies the non-nil fields. The status flag is re-derived
// whenever quantity changes.
func (r *ProductRepo) Update(id int64, upd ProductUpdate) error {
	set := ""
	args := []any{}
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + " = ?"
		args = append(args, v)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	if upd.ImageURL != nil {
		add("image_url", *upd.ImageURL)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.Quantity != nil {
		add("quantity", *upd.Quantity)
		add("status", domain.StockStatus(*upd.Quantity))
	}
	if set == "" {
		return nil
	}
	args = append(args, id)

	res, err := r.db.Exec(`UPDATE products SET `+set+` WHERE product_id = ?`, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.ProductNotFoundError{ID: id}
	}
	return nil
}

func (r *ProductRepo) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE product_id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.ProductNotFoundError{ID: id}
	}
	return nil
}

// SetQuantity overwrites stock and re-derives the status flag.
func (r *ProductRepo) SetQuantity(id int64, qty int) error {
	res, err := r.db.Exec(`
		UPDATE products
		SET quantity = ?,
		    status = CASE WHEN ? = 0 THEN 'out_of_stock' ELSE 'in_stock' END
		WHERE product_id = ?
	`, qty, qty, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.ProductNotFoundError{ID: id}
	}
	return nil
}

func (r *ProductRepo) SetImageURL(id int64, url string) error {
	res, err := r.db.Exec(`UPDATE products SET image_url = ? WHERE product_id = ?`, url, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &domain.ProductNotFoundError{ID: id}
	}
	return nil
}
