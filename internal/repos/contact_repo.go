package repos

import "github.com/jmoiron/sqlx"

type ContactRepo struct{ db *sqlx.DB }

func NewContactRepo(db *sqlx.DB) *ContactRepo { return &ContactRepo{db: db} }

func (r *ContactRepo) Insert(name, email, subject, message string) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO contact_messages(name, email, subject, message)
		VALUES(?,?,?,?)
	`, name, email, subject, message)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
