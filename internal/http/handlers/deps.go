package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/Thrisha-krishnamoorthy/bakesss/internal/config"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/mail"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/repos"
	"github.com/Thrisha-krishnamoorthy/bakesss/internal/services"
)

type Deps struct {
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	OrderHandler   *OrderHandler
	ContactHandler *ContactHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	contactRepo := repos.NewContactRepo(db)

	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret)
	catalogSvc := services.NewCatalogService(prodRepo)
	orderSvc := services.NewOrderService(userRepo, orderRepo)
	mailer := mail.New(cfg.SendgridKey, cfg.ContactSender)

	return &Deps{
		AuthHandler:    &AuthHandler{Auth: authSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc, MediaDir: cfg.MediaDir},
		OrderHandler:   &OrderHandler{Orders: orderSvc, Mail: mailer},
		ContactHandler: &ContactHandler{Messages: contactRepo, Mail: mailer, Recipient: cfg.ContactRecipient},
	}
}
