package repository

import (
	"context"

	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	carts          repo.CartRepository
	cartItems      repo.CartItemRepository
	products       repo.ProductRepository
	markers        repo.CheckoutMarkerRepository
	cryptoPayments repo.CryptoPaymentRepository
	bankTransfers  repo.BankTransferRepository
}

func (r *txReposGorm) Carts() repo.CartRepository                     { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository             { return r.cartItems }
func (r *txReposGorm) Products() repo.ProductRepository               { return r.products }
func (r *txReposGorm) CheckoutMarkers() repo.CheckoutMarkerRepository { return r.markers }
func (r *txReposGorm) CryptoPayments() repo.CryptoPaymentRepository   { return r.cryptoPayments }
func (r *txReposGorm) BankTransfers() repo.BankTransferRepository     { return r.bankTransfers }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			carts:          NewCartGormRepository(tx),
			cartItems:      NewCartGormRepository(tx),
			products:       NewProductGormRepository(tx),
			markers:        NewCheckoutMarkerGormRepository(tx),
			cryptoPayments: NewCryptoPaymentGormRepository(tx),
			bankTransfers:  NewBankTransferGormRepository(tx),
		}
		return fn(r)
	})
}
