package main

import (
	"context"

	"marketplace/internal/chat"
	"marketplace/internal/config"
	"marketplace/internal/domain/model"
	"marketplace/internal/handler"
	"marketplace/internal/infra/db"
	infraRepo "marketplace/internal/infra/repository"
	"marketplace/internal/logging"
	"marketplace/internal/server"
	"marketplace/internal/usecase"
	"marketplace/internal/wallet"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	//.envは無くてもよい（本番は実環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Category{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.CheckoutMarker{},
		&model.CryptoPayment{},
		&model.BankTransfer{},
		&model.ShippingMethod{},
		&model.PaymentMethod{},
		&model.PageContent{},
	); err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	profileRepo := infraRepo.NewProfileGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	markerRepo := infraRepo.NewCheckoutMarkerGormRepository(gormDB)
	cryptoRepo := infraRepo.NewCryptoPaymentGormRepository(gormDB)
	bankRepo := infraRepo.NewBankTransferGormRepository(gormDB)
	shippingRepo := infraRepo.NewShippingMethodGormRepository(gormDB)
	methodRepo := infraRepo.NewPaymentMethodGormRepository(gormDB)
	pageRepo := infraRepo.NewPageContentGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//ブリッジ未設定ならproviderはnilのまま＝crypto分岐はwallet unavailable
	var provider wallet.Provider
	if cfg.WalletBridgeURL != "" {
		provider = wallet.NewHTTPProvider(cfg.WalletBridgeURL)
	}
	adapter := wallet.NewAdapter(provider, profileRepo, cryptoRepo, cfg.CryptoRecipient, logger)

	confirmTimeout := func(ctx context.Context) (context.Context, context.CancelFunc) {
		return context.WithTimeout(ctx, cfg.ConfirmTimeout)
	}

	chatClient := chat.NewClient(cfg.ChatEndpoint, cfg.ChatAPIKey)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, cfg.JWTSecret)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo, markerRepo, logger)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, cartRepo, cartRepo, markerRepo, methodRepo, adapter, confirmTimeout, logger)
	paymentsUC := usecase.NewPaymentsUsecase(cryptoRepo, bankRepo)
	profileUC := usecase.NewProfileUsecase(profileRepo)
	contentUC := usecase.NewContentUsecase(shippingRepo, methodRepo, pageRepo)
	chatUC := usecase.NewChatUsecase(chatClient)

	//Handler生成
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(authUC),
		Product:      handler.NewProductHandler(productUC),
		Cart:         handler.NewCartHandler(cartUC),
		Checkout:     handler.NewCheckoutHandler(checkoutUC, paymentsUC),
		Profile:      handler.NewProfileHandler(profileUC),
		Chat:         handler.NewChatHandler(chatUC),
		Content:      handler.NewContentHandler(contentUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		AdminContent: handler.NewAdminContentHandler(contentUC),
	}

	e := server.New(cfg, handlers)

	addr := ":" + cfg.Port
	logger.Info("server starting", zap.String("addr", addr), zap.Duration("confirm_timeout", cfg.ConfirmTimeout))

	if err := e.Start(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
