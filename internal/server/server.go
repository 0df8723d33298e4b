package server

import (
	"marketplace/internal/config"
	"marketplace/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// 全ハンドラの束
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Cart         *handler.CartHandler
	Checkout     *handler.CheckoutHandler
	Profile      *handler.ProfileHandler
	Chat         *handler.ChatHandler
	Content      *handler.ContentHandler
	AdminProduct *handler.AdminProductHandler
	AdminContent *handler.AdminContentHandler
}

// New はechoを組み立ててルートを登録する。
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())

	//フロントのオリジンだけ許可
	if cfg.FEURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: []string{cfg.FEURL},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		}))
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	h.Auth.RegisterRoutes(e)
	h.Product.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, cfg)
	h.Checkout.RegisterRoutes(e, cfg)
	h.Profile.RegisterRoutes(e, cfg)
	h.Chat.RegisterRoutes(e)
	h.Content.RegisterRoutes(e)
	h.AdminProduct.RegisterRoutes(e, cfg)
	h.AdminContent.RegisterRoutes(e, cfg)

	return e
}
