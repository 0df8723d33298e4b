package usecase

import (
	"context"
	"net/http"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"go.uber.org/zap"
)

// CartUsecase は /cart の業務ロジックです。
// 金額はすべて最小通貨単位（セント）の整数で扱う。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	markerRepo   repo.CheckoutMarkerRepository
	logger       *zap.Logger
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	markerRepo repo.CheckoutMarkerRepository,
	logger *zap.Logger,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		markerRepo:   markerRepo,
		logger:       logger,
	}
}

// price は unit_price_snapshot（追加時点の価格）を返す。
type CartItemResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type CartResponse struct {
	CartID int64              `json:"cart_id"`
	Items  []CartItemResponse `json:"items"`
	Total  int64              `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得（無ければACTIVEを作って空を返す）。
// 支払い済み・未クリアのマーカーが残っていたらここで回収する。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.reconcilePaidMarkers(ctx, userID)

	return u.buildCartResponse(ctx, cart.ID)
}

// PAIDで止まったマーカー＝支払いは済んだがクリアに失敗したカート。
// ここで改めてクリアしてCLEAREDへ進める。失敗したら次のロードでまた試す。
func (u *CartUsecase) reconcilePaidMarkers(ctx context.Context, userID int64) {
	markers, err := u.markerRepo.ListPaidByUserID(ctx, userID)
	if err != nil {
		u.logger.Warn("paid marker scan failed", zap.Int64("user_id", userID), zap.Error(err))
		return
	}

	for _, m := range markers {
		if err := u.cartRepo.Clear(ctx, m.CartID); err != nil {
			u.logger.Warn("orphaned cart clear failed",
				zap.Int64("cart_id", m.CartID), zap.Error(err))
			continue
		}
		if err := u.markerRepo.UpdateStatus(ctx, m.ID, model.CheckoutMarkerStatusCleared, ""); err != nil {
			u.logger.Warn("marker advance failed",
				zap.Int64("marker_id", m.ID), zap.Error(err))
		}
	}
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// ACTIVEカート取得（無ければ作成）
	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 商品チェック（公開のみ）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}

	// Upsert（同一商品は加算）
	// unit_price_snapshot は「追加時点の価格」を渡す
	if err := u.cartItemRepo.UpsertByCartAndProduct(ctx, cart.ID, in.ProductID, in.Quantity, p.Price); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// 数量変更。1未満は削除として扱う。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID int64, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	//0以下は削除に落とす
	if in.Quantity < 1 {
		return u.DeleteCartItem(ctx, userID, cartItemID)
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//ACTIVEカートを取得して返却
	cart, err := u.cartRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartResponse(ctx, cart.ID)
}

// 明細削除。所有外・存在しないIDはローカルでは無害（no-op相当で現状カートを返す）。
func (u *CartUsecase) DeleteCartItem(ctx context.Context, userID int64, cartItemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		//削除済みor他人の明細。2回目の削除は何も起きない
		return u.buildCartResponse(ctx, cart.ID)
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		if err == repo.ErrNotFound {
			return u.buildCartResponse(ctx, cart.ID)
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart.ID)
}

// cartIDの明細をまとめてCartResponseを作る。
// total = Σ(unit_price_snapshot × quantity)
func (u *CartUsecase) buildCartResponse(ctx context.Context, cartID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cartID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))
	var total int64 = 0

	for _, it := range items {
		//表示合計はチェックアウトが請求する集合と同じ。
		//商品が非公開・削除済みでも明細は落とさない（snapshotで計算できる）
		name := ""
		imageURL := ""
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err != nil && err != repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err == nil {
			name = p.Name
			imageURL = p.ImageURL
		}

		respItems = append(respItems, CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      name,
			ImageURL:  imageURL,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})

		total += it.UnitPriceSnapshot * it.Quantity
	}

	return CartResponse{CartID: cartID, Items: respItems, Total: total}, nil
}
