package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/shoply-api/internal/model"
	"github.com/vasapolrittideah/shoply-api/internal/repository"
)

// CartUsecase defines the business logic for shopping carts. The acting user
// always comes from the authenticated request, never from the payload.
type CartUsecase interface {
	AddItem(ctx context.Context, user *model.User, productID string, quantity int) (*model.Cart, error)
	RemoveItem(ctx context.Context, user *model.User, productID string) (*model.Cart, error)
	GetCart(ctx context.Context, user *model.User) (*model.Cart, error)
	ClearCart(ctx context.Context, user *model.User) (*model.Cart, error)
}

var ErrCartNotFound = errors.New("cart not found")

type cartUsecase struct {
	cartRepo      repository.CartRepository
	productRepo   repository.ProductRepository
	mailer        Mailer
	reminderDelay time.Duration
	logger        *zerolog.Logger
}

// NewCartUsecase creates a new instance of CartUsecase.
func NewCartUsecase(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	mailer Mailer,
	reminderDelay time.Duration,
	logger *zerolog.Logger,
) CartUsecase {
	return &cartUsecase{
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		mailer:        mailer,
		reminderDelay: reminderDelay,
		logger:        logger,
	}
}

func (u *cartUsecase) AddItem(
	ctx context.Context,
	user *model.User,
	productID string,
	quantity int,
) (*model.Cart, error) {
	product, err := u.productRepo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}

		return nil, err
	}

	cart, err := u.cartRepo.GetCartByUserID(ctx, user.ID.Hex())
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}

		cart = &model.Cart{UserID: user.ID}
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == product.ID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, model.CartItem{
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     product.Price,
		})
	}

	cart.TotalQuantity, cart.TotalPrice = calculateTotals(cart.Items)

	saved, err := u.cartRepo.SaveCart(ctx, cart)
	if err != nil {
		return nil, err
	}

	u.scheduleReminder(user)

	return saved, nil
}

func (u *cartUsecase) RemoveItem(ctx context.Context, user *model.User, productID string) (*model.Cart, error) {
	cart, err := u.cartRepo.GetCartByUserID(ctx, user.ID.Hex())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}

		return nil, err
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID.Hex() != productID {
			items = append(items, item)
		}
	}
	cart.Items = items

	cart.TotalQuantity, cart.TotalPrice = calculateTotals(cart.Items)

	return u.cartRepo.SaveCart(ctx, cart)
}

func (u *cartUsecase) GetCart(ctx context.Context, user *model.User) (*model.Cart, error) {
	cart, err := u.cartRepo.GetCartByUserID(ctx, user.ID.Hex())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}

		return nil, err
	}

	return cart, nil
}

func (u *cartUsecase) ClearCart(ctx context.Context, user *model.User) (*model.Cart, error) {
	cart, err := u.cartRepo.GetCartByUserID(ctx, user.ID.Hex())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}

		return nil, err
	}

	cart.Items = []model.CartItem{}
	cart.TotalQuantity = 0
	cart.TotalPrice = 0

	return u.cartRepo.SaveCart(ctx, cart)
}

// scheduleReminder nudges the user by email if the cart is still non-empty
// after the configured delay. Runs detached from the request; failures are
// logged and never surfaced.
func (u *cartUsecase) scheduleReminder(user *model.User) {
	time.AfterFunc(u.reminderDelay, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cart, err := u.cartRepo.GetCartByUserID(ctx, user.ID.Hex())
		if err != nil || len(cart.Items) == 0 {
			return
		}

		product, err := u.productRepo.GetProduct(ctx, cart.Items[0].ProductID.Hex())
		if err != nil {
			return
		}

		if err := u.mailer.SendHTML(
			[]string{user.Email},
			"You left something in your cart",
			cartReminderBody(user.Name, product.Name),
		); err != nil {
			u.logger.Warn().Err(err).Str("email", user.Email).Msg("failed to send cart reminder")
		}
	})
}

func calculateTotals(items []model.CartItem) (int, float64) {
	var totalQuantity int
	var totalPrice float64

	for _, item := range items {
		totalQuantity += item.Quantity
		totalPrice += item.Price * float64(item.Quantity)
	}

	return totalQuantity, totalPrice
}

func cartReminderBody(name, productName string) string {
	return fmt.Sprintf(`
		<p>Hi %s,</p>
		<p><strong>%s</strong> is still waiting in your cart.</p>
		<p>Come back and finish your order before it sells out.</p>

		<p>Thank you,</p>
		<p>Shoply Team</p>
	`, name, productName)
}
