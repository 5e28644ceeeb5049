package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/shoply-api/internal/model"
	"github.com/vasapolrittideah/shoply-api/internal/repository"
)

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*model.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*model.Cart)}
}

func (r *fakeCartRepo) GetCartByUserID(_ context.Context, userID string) (*model.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	clone := *cart
	clone.Items = append([]model.CartItem(nil), cart.Items...)

	return &clone, nil
}

func (r *fakeCartRepo) SaveCart(_ context.Context, cart *model.Cart) (*model.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID.IsZero() {
		cart.ID = bson.NewObjectID()
	}
	cart.UpdatedAt = time.Now()

	clone := *cart
	clone.Items = append([]model.CartItem(nil), cart.Items...)
	r.carts[cart.UserID.Hex()] = &clone

	return cart, nil
}

type fakeProductRepo struct {
	products map[string]*model.Product
}

func newFakeProductRepo(products ...*model.Product) *fakeProductRepo {
	repo := &fakeProductRepo{products: make(map[string]*model.Product)}
	for _, p := range products {
		repo.products[p.ID.Hex()] = p
	}

	return repo
}

func (r *fakeProductRepo) CreateProduct(_ context.Context, product *model.Product) (*model.Product, error) {
	product.ID = bson.NewObjectID()
	r.products[product.ID.Hex()] = product

	return product, nil
}

func (r *fakeProductRepo) GetProduct(_ context.Context, id string) (*model.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return product, nil
}

func (r *fakeProductRepo) ListProducts(_ context.Context, _ repository.FilterProductsParams) ([]*model.Product, error) {
	products := make([]*model.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}

	return products, nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, id string, _ repository.UpdateProductParams) (*model.Product, error) {
	return r.GetProduct(context.Background(), id)
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, id string) (*model.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.products, id)

	return product, nil
}

func newTestCartUsecase(cartRepo *fakeCartRepo, productRepo *fakeProductRepo) CartUsecase {
	nop := zerolog.Nop()

	// A delay far beyond the test lifetime keeps the reminder from firing.
	return NewCartUsecase(cartRepo, productRepo, &fakeMailer{}, time.Hour, &nop)
}

func testCartUser() *model.User {
	return &model.User{
		ID:       bson.NewObjectID(),
		Name:     "Alice",
		Email:    "alice@example.com",
		Verified: true,
	}
}

func TestAddItem(t *testing.T) {
	keyboard := &model.Product{ID: bson.NewObjectID(), Name: "Keyboard", Price: 49.99}
	mouse := &model.Product{ID: bson.NewObjectID(), Name: "Mouse", Price: 19.99}

	t.Run("creates the cart on first add", func(t *testing.T) {
		u := newTestCartUsecase(newFakeCartRepo(), newFakeProductRepo(keyboard, mouse))
		user := testCartUser()

		cart, err := u.AddItem(context.Background(), user, keyboard.ID.Hex(), 2)
		require.NoError(t, err)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, keyboard.ID, cart.Items[0].ProductID)
		assert.Equal(t, 2, cart.Items[0].Quantity)
		assert.Equal(t, 49.99, cart.Items[0].Price)
		assert.Equal(t, 2, cart.TotalQuantity)
		assert.InDelta(t, 99.98, cart.TotalPrice, 0.001)
	})

	t.Run("adding the same product bumps its quantity", func(t *testing.T) {
		u := newTestCartUsecase(newFakeCartRepo(), newFakeProductRepo(keyboard, mouse))
		user := testCartUser()

		_, err := u.AddItem(context.Background(), user, keyboard.ID.Hex(), 1)
		require.NoError(t, err)

		cart, err := u.AddItem(context.Background(), user, keyboard.ID.Hex(), 3)
		require.NoError(t, err)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, 4, cart.Items[0].Quantity)
		assert.Equal(t, 4, cart.TotalQuantity)
	})

	t.Run("totals span multiple products", func(t *testing.T) {
		u := newTestCartUsecase(newFakeCartRepo(), newFakeProductRepo(keyboard, mouse))
		user := testCartUser()

		_, err := u.AddItem(context.Background(), user, keyboard.ID.Hex(), 1)
		require.NoError(t, err)

		cart, err := u.AddItem(context.Background(), user, mouse.ID.Hex(), 2)
		require.NoError(t, err)

		assert.Len(t, cart.Items, 2)
		assert.Equal(t, 3, cart.TotalQuantity)
		assert.InDelta(t, 89.97, cart.TotalPrice, 0.001)
	})

	t.Run("unknown product", func(t *testing.T) {
		u := newTestCartUsecase(newFakeCartRepo(), newFakeProductRepo(keyboard))

		_, err := u.AddItem(context.Background(), testCartUser(), bson.NewObjectID().Hex(), 1)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRemoveItem(t *testing.T) {
	keyboard := &model.Product{ID: bson.NewObjectID(), Name: "Keyboard", Price: 49.99}
	mouse := &model.Product{ID: bson.NewObjectID(), Name: "Mouse", Price: 19.99}

	t.Run("drops the line and recomputes totals", func(t *testing.T) {
		u := newTestCartUsecase(newFakeCartRepo(), newFakeProductRepo(keyboard, mouse))
		user := testCartUser()

		_, err := u.AddItem(context.Background(), user, keyboard.ID.Hex(), 1)
		require.NoError(t, err)
		_, err = u.AddItem(context.Background(), user, mouse.ID.Hex(), 2)
		require.NoError(t, err)

		cart, err := u.RemoveItem(context.Background(), user, keyboard.ID.Hex())
		require.NoError(t, err)

		require.Len(t, cart.Items, 1)
		assert.Equal(t, mouse.ID, cart.Items[0].ProductID)
		assert.Equal(t, 2, cart.TotalQuantity)
		assert.InDelta(t, 39.98, cart.TotalPrice, 0.001)
	})

	t.Run("no cart yet", func(t *testing.T) {
		u := newTestCartUsecase(newFakeCartRepo(), newFakeProductRepo(keyboard))

		_, err := u.RemoveItem(context.Background(), testCartUser(), keyboard.ID.Hex())
		assert.ErrorIs(t, err, ErrCartNotFound)
	})
}

func TestGetCart(t *testing.T) {
	keyboard := &model.Product{ID: bson.NewObjectID(), Name: "Keyboard", Price: 49.99}

	t.Run("returns the saved cart", func(t *testing.T) {
		u := newTestCartUsecase(newFakeCartRepo(), newFakeProductRepo(keyboard))
		user := testCartUser()

		_, err := u.AddItem(context.Background(), user, keyboard.ID.Hex(), 1)
		require.NoError(t, err)

		cart, err := u.GetCart(context.Background(), user)
		require.NoError(t, err)
		assert.Len(t, cart.Items, 1)
	})

	t.Run("no cart yet", func(t *testing.T) {
		u := newTestCartUsecase(newFakeCartRepo(), newFakeProductRepo(keyboard))

		_, err := u.GetCart(context.Background(), testCartUser())
		assert.ErrorIs(t, err, ErrCartNotFound)
	})
}

func TestCartReminder(t *testing.T) {
	keyboard := &model.Product{ID: bson.NewObjectID(), Name: "Keyboard", Price: 49.99}

	t.Run("emails when the cart is still non-empty after the delay", func(t *testing.T) {
		mailer := &fakeMailer{}
		nop := zerolog.Nop()
		u := NewCartUsecase(newFakeCartRepo(), newFakeProductRepo(keyboard), mailer, 10*time.Millisecond, &nop)
		user := testCartUser()

		_, err := u.AddItem(context.Background(), user, keyboard.ID.Hex(), 1)
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			return len(mailer.sent()) == 1
		}, time.Second, 10*time.Millisecond)

		sent := mailer.sent()
		assert.Equal(t, []string{user.Email}, sent[0].to)
		assert.Contains(t, sent[0].body, "Keyboard")
	})

	t.Run("stays silent when the cart was emptied in time", func(t *testing.T) {
		mailer := &fakeMailer{}
		nop := zerolog.Nop()
		u := NewCartUsecase(newFakeCartRepo(), newFakeProductRepo(keyboard), mailer, 50*time.Millisecond, &nop)
		user := testCartUser()

		_, err := u.AddItem(context.Background(), user, keyboard.ID.Hex(), 1)
		require.NoError(t, err)
		_, err = u.ClearCart(context.Background(), user)
		require.NoError(t, err)

		time.Sleep(150 * time.Millisecond)
		assert.Empty(t, mailer.sent())
	})
}

func TestClearCart(t *testing.T) {
	keyboard := &model.Product{ID: bson.NewObjectID(), Name: "Keyboard", Price: 49.99}

	u := newTestCartUsecase(newFakeCartRepo(), newFakeProductRepo(keyboard))
	user := testCartUser()

	_, err := u.AddItem(context.Background(), user, keyboard.ID.Hex(), 3)
	require.NoError(t, err)

	cart, err := u.ClearCart(context.Background(), user)
	require.NoError(t, err)

	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalQuantity)
	assert.Zero(t, cart.TotalPrice)
}
