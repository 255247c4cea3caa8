package mongostore

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/techmart/storefront/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by a MongoDB collection.
type OrderRepository struct {
	coll *mongo.Collection
}

// NewOrderRepository returns an OrderRepository using the given database.
func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(ordersCollection)}
}

type orderDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	UserID        string             `bson:"user_id"`
	Items         []orderItemDoc     `bson:"items"`
	Total         float64            `bson:"total"`
	Status        string             `bson:"status"`
	Address       orderAddressDoc    `bson:"shipping_address"`
	PaymentMethod string             `bson:"payment_method"`
	CreatedAt     time.Time          `bson:"created_at"`
}

type orderItemDoc struct {
	ProductID string  `bson:"product_id"`
	Quantity  int     `bson:"quantity"`
	Price     float64 `bson:"price"`
}

type orderAddressDoc struct {
	Street  string `bson:"street"`
	City    string `bson:"city"`
	State   string `bson:"state"`
	ZipCode string `bson:"zipcode"`
	Country string `bson:"country"`
}

func (d orderDoc) toDomain() order.Order {
	items := make([]order.Item, len(d.Items))
	for i, it := range d.Items {
		items[i] = order.Item{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     decimal.NewFromFloat(it.Price),
		}
	}
	return order.Order{
		ID:     d.ID.Hex(),
		UserID: d.UserID,
		Items:  items,
		Total:  decimal.NewFromFloat(d.Total),
		Status: d.Status,
		ShippingAddress: order.Address{
			Street:  d.Address.Street,
			City:    d.Address.City,
			State:   d.Address.State,
			ZipCode: d.Address.ZipCode,
			Country: d.Address.Country,
		},
		PaymentMethod: d.PaymentMethod,
		CreatedAt:     d.CreatedAt,
	}
}

// Create stores a new order and returns its assigned id.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) (string, error) {
	items := make([]orderItemDoc, len(o.Items))
	for i, it := range o.Items {
		items[i] = orderItemDoc{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price.InexactFloat64(),
		}
	}

	doc := orderDoc{
		UserID: o.UserID,
		Items:  items,
		Total:  o.Total.InexactFloat64(),
		Status: o.Status,
		Address: orderAddressDoc{
			Street:  o.ShippingAddress.Street,
			City:    o.ShippingAddress.City,
			State:   o.ShippingAddress.State,
			ZipCode: o.ShippingAddress.ZipCode,
			Country: o.ShippingAddress.Country,
		},
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", errors.Wrap(err, "insert order")
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// ListByUser returns the user's orders, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find orders")
	}
	defer cursor.Close(ctx)

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode orders")
	}

	orders := make([]order.Order, len(docs))
	for i, d := range docs {
		orders[i] = d.toDomain()
	}
	return orders, nil
}
