package mongostore

import (
	"context"
	"regexp"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/techmart/storefront/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by a MongoDB
// collection.
type ProductRepository struct {
	coll *mongo.Collection
}

// NewProductRepository returns a ProductRepository using the given database.
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(productsCollection)}
}

// productDoc is the BSON document shape. Prices live as doubles in the store
// and are converted to decimals at the domain boundary.
type productDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Name           string             `bson:"name"`
	Description    string             `bson:"description"`
	Price          float64            `bson:"price"`
	OriginalPrice  float64            `bson:"original_price"`
	Category       string             `bson:"category"`
	Image          string             `bson:"image"`
	Images         []string           `bson:"images,omitempty"`
	Rating         float64            `bson:"rating"`
	Reviews        int                `bson:"reviews"`
	InStock        bool               `bson:"in_stock"`
	Featured       bool               `bson:"featured"`
	Specifications map[string]string  `bson:"specifications,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (d productDoc) toDomain() product.Product {
	return product.Product{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Description:    d.Description,
		Price:          decimal.NewFromFloat(d.Price),
		OriginalPrice:  decimal.NewFromFloat(d.OriginalPrice),
		Category:       d.Category,
		Image:          d.Image,
		Images:         d.Images,
		Rating:         d.Rating,
		Reviews:        d.Reviews,
		InStock:        d.InStock,
		Featured:       d.Featured,
		Specifications: d.Specifications,
		CreatedAt:      d.CreatedAt,
	}
}

func docFromDomain(p *product.Product) productDoc {
	return productDoc{
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price.InexactFloat64(),
		OriginalPrice:  p.OriginalPrice.InexactFloat64(),
		Category:       p.Category,
		Image:          p.Image,
		Images:         p.Images,
		Rating:         p.Rating,
		Reviews:        p.Reviews,
		InStock:        p.InStock,
		Featured:       p.Featured,
		Specifications: p.Specifications,
		CreatedAt:      p.CreatedAt,
	}
}

// substringRegex builds a case-insensitive substring matcher. The term is
// quoted so user input cannot inject regex syntax.
func substringRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

// buildFilter translates a normalized catalog query into a Mongo filter:
// category is a substring match, search ORs across name, description, and
// category.
func buildFilter(q product.Query) bson.M {
	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = substringRegex(q.Category)
	}
	if q.Search != "" {
		re := substringRegex(q.Search)
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
			bson.M{"category": re},
		}
	}
	return filter
}

// buildSort maps a normalized sort key to a Mongo sort document.
func buildSort(key string) bson.D {
	switch key {
	case product.SortPriceLow:
		return bson.D{{Key: "price", Value: 1}}
	case product.SortPriceHigh:
		return bson.D{{Key: "price", Value: -1}}
	case product.SortRating:
		return bson.D{{Key: "rating", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}

// Find returns one page of products matching the query, plus totals.
func (r *ProductRepository) Find(ctx context.Context, q product.Query) (*product.Page, error) {
	q = q.Normalize()
	filter := buildFilter(q)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "count products")
	}

	opts := options.Find().
		SetSort(buildSort(q.Sort)).
		SetSkip(q.Skip()).
		SetLimit(q.Limit)

	products, err := r.findAll(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	pages := total / q.Limit
	if total%q.Limit != 0 {
		pages++
	}

	return &product.Page{
		Products:    products,
		Total:       total,
		Pages:       pages,
		CurrentPage: q.Page,
	}, nil
}

// GetByID returns a single product. A malformed or unknown id maps to
// product.ErrNotFound.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, product.ErrNotFound
	}

	var doc productDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get product %q", id)
	}

	p := doc.toDomain()
	return &p, nil
}

// ByCategory returns every product whose category contains the given term,
// case-insensitively.
func (r *ProductRepository) ByCategory(ctx context.Context, category string) ([]product.Product, error) {
	return r.findAll(ctx, bson.M{"category": substringRegex(category)}, options.Find())
}

// Search returns products whose name, description, or category contains the
// query term.
func (r *ProductRepository) Search(ctx context.Context, query string) ([]product.Product, error) {
	re := substringRegex(query)
	filter := bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"description": re},
		bson.M{"category": re},
	}}
	return r.findAll(ctx, filter, options.Find())
}

// Featured returns up to limit featured products.
func (r *ProductRepository) Featured(ctx context.Context, limit int64) ([]product.Product, error) {
	return r.findAll(ctx, bson.M{"featured": true}, options.Find().SetLimit(limit))
}

// Insert stores a new product and returns its assigned id.
func (r *ProductRepository) Insert(ctx context.Context, p *product.Product) (string, error) {
	doc := docFromDomain(p)
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", errors.Wrap(err, "insert product")
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// Update replaces the mutable fields of a product and returns the updated
// record.
func (r *ProductRepository) Update(ctx context.Context, id string, p *product.Product) (*product.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, product.ErrNotFound
	}

	doc := docFromDomain(p)
	update := bson.M{"$set": bson.M{
		"name":           doc.Name,
		"description":    doc.Description,
		"price":          doc.Price,
		"original_price": doc.OriginalPrice,
		"category":       doc.Category,
		"image":          doc.Image,
		"images":         doc.Images,
		"rating":         doc.Rating,
		"reviews":        doc.Reviews,
		"in_stock":       doc.InStock,
		"featured":       doc.Featured,
		"specifications": doc.Specifications,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated productDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrapf(err, "update product %q", id)
	}

	out := updated.toDomain()
	return &out, nil
}

// Delete removes a product. Deleting an unknown id maps to
// product.ErrNotFound.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return product.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return errors.Wrapf(err, "delete product %q", id)
	}
	if res.DeletedCount == 0 {
		return product.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) findAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]product.Product, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find products")
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}

	products := make([]product.Product, len(docs))
	for i, d := range docs {
		products[i] = d.toDomain()
	}
	return products, nil
}
