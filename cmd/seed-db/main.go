// Command seed-db loads the product catalog and sample users into MongoDB.
//
// By default it imports the embedded catalog. A custom catalog can be given
// with -products-file; gzip-compressed files (.gz) are streamed without being
// fully decompressed into memory, so large catalogs are fine.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/techmart/storefront/db"
	"github.com/techmart/storefront/internal/domain/product"
	"github.com/techmart/storefront/internal/domain/user"
	"github.com/techmart/storefront/internal/mongostore"
)

const insertWorkers = 4

type productJSON struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	OriginalPrice  decimal.Decimal   `json:"originalPrice"`
	Category       string            `json:"category"`
	Image          string            `json:"image"`
	Images         []string          `json:"images"`
	Rating         float64           `json:"rating"`
	Reviews        int               `json:"reviews"`
	InStock        *bool             `json:"inStock"`
	Featured       bool              `json:"featured"`
	Specifications map[string]string `json:"specifications"`
}

func (p productJSON) toDomain() product.Product {
	inStock := true
	if p.InStock != nil {
		inStock = *p.InStock
	}
	return product.Product{
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		OriginalPrice:  p.OriginalPrice,
		Category:       p.Category,
		Image:          p.Image,
		Images:         p.Images,
		Rating:         p.Rating,
		Reviews:        p.Reviews,
		InStock:        inStock,
		Featured:       p.Featured,
		Specifications: p.Specifications,
	}
}

// sampleUser is a well-known account created alongside the catalog.
type sampleUser struct {
	username string
	email    string
	phone    string
	password string
	role     string
}

var sampleUsers = []sampleUser{
	{username: "admin", email: "admin@techmart.com", phone: "9876543210", password: "admin123", role: user.RoleAdmin},
	{username: "john_doe", email: "john@example.com", phone: "9876543211", password: "password123", role: user.RoleUser},
	{username: "jane_smith", email: "jane@example.com", phone: "9876543212", password: "password123", role: user.RoleUser},
}

func main() {
	var (
		mongoURI     string
		database     string
		productsFile string
		drop         bool
	)

	flag.StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI (or MONGODB_URI env)")
	flag.StringVar(&database, "database", "storefront", "MongoDB database name")
	flag.StringVar(&productsFile, "products-file", "", "path to products JSON file (.json or .json.gz, default: embedded catalog)")
	flag.BoolVar(&drop, "drop", false, "drop existing collections before seeding")
	flag.Parse()

	if mongoURI == "" {
		mongoURI = os.Getenv("MONGODB_URI")
	}
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, mongoURI, database, productsFile, drop); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, mongoURI, database, productsFile string, drop bool) error {
	slog.Info("connecting to database", slog.String("database", database))

	client, err := mongostore.Connect(ctx, mongoURI)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	mdb := client.Database(database)

	if drop {
		slog.Info("dropping existing collections")
		if err := mongostore.Reset(ctx, mdb); err != nil {
			return errors.Wrap(err, "reset database")
		}
	}

	if err := mongostore.EnsureIndexes(ctx, mdb); err != nil {
		return errors.Wrap(err, "ensure indexes")
	}

	if err := seedProducts(ctx, mongostore.NewProductRepository(mdb), productsFile); err != nil {
		return errors.Wrap(err, "seed products")
	}

	if err := seedUsers(ctx, mongostore.NewUserRepository(mdb)); err != nil {
		return errors.Wrap(err, "seed users")
	}

	return nil
}

// seedProducts streams the catalog file and inserts products concurrently.
func seedProducts(ctx context.Context, repo *mongostore.ProductRepository, productsFile string) error {
	r, closeFn, err := openCatalog(productsFile)
	if err != nil {
		return err
	}
	defer closeFn()

	jobs := make(chan product.Product)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		return decodeProducts(ctx, r, jobs)
	})

	var inserted [insertWorkers]int
	for i := range insertWorkers {
		g.Go(func() error {
			for p := range jobs {
				if _, err := repo.Insert(ctx, &p); err != nil {
					return errors.Wrapf(err, "insert product %q", p.Name)
				}
				inserted[i]++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	total := 0
	for _, n := range inserted {
		total += n
	}
	slog.Info("inserted products", slog.Int("count", total))
	return nil
}

// openCatalog returns a reader over the catalog JSON: the embedded default,
// a plain file, or a pgzip-decompressed stream for .gz files.
func openCatalog(path string) (io.Reader, func(), error) {
	if path == "" {
		slog.Info("using embedded catalog")
		return bytes.NewReader(db.SeedProducts), func() {}, nil
	}

	slog.Info("reading products file", slog.String("path", path))

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %s", path)
	}

	if !strings.HasSuffix(path, ".gz") {
		return f, func() { _ = f.Close() }, nil
	}

	gz, err := pgzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, errors.Wrapf(err, "create gzip reader for %s", path)
	}
	return gz, func() { _ = gz.Close(); _ = f.Close() }, nil
}

// decodeProducts streams the top-level JSON array element by element so a
// multi-gigabyte catalog never has to fit in memory at once.
func decodeProducts(ctx context.Context, r io.Reader, jobs chan<- product.Product) error {
	d := jx.Decode(r, 1<<16)

	return d.Arr(func(d *jx.Decoder) error {
		raw, err := d.Raw()
		if err != nil {
			return errors.Wrap(err, "read catalog entry")
		}

		var p productJSON
		if err := json.Unmarshal(raw, &p); err != nil {
			return errors.Wrap(err, "parse catalog entry")
		}

		select {
		case jobs <- p.toDomain():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// seedUsers creates the sample accounts, skipping any that already exist.
func seedUsers(ctx context.Context, repo *mongostore.UserRepository) error {
	for _, su := range sampleUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return errors.Wrapf(err, "hash password for %s", su.username)
		}

		_, err = repo.Insert(ctx, &user.User{
			Username:     su.username,
			Email:        su.email,
			Phone:        su.phone,
			PasswordHash: string(hash),
			Role:         su.role,
		})
		switch {
		case errors.Is(err, user.ErrAlreadyExists):
			slog.Info("user already exists", slog.String("username", su.username))
		case err != nil:
			return errors.Wrapf(err, "insert user %s", su.username)
		default:
			slog.Info("created user", slog.String("username", su.username), slog.String("role", su.role))
		}
	}
	return nil
}
