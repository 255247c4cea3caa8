package mongostore

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/techmart/storefront/internal/domain/user"
)

var _ user.Repository = (*UserRepository)(nil)

// UserRepository implements user.Repository backed by a MongoDB collection.
type UserRepository struct {
	coll *mongo.Collection
}

// NewUserRepository returns a UserRepository using the given database.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	Phone        string             `bson:"phone"`
	PasswordHash string             `bson:"password"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func (d userDoc) toDomain() user.User {
	return user.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		Phone:        d.Phone,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
	}
}

// Insert stores a new user. Unique-index violations on email or username map
// to user.ErrAlreadyExists, covering the race between the existence check and
// the insert.
func (r *UserRepository) Insert(ctx context.Context, u *user.User) (string, error) {
	doc := userDoc{
		Username:     u.Username,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", user.ErrAlreadyExists
		}
		return "", errors.Wrap(err, "insert user")
	}
	return res.InsertedID.(primitive.ObjectID).Hex(), nil
}

// GetByEmail returns the user holding the given email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, user.ErrNotFound
		}
		return nil, errors.Wrap(err, "get user by email")
	}

	u := doc.toDomain()
	return &u, nil
}

// ExistsByEmailOrUsername reports whether any user holds the given email or
// username.
func (r *UserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}}

	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, errors.Wrap(err, "count users")
	}
	return count > 0, nil
}
