package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/placementpathway/portal-api/internal/core/domain"
)

type TPORepository struct {
	col *mongo.Collection
}

func NewTPORepository(db *mongo.Database) *TPORepository {
	return &TPORepository{col: db.Collection(collectionTPOs)}
}

type mongoTPO struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Verified     bool               `bson:"verified"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (m *mongoTPO) toDomain() *domain.TPO {
	return &domain.TPO{
		Account: domain.Account{
			ID:           hexOrEmpty(m.ID),
			Name:         m.Name,
			Email:        m.Email,
			PasswordHash: m.PasswordHash,
			CreatedAt:    m.CreatedAt,
			UpdatedAt:    m.UpdatedAt,
		},
		Verified: m.Verified,
	}
}

func (r *TPORepository) Create(ctx context.Context, t *domain.TPO) (*domain.TPO, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTPO{
		Name:         t.Name,
		Email:        t.Email,
		PasswordHash: t.PasswordHash,
		Verified:     t.Verified,
		CreatedAt:    t.CreatedAt.UTC(),
		UpdatedAt:    t.UpdatedAt.UTC(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert tpo: %w", err)
	}

	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *TPORepository) FindByEmail(ctx context.Context, email string) (*domain.TPO, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoTPO
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find tpo: %w", err)
	}
	return doc.toDomain(), nil
}
