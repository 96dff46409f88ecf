package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/placementpathway/portal-api/internal/core/domain"
)

// CompanyRepository implements ports.CompanyRepository using MongoDB.
type CompanyRepository struct {
	col *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) *CompanyRepository {
	return &CompanyRepository{col: db.Collection(collectionCompanies)}
}

type mongoCompany struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (m *mongoCompany) toDomain() *domain.Company {
	return &domain.Company{Account: domain.Account{
		ID:           hexOrEmpty(m.ID),
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}}
}

func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company) (*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCompany{
		Name:         c.Name,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		CreatedAt:    c.CreatedAt.UTC(),
		UpdatedAt:    c.UpdatedAt.UTC(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert company: %w", err)
	}

	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *CompanyRepository) FindByEmail(ctx context.Context, email string) (*domain.Company, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*domain.Company, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *CompanyRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Company, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []domain.Company{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *CompanyRepository) List(ctx context.Context) ([]domain.Company, error) {
	return r.find(ctx, bson.M{})
}

func (r *CompanyRepository) findOne(ctx context.Context, filter bson.M) (*domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoCompany
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CompanyRepository) find(ctx context.Context, filter bson.M) ([]domain.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find companies: %w", err)
	}

	var docs []mongoCompany
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode companies: %w", err)
	}

	out := make([]domain.Company, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toDomain())
	}
	return out, nil
}
