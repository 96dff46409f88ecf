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

// OpportunityRepository implements ports.OpportunityRepository using MongoDB.
// Owner-scoped operations put company_id in the filter so a foreign posting
// is indistinguishable from a missing one.
type OpportunityRepository struct {
	col *mongo.Collection
}

func NewOpportunityRepository(db *mongo.Database) *OpportunityRepository {
	return &OpportunityRepository{col: db.Collection(collectionOpportunities)}
}

type mongoOpportunity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CompanyID   primitive.ObjectID `bson:"company_id"`
	Title       string             `bson:"title"`
	Role        string             `bson:"role,omitempty"`
	Package     string             `bson:"package,omitempty"`
	Description string             `bson:"description,omitempty"`
	Location    string             `bson:"location,omitempty"`
	Deadline    *time.Time         `bson:"deadline,omitempty"`
	MinGPA      float64            `bson:"min_gpa"`
	Department  string             `bson:"department,omitempty"`
	Skills      []string           `bson:"skills"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (m *mongoOpportunity) toDomain() *domain.Opportunity {
	return &domain.Opportunity{
		ID:          hexOrEmpty(m.ID),
		CompanyID:   hexOrEmpty(m.CompanyID),
		Title:       m.Title,
		Role:        m.Role,
		Package:     m.Package,
		Description: m.Description,
		Location:    m.Location,
		Deadline:    m.Deadline,
		MinGPA:      m.MinGPA,
		Department:  m.Department,
		Skills:      nonNil(m.Skills),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *OpportunityRepository) Create(ctx context.Context, o *domain.Opportunity) (*domain.Opportunity, error) {
	companyID, ok := objectID(o.CompanyID)
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOpportunity{
		CompanyID:   companyID,
		Title:       o.Title,
		Role:        o.Role,
		Package:     o.Package,
		Description: o.Description,
		Location:    o.Location,
		Deadline:    o.Deadline,
		MinGPA:      o.MinGPA,
		Department:  o.Department,
		Skills:      nonNil(o.Skills),
		CreatedAt:   o.CreatedAt.UTC(),
		UpdatedAt:   o.UpdatedAt.UTC(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert opportunity: %w", err)
	}

	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *OpportunityRepository) FindByID(ctx context.Context, id string) (*domain.Opportunity, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrOpportunityNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *OpportunityRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Opportunity, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []domain.Opportunity{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *OpportunityRepository) FindOwned(ctx context.Context, companyID, id string) (*domain.Opportunity, error) {
	filter, ok := ownedFilter(companyID, id)
	if !ok {
		return nil, domain.ErrOpportunityNotFound
	}
	return r.findOne(ctx, filter)
}

func (r *OpportunityRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Opportunity, error) {
	oid, ok := objectID(companyID)
	if !ok {
		return []domain.Opportunity{}, nil
	}
	return r.find(ctx, bson.M{"company_id": oid})
}

func (r *OpportunityRepository) List(ctx context.Context) ([]domain.Opportunity, error) {
	return r.find(ctx, bson.M{})
}

func (r *OpportunityRepository) UpdateOwned(ctx context.Context, companyID, id string, u domain.OpportunityUpdate) (*domain.Opportunity, error) {
	filter, ok := ownedFilter(companyID, id)
	if !ok {
		return nil, domain.ErrOpportunityNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoOpportunity
	if err := r.col.FindOneAndUpdate(ctx, filter, opportunityUpdateDoc(u, time.Now().UTC()), opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("update opportunity: %w", err)
	}
	return doc.toDomain(), nil
}

// opportunityUpdateDoc builds the $set (and, for a cleared deadline, $unset)
// document for a partial update.
func opportunityUpdateDoc(u domain.OpportunityUpdate, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	setIf(set, "title", u.Title)
	setIf(set, "role", u.Role)
	setIf(set, "package", u.Package)
	setIf(set, "description", u.Description)
	setIf(set, "location", u.Location)
	setIf(set, "department", u.Department)
	if u.MinGPA != nil {
		set["min_gpa"] = *u.MinGPA
	}
	if u.Skills != nil {
		set["skills"] = nonNil(*u.Skills)
	}

	update := bson.M{"$set": set}
	switch {
	case u.Deadline != nil:
		set["deadline"] = u.Deadline.UTC()
	case u.ClearDeadline:
		update["$unset"] = bson.M{"deadline": ""}
	}
	return update
}

func (r *OpportunityRepository) DeleteOwned(ctx context.Context, companyID, id string) error {
	filter, ok := ownedFilter(companyID, id)
	if !ok {
		return domain.ErrOpportunityNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete opportunity: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOpportunityNotFound
	}
	return nil
}

func ownedFilter(companyID, id string) (bson.M, bool) {
	oid, ok := objectID(id)
	if !ok {
		return nil, false
	}
	cid, ok := objectID(companyID)
	if !ok {
		return nil, false
	}
	return bson.M{"_id": oid, "company_id": cid}, true
}

func (r *OpportunityRepository) findOne(ctx context.Context, filter bson.M) (*domain.Opportunity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoOpportunity
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("find opportunity: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *OpportunityRepository) find(ctx context.Context, filter bson.M) ([]domain.Opportunity, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find opportunities: %w", err)
	}

	var docs []mongoOpportunity
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode opportunities: %w", err)
	}

	out := make([]domain.Opportunity, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toDomain())
	}
	return out, nil
}
