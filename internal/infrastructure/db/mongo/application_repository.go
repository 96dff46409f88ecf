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

// ApplicationRepository implements ports.ApplicationRepository using MongoDB.
// Uniqueness of (student_id, opportunity_id) is enforced by the index created
// in EnsureIndexes.
type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications)}
}

type mongoApplication struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	StudentID      primitive.ObjectID `bson:"student_id"`
	CompanyID      primitive.ObjectID `bson:"company_id"`
	OpportunityID  primitive.ObjectID `bson:"opportunity_id"`
	Position       string             `bson:"position"`
	ResumeURL      string             `bson:"resume_url,omitempty"`
	AdditionalInfo string             `bson:"additional_info,omitempty"`
	Status         string             `bson:"status"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
}

func (m *mongoApplication) toDomain() *domain.Application {
	return &domain.Application{
		ID:             hexOrEmpty(m.ID),
		StudentID:      hexOrEmpty(m.StudentID),
		CompanyID:      hexOrEmpty(m.CompanyID),
		OpportunityID:  hexOrEmpty(m.OpportunityID),
		Position:       m.Position,
		ResumeURL:      m.ResumeURL,
		AdditionalInfo: m.AdditionalInfo,
		Status:         domain.ApplicationStatus(m.Status),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) (*domain.Application, error) {
	studentID, ok := objectID(a.StudentID)
	if !ok {
		return nil, domain.ErrStudentNotFound
	}
	companyID, ok := objectID(a.CompanyID)
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	opportunityID, ok := objectID(a.OpportunityID)
	if !ok {
		return nil, domain.ErrOpportunityNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoApplication{
		StudentID:      studentID,
		CompanyID:      companyID,
		OpportunityID:  opportunityID,
		Position:       a.Position,
		ResumeURL:      a.ResumeURL,
		AdditionalInfo: a.AdditionalInfo,
		Status:         string(a.Status),
		CreatedAt:      a.CreatedAt.UTC(),
		UpdatedAt:      a.UpdatedAt.UTC(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAlreadyApplied
		}
		return nil, fmt.Errorf("insert application: %w", err)
	}

	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ApplicationRepository) FindByStudentAndOpportunity(ctx context.Context, studentID, opportunityID string) (*domain.Application, error) {
	sid, ok := objectID(studentID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	oid, ok := objectID(opportunityID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoApplication
	err := r.col.FindOne(ctx, bson.M{"student_id": sid, "opportunity_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID string) ([]domain.Application, error) {
	sid, ok := objectID(studentID)
	if !ok {
		return []domain.Application{}, nil
	}
	return r.find(ctx, bson.M{"student_id": sid})
}

func (r *ApplicationRepository) ListByCompany(ctx context.Context, companyID string) ([]domain.Application, error) {
	cid, ok := objectID(companyID)
	if !ok {
		return []domain.Application{}, nil
	}
	return r.find(ctx, bson.M{"company_id": cid})
}

func (r *ApplicationRepository) find(ctx context.Context, filter bson.M) ([]domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find applications: %w", err)
	}

	var docs []mongoApplication
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}

	out := make([]domain.Application, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toDomain())
	}
	return out, nil
}
