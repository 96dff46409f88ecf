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
	"github.com/placementpathway/portal-api/internal/core/ports"
)

// StudentRepository implements ports.StudentRepository using MongoDB.
type StudentRepository struct {
	col *mongo.Collection
}

func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{col: db.Collection(collectionStudents)}
}

type mongoProject struct {
	ID          string `bson:"id"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	Link        string `bson:"link"`
}

type mongoCertification struct {
	ID     string `bson:"id"`
	Name   string `bson:"name"`
	Issuer string `bson:"issuer"`
	Date   string `bson:"date"`
}

type mongoStudent struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	IsVerified   bool               `bson:"is_verified"`

	Phone          string `bson:"phone,omitempty"`
	Department     string `bson:"department,omitempty"`
	RollNumber     string `bson:"roll_number,omitempty"`
	Semester       string `bson:"semester,omitempty"`
	GPA            string `bson:"gpa,omitempty"`
	TenthPercent   string `bson:"tenth_percent,omitempty"`
	TwelfthPercent string `bson:"twelfth_percent,omitempty"`
	ActiveBacklogs string `bson:"active_backlogs,omitempty"`

	Skills             []string `bson:"skills"`
	PreferredRoles     []string `bson:"preferred_roles"`
	PreferredLocations []string `bson:"preferred_locations"`

	Projects       []mongoProject       `bson:"projects"`
	Certifications []mongoCertification `bson:"certifications"`

	ResumeURL      string `bson:"resume_url,omitempty"`
	ResumeFileName string `bson:"resume_file_name,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toMongoStudent(s *domain.Student) mongoStudent {
	return mongoStudent{
		Name:               s.Name,
		Email:              s.Email,
		PasswordHash:       s.PasswordHash,
		IsVerified:         s.IsVerified,
		Phone:              s.Phone,
		Department:         s.Department,
		RollNumber:         s.RollNumber,
		Semester:           s.Semester,
		GPA:                s.GPA,
		TenthPercent:       s.TenthPercent,
		TwelfthPercent:     s.TwelfthPercent,
		ActiveBacklogs:     s.ActiveBacklogs,
		Skills:             nonNil(s.Skills),
		PreferredRoles:     nonNil(s.PreferredRoles),
		PreferredLocations: nonNil(s.PreferredLocations),
		Projects:           toMongoProjects(s.Projects),
		Certifications:     toMongoCertifications(s.Certifications),
		ResumeURL:          s.ResumeURL,
		ResumeFileName:     s.ResumeFileName,
		CreatedAt:          s.CreatedAt.UTC(),
		UpdatedAt:          s.UpdatedAt.UTC(),
	}
}

func (m *mongoStudent) toDomain() *domain.Student {
	s := &domain.Student{
		Account: domain.Account{
			ID:           hexOrEmpty(m.ID),
			Name:         m.Name,
			Email:        m.Email,
			PasswordHash: m.PasswordHash,
			CreatedAt:    m.CreatedAt,
			UpdatedAt:    m.UpdatedAt,
		},
		IsVerified:         m.IsVerified,
		Phone:              m.Phone,
		Department:         m.Department,
		RollNumber:         m.RollNumber,
		Semester:           m.Semester,
		GPA:                m.GPA,
		TenthPercent:       m.TenthPercent,
		TwelfthPercent:     m.TwelfthPercent,
		ActiveBacklogs:     m.ActiveBacklogs,
		Skills:             nonNil(m.Skills),
		PreferredRoles:     nonNil(m.PreferredRoles),
		PreferredLocations: nonNil(m.PreferredLocations),
		Projects:           make([]domain.Project, 0, len(m.Projects)),
		Certifications:     make([]domain.Certification, 0, len(m.Certifications)),
		ResumeURL:          m.ResumeURL,
		ResumeFileName:     m.ResumeFileName,
	}
	for _, p := range m.Projects {
		s.Projects = append(s.Projects, domain.Project(p))
	}
	for _, c := range m.Certifications {
		s.Certifications = append(s.Certifications, domain.Certification(c))
	}
	return s
}

func toMongoProjects(in []domain.Project) []mongoProject {
	out := make([]mongoProject, 0, len(in))
	for _, p := range in {
		out = append(out, mongoProject(p))
	}
	return out
}

func toMongoCertifications(in []domain.Certification) []mongoCertification {
	out := make([]mongoCertification, 0, len(in))
	for _, c := range in {
		out = append(out, mongoCertification(c))
	}
	return out
}

func (r *StudentRepository) Create(ctx context.Context, s *domain.Student) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoStudent(s)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert student: %w", err)
	}

	doc.ID, _ = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*domain.Student, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *StudentRepository) FindByID(ctx context.Context, id string) (*domain.Student, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrStudentNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *StudentRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Student, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []domain.Student{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (r *StudentRepository) List(ctx context.Context, filter ports.StudentFilter) ([]domain.Student, error) {
	q := bson.M{}
	if filter.VerifiedOnly {
		q["is_verified"] = true
	}
	return r.find(ctx, q)
}

// UpdateProfile applies the set fields of u with a single $set and returns
// the document after the update.
func (r *StudentRepository) UpdateProfile(ctx context.Context, id string, u domain.ProfileUpdate) (*domain.Student, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrStudentNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	setIf(set, "name", u.Name)
	setIf(set, "phone", u.Phone)
	setIf(set, "department", u.Department)
	setIf(set, "roll_number", u.RollNumber)
	setIf(set, "semester", u.Semester)
	setIf(set, "gpa", u.GPA)
	setIf(set, "tenth_percent", u.TenthPercent)
	setIf(set, "twelfth_percent", u.TwelfthPercent)
	setIf(set, "active_backlogs", u.ActiveBacklogs)
	setIf(set, "resume_url", u.ResumeURL)
	setIf(set, "resume_file_name", u.ResumeFileName)
	if u.Skills != nil {
		set["skills"] = nonNil(*u.Skills)
	}
	if u.PreferredRoles != nil {
		set["preferred_roles"] = nonNil(*u.PreferredRoles)
	}
	if u.PreferredLocations != nil {
		set["preferred_locations"] = nonNil(*u.PreferredLocations)
	}
	if u.Projects != nil {
		set["projects"] = toMongoProjects(*u.Projects)
	}
	if u.Certifications != nil {
		set["certifications"] = toMongoCertifications(*u.Certifications)
	}

	return r.findOneAndSet(ctx, oid, set)
}

func (r *StudentRepository) SetVerified(ctx context.Context, id string, verified bool) (*domain.Student, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrStudentNotFound
	}
	return r.findOneAndSet(ctx, oid, bson.M{"is_verified": verified, "updated_at": time.Now().UTC()})
}

func (r *StudentRepository) findOneAndSet(ctx context.Context, oid primitive.ObjectID, set bson.M) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoStudent
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, fmt.Errorf("update student: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *StudentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoStudent
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *StudentRepository) find(ctx context.Context, filter bson.M) ([]domain.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find students: %w", err)
	}

	var docs []mongoStudent
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode students: %w", err)
	}

	out := make([]domain.Student, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toDomain())
	}
	return out, nil
}

func setIf(set bson.M, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
