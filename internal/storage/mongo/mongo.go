// Package mongo provides a MongoDB-backed implementation of the storage.Store interface.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

const (
	expensesCollection = "expenses"
	usersCollection    = "users"

	defaultServerSelectionTimeout = 5 * time.Second
)

var (
	// ErrEmptyURI is returned when the Mongo URI is empty.
	ErrEmptyURI = errors.New("mongo uri cannot be empty")
	// ErrEmptyDatabaseName is returned when the database name is empty.
	ErrEmptyDatabaseName = errors.New("database name cannot be empty")
)

// Ensure MongoStore implements storage.Store
var _ storage.Store = (*MongoStore)(nil)

// Config defines the MongoDB connection settings.
type Config struct {
	URI                    string
	Database               string
	ServerSelectionTimeout time.Duration
}

func (cfg Config) validate() error {
	if strings.TrimSpace(cfg.URI) == "" {
		return ErrEmptyURI
	}
	if strings.TrimSpace(cfg.Database) == "" {
		return ErrEmptyDatabaseName
	}
	return nil
}

// MongoStore implements storage.Store using one document per expense and per user.
type MongoStore struct {
	client   *mongo.Client
	expenses *mongo.Collection
	users    *mongo.Collection
}

// New connects to MongoDB, verifies the connection and ensures indexes exist.
func New(ctx context.Context, cfg Config) (*MongoStore, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.ServerSelectionTimeout <= 0 {
		cfg.ServerSelectionTimeout = defaultServerSelectionTimeout
	}

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(cfg.Database)
	s := &MongoStore{
		client:   client,
		expenses: db.Collection(expensesCollection),
		users:    db.Collection(usersCollection),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.expenses.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "participants", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create expense indexes: %w", err)
	}

	_, err = s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "mobile", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

type expenseDocument struct {
	ID           string             `bson:"_id"`
	Title        string             `bson:"title"`
	TotalAmount  float64            `bson:"totalAmount"`
	SplitMethod  string             `bson:"splitMethod"`
	SplitAmounts map[string]float64 `bson:"splitAmounts"`
	Participants []string           `bson:"participants"`
	AddedBy      string             `bson:"addedBy"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
	Version      int64              `bson:"version"`
}

func (d *expenseDocument) toModel() *models.Expense {
	amounts := d.SplitAmounts
	if amounts == nil {
		amounts = make(map[string]float64)
	}
	return &models.Expense{
		ID:           d.ID,
		Title:        d.Title,
		TotalAmount:  d.TotalAmount,
		SplitMethod:  models.SplitMethod(d.SplitMethod),
		SplitAmounts: amounts,
		Participants: d.Participants,
		AddedBy:      d.AddedBy,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
		Version:      d.Version,
	}
}

// CreateExpense inserts the expense as a single document.
func (s *MongoStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// BSON dates carry millisecond precision.
	now := time.Now().UTC().Truncate(time.Millisecond)
	expense.ID = uuid.New().String()
	expense.CreatedAt = now
	expense.UpdatedAt = now
	expense.Version = 1

	doc := expenseDocument{
		ID:           expense.ID,
		Title:        expense.Title,
		TotalAmount:  expense.TotalAmount,
		SplitMethod:  string(expense.SplitMethod),
		SplitAmounts: expense.SplitAmounts,
		Participants: expense.Participants,
		AddedBy:      expense.AddedBy,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      expense.Version,
	}
	if _, err := s.expenses.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// ListExpenses returns expenses matching filter ordered by creation time.
func (s *MongoStore) ListExpenses(ctx context.Context, filter storage.ExpenseFilter) ([]*models.Expense, error) {
	query := bson.M{}
	if filter.Participant != "" {
		query["participants"] = filter.Participant
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.expenses.Find(ctx, query, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer cursor.Close(ctx)

	expenses := []*models.Expense{}
	for cursor.Next(ctx) {
		var doc expenseDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode expense: %w", err)
		}
		expenses = append(expenses, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

type userDocument struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	Mobile       string    `bson:"mobile"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

func (d *userDocument) toModel() *models.User {
	return &models.User{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		Mobile:       d.Mobile,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

// CreateUser inserts the user; unique indexes on email and mobile enforce uniqueness.
func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	doc := userDocument{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Mobile:       user.Mobile,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	_, err := s.users.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to create user: %w", storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their ID.
func (s *MongoStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, bson.M{"_id": id})
}

// FindUserByEmailOrMobile retrieves the first user matching either the email or the mobile.
func (s *MongoStore) FindUserByEmailOrMobile(ctx context.Context, email, mobile string) (*models.User, error) {
	var or bson.A
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if mobile != "" {
		or = append(or, bson.M{"mobile": mobile})
	}
	if len(or) == 0 {
		return nil, fmt.Errorf("user: %w", storage.ErrNotFound)
	}
	return s.findUser(ctx, bson.M{"$or": or})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	err := s.users.FindOne(ctx, filter, options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return doc.toModel(), nil
}
