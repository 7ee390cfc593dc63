package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lifedash/internal/dashboard"
	"lifedash/internal/settings"
)

// MongoStorage implements the Storage interface using MongoDB
type MongoStorage struct {
	client                *mongo.Client
	database              *mongo.Database
	taskCollection        *mongo.Collection
	goalCollection        *mongo.Collection
	healthEntryCollection *mongo.Collection
	settingsCollection    *mongo.Collection
	mu                    sync.Mutex
}

// settingsDocID is the _id of the single settings document.
const settingsDocID = "settings"

type settingsDoc struct {
	ID  string `bson:"_id"`
	Doc string `bson:"doc"`
}

// NewMongoStorage creates a new MongoDB storage instance
func NewMongoStorage(connectionString, databaseName string) (*MongoStorage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Test the connection
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	database := client.Database(databaseName)

	ms := &MongoStorage{
		client:                client,
		database:              database,
		taskCollection:        database.Collection("tasks"),
		goalCollection:        database.Collection("goals"),
		healthEntryCollection: database.Collection("health_entries"),
		settingsCollection:    database.Collection("settings"),
	}

	return ms, nil
}

// Close closes the MongoDB connection
func (ms *MongoStorage) Close(ctx context.Context) error {
	return ms.client.Disconnect(ctx)
}

func upsert(coll *mongo.Collection, id string, doc interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := coll.ReplaceOne(ctx, bson.M{"id": id}, doc, opts)
	return err
}

// Task operations
func (ms *MongoStorage) CreateTask(t *dashboard.Task) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if err := upsert(ms.taskCollection, t.ID, t); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (ms *MongoStorage) GetTask(id string) (*dashboard.Task, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var t dashboard.Task
	err := ms.taskCollection.FindOne(ctx, bson.M{"id": id}).Decode(&t)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("task not found")
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &t, nil
}

func (ms *MongoStorage) ListTasks() ([]*dashboard.Task, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := ms.taskCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var list []*dashboard.Task
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return list, nil
}

func (ms *MongoStorage) DeleteTask(id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := ms.taskCollection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Goal operations
func (ms *MongoStorage) CreateGoal(g *dashboard.Goal) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if err := upsert(ms.goalCollection, g.ID, g); err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

func (ms *MongoStorage) GetGoal(id string) (*dashboard.Goal, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var g dashboard.Goal
	err := ms.goalCollection.FindOne(ctx, bson.M{"id": id}).Decode(&g)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("goal not found")
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return &g, nil
}

func (ms *MongoStorage) ListGoals() ([]*dashboard.Goal, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := ms.goalCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer cursor.Close(ctx)

	var list []*dashboard.Goal
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode goals: %w", err)
	}
	return list, nil
}

func (ms *MongoStorage) DeleteGoal(id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := ms.goalCollection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

// Health entry operations
func (ms *MongoStorage) CreateHealthEntry(e *dashboard.HealthEntry) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if err := upsert(ms.healthEntryCollection, e.ID, e); err != nil {
		return fmt.Errorf("failed to create health entry: %w", err)
	}
	return nil
}

func (ms *MongoStorage) GetHealthEntry(id string) (*dashboard.HealthEntry, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var e dashboard.HealthEntry
	err := ms.healthEntryCollection.FindOne(ctx, bson.M{"id": id}).Decode(&e)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("health entry not found")
		}
		return nil, fmt.Errorf("failed to get health entry: %w", err)
	}
	return &e, nil
}

func (ms *MongoStorage) ListHealthEntries() ([]*dashboard.HealthEntry, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := ms.healthEntryCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list health entries: %w", err)
	}
	defer cursor.Close(ctx)

	var list []*dashboard.HealthEntry
	if err := cursor.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("failed to decode health entries: %w", err)
	}
	return list, nil
}

func (ms *MongoStorage) DeleteHealthEntry(id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := ms.healthEntryCollection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete health entry: %w", err)
	}
	return nil
}

// Settings operations
func (ms *MongoStorage) GetSettings() (*settings.Settings, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var doc settingsDoc
	err := ms.settingsCollection.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return settings.Default(), nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	var st settings.Settings
	if err := json.Unmarshal([]byte(doc.Doc), &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return &st, nil
}

func (ms *MongoStorage) SaveSettings(st *settings.Settings) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err = ms.settingsCollection.ReplaceOne(ctx,
		bson.M{"_id": settingsDocID},
		settingsDoc{ID: settingsDocID, Doc: string(data)}, opts)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
