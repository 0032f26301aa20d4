package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lce-project/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo implementacije repozitorijuma. Umesto prepisivanja cele kolekcije
// svaka izmena je operacija nad jednim dokumentom; patch se primenjuje u
// memoriji pa se dokument zamenjuje u celini.

type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(collection *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{collection: collection}
}

func (r *MongoUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %v", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %v", err)
	}
	return users, nil
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) FindByEmpID(ctx context.Context, empID string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"empId": empID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) Insert(ctx context.Context, user *models.User) error {
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to save user: %v", err)
	}
	return nil
}

func (r *MongoUserRepository) UpdatePasscode(ctx context.Context, id, passcodeHash string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"passcode": passcodeHash}})
	if err != nil {
		return fmt.Errorf("failed to update passcode: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type MongoProjectRepository struct {
	collection *mongo.Collection
}

func NewMongoProjectRepository(collection *mongo.Collection) *MongoProjectRepository {
	return &MongoProjectRepository{collection: collection}
}

func (r *MongoProjectRepository) GetAll(ctx context.Context) ([]models.Project, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %v", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %v", err)
	}
	return projects, nil
}

func (r *MongoProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *MongoProjectRepository) FindByParent(ctx context.Context, parentID string) ([]models.Project, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"parentProjectId": parentID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch subprojects: %v", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode subprojects: %v", err)
	}
	return projects, nil
}

func (r *MongoProjectRepository) Insert(ctx context.Context, project *models.Project) error {
	if _, err := r.collection.InsertOne(ctx, project); err != nil {
		return fmt.Errorf("failed to save project: %v", err)
	}
	return nil
}

func (r *MongoProjectRepository) Update(ctx context.Context, id string, patch models.ProjectPatch) (*models.Project, error) {
	project, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	project.Apply(patch)
	now := time.Now()
	project.UpdatedAt = &now

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, project)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return project, nil
}

func (r *MongoProjectRepository) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("failed to delete projects: %v", err)
	}
	return nil
}

type MongoTaskRepository struct {
	collection *mongo.Collection
}

func NewMongoTaskRepository(collection *mongo.Collection) *MongoTaskRepository {
	return &MongoTaskRepository{collection: collection}
}

func (r *MongoTaskRepository) GetAll(ctx context.Context) ([]models.Task, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}
	return tasks, nil
}

func (r *MongoTaskRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *MongoTaskRepository) FindByProject(ctx context.Context, projectID string) ([]models.Task, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode project tasks: %v", err)
	}
	return tasks, nil
}

func (r *MongoTaskRepository) FindByConcurrence(ctx context.Context, concurrenceID string) ([]models.Task, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"concurrenceId": concurrenceID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch concurrence tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode concurrence tasks: %v", err)
	}
	return tasks, nil
}

func (r *MongoTaskRepository) Insert(ctx context.Context, task *models.Task) error {
	if _, err := r.collection.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("failed to save task: %v", err)
	}
	return nil
}

func (r *MongoTaskRepository) Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	task, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Apply(patch)
	now := time.Now()
	task.UpdatedAt = &now

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, task)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return task, nil
}

func (r *MongoTaskRepository) Replace(ctx context.Context, task *models.Task) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return fmt.Errorf("failed to replace task: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoTaskRepository) Delete(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return fmt.Errorf("failed to delete tasks: %v", err)
	}
	return nil
}

func (r *MongoTaskRepository) DeleteByProjects(ctx context.Context, projectIDs ...string) error {
	if len(projectIDs) == 0 {
		return nil
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"projectId": bson.M{"$in": projectIDs}})
	if err != nil {
		return fmt.Errorf("failed to delete project tasks: %v", err)
	}
	return nil
}

func (r *MongoTaskRepository) DeleteByConcurrence(ctx context.Context, concurrenceID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"concurrenceId": concurrenceID})
	if err != nil {
		return fmt.Errorf("failed to delete concurrence tasks: %v", err)
	}
	return nil
}

type MongoConcurrenceRepository struct {
	collection *mongo.Collection
}

func NewMongoConcurrenceRepository(collection *mongo.Collection) *MongoConcurrenceRepository {
	return &MongoConcurrenceRepository{collection: collection}
}

func (r *MongoConcurrenceRepository) GetAll(ctx context.Context) ([]models.Concurrence, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch concurrences: %v", err)
	}
	defer cursor.Close(ctx)

	var concurrences []models.Concurrence
	if err := cursor.All(ctx, &concurrences); err != nil {
		return nil, fmt.Errorf("failed to decode concurrences: %v", err)
	}
	return concurrences, nil
}

func (r *MongoConcurrenceRepository) GetByID(ctx context.Context, id string) (*models.Concurrence, error) {
	var concurrence models.Concurrence
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&concurrence)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &concurrence, nil
}

func (r *MongoConcurrenceRepository) FindByProject(ctx context.Context, projectID string) ([]models.Concurrence, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project concurrences: %v", err)
	}
	defer cursor.Close(ctx)

	var concurrences []models.Concurrence
	if err := cursor.All(ctx, &concurrences); err != nil {
		return nil, fmt.Errorf("failed to decode project concurrences: %v", err)
	}
	return concurrences, nil
}

func (r *MongoConcurrenceRepository) Insert(ctx context.Context, concurrence *models.Concurrence) error {
	if _, err := r.collection.InsertOne(ctx, concurrence); err != nil {
		return fmt.Errorf("failed to save concurrence: %v", err)
	}
	return nil
}

func (r *MongoConcurrenceRepository) Update(ctx context.Context, id string, patch models.ConcurrencePatch) (*models.Concurrence, error) {
	concurrence, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	concurrence.Apply(patch)
	now := time.Now()
	concurrence.UpdatedAt = &now

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, concurrence)
	if err != nil {
		return nil, fmt.Errorf("failed to update concurrence: %v", err)
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return concurrence, nil
}

func (r *MongoConcurrenceRepository) Replace(ctx context.Context, concurrence *models.Concurrence) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": concurrence.ID}, concurrence)
	if err != nil {
		return fmt.Errorf("failed to replace concurrence: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoConcurrenceRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete concurrence: %v", err)
	}
	return nil
}

type MongoNoteRepository struct {
	collection *mongo.Collection
}

func NewMongoNoteRepository(collection *mongo.Collection) *MongoNoteRepository {
	return &MongoNoteRepository{collection: collection}
}

func (r *MongoNoteRepository) FindByProject(ctx context.Context, projectID string) ([]models.Note, error) {
	// Najnovije beleške prve
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{"projectId": projectID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notes: %v", err)
	}
	defer cursor.Close(ctx)

	var notes []models.Note
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %v", err)
	}
	return notes, nil
}

func (r *MongoNoteRepository) Insert(ctx context.Context, note *models.Note) error {
	if _, err := r.collection.InsertOne(ctx, note); err != nil {
		return fmt.Errorf("failed to save note: %v", err)
	}
	return nil
}

func (r *MongoNoteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete note: %v", err)
	}
	return nil
}
