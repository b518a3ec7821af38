package models

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stylehive/database"
)

type Category struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	IsBlocked   bool               `json:"is_blocked" bson:"is_blocked"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// CategoryQuery filters the admin category listing.
type CategoryQuery struct {
	Page    int
	Limit   int
	Search  string
	Blocked *bool
}

func AddCategory(name, description string) (Category, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	category := Category{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}

	_, err := db.CategoryCollection.InsertOne(ctx, category)
	if err != nil {
		return Category{}, err
	}
	return category, nil
}

// CategoryNameExists checks for a case-insensitive duplicate name,
// optionally excluding one id (for updates).
func CategoryNameExists(name string, exclude primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"name": bson.M{"$regex": "^" + regexp.QuoteMeta(name) + "$", "$options": "i"}}
	if !exclude.IsZero() {
		filter["_id"] = bson.M{"$ne": exclude}
	}
	count, err := db.CategoryCollection.CountDocuments(ctx, filter)
	return count > 0, err
}

func ListCategories(query CategoryQuery) ([]Category, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if query.Search != "" {
		filter["name"] = SearchRegex(query.Search)
	}
	if query.Blocked != nil {
		filter["is_blocked"] = *query.Blocked
	}

	total, err := db.CategoryCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}

	findOptions := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := db.CategoryCollection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var categories []Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// ActiveCategories returns the unblocked categories for the storefront.
func ActiveCategories() ([]Category, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.CategoryCollection.Find(ctx, bson.M{"is_blocked": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func GetCategoryByID(id primitive.ObjectID) (Category, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var category Category
	err := db.CategoryCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	return category, err
}

func UpdateCategory(id primitive.ObjectID, name, description string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.CategoryCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"name": name, "description": description}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func SetCategoryBlocked(id primitive.ObjectID, blocked bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.CategoryCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_blocked": blocked}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
