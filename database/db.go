package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DatabaseName = "stylehive_db"

// Client is the shared MongoDB connection used by the whole app.
var Client *mongo.Client

var ProductCollection *mongo.Collection
var CategoryCollection *mongo.Collection
var UserCollection *mongo.Collection
var AdminCollection *mongo.Collection
var OrderCollection *mongo.Collection
var OfferCollection *mongo.Collection

// InitDB connects to MongoDB and prepares the collections and indexes.
func InitDB() {
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		log.Fatal("MONGODB_URI not set in .env")
	}

	clientOptions := options.Client().ApplyURI(mongoURI)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}

	Client = client
	ProductCollection = client.Database(DatabaseName).Collection("products")
	CategoryCollection = client.Database(DatabaseName).Collection("categories")
	UserCollection = client.Database(DatabaseName).Collection("users")
	AdminCollection = client.Database(DatabaseName).Collection("admins")
	OrderCollection = client.Database(DatabaseName).Collection("orders")
	OfferCollection = client.Database(DatabaseName).Collection("offers")

	ensureIndexes(client)

	log.Println("Connected to MongoDB")
}

// ensureIndexes creates the indexes the app relies on. The sessions TTL index
// makes Mongo itself remove expired sessions.
func ensureIndexes(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database := client.Database(DatabaseName)

	_, err := database.Collection("sessions").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		log.Println("Failed to create session TTL index:", err)
	}

	_, err = database.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Println("Failed to create user email index:", err)
	}

	_, err = database.Collection("carts").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Println("Failed to create cart user index:", err)
	}
}

// DisconnectDB closes the MongoDB connection.
func DisconnectDB() {
	if Client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Client.Disconnect(ctx); err != nil {
		log.Println("Failed to disconnect MongoDB:", err)
		return
	}
	log.Println("Disconnected from MongoDB")
}

// OpenCollection returns a collection by name.
func OpenCollection(collectionName string) *mongo.Collection {
	return Client.Database(DatabaseName).Collection(collectionName)
}
