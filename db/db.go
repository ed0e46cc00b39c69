package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client *mongo.Client

	PandelsCollection *mongo.Collection
	ThemesCollection  *mongo.Collection
	ArtistsCollection *mongo.Collection
	GalleryCollection *mongo.Collection
	AwardsCollection  *mongo.Collection
	AdminCollection   *mongo.Collection
)

// Initialize MongoDB connection. A failed initial ping is logged, not
// fatal: the process keeps serving and individual requests surface
// upstream errors until the database comes back.
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "pujodb"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Invalid MongoDB configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Client.Ping(ctx, nil); err != nil {
		log.Printf("MongoDB ping failed (continuing): %v", err)
	}

	database := Client.Database(dbName)
	PandelsCollection = database.Collection("pandels")
	ThemesCollection = database.Collection("themes")
	ArtistsCollection = database.Collection("artists")
	GalleryCollection = database.Collection("galleries")
	AwardsCollection = database.Collection("awards")
	AdminCollection = database.Collection("admins")
}
