package config

import (
    "context"
    "log"
    "os"
    "time"

    "go.mongodb.org/mongo-driver/mongo"
    "go.mongodb.org/mongo-driver/mongo/options"
)

var (
    Client                 *mongo.Client
    UserCollection         *mongo.Collection
    SessionCollection      *mongo.Collection
    CategoryCollection     *mongo.Collection
    ProductCollection      *mongo.Collection
    OfferCollection        *mongo.Collection
    PaymentCollection      *mongo.Collection
    PaymentOfferCollection *mongo.Collection
    OrderCollection        *mongo.Collection
    DayCollection          *mongo.Collection
)

func ConnectDatabase() {
    client, err := mongo.NewClient(options.Client().ApplyURI(os.Getenv("MONGO_URI")))
    if err != nil {
        log.Fatal(err)
    }

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()

    err = client.Connect(ctx)
    if err != nil {
        log.Fatal(err)
    }

    err = client.Ping(ctx, nil)
    if err != nil {
        log.Fatal(err)
    }

    dbName := os.Getenv("MONGO_DB")
    if dbName == "" {
        dbName = "pokestore"
    }

    Client = client
    UserCollection = client.Database(dbName).Collection("users")
    SessionCollection = client.Database(dbName).Collection("sessions")
    CategoryCollection = client.Database(dbName).Collection("categories")
    ProductCollection = client.Database(dbName).Collection("products")
    OfferCollection = client.Database(dbName).Collection("offers")
    PaymentCollection = client.Database(dbName).Collection("payments")
    PaymentOfferCollection = client.Database(dbName).Collection("paymentoffers")
    OrderCollection = client.Database(dbName).Collection("orders")
    DayCollection = client.Database(dbName).Collection("days")

    log.Println("Connected to MongoDB")
}
