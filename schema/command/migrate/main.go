package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/synthetic-panel/schema"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("synthpanel")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(1)
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}
	defer client.Disconnect(context.Background())

	database := viper.GetString("mongo.database")
	if database == "" {
		database = "synthpanel"
	}
	db := client.Database(database)

	if err := setupCollectionWeeklyObservation(ctx, db); err != nil {
		fmt.Println("failed to set up collection `weeklyObservation`: ", err)
		panic(err)
	}

	if err := setupCollectionSyntheticResponse(ctx, db); err != nil {
		fmt.Println("failed to set up collection `syntheticResponse`: ", err)
		panic(err)
	}
}

func setupCollectionWeeklyObservation(ctx context.Context, db *mongo.Database) error {
	fmt.Println("initialize weeklyObservation collection")
	_, err := db.Collection(schema.WeeklyObservationCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.M{"week": 1},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func setupCollectionSyntheticResponse(ctx context.Context, db *mongo.Database) error {
	fmt.Println("initialize syntheticResponse collection")
	_, err := db.Collection(schema.SyntheticResponseCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "run_id", Value: 1}, {Key: "week", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "run_id", Value: 1}, {Key: "id", Value: 1}},
		},
	})
	return err
}
