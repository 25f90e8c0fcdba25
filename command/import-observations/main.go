package main

import (
	"context"
	"flag"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/synthetic-panel/external/observation"
	"github.com/bitmark-inc/synthetic-panel/store"
)

const logPrefix = "import"

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("synthpanel")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// import-observations copies the weekly counts of a csv export into mongodb
// so the generator can run with input.source=mongo
func main() {
	var file string
	flag.StringVar(&file, "f", "AiAData.csv", "csv export of the weekly counts")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	observations, err := observation.NewCSVSource(file).Observations(ctx)
	if err != nil {
		panic(err)
	}

	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	client, err := mongo.NewClient(opts)
	if err != nil {
		panic(err)
	}
	if err := client.Connect(ctx); err != nil {
		panic(err)
	}

	database := viper.GetString("mongo.database")
	if database == "" {
		database = "synthpanel"
	}

	mStore := store.NewMongoStore(client, database)
	defer mStore.Close()

	if err := mStore.SaveObservations(ctx, observations); err != nil {
		panic(err)
	}

	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"weeks":  len(observations),
	}).Info("weekly observations imported")
}
