package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/synthetic-panel/cohort"
	"github.com/bitmark-inc/synthetic-panel/export"
	"github.com/bitmark-inc/synthetic-panel/external/observation"
	"github.com/bitmark-inc/synthetic-panel/panel"
	"github.com/bitmark-inc/synthetic-panel/schema"
	"github.com/bitmark-inc/synthetic-panel/store"
)

const logPrefix = "init"

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	viper.SetDefault("input.source", "csv")
	viper.SetDefault("input.file", "AiAData.csv")
	viper.SetDefault("output.file", "SyntheticData.csv")
	viper.SetDefault("mongo.database", "synthpanel")
	viper.SetDefault("mongo.pool", 10)

	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("synthpanel")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// panelConfig overlays the configured parameters on the reference panel
func panelConfig() (cohort.Config, error) {
	cfg := cohort.DefaultConfig()

	if viper.IsSet("panel.weekly_target") {
		cfg.WeeklyTarget = viper.GetInt("panel.weekly_target")
	}
	if viper.IsSet("panel.carryover_rate") {
		cfg.CarryoverRate = viper.GetFloat64("panel.carryover_rate")
	}
	if viper.IsSet("panel.id_base") {
		cfg.IDBase = viper.GetInt64("panel.id_base")
	}
	if viper.IsSet("panel.age_brackets") {
		var ages schema.Distribution
		if err := viper.UnmarshalKey("panel.age_brackets", &ages); err != nil {
			return cfg, err
		}
		cfg.Ages = ages
	}
	if viper.IsSet("panel.race_ethnicities") {
		var races schema.Distribution
		if err := viper.UnmarshalKey("panel.race_ethnicities", &races); err != nil {
			return cfg, err
		}
		cfg.Races = races
	}
	if viper.IsSet("panel.zip_codes") {
		cfg.Zips = viper.GetStringSlice("panel.zip_codes")
	}

	return cfg, cfg.Validate()
}

func panelSeed() int64 {
	if viper.IsSet("panel.seed") {
		return viper.GetInt64("panel.seed")
	}
	seed := time.Now().UnixNano()
	log.WithField("prefix", logPrefix).Warnf("no seed configured, use %d", seed)
	return seed
}

func connectMongo(ctx context.Context) (store.MongoStore, error) {
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		return nil, fmt.Errorf("create mongo client with error: %s", err)
	}

	if err := mongoClient.Connect(ctx); nil != err {
		return nil, fmt.Errorf("connect mongo database with error: %s", err)
	}

	return store.NewMongoStore(mongoClient, viper.GetString("mongo.database")), nil
}

func fatal(err error, msg string) {
	sentry.CaptureException(err)
	sentry.Flush(5 * time.Second)
	log.WithFields(log.Fields{
		"prefix": logPrefix,
		"error":  err,
	}).Fatal(msg)
}

func main() {
	var configFile string

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		log.Info("Cancelling generation")
		cancel()
	}()

	// Sentry
	if dsn := viper.GetString("sentry.dsn"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			AttachStacktrace: true,
			Environment:      viper.GetString("sentry.environment"),
			Dist:             viper.GetString("sentry.dist"),
		}); err != nil {
			log.Error(err)
		}
		log.WithField("prefix", logPrefix).Info("Initialized sentry")
	}

	cfg, err := panelConfig()
	if err != nil {
		fatal(err, "invalid panel configuration")
	}
	seed := panelSeed()

	scope := tally.NewTestScope("synthpanel", map[string]string{})
	generator, err := panel.NewGenerator(cfg, seed, scope)
	if err != nil {
		fatal(err, "create generator")
	}

	var mStore store.MongoStore
	if viper.GetString("input.source") == "mongo" || viper.GetBool("output.mongo") {
		mStore, err = connectMongo(ctx)
		if err != nil {
			fatal(err, "initialise mongo store")
		}
		defer mStore.Close()
		log.WithField("prefix", logPrefix).Info("Initialized mongo store")
	}

	var source observation.Source
	switch viper.GetString("input.source") {
	case "mongo":
		source = mStore
	case "csv":
		source = observation.NewCSVSource(viper.GetString("input.file"))
	default:
		fatal(fmt.Errorf("unknown input source %q", viper.GetString("input.source")), "invalid input configuration")
	}

	sinks := export.MultiSink{export.NewCSVSink(viper.GetString("output.file"))}
	if viper.GetBool("output.mongo") {
		sinks = append(sinks, export.NewStoreSink(mStore))
	}

	log.WithFields(log.Fields{
		"prefix":    logPrefix,
		"target":    cfg.WeeklyTarget,
		"carryover": cfg.CarryoverCount(),
		"new":       cfg.NewCount(),
		"seed":      seed,
	}).Info("start generation")

	result, runErr := generator.Export(ctx, source, sinks)

	if result != nil {
		snapshot := scope.Snapshot()
		for _, counter := range snapshot.Counters() {
			log.WithFields(log.Fields{
				"prefix": logPrefix,
				"metric": counter.Name(),
				"value":  counter.Value(),
			}).Debug("metric")
		}

		if path := viper.GetString("output.summary"); path != "" {
			if err := result.Summary().WriteFile(path); err != nil {
				log.WithFields(log.Fields{
					"prefix": logPrefix,
					"path":   path,
					"error":  err,
				}).Error("write summary")
			}
		}
	}

	if runErr != nil {
		fatal(runErr, "generation aborted")
	}

	log.WithFields(log.Fields{
		"prefix":      logPrefix,
		"run_id":      result.RunID,
		"weeks":       result.Weeks,
		"records":     len(result.Records),
		"respondents": result.Respondents,
	}).Info(viper.GetString("output.file") + " saved")
}
