package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/pronas-suite/aicore/pkg/auth"
	"github.com/pronas-suite/aicore/pkg/bias"
	"github.com/pronas-suite/aicore/pkg/capability"
	kcb "github.com/pronas-suite/aicore/pkg/configs/backend"
	"github.com/pronas-suite/aicore/pkg/conformity"
	kpg "github.com/pronas-suite/aicore/pkg/db/postgres"
	"github.com/pronas-suite/aicore/pkg/domain"
	"github.com/pronas-suite/aicore/pkg/feedback"
	"github.com/pronas-suite/aicore/pkg/nlp"
	"github.com/pronas-suite/aicore/pkg/synthesis"
	"github.com/pronas-suite/aicore/pkg/utils/echoutil"
	"github.com/pronas-suite/aicore/pkg/utils/filewatch"

	"github.com/pronas-suite/aicore/cmd/aicored/handlers"
)

func main() {

	configPath := flag.String("config-path", "", "backend config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	flag.Parse()

	conf, err := kcb.LoadBackendConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configration: %s", err)
	}

	ctx := context.Background()
	db, err := kpg.New(ctx, conf.Database)
	if err != nil {
		log.Fatalf("can not connect database: %s", err)
	}
	defer db.Close()

	client := capability.NewClient(conf.ModelServer, nil)

	catalog := synthesis.DefaultCatalog()
	if conf.CatalogFile != "" {
		catalog, err = synthesis.LoadCatalog(conf.CatalogFile)
		if err != nil {
			log.Fatalf("can not read catalog %s: %s", conf.CatalogFile, err)
		}
	}

	structurer := nlp.New(client, nlp.WithEntityTagger(client))
	guidelines := nlp.NewGuidelineCache(guidelineLoader(structurer, conf.GuidelineFiles))
	if conf.GuidelineVersionFile != "" {
		stop, err := filewatch.OnModify(
			ctx,
			func(path string) {
				log.Printf("guideline version file %s is updated. reloading guidelines.", path)
				guidelines.Invalidate()
			},
			conf.GuidelineVersionFile,
		)
		if err != nil {
			log.Fatalf("can not watch %s: %s", conf.GuidelineVersionFile, err)
		}
		defer stop()
	}

	models := feedback.NewModels()
	retrainer := feedback.NewController(
		db.Feedback(), models,
		feedback.WithThreshold(conf.RetrainThreshold),
	)
	go func() {
		if err := retrainer.Serve(ctx); err != nil {
			log.Printf("retraining loop stopped: %s", err)
		}
	}()

	synthesizer := synthesis.New(synthesis.WithCatalog(catalog))
	engine := bias.New()
	validator := conformity.NewValidator(client)
	improver := conformity.NewImprover(client, db.Approved())

	e := echo.New()
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	e.GET("/health", handlers.HealthHandler())
	e.GET("/ready", handlers.ReadyHandler(models, client))

	api := e.Group("/api/v1")
	if conf.AuthKey != "" {
		api.Use(auth.Middleware([]byte(conf.AuthKey)))
	}
	{
		api.POST("/generate-project", handlers.GenerateProjectHandler(
			client, structurer, synthesizer, engine, client, db.Projects(), retrainer,
		))
		api.POST("/suggest-improvements", handlers.SuggestImprovementsHandler(
			improver, models, db.Projects(), db.Approved(),
		))
		api.POST("/validate-conformity", handlers.ValidateConformityHandler(
			validator, guidelines, db.Approved(),
		))
		api.POST("/detect-bias", handlers.DetectBiasHandler(engine))
		api.POST("/feedback", handlers.SubmitFeedbackHandler(retrainer))
		api.POST("/extract-text", handlers.ExtractTextHandler(client))
		api.GET("/performance", handlers.PerformanceHandler(handlers.DefaultPerformanceMetrics()))
	}

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	// scoring endpoints answer with defaults until this; /ready tells
	// callers which of the two they get.
	models.Load()

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", conf.Port)))
}

// guidelineLoader builds the guideline set from files, or serves the
// built-in set when no file is configured.
func guidelineLoader(structurer *nlp.Structurer, files []string) nlp.Loader {
	return func(ctx context.Context) (domain.Guidelines, error) {
		if len(files) == 0 {
			return nlp.DefaultGuidelines(), nil
		}
		texts := make([]string, 0, len(files))
		for _, file := range files {
			buf, err := os.ReadFile(file)
			if err != nil {
				return domain.Guidelines{}, err
			}
			texts = append(texts, string(buf))
		}
		return structurer.Process(ctx, texts)
	}
}
