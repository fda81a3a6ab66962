package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/absearch/absearch/api"
	"github.com/absearch/absearch/config"
	"github.com/absearch/absearch/index"
	"github.com/absearch/absearch/internal/engine"
	"github.com/absearch/absearch/internal/feed"
	"github.com/absearch/absearch/internal/identity"
	"github.com/absearch/absearch/internal/logger"
	"github.com/absearch/absearch/internal/metrics"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to a YAML config file")
		datafile   = flag.String("datafile", "", "Path to the gzip-compressed abstract dump (overrides config)")
		port       = flag.Int("port", 0, "Port to serve the HTTP API on (overrides config)")
		query      = flag.String("query", "", "Run a single query against the built index and exit")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *datafile != "" {
		cfg.Feed.Path = *datafile
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.WithComponent("main")

	if cfg.Feed.Path == "" {
		log.Error("no datafile configured; pass --datafile or set feed.path")
		os.Exit(1)
	}

	log.Info("loading feed", "path", cfg.Feed.Path)
	builder := engine.NewBuilder(identity.NewCRC64Deriver(), logger.WithComponent("builder"))
	idx, stats, err := builder.Build(context.Background(), feed.NewLoader(cfg.Feed.Path))
	if err != nil {
		log.Error("index build failed", "error", err,
			"records", stats.Records, "skipped", stats.Skipped)
		os.Exit(1)
	}
	log.Info("index built",
		"documents", stats.Indexed,
		"records", stats.Records,
		"skipped", stats.Skipped,
		"took", stats.Elapsed)

	if *query != "" {
		runQuery(idx, *query)
		return
	}

	m := metrics.New(nil)
	m.DocumentsIndexed.Set(float64(idx.Size()))

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), metrics.Middleware(m))
	api.SetupRoutes(router, idx, m, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	log.Info("starting server", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// runQuery evaluates a single query and prints the ranked documents.
func runQuery(idx *index.InvertedIndex, query string) {
	fmt.Printf("Querying for: %q\n", query)
	ids := idx.Query(query)
	fmt.Printf("Found %d documents\n", len(ids))
	for _, id := range ids {
		if doc, ok := idx.Document(id); ok {
			fmt.Printf("%s\t(%d)\n    %s\n-------------------\n", doc.Title, doc.ID, doc.Abstract)
		}
	}
}
