// Command rh-assistant is the CFDT assistant for the agents of the mairie de
// Gennevilliers: a grounded conversational front-end over the internal HR
// knowledge base.
package main

import (
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Nikkoola22/RH-cfdt/internal/completion"
	"github.com/Nikkoola22/RH-cfdt/internal/config"
	"github.com/Nikkoola22/RH-cfdt/internal/domain"
	"github.com/Nikkoola22/RH-cfdt/internal/knowledge"
	"github.com/Nikkoola22/RH-cfdt/internal/logging"
	"github.com/Nikkoola22/RH-cfdt/internal/prompt"
	"github.com/Nikkoola22/RH-cfdt/internal/retriever"
	"github.com/Nikkoola22/RH-cfdt/internal/session"
	"github.com/Nikkoola22/RH-cfdt/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	var debug bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/rh-assistant/config.yaml if not provided)")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging to stderr")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(debug || cfg.Log.Debug, cfg.Log.File)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	index, err := knowledge.Load(cfg.Knowledge.Dir)
	if err != nil {
		logger.Fatal("failed to load knowledge base", zap.String("dir", cfg.Knowledge.Dir), zap.Error(err))
	}
	logger.Info("knowledge base loaded",
		zap.String("dir", cfg.Knowledge.Dir),
		zap.Int("chapters", len(index.Chapters())))

	client, err := completion.NewClient(completion.Config{
		BaseURL:    cfg.Completion.BaseURL,
		APIKeyEnv:  cfg.Completion.APIKeyEnv,
		Model:      cfg.Completion.Model,
		Timeout:    time.Duration(cfg.Completion.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Completion.MaxRetries,
	})
	if err != nil {
		logger.Fatal("completion client init failed", zap.Error(err))
	}

	ranker := retriever.NewKeywordRanker(index, cfg.Retriever.TopChapters)
	providers := map[domain.Domain]domain.ContextProvider{
		domain.DomainWorkingTime: prompt.NewRankedProvider(index, ranker, logger),
	}
	for _, d := range []domain.Domain{domain.DomainTraining, domain.DomainRemoteWork} {
		doc, ok := index.Document(d)
		if !ok {
			logger.Fatal("missing domain document", zap.Stringer("domain", d))
		}
		providers[d] = prompt.NewDocumentProvider(doc)
	}

	sess := session.New(providers, client, logger, time.Duration(cfg.Completion.TimeoutSecs)*time.Second)
	if _, err := tea.NewProgram(tui.New(sess), tea.WithAltScreen()).Run(); err != nil {
		logger.Fatal("tui exited with error", zap.Error(err))
	}
}
