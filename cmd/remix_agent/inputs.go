package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/style-remixer/internal/config"
	"github.com/jonathan/style-remixer/internal/db"
	"github.com/jonathan/style-remixer/internal/ingestion"
	"github.com/jonathan/style-remixer/internal/llm"
	"github.com/jonathan/style-remixer/internal/presets"
	"github.com/jonathan/style-remixer/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// localOwner scopes CLI preset operations; the server uses token owners instead.
var localOwner = uuid.Nil

// maxParallelInputs bounds concurrent file reads and remix runs.
const maxParallelInputs = 4

// document is one text to remix plus where it came from.
type document struct {
	Source   string
	Text     string
	Metadata *ingestion.Metadata
}

// readDocuments resolves the --text, --input and stdin sources, in that priority.
func readDocuments(ctx context.Context, text string, inputs []string, stdin io.Reader) ([]document, error) {
	if text != "" {
		return []document{{Source: "text", Text: text, Metadata: ingestion.NewMetadata(text, "text")}}, nil
	}

	if len(inputs) == 0 {
		content, meta, err := ingestion.IngestFromReader(stdin, "stdin")
		if err != nil {
			return nil, err
		}
		return []document{{Source: "stdin", Text: content, Metadata: meta}}, nil
	}

	docs := make([]document, len(inputs))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelInputs)
	for i, path := range inputs {
		g.Go(func() error {
			content, meta, err := ingestion.IngestFromFile(path)
			if err != nil {
				return fmt.Errorf("failed to read input %s: %w", path, err)
			}
			docs[i] = document{Source: path, Text: content, Metadata: meta}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// styleSelection is the style configuration a command runs with, plus any facts the
// style file locked.
type styleSelection struct {
	Config types.StyleConfig
	Facts  []string
	Source string
}

// loadStyle picks the style configuration: a style file wins over a preset, and both
// win over the defaults.
func loadStyle(ctx context.Context, settings config.Config, stylePath, presetRef string) (*styleSelection, error) {
	if stylePath == "" {
		stylePath = settings.Style
	}
	if presetRef == "" {
		presetRef = settings.Preset
	}

	if stylePath != "" {
		style, err := config.LoadStyleFile(stylePath)
		if err != nil {
			return nil, err
		}
		return &styleSelection{Config: style.StyleConfig(), Facts: style.Facts, Source: stylePath}, nil
	}

	if presetRef != "" {
		store, closeStore, err := openStore(ctx, settings)
		if err != nil {
			return nil, err
		}
		defer closeStore()

		preset, err := presets.Find(ctx, store, localOwner, presetRef)
		if err != nil {
			return nil, err
		}
		return &styleSelection{Config: preset.Config(), Source: "preset " + preset.Name}, nil
	}

	return &styleSelection{Config: types.DefaultStyleConfig(), Source: "defaults"}, nil
}

// openStore returns the Postgres store when DATABASE_URL is set and the SQLite file otherwise.
func openStore(ctx context.Context, settings config.Config) (presets.Store, func(), error) {
	if settings.DatabaseURL != "" {
		database, err := db.Connect(ctx, settings.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		logger.Debug("using postgres preset store")
		return database, database.Close, nil
	}

	path := settings.PresetsDB
	if path == "" {
		path = config.DefaultPresetsDB
	}
	store, err := presets.Open(path)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("using sqlite preset store", zap.String("path", path))
	return store, func() { _ = store.Close() }, nil
}

// newLLMClient builds the Gemini client, applying the model override from settings.
// A zero temperature keeps the default.
func newLLMClient(ctx context.Context, settings config.Config, apiKey string, temperature float32) (llm.Client, error) {
	if apiKey == "" {
		apiKey = settings.APIKey
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: set GEMINI_API_KEY or pass --api-key", llm.ErrMissingAPIKey)
	}

	cfg := llm.DefaultConfig()
	if settings.Model != "" {
		cfg = cfg.WithModel(llm.TierAdvanced, settings.Model)
	}
	if temperature > 0 {
		cfg = cfg.WithTemperature(temperature)
	}
	return llm.NewClient(ctx, cfg, apiKey)
}

// outputPath names the file a document is written to. A single document goes to out
// itself; several documents go into out as a directory, one .txt per input.
func outputPath(out string, doc document, multiple bool) string {
	if !multiple {
		return out
	}
	base := strings.TrimSuffix(filepath.Base(doc.Source), filepath.Ext(doc.Source))
	return filepath.Join(out, base+".remix.txt")
}
