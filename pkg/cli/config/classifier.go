package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"

	"github.com/citops/promisetrack/pkg/service/classifier"
	"github.com/citops/promisetrack/pkg/service/classifier/yandexgpt"
)

// Classifier holds CLI flags for the LLM backend used by promise
// classification and deadline extraction. Credential fields are tagged
// so the JSON log handler redacts them.
type Classifier struct {
	Backend string

	YandexAPIKey   string `masq:"secret"`
	YandexFolderID string

	GeminiProject  string
	GeminiLocation string
}

func (c *Classifier) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "classifier-backend",
			Usage:       "LLM backend for reply analysis (yandexgpt or gemini)",
			Value:       "yandexgpt",
			Sources:     cli.EnvVars("PROMISETRACK_CLASSIFIER_BACKEND"),
			Destination: &c.Backend,
		},
		&cli.StringFlag{
			Name:        "yandex-api-key",
			Usage:       "YandexGPT API key",
			Sources:     cli.EnvVars("PROMISETRACK_YANDEX_API_KEY"),
			Destination: &c.YandexAPIKey,
		},
		&cli.StringFlag{
			Name:        "yandex-folder-id",
			Usage:       "Yandex Cloud folder ID",
			Sources:     cli.EnvVars("PROMISETRACK_YANDEX_FOLDER_ID"),
			Destination: &c.YandexFolderID,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for Gemini API",
			Sources:     cli.EnvVars("PROMISETRACK_GEMINI_PROJECT"),
			Destination: &c.GeminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini API",
			Value:       "us-central1",
			Sources:     cli.EnvVars("PROMISETRACK_GEMINI_LOCATION"),
			Destination: &c.GeminiLocation,
		},
	}
}

// Configure creates the completion backend from the configured flags.
func (c *Classifier) Configure(ctx context.Context) (classifier.Backend, error) {
	switch c.Backend {
	case "yandexgpt":
		backend, err := yandexgpt.New(c.YandexAPIKey, c.YandexFolderID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create YandexGPT client")
		}
		return backend, nil

	case "gemini":
		if c.GeminiProject == "" {
			return nil, goerr.New("gemini-project is required when using gemini backend")
		}
		client, err := gemini.New(ctx, c.GeminiProject, c.GeminiLocation)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		return classifier.NewGollemBackend(client), nil

	default:
		return nil, goerr.New("invalid classifier backend", goerr.V("backend", c.Backend))
	}
}
