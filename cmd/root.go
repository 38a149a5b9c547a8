package cmd

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nanoimg/nanoimg/internal/imgutil"
	"github.com/nanoimg/nanoimg/internal/log"
	"github.com/nanoimg/nanoimg/internal/output"
	"github.com/nanoimg/nanoimg/internal/providers"
)

// newProvider builds the provider for a validated config. Swappable in tests.
var newProvider = func(config providers.Config) providers.Provider {
	return providers.NewGemini(config)
}

const apiKeyEnvVar = "GEMINI_API_KEY"

var aspectRatios = []string{"1:1", "2:3", "3:2", "3:4", "4:3", "4:5", "5:4", "9:16", "16:9", "21:9"}

var imageSizes = []string{"1K", "2K", "4K"}

var (
	outputFlag string
	modelFlag  string
	apiKeyFlag string
	aspectFlag string
	sizeFlag   string
	refsFlag   []string
)

var rootCmd = &cobra.Command{
	Use:   "nanoimg <prompt>",
	Short: "Generate images with the Gemini image models",
	Long: `Generate an image from a text prompt using the Gemini API and save it to disk.

Examples:
  $ nanoimg "A friendly robot mascot" --output ./robot.png
  $ nanoimg "Website banner" --aspect 16:9 -o ./banner.png
  $ nanoimg "Detailed landscape" --size 4K --model flash

  # With reference images (style transfer, character consistency):
  $ nanoimg "Same character in a forest" --ref ./char.png -o ./forest.png
  $ nanoimg "Combine styles" --ref ./img1.png --ref ./img2.png -o ./combined.png`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		logger := log.New(cmd.ErrOrStderr())
		ctx := log.NewContext(context.Background(), logger)

		config, err := buildConfig(args[0])
		if err != nil {
			return err
		}

		references, err := providers.LoadReferences(refsFlag)
		if err != nil {
			return err
		}

		provider := newProvider(config)
		logger.Info("generating image",
			"model", providers.Models[config.Model].ID,
			"aspect", config.AspectRatio,
			"size", config.ImageSize,
			"references", len(references))

		result, err := provider.Generate(ctx, providers.Inputs{
			Prompt:     args[0],
			References: references,
		})
		if err != nil {
			return err
		}

		_, ext := imgutil.Detect(result.Data)
		path := output.Resolve(outputFlag, args[0], ext)
		if err := output.Write(path, result.Data); err != nil {
			return err
		}

		logger.Info("image saved", "path", path, "bytes", len(result.Data))
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file path (default: ./generated/<prompt-slug>.<ext>)")
	rootCmd.Flags().StringVarP(&modelFlag, "model", "m", "pro", "Model to use: pro (higher quality) or flash (faster)")
	rootCmd.Flags().StringVarP(&apiKeyFlag, "key", "k", "", "Gemini API key (overrides the GEMINI_API_KEY environment variable)")
	rootCmd.Flags().StringVarP(&aspectFlag, "aspect", "a", "1:1", "Aspect ratio: "+strings.Join(aspectRatios, ", "))
	rootCmd.Flags().StringVarP(&sizeFlag, "size", "s", "2K", "Image resolution: 1K, 2K, or 4K")
	rootCmd.Flags().StringArrayVarP(&refsFlag, "ref", "r", nil, "Reference image path (repeatable, max 14)")
}

// buildConfig validates every flag once and produces the immutable provider
// configuration. Validation failures happen here, before any I/O.
func buildConfig(prompt string) (providers.Config, error) {
	if prompt == "" {
		return providers.Config{}, fmt.Errorf("prompt must not be empty")
	}
	if _, ok := providers.Models[modelFlag]; !ok {
		return providers.Config{}, fmt.Errorf("unsupported model: %s (use pro or flash)", modelFlag)
	}
	if !slices.Contains(aspectRatios, aspectFlag) {
		return providers.Config{}, fmt.Errorf("invalid aspect ratio %q; use one of: %s", aspectFlag, strings.Join(aspectRatios, ", "))
	}
	if !slices.Contains(imageSizes, sizeFlag) {
		return providers.Config{}, fmt.Errorf("invalid image size %q; use 1K, 2K, or 4K", sizeFlag)
	}

	key, err := resolveAPIKey(apiKeyFlag)
	if err != nil {
		return providers.Config{}, err
	}

	return providers.Config{
		APIKey:      key,
		Model:       modelFlag,
		AspectRatio: aspectFlag,
		ImageSize:   sizeFlag,
	}, nil
}

// resolveAPIKey applies the credential precedence: explicit flag, then
// environment variable, else failure.
func resolveAPIKey(flagKey string) (string, error) {
	if flagKey != "" {
		return flagKey, nil
	}
	if envKey := os.Getenv(apiKeyEnvVar); envKey != "" {
		return envKey, nil
	}
	return "", providers.ErrMissingKey
}

