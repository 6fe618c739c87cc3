package inject

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/dmorgan81/pixelpatch/internal/handle"
	"github.com/dmorgan81/pixelpatch/internal/image"
	"github.com/dmorgan81/pixelpatch/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
)

func Setup(ctx context.Context) *do.Injector {
	log := log.FromContextOrDiscard(ctx)

	injector := do.NewWithOpts(&do.InjectorOpts{
		Logf: func(format string, args ...any) {
			log.Info(fmt.Sprintf(format, args...))
		},
	})

	do.ProvideNamedValue[string](injector, "region", envOrDefault("BEDROCK_REGION", "us-east-1"))
	do.ProvideNamedValue[string](injector, "model_id", envOrDefault("MODEL_ID", "amazon.titan-image-generator-v2:0"))
	do.ProvideNamedValue[string](injector, "allowed_origin", envOrDefault("ALLOWED_ORIGIN", "*"))

	do.Provide[aws.Config](injector, func(i *do.Injector) (aws.Config, error) {
		return config.LoadDefaultConfig(ctx, config.WithRegion(do.MustInvokeNamed[string](i, "region")))
	})
	do.Provide[*bedrockruntime.Client](injector, func(i *do.Injector) (*bedrockruntime.Client, error) {
		return bedrockruntime.NewFromConfig(do.MustInvoke[aws.Config](i)), nil
	})

	do.Provide[image.Generator](injector, image.NewBedrockGenerator)
	do.Provide[*handle.EditHandler](injector, handle.NewEditHandler)

	return injector
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	return lo.Ternary(v != "", v, fallback)
}
