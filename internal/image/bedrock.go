package image

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/dmorgan81/pixelpatch/internal/edit"
	"github.com/dmorgan81/pixelpatch/internal/log"
	"github.com/samber/do"
)

type ModelInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type BedrockGenerator struct {
	client  ModelInvoker
	modelID string
}

func NewBedrockGenerator(i *do.Injector) (Generator, error) {
	client := do.MustInvoke[*bedrockruntime.Client](i)
	modelID := do.MustInvokeNamed[string](i, "model_id")
	return &BedrockGenerator{client, modelID}, nil
}

func (g *BedrockGenerator) Generate(ctx context.Context, req edit.ModelRequest) (Response, error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("bedrock").With("model", g.modelID, "taskType", req.TaskType)
	log.Info("invoking model")

	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, err
	}

	out, err := g.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(g.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return Response{}, err
	}

	var resp Response
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return Response{}, err
	}

	log.Info("model responded", "images", len(resp.Images))
	return resp, nil
}
