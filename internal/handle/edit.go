package handle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/smithy-go"
	"github.com/dmorgan81/pixelpatch/internal/edit"
	"github.com/dmorgan81/pixelpatch/internal/image"
	"github.com/dmorgan81/pixelpatch/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
)

// Request mirrors the API Gateway proxy event but keeps the body raw:
// the console and direct invocations send an already-structured object
// where API Gateway sends a JSON string, and both must work.
type Request struct {
	HTTPMethod string          `json:"httpMethod"`
	Body       json.RawMessage `json:"body"`
}

type messageBody struct {
	Message string `json:"message"`
}

type imagesBody struct {
	Images  []string `json:"images"`
	Warning string   `json:"warning,omitempty"`
}

type errorBody struct {
	Error  string   `json:"error"`
	Code   string   `json:"code"`
	Images []string `json:"images"`
}

var statusForCode = map[string]int{
	"ValidationException":         http.StatusBadRequest,
	"AccessDeniedException":       http.StatusForbidden,
	"ThrottlingException":         http.StatusTooManyRequests,
	"ServiceUnavailableException": http.StatusServiceUnavailable,
}

type EditHandler struct {
	generator image.Generator
	origin    string
}

func NewEditHandler(i *do.Injector) (*EditHandler, error) {
	return &EditHandler{
		generator: do.MustInvoke[image.Generator](i),
		origin:    do.MustInvokeNamed[string](i, "allowed_origin"),
	}, nil
}

func (h *EditHandler) Handle(ctx context.Context, request Request) (resp events.APIGatewayProxyResponse, err error) {
	log := log.FromContextOrDiscard(ctx).WithGroup("EditHandler")

	defer func() {
		if r := recover(); r != nil {
			log.Error("unhandled panic", "panic", r)
			resp = h.failure(http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error. Please try again.")
			err = nil
		}
	}()

	if request.HTTPMethod == http.MethodOptions {
		return h.respond(http.StatusOK, messageBody{Message: "CORS preflight OK"}), nil
	}

	req, decodeErr := decodeBody(request.Body)
	if decodeErr != nil {
		log.Error("invalid json in request body", "error", decodeErr)
		return h.failure(http.StatusBadRequest, "INVALID_JSON", "Invalid JSON in request body: "+decodeErr.Error()), nil
	}

	if req.Prompt != nil {
		log = log.With("mode", req.Prompt.Mode)
	}
	log.Info("handling edit request")

	if errs := req.Validate(); len(errs) > 0 {
		log.Warn("validation failed", "errors", errs)
		return h.failure(http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed: "+strings.Join(errs, "; ")), nil
	}

	modelReq, buildErr := edit.Build(req)
	if buildErr != nil {
		log.Error("request translation failed", "error", buildErr)
		return h.failure(http.StatusBadRequest, "VALUE_ERROR", buildErr.Error()), nil
	}

	out, genErr := h.generator.Generate(ctx, modelReq)
	if genErr != nil {
		return h.generateFailure(log, genErr), nil
	}

	if len(out.Images) == 0 {
		if out.Error != "" {
			log.Warn("bedrock returned in-band error", "error", out.Error)
			return h.failure(http.StatusBadGateway, "BEDROCK_ERROR", "Bedrock error: "+out.Error), nil
		}
		log.Warn("bedrock returned no images")
		return h.respond(http.StatusOK, imagesBody{
			Images:  []string{},
			Warning: "Model returned no images. Try a different prompt.",
		}), nil
	}

	log.Info("generated images", "count", len(out.Images))
	return h.respond(http.StatusOK, imagesBody{Images: out.Images}), nil
}

func (h *EditHandler) generateFailure(log *slog.Logger, err error) events.APIGatewayProxyResponse {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		log.Error("bedrock api error", "code", code, "error", apiErr.ErrorMessage())
		status := lo.ValueOr(statusForCode, code, http.StatusInternalServerError)
		return h.failure(status, code, "Bedrock API error: "+apiErr.ErrorMessage())
	}
	log.Error("unhandled error", "error", err)
	return h.failure(http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error. Please try again.")
}

func (h *EditHandler) failure(status int, code, message string) events.APIGatewayProxyResponse {
	return h.respond(status, errorBody{Error: message, Code: code, Images: []string{}})
}

// respond is the single exit point: every response, success or failure,
// goes through here and picks up the full CORS header set.
func (h *EditHandler) respond(status int, body any) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Access-Control-Allow-Origin":  h.origin,
			"Access-Control-Allow-Headers": "Content-Type,Authorization,X-Amz-Date,X-Api-Key",
			"Access-Control-Allow-Methods": "POST,OPTIONS",
			"Content-Type":                 "application/json",
		},
		Body: string(lo.Must(json.Marshal(body))),
	}
}

func decodeBody(raw json.RawMessage) (edit.Request, error) {
	var req edit.Request

	data := bytes.TrimSpace(raw)
	if len(data) == 0 {
		return req, nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return req, err
		}
		data = []byte(s)
	}

	err := json.Unmarshal(data, &req)
	return req, err
}
