package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// SchemaSpec names the structured-output contract for one completion call.
type SchemaSpec struct {
	Name        string
	Description string
}

// CompletionOracle is the single external capability the interpretation flows
// depend on: given a rendered prompt and an expected output shape, fill out
// with a conforming value or return an error. Implementations must not retry.
type CompletionOracle interface {
	Complete(ctx context.Context, spec SchemaSpec, prompt string, out any) error
}

type openAIOracle struct {
	client *openai.Client
}

// NewOpenAIOracle constructs a CompletionOracle backed by the OpenAI Responses
// API with strict JSON-schema output.
func NewOpenAIOracle(apiKey string) CompletionOracle {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &openAIOracle{client: &client}
}

func (o *openAIOracle) Complete(ctx context.Context, spec SchemaSpec, prompt string, out any) error {
	schemaMap, err := reflectSchema(out)
	if err != nil {
		return err
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        spec.Name,
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt(spec.Description),
				},
			},
		},
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return fmt.Errorf("empty response content")
	}

	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("failed to parse completion: %w", err)
	}
	return nil
}

// reflectSchema generates a strict JSON schema map from the Go struct behind out.
func reflectSchema(out any) (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schemaJSON, err := json.Marshal(reflector.Reflect(out))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}
	return schemaMap, nil
}
