package xkcd

import (
	"fmt"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"yadro.com/comicbot/poster/core"
)

const latestSchema = `{
  "type": "object",
  "required": ["num"],
  "properties": {
    "num": {"type": "integer"}
  }
}`

const comicSchema = `{
  "type": "object",
  "required": ["img", "alt"],
  "properties": {
    "num": {"type": "integer"},
    "img": {"type": "string", "minLength": 1},
    "alt": {"type": "string"},
    "safe_title": {"type": "string"}
  }
}`

type schemas struct {
	latest *gojsonschema.Schema
	comic  *gojsonschema.Schema
}

func loadSchemas() (schemas, error) {
	latest, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(latestSchema))
	if err != nil {
		return schemas{}, fmt.Errorf("latest schema: %w", err)
	}
	comic, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(comicSchema))
	if err != nil {
		return schemas{}, fmt.Errorf("comic schema: %w", err)
	}
	return schemas{latest: latest, comic: comic}, nil
}

// check reports a body that is not JSON or lacks the fields we rely on.
func check(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrDataShape, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.Description())
	}
	return fmt.Errorf("%w: %s", core.ErrDataShape, strings.Join(msgs, "; "))
}
