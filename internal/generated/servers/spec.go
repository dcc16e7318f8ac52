package servers

import (
	_ "embed"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

// GetSwagger parses the embedded OpenAPI document. Every call returns a
// fresh copy, so callers may modify it.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openapiYAML)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, err
	}
	return doc, nil
}

var registerDocOnce sync.Once

// RegisterSwaggerDoc publishes the OpenAPI document to swag, where
// echo-swagger picks it up as doc.json.
func RegisterSwaggerDoc() error {
	doc, err := GetSwagger()
	if err != nil {
		return err
	}
	data, err := doc.MarshalJSON()
	if err != nil {
		return err
	}

	registerDocOnce.Do(func() {
		swag.Register(swag.Name, &swag.Spec{
			Version:          doc.Info.Version,
			Title:            doc.Info.Title,
			Description:      doc.Info.Description,
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(data),
		})
	})
	return nil
}
