package servers

import (
	_ "embed"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yml
var specData []byte

var (
	loadOnce   sync.Once
	loadedSpec *openapi3.T
	loadErr    error
)

// GetSwagger returns the parsed and validated OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(specData)
		if err != nil {
			loadErr = err
			return
		}
		if err = doc.Validate(loader.Context); err != nil {
			loadErr = err
			return
		}
		loadedSpec = doc
	})
	return loadedSpec, loadErr
}

// SpecJSON renders the OpenAPI document as JSON.
func SpecJSON() ([]byte, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	return doc.MarshalJSON()
}

// swaggerDoc feeds the embedded document to the swagger UI.
type swaggerDoc struct{}

func (swaggerDoc) ReadDoc() string {
	data, err := SpecJSON()
	if err != nil {
		return "{}"
	}
	return string(data)
}

func init() {
	swag.Register(swag.Name, swaggerDoc{})
}
