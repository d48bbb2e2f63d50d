package openapi

import "maps"

// NewComponents returns the schemas and error responses every route group
// can reference.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "1-based page number", Example: 1},
					"page_size": {Type: "integer", Description: "Results per page", Example: 20},
					"search":    {Type: "string", Description: "Case-insensitive substring search"},
					"sort":      {Type: "string", Description: "Comma-separated fields, '-' prefix for descending", Example: "-started_at,company_name"},
				},
			},
			"Error": {
				Type:       "object",
				Required:   []string{"error"},
				Properties: map[string]*Schema{"error": {Type: "string"}},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":    errorResponse("The request was malformed or failed validation"),
			"NotFound":      errorResponse("No such resource"),
			"Conflict":      errorResponse("The change conflicts with existing data"),
			"InternalError": errorResponse("Pipeline or upstream service failure"),
		},
	}
}

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content:     map[string]*MediaType{jsonMedia: {Schema: SchemaRef("Error")}},
	}
}

// AddSchemas registers schemas, replacing any with the same name.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}
