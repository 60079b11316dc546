package apilint

// Rule registration. Order here is report order for equal line numbers.
func init() {
	Register(RuleInfo{
		ID:          "check-operation-tags",
		Description: "operations carry tags declared in the top-level tags list",
		Default:     SeverityError,
		Function:    &fnOperationTags{},
	})
	Register(RuleInfo{
		ID:          "check-operation-id",
		Description: "operationId is present, unique, and lowerCamelCase",
		Default:     SeverityError,
		Function:    &fnOperationID{},
	})
	Register(RuleInfo{
		ID:          "check-operation-summary",
		Description: "every operation has a summary",
		Default:     SeverityWarning,
		Function:    &fnOperationSummary{},
	})
	Register(RuleInfo{
		ID:          "check-schema-ref",
		Description: "request and response schemas use $ref instead of inline objects",
		Default:     SeverityWarning,
		Function:    &fnSchemaRef{},
	})
	Register(RuleInfo{
		ID:          "check-error-schema-ref",
		Description: "non-2xx JSON responses reference the Error schema",
		Default:     SeverityWarning,
		Function:    &fnErrorSchemaRef{},
	})
	Register(RuleInfo{
		ID:          "check-path-kebab-case",
		Description: "path segments are kebab-case",
		Default:     SeverityError,
		Function:    &fnPathKebabCase{},
	})
	Register(RuleInfo{
		ID:          "check-versioned-paths",
		Description: "operational paths live under /v1/",
		Default:     SeverityError,
		Function:    &fnVersionedPaths{},
	})
	Register(RuleInfo{
		ID:          "check-path-param-camel-case",
		Description: "path parameters are camelCase",
		Default:     SeverityError,
		Function:    &fnPathParamCamelCase{},
	})
	Register(RuleInfo{
		ID:          "check-query-param-snake-case",
		Description: "query parameters are snake_case",
		Default:     SeverityError,
		Function:    &fnQueryParamSnakeCase{},
	})
	Register(RuleInfo{
		ID:          "check-refs-resolve",
		Description: "local $refs resolve to defined components",
		Default:     SeverityError,
		Function:    &fnRefsResolve{},
	})
	Register(RuleInfo{
		ID:          "check-enum-min-values",
		Description: "enums declare at least two values",
		Default:     SeverityWarning,
		Function:    &fnEnumMinValues{},
	})
	Register(RuleInfo{
		ID:          "check-success-response",
		Description: "every operation declares at least one 2xx response",
		Default:     SeverityError,
		Function:    &fnSuccessResponse{},
	})
	Register(RuleInfo{
		ID:          "check-request-body-required",
		Description: "declared request bodies set required: true",
		Default:     SeverityWarning,
		Function:    &fnRequestBodyRequired{},
	})
	Register(RuleInfo{
		ID:          "check-bad-request-declared",
		Description: "body-accepting operations declare a 400 response",
		Default:     SeverityWarning,
		Function:    &fnBadRequestDeclared{},
	})
	Register(RuleInfo{
		ID:          "check-secured-endpoint-401",
		Description: "operations under global security declare a 401 response",
		Default:     SeverityWarning,
		Function:    &fnSecuredEndpoint401{},
	})
}
