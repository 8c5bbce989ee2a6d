package specmatic

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// Kind names one of the validated document kinds.
type Kind int

const (
	KindBuildMetadata Kind = iota
	KindCoverage
	KindStubUsage
	KindCentralRepo
)

// String returns the human-readable document name used in errors and logs.
func (k Kind) String() string {
	switch k {
	case KindBuildMetadata:
		return "build metadata"
	case KindCoverage:
		return "specmatic coverage report"
	case KindStubUsage:
		return "specmatic stub usage report"
	case KindCentralRepo:
		return "specmatic central repository report"
	default:
		return "unknown document"
	}
}

func object(required []string, props map[string]*openapi3.Schema) *openapi3.Schema {
	s := openapi3.NewObjectSchema()
	for name, prop := range props {
		s.WithProperty(name, prop)
	}
	s.Required = required
	return s
}

func nonEmptyString() *openapi3.Schema {
	return openapi3.NewStringSchema().WithMinLength(1)
}

func operationProps() map[string]*openapi3.Schema {
	return map[string]*openapi3.Schema{
		"path":         nonEmptyString(),
		"method":       nonEmptyString(),
		"responseCode": openapi3.NewIntegerSchema().WithMin(100).WithMax(599),
	}
}

var operationRequired = []string{"path", "method", "responseCode"}

func operationSchema(extra map[string]*openapi3.Schema, required ...string) *openapi3.Schema {
	props := operationProps()
	for k, v := range extra {
		props[k] = v
	}
	return object(append(append([]string{}, operationRequired...), required...), props)
}

func httpPayload(op *openapi3.Schema) *openapi3.Schema {
	return object([]string{"serviceType", "operations"}, map[string]*openapi3.Schema{
		"serviceType": openapi3.NewStringSchema().WithEnum(string(ServiceHTTP)),
		"operations":  openapi3.NewArraySchema().WithItems(op),
	})
}

func coverageStatusSchema() *openapi3.Schema {
	values := make([]any, 0, len(CoverageStatuses))
	for _, s := range CoverageStatuses {
		values = append(values, string(s))
	}
	return openapi3.NewStringSchema().WithEnum(values...)
}

// sourceVariants is the registry of source descriptor shapes keyed by "type".
var sourceVariants = map[SourceType]*openapi3.Schema{
	SourceGit: object([]string{"type", "specification"}, map[string]*openapi3.Schema{
		"type":          openapi3.NewStringSchema().WithEnum(string(SourceGit)),
		"repository":    openapi3.NewStringSchema(),
		"specification": openapi3.NewStringSchema(),
		"branch":        openapi3.NewStringSchema().WithNullable(),
	}),
}

// Payload registries keyed by "serviceType", one per document kind.
var (
	coveragePayloads = map[ServiceType]*openapi3.Schema{
		ServiceHTTP: httpPayload(operationSchema(map[string]*openapi3.Schema{
			"coverageStatus": coverageStatusSchema(),
			"count":          openapi3.NewIntegerSchema().WithNullable(),
		}, "coverageStatus")),
	}
	stubUsagePayloads = map[ServiceType]*openapi3.Schema{
		ServiceHTTP: httpPayload(operationSchema(map[string]*openapi3.Schema{
			"count": openapi3.NewIntegerSchema(),
		}, "count")),
	}
	centralRepoPayloads = map[ServiceType]*openapi3.Schema{
		ServiceHTTP: httpPayload(operationSchema(nil)),
	}
)

// Envelope schemas check the container shape only; entries are dispatched
// through the variant registries.
var (
	coverageEnvelope = object([]string{"specmaticConfigPath", "apiCoverage"}, map[string]*openapi3.Schema{
		"specmaticConfigPath": openapi3.NewStringSchema(),
		"apiCoverage":         openapi3.NewArraySchema().WithItems(openapi3.NewObjectSchema()),
	})
	stubUsageEnvelope = object([]string{"specmaticConfigPath", "stubUsage"}, map[string]*openapi3.Schema{
		"specmaticConfigPath": openapi3.NewStringSchema(),
		"stubUsage":           openapi3.NewArraySchema().WithItems(openapi3.NewObjectSchema()),
	})
	centralRepoEnvelope = object([]string{"specifications"}, map[string]*openapi3.Schema{
		"specifications": openapi3.NewArraySchema().WithItems(
			object([]string{"specification"}, map[string]*openapi3.Schema{
				"specification": openapi3.NewStringSchema(),
			}),
		),
	})
	buildMetadataSchema = object(
		[]string{"org_id", "repo_name", "repo_id", "repo_url", "branch_name"},
		map[string]*openapi3.Schema{
			"org_id":              nonEmptyString(),
			"repo_name":           nonEmptyString(),
			"repo_id":             nonEmptyString(),
			"repo_url":            nonEmptyString(),
			"branch_name":         nonEmptyString(),
			"branch_ref":          openapi3.NewStringSchema(),
			"build_id":            openapi3.NewStringSchema(),
			"build_definition_id": openapi3.NewStringSchema(),
			"run_created_at":      openapi3.NewStringSchema(),
		},
	)
)
