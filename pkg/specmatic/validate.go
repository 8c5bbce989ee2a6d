package specmatic

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// Validate checks tree against the shape of kind and returns the typed value:
// BuildMetadata, *CoverageReport, *StubUsageReport or *CentralRepoReport.
func Validate(kind Kind, tree any) (any, error) {
	switch kind {
	case KindBuildMetadata:
		return ValidateBuildMetadata(tree)
	case KindCoverage:
		return ValidateCoverage(tree)
	case KindStubUsage:
		return ValidateStubUsage(tree)
	case KindCentralRepo:
		return ValidateCentralRepo(tree)
	default:
		return nil, fmt.Errorf("unknown document kind %d", int(kind))
	}
}

// ValidateBuildMetadata validates a build metadata record. Deprecated keys
// (repo, branch, branchName) are accepted and folded onto canonical ones.
func ValidateBuildMetadata(tree any) (BuildMetadata, error) {
	tree = Normalize(tree)
	if obj, ok := tree.(map[string]any); ok {
		tree = foldAliases(obj)
	}
	if err := buildMetadataSchema.VisitJSON(tree); err != nil {
		return BuildMetadata{}, validationError(KindBuildMetadata, "", err)
	}
	var out BuildMetadata
	if err := decode(KindBuildMetadata, tree, &out); err != nil {
		return BuildMetadata{}, err
	}
	return out, nil
}

// ValidateCoverage validates an API coverage report.
func ValidateCoverage(tree any) (*CoverageReport, error) {
	obj, err := envelope(KindCoverage, coverageEnvelope, tree)
	if err != nil {
		return nil, err
	}
	if err := validateEntries(KindCoverage, "apiCoverage", obj["apiCoverage"], true, coveragePayloads); err != nil {
		return nil, err
	}
	var out CoverageReport
	if err := decode(KindCoverage, obj, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateStubUsage validates a stub usage report.
func ValidateStubUsage(tree any) (*StubUsageReport, error) {
	obj, err := envelope(KindStubUsage, stubUsageEnvelope, tree)
	if err != nil {
		return nil, err
	}
	if err := validateEntries(KindStubUsage, "stubUsage", obj["stubUsage"], true, stubUsagePayloads); err != nil {
		return nil, err
	}
	var out StubUsageReport
	if err := decode(KindStubUsage, obj, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateCentralRepo validates a central contract repository report.
// Its entries carry a specification id but no source descriptor.
func ValidateCentralRepo(tree any) (*CentralRepoReport, error) {
	obj, err := envelope(KindCentralRepo, centralRepoEnvelope, tree)
	if err != nil {
		return nil, err
	}
	if err := validateEntries(KindCentralRepo, "specifications", obj["specifications"], false, centralRepoPayloads); err != nil {
		return nil, err
	}
	var out CentralRepoReport
	if err := decode(KindCentralRepo, obj, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func envelope(kind Kind, schema *openapi3.Schema, tree any) (map[string]any, error) {
	tree = Normalize(tree)
	if err := schema.VisitJSON(tree); err != nil {
		return nil, validationError(kind, "", err)
	}
	obj, ok := tree.(map[string]any)
	if !ok {
		return nil, &ValidationError{Document: kind.String(), Reason: "expected an object"}
	}
	return obj, nil
}

func validateEntries(kind Kind, field string, list any, withSource bool, payloads map[ServiceType]*openapi3.Schema) error {
	items, _ := list.([]any)
	for i, item := range items {
		prefix := fmt.Sprintf("%s.%d", field, i)
		obj, ok := item.(map[string]any)
		if !ok {
			return &ValidationError{Document: kind.String(), Path: prefix, Reason: "expected an object"}
		}
		if withSource {
			if err := dispatch(kind, prefix, obj, "type", sourceVariants); err != nil {
				return err
			}
		}
		if err := dispatch(kind, prefix, obj, "serviceType", payloads); err != nil {
			return err
		}
	}
	return nil
}

// dispatch selects a variant schema by the discriminant field and checks obj
// against it. Missing or unregistered discriminants are rejected.
func dispatch[K ~string](kind Kind, prefix string, obj map[string]any, field string, variants map[K]*openapi3.Schema) error {
	path := joinPath(prefix, field)
	raw, ok := obj[field]
	if !ok {
		return &ValidationError{Document: kind.String(), Path: path, Reason: "discriminant is missing"}
	}
	tag, ok := raw.(string)
	if !ok {
		return &ValidationError{Document: kind.String(), Path: path, Reason: "discriminant must be a string"}
	}
	schema, ok := variants[K(tag)]
	if !ok {
		return &ValidationError{Document: kind.String(), Path: path, Reason: fmt.Sprintf("unknown %s %q", field, tag)}
	}
	if err := schema.VisitJSON(obj); err != nil {
		return validationError(kind, prefix, err)
	}
	return nil
}

// decode moves a validated tree into its typed form. Going through JSON
// keeps the absent/null distinction for Nullable fields.
func decode(kind Kind, tree any, out any) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return &ValidationError{Document: kind.String(), Reason: err.Error()}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ValidationError{Document: kind.String(), Reason: err.Error()}
	}
	return nil
}
