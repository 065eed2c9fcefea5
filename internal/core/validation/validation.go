// Package validation checks raw JSON against the schemas of the service's
// OpenAPI document before anything is decoded into domain types.
//
// The same document describes the HTTP API, so request bodies and stored
// documents share one source of truth:
//
//	v, err := validation.New()
//	if err != nil {
//	    return err
//	}
//	order, err := v.DecodeMixOrder(raw)
//	if err != nil {
//	    // errs.ErrValueIsInvalid for shape errors, domain errors for broken invariants
//	}
package validation

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/mixorder"
	"production/internal/core/domain/model/mobilerun"
	"production/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yml
var spec []byte

// Component schema names.
const (
	SchemaMixOrder                   = "MixOrder"
	SchemaBatch                      = "Batch"
	SchemaMobileRun                  = "MobileRun"
	SchemaCreateMixOrderRequest      = "CreateMixOrderRequest"
	SchemaMixOrderTransitionRequest  = "MixOrderTransitionRequest"
	SchemaMixStep                    = "MixStep"
	SchemaMixStepPatchRequest        = "MixStepPatchRequest"
	SchemaEndMixStepRequest          = "EndMixStepRequest"
	SchemaCreateBatchRequest         = "CreateBatchRequest"
	SchemaBatchTransitionRequest     = "BatchTransitionRequest"
	SchemaBatchInput                 = "BatchInput"
	SchemaAddBatchOutputRequest      = "AddBatchOutputRequest"
	SchemaAddParentBatchRequest      = "AddParentBatchRequest"
	SchemaChangeBatchLabelRequest    = "ChangeBatchLabelRequest"
	SchemaEndAtRequest               = "EndAtRequest"
	SchemaStartMobileRunRequest      = "StartMobileRunRequest"
	SchemaCalibrationCheck           = "CalibrationCheck"
	SchemaAddCleaningSequenceRequest = "AddCleaningSequenceRequest"
	SchemaEndCleaningSequenceRequest = "EndCleaningSequenceRequest"
)

// Spec returns the raw OpenAPI document.
func Spec() []byte {
	return append([]byte(nil), spec...)
}

type Validator struct {
	doc *openapi3.T
}

// New loads and validates the embedded OpenAPI document.
func New() (*Validator, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(spec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return &Validator{doc: doc}, nil
}

// Document returns the parsed OpenAPI document.
func (v *Validator) Document() *openapi3.T {
	return v.doc
}

// Validate checks raw against the named component schema. Every violation is
// reported, wrapped in errs.ValueIsInvalidError named after the schema.
func (v *Validator) Validate(schema string, raw []byte) error {
	ref, ok := v.doc.Components.Schemas[schema]
	if !ok || ref.Value == nil {
		return fmt.Errorf("unknown schema %q", schema)
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(schema, err)
	}
	if err := ref.Value.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(schema, err)
	}
	return nil
}

// Decode validates raw against schema and then unmarshals it into T.
func Decode[T any](v *Validator, schema string, raw []byte) (T, error) {
	var out T
	if err := v.Validate(schema, raw); err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, errs.NewValueIsInvalidErrorWithCause(schema, err)
	}
	return out, nil
}

// DecodeMixOrder turns a stored or transmitted document into a mix order.
// Shape is checked here; business invariants by mixorder.FromDocument.
func (v *Validator) DecodeMixOrder(raw []byte) (mixorder.MixOrder, error) {
	doc, err := Decode[mixorder.Document](v, SchemaMixOrder, raw)
	if err != nil {
		return mixorder.MixOrder{}, err
	}
	return mixorder.FromDocument(doc)
}

func (v *Validator) DecodeBatch(raw []byte) (batch.Batch, error) {
	doc, err := Decode[batch.Document](v, SchemaBatch, raw)
	if err != nil {
		return batch.Batch{}, err
	}
	return batch.FromDocument(doc)
}

// DecodeMobileRun rejects calibration checks dated after now.
func (v *Validator) DecodeMobileRun(raw []byte, now time.Time) (mobilerun.MobileRun, error) {
	doc, err := Decode[mobilerun.Document](v, SchemaMobileRun, raw)
	if err != nil {
		return mobilerun.MobileRun{}, err
	}
	return mobilerun.FromDocument(doc, now)
}
