package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
)

// Document is the persisted/transmitted JSON shape of a batch.
type Document struct {
	ID            string              `json:"id"`
	TenantID      string              `json:"tenantId"`
	BatchNumber   string              `json:"batchNumber"`
	MixOrderID    string              `json:"mixOrderId"`
	ProducedQtyKg float64             `json:"producedQtyKg"`
	StartAt       time.Time           `json:"startAt"`
	EndAt         *time.Time          `json:"endAt,omitempty"`
	Status        string              `json:"status"`
	ParentBatches []string            `json:"parentBatches"`
	Labels        []string            `json:"labels"`
	Inputs        []InputDocument     `json:"inputs"`
	Outputs       []OutputLotDocument `json:"outputs"`
	Version       int                 `json:"version"`
}

type InputDocument struct {
	IngredientLotID string  `json:"ingredientLotId"`
	PlannedKg       float64 `json:"plannedKg"`
	ActualKg        float64 `json:"actualKg"`
}

type OutputLotDocument struct {
	ID              string          `json:"id"`
	LotNumber       string          `json:"lotNumber"`
	QtyKg           float64         `json:"qtyKg"`
	Packing         PackingDocument `json:"packing"`
	Destination     string          `json:"destination"`
	GMPPlusMarkings []string        `json:"gmpPlusMarkings,omitempty"`
}

type PackingDocument struct {
	Form string   `json:"form"`
	Size *float64 `json:"size,omitempty"`
	Unit string   `json:"unit,omitempty"`
}

func (p Packing) toDocument() PackingDocument {
	c := p.clone()
	return PackingDocument{Form: string(c.Form), Size: c.Size, Unit: c.Unit}
}

func (d PackingDocument) toPacking() Packing {
	return Packing{Form: PackingForm(d.Form), Size: d.Size, Unit: d.Unit}.clone()
}

func (in Input) ToDocument() InputDocument {
	return InputDocument{
		IngredientLotID: in.ingredientLotID.String(),
		PlannedKg:       in.plannedKg,
		ActualKg:        in.actualKg,
	}
}

// InputFromDocument builds an Input from its JSON shape.
func InputFromDocument(doc InputDocument) (Input, error) {
	lotID, err := kernel.UUIDFromString(doc.IngredientLotID)
	if err != nil {
		return Input{}, errs.NewValueIsInvalidErrorWithCause("ingredientLotId", err)
	}
	return NewInput(lotID, doc.PlannedKg, doc.ActualKg)
}

func (o OutputLot) ToDocument() OutputLotDocument {
	return OutputLotDocument{
		ID:              o.id.String(),
		LotNumber:       o.lotNumber,
		QtyKg:           o.qtyKg,
		Packing:         o.packing.toDocument(),
		Destination:     string(o.destination),
		GMPPlusMarkings: cloneStrings(o.gmpPlusMarkings),
	}
}

// OutputLotFromDocument builds an OutputLot from its JSON shape.
func OutputLotFromDocument(doc OutputLotDocument) (OutputLot, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return OutputLot{}, errs.NewValueIsInvalidErrorWithCause("output id", err)
	}
	return NewOutputLot(id, doc.LotNumber, doc.QtyKg, doc.Packing.toPacking(), Destination(doc.Destination), doc.GMPPlusMarkings)
}

func (b Batch) ToDocument() Document {
	parents := make([]string, 0, len(b.parentBatches))
	for _, p := range b.parentBatches {
		parents = append(parents, p.String())
	}
	inputs := make([]InputDocument, 0, len(b.inputs))
	for _, in := range b.inputs {
		inputs = append(inputs, in.ToDocument())
	}
	outputs := make([]OutputLotDocument, 0, len(b.outputs))
	for _, out := range b.outputs {
		outputs = append(outputs, out.ToDocument())
	}

	return Document{
		ID:            b.id.String(),
		TenantID:      b.tenantID.String(),
		BatchNumber:   b.batchNumber,
		MixOrderID:    b.mixOrderID.String(),
		ProducedQtyKg: b.producedQtyKg,
		StartAt:       b.startAt,
		EndAt:         b.EndAt(),
		Status:        b.status.String(),
		ParentBatches: parents,
		Labels:        append([]string{}, b.labels...),
		Inputs:        inputs,
		Outputs:       outputs,
		Version:       b.version,
	}
}

// FromDocument restores a batch from its JSON shape.
func FromDocument(doc Document) (Batch, error) {
	id, idErr := kernel.UUIDFromString(doc.ID)
	tenantID, tenantErr := kernel.UUIDFromString(doc.TenantID)
	mixOrderID, orderErr := kernel.UUIDFromString(doc.MixOrderID)
	status, statusErr := ParseStatus(doc.Status)
	if err := errors.Join(
		fieldError("id", idErr),
		fieldError("tenantId", tenantErr),
		fieldError("mixOrderId", orderErr),
		statusErr,
	); err != nil {
		return Batch{}, err
	}

	parents := make([]kernel.UUID, 0, len(doc.ParentBatches))
	for i, raw := range doc.ParentBatches {
		parent, err := kernel.UUIDFromString(raw)
		if err != nil {
			return Batch{}, fieldError(fmt.Sprintf("parentBatches[%d]", i), err)
		}
		parents = append(parents, parent)
	}
	inputs := make([]Input, 0, len(doc.Inputs))
	for _, raw := range doc.Inputs {
		in, err := InputFromDocument(raw)
		if err != nil {
			return Batch{}, err
		}
		inputs = append(inputs, in)
	}
	outputs := make([]OutputLot, 0, len(doc.Outputs))
	for _, raw := range doc.Outputs {
		out, err := OutputLotFromDocument(raw)
		if err != nil {
			return Batch{}, err
		}
		outputs = append(outputs, out)
	}

	return Restore(State{
		Params: Params{
			TenantID:      tenantID,
			BatchNumber:   doc.BatchNumber,
			MixOrderID:    mixOrderID,
			ProducedQtyKg: doc.ProducedQtyKg,
			StartAt:       doc.StartAt,
			EndAt:         doc.EndAt,
			ParentBatches: parents,
			Labels:        doc.Labels,
			Inputs:        inputs,
			Outputs:       outputs,
		},
		ID:      id,
		Status:  status,
		Version: doc.Version,
	})
}

func (b Batch) MarshalJSON() ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(b.ToDocument())
}

func (b *Batch) UnmarshalJSON(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	restored, err := FromDocument(doc)
	if err != nil {
		return err
	}
	*b = restored
	return nil
}

func fieldError(name string, err error) error {
	if err == nil {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause(name, err)
}
