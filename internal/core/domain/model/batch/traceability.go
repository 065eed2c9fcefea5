package batch

// TraceabilityData is the flattened genealogy record consumed by recall and audit tooling.
type TraceabilityData struct {
	BatchID       string        `json:"batchId"`
	BatchNumber   string        `json:"batchNumber"`
	MixOrderID    string        `json:"mixOrderId"`
	Status        string        `json:"status"`
	Inputs        []TraceInput  `json:"inputs"`
	Outputs       []TraceOutput `json:"outputs"`
	ParentBatches []string      `json:"parentBatches"`
	Labels        []string      `json:"labels"`
}

type TraceInput struct {
	IngredientLotID string  `json:"ingredientLotId"`
	PlannedKg       float64 `json:"plannedKg"`
	ActualKg        float64 `json:"actualKg"`
}

type TraceOutput struct {
	LotNumber   string          `json:"lotNumber"`
	QtyKg       float64         `json:"qtyKg"`
	Destination string          `json:"destination"`
	Packing     PackingDocument `json:"packing"`
}

// TraceabilityData returns the backward (inputs, parents) and forward (outputs) trace of the batch.
func (b Batch) TraceabilityData() TraceabilityData {
	inputs := make([]TraceInput, 0, len(b.inputs))
	for _, in := range b.inputs {
		inputs = append(inputs, TraceInput{
			IngredientLotID: in.ingredientLotID.String(),
			PlannedKg:       in.plannedKg,
			ActualKg:        in.actualKg,
		})
	}

	outputs := make([]TraceOutput, 0, len(b.outputs))
	for _, out := range b.outputs {
		outputs = append(outputs, TraceOutput{
			LotNumber:   out.lotNumber,
			QtyKg:       out.qtyKg,
			Destination: string(out.destination),
			Packing:     out.packing.toDocument(),
		})
	}

	parents := make([]string, 0, len(b.parentBatches))
	for _, p := range b.parentBatches {
		parents = append(parents, p.String())
	}

	return TraceabilityData{
		BatchID:       b.id.String(),
		BatchNumber:   b.batchNumber,
		MixOrderID:    b.mixOrderID.String(),
		Status:        b.status.String(),
		Inputs:        inputs,
		Outputs:       outputs,
		ParentBatches: parents,
		Labels:        append([]string{}, b.labels...),
	}
}
