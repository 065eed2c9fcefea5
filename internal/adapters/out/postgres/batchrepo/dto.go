package batchrepo

import (
	"time"

	"production/internal/core/domain/model/batch"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type BatchDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_batches_tenant_number,priority:1"`
	BatchNumber   string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_batches_tenant_number,priority:2"`
	MixOrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProducedQtyKg float64   `gorm:"not null"`
	StartAt       time.Time `gorm:"not null"`
	EndAt         *time.Time
	Status        string         `gorm:"type:varchar(16);not null;index"`
	ParentBatches pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	Labels        pq.StringArray `gorm:"type:text[];not null;default:'{}'"`
	Inputs        []InputDTO     `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE"`
	Outputs       []OutputLotDTO `gorm:"foreignKey:BatchID;constraint:OnDelete:CASCADE"`
	Version       int            `gorm:"not null"`
}

func (BatchDTO) TableName() string {
	return "batches"
}

type InputDTO struct {
	BatchID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position        int       `gorm:"primaryKey"`
	IngredientLotID uuid.UUID `gorm:"type:uuid;not null;index"`
	PlannedKg       float64   `gorm:"not null"`
	ActualKg        float64   `gorm:"not null"`
}

func (InputDTO) TableName() string {
	return "batch_inputs"
}

type OutputLotDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	BatchID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Position        int       `gorm:"not null"`
	LotNumber       string    `gorm:"type:varchar(64);not null"`
	QtyKg           float64   `gorm:"not null"`
	PackingForm     string    `gorm:"type:varchar(16);not null"`
	PackingSize     *float64
	PackingUnit     string         `gorm:"type:varchar(16)"`
	Destination     string         `gorm:"type:varchar(16);not null"`
	GMPPlusMarkings pq.StringArray `gorm:"type:text[]"`
}

func (OutputLotDTO) TableName() string {
	return "batch_output_lots"
}

func fromDomain(b batch.Batch) BatchDTO {
	doc := b.ToDocument()
	id := b.ID().Bytes()

	inputs := make([]InputDTO, 0, len(b.Inputs()))
	for i, in := range b.Inputs() {
		inputs = append(inputs, InputDTO{
			BatchID:         id,
			Position:        i,
			IngredientLotID: in.IngredientLotID().Bytes(),
			PlannedKg:       in.PlannedKg(),
			ActualKg:        in.ActualKg(),
		})
	}

	outputs := make([]OutputLotDTO, 0, len(doc.Outputs))
	for i, out := range b.Outputs() {
		od := doc.Outputs[i]
		outputs = append(outputs, OutputLotDTO{
			ID:              out.ID().Bytes(),
			BatchID:         id,
			Position:        i,
			LotNumber:       od.LotNumber,
			QtyKg:           od.QtyKg,
			PackingForm:     od.Packing.Form,
			PackingSize:     od.Packing.Size,
			PackingUnit:     od.Packing.Unit,
			Destination:     od.Destination,
			GMPPlusMarkings: od.GMPPlusMarkings,
		})
	}

	return BatchDTO{
		ID:            id,
		TenantID:      b.TenantID().Bytes(),
		BatchNumber:   b.BatchNumber(),
		MixOrderID:    b.MixOrderID().Bytes(),
		ProducedQtyKg: b.ProducedQtyKg(),
		StartAt:       b.StartAt(),
		EndAt:         b.EndAt(),
		Status:        doc.Status,
		ParentBatches: doc.ParentBatches,
		Labels:        doc.Labels,
		Inputs:        inputs,
		Outputs:       outputs,
		Version:       b.Version(),
	}
}

// toDomain expects Inputs and Outputs ordered by Position.
func toDomain(dto BatchDTO) (batch.Batch, error) {
	inputs := make([]batch.InputDocument, 0, len(dto.Inputs))
	for _, in := range dto.Inputs {
		inputs = append(inputs, batch.InputDocument{
			IngredientLotID: in.IngredientLotID.String(),
			PlannedKg:       in.PlannedKg,
			ActualKg:        in.ActualKg,
		})
	}

	outputs := make([]batch.OutputLotDocument, 0, len(dto.Outputs))
	for _, out := range dto.Outputs {
		outputs = append(outputs, batch.OutputLotDocument{
			ID:        out.ID.String(),
			LotNumber: out.LotNumber,
			QtyKg:     out.QtyKg,
			Packing: batch.PackingDocument{
				Form: out.PackingForm,
				Size: out.PackingSize,
				Unit: out.PackingUnit,
			},
			Destination:     out.Destination,
			GMPPlusMarkings: out.GMPPlusMarkings,
		})
	}

	return batch.FromDocument(batch.Document{
		ID:            dto.ID.String(),
		TenantID:      dto.TenantID.String(),
		BatchNumber:   dto.BatchNumber,
		MixOrderID:    dto.MixOrderID.String(),
		ProducedQtyKg: dto.ProducedQtyKg,
		StartAt:       dto.StartAt,
		EndAt:         dto.EndAt,
		Status:        dto.Status,
		ParentBatches: dto.ParentBatches,
		Labels:        dto.Labels,
		Inputs:        inputs,
		Outputs:       outputs,
		Version:       dto.Version,
	})
}
