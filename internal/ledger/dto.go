package ledger

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastillo-dev/depotops-backend/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// ReceiptInput is the presentation-boundary shape for one inbound event.
type ReceiptInput struct {
	CargoID        string          `json:"cargo_id" validate:"required"`
	ArrivedAt      time.Time       `json:"arrived_at" validate:"required"`
	IndentNumber   string          `json:"indent_number" validate:"required"`
	Quantity       int             `json:"quantity" validate:"gte=0"`
	WeightKg       decimal.Decimal `json:"weight_kg"`
	VehicleNumber  string          `json:"vehicle_number"`
	DriverName     string          `json:"driver_name"`
	ExpiryDate     *time.Time      `json:"expiry_date,omitempty"`
	InspectionDate *time.Time      `json:"inspection_date,omitempty"`
	Comment        string          `json:"comment,omitempty"`
}

// DispatchInput is the presentation-boundary shape for one outbound event.
type DispatchInput struct {
	CargoID         string          `json:"cargo_id" validate:"required"`
	ContainerNumber string          `json:"container_number"`
	SealNumber      string          `json:"seal_number"`
	PackedAt        time.Time       `json:"packed_at" validate:"required"`
	DispatchedAt    time.Time       `json:"dispatched_at" validate:"required"`
	QtyPacked       int             `json:"qty_packed" validate:"gte=0"`
	TotalWeightKg   decimal.Decimal `json:"total_weight_kg"`
	TruckNumber     string          `json:"truck_number"`
	DriverName      string          `json:"driver_name"`
	InspectionsDone bool            `json:"inspections_done"`
}

func (in ReceiptInput) validateInput() error {
	if err := validate.Struct(in); err != nil {
		return formatValidationErrors(err)
	}
	if in.WeightKg.IsNegative() {
		return errors.New(errors.CodeValidation, "weight_kg must not be negative")
	}
	return nil
}

func (in ReceiptInput) toReceipt() Receipt {
	return Receipt{
		ID:             uuid.New(),
		CargoID:        in.CargoID,
		ArrivedAt:      in.ArrivedAt,
		IndentNumber:   in.IndentNumber,
		Quantity:       in.Quantity,
		WeightKg:       in.WeightKg,
		VehicleNumber:  in.VehicleNumber,
		DriverName:     in.DriverName,
		ExpiryDate:     in.ExpiryDate,
		InspectionDate: in.InspectionDate,
		Comment:        in.Comment,
	}
}

func (in DispatchInput) validateInput() error {
	if err := validate.Struct(in); err != nil {
		return formatValidationErrors(err)
	}
	if in.TotalWeightKg.IsNegative() {
		return errors.New(errors.CodeValidation, "total_weight_kg must not be negative")
	}
	return nil
}

func (in DispatchInput) toDispatch() Dispatch {
	return Dispatch{
		ID:              uuid.New(),
		CargoID:         in.CargoID,
		ContainerNumber: in.ContainerNumber,
		SealNumber:      in.SealNumber,
		PackedAt:        in.PackedAt,
		DispatchedAt:    in.DispatchedAt,
		QtyPacked:       in.QtyPacked,
		TotalWeightKg:   in.TotalWeightKg,
		TruckNumber:     in.TruckNumber,
		DriverName:      in.DriverName,
		InspectionsDone: in.InspectionsDone,
	}
}

func formatValidationErrors(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = fieldErr.Tag()
		}
		return errors.New(errors.CodeValidation, "validation failed").WithDetails(details)
	}
	return errors.Wrap(errors.CodeValidation, err, "validation failed")
}
