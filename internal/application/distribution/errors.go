package distribution

import (
	"errors"
	"fmt"

	"github.com/jhoicas/stock-distribution/internal/application/dto"
	"github.com/jhoicas/stock-distribution/internal/domain"
)

// ProductError indica que la distribución de un producto se abortó (rollback).
// Los productos confirmados antes siguen confirmados; el caller puede reintentar con ProductID.
type ProductError struct {
	ProductID   string
	ProductName string
	Err         error
}

func (e *ProductError) Error() string {
	return fmt.Sprintf("distribuir producto %s (%s): %v", e.ProductID, e.ProductName, e.Err)
}

func (e *ProductError) Unwrap() error { return e.Err }

// Failure describe la falla para la respuesta de la corrida.
func (e *ProductError) Failure() *dto.DistributionFailureDTO {
	code := "STORE_FAILURE"
	if errors.Is(e.Err, domain.ErrInvalidInput) {
		code = "VALIDATION"
	}
	return &dto.DistributionFailureDTO{
		ProductID:   e.ProductID,
		ProductName: e.ProductName,
		Code:        code,
		Message:     e.Err.Error(),
	}
}
