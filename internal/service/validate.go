package service

import (
	"fmt"

	"Vega_Tube/internal/apperr"

	"github.com/google/uuid"
)

// checkUUID 校验入参ID的UUID形状，格式错直接BadRequest，不去查库
func checkUUID(value, field string) error {
	if _, err := uuid.Parse(value); err != nil {
		return fmt.Errorf("%w: %s不是合法的ID", apperr.ErrBadRequest, field)
	}
	return nil
}
