package repository

import (
	"errors"
	"fmt"

	"vidyamitra_backend/internal/util"

	"gorm.io/gorm"
)

// wrapDBErr normalizes driver errors into the two outcomes call sites must
// distinguish: ErrNotFound for a missing row, ErrUnavailable for everything
// else. No raw gorm error leaves this package.
func wrapDBErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	}
	return fmt.Errorf("%w: %v", util.ErrUnavailable, err)
}
