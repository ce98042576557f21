package service

import (
	"github.com/smartcity/aqdash/internal/domain"
)

// DatasetSource is re-exported from domain for convenience
type DatasetSource = domain.DatasetSource
