package analyzer

import (
	"errors"
	"fmt"
)

// MalformedPartError reports an export entry that has neither a declared type
// nor a fallback type on its part. The entry is left out of the index.
type MalformedPartError struct {
	PartIndex    int
	ExportIndex  int
	ContractName string
}

func (e *MalformedPartError) Error() string {
	return fmt.Sprintf("part %d export %d (%s): no declared or fallback type", e.PartIndex, e.ExportIndex, e.ContractName)
}

// errExcludedProvider short-circuits registration of an export whose part is
// registered under an excluded-provider marker.
var errExcludedProvider = errors.New("excluded provider")
