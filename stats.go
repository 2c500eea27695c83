//go:build !ios && !android && (amd64 || arm64)

package ffbind

import "github.com/asticode/go-astikit"

// Delta stat names
const (
	DeltaStatNameAllocatedParameters  = "ffbind.allocated.parameters"
	DeltaStatNameFreedParameters      = "ffbind.freed.parameters"
	DeltaStatNameTransferredExtraData = "ffbind.transferred.extradata"
	DeltaStatNamePulledUnits          = "ffbind.pulled.units"
)

type cumulativeStats struct {
	allocatedParameters  uint64
	freedParameters      uint64
	transferredExtraData uint64
	pulledUnits          uint64
}

var stats = &cumulativeStats{}

// DeltaStats returns process-wide counters of the native resources handled
// by this package. All values are cumulative.
func DeltaStats() []astikit.DeltaStat {
	return []astikit.DeltaStat{
		{
			Metadata: astikit.DeltaStatMetadata{
				Description: "Number of parameter blocks allocated by ffbind",
				Label:       "Allocated parameters",
				Name:        DeltaStatNameAllocatedParameters,
				Unit:        "p",
			},
			Valuer: astikit.NewAtomicUint64CumulativeDeltaStat(&stats.allocatedParameters),
		},
		{
			Metadata: astikit.DeltaStatMetadata{
				Description: "Number of parameter blocks freed by ffbind",
				Label:       "Freed parameters",
				Name:        DeltaStatNameFreedParameters,
				Unit:        "p",
			},
			Valuer: astikit.NewAtomicUint64CumulativeDeltaStat(&stats.freedParameters),
		},
		{
			Metadata: astikit.DeltaStatMetadata{
				Description: "Number of extradata buffers handed over to parameter blocks",
				Label:       "Transferred extradata",
				Name:        DeltaStatNameTransferredExtraData,
				Unit:        "b",
			},
			Valuer: astikit.NewAtomicUint64CumulativeDeltaStat(&stats.transferredExtraData),
		},
		{
			Metadata: astikit.DeltaStatMetadata{
				Description: "Number of frames pulled from sinks",
				Label:       "Pulled units",
				Name:        DeltaStatNamePulledUnits,
				Unit:        "f",
			},
			Valuer: astikit.NewAtomicUint64CumulativeDeltaStat(&stats.pulledUnits),
		},
	}
}
