package constants

type WorkplaceStatus string

const (
	WorkplaceActive    WorkplaceStatus = "active"
	WorkplaceInactive  WorkplaceStatus = "inactive"
	WorkplaceSuspended WorkplaceStatus = "suspended"
)

type WorkerStatus string

const WorkerActive WorkerStatus = "active"

// ShiftState is derived from a shift's fields and never stored.
type ShiftState string

const (
	StateAvailable           ShiftState = "available"
	StateClaimed             ShiftState = "claimed"
	StatePendingCancellation ShiftState = "pending-cancellation"
)

type CancelStatus string

const (
	CancelStatusCancelled CancelStatus = "cancelled"
	CancelStatusPending   CancelStatus = "pending"
)

type FilterAxis string

const (
	AxisLocation FilterAxis = "locations"
	AxisJobType  FilterAxis = "jobTypes"
)
